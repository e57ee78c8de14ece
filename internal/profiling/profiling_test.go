package profiling

import (
	"strings"
	"testing"
	"time"
)

func set(entries map[string]time.Duration) {
	ResetFrame()
	mu.Lock()
	for k, v := range entries {
		frameTotals[k] = v
	}
	mu.Unlock()
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	Track("renderer.Drawing")()
	Track("renderer.Drawing")()
	if _, ok := Snapshot()["renderer.Drawing"]; !ok {
		t.Fatalf("Track recorded nothing")
	}
	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Fatalf("ResetFrame left entries")
	}
}

func TestSumWithPrefix(t *testing.T) {
	set(map[string]time.Duration{
		"renderer.Clearing":   time.Millisecond,
		"renderer.Presenting": 2 * time.Millisecond,
		"host.PollEvents":     5 * time.Millisecond,
	})
	if got := SumWithPrefix("renderer."); got != 3*time.Millisecond {
		t.Fatalf("SumWithPrefix = %v, want 3ms", got)
	}
}

func TestTopN(t *testing.T) {
	set(map[string]time.Duration{
		"a": time.Millisecond,
		"b": 4200 * time.Microsecond,
		"c": time.Millisecond,
	})
	if got, want := TopN(2), "b:4.2ms, a:1.0ms"; got != want {
		t.Fatalf("TopN(2) = %q, want %q", got, want)
	}
	if got := TopN(10); strings.Count(got, ",") != 2 {
		t.Fatalf("TopN(10) = %q, want all three stages", got)
	}
}
