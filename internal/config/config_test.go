package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "width: 1024\nvsync: false\nclear_color: [0.2, 0.3, 0.4, 1]\n")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Width != 1024 || s.VSync {
		t.Fatalf("width=%d vsync=%v, want 1024/false", s.Width, s.VSync)
	}
	if s.Height != 600 || s.ScreenDepth != 1000 || s.CameraPosition != [3]float32{0, 0, -10} {
		t.Fatalf("defaults lost: %+v", s)
	}
	if s.ClearColor != [4]float32{0.2, 0.3, 0.4, 1} {
		t.Fatalf("clear_color = %v", s.ClearColor)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: "width: [1, 2\n"},
		{name: "zero width", body: "width: 0\n"},
		{name: "depth before near", body: "screen_near: 10\nscreen_depth: 5\n"},
		{name: "negative max fps", body: "max_fps: -1\n"},
		{name: "empty shader dir", body: "shader_dir: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatalf("Load succeeded")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load of a missing file succeeded")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestPresentSettings(t *testing.T) {
	prevV, prevF := GetVSync(), GetMaxFPS()
	t.Cleanup(func() {
		SetVSync(prevV)
		SetMaxFPS(prevF)
	})

	s := Default()
	s.VSync = false
	s.MaxFPS = 144
	Apply(s)
	if GetVSync() || GetMaxFPS() != 144 {
		t.Fatalf("Apply: vsync=%v max=%d", GetVSync(), GetMaxFPS())
	}
	if !ToggleVSync() || !GetVSync() {
		t.Fatalf("ToggleVSync did not enable vsync")
	}

	tests := []struct{ in, want int }{
		{in: -5, want: 0},
		{in: 60, want: 60},
		{in: 5000, want: 1000},
	}
	for _, tt := range tests {
		SetMaxFPS(tt.in)
		if got := GetMaxFPS(); got != tt.want {
			t.Fatalf("SetMaxFPS(%d) -> %d, want %d", tt.in, got, tt.want)
		}
	}
}
