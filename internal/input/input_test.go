package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestEdgeDetection(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if !im.IsActive(ActionQuit) || !im.JustPressed(ActionQuit) {
		t.Fatalf("press not seen")
	}
	im.PostUpdate()
	if im.JustPressed(ActionQuit) || !im.IsActive(ActionQuit) {
		t.Fatalf("PostUpdate: justPressed=%v active=%v", im.JustPressed(ActionQuit), im.IsActive(ActionQuit))
	}

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Repeat)
	if im.JustPressed(ActionQuit) {
		t.Fatalf("repeat counted as a new press")
	}

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Release)
	if im.IsActive(ActionQuit) || !im.JustReleased(ActionQuit) {
		t.Fatalf("release not seen")
	}
}

func TestBindings(t *testing.T) {
	im := NewInputManager()
	im.BindKey(glfw.KeyQ, ActionQuit)
	im.BindKey(glfw.KeyQ, ActionCount) // ignored

	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	if !im.IsActive(ActionQuit) {
		t.Fatalf("extra binding not honored")
	}

	im.UnbindKey(glfw.KeyV)
	im.HandleKeyEvent(glfw.KeyV, glfw.Press)
	if im.JustPressed(ActionToggleVSync) {
		t.Fatalf("unbound key still triggers")
	}
	if im.IsActive(ActionCount) || im.JustPressed(-1) {
		t.Fatalf("out of range actions report state")
	}
}
