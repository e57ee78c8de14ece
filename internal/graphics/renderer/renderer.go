package renderer

import (
	"log"

	"color-triangle/internal/config"
	"color-triangle/internal/graphics"
	"color-triangle/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer runs one frame at a time through the fixed stage sequence
// Clearing → UpdatingCamera → GatheringTransforms → BindingGeometry →
// UploadingParameters → Drawing → Presenting.
type Renderer struct {
	device     graphics.Device
	scene      Scene
	clearColor mgl32.Vec4

	state   FrameState
	last    graphics.TransformSet
	frames  uint64
	capture func() error
}

// NewRenderer creates a renderer drawing scene on device.
func NewRenderer(device graphics.Device, scene Scene, clearColor mgl32.Vec4) *Renderer {
	return &Renderer{
		device:     device,
		scene:      scene,
		clearColor: clearColor,
	}
}

// State returns the stage the renderer is currently in; Idle between frames.
func (r *Renderer) State() FrameState {
	return r.state
}

// LastTransforms returns the transforms uploaded by the last frame.
func (r *Renderer) LastTransforms() graphics.TransformSet {
	return r.last
}

// Frames returns the number of frames presented.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

func (r *Renderer) Camera() *graphics.Camera {
	return r.scene.Camera
}

// RequestCapture runs fn once, on the next frame, after drawing and before
// presenting. Capture errors are logged.
func (r *Renderer) RequestCapture(fn func() error) {
	r.capture = fn
}

func presentMode() graphics.PresentMode {
	if config.GetVSync() {
		return graphics.PresentVSync
	}
	return graphics.PresentImmediate
}

func (r *Renderer) enter(s FrameState) func() {
	r.state = s
	return profiling.Track("renderer." + s.String())
}

// Frame renders and presents one frame. Any failure aborts the rest of the
// frame and is returned as a *FrameError.
func (r *Renderer) Frame() error {
	defer func() { r.state = StateIdle }()

	done := r.enter(StateClearing)
	r.device.Clear(r.clearColor)
	done()

	done = r.enter(StateUpdatingCamera)
	view := r.scene.Camera.ViewMatrix()
	done()

	done = r.enter(StateGatheringTransforms)
	ts := graphics.TransformSet{
		World:      r.scene.Transforms.World(),
		View:       view,
		Projection: r.scene.Transforms.Projection(),
	}
	done()

	done = r.enter(StateBindingGeometry)
	err := r.scene.Model.Bind()
	done()
	if err != nil {
		return &FrameError{State: StateBindingGeometry, Err: err}
	}

	done = r.enter(StateUploadingParameters)
	err = r.scene.Shader.SetParameters(ts)
	done()
	if err != nil {
		return &FrameError{State: StateUploadingParameters, Err: err}
	}
	r.last = ts

	done = r.enter(StateDrawing)
	r.scene.Shader.Draw(r.scene.Model.IndexCount())
	done()

	if r.capture != nil {
		fn := r.capture
		r.capture = nil
		if err := fn(); err != nil {
			log.Printf("capture failed: %v", err)
		}
	}

	done = r.enter(StatePresenting)
	err = r.device.Present(presentMode())
	done()
	if err != nil {
		return &FrameError{State: StatePresenting, Err: err}
	}

	r.frames++
	return nil
}

// Dispose releases the scene's device resources in reverse creation order.
func (r *Renderer) Dispose() {
	r.scene.Shader.Dispose()
	r.scene.Model.Dispose()
}
