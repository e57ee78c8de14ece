package renderer

import (
	"fmt"

	"color-triangle/internal/graphics"
)

// FrameState is the stage a frame is in.
type FrameState int

const (
	StateIdle FrameState = iota
	StateClearing
	StateUpdatingCamera
	StateGatheringTransforms
	StateBindingGeometry
	StateUploadingParameters
	StateDrawing
	StatePresenting
)

var stateNames = [...]string{
	StateIdle:                "Idle",
	StateClearing:            "Clearing",
	StateUpdatingCamera:      "UpdatingCamera",
	StateGatheringTransforms: "GatheringTransforms",
	StateBindingGeometry:     "BindingGeometry",
	StateUploadingParameters: "UploadingParameters",
	StateDrawing:             "Drawing",
	StatePresenting:          "Presenting",
}

func (s FrameState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("FrameState(%d)", int(s))
}

// FrameError reports the stage a frame was aborted in.
type FrameError struct {
	State FrameState
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame aborted in %s: %v", e.State, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// Scene is everything a frame draws.
type Scene struct {
	Camera     *graphics.Camera
	Transforms *graphics.Transforms
	Model      *graphics.Model
	Shader     *graphics.ColorShader
}
