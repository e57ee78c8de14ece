package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FieldOfView is the vertical field of view of the perspective projection.
const FieldOfView = float32(math.Pi / 4)

// TransformSet is the per-frame group of matrices handed to the shader,
// in upload order.
type TransformSet struct {
	World      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// Transposed returns the set with every matrix transposed.
func (ts TransformSet) Transposed() TransformSet {
	return TransformSet{
		World:      ts.World.Transpose(),
		View:       ts.View.Transpose(),
		Projection: ts.Projection.Transpose(),
	}
}

// Transforms holds the matrices that are fixed once the viewport is known.
type Transforms struct {
	world      mgl32.Mat4
	projection mgl32.Mat4
	ortho      mgl32.Mat4
}

// NewTransforms builds the world, perspective and orthographic matrices
// for a width x height viewport.
func NewTransforms(width, height int, near, far float32) *Transforms {
	aspect := float32(width) / float32(height)
	return &Transforms{
		world:      mgl32.Ident4(),
		projection: PerspectiveFovLH(FieldOfView, aspect, near, far),
		ortho:      OrthographicLH(float32(width), float32(height), near, far),
	}
}

func (t *Transforms) World() mgl32.Mat4 {
	return t.world
}

func (t *Transforms) Projection() mgl32.Mat4 {
	return t.projection
}

// Ortho returns the viewport-sized orthographic projection. The color
// scene draws only in perspective; Ortho is there for screen-space passes.
func (t *Transforms) Ortho() mgl32.Mat4 {
	return t.ortho
}
