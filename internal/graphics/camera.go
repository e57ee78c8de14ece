package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

var (
	defaultUp     = mgl32.Vec3{0, 1, 0}
	defaultLookAt = mgl32.Vec3{0, 0, 1}
)

// Camera holds the viewer pose and derives the view matrix from it.
// Rotation is stored in degrees as pitch (X), yaw (Y), roll (Z).
type Camera struct {
	position mgl32.Vec3
	rotation mgl32.Vec3
}

// NewCamera returns a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{}
}

func (c *Camera) SetPosition(x, y, z float32) {
	c.position = mgl32.Vec3{x, y, z}
}

func (c *Camera) SetRotation(pitch, yaw, roll float32) {
	c.rotation = mgl32.Vec3{pitch, yaw, roll}
}

func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

func (c *Camera) Rotation() mgl32.Vec3 {
	return c.rotation
}

// ViewMatrix builds the left-handed view matrix for the current pose.
// It is recomputed on every call.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	pitch := mgl32.DegToRad(c.rotation[0])
	yaw := mgl32.DegToRad(c.rotation[1])
	roll := mgl32.DegToRad(c.rotation[2])
	rot := RotationRollPitchYaw(pitch, yaw, roll)

	up := TransformCoord(defaultUp, rot)
	lookAt := TransformCoord(defaultLookAt, rot)

	target := c.position.Add(lookAt)
	return LookAtLH(c.position, target, up)
}
