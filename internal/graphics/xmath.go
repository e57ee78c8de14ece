package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrices in this package follow the left-handed, row-vector convention:
// a point p is transformed as p * M, so M.At(3, 0..2) holds the translation.
// mgl32.Mat4 is used purely as storage; At(row, col) addresses the matrix
// as written on paper.

// RotationRollPitchYaw builds a rotation that applies roll (Z) first, then
// pitch (X), then yaw (Y). Angles are in radians.
func RotationRollPitchYaw(pitch, yaw, roll float32) mgl32.Mat4 {
	return rotationZ(roll).Mul4(rotationX(pitch)).Mul4(rotationY(yaw))
}

func rotationX(a float32) mgl32.Mat4 {
	s, c := sincos(a)
	return mgl32.Mat4FromRows(
		mgl32.Vec4{1, 0, 0, 0},
		mgl32.Vec4{0, c, s, 0},
		mgl32.Vec4{0, -s, c, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

func rotationY(a float32) mgl32.Mat4 {
	s, c := sincos(a)
	return mgl32.Mat4FromRows(
		mgl32.Vec4{c, 0, -s, 0},
		mgl32.Vec4{0, 1, 0, 0},
		mgl32.Vec4{s, 0, c, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

func rotationZ(a float32) mgl32.Mat4 {
	s, c := sincos(a)
	return mgl32.Mat4FromRows(
		mgl32.Vec4{c, s, 0, 0},
		mgl32.Vec4{-s, c, 0, 0},
		mgl32.Vec4{0, 0, 1, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// TransformCoord transforms v as the point (x, y, z, 1) and projects the
// result back onto w = 1.
func TransformCoord(v mgl32.Vec3, m mgl32.Mat4) mgl32.Vec3 {
	h := TransformPoint(v, m)
	if h.W() == 0 || h.W() == 1 {
		return h.Vec3()
	}
	return h.Vec3().Mul(1 / h.W())
}

// TransformPoint returns (x, y, z, 1) * m without the perspective divide.
func TransformPoint(v mgl32.Vec3, m mgl32.Mat4) mgl32.Vec4 {
	var out mgl32.Vec4
	for col := 0; col < 4; col++ {
		out[col] = v[0]*m.At(0, col) + v[1]*m.At(1, col) + v[2]*m.At(2, col) + m.At(3, col)
	}
	return out
}

// LookAtLH builds a left-handed view matrix looking from eye towards target.
func LookAtLH(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	return LookToLH(eye, target.Sub(eye), up)
}

// LookToLH builds a left-handed view matrix looking from eye along dir.
func LookToLH(eye, dir, up mgl32.Vec3) mgl32.Mat4 {
	r2 := dir.Normalize()
	r0 := up.Cross(r2).Normalize()
	r1 := r2.Cross(r0)

	neg := eye.Mul(-1)
	d0 := r0.Dot(neg)
	d1 := r1.Dot(neg)
	d2 := r2.Dot(neg)

	return mgl32.Mat4FromRows(
		mgl32.Vec4{r0[0], r1[0], r2[0], 0},
		mgl32.Vec4{r0[1], r1[1], r2[1], 0},
		mgl32.Vec4{r0[2], r1[2], r2[2], 0},
		mgl32.Vec4{d0, d1, d2, 1},
	)
}

// PerspectiveFovLH builds a left-handed perspective projection mapping view
// depth [near, far] onto clip depth [0, 1]. fovY is in radians.
func PerspectiveFovLH(fovY, aspect, near, far float32) mgl32.Mat4 {
	s, c := sincos(fovY / 2)
	h := c / s
	w := h / aspect
	r := far / (far - near)

	return mgl32.Mat4FromRows(
		mgl32.Vec4{w, 0, 0, 0},
		mgl32.Vec4{0, h, 0, 0},
		mgl32.Vec4{0, 0, r, 1},
		mgl32.Vec4{0, 0, -r * near, 0},
	)
}

// OrthographicLH builds a left-handed orthographic projection of a
// width x height view volume.
func OrthographicLH(width, height, near, far float32) mgl32.Mat4 {
	r := 1 / (far - near)

	return mgl32.Mat4FromRows(
		mgl32.Vec4{2 / width, 0, 0, 0},
		mgl32.Vec4{0, 2 / height, 0, 0},
		mgl32.Vec4{0, 0, r, 0},
		mgl32.Vec4{0, 0, -r * near, 1},
	)
}
