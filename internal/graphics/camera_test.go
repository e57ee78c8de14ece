package graphics_test

import (
	"testing"

	"color-triangle/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestViewMatrixIsPure(t *testing.T) {
	c := graphics.NewCamera()
	c.SetPosition(1, 2, 3)
	c.SetRotation(30, 45, 10)

	a := c.ViewMatrix()
	b := c.ViewMatrix()
	if a != b {
		t.Fatalf("view matrix changed between calls:\n%v\n%v", a, b)
	}
}

func TestViewMatrixCanonical(t *testing.T) {
	c := graphics.NewCamera()
	c.SetPosition(0, 0, 0)
	c.SetRotation(0, 0, 0)

	if got := c.ViewMatrix(); !got.ApproxEqual(mgl32.Ident4()) {
		t.Fatalf("origin camera view = %v, want identity", got)
	}
}

func TestViewMatrixRecomputedAfterMutation(t *testing.T) {
	c := graphics.NewCamera()
	before := c.ViewMatrix()
	c.SetPosition(0, 0, -10)
	if after := c.ViewMatrix(); after == before {
		t.Fatalf("view matrix did not follow position change")
	}
}

func TestViewMatrixOrientation(t *testing.T) {
	tests := []struct {
		name  string
		pos   mgl32.Vec3
		rot   mgl32.Vec3
		point mgl32.Vec3
		want  mgl32.Vec3
	}{
		{
			name:  "translated back along -Z",
			pos:   mgl32.Vec3{0, 0, -10},
			point: mgl32.Vec3{0, 0, 0},
			want:  mgl32.Vec3{0, 0, 10},
		},
		{
			name:  "yaw 90 looks down +X",
			rot:   mgl32.Vec3{0, 90, 0},
			point: mgl32.Vec3{5, 0, 0},
			want:  mgl32.Vec3{0, 0, 5},
		},
		{
			name:  "pitch 90 looks down -Y",
			rot:   mgl32.Vec3{90, 0, 0},
			point: mgl32.Vec3{0, -5, 0},
			want:  mgl32.Vec3{0, 0, 5},
		},
		{
			name:  "roll 90 maps +X to -Y",
			rot:   mgl32.Vec3{0, 0, 90},
			point: mgl32.Vec3{1, 0, 5},
			want:  mgl32.Vec3{0, -1, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := graphics.NewCamera()
			c.SetPosition(tt.pos[0], tt.pos[1], tt.pos[2])
			c.SetRotation(tt.rot[0], tt.rot[1], tt.rot[2])

			got := graphics.TransformCoord(tt.point, c.ViewMatrix())
			if !got.ApproxEqualThreshold(tt.want, eps) {
				t.Fatalf("view-space point = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCameraAccessors(t *testing.T) {
	c := graphics.NewCamera()
	c.SetPosition(1, 2, 3)
	c.SetRotation(4, 5, 6)
	if c.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("position = %v", c.Position())
	}
	if c.Rotation() != (mgl32.Vec3{4, 5, 6}) {
		t.Fatalf("rotation = %v", c.Rotation())
	}
}
