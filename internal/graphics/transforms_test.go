package graphics_test

import (
	"testing"

	"color-triangle/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransformsFixedMatrices(t *testing.T) {
	tr := graphics.NewTransforms(800, 600, 0.1, 1000)
	if tr.World() != mgl32.Ident4() {
		t.Fatalf("world = %v, want identity", tr.World())
	}
	want := graphics.PerspectiveFovLH(graphics.FieldOfView, 800.0/600.0, 0.1, 1000)
	if tr.Projection() != want {
		t.Fatalf("projection = %v, want %v", tr.Projection(), want)
	}
	if tr.Ortho() != graphics.OrthographicLH(800, 600, 0.1, 1000) {
		t.Fatalf("ortho mismatch")
	}
}

func TestTriangleInsideViewport(t *testing.T) {
	c := graphics.NewCamera()
	c.SetPosition(0, 0, -10)
	c.SetRotation(0, 0, 0)
	tr := graphics.NewTransforms(800, 600, 0.1, 1000)

	mvp := tr.World().Mul4(c.ViewMatrix()).Mul4(tr.Projection())
	for _, v := range graphics.TriangleVertices {
		clip := graphics.TransformPoint(v.Position, mvp)
		if clip.W() <= 0 {
			t.Fatalf("vertex %v behind the camera (w=%v)", v.Position, clip.W())
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		if ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 || ndc.Z() < 0 || ndc.Z() > 1 {
			t.Fatalf("vertex %v projects outside the viewport: %v", v.Position, ndc)
		}
	}

	// Camera looks toward +Z: the apex stays above the centre.
	apex := graphics.TransformCoord(graphics.TriangleVertices[1].Position, mvp)
	if apex.Y() <= 0 || apex.X() != 0 {
		t.Fatalf("apex = %v, want on +Y axis", apex)
	}
}
