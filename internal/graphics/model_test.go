package graphics_test

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"color-triangle/internal/graphics"
	"color-triangle/internal/graphics/graphicstest"
)

func TestNewModelUploadsTriangle(t *testing.T) {
	dev := graphicstest.NewDevice()
	m, err := graphics.NewModel(dev, graphics.TriangleVertices, graphics.TriangleIndices)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if m.VertexCount() != 3 || m.IndexCount() != 3 {
		t.Fatalf("counts = %d/%d, want 3/3", m.VertexCount(), m.IndexCount())
	}

	vb, _ := dev.BufferOf(graphics.VertexBuffer)
	verts := dev.Buffers[vb]
	if len(verts) != 3*28 {
		t.Fatalf("vertex buffer = %d bytes, want %d", len(verts), 3*28)
	}
	// second vertex, y of position
	y := math.Float32frombits(binary.LittleEndian.Uint32(verts[28+4:]))
	if y != 1 {
		t.Fatalf("apex y = %v, want 1", y)
	}

	ib, _ := dev.BufferOf(graphics.IndexBuffer)
	idx := dev.Buffers[ib]
	for i, want := range graphics.TriangleIndices {
		if got := binary.LittleEndian.Uint32(idx[i*4:]); got != want {
			t.Fatalf("index %d = %d, want %d", i, got, want)
		}
	}
}

func TestNewModelValidation(t *testing.T) {
	dev := graphicstest.NewDevice()
	tests := []struct {
		name     string
		vertices []graphics.Vertex
		indices  []uint32
	}{
		{name: "no vertices", indices: []uint32{0}},
		{name: "no indices", vertices: graphics.TriangleVertices},
		{name: "index out of range", vertices: graphics.TriangleVertices, indices: []uint32{0, 1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := graphics.NewModel(dev, tt.vertices, tt.indices); err == nil {
				t.Fatalf("NewModel succeeded")
			}
		})
	}
	if len(dev.Buffers) != 0 {
		t.Fatalf("invalid geometry created buffers")
	}
}

func TestNewModelReleasesVertexBufferOnIndexFailure(t *testing.T) {
	dev := graphicstest.NewDevice()
	dev.FailCreate = map[graphics.BufferKind]error{graphics.IndexBuffer: errors.New("out of memory")}

	if _, err := graphics.NewModel(dev, graphics.TriangleVertices, graphics.TriangleIndices); err == nil {
		t.Fatalf("NewModel succeeded")
	}
	if len(dev.Buffers) != 0 {
		t.Fatalf("leaked buffers: %v", dev.Buffers)
	}
}

func TestModelDispose(t *testing.T) {
	dev := graphicstest.NewDevice()
	m, err := graphics.NewModel(dev, graphics.TriangleVertices, graphics.TriangleIndices)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if err := m.Bind(); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	m.Dispose()
	m.Dispose()
	if len(dev.Buffers) != 0 {
		t.Fatalf("buffers alive after Dispose")
	}
	if err := m.Bind(); !errors.Is(err, graphics.ErrReleased) {
		t.Fatalf("Bind after Dispose err = %v, want ErrReleased", err)
	}
}
