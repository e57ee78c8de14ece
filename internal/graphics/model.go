package graphics

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a position plus an RGBA color, interleaved.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

const vertexBytes = (3 + 4) * 4

// ColorVertexLayout matches Vertex: position at location 0, color at location 1.
var ColorVertexLayout = VertexLayout{
	Stride: vertexBytes,
	Attributes: []VertexAttribute{
		{Location: 0, Components: 3, Offset: 0},
		{Location: 1, Components: 4, Offset: 3 * 4},
	},
}

// Triangle vertices are listed clockwise; the rasterizer culls
// counter-clockwise faces.
var (
	TriangleVertices = []Vertex{
		{Position: mgl32.Vec3{-1, -1, 0}, Color: mgl32.Vec4{1, 0, 0, 1}}, // bottom left
		{Position: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec4{1, 0, 0, 1}},   // top middle
		{Position: mgl32.Vec3{1, -1, 0}, Color: mgl32.Vec4{1, 0, 0, 1}},  // bottom right
	}
	TriangleIndices = []uint32{0, 1, 2}
)

// Model is immutable indexed geometry living in device buffers.
type Model struct {
	device       Device
	vertexBuffer Buffer
	indexBuffer  Buffer
	vertexCount  int
	indexCount   int
	released     bool
}

// NewModel uploads vertices and indices into static device buffers.
func NewModel(device Device, vertices []Vertex, indices []uint32) (*Model, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, errors.New("model: empty geometry")
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("model: index %d at %d out of range (%d vertices)", idx, i, len(vertices))
		}
	}

	vb, err := device.CreateBuffer(BufferDesc{
		Kind:  VertexBuffer,
		Usage: UsageStatic,
		Size:  len(vertices) * vertexBytes,
	}, encodeVertices(vertices))
	if err != nil {
		return nil, fmt.Errorf("model: create vertex buffer: %w", err)
	}

	ib, err := device.CreateBuffer(BufferDesc{
		Kind:  IndexBuffer,
		Usage: UsageStatic,
		Size:  len(indices) * 4,
	}, encodeIndices(indices))
	if err != nil {
		device.ReleaseBuffer(vb)
		return nil, fmt.Errorf("model: create index buffer: %w", err)
	}

	return &Model{
		device:       device,
		vertexBuffer: vb,
		indexBuffer:  ib,
		vertexCount:  len(vertices),
		indexCount:   len(indices),
	}, nil
}

// Bind puts the vertex and index buffers on the pipeline.
func (m *Model) Bind() error {
	if m.released {
		return ErrReleased
	}
	m.device.BindGeometry(m.vertexBuffer, m.indexBuffer, ColorVertexLayout)
	return nil
}

func (m *Model) VertexCount() int {
	return m.vertexCount
}

func (m *Model) IndexCount() int {
	return m.indexCount
}

// Dispose releases both buffers. It is safe to call more than once.
func (m *Model) Dispose() {
	if m.released {
		return
	}
	m.device.ReleaseBuffer(m.indexBuffer)
	m.device.ReleaseBuffer(m.vertexBuffer)
	m.released = true
}

func encodeVertices(vertices []Vertex) []byte {
	out := make([]byte, 0, len(vertices)*vertexBytes)
	for _, v := range vertices {
		out = appendFloats(out, v.Position[:]...)
		out = appendFloats(out, v.Color[:]...)
	}
	return out
}

func encodeIndices(indices []uint32) []byte {
	out := make([]byte, 0, len(indices)*4)
	for _, idx := range indices {
		out = binary.LittleEndian.AppendUint32(out, idx)
	}
	return out
}

func appendFloats(dst []byte, fs ...float32) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
