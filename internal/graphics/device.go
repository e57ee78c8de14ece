package graphics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrBlockBusy is returned when a parameter block already has a writer.
	ErrBlockBusy = errors.New("parameter block already acquired")
	// ErrBindingNotFound is returned when a program declares no block of the requested name.
	ErrBindingNotFound = errors.New("uniform block not found")
	// ErrReleased is returned when a released resource is used again.
	ErrReleased = errors.New("resource released")
)

// Buffer is a device-owned GPU buffer handle.
type Buffer uint32

// Program is a device-owned linked shader program handle.
type Program uint32

type BufferKind int

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
	UniformBuffer
)

func (k BufferKind) String() string {
	switch k {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	case UniformBuffer:
		return "uniform"
	}
	return "unknown"
}

type BufferUsage int

const (
	// UsageStatic buffers are written once at creation.
	UsageStatic BufferUsage = iota
	// UsageDynamic buffers are rewritten by the CPU every frame.
	UsageDynamic
)

type BufferDesc struct {
	Kind  BufferKind
	Usage BufferUsage
	Size  int
}

// VertexAttribute describes one float attribute inside an interleaved vertex.
type VertexAttribute struct {
	Location   uint32
	Components int32
	Offset     int
}

type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttribute
}

// PresentMode selects how a finished frame reaches the display.
type PresentMode int

const (
	// PresentVSync waits for vertical blank.
	PresentVSync PresentMode = iota
	// PresentImmediate presents as soon as rendering finishes.
	PresentImmediate
)

func (m PresentMode) String() string {
	if m == PresentVSync {
		return "vsync"
	}
	return "immediate"
}

// Device is the capability set the renderer needs from a graphics backend.
// All methods must be called from the rendering thread.
type Device interface {
	CreateBuffer(desc BufferDesc, data []byte) (Buffer, error)
	ReleaseBuffer(b Buffer)

	// MapDiscard gives write access to the whole buffer. Previous contents
	// are discarded. Every successful map must be paired with Unmap.
	MapDiscard(b Buffer) ([]byte, error)
	Unmap(b Buffer) error

	CreateProgram(vertexSrc, fragmentSrc string) (Program, error)
	ReleaseProgram(p Program)
	// AssignUniformBlock points the program's named uniform block at slot.
	AssignUniformBlock(p Program, name string, slot uint32) error

	UseProgram(p Program)
	BindGeometry(vertices, indices Buffer, layout VertexLayout)
	BindUniformBlock(slot uint32, b Buffer)

	Clear(color mgl32.Vec4)
	DrawIndexed(count int)
	Present(mode PresentMode) error
}
