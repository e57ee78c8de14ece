// Package graphicstest provides an in-memory graphics.Device for tests.
package graphicstest

import (
	"errors"
	"fmt"

	"color-triangle/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Device records every call and keeps buffer contents in memory.
// The Fail* fields inject errors into the matching operation.
type Device struct {
	Calls []string

	Buffers  map[graphics.Buffer][]byte
	Kinds    map[graphics.Buffer]graphics.BufferKind
	Programs map[graphics.Program]bool
	// Blocks maps program -> block name -> slot.
	Blocks map[graphics.Program]map[string]uint32
	// Declared lists the uniform block names every program exposes.
	Declared []string
	// Bound maps slot -> buffer.
	Bound map[uint32]graphics.Buffer

	Mapped   graphics.Buffer
	Draws    []int
	Presents []graphics.PresentMode
	Clears   []mgl32.Vec4

	// MapSize, when positive, truncates the slice MapDiscard returns.
	MapSize int

	FailCreate  map[graphics.BufferKind]error
	FailMap     error
	FailUnmap   error
	FailProgram error
	FailPresent error

	nextBuffer  graphics.Buffer
	nextProgram graphics.Program
}

func NewDevice() *Device {
	return &Device{
		Buffers:  make(map[graphics.Buffer][]byte),
		Kinds:    make(map[graphics.Buffer]graphics.BufferKind),
		Programs: make(map[graphics.Program]bool),
		Blocks:   make(map[graphics.Program]map[string]uint32),
		Declared: []string{graphics.MatrixBufferName},
		Bound:    make(map[uint32]graphics.Buffer),
	}
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) CreateBuffer(desc graphics.BufferDesc, data []byte) (graphics.Buffer, error) {
	d.record("CreateBuffer %v", desc.Kind)
	if err := d.FailCreate[desc.Kind]; err != nil {
		return 0, err
	}
	if data != nil && len(data) != desc.Size {
		return 0, fmt.Errorf("%d bytes for size %d", len(data), desc.Size)
	}
	d.nextBuffer++
	b := d.nextBuffer
	buf := make([]byte, desc.Size)
	copy(buf, data)
	d.Buffers[b] = buf
	d.Kinds[b] = desc.Kind
	return b, nil
}

func (d *Device) ReleaseBuffer(b graphics.Buffer) {
	d.record("ReleaseBuffer %d", b)
	delete(d.Buffers, b)
	delete(d.Kinds, b)
}

func (d *Device) MapDiscard(b graphics.Buffer) ([]byte, error) {
	d.record("MapDiscard %d", b)
	if d.FailMap != nil {
		return nil, d.FailMap
	}
	buf, ok := d.Buffers[b]
	if !ok {
		return nil, graphics.ErrReleased
	}
	if d.Mapped != 0 {
		return nil, errors.New("already mapped")
	}
	d.Mapped = b
	// Discard: the writer must not see the previous frame.
	clear(buf)
	if d.MapSize > 0 && d.MapSize < len(buf) {
		buf = buf[:d.MapSize]
	}
	return buf, nil
}

func (d *Device) Unmap(b graphics.Buffer) error {
	d.record("Unmap %d", b)
	if d.Mapped != b {
		return errors.New("not mapped")
	}
	d.Mapped = 0
	return d.FailUnmap
}

func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (graphics.Program, error) {
	d.record("CreateProgram")
	if d.FailProgram != nil {
		return 0, d.FailProgram
	}
	d.nextProgram++
	d.Programs[d.nextProgram] = true
	d.Blocks[d.nextProgram] = make(map[string]uint32)
	return d.nextProgram, nil
}

func (d *Device) ReleaseProgram(p graphics.Program) {
	d.record("ReleaseProgram %d", p)
	delete(d.Programs, p)
}

func (d *Device) AssignUniformBlock(p graphics.Program, name string, slot uint32) error {
	d.record("AssignUniformBlock %d %s %d", p, name, slot)
	for _, n := range d.Declared {
		if n == name {
			d.Blocks[p][name] = slot
			return nil
		}
	}
	return fmt.Errorf("%w: %s", graphics.ErrBindingNotFound, name)
}

func (d *Device) UseProgram(p graphics.Program) {
	d.record("UseProgram %d", p)
}

func (d *Device) BindGeometry(vertices, indices graphics.Buffer, layout graphics.VertexLayout) {
	d.record("BindGeometry %d %d", vertices, indices)
}

func (d *Device) BindUniformBlock(slot uint32, b graphics.Buffer) {
	d.record("BindUniformBlock %d %d", slot, b)
	d.Bound[slot] = b
}

func (d *Device) Clear(color mgl32.Vec4) {
	d.record("Clear")
	d.Clears = append(d.Clears, color)
}

func (d *Device) DrawIndexed(count int) {
	d.record("DrawIndexed %d", count)
	d.Draws = append(d.Draws, count)
}

func (d *Device) Present(mode graphics.PresentMode) error {
	d.record("Present %v", mode)
	if d.FailPresent != nil {
		return d.FailPresent
	}
	d.Presents = append(d.Presents, mode)
	return nil
}

// BufferOf returns the first live buffer of the given kind.
func (d *Device) BufferOf(kind graphics.BufferKind) (graphics.Buffer, bool) {
	for b := graphics.Buffer(1); b <= d.nextBuffer; b++ {
		if k, ok := d.Kinds[b]; ok && k == kind {
			return b, true
		}
	}
	return 0, false
}
