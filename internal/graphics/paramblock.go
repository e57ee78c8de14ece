package graphics

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	matrixBytes = 16 * 4
	// MatrixBlockSize is the size of a block holding one TransformSet.
	MatrixBlockSize = 3 * matrixBytes
)

// ParameterBlock is a GPU-visible uniform buffer holding world, view and
// projection matrices. At most one BlockWriter may be outstanding.
type ParameterBlock struct {
	device  Device
	buffer  Buffer
	binding Binding

	writer   *BlockWriter
	released bool
}

// NewParameterBlock creates a dynamic uniform buffer sized for one
// TransformSet and bound through binding.
func NewParameterBlock(device Device, binding Binding) (*ParameterBlock, error) {
	buf, err := device.CreateBuffer(BufferDesc{
		Kind:  UniformBuffer,
		Usage: UsageDynamic,
		Size:  MatrixBlockSize,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create parameter block: %w", err)
	}
	return &ParameterBlock{device: device, buffer: buf, binding: binding}, nil
}

func (p *ParameterBlock) Binding() Binding {
	return p.binding
}

// Acquire maps the block for writing. The caller must Release the writer.
func (p *ParameterBlock) Acquire() (*BlockWriter, error) {
	if p.released {
		return nil, ErrReleased
	}
	if p.writer != nil {
		return nil, ErrBlockBusy
	}
	data, err := p.device.MapDiscard(p.buffer)
	if err != nil {
		return nil, fmt.Errorf("map parameter block: %w", err)
	}
	if len(data) < MatrixBlockSize {
		err := fmt.Errorf("map parameter block: got %d bytes, want %d", len(data), MatrixBlockSize)
		if uerr := p.device.Unmap(p.buffer); uerr != nil {
			err = errors.Join(err, fmt.Errorf("unmap parameter block: %w", uerr))
		}
		return nil, err
	}
	p.writer = &BlockWriter{block: p, data: data}
	return p.writer, nil
}

// Write runs fn with an acquired writer and releases it on every exit path.
func (p *ParameterBlock) Write(fn func(w *BlockWriter) error) (err error) {
	w, err := p.Acquire()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := w.Release(); err == nil {
			err = rerr
		}
	}()
	return fn(w)
}

// Upload transposes the matrices for the column-major shader side, writes
// them in world, view, projection order and binds the block.
func (p *ParameterBlock) Upload(world, view, projection mgl32.Mat4) error {
	ts := TransformSet{World: world, View: view, Projection: projection}.Transposed()
	err := p.Write(func(w *BlockWriter) error {
		for _, m := range [...]mgl32.Mat4{ts.World, ts.View, ts.Projection} {
			if err := w.WriteMatrix(m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.device.BindUniformBlock(p.binding.Slot, p.buffer)
	return nil
}

// Release frees the GPU buffer. It is safe to call more than once.
func (p *ParameterBlock) Release() {
	if p.released {
		return
	}
	if p.writer != nil {
		_ = p.writer.Release()
	}
	p.device.ReleaseBuffer(p.buffer)
	p.released = true
}

// BlockWriter appends matrices to a mapped ParameterBlock.
type BlockWriter struct {
	block *ParameterBlock
	data  []byte
	off   int
	done  bool
}

// WriteMatrix copies m's storage (16 little-endian float32) at the current offset.
func (w *BlockWriter) WriteMatrix(m mgl32.Mat4) error {
	if w.done {
		return ErrReleased
	}
	if w.off+matrixBytes > MatrixBlockSize {
		return fmt.Errorf("parameter block full: offset %d", w.off)
	}
	for i, f := range m {
		binary.LittleEndian.PutUint32(w.data[w.off+i*4:], math.Float32bits(f))
	}
	w.off += matrixBytes
	return nil
}

// Written reports the number of bytes written so far.
func (w *BlockWriter) Written() int {
	return w.off
}

// Release unmaps the block. Later calls are no-ops.
func (w *BlockWriter) Release() error {
	if w.done {
		return nil
	}
	w.done = true
	w.data = nil
	w.block.writer = nil
	if err := w.block.device.Unmap(w.block.buffer); err != nil {
		return fmt.Errorf("unmap parameter block: %w", err)
	}
	return nil
}
