// Package gldevice implements graphics.Device on an OpenGL 4.1 core context
// owned by a GLFW window.
package gldevice

import (
	"errors"
	"fmt"
	"unsafe"

	"color-triangle/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Info identifies the GL implementation the device runs on.
type Info struct {
	Renderer string
	Vendor   string
	Version  string
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s), OpenGL %s", i.Renderer, i.Vendor, i.Version)
}

type bufferInfo struct {
	target uint32
	size   int
}

// Device renders into the default framebuffer of a GLFW window.
type Device struct {
	window *glfw.Window
	width  int
	height int
	info   Info

	vao      uint32
	buffers  map[graphics.Buffer]bufferInfo
	programs map[uint32]struct{}
	mapped   graphics.Buffer

	swapInterval int
}

// New loads the GL bindings for the window's current context and sets up
// the fixed pipeline state. The window's context must be current.
func New(window *glfw.Window, width, height int) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}

	d := &Device{
		window:       window,
		width:        width,
		height:       height,
		buffers:      make(map[graphics.Buffer]bufferInfo),
		programs:     make(map[uint32]struct{}),
		swapInterval: -1,
	}
	d.info = Info{
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	// Geometry is authored clockwise for the left-handed projection.
	gl.FrontFace(gl.CW)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	if code := gl.GetError(); code != gl.NO_ERROR {
		d.Close()
		return nil, fmt.Errorf("init pipeline state: gl error 0x%x", code)
	}
	return d, nil
}

// Info returns the renderer, vendor and version strings read at creation.
func (d *Device) Info() Info {
	return d.info
}

func (d *Device) Size() (int, int) {
	return d.width, d.height
}

func targetFor(kind graphics.BufferKind) (uint32, error) {
	switch kind {
	case graphics.VertexBuffer:
		return gl.ARRAY_BUFFER, nil
	case graphics.IndexBuffer:
		return gl.ELEMENT_ARRAY_BUFFER, nil
	case graphics.UniformBuffer:
		return gl.UNIFORM_BUFFER, nil
	}
	return 0, fmt.Errorf("unsupported buffer kind %v", kind)
}

func (d *Device) CreateBuffer(desc graphics.BufferDesc, data []byte) (graphics.Buffer, error) {
	if desc.Size <= 0 {
		return 0, errors.New("buffer size must be positive")
	}
	if data != nil && len(data) != desc.Size {
		return 0, fmt.Errorf("%v buffer: %d bytes of data for size %d", desc.Kind, len(data), desc.Size)
	}
	target, err := targetFor(desc.Kind)
	if err != nil {
		return 0, err
	}

	usage := uint32(gl.STATIC_DRAW)
	if desc.Usage == graphics.UsageDynamic {
		usage = gl.DYNAMIC_DRAW
	}

	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(target, id)
	var ptr unsafe.Pointer
	if data != nil {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(target, desc.Size, ptr, usage)
	gl.BindBuffer(target, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteBuffers(1, &id)
		return 0, fmt.Errorf("create %v buffer: gl error 0x%x", desc.Kind, code)
	}

	b := graphics.Buffer(id)
	d.buffers[b] = bufferInfo{target: target, size: desc.Size}
	return b, nil
}

func (d *Device) ReleaseBuffer(b graphics.Buffer) {
	if _, ok := d.buffers[b]; !ok {
		return
	}
	delete(d.buffers, b)
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (d *Device) MapDiscard(b graphics.Buffer) ([]byte, error) {
	info, ok := d.buffers[b]
	if !ok {
		return nil, fmt.Errorf("map buffer %d: %w", b, graphics.ErrReleased)
	}
	if d.mapped != 0 {
		return nil, fmt.Errorf("map buffer %d: buffer %d still mapped", b, d.mapped)
	}
	gl.BindBuffer(info.target, uint32(b))
	ptr := gl.MapBufferRange(info.target, 0, info.size, gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_BUFFER_BIT)
	if ptr == nil {
		code := gl.GetError()
		gl.BindBuffer(info.target, 0)
		return nil, fmt.Errorf("map buffer %d: gl error 0x%x", b, code)
	}
	d.mapped = b
	return unsafe.Slice((*byte)(ptr), info.size), nil
}

func (d *Device) Unmap(b graphics.Buffer) error {
	info, ok := d.buffers[b]
	if !ok || d.mapped != b {
		return fmt.Errorf("unmap buffer %d: not mapped", b)
	}
	d.mapped = 0
	gl.BindBuffer(info.target, uint32(b))
	ok = gl.UnmapBuffer(info.target)
	gl.BindBuffer(info.target, 0)
	if !ok {
		return fmt.Errorf("unmap buffer %d: contents lost", b)
	}
	return nil
}

func (d *Device) BindGeometry(vertices, indices graphics.Buffer, layout graphics.VertexLayout) {
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(vertices))
	for _, a := range layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Components, gl.FLOAT, false, layout.Stride, gl.PtrOffset(a.Offset))
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(indices))
}

func (d *Device) BindUniformBlock(slot uint32, b graphics.Buffer) {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, slot, uint32(b))
}

func (d *Device) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) DrawIndexed(count int) {
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, gl.PtrOffset(0))
}

// Present swaps the back buffer. Under PresentVSync the swap blocks until
// vertical blank.
func (d *Device) Present(mode graphics.PresentMode) error {
	interval := 0
	if mode == graphics.PresentVSync {
		interval = 1
	}
	if interval != d.swapInterval {
		glfw.SwapInterval(interval)
		d.swapInterval = interval
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("present: gl error 0x%x", code)
	}
	d.window.SwapBuffers()
	return nil
}

// ReadFramebuffer reads the back buffer as bottom-up RGBA8 rows.
func (d *Device) ReadFramebuffer() (int, int, []byte, error) {
	pix := make([]byte, d.width*d.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(d.width), int32(d.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return 0, 0, nil, fmt.Errorf("read framebuffer: gl error 0x%x", code)
	}
	return d.width, d.height, pix, nil
}

// Close deletes every object the device still owns.
func (d *Device) Close() {
	for b := range d.buffers {
		d.ReleaseBuffer(b)
	}
	for p := range d.programs {
		d.ReleaseProgram(graphics.Program(p))
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}
