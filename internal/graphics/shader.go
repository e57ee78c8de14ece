package graphics

import (
	"fmt"
	"os"
	"path/filepath"
)

// MatrixBufferName is the uniform block the color shader reads its
// transforms from.
const MatrixBufferName = "MatrixBuffer"

// ColorShader draws vertex-colored geometry transformed by a TransformSet.
type ColorShader struct {
	device  Device
	program Program
	params  *ParameterBlock
	freed   bool
}

// ShaderPaths returns the vertex and fragment shader files inside dir.
func ShaderPaths(dir string) (vertexPath, fragmentPath string) {
	return filepath.Join(dir, "color.vert"), filepath.Join(dir, "color.frag")
}

// NewColorShader reads the shader sources, builds the program and creates
// its parameter block on the resolved MatrixBuffer binding.
func NewColorShader(device Device, bindings *Bindings, vertexPath, fragmentPath string) (*ColorShader, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader file: %v", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader file: %v", err)
	}

	return newColorShader(device, bindings, string(vertexSource), string(fragmentSource))
}

func newColorShader(device Device, bindings *Bindings, vertexSrc, fragmentSrc string) (*ColorShader, error) {
	program, err := device.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}

	binding, err := bindings.Resolve(program, MatrixBufferName)
	if err != nil {
		device.ReleaseProgram(program)
		return nil, err
	}

	params, err := NewParameterBlock(device, binding)
	if err != nil {
		device.ReleaseProgram(program)
		return nil, err
	}

	return &ColorShader{device: device, program: program, params: params}, nil
}

// SetParameters uploads the frame's transforms.
func (s *ColorShader) SetParameters(ts TransformSet) error {
	return s.params.Upload(ts.World, ts.View, ts.Projection)
}

// Use activates the shader program.
func (s *ColorShader) Use() {
	s.device.UseProgram(s.program)
}

// Draw issues one indexed draw of indexCount indices with this program.
func (s *ColorShader) Draw(indexCount int) {
	s.Use()
	s.device.DrawIndexed(indexCount)
}

func (s *ColorShader) Dispose() {
	if s.freed {
		return
	}
	s.freed = true
	s.params.Release()
	s.device.ReleaseProgram(s.program)
}
