package graphics_test

import (
	"os"
	"path/filepath"
	"testing"

	"color-triangle/internal/graphics"
	"color-triangle/internal/graphics/graphicstest"
)

func writeShaders(t *testing.T) (string, string) {
	t.Helper()
	vert, frag := graphics.ShaderPaths(t.TempDir())
	if err := os.WriteFile(vert, []byte("void main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(frag, []byte("void main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	return vert, frag
}

func TestNewColorShader(t *testing.T) {
	dev := graphicstest.NewDevice()
	vert, frag := writeShaders(t)

	s, err := graphics.NewColorShader(dev, graphics.NewBindings(dev), vert, frag)
	if err != nil {
		t.Fatalf("NewColorShader: %v", err)
	}
	if len(dev.Programs) != 1 {
		t.Fatalf("programs = %d, want 1", len(dev.Programs))
	}
	if _, ok := dev.BufferOf(graphics.UniformBuffer); !ok {
		t.Fatalf("no parameter block created")
	}

	s.Draw(3)
	if len(dev.Draws) != 1 || dev.Draws[0] != 3 {
		t.Fatalf("draws = %v, want [3]", dev.Draws)
	}

	s.Dispose()
	s.Dispose()
	if len(dev.Programs) != 0 || len(dev.Buffers) != 0 {
		t.Fatalf("resources alive after Dispose")
	}
}

func TestNewColorShaderMissingFile(t *testing.T) {
	dev := graphicstest.NewDevice()
	dir := t.TempDir()
	_, err := graphics.NewColorShader(dev, graphics.NewBindings(dev), filepath.Join(dir, "none.vert"), filepath.Join(dir, "none.frag"))
	if err == nil {
		t.Fatalf("NewColorShader succeeded without files")
	}
}

func TestNewColorShaderWithoutMatrixBlock(t *testing.T) {
	dev := graphicstest.NewDevice()
	dev.Declared = nil
	vert, frag := writeShaders(t)

	if _, err := graphics.NewColorShader(dev, graphics.NewBindings(dev), vert, frag); err == nil {
		t.Fatalf("NewColorShader succeeded without a MatrixBuffer block")
	}
	if len(dev.Programs) != 0 {
		t.Fatalf("program leaked")
	}
}
