// Package capture writes rendered frames to BMP files.
package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

// Source reads back the frame that is about to be presented as bottom-up
// RGBA8 rows.
type Source interface {
	ReadFramebuffer() (width, height int, pix []byte, err error)
}

// Frame reads src into a top-down image.
func Frame(src Source) (*image.RGBA, error) {
	w, h, pix, err := src.ReadFramebuffer()
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 || len(pix) != w*h*4 {
		return nil, fmt.Errorf("capture: %d bytes for %dx%d frame", len(pix), w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stride := w * 4
	for y := 0; y < h; y++ {
		row := pix[(h-1-y)*stride : (h-y)*stride]
		copy(img.Pix[y*img.Stride:], row)
	}
	return img, nil
}

// Capturer saves numbered captures into a directory.
type Capturer struct {
	src  Source
	dir  string
	next int
}

func NewCapturer(src Source, dir string) *Capturer {
	return &Capturer{src: src, dir: dir}
}

// Capture writes the current frame to capture-<n>.bmp and returns its path.
func (c *Capturer) Capture() (string, error) {
	img, err := Frame(c.src)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	path := filepath.Join(c.dir, fmt.Sprintf("capture-%d.bmp", c.next))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("capture: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	c.next++
	return path, nil
}
