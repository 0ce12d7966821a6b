// Package capture turns framebuffer contents into WebP screenshots.
package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// FlipRows reverses the row order of a tightly packed RGBA8 buffer in place.
// OpenGL returns pixels bottom row first.
func FlipRows(pix []byte, width, height int) {
	stride := width * 4
	tmp := make([]byte, stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// FromFramebuffer wraps pixels read with glReadPixels as an opaque image
// with the top row first. pix is modified.
func FromFramebuffer(pix []byte, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("capture: %d bytes for %dx%d framebuffer", len(pix), width, height)
	}
	FlipRows(pix, width, height)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 0xff
	}
	return &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}, nil
}

// Filename names a screenshot taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("island-%s-%03d.webp", t.Format("20060102-150405"), t.Nanosecond()/int(time.Millisecond))
}

// Save encodes img as lossless WebP into dir, creating dir if needed, and
// returns the written path.
func Save(dir string, img image.Image, t time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	path := filepath.Join(dir, Filename(t))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("capture: webp encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	return path, nil
}
