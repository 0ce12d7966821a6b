package capture

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"testing"
	"time"

	"golang.org/x/image/webp"
)

func TestFlipRows(t *testing.T) {
	// 1x3 image, one byte pattern per row.
	pix := []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}
	FlipRows(pix, 1, 3)
	want := []byte{
		3, 3, 3, 3,
		2, 2, 2, 2,
		1, 1, 1, 1,
	}
	if !bytes.Equal(pix, want) {
		t.Errorf("expected %v, got %v", want, pix)
	}

	// Flipping twice is the identity.
	FlipRows(pix, 1, 3)
	FlipRows(pix, 1, 3)
	if !bytes.Equal(pix, want) {
		t.Errorf("double flip changed data: %v", pix)
	}
}

func TestFromFramebuffer(t *testing.T) {
	// Bottom row red, top row green, alpha zero as many drivers return it.
	pix := []byte{
		255, 0, 0, 0, 255, 0, 0, 0,
		0, 255, 0, 0, 0, 255, 0, 0,
	}
	img, err := FromFramebuffer(pix, 2, 2)
	if err != nil {
		t.Fatalf("FromFramebuffer: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("top-left: expected opaque green, got %v", got)
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("bottom-right: expected opaque red, got %v", got)
	}

	if _, err := FromFramebuffer(make([]byte, 7), 2, 1); err == nil {
		t.Error("size mismatch: expected error")
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 10, 19, 15, 30, 12, 45*int(time.Millisecond), time.UTC)
	if got := Filename(ts); got != "island-20261019-153012-045.webp" {
		t.Errorf("got %q", got)
	}
}

func TestSave(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	dir := t.TempDir() + "/shots"
	path, err := Save(dir, img, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	decoded, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
		t.Errorf("expected 3x2, got %v", decoded.Bounds())
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("lossless pixel: got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}
