package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ErrEmptyHeightmap is returned for a heightmap image with no pixels.
var ErrEmptyHeightmap = errors.New("heightmap image is empty")

// Heightmap is a grid of normalised heights in [0, 1], one per sample.
// Samples are Step source pixels apart.
type Heightmap struct {
	Width   int // samples along X
	Depth   int // samples along Z
	Step    int
	Heights []float32 // row-major, Depth rows of Width samples
}

// LoadHeightmap decodes an image from disk and samples it every step pixels.
func LoadHeightmap(path string, step int) (*Heightmap, error) {
	img, _, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	hm, err := NewHeightmap(img, step)
	if err != nil {
		return nil, fmt.Errorf("heightmap %q: %w", path, err)
	}
	return hm, nil
}

// NewHeightmap builds a heightmap from the luminance of img. With step > 1
// the image is resampled down to ceil(w/step) x ceil(h/step) samples.
func NewHeightmap(img image.Image, step int) (*Heightmap, error) {
	if step < 1 {
		return nil, fmt.Errorf("invalid sample step %d", step)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyHeightmap
	}

	w := (b.Dx() + step - 1) / step
	d := (b.Dy() + step - 1) / step
	gray := image.NewGray16(image.Rect(0, 0, w, d))
	if step == 1 {
		draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(gray, gray.Bounds(), img, b, draw.Src, nil)
	}

	hm := &Heightmap{
		Width:   w,
		Depth:   d,
		Step:    step,
		Heights: make([]float32, w*d),
	}
	for z := 0; z < d; z++ {
		for x := 0; x < w; x++ {
			hm.Heights[z*w+x] = float32(gray.Gray16At(x, z).Y) / float32(0xffff)
		}
	}
	return hm, nil
}

// At returns the height at sample (x, z), clamping to the edges.
func (h *Heightmap) At(x, z int) float32 {
	x = max(0, min(x, h.Width-1))
	z = max(0, min(z, h.Depth-1))
	return h.Heights[z*h.Width+x]
}

// Luminance is the grey level NewHeightmap reads from a colour, in [0, 1].
func Luminance(c color.Color) float32 {
	return float32(color.Gray16Model.Convert(c).(color.Gray16).Y) / float32(0xffff)
}
