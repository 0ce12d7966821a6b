package scene

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// CubemapFaceCount is the number of images a cubemap is built from, in
// +X, -X, +Y, -Y, +Z, -Z order.
const CubemapFaceCount = 6

// ErrCubemapFaceCount is returned when a cubemap is requested with anything
// other than six face paths.
var ErrCubemapFaceCount = errors.New("cubemap needs exactly 6 faces")

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom),
	// alpha not premultiplied.
	Pixels []byte
	GLID   uint32
}

// imageFormat is a decoder chosen by the file's leading bytes. '?' in magic
// matches any byte.
type imageFormat struct {
	name   string
	magic  string
	decode func(io.Reader) (image.Image, error)
}

// TGA has no magic number and its package registers with image.Decode as
// matching everything, so formats are dispatched here instead and TGA is
// picked by file extension.
var imageFormats = []imageFormat{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode},
	{"jpeg", "\xff\xd8", jpeg.Decode},
	{"bmp", "BM????\x00\x00\x00\x00", bmp.Decode},
	{"webp", "RIFF????WEBPVP8", webp.Decode},
}

func matchMagic(magic string, b []byte) bool {
	if len(b) != len(magic) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// DecodeImage opens and decodes a PNG, JPEG, BMP, WebP or TGA file and
// returns the format name alongside the image.
func DecodeImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for _, format := range imageFormats {
		head, err := r.Peek(len(format.magic))
		if err != nil || !matchMagic(format.magic, head) {
			continue
		}
		img, err := format.decode(r)
		if err != nil {
			return nil, format.name, fmt.Errorf("decode %s image %q: %w", format.name, path, err)
		}
		return img, format.name, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := tga.Decode(r)
		if err != nil {
			return nil, "tga", fmt.Errorf("decode tga image %q: %w", path, err)
		}
		return img, "tga", nil
	}
	return nil, "", fmt.Errorf("decode image %q: %w", path, image.ErrFormat)
}

// LoadTexture reads an image from disk and returns it as an RGBA8 Texture.
func LoadTexture(path string) (*Texture, error) {
	img, _, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return TextureFromImage(path, img), nil
}

// TextureFromImage converts img to a tightly packed RGBA8 Texture.
func TextureFromImage(name string, img image.Image) *Texture {
	rgba := toNRGBA(img)
	return &Texture{
		Name:   name,
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Pixels: rgba.Pix,
	}
}

func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// LoadCubemapFaces decodes the six faces of a cubemap. The face count is
// checked before anything is read from disk.
func LoadCubemapFaces(paths []string) ([CubemapFaceCount]*Texture, error) {
	var faces [CubemapFaceCount]*Texture
	if len(paths) != CubemapFaceCount {
		return faces, fmt.Errorf("%w: got %d", ErrCubemapFaceCount, len(paths))
	}
	for i, p := range paths {
		tex, err := LoadTexture(p)
		if err != nil {
			return [CubemapFaceCount]*Texture{}, fmt.Errorf("cubemap face %d: %w", i, err)
		}
		faces[i] = tex
	}
	return faces, nil
}

// SkyboxView drops the translation from a view matrix so the sky stays
// centred on the camera.
func SkyboxView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}
