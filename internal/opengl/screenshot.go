package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// ReadPixels copies the current read framebuffer as tightly packed RGBA8,
// bottom row first.
func ReadPixels(width, height int) []byte {
	pix := make([]byte, width*height*4)
	if len(pix) == 0 {
		return pix
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	CheckError("read pixels")
	return pix
}
