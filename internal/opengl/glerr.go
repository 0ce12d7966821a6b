package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"island-demo/internal/logger"
)

// maxErrorsPerCheck bounds the drain loop if a lost context keeps
// reporting errors.
const maxErrorsPerCheck = 16

// CheckError drains the GL error queue, logging each error at Warn with the
// call site. It returns how many errors were found; it never aborts.
func CheckError(where string) int {
	n := 0
	for ; n < maxErrorsPerCheck; n++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		logger.Log.Warn("gl error",
			zap.String("where", where),
			zap.String("error", ErrorName(code)))
	}
	return n
}

// ErrorName returns the symbolic name of a GL error code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case gl.STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	}
	return fmt.Sprintf("GL_ERROR_0x%04X", code)
}
