package opengl

import (
	"fmt"
	"io/fs"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"island-demo/internal/logger"
)

// LoadShaders reads a vertex and fragment shader from fsys and links them.
// On failure the returned handle is 0 and the error carries the driver log.
func LoadShaders(fsys fs.FS, vertPath, fragPath string) (uint32, error) {
	vertSrc, err := fs.ReadFile(fsys, vertPath)
	if err != nil {
		return 0, fmt.Errorf("read vertex shader: %w", err)
	}
	fragSrc, err := fs.ReadFile(fsys, fragPath)
	if err != nil {
		return 0, fmt.Errorf("read fragment shader: %w", err)
	}

	prog, err := NewProgram(string(vertSrc), string(fragSrc))
	if err != nil {
		logger.Log.Error("shader program failed",
			zap.String("vertex", vertPath),
			zap.String("fragment", fragPath),
			zap.Error(err))
		return 0, fmt.Errorf("program %s + %s: %w", vertPath, fragPath, err)
	}
	logger.Log.Debug("shader program linked",
		zap.String("vertex", vertPath),
		zap.String("fragment", fragPath),
		zap.Uint32("program", prog))
	return prog, nil
}

// NewProgram compiles and links a program from in-memory sources. The shader
// objects are deleted whether or not linking succeeds.
func NewProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(glSource(vertSrc), gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(glSource(fragSrc), gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DetachShader(prog, vert)
	gl.DetachShader(prog, frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", trimLog(log))
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", trimLog(log))
	}
	return shader, nil
}

// glSource NUL-terminates a shader source for the C API.
func glSource(src string) string {
	if strings.HasSuffix(src, "\x00") {
		return src
	}
	return src + "\x00"
}

func trimLog(log string) string {
	return strings.TrimRight(log, "\x00\n ")
}

func uniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(glSource(name)))
}

func setMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func setVec3(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}
