package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"island-demo/internal/logger"
	"island-demo/scene"
)

// Skybox renders a cubemap on a unit cube centred on the camera.
// The vertex shader forces every fragment to NDC depth 1.0, so with depth
// func LEQUAL the sky only fills pixels nothing else has covered.
type Skybox struct {
	vao     uint32
	vbo     uint32
	prog    uint32
	texture uint32

	viewLoc int32
	projLoc int32
	skyLoc  int32
}

const skyVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 view;
uniform mat4 projection;

out vec3 texCoords;

void main() {
    texCoords = inPosition;
    vec4 clipPos = projection * view * vec4(inPosition, 1.0);
    gl_Position = clipPos.xyww;
}
` + "\x00"

const skyFragSrc = `
#version 410 core
in vec3 texCoords;
out vec4 outColor;

uniform samplerCube skybox;

void main() {
    outColor = texture(skybox, texCoords);
}
` + "\x00"

// NewSkybox compiles the cubemap shader and uploads the cube geometry.
// The skybox draws nothing until Load succeeds.
func NewSkybox() (*Skybox, error) {
	prog, err := NewProgram(skyVertSrc, skyFragSrc)
	if err != nil {
		return nil, fmt.Errorf("skybox shader: %w", err)
	}

	sb := &Skybox{
		prog:    prog,
		viewLoc: uniformLocation(prog, "view"),
		projLoc: uniformLocation(prog, "projection"),
		skyLoc:  uniformLocation(prog, "skybox"),
	}

	verts := scene.SkyboxVertices()
	gl.GenVertexArrays(1, &sb.vao)
	gl.GenBuffers(1, &sb.vbo)
	gl.BindVertexArray(sb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, scene.SkyboxStride*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	CheckError("skybox setup")
	return sb, nil
}

// Load decodes the six faces and uploads them as the sky cubemap. A wrong
// face count fails with scene.ErrCubemapFaceCount before any file or GPU
// work. On failure the skybox keeps whatever cubemap it had.
func (sb *Skybox) Load(paths []string) error {
	faces, err := scene.LoadCubemapFaces(paths)
	if err != nil {
		return fmt.Errorf("skybox: %w", err)
	}
	tex, err := UploadCubemap(faces)
	if err != nil {
		return fmt.Errorf("skybox: %w", err)
	}
	if sb.texture != 0 {
		gl.DeleteTextures(1, &sb.texture)
	}
	sb.texture = tex
	logger.Log.Info("skybox loaded",
		zap.Uint32("texture", tex),
		zap.Int("faceSize", faces[0].Width))
	return nil
}

// Loaded reports whether the skybox has everything it needs to draw.
func (sb *Skybox) Loaded() bool {
	return sb.vao != 0 && sb.prog != 0 && sb.texture != 0
}

// Draw renders the sky behind the scene. view is the camera view matrix;
// its translation is dropped here.
func (sb *Skybox) Draw(view, projection mgl32.Mat4) {
	if !sb.Loaded() {
		logger.Log.Warn("skybox not ready, skipping draw",
			zap.Uint32("vao", sb.vao),
			zap.Uint32("program", sb.prog),
			zap.Uint32("texture", sb.texture))
		return
	}

	cull := gl.IsEnabled(gl.CULL_FACE)
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)
	gl.DepthFunc(gl.LEQUAL)

	gl.UseProgram(sb.prog)
	setMat4(sb.viewLoc, scene.SkyboxView(view))
	setMat4(sb.projLoc, projection)
	gl.Uniform1i(sb.skyLoc, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sb.texture)
	gl.BindVertexArray(sb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	gl.UseProgram(0)

	if cull {
		gl.Enable(gl.CULL_FACE)
	}
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)

	CheckError("skybox draw")
}

// Destroy frees all GPU resources owned by this skybox. Calling it twice is
// harmless.
func (sb *Skybox) Destroy() {
	if sb.vao != 0 {
		gl.DeleteVertexArrays(1, &sb.vao)
		sb.vao = 0
	}
	if sb.vbo != 0 {
		gl.DeleteBuffers(1, &sb.vbo)
		sb.vbo = 0
	}
	if sb.texture != 0 {
		gl.DeleteTextures(1, &sb.texture)
		sb.texture = 0
	}
	if sb.prog != 0 {
		gl.DeleteProgram(sb.prog)
		sb.prog = 0
	}
}
