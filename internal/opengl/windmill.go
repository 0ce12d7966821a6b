package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"island-demo/internal/logger"
	"island-demo/scene"
)

// partMesh is one non-indexed windmill part: position, colour and UV
// interleaved as scene.PartStride floats.
type partMesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

func newPartMesh(verts []float32) partMesh {
	m := partMesh{count: int32(len(verts) / scene.PartStride)}
	stride := int32(scene.PartStride * 4)

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (m *partMesh) destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	*m = partMesh{}
}

// Windmill draws the animated windmill with a shared textured-colour
// program: a brick base, a white head and four white blades.
type Windmill struct {
	Params scene.WindmillParams

	prog   uint32
	base   partMesh
	head   partMesh
	blade  partMesh
	bricks *scene.Texture
	white  *scene.Texture

	modelLoc int32
	viewLoc  int32
	projLoc  int32
	texLoc   int32
}

// NewWindmill returns an empty windmill; Setup must run before Draw does
// anything.
func NewWindmill(params scene.WindmillParams) *Windmill {
	return &Windmill{Params: params}
}

// Setup takes a linked program with model/view/projection/textureSampler
// uniforms, loads the brick texture and uploads the part meshes. The
// program stays owned by the caller.
func (w *Windmill) Setup(prog uint32, bricksPath string) error {
	bricks, err := scene.LoadTexture(bricksPath)
	if err != nil {
		return fmt.Errorf("windmill: %w", err)
	}
	if err := UploadTexture(bricks); err != nil {
		return fmt.Errorf("windmill: %w", err)
	}
	white := scene.NewSolidTexture("white", 255, 255, 255, 255)
	if err := UploadTexture(white); err != nil {
		DeleteTexture(bricks)
		return fmt.Errorf("windmill: %w", err)
	}

	w.prog = prog
	w.bricks, w.white = bricks, white
	w.modelLoc = uniformLocation(prog, "model")
	w.viewLoc = uniformLocation(prog, "view")
	w.projLoc = uniformLocation(prog, "projection")
	w.texLoc = uniformLocation(prog, "textureSampler")

	w.base = newPartMesh(scene.WindmillBaseVertices(w.Params))
	w.head = newPartMesh(scene.WindmillHeadVertices())
	w.blade = newPartMesh(scene.BladeVertices())

	CheckError("windmill setup")
	logger.Log.Info("windmill ready",
		zap.String("bricks", bricksPath),
		zap.Int("bricksWidth", bricks.Width),
		zap.Int("bricksHeight", bricks.Height))
	return nil
}

// Draw renders the windmill at animation time t. Every part's world matrix
// is recomputed from t. Nothing is drawn when the windmill is outside the
// view frustum.
func (w *Windmill) Draw(view, projection mgl32.Mat4, t float32) {
	if w.prog == 0 {
		logger.Log.Warn("windmill shader program not set, skipping draw")
		return
	}
	pose := w.Params.Pose(t)
	frustum := scene.FrustumFromVP(projection.Mul4(view))
	if !w.Params.Bounds(pose).IntersectsFrustum(&frustum) {
		return
	}

	gl.UseProgram(w.prog)
	setMat4(w.viewLoc, view)
	setMat4(w.projLoc, projection)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(w.texLoc, 0)

	// Blades are single-sided quads seen from both sides.
	cull := gl.IsEnabled(gl.CULL_FACE)
	gl.Disable(gl.CULL_FACE)

	gl.BindTexture(gl.TEXTURE_2D, w.bricks.GLID)
	w.drawPart(w.base, pose.Base)

	gl.BindTexture(gl.TEXTURE_2D, w.white.GLID)
	w.drawPart(w.head, pose.Head)
	for _, m := range pose.Blades {
		w.drawPart(w.blade, m)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	if cull {
		gl.Enable(gl.CULL_FACE)
	}

	CheckError("windmill draw")
}

func (w *Windmill) drawPart(m partMesh, model mgl32.Mat4) {
	setMat4(w.modelLoc, model)
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

// Destroy frees the meshes and textures. The program is not deleted.
func (w *Windmill) Destroy() {
	w.base.destroy()
	w.head.destroy()
	w.blade.destroy()
	DeleteTexture(w.bricks)
	DeleteTexture(w.white)
	w.bricks, w.white = nil, nil
	w.prog = 0
}
