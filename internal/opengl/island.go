package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"island-demo/internal/logger"
	"island-demo/scene"
)

// Fog applied to the island, fading toward the horizon colour.
var (
	FogColor   = mgl32.Vec3{0.70, 0.78, 0.86}
	FogDensity = float32(0.00035)
)

const islandVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 view;
uniform mat4 projection;

out vec3 worldPos;
out vec3 normal;
out vec2 gridUV;

void main() {
    worldPos = inPosition;
    normal = inNormal;
    gridUV = inUV;
    gl_Position = projection * view * vec4(inPosition, 1.0);
}
` + "\x00"

// The layer weights must stay in step with scene.BlendWeights.
const islandFragSrc = `
#version 410 core
in vec3 worldPos;
in vec3 normal;
in vec2 gridUV;
out vec4 outColor;

uniform sampler2D sandTex;
uniform sampler2D grassTex;
uniform sampler2D rockTex;
uniform vec3 tiling;

uniform float seaLevel;
uniform float sandTop;
uniform float grassTop;
uniform float slopeRockStart;
uniform float blendBand;

uniform vec3 sunDir;
uniform vec3 sunColor;
uniform float sunIntensity;
uniform float ambient;

uniform vec3 cameraPos;
uniform vec3 fogColor;
uniform float fogDensity;

void main() {
    vec3 n = normalize(normal);

    float h = worldPos.y - seaLevel;
    float grassAmt = smoothstep(sandTop - blendBand * 0.5, sandTop + blendBand * 0.5, h);
    float rockAmt = smoothstep(grassTop - blendBand * 0.5, grassTop + blendBand * 0.5, h);
    float slopeRock = smoothstep(slopeRockStart, slopeRockStart + 0.2, 1.0 - n.y);
    float rock = max(rockAmt, slopeRock);
    float sand = (1.0 - grassAmt) * (1.0 - rock);
    float grass = grassAmt * (1.0 - rock);

    vec3 albedo = texture(sandTex, gridUV / tiling.x).rgb * sand
                + texture(grassTex, gridUV / tiling.y).rgb * grass
                + texture(rockTex, gridUV / tiling.z).rgb * rock;

    float diffuse = max(dot(n, normalize(-sunDir)), 0.0) * sunIntensity;
    vec3 color = albedo * (vec3(ambient) + sunColor * diffuse);

    float dist = length(cameraPos - worldPos);
    float fog = clamp(exp(-fogDensity * dist), 0.0, 1.0);
    outColor = vec4(mix(fogColor, color, fog), 1.0);
}
` + "\x00"

// Island renders the heightmap terrain with a sand/grass/rock blend, a
// directional sun and distance fog.
type Island struct {
	Terrain *scene.Terrain

	vao, vbo, ebo uint32
	indexCount    int32
	prog          uint32

	textures [3]*scene.Texture // sand, grass, rock
	tiling   mgl32.Vec3
	blend    scene.BlendParams
	sun      scene.SunLight

	loc map[string]int32
}

var islandUniforms = []string{
	"view", "projection",
	"sandTex", "grassTex", "rockTex", "tiling",
	"seaLevel", "sandTop", "grassTop", "slopeRockStart", "blendBand",
	"sunDir", "sunColor", "sunIntensity", "ambient",
	"cameraPos", "fogColor", "fogDensity",
}

// NewIsland loads a heightmap, samples it every sampleStep pixels and
// uploads the resulting terrain mesh.
func NewIsland(heightmapPath string, params scene.TerrainParams, sampleStep int) (*Island, error) {
	hm, err := scene.LoadHeightmap(heightmapPath, sampleStep)
	if err != nil {
		return nil, fmt.Errorf("island: %w", err)
	}
	ter := scene.BuildTerrain(hm, params)
	if len(ter.Indices) == 0 {
		return nil, fmt.Errorf("island: heightmap %q too small for a mesh (%dx%d samples)", heightmapPath, hm.Width, hm.Depth)
	}

	prog, err := NewProgram(islandVertSrc, islandFragSrc)
	if err != nil {
		return nil, fmt.Errorf("island shader: %w", err)
	}

	is := &Island{
		Terrain:    ter,
		prog:       prog,
		indexCount: int32(len(ter.Indices)),
		tiling:     mgl32.Vec3{4, 6, 8},
		blend:      scene.DefaultBlendParams(),
		sun:        scene.DefaultSun(),
		loc:        make(map[string]int32, len(islandUniforms)),
	}
	for _, name := range islandUniforms {
		is.loc[name] = uniformLocation(prog, name)
	}

	stride := int32(scene.TerrainStride * 4)
	gl.GenVertexArrays(1, &is.vao)
	gl.GenBuffers(1, &is.vbo)
	gl.GenBuffers(1, &is.ebo)
	gl.BindVertexArray(is.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, is.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(ter.Vertices)*4, gl.Ptr(ter.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, is.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(ter.Indices)*4, gl.Ptr(ter.Indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	CheckError("island setup")
	logger.Log.Info("island ready",
		zap.String("heightmap", heightmapPath),
		zap.Int("samplesX", hm.Width),
		zap.Int("samplesZ", hm.Depth),
		zap.Int("triangles", len(ter.Indices)/3),
		zap.Float32("minY", ter.Min.Y()),
		zap.Float32("maxY", ter.Max.Y()))
	return is, nil
}

// IsValid reports whether the island has geometry, a program and all three
// layer textures.
func (is *Island) IsValid() bool {
	if is == nil || is.vao == 0 || is.prog == 0 || is.indexCount == 0 {
		return false
	}
	for _, t := range is.textures {
		if t == nil || t.GLID == 0 {
			return false
		}
	}
	return true
}

// SetTextures loads and uploads the sand, grass and rock layer textures,
// replacing any previous ones. Nothing changes if one of them fails.
func (is *Island) SetTextures(sand, grass, rock string) error {
	var loaded [3]*scene.Texture
	for i, path := range []string{sand, grass, rock} {
		tex, err := scene.LoadTexture(path)
		if err == nil {
			err = UploadTexture(tex)
		}
		if err != nil {
			for _, t := range loaded[:i] {
				DeleteTexture(t)
			}
			return fmt.Errorf("island texture: %w", err)
		}
		loaded[i] = tex
	}
	for _, t := range is.textures {
		DeleteTexture(t)
	}
	is.textures = loaded
	return nil
}

// SetBlendParams places the layer boundaries.
func (is *Island) SetBlendParams(p scene.BlendParams) { is.blend = p }

// SetTiling sets how many grid cells one repeat of each layer texture covers.
func (is *Island) SetTiling(sand, grass, rock float32) {
	is.tiling = mgl32.Vec3{sand, grass, rock}
}

// SetSun sets the directional light.
func (is *Island) SetSun(s scene.SunLight) { is.sun = s }

// Draw renders the terrain. cameraPos drives the distance fog.
func (is *Island) Draw(view, projection mgl32.Mat4, cameraPos mgl32.Vec3) {
	if !is.IsValid() {
		logger.Log.Warn("island not ready, skipping draw")
		return
	}

	gl.UseProgram(is.prog)
	setMat4(is.loc["view"], view)
	setMat4(is.loc["projection"], projection)

	for i, name := range []string{"sandTex", "grassTex", "rockTex"} {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, is.textures[i].GLID)
		gl.Uniform1i(is.loc[name], int32(i))
	}
	setVec3(is.loc["tiling"], is.tiling)

	gl.Uniform1f(is.loc["seaLevel"], is.blend.SeaLevel)
	gl.Uniform1f(is.loc["sandTop"], is.blend.SandTop)
	gl.Uniform1f(is.loc["grassTop"], is.blend.GrassTop)
	gl.Uniform1f(is.loc["slopeRockStart"], is.blend.SlopeRockStart)
	gl.Uniform1f(is.loc["blendBand"], scene.BlendBand)

	setVec3(is.loc["sunDir"], is.sun.Direction)
	setVec3(is.loc["sunColor"], is.sun.Color)
	gl.Uniform1f(is.loc["sunIntensity"], is.sun.Intensity)
	gl.Uniform1f(is.loc["ambient"], scene.AmbientLight)

	setVec3(is.loc["cameraPos"], cameraPos)
	setVec3(is.loc["fogColor"], FogColor)
	gl.Uniform1f(is.loc["fogDensity"], FogDensity)

	gl.BindVertexArray(is.vao)
	gl.DrawElements(gl.TRIANGLES, is.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	for i := 2; i >= 0; i-- {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.UseProgram(0)

	CheckError("island draw")
}

// Destroy frees the mesh, program and layer textures. Calling it twice is
// harmless.
func (is *Island) Destroy() {
	if is.vao != 0 {
		gl.DeleteVertexArrays(1, &is.vao)
		is.vao = 0
	}
	if is.vbo != 0 {
		gl.DeleteBuffers(1, &is.vbo)
		is.vbo = 0
	}
	if is.ebo != 0 {
		gl.DeleteBuffers(1, &is.ebo)
		is.ebo = 0
	}
	if is.prog != 0 {
		gl.DeleteProgram(is.prog)
		is.prog = 0
	}
	for i, t := range is.textures {
		DeleteTexture(t)
		is.textures[i] = nil
	}
	is.indexCount = 0
}
