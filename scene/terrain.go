package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TerrainStride is the number of floats per terrain vertex:
// position(3) + normal(3) + uv(2).
const TerrainStride = 8

// BlendBand is the height over which one terrain layer fades into the next.
const BlendBand = 10

// TerrainParams controls how heightmap samples become world positions.
type TerrainParams struct {
	HeightScale float32 // world height of a white sample
	GridScale   float32 // world distance between source pixels
	Center      bool    // centre the grid on the origin in X and Z
}

// Terrain is an indexed triangle grid built from a heightmap.
type Terrain struct {
	Width    int // vertices along X
	Depth    int // vertices along Z
	Vertices []float32
	Indices  []uint32

	Min, Max mgl32.Vec3
}

// BuildTerrain turns hm into a mesh with one vertex per sample. Each cell is
// split into two counter-clockwise triangles when seen from above.
func BuildTerrain(hm *Heightmap, p TerrainParams) *Terrain {
	spacing := p.GridScale * float32(hm.Step)
	var ox, oz float32
	if p.Center {
		ox = float32(hm.Width-1) * spacing / 2
		oz = float32(hm.Depth-1) * spacing / 2
	}

	t := &Terrain{
		Width:    hm.Width,
		Depth:    hm.Depth,
		Vertices: make([]float32, 0, hm.Width*hm.Depth*TerrainStride),
	}
	height := func(x, z int) float32 { return hm.At(x, z) * p.HeightScale }

	for z := 0; z < hm.Depth; z++ {
		for x := 0; x < hm.Width; x++ {
			pos := mgl32.Vec3{float32(x)*spacing - ox, height(x, z), float32(z)*spacing - oz}

			// Central differences, one-sided on the border.
			x0, x1 := max(x-1, 0), min(x+1, hm.Width-1)
			z0, z1 := max(z-1, 0), min(z+1, hm.Depth-1)
			var dhdx, dhdz float32
			if x1 > x0 {
				dhdx = (height(x1, z) - height(x0, z)) / (float32(x1-x0) * spacing)
			}
			if z1 > z0 {
				dhdz = (height(x, z1) - height(x, z0)) / (float32(z1-z0) * spacing)
			}
			n := mgl32.Vec3{-dhdx, 1, -dhdz}.Normalize()

			t.Vertices = append(t.Vertices,
				pos[0], pos[1], pos[2],
				n[0], n[1], n[2],
				float32(x), float32(z),
			)
			if x == 0 && z == 0 {
				t.Min, t.Max = pos, pos
			}
			for i := range pos {
				t.Min[i] = min(t.Min[i], pos[i])
				t.Max[i] = max(t.Max[i], pos[i])
			}
		}
	}

	if hm.Width > 1 && hm.Depth > 1 {
		t.Indices = make([]uint32, 0, (hm.Width-1)*(hm.Depth-1)*6)
	}
	w := uint32(hm.Width)
	for z := 0; z < hm.Depth-1; z++ {
		for x := 0; x < hm.Width-1; x++ {
			i0 := uint32(z)*w + uint32(x)
			i1 := i0 + 1
			i2 := i0 + w
			i3 := i2 + 1
			t.Indices = append(t.Indices, i0, i2, i1, i1, i2, i3)
		}
	}
	return t
}

// VertexCount returns the number of vertices in the mesh.
func (t *Terrain) VertexCount() int { return len(t.Vertices) / TerrainStride }

// Position returns the world position of vertex i.
func (t *Terrain) Position(i int) mgl32.Vec3 {
	v := t.Vertices[i*TerrainStride:]
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// Normal returns the unit normal of vertex i.
func (t *Terrain) Normal(i int) mgl32.Vec3 {
	v := t.Vertices[i*TerrainStride:]
	return mgl32.Vec3{v[3], v[4], v[5]}
}

// UV returns the grid coordinates of vertex i.
func (t *Terrain) UV(i int) mgl32.Vec2 {
	v := t.Vertices[i*TerrainStride:]
	return mgl32.Vec2{v[6], v[7]}
}

// HeightAt returns the terrain height under world (x, z) by bilinear
// interpolation of the grid, clamped to the terrain edges.
func (t *Terrain) HeightAt(x, z float32) float32 {
	if t.Width < 2 || t.Depth < 2 {
		if t.VertexCount() == 0 {
			return 0
		}
		return t.Position(0).Y()
	}
	sx := float32(t.Width-1) / (t.Max.X() - t.Min.X())
	sz := float32(t.Depth-1) / (t.Max.Z() - t.Min.Z())
	gx := mgl32.Clamp((x-t.Min.X())*sx, 0, float32(t.Width-1))
	gz := mgl32.Clamp((z-t.Min.Z())*sz, 0, float32(t.Depth-1))

	x0, z0 := min(int(gx), t.Width-2), min(int(gz), t.Depth-2)
	fx, fz := gx-float32(x0), gz-float32(z0)
	h := func(x, z int) float32 { return t.Position(z*t.Width + x).Y() }

	top := h(x0, z0)*(1-fx) + h(x0+1, z0)*fx
	bottom := h(x0, z0+1)*(1-fx) + h(x0+1, z0+1)*fx
	return top*(1-fz) + bottom*fz
}

// BlendParams places the sand, grass and rock layers. Heights are measured
// above SeaLevel; slope is 1 - normal.y.
type BlendParams struct {
	SeaLevel       float32
	SandTop        float32
	GrassTop       float32
	SlopeRockStart float32
}

// DefaultBlendParams returns the island's layer heights.
func DefaultBlendParams() BlendParams {
	return BlendParams{SeaLevel: 0, SandTop: 30, GrassTop: 100, SlopeRockStart: 0.5}
}

// BlendWeights returns the sand, grass and rock weights at a point. The
// island fragment shader uses the same formula. The weights sum to one.
func BlendWeights(height, slope float32, p BlendParams) (sand, grass, rock float32) {
	h := height - p.SeaLevel
	grassAmt := smoothstep(p.SandTop-BlendBand/2, p.SandTop+BlendBand/2, h)
	rockAmt := smoothstep(p.GrassTop-BlendBand/2, p.GrassTop+BlendBand/2, h)
	slopeRock := smoothstep(p.SlopeRockStart, p.SlopeRockStart+0.2, slope)

	rock = max(rockAmt, slopeRock)
	sand = (1 - grassAmt) * (1 - rock)
	grass = grassAmt * (1 - rock)
	return sand, grass, rock
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// SunLight is a directional light. Direction points from the sun toward
// the scene.
type SunLight struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// AmbientLight is the light level of surfaces facing away from the sun.
const AmbientLight = 0.25

// DefaultSun returns a white late-afternoon sun.
func DefaultSun() SunLight {
	return SunLight{
		Direction: mgl32.Vec3{-0.7, -1, -0.2},
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1,
	}
}

// Irradiance returns the light reaching a surface with the given normal:
// ambient plus a Lambert term, per colour channel.
func (s SunLight) Irradiance(normal mgl32.Vec3) mgl32.Vec3 {
	toSun := s.Direction.Mul(-1).Normalize()
	diffuse := max(normal.Dot(toSun), 0) * s.Intensity
	return mgl32.Vec3{
		AmbientLight + s.Color[0]*diffuse,
		AmbientLight + s.Color[1]*diffuse,
		AmbientLight + s.Color[2]*diffuse,
	}
}
