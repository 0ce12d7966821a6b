package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PartStride is the number of floats per windmill vertex:
// position(3) + color(3) + uv(2).
const PartStride = 8

// SkyboxStride is the number of floats per skybox vertex: position(3).
const SkyboxStride = 3

// Part colours.
var (
	BaseColor  = mgl32.Vec3{0.6, 0.4, 0.2}
	HeadColor  = mgl32.Vec3{0.7, 0.7, 0.7}
	BladeColor = mgl32.Vec3{0.5, 0.5, 0.5}
)

// Blade quad half extents in blade-local units.
const (
	bladeHalfWidth  = 0.05
	bladeHalfLength = 0.5
)

// cubeFace is one side of an axis-aligned box: its outward normal and two
// in-plane axes with u × v = normal.
type cubeFace struct {
	normal, u, v mgl32.Vec3
	cap          bool // top or bottom
}

var cubeFaces = [6]cubeFace{
	{normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}, cap: true},
	{normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}, cap: true},
	{normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// quadCorners lists the two counter-clockwise triangles of a face in (u, v)
// coordinates of [0, 1].
var quadCorners = [6][2]float32{{0, 0}, {1, 0}, {1, 1}, {1, 1}, {0, 1}, {0, 0}}

// BoxVertices builds 36 non-indexed vertices for a box of the given size
// centred on the origin, wound counter-clockwise from outside. Side faces
// repeat the texture sideUV times. The bottom repeats it sideUV.X() times
// both ways and the top sideUV.X() x 1.
func BoxVertices(size, color mgl32.Vec3, sideUV mgl32.Vec2) []float32 {
	out := make([]float32, 0, 36*PartStride)
	for _, f := range cubeFaces {
		tile := sideUV
		switch {
		case f.cap && f.normal.Y() > 0:
			tile = mgl32.Vec2{sideUV.X(), 1}
		case f.cap:
			tile = mgl32.Vec2{sideUV.X(), sideUV.X()}
		}
		for _, c := range quadCorners {
			p := facePoint(f, c)
			out = append(out,
				p[0]*size[0], p[1]*size[1], p[2]*size[2],
				color[0], color[1], color[2],
				c[0]*tile[0], c[1]*tile[1],
			)
		}
	}
	return out
}

func facePoint(f cubeFace, c [2]float32) mgl32.Vec3 {
	return f.normal.Mul(0.5).
		Add(f.u.Mul(c[0] - 0.5)).
		Add(f.v.Mul(c[1] - 0.5))
}

// WindmillBaseVertices is the brick tower, built at its final size and
// textured 2 x 5 on each side.
func WindmillBaseVertices(p WindmillParams) []float32 {
	return BoxVertices(mgl32.Vec3{p.BaseWidth, p.BaseHeight, p.BaseWidth}, BaseColor, mgl32.Vec2{2, 5})
}

// WindmillHeadVertices is a unit cube; the head's transform sizes it.
func WindmillHeadVertices() []float32 {
	return BoxVertices(mgl32.Vec3{1, 1, 1}, HeadColor, mgl32.Vec2{2, 1})
}

// BladeVertices is a thin unit-tall quad in the XY plane centred on the
// origin.
func BladeVertices() []float32 {
	out := make([]float32, 0, 6*PartStride)
	for _, c := range quadCorners {
		out = append(out,
			(2*c[0]-1)*bladeHalfWidth, (2*c[1]-1)*bladeHalfLength, 0,
			BladeColor[0], BladeColor[1], BladeColor[2],
			c[0], c[1],
		)
	}
	return out
}

// SkyboxVertices is a 2-unit cube of positions only, seen from inside.
func SkyboxVertices() []float32 {
	out := make([]float32, 0, 36*SkyboxStride)
	for _, f := range cubeFaces {
		for i := len(quadCorners) - 1; i >= 0; i-- {
			p := facePoint(f, quadCorners[i]).Mul(2)
			out = append(out, p[0], p[1], p[2])
		}
	}
	return out
}
