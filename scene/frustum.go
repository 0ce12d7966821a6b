package scene

import "github.com/go-gl/mathgl/mgl32"

// Plane is the half-space Normal·p + D >= 0. Normal points inward.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo is the signed distance from pt to the plane, positive inside.
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // left, right, bottom, top, near, far
}

// FrustumFromVP extracts normalised frustum planes from projection*view
// (Gribb/Hartmann: each plane is row 3 plus or minus row 0, 1 or 2).
func FrustumFromVP(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	f.Planes[0] = planeFrom(r3.Add(r0))
	f.Planes[1] = planeFrom(r3.Sub(r0))
	f.Planes[2] = planeFrom(r3.Add(r1))
	f.Planes[3] = planeFrom(r3.Sub(r1))
	f.Planes[4] = planeFrom(r3.Add(r2))
	f.Planes[5] = planeFrom(r3.Sub(r2))
	return f
}

func planeFrom(v mgl32.Vec4) Plane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v.W() / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// BoxAABB is the box of the given size centred on the origin.
func BoxAABB(size mgl32.Vec3) AABB {
	h := size.Mul(0.5)
	return AABB{Min: h.Mul(-1), Max: h}
}

// IntersectsFrustum returns false only when the box lies entirely outside
// one of the planes. For each plane it tests the corner furthest along the
// plane normal.
func (b AABB) IntersectsFrustum(f *Frustum) bool {
	for _, p := range f.Planes {
		px := b.Max.X()
		if p.Normal.X() < 0 {
			px = b.Min.X()
		}
		py := b.Max.Y()
		if p.Normal.Y() < 0 {
			py = b.Min.Y()
		}
		pz := b.Max.Z()
		if p.Normal.Z() < 0 {
			pz = b.Min.Z()
		}
		if p.DistanceTo(mgl32.Vec3{px, py, pz}) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the box enclosing all eight corners of b moved by m.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	mn, mx := b.Min, b.Max
	var out AABB
	for i := 0; i < 8; i++ {
		c := mn
		if i&1 != 0 {
			c[0] = mx[0]
		}
		if i&2 != 0 {
			c[1] = mx[1]
		}
		if i&4 != 0 {
			c[2] = mx[2]
		}
		wp := mgl32.TransformCoordinate(c, m)
		if i == 0 {
			out = AABB{Min: wp, Max: wp}
			continue
		}
		out = out.extend(wp)
	}
	return out
}

// Union is the smallest box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return b.extend(o.Min).extend(o.Max)
}

func (b AABB) extend(p mgl32.Vec3) AABB {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}
