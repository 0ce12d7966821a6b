package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vertexAt(data []float32, stride, i int) mgl32.Vec3 {
	v := data[i*stride:]
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// faceWinding returns, for every triangle, the dot product of its geometric
// normal with its centroid. Positive means counter-clockwise from outside.
func faceWinding(data []float32, stride int) []float32 {
	n := len(data) / stride
	out := make([]float32, 0, n/3)
	for i := 0; i+2 < n; i += 3 {
		a, b, c := vertexAt(data, stride, i), vertexAt(data, stride, i+1), vertexAt(data, stride, i+2)
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		out = append(out, normal.Dot(centroid))
	}
	return out
}

// faceTiling returns the largest U and V of face f (six vertices each, in
// cubeFaces order).
func faceTiling(data []float32, f int) (maxU, maxV float32) {
	for i := f * 6; i < f*6+6; i++ {
		maxU = max(maxU, data[i*PartStride+6])
		maxV = max(maxV, data[i*PartStride+7])
	}
	return maxU, maxV
}

func TestBoxCapTiling(t *testing.T) {
	for name, verts := range map[string][]float32{
		"base": WindmillBaseVertices(DefaultWindmillParams()),
		"head": WindmillHeadVertices(),
	} {
		if u, v := faceTiling(verts, 2); u != 2 || v != 1 {
			t.Errorf("%s top: expected 2x1, got %vx%v", name, u, v)
		}
		if u, v := faceTiling(verts, 3); u != 2 || v != 2 {
			t.Errorf("%s bottom: expected 2x2, got %vx%v", name, u, v)
		}
	}
	if u, v := faceTiling(WindmillHeadVertices(), 0); u != 2 || v != 1 {
		t.Errorf("head side: expected 2x1, got %vx%v", u, v)
	}
}

func TestWindmillBaseVertices(t *testing.T) {
	p := DefaultWindmillParams()
	verts := WindmillBaseVertices(p)

	if len(verts) != 36*PartStride {
		t.Fatalf("expected %d floats, got %d", 36*PartStride, len(verts))
	}
	for i := 0; i < 36; i++ {
		pos := vertexAt(verts, PartStride, i)
		if abs32(pos.X()) != p.BaseWidth/2 || abs32(pos.Y()) != p.BaseHeight/2 || abs32(pos.Z()) != p.BaseWidth/2 {
			t.Fatalf("vertex %d not on the 3x15x3 box corners: %v", i, pos)
		}
		col := mgl32.Vec3{verts[i*PartStride+3], verts[i*PartStride+4], verts[i*PartStride+5]}
		if col != BaseColor {
			t.Fatalf("vertex %d colour: expected %v, got %v", i, BaseColor, col)
		}
	}

	// Side faces tile the bricks 2 x 5.
	var maxU, maxV float32
	for i := 0; i < 6; i++ {
		maxU = max(maxU, verts[i*PartStride+6])
		maxV = max(maxV, verts[i*PartStride+7])
	}
	if maxU != 2 || maxV != 5 {
		t.Errorf("side tiling: expected 2x5, got %vx%v", maxU, maxV)
	}

	for tri, w := range faceWinding(verts, PartStride) {
		if w <= 0 {
			t.Errorf("triangle %d faces inward", tri)
		}
	}
}

func TestWindmillHeadAndBladeVertices(t *testing.T) {
	head := WindmillHeadVertices()
	if len(head) != 36*PartStride {
		t.Fatalf("head: expected %d floats, got %d", 36*PartStride, len(head))
	}
	for i := 0; i < 36; i++ {
		pos := vertexAt(head, PartStride, i)
		for _, c := range pos {
			if abs32(c) != 0.5 {
				t.Fatalf("head vertex %d not on the unit cube: %v", i, pos)
			}
		}
	}

	blade := BladeVertices()
	if len(blade) != 6*PartStride {
		t.Fatalf("blade: expected %d floats, got %d", 6*PartStride, len(blade))
	}
	for i := 0; i < 6; i++ {
		pos := vertexAt(blade, PartStride, i)
		if abs32(pos.X()) != 0.05 || abs32(pos.Y()) != 0.5 || pos.Z() != 0 {
			t.Errorf("blade vertex %d: got %v", i, pos)
		}
	}
}

func TestSkyboxVertices(t *testing.T) {
	verts := SkyboxVertices()
	if len(verts) != 36*SkyboxStride {
		t.Fatalf("expected %d floats, got %d", 36*SkyboxStride, len(verts))
	}
	for i := 0; i < 36; i++ {
		pos := vertexAt(verts, SkyboxStride, i)
		for _, c := range pos {
			if abs32(c) != 1 {
				t.Fatalf("vertex %d not on the 2-unit cube: %v", i, pos)
			}
		}
	}
	// Wound to be seen from inside.
	for tri, w := range faceWinding(verts, SkyboxStride) {
		if w >= 0 {
			t.Errorf("triangle %d faces outward", tri)
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
