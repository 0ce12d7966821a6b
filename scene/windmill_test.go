package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var sampleTimes = []float32{0, 0.016, 1, 2.5, 7.75, 12}

func worldPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func TestHeadAngleFollowsTime(t *testing.T) {
	p := DefaultWindmillParams()

	for _, tm := range sampleTimes {
		want := tm * 0.2
		if got := p.HeadAngle(tm); got != want {
			t.Errorf("HeadAngle(%v): expected %v, got %v", tm, want, got)
		}

		// Recover the angle from the head's local matrix: column 0 is
		// (cos, 0, -sin) scaled by the head width.
		m := p.HeadLocal(tm)
		angle := float32(math.Atan2(float64(-m[2]), float64(m[0])))
		wrapped := float32(math.Remainder(float64(want), 2*math.Pi))
		if !near(angle, wrapped, epsilon) {
			t.Errorf("HeadLocal(%v): expected rotation %v, got %v", tm, wrapped, angle)
		}
	}
}

func TestPoseParentChain(t *testing.T) {
	p := DefaultWindmillParams()

	for _, tm := range sampleTimes {
		pose := p.Pose(tm)

		if pose.Base != p.BaseMatrix() {
			t.Errorf("t=%v: Base does not match BaseMatrix", tm)
		}
		if pose.Head != pose.Base.Mul4(p.HeadLocal(tm)) {
			t.Errorf("t=%v: Head != Base * HeadLocal", tm)
		}
		if pose.Hub != pose.Head.Mul4(p.HubLocal(tm)) {
			t.Errorf("t=%v: Hub != Head * HubLocal", tm)
		}
		for i, blade := range pose.Blades {
			if blade != pose.Hub.Mul4(p.BladeLocal(i)) {
				t.Errorf("t=%v: Blade[%d] != Hub * BladeLocal", tm, i)
			}
		}
	}
}

func TestPoseIsRepeatable(t *testing.T) {
	p := DefaultWindmillParams()

	for _, tm := range sampleTimes {
		first := p.Pose(tm)
		second := p.Pose(tm)
		if first != second {
			t.Errorf("t=%v: Pose is not reproducible", tm)
		}
	}

	// Evaluating other times in between must not leak into a later call.
	before := p.Pose(3)
	p.Pose(100)
	if p.Pose(3) != before {
		t.Error("Pose(3) changed after evaluating another time")
	}
}

func TestBladesAreQuarterTurnsApart(t *testing.T) {
	p := DefaultWindmillParams()
	quarter := mgl32.HomogRotate3DZ(mgl32.DegToRad(90))

	for _, tm := range sampleTimes {
		pose := p.Pose(tm)
		hubInv := pose.Hub.Inv()

		for i := 1; i < BladeCount; i++ {
			prev := hubInv.Mul4(pose.Blades[i-1])
			cur := hubInv.Mul4(pose.Blades[i])
			if !matNear(cur, quarter.Mul4(prev), 2e-3) {
				t.Errorf("t=%v: blade %d is not blade %d turned 90 degrees about hub Z", tm, i, i-1)
			}
		}
	}
}

func TestPoseAtTimeZero(t *testing.T) {
	p := DefaultWindmillParams()
	pose := p.Pose(0)

	if p.HeadAngle(0) != 0 || p.BladeAngle(0) != 0 {
		t.Fatalf("expected zero rotations at t=0, got head=%v blades=%v", p.HeadAngle(0), p.BladeAngle(0))
	}

	for i := 0; i < BladeCount; i++ {
		want := float32(i) * math.Pi / 2
		if !near(BladeOffset(i), want, epsilon) {
			t.Errorf("BladeOffset(%d): expected %v, got %v", i, want, BladeOffset(i))
		}
	}

	// With no rotation the head is the base scaled up onto its top.
	expectedHead := p.BaseMatrix().
		Mul4(mgl32.Translate3D(0, 8.75, 0)).
		Mul4(mgl32.Scale3D(3, 2.5, 3))
	if pose.Head != expectedHead {
		t.Errorf("Head at t=0: expected %v, got %v", expectedHead, pose.Head)
	}

	// Blade centres relative to the hub centre. The head's non-uniform scale
	// stretches the horizontal blades more than the vertical ones.
	hub := worldPoint(pose.Hub, mgl32.Vec3{})
	wantHub := p.Position.Add(mgl32.Vec3{0, 35, 12})
	if !vecNearTol(hub, wantHub, 1e-3) {
		t.Errorf("hub centre: expected %v, got %v", wantHub, hub)
	}
	offsets := []mgl32.Vec3{
		{0, 12.5, 0},
		{-15, 0, 0},
		{0, -12.5, 0},
		{15, 0, 0},
	}
	for i, want := range offsets {
		got := worldPoint(pose.Blades[i], mgl32.Vec3{}).Sub(hub)
		if !vecNearTol(got, want, 1e-3) {
			t.Errorf("blade %d centre offset: expected %v, got %v", i, want, got)
		}
	}
}

func TestPoseMovesWithPosition(t *testing.T) {
	p := DefaultWindmillParams()
	p.Position = mgl32.Vec3{}
	p.Scale = 1

	pose := p.Pose(0)
	base := worldPoint(pose.Base, mgl32.Vec3{})
	if base != (mgl32.Vec3{}) {
		t.Errorf("base centre: expected origin, got %v", base)
	}

	// Turning the head a quarter turn swings the hub from +Z to +X.
	quarter := float32(math.Pi/2) / p.HeadRate
	hub := worldPoint(p.Pose(quarter).Hub, mgl32.Vec3{})
	want := mgl32.Vec3{p.HubOffset() * p.HeadWidth, 8.75, 0}
	if !vecNearTol(hub, want, 1e-3) {
		t.Errorf("hub after quarter head turn: expected %v, got %v", want, hub)
	}
}
