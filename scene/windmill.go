package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BladeCount is the number of sails on the windmill hub.
const BladeCount = 4

// WindmillParams describes the windmill's placement, part dimensions and
// animation rates. Dimensions are in base-local units, before Scale.
type WindmillParams struct {
	Position mgl32.Vec3
	Scale    float32

	BaseWidth  float32
	BaseHeight float32
	HeadWidth  float32
	HeadHeight float32

	HeadRate  float32 // rad/s about +Y
	BladeRate float32 // rad/s about the hub's +Z

	HubScale    float32
	BladeWidth  float32
	BladeLength float32
}

// DefaultWindmillParams returns the windmill that stands on the island.
func DefaultWindmillParams() WindmillParams {
	return WindmillParams{
		Position: mgl32.Vec3{-625.73, 53.98, -350.15},
		Scale:    4,

		BaseWidth:  3,
		BaseHeight: 15,
		HeadWidth:  3,
		HeadHeight: 2.5,

		HeadRate:  0.2,
		BladeRate: 2.0,

		HubScale:    0.5,
		BladeWidth:  1,
		BladeLength: 5,
	}
}

// WindmillPose holds the world matrix of every windmill part for one instant.
type WindmillPose struct {
	Base   mgl32.Mat4
	Head   mgl32.Mat4
	Hub    mgl32.Mat4
	Blades [BladeCount]mgl32.Mat4
}

// HeadAngle is the head's rotation about +Y at time t.
func (p WindmillParams) HeadAngle(t float32) float32 {
	return t * p.HeadRate
}

// BladeAngle is the hub's rotation about its +Z at time t.
func (p WindmillParams) BladeAngle(t float32) float32 {
	return t * p.BladeRate
}

// HubOffset is how far the hub sits in front of the head centre along +Z,
// in head-local units.
func (p WindmillParams) HubOffset() float32 {
	return p.HeadWidth/2 - 0.5
}

// BaseMatrix places and scales the whole windmill.
func (p WindmillParams) BaseMatrix() mgl32.Mat4 {
	return mgl32.Ident4().
		Mul4(mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())).
		Mul4(mgl32.Scale3D(p.Scale, p.Scale, p.Scale))
}

// HeadLocal seats the head on top of the base and turns it about +Y.
func (p WindmillParams) HeadLocal(t float32) mgl32.Mat4 {
	y := p.BaseHeight/2 + p.HeadHeight/2
	return mgl32.Translate3D(0, y, 0).
		Mul4(mgl32.HomogRotate3DY(p.HeadAngle(t))).
		Mul4(mgl32.Scale3D(p.HeadWidth, p.HeadHeight, p.HeadWidth))
}

// HubLocal moves the hub to the front of the head and spins it about +Z.
func (p WindmillParams) HubLocal(t float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, p.HubOffset()).
		Mul4(mgl32.HomogRotate3DZ(p.BladeAngle(t))).
		Mul4(mgl32.Scale3D(p.HubScale, p.HubScale, p.HubScale))
}

// BladeOffset is the fixed angle of blade i around the hub, in radians.
func BladeOffset(i int) float32 {
	return mgl32.DegToRad(360.0 / BladeCount * float32(i))
}

// BladeLocal is blade i relative to the hub. The blade quad is a unit-tall
// strip centred on the origin, so it is pushed out by half its length.
func (p WindmillParams) BladeLocal(i int) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(BladeOffset(i)).
		Mul4(mgl32.Translate3D(0, p.BladeLength/2, 0)).
		Mul4(mgl32.Scale3D(p.BladeWidth, p.BladeLength, 1))
}

// Pose computes every part's world matrix at time t. It keeps no state, so
// the same t always yields the same pose.
func (p WindmillParams) Pose(t float32) WindmillPose {
	var pose WindmillPose
	pose.Base = p.BaseMatrix()
	pose.Head = pose.Base.Mul4(p.HeadLocal(t))
	pose.Hub = pose.Head.Mul4(p.HubLocal(t))
	for i := range pose.Blades {
		pose.Blades[i] = pose.Hub.Mul4(p.BladeLocal(i))
	}
	return pose
}

// Bounds is the world-space box around every drawn part of pose.
func (p WindmillParams) Bounds(pose WindmillPose) AABB {
	b := BoxAABB(mgl32.Vec3{p.BaseWidth, p.BaseHeight, p.BaseWidth}).Transform(pose.Base)
	b = b.Union(BoxAABB(mgl32.Vec3{1, 1, 1}).Transform(pose.Head))
	blade := BoxAABB(mgl32.Vec3{2 * bladeHalfWidth, 2 * bladeHalfLength, 0})
	for _, m := range pose.Blades {
		b = b.Union(blade.Transform(m))
	}
	return b
}
