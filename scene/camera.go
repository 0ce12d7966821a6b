package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraMovement is a keyboard-driven motion direction.
type CameraMovement int

const (
	Forward CameraMovement = iota
	Backward
	Left
	Right
	Up
	Down
)

// Camera defaults.
const (
	DefaultYaw         = float32(-90.0)
	DefaultPitch       = float32(0.0)
	DefaultSpeed       = float32(2.5)
	DefaultSensitivity = float32(0.1)
	DefaultZoom        = float32(45.0)

	maxPitch = float32(89.0)
	minZoom  = float32(1.0)
	maxZoom  = float32(45.0)
)

// Camera is a free-flying yaw/pitch camera. Angles are in degrees.
// Front, Right and CamUp are derived from the angles and refreshed by every
// call that changes them.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	CamUp    mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32
}

// NewCamera places a camera at position looking along yaw and pitch
// (degrees), with default speed, sensitivity and zoom.
func NewCamera(position, worldUp mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:         position,
		WorldUp:          worldUp,
		Yaw:              yaw,
		Pitch:            pitch,
		Front:            mgl32.Vec3{0, 0, -1},
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
	}
	c.updateVectors()
	return c
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.CamUp)
}

// ProcessKeyboard moves the camera along its own axes. Up and Down follow
// the world up vector so vertical motion ignores pitch.
func (c *Camera) ProcessKeyboard(direction CameraMovement, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by a cursor delta in pixels.
// yoffset is positive when the cursor moves up.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	c.Yaw += xoffset * c.MouseSensitivity
	c.Pitch += yoffset * c.MouseSensitivity

	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)
	}
	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view.
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.Zoom = mgl32.Clamp(c.Zoom-yoffset, minZoom, maxZoom)
}

// Projection returns a perspective matrix using Zoom as the vertical FOV.
func (c *Camera) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, near, far)
}

func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.CamUp = c.Right.Cross(c.Front).Normalize()
}
