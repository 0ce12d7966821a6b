package config

import (
	"github.com/go-gl/mathgl/mgl32"

	"island-demo/scene"
)

func vec3(a [3]float32) mgl32.Vec3 { return mgl32.Vec3{a[0], a[1], a[2]} }

// NewCamera builds the free camera at its configured starting pose.
func (c Camera) NewCamera() *scene.Camera {
	cam := scene.NewCamera(vec3(c.Position), mgl32.Vec3{0, 1, 0}, c.Yaw, c.Pitch)
	if c.Speed > 0 {
		cam.MovementSpeed = c.Speed
	}
	if c.Sensitivity > 0 {
		cam.MouseSensitivity = c.Sensitivity
	}
	return cam
}

// Params places the default windmill geometry.
func (w Windmill) Params() scene.WindmillParams {
	p := scene.DefaultWindmillParams()
	p.Position = vec3(w.Position)
	if w.Scale > 0 {
		p.Scale = w.Scale
	}
	return p
}

func (is Island) TerrainParams() scene.TerrainParams {
	return scene.TerrainParams{
		HeightScale: is.HeightScale,
		GridScale:   is.GridScale,
		Center:      is.Center,
	}
}

func (is Island) BlendParams() scene.BlendParams {
	return scene.BlendParams{
		SeaLevel:       is.SeaLevel,
		SandTop:        is.SandTop,
		GrassTop:       is.GrassTop,
		SlopeRockStart: is.SlopeRockStart,
	}
}

// Sun returns the directional light. A zero direction keeps the default.
func (is Island) Sun() scene.SunLight {
	sun := scene.DefaultSun()
	if d := vec3(is.SunDirection); d.Len() > 0 {
		sun.Direction = d.Normalize()
	}
	sun.Color = vec3(is.SunColor)
	sun.Intensity = is.SunIntensity
	return sun
}
