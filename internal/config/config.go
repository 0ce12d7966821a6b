package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds asset paths and scene settings for the island demo.
type Config struct {
	// Window
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	VSync  bool   `json:"vsync"`

	// Paths
	AssetDir      string   `json:"asset_dir"`
	ShaderDir     string   `json:"shader_dir"`
	Heightmap     string   `json:"heightmap"`
	SandTexture   string   `json:"sand_texture"`
	GrassTexture  string   `json:"grass_texture"`
	RockTexture   string   `json:"rock_texture"`
	BrickTexture  string   `json:"brick_texture"`
	SkyboxFaces   []string `json:"skybox_faces"`
	ScreenshotDir string   `json:"screenshot_dir"`

	Camera   Camera   `json:"camera"`
	Island   Island   `json:"island"`
	Windmill Windmill `json:"windmill"`

	Audio    bool    `json:"audio"`
	WindGain float32 `json:"wind_gain"`
}

// Camera is the starting pose and motion tuning of the free camera.
type Camera struct {
	Position    [3]float32 `json:"position"`
	Yaw         float32    `json:"yaw"`
	Pitch       float32    `json:"pitch"`
	Speed       float32    `json:"speed"`
	Sensitivity float32    `json:"sensitivity"`
	FarPlane    float32    `json:"far_plane"`
}

// Island controls terrain construction and texture blending.
type Island struct {
	HeightScale    float32    `json:"height_scale"`
	GridScale      float32    `json:"grid_scale"`
	Center         bool       `json:"center"`
	SampleStep     int        `json:"sample_step"`
	SeaLevel       float32    `json:"sea_level"`
	SandTop        float32    `json:"sand_top"`
	GrassTop       float32    `json:"grass_top"`
	SlopeRockStart float32    `json:"slope_rock_start"`
	Tiling         [3]float32 `json:"tiling"`
	SunDirection   [3]float32 `json:"sun_direction"`
	SunColor       [3]float32 `json:"sun_color"`
	SunIntensity   float32    `json:"sun_intensity"`
}

// Windmill places the windmill in the world.
type Windmill struct {
	Position [3]float32 `json:"position"`
	Scale    float32    `json:"scale"`
}

// Flags are command-line overrides. Zero values leave the config untouched.
type Flags struct {
	AssetDir string
	Debug    bool
}

// Default returns the settings the demo ships with.
func Default() Config {
	return Config{
		Width:  1280,
		Height: 720,
		Title:  "Island Demo",
		VSync:  true,

		ShaderDir:    "shaders",
		Heightmap:    "assets/heightmap.png",
		SandTexture:  "assets/sand.png",
		GrassTexture: "assets/grass.png",
		RockTexture:  "assets/rock.png",
		BrickTexture: "assets/bricks.jpg",
		SkyboxFaces: []string{
			"assets/right.png",
			"assets/left.png",
			"assets/top.png",
			"assets/bottom.png",
			"assets/front.png",
			"assets/back.png",
		},
		ScreenshotDir: "screenshots",

		Camera: Camera{
			Position:    [3]float32{-626.257, 40.885, -605.891},
			Yaw:         -274.58,
			Pitch:       8.27,
			Speed:       40,
			Sensitivity: 0.1,
			FarPlane:    4000,
		},
		Island: Island{
			HeightScale:    350,
			GridScale:      1.5,
			Center:         true,
			SampleStep:     1,
			SeaLevel:       0,
			SandTop:        30,
			GrassTop:       100,
			SlopeRockStart: 0.50,
			Tiling:         [3]float32{4, 6, 8},
			SunDirection:   [3]float32{-0.7, -1.0, -0.2},
			SunColor:       [3]float32{1, 1, 1},
			SunIntensity:   1,
		},
		Windmill: Windmill{
			Position: [3]float32{-625.73, 53.98, -350.15},
			Scale:    4,
		},
		Audio:    true,
		WindGain: 0.35,
	}
}

// Load reads a JSON config file on top of Default. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies flag overrides and makes relative asset paths relative to
// AssetDir when one is set.
func (c *Config) Resolve(flags Flags) {
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if c.AssetDir == "" {
		return
	}

	c.Heightmap = c.join(c.Heightmap)
	c.SandTexture = c.join(c.SandTexture)
	c.GrassTexture = c.join(c.GrassTexture)
	c.RockTexture = c.join(c.RockTexture)
	c.BrickTexture = c.join(c.BrickTexture)
	c.ShaderDir = c.join(c.ShaderDir)
	faces := make([]string, len(c.SkyboxFaces))
	for i, f := range c.SkyboxFaces {
		faces[i] = c.join(f)
	}
	c.SkyboxFaces = faces
}

// Validate rejects settings that would fail later in less obvious ways.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Island.SampleStep < 1 {
		return fmt.Errorf("config: island sample_step %d must be >= 1", c.Island.SampleStep)
	}
	if c.Island.GridScale <= 0 {
		return fmt.Errorf("config: island grid_scale %v must be positive", c.Island.GridScale)
	}
	if c.WindGain < 0 || c.WindGain > 1 {
		return fmt.Errorf("config: wind_gain %v must be within [0, 1]", c.WindGain)
	}
	if c.Camera.FarPlane <= 0.1 {
		return fmt.Errorf("config: camera far_plane %v must exceed the near plane", c.Camera.FarPlane)
	}
	return nil
}

func (c *Config) join(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.AssetDir, p)
}
