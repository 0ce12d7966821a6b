package main

import (
	"time"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"island-demo/core"
	"island-demo/internal/audio"
	"island-demo/internal/capture"
	"island-demo/internal/config"
	"island-demo/internal/logger"
	"island-demo/internal/opengl"
	"island-demo/scene"
	"island-demo/shaders"
)

// App owns the window, the GPU-side scene objects and the camera.
type App struct {
	cfg    config.Config
	window *core.Window
	camera *scene.Camera

	program  uint32
	windmill *opengl.Windmill
	island   *opengl.Island
	skybox   *opengl.Skybox
	ambience *audio.Ambience

	mouse      mouseTracker
	screenshot edgeTrigger
	gainDown   edgeTrigger
	gainUp     edgeTrigger
	windGain   float32
	fps        frameCounter
	fbWidth    int
	fbHeight   int
}

// NewApp opens the window and loads every scene asset. On failure it
// releases what it created and returns the process exit code.
func NewApp(cfg config.Config) (*App, int) {
	a := &App{cfg: cfg, camera: cfg.Camera.NewCamera(), windGain: cfg.WindGain}

	window, err := core.NewWindow(windowConfig(cfg))
	if err != nil {
		logger.Log.Error("window", zap.Error(err))
		return nil, exitInitFailure
	}
	a.window = window

	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL init", zap.Error(err))
		a.Destroy()
		return nil, exitInitFailure
	}
	logger.Log.Info("OpenGL ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0, 0, 0, 1)

	if err := a.loadScene(); err != nil {
		logger.Log.Error("scene setup", zap.Error(err))
		a.Destroy()
		return nil, exitAssetError
	}

	a.fbWidth, a.fbHeight = window.GetFramebufferSize()
	window.SetFramebufferSizeCallback(a.onResize)
	window.SetCursorPosCallback(a.onCursor)
	window.SetScrollCallback(a.onScroll)
	window.CaptureCursor()

	if cfg.Audio {
		amb, err := audio.Start(uint64(time.Now().UnixNano()), cfg.WindGain)
		if err != nil {
			logger.Log.Warn("wind ambience disabled", zap.Error(err))
		}
		a.ambience = amb
	}
	return a, exitOK
}

func (a *App) loadScene() error {
	fsys, source := shaderFS(a.cfg.ShaderDir)
	logger.Log.Debug("loading shaders", zap.String("source", source))
	prog, err := opengl.LoadShaders(fsys, shaders.SimpleColorVert, shaders.SimpleColorFrag)
	if err != nil {
		return err
	}
	a.program = prog

	a.windmill = opengl.NewWindmill(a.cfg.Windmill.Params())
	if err := a.windmill.Setup(prog, a.cfg.BrickTexture); err != nil {
		return err
	}

	island, err := opengl.NewIsland(a.cfg.Heightmap, a.cfg.Island.TerrainParams(), a.cfg.Island.SampleStep)
	if err != nil {
		return err
	}
	a.island = island
	if err := island.SetTextures(a.cfg.SandTexture, a.cfg.GrassTexture, a.cfg.RockTexture); err != nil {
		return err
	}
	island.SetBlendParams(a.cfg.Island.BlendParams())
	t := a.cfg.Island.Tiling
	island.SetTiling(t[0], t[1], t[2])
	island.SetSun(a.cfg.Island.Sun())

	sky, err := opengl.NewSkybox()
	if err != nil {
		return err
	}
	a.skybox = sky
	return sky.Load(a.cfg.SkyboxFaces)
}

// Run drives the frame loop until the window is asked to close.
func (a *App) Run() {
	logger.Log.Info("entering main loop",
		zap.Int("width", a.fbWidth),
		zap.Int("height", a.fbHeight))

	last := a.window.Time()
	for !a.window.ShouldClose() {
		now := a.window.Time()
		dt := float32(now - last)
		last = now

		a.processInput(dt)
		a.window.PollEvents()
		a.keepAboveGround()
		a.render(float32(now))

		if fps, ok := a.fps.tick(now); ok {
			a.window.SetTitle(statusTitle(a.cfg.Title, fps, a.camera.Position, a.windGain))
		}

		if a.screenshot.pressed(a.window.IsKeyPressed(core.KeyF12)) {
			a.saveScreenshot()
		}
		a.window.SwapBuffers()
	}
	logger.Log.Info("main loop finished")
}

func (a *App) processInput(dt float32) {
	w := a.window
	if w.IsKeyPressed(core.KeyEscape) {
		w.SetShouldClose(true)
	}

	speed := a.camera.MovementSpeed
	if w.IsKeyPressed(core.KeyLeftShift) || w.IsKeyPressed(core.KeyRightShift) {
		a.camera.MovementSpeed = speed * sprintFactor
	}
	moves := []struct {
		key int
		dir scene.CameraMovement
	}{
		{core.KeyW, scene.Forward},
		{core.KeyS, scene.Backward},
		{core.KeyA, scene.Left},
		{core.KeyD, scene.Right},
		{core.KeySpace, scene.Up},
		{core.KeyLeftControl, scene.Down},
		{core.KeyRightControl, scene.Down},
	}
	for _, m := range moves {
		if w.IsKeyPressed(m.key) {
			a.camera.ProcessKeyboard(m.dir, dt)
		}
	}
	a.camera.MovementSpeed = speed

	if a.ambience != nil {
		delta := float32(0)
		if a.gainDown.pressed(w.IsKeyPressed(core.KeyMinus)) {
			delta -= gainStep
		}
		if a.gainUp.pressed(w.IsKeyPressed(core.KeyEqual)) {
			delta += gainStep
		}
		if delta != 0 {
			a.windGain = stepGain(a.windGain, delta)
			a.ambience.SetGain(a.windGain)
		}
	}
}

// keepAboveGround stops the camera from flying into the terrain.
func (a *App) keepAboveGround() {
	pos := a.camera.Position
	ground := a.island.Terrain.HeightAt(pos.X(), pos.Z())
	a.camera.Position = aboveGround(pos, ground, groundClearance)
}

func (a *App) render(t float32) {
	gl.Viewport(0, 0, int32(a.fbWidth), int32(a.fbHeight))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := a.camera.ViewMatrix()
	proj := a.camera.Projection(aspectRatio(a.fbWidth, a.fbHeight), nearPlane, a.cfg.Camera.FarPlane)

	a.skybox.Draw(view, proj)
	a.island.Draw(view, proj, a.camera.Position)
	a.windmill.Draw(view, proj, t)

	opengl.CheckError("frame")
}

func (a *App) saveScreenshot() {
	pix := opengl.ReadPixels(a.fbWidth, a.fbHeight)
	img, err := capture.FromFramebuffer(pix, a.fbWidth, a.fbHeight)
	if err != nil {
		logger.Log.Warn("screenshot", zap.Error(err))
		return
	}
	path, err := capture.Save(a.cfg.ScreenshotDir, img, time.Now())
	if err != nil {
		logger.Log.Warn("screenshot", zap.Error(err))
		return
	}
	logger.Log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) onResize(width, height int) {
	a.fbWidth, a.fbHeight = width, height
	logger.Log.Debug("framebuffer resized", zap.Int("width", width), zap.Int("height", height))
}

func (a *App) onCursor(x, y float64) {
	dx, dy := a.mouse.offset(x, y)
	a.camera.ProcessMouseMovement(dx, dy, true)
}

func (a *App) onScroll(_, yoff float64) {
	a.camera.ProcessMouseScroll(float32(yoff))
}

// Destroy releases GPU objects before the context goes away with the
// window. It tolerates a partially constructed App.
func (a *App) Destroy() {
	a.ambience.Close()
	if a.skybox != nil {
		a.skybox.Destroy()
	}
	if a.island != nil {
		a.island.Destroy()
	}
	if a.windmill != nil {
		a.windmill.Destroy()
	}
	if a.program != 0 {
		gl.DeleteProgram(a.program)
		a.program = 0
	}
	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}
}
