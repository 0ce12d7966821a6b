package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"island-demo/core"
	"island-demo/internal/config"
	"island-demo/shaders"
)

// Frustum near plane shared by every pass.
const nearPlane = 0.1

// sprintFactor multiplies camera speed while Shift is held.
const sprintFactor = 3

// groundClearance is the lowest the camera may fly above the terrain.
const groundClearance = 2

// gainStep is the wind volume change per press of - or =.
const gainStep = 0.05

func windowConfig(cfg config.Config) core.WindowConfig {
	wc := core.DefaultWindowConfig()
	wc.Width = cfg.Width
	wc.Height = cfg.Height
	wc.Title = cfg.Title
	wc.VSync = cfg.VSync
	return wc
}

// shaderFS prefers an on-disk shader directory and falls back to the copies
// embedded in the binary. The second result names the source for logging.
func shaderFS(dir string) (fs.FS, string) {
	if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, shaders.SimpleColorVert)); err == nil {
			return os.DirFS(dir), dir
		}
	}
	return shaders.FS, "embedded"
}

func aspectRatio(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// mouseTracker turns absolute cursor positions into per-event offsets.
// The first event only records the position so the camera does not jump
// when the cursor is captured.
type mouseTracker struct {
	lastX, lastY float64
	seen         bool
}

// offset returns the motion since the previous event. y grows upward, the
// reverse of window coordinates.
func (m *mouseTracker) offset(x, y float64) (dx, dy float32) {
	if !m.seen {
		m.lastX, m.lastY = x, y
		m.seen = true
		return 0, 0
	}
	dx = float32(x - m.lastX)
	dy = float32(m.lastY - y)
	m.lastX, m.lastY = x, y
	return dx, dy
}

// edgeTrigger reports a key press once per press, not once per frame.
type edgeTrigger struct {
	wasDown bool
}

func (e *edgeTrigger) pressed(down bool) bool {
	fire := down && !e.wasDown
	e.wasDown = down
	return fire
}

// aboveGround lifts pos so it stays clearance above ground.
func aboveGround(pos mgl32.Vec3, ground, clearance float32) mgl32.Vec3 {
	if floor := ground + clearance; pos.Y() < floor {
		pos[1] = floor
	}
	return pos
}

func stepGain(g, delta float32) float32 {
	return mgl32.Clamp(g+delta, 0, 1)
}

// frameCounter measures frames per second over one-second windows.
type frameCounter struct {
	start  float64
	frames int
}

// tick records a frame at time now. Once a full second has passed it
// returns the rate over that second and starts a new window.
func (c *frameCounter) tick(now float64) (fps float64, ok bool) {
	if c.frames == 0 && c.start == 0 {
		c.start = now
	}
	c.frames++
	elapsed := now - c.start
	if elapsed < 1 {
		return 0, false
	}
	fps = float64(c.frames) / elapsed
	c.start, c.frames = now, 0
	return fps, true
}

func statusTitle(base string, fps float64, pos mgl32.Vec3, gain float32) string {
	return fmt.Sprintf("%s | %.0f fps | (%.1f, %.1f, %.1f) | wind %.0f%%",
		base, fps, pos.X(), pos.Y(), pos.Z(), gain*100)
}
