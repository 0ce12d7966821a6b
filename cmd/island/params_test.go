package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"island-demo/internal/config"
	"island-demo/shaders"
)

func TestMouseTrackerFirstEventIsSilent(t *testing.T) {
	var m mouseTracker
	if dx, dy := m.offset(400, 300); dx != 0 || dy != 0 {
		t.Errorf("first event: got (%v, %v), want (0, 0)", dx, dy)
	}
	dx, dy := m.offset(410, 290)
	if dx != 10 || dy != 10 {
		t.Errorf("second event: got (%v, %v), want (10, 10)", dx, dy)
	}
	dx, dy = m.offset(405, 295)
	if dx != -5 || dy != -5 {
		t.Errorf("third event: got (%v, %v), want (-5, -5)", dx, dy)
	}
}

func TestEdgeTrigger(t *testing.T) {
	var e edgeTrigger
	seq := []bool{false, true, true, true, false, true}
	want := []bool{false, true, false, false, false, true}
	for i, down := range seq {
		if got := e.pressed(down); got != want[i] {
			t.Errorf("frame %d: pressed(%v) = %v, want %v", i, down, got, want[i])
		}
	}
}

func TestAspectRatio(t *testing.T) {
	if got := aspectRatio(1280, 720); got != float32(1280)/720 {
		t.Errorf("aspectRatio(1280, 720) = %v", got)
	}
	if got := aspectRatio(0, 0); got != 1 {
		t.Errorf("minimised window: got %v, want 1", got)
	}
}

func TestWindowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height, cfg.VSync = 640, 480, false
	wc := windowConfig(cfg)
	if wc.Width != 640 || wc.Height != 480 || wc.VSync || wc.Title != cfg.Title {
		t.Errorf("window config = %+v", wc)
	}
}

func TestShaderFS(t *testing.T) {
	if _, src := shaderFS(""); src != "embedded" {
		t.Errorf("empty dir: source %q", src)
	}
	if _, src := shaderFS(t.TempDir()); src != "embedded" {
		t.Errorf("dir without shaders: source %q", src)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, shaders.SimpleColorVert), []byte("#version 410 core\n"), 0644); err != nil {
		t.Fatal(err)
	}
	fsys, src := shaderFS(dir)
	if src != dir {
		t.Errorf("dir with shaders: source %q", src)
	}
	if _, err := fsys.Open(shaders.SimpleColorVert); err != nil {
		t.Errorf("open from disk: %v", err)
	}
}

func TestAboveGround(t *testing.T) {
	pos := mgl32.Vec3{1, 5, 2}
	if got := aboveGround(pos, 10, 2); got != (mgl32.Vec3{1, 12, 2}) {
		t.Errorf("below ground: got %v", got)
	}
	if got := aboveGround(pos, 1, 2); got != pos {
		t.Errorf("above ground: got %v, want unchanged", got)
	}
}

func TestStepGain(t *testing.T) {
	if got := stepGain(0.5, 0.05); got < 0.549 || got > 0.551 {
		t.Errorf("stepGain(0.5, +0.05) = %v", got)
	}
	if got := stepGain(0.98, 0.05); got != 1 {
		t.Errorf("upper clamp: got %v", got)
	}
	if got := stepGain(0.02, -0.05); got != 0 {
		t.Errorf("lower clamp: got %v", got)
	}
}

func TestFrameCounter(t *testing.T) {
	var c frameCounter
	for i := 0; i < 60; i++ {
		if _, ok := c.tick(10 + float64(i)/60); ok {
			t.Fatalf("frame %d reported before a full second", i)
		}
	}
	fps, ok := c.tick(11)
	if !ok {
		t.Fatal("no report after one second")
	}
	if fps < 60 || fps > 62 {
		t.Errorf("fps = %v, want about 61", fps)
	}
	if _, ok := c.tick(11.5); ok {
		t.Error("new window reported early")
	}
}

func TestStatusTitle(t *testing.T) {
	got := statusTitle("Island Demo", 59.6, mgl32.Vec3{-626.26, 40.9, -605.89}, 0.35)
	for _, want := range []string{"Island Demo", "60 fps", "(-626.3, 40.9, -605.9)", "wind 35%"} {
		if !strings.Contains(got, want) {
			t.Errorf("title %q missing %q", got, want)
		}
	}
}
