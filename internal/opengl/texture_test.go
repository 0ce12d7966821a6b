package opengl

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"island-demo/scene"
)

func TestCheckPixels(t *testing.T) {
	if err := checkPixels(nil); err == nil {
		t.Error("nil texture: expected error")
	}
	if err := checkPixels(&scene.Texture{Name: "empty", Width: 2, Height: 2}); err == nil {
		t.Error("missing pixels: expected error")
	}
	if err := checkPixels(&scene.Texture{Name: "short", Width: 2, Height: 2, Pixels: make([]byte, 15)}); err == nil {
		t.Error("short pixel buffer: expected error")
	}
	if err := checkPixels(scene.NewSolidTexture("white", 255, 255, 255, 255)); err != nil {
		t.Errorf("solid texture: %v", err)
	}
}

// The following exercise the guards that must hold without a GL context:
// nothing here may reach a gl.* call.

func TestSkyboxLoadRejectsFaceCount(t *testing.T) {
	var sb Skybox
	for _, n := range []int{0, 5, 7} {
		err := sb.Load(make([]string, n))
		if !errors.Is(err, scene.ErrCubemapFaceCount) {
			t.Errorf("%d faces: expected ErrCubemapFaceCount, got %v", n, err)
		}
	}
	if sb.Loaded() {
		t.Error("skybox should stay unloaded")
	}
}

func TestUnreadyDrawsAreSkipped(t *testing.T) {
	view, proj := mgl32.Ident4(), mgl32.Ident4()

	var sb Skybox
	sb.Draw(view, proj)

	w := NewWindmill(scene.DefaultWindmillParams())
	w.Draw(view, proj, 1.5)

	var is *Island
	if is.IsValid() {
		t.Error("nil island reported valid")
	}
	(&Island{}).Draw(view, proj, mgl32.Vec3{})
}

func TestDestroyUnsetIsNoop(t *testing.T) {
	var sb Skybox
	sb.Destroy()
	sb.Destroy()

	w := NewWindmill(scene.DefaultWindmillParams())
	w.Destroy()
	w.Destroy()

	is := &Island{}
	is.Destroy()
	is.Destroy()
}
