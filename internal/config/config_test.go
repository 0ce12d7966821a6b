package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.SkyboxFaces) != 6 {
		t.Errorf("expected 6 skybox faces, got %d", len(cfg.SkyboxFaces))
	}
	if cfg.Island.HeightScale != 350 || cfg.Island.GridScale != 1.5 {
		t.Errorf("unexpected island scale: %+v", cfg.Island)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "island.json")
	body := `{"width": 800, "island": {"sample_step": 2}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 800 {
		t.Errorf("width: expected 800, got %d", cfg.Width)
	}
	if cfg.Height != 720 {
		t.Errorf("height: expected default 720, got %d", cfg.Height)
	}
	if cfg.Island.SampleStep != 2 {
		t.Errorf("sample_step: expected 2, got %d", cfg.Island.SampleStep)
	}
	if cfg.Heightmap != "assets/heightmap.png" {
		t.Errorf("heightmap: expected default path, got %q", cfg.Heightmap)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestResolveAssetDir(t *testing.T) {
	cfg := Default()
	abs := filepath.Join(t.TempDir(), "rock.png")
	cfg.RockTexture = abs
	cfg.Resolve(Flags{AssetDir: "/data/island"})

	if cfg.Heightmap != filepath.Join("/data/island", "assets/heightmap.png") {
		t.Errorf("heightmap not resolved: %q", cfg.Heightmap)
	}
	if cfg.RockTexture != abs {
		t.Errorf("absolute path should be kept, got %q", cfg.RockTexture)
	}
	if cfg.SkyboxFaces[0] != filepath.Join("/data/island", "assets/right.png") {
		t.Errorf("skybox face not resolved: %q", cfg.SkyboxFaces[0])
	}
	if Default().SkyboxFaces[0] != "assets/right.png" {
		t.Error("Resolve must not alias the default face slice")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Island.SampleStep = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample_step 0")
	}

	cfg = Default()
	cfg.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero width")
	}
}
