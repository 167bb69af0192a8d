package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Camera.Distance != 20 {
		t.Errorf("Expected default distance 20, got %f", cfg.Camera.Distance)
	}
	if cfg.Camera.MinDistance != 5 || cfg.Camera.MaxDistance != 30 {
		t.Errorf("Expected zoom range [5,30], got [%f,%f]",
			cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("Expected 1280x720 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadMalformedFileGivesDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Error("Expected a parse error")
	}
	if cfg != Default() {
		t.Errorf("Expected defaults on parse failure, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.json")

	cfg := Default()
	cfg.Camera.Distance = 12.5
	cfg.Picking.MaxDistance = 80
	cfg.Picking.UseGPU = false
	cfg.MeshPath = "models/bunny.gltf"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if loaded != cfg {
		t.Errorf("Expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadKeepsDefaultsForAbsentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(`{"camera":{"distance":8}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if cfg.Camera.Distance != 8 {
		t.Errorf("Expected overridden distance 8, got %f", cfg.Camera.Distance)
	}
	if cfg.Camera.MaxDistance != 30 {
		t.Errorf("Expected default max distance 30, got %f", cfg.Camera.MaxDistance)
	}
}
