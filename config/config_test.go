package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Particles.Count <= 0 {
		t.Errorf("particles.count = %d, want > 0", cfg.Particles.Count)
	}
	if cfg.Fluid.SmoothingRadius <= 0 {
		t.Errorf("fluid.smoothing_radius = %v, want > 0", cfg.Fluid.SmoothingRadius)
	}
	if cfg.Derived.NumCells != cfg.Derived.CellsX*cfg.Derived.CellsY*cfg.Derived.CellsZ {
		t.Errorf("NumCells = %d, want product of axes", cfg.Derived.NumCells)
	}
	// Derived cells: ceil(extent / smoothing radius) per axis.
	wantX := int32(50) // 60 units / 1.2
	if cfg.Derived.CellsX != wantX {
		t.Errorf("CellsX = %d, want %d", cfg.Derived.CellsX, wantX)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("particles:\n  count: 250\nworld:\n  min: [-2, 0, -2]\n  max: [2, 10, 2]\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Count != 250 {
		t.Errorf("particles.count = %d, want 250", cfg.Particles.Count)
	}
	// Untouched fields keep their defaults.
	if cfg.Screen.Width != 1280 {
		t.Errorf("screen.width = %d, want default 1280", cfg.Screen.Width)
	}
	if cfg.Derived.Max[1] != 10 {
		t.Errorf("Derived.Max[1] = %v, want 10", cfg.Derived.Max[1])
	}
}

func TestLoadRejectsDegenerateBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("world:\n  min: [0, 0, 0]\n  max: [0, 10, 10]\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load accepted a zero-extent bounding box")
	}
}
