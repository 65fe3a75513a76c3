package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.World.Width < 1 || cfg.World.Height < 1 {
		t.Errorf("default world dimensions invalid: %dx%d", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Population.Size < 1 {
		t.Errorf("default population size invalid: %d", cfg.Population.Size)
	}
	if cfg.Traits.StandardMin > cfg.Traits.StandardMax {
		t.Error("default standard trait range inverted")
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "world:\n  width: 64\n  height: 48\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.World.Width != 64 || cfg.World.Height != 48 {
		t.Errorf("user dimensions not applied: %dx%d", cfg.World.Width, cfg.World.Height)
	}
	// Untouched sections keep their defaults.
	if cfg.Population.Size < 1 {
		t.Error("defaults lost during merge")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero width", "world:\n  width: 0\n"},
		{"inverted traits", "traits:\n  standard_min: 80\n  standard_max: 10\n"},
		{"elite fraction", "evolution:\n  elite_fraction: 1.5\n"},
		{"tournament size", "evolution:\n  tournament_size: 0\n"},
		{"resource divisor", "fitness:\n  resource_divisor: 0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(c.content), 0644); err != nil {
				t.Fatalf("writing test config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestDerivedEliteCount(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	exact := float64(cfg.Population.Size) * cfg.Evolution.EliteFraction
	if float64(cfg.Derived.EliteCount) < exact {
		t.Errorf("EliteCount = %d, want ceil of %f", cfg.Derived.EliteCount, exact)
	}
	if float64(cfg.Derived.EliteCount-1) >= exact {
		t.Errorf("EliteCount = %d overshoots ceil of %f", cfg.Derived.EliteCount, exact)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if reloaded.World.Width != cfg.World.Width || reloaded.Population.Size != cfg.Population.Size {
		t.Error("round-tripped config differs")
	}
}
