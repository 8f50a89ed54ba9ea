package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("unexpected default grid %dx%d", cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(c *Config) {}, true},
		{"min grid", func(c *Config) { c.Width = 2; c.Height = 2 }, true},
		{"width too small", func(c *Config) { c.Width = 1 }, false},
		{"height too small", func(c *Config) { c.Height = 0 }, false},
		{"zero spacing", func(c *Config) { c.Spacing = 0 }, false},
		{"negative spacing", func(c *Config) { c.Spacing = -5 }, false},
		{"zero stiffness", func(c *Config) { c.Stiffness = 0 }, false},
		{"stiffness above one", func(c *Config) { c.Stiffness = 1.1 }, false},
		{"full stiffness", func(c *Config) { c.Stiffness = 1.0 }, true},
		{"tear threshold at one", func(c *Config) { c.TearThreshold = 1.0 }, false},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, false},
		{"zero cut radius", func(c *Config) { c.CutRadius = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloth.yaml")

	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Gravity = Vec{X: 50, Y: 700}
	cfg.TearThreshold = 3.3

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fragile")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.TearThreshold >= DefaultTearThreshold {
		t.Errorf("fragile preset should tear easily, got threshold %f", cfg.TearThreshold)
	}

	// Returned preset is a copy; mutating it must not poison the table.
	cfg.Width = 99
	if again := GetPreset("fragile"); again.Width == 99 {
		t.Error("preset table was mutated through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAllValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
