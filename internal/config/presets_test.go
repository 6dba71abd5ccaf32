package config

import (
	"os"
	"sort"
	"testing"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("lorenz", "classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Coefs[1] != 28 {
		t.Errorf("expected rho 28, got %f", cfg.Coefs[1])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("lorenz", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "classic") != nil {
		t.Error("expected nil for nonexistent attractor")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("double_pendulum")
	if len(presets) != 2 {
		t.Fatalf("expected 2 presets, got %v", presets)
	}
	if !sort.StringsAreSorted(presets) {
		t.Errorf("presets not sorted: %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent attractor")
	}
}

func TestPresetsApply(t *testing.T) {
	for key, named := range Presets {
		for name, p := range named {
			if p.Attractor != key {
				t.Errorf("%s/%s: attractor %q", key, name, p.Attractor)
			}
			cfg := DefaultConfig()
			cfg.ApplyPreset(p)
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", key, name, err)
				continue
			}
			if _, err := cfg.NewAttractor(cfg.Rand()); err != nil {
				t.Errorf("%s/%s: %v", key, name, err)
			}
		}
	}
}

func TestApplyPresetKeepsRenderSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 333
	cfg.Output = "x.png"
	p := GetPreset("clifford", "classic")
	cfg.ApplyPreset(p)

	if cfg.Width != 333 || cfg.Output != "x.png" {
		t.Error("render settings overwritten")
	}
	cfg.Coefs[0] = 0
	if p.Coefs[0] != 1 {
		t.Error("preset shares coefficients with config")
	}
}
