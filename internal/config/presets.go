package config

import "sort"

var Presets = map[string]map[string]*Config{
	"trigonometric": {
		"default": {Attractor: "trigonometric", Coefs: []float64{1, 1, 1, 1, 1, 1, 1, 1}},
		"swirl": {
			Attractor: "trigonometric",
			Coefs:     []float64{-1.2, 2.1, 0.4, -0.3, 1.7, -2.6, 0.9, 0.2},
		},
	},
	"clifford": {
		"classic": {
			Attractor: "clifford",
			Coefs:     []float64{1, -1.4, 1, -1.4, 1, 1.6, 0.7, 1.6},
		},
		"wings": {
			Attractor: "clifford",
			Coefs:     []float64{1, 1.7, 1, 1.7, 1, 1.3, 1.3, 0.7},
		},
	},
	"symmetric": {
		"trefoil": {Attractor: "symmetric", Coefs: []float64{3, 1.56, -1, 0.1, 0, -0.82}},
		"star":    {Attractor: "symmetric", Coefs: []float64{5, -1.806, 1.806, 0, 0, 1}},
	},
	"duffing": {
		"chaotic": {Attractor: "duffing", Coefs: []float64{0.3, 0.5, 1.2}, InitState: []float64{1, 0}},
	},
	"lorenz": {
		"classic": {
			Attractor: "lorenz",
			Coefs:     []float64{10, 28, 8.0 / 3.0},
			InitState: []float64{1, 1, 1},
			Dt:        0.0005,
		},
	},
	"double_pendulum": {
		"chaos": {
			Attractor: "double_pendulum",
			Coefs:     []float64{1, 1, 1, 1, 9.8},
			InitState: []float64{3, 3, 0, 0},
		},
		"gentle": {
			Attractor: "double_pendulum",
			Coefs:     []float64{1, 1, 1, 1, 9.8},
			InitState: []float64{0.3, 0.3, 0, 0},
		},
	},
}

func GetPreset(key, preset string) *Config {
	keyPresets, ok := Presets[key]
	if !ok {
		return nil
	}
	cfg, ok := keyPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names for key in sorted order.
func ListPresets(key string) []string {
	keyPresets, ok := Presets[key]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(keyPresets))
	for name := range keyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
