package config

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"curtain": {
		Width: 56, Height: 20, Spacing: 12,
		Origin:  Vec{X: 250, Y: 40},
		Gravity: Vec{X: 0, Y: 980},
		Stiffness: 1.0, TearThreshold: 6.0, Iterations: 8, CutRadius: 10,
	},
	"net": {
		Width: 24, Height: 16, Spacing: 26,
		Origin:  Vec{X: 280, Y: 60},
		Gravity: Vec{X: 0, Y: 700},
		Stiffness: 0.5, TearThreshold: 5.0, Iterations: 3, CutRadius: 14,
	},
	"fragile": {
		Width: 40, Height: 25, Spacing: 15,
		Origin:  Vec{X: 300, Y: 50},
		Gravity: Vec{X: 0, Y: 1400},
		Stiffness: 0.9, TearThreshold: 1.6, Iterations: 5, CutRadius: 10,
	},
	"windblown": {
		Width: 40, Height: 25, Spacing: 15,
		Origin:  Vec{X: 300, Y: 50},
		Gravity: Vec{X: 350, Y: 900},
		Stiffness: 0.85, TearThreshold: 4.5, Iterations: 5, CutRadius: 10,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
