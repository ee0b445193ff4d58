package config

// Presets are ready-made run configurations.
var Presets = map[string]*Config{
	"small": {
		Steps: 500, Slit: 0.05, Particles: 20,
		Radius: 0.0015, Speed: 0.01, Seed: 1, Output: "out",
	},
	"dense": {
		Steps: 5000, Slit: 0.05, Particles: 200,
		Radius: 0.0015, Speed: 0.01, Seed: 1, Output: "out",
	},
	"slit-narrow": {
		Steps: 5000, Slit: 0.01, Particles: 100,
		Radius: 0.0015, Speed: 0.01, Seed: 1, Output: "out",
	},
	"slit-wide": {
		Steps: 5000, Slit: 0.09, Particles: 100,
		Radius: 0.0015, Speed: 0.01, Seed: 1, Output: "out",
	},
	"fast": {
		Steps: 2000, Slit: 0.05, Particles: 100,
		Radius: 0.0015, Speed: 0.1, Seed: 1, Output: "out",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	clone.Initial = append([]ParticleConfig(nil), cfg.Initial...)
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
