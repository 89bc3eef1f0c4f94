package config

var presets = map[string]func() *Config{
	"default": DefaultConfig,
	"quick": func() *Config {
		cfg := DefaultConfig()
		cfg.Iterations = 200
		cfg.Collocation = 20
		return cfg
	},
	// debug is a two-iteration smoke setting, not a real training run.
	"debug": func() *Config {
		cfg := DefaultConfig()
		cfg.Iterations = 2
		cfg.Collocation = 10
		return cfg
	},
	"long": func() *Config {
		cfg := DefaultConfig()
		cfg.Iterations = 5000
		cfg.Collocation = 100
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	return []string{"default", "quick", "debug", "long"}
}
