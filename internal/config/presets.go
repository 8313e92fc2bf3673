package config

import "sort"

var Presets = map[string]*Config{
	"reference": {
		Network: "argon", Temperature: 5.4, TEnd: 5e-8, Dt: 1e-12, Guard: "flag",
		Initial: ReferenceDensities,
	},
	"cold": {
		Network: "argon", Temperature: 2.0, TEnd: 5e-8, Dt: 1e-12, Guard: "flag",
		Initial: ReferenceDensities,
	},
	"hot": {
		Network: "argon", Temperature: 10.0, TEnd: 2e-8, Dt: 1e-12, Guard: "flag",
		Initial: ReferenceDensities,
	},
	"short": {
		Network: "argon", Temperature: 5.4, TEnd: 1e-9, Dt: 1e-12, Guard: "flag",
		Initial: ReferenceDensities,
	},
	"direct": {
		Network: "argon", Temperature: 5.4, TEnd: 5e-8, Dt: 1e-12, Guard: "flag", DirectIonization: true,
		Initial: ReferenceDensities,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
