package config

import (
	"sort"

	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/gun"
	"github.com/san-kum/g4basic/internal/units"
)

func token(v any) *units.Token {
	t := units.Of(v)
	return &t
}

var Presets = map[string]func() *Config{
	// Silicon slab hit by a 100 GeV electron.
	"example1": func() *Config {
		cfg := DefaultConfig()
		cfg.Volumes["TestBox"] = geometry.VolumeSpec{
			VolType:    "Box",
			Material:   "Si",
			Dimensions: units.Tokens("5m", "5m", "1m"),
			Position:   units.Tokens(0, 0, 0),
		}
		cfg.Gun = &gun.Spec{
			Particle: "e-",
			Position: units.Tokens(0, 0, "-1m"),
			Momentum: units.Tokens(0, 0, "100GeV"),
		}
		return cfg
	},
	// Copper spectrometer tube downstream of a silicon block, 50 GeV protons.
	"example2": func() *Config {
		cfg := DefaultConfig()
		cfg.PhysicsList = "FTFP_BERT"
		cfg.Volumes["Spect"] = geometry.VolumeSpec{
			VolType:    "Tube",
			Material:   "Cu",
			Dimensions: units.Tokens(0.1, "2.5m", "4m"),
			Position:   units.Tokens(0, 0, "5m"),
			Colour:     "red",
		}
		cfg.Volumes["BB"] = geometry.VolumeSpec{
			VolType:    "Box",
			Material:   "Si",
			Dimensions: units.Tokens("10m", "10m", "3m"),
			Position:   units.Tokens(0, 0, 0),
			Colour:     "yellow",
		}
		cfg.Gun = &gun.Spec{
			Particle:  "proton",
			Energy:    token("50GeV"),
			Direction: units.Tokens(0, 0, 1),
			Position:  units.Tokens(0, 0, "-5m"),
		}
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
