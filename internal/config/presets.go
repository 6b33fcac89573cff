package config

import (
	"errors"
	"sort"

	"github.com/san-kum/fireworks/internal/sim"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

var Presets = map[string]*Config{
	"classic": {
		Frames: DefaultFrames, Interval: DefaultInterval, Palette: "classic", Glyphs: DefaultGlyphs,
		Physics: sim.DefaultParams(),
	},
	"finale": {
		Frames: 400, Interval: 0.04, Palette: "sunset", Glyphs: "#@*+:.",
		Physics: sim.Params{
			Gravity: 0.1, Damping: 0.93, Sparks: 180,
			LifeMin: 20, LifeMax: 44, SpeedMin: 0.8, SpeedMax: 2.0,
			SpawnMin: 6, SpawnMax: 10, Hues: 14,
		},
	},
	"gentle": {
		Frames: 300, Interval: 0.08, Palette: "ocean", Glyphs: "*+.",
		Physics: sim.Params{
			Gravity: 0.06, Damping: 0.95, Sparks: 60,
			LifeMin: 24, LifeMax: 48, SpeedMin: 0.4, SpeedMax: 1.0,
			SpawnMin: 28, SpawnMax: 36, Hues: 14,
		},
	},
	"sparkle": {
		Frames: DefaultFrames, Interval: DefaultInterval, Palette: "classic", Glyphs: "✶*•·",
		Physics: sim.DefaultParams(),
	},
}

// GetPreset returns a copy of the named preset layered over the defaults,
// or nil when no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Frames = p.Frames
	cfg.Interval = p.Interval
	cfg.Palette = p.Palette
	cfg.Glyphs = p.Glyphs
	cfg.Physics = p.Physics
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
