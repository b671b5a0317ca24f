package transition

import (
	"sort"
	"strings"
)

// DefaultPreset is returned for unknown preset names.
const DefaultPreset = "smooth"

var presets = map[string]Options{
	"smooth":       {Type: Fade, Duration: 1, Easing: EaseInOut},
	"quick":        {Type: Dissolve, Duration: 0.3, Easing: Linear},
	"dramatic":     {Type: Zoom, Duration: 2, Direction: In, Easing: EaseInOut},
	"slide-show":   {Type: Slide, Duration: 1, Direction: Left, Easing: EaseInOut},
	"professional": {Type: Wipe, Duration: 0.8, Direction: Right, Easing: EaseInOut},
	"creative":     {Type: Cube, Duration: 1.5, Direction: Left, Easing: EaseInOut},
	"retro":        {Type: Glitch, Duration: 0.8, Easing: Linear, Params: map[string]float64{"intensity": 1.5}},
	"tech":         {Type: Particle, Duration: 1.2, Easing: EaseOut, Params: map[string]float64{"size": 6}},
	"matrix":       {Type: Matrix, Duration: 1.5, Easing: Linear, Params: map[string]float64{"size": 12}},
}

// Preset returns the named preset, or the smooth preset when the name is
// unknown.
func Preset(name string) Options {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		p = presets[DefaultPreset]
	}
	return p.Normalized()
}

// HasPreset reports whether name is a known preset.
func HasPreset(name string) bool {
	_, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
