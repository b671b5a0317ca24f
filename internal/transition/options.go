package transition

import (
	"math"

	"splicer/internal/composition"
)

// DefaultDuration is used when Options.Duration is not positive.
const DefaultDuration = 1.0

// Options describes one transition.
type Options struct {
	Type      Type      `json:"type" toml:"type" yaml:"type"`
	Duration  float64   `json:"duration" toml:"duration" yaml:"duration"`
	Direction Direction `json:"direction,omitempty" toml:"direction" yaml:"direction"`
	Easing    Easing    `json:"easing,omitempty" toml:"easing" yaml:"easing"`

	// Params tunes individual effects: "intensity" (glitch), "size"
	// (particle, matrix) and "softness" (iris).
	Params map[string]float64 `json:"params,omitempty" toml:"params" yaml:"params"`

	// Offset shifts the computed window, in seconds.
	Offset float64 `json:"offset,omitempty" toml:"offset" yaml:"offset"`

	// Reverse mirrors the direction of motion.
	Reverse bool `json:"reverse,omitempty" toml:"reverse" yaml:"reverse"`

	// AudioFade crossfades the audio of the two inputs as well.
	AudioFade bool `json:"audioFade,omitempty" toml:"audio_fade" yaml:"audioFade"`
}

// Normalized fills defaults: type fade, DefaultDuration, direction left,
// linear easing. Reverse is folded into the direction.
func (o Options) Normalized() Options {
	out := o
	out.Type = ParseType(string(o.Type))
	if !(o.Duration > 0) || math.IsInf(o.Duration, 0) {
		out.Duration = DefaultDuration
	}
	out.Direction = ParseDirection(string(o.Direction))
	if o.Reverse {
		out.Direction = out.Direction.Opposite()
		out.Reverse = false
	}
	out.Easing = ParseEasing(string(o.Easing))
	if o.Params != nil {
		out.Params = make(map[string]float64, len(o.Params))
		for k, v := range o.Params {
			out.Params[k] = v
		}
	}
	return out
}

func (o Options) param(key string, fallback float64) float64 {
	if v, ok := o.Params[key]; ok && v > 0 && !math.IsInf(v, 0) {
		return v
	}
	return fallback
}

// Window returns the absolute interval the transition occupies:
// start = max(from.End - d, to.Start) + offset, end = start + d.
func Window(from, to composition.Timing, opts Options) (start, end float64) {
	d := opts.Normalized().Duration
	start = math.Max(from.End()-d, to.Start) + opts.Offset
	return start, start + d
}

// Endpoint identifies one side of a transition: the layer's index in the
// caller's layer list and its timing.
type Endpoint struct {
	Index  int                `json:"index"`
	Timing composition.Timing `json:"timing"`
}

// Point is a transition placed between two layers. It is derived on demand
// and never stored on a timeline.
type Point struct {
	Start   float64  `json:"start"`
	End     float64  `json:"end"`
	From    Endpoint `json:"from"`
	To      Endpoint `json:"to"`
	Options Options  `json:"options"`
}

// NewPoint computes the window for a pair of layers.
func NewPoint(from, to Endpoint, opts Options) Point {
	opts = opts.Normalized()
	start, end := Window(from.Timing, to.Timing, opts)
	return Point{Start: start, End: end, From: from, To: to, Options: opts}
}

// Cue locates a transition relative to the start of the outgoing stream.
type Cue struct {
	Offset   float64
	Duration float64
}

// Cue returns the point's window relative to the outgoing layer's start.
func (p Point) Cue() Cue {
	return Cue{Offset: math.Max(0, p.Start-p.From.Timing.Start), Duration: p.End - p.Start}
}
