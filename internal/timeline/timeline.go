package timeline

import (
	"slices"

	"splicer/internal/compiler"
	"splicer/internal/composition"
	fg "splicer/internal/filtergraph"
	"splicer/internal/transition"
	"splicer/internal/validation"
)

// Timeline is an immutable composition under construction. The zero value
// is an empty timeline. Every method returns a new Timeline and leaves the
// receiver untouched, so one base can be extended along independent
// branches, including from several goroutines.
type Timeline struct {
	layers      []composition.Layer
	settings    composition.Settings
	transitions []compiler.TransitionRequest
	auto        *transition.Options
	ducking     *validation.DuckingOptions
}

// New returns an empty timeline.
func New() Timeline {
	return Timeline{}
}

// with appends l. The layer slice is clipped first so that an append never
// writes into a backing array another Timeline still reads.
func (t Timeline) with(l composition.Layer) Timeline {
	t.layers = append(slices.Clip(t.layers), l)
	return t
}

// AddLayer appends an already constructed layer.
func (t Timeline) AddLayer(l composition.Layer) Timeline {
	if l == nil {
		return t
	}
	return t.with(l)
}

// AddVideo appends a video layer.
func (t Timeline) AddVideo(src string, opts composition.VideoOptions) Timeline {
	return t.with(composition.NewVideo(src, opts))
}

// AddAudio appends an audio layer.
func (t Timeline) AddAudio(src string, opts composition.AudioOptions) Timeline {
	return t.with(composition.NewAudio(src, opts))
}

// AddImage appends a still image layer.
func (t Timeline) AddImage(src string, opts composition.ImageOptions) Timeline {
	return t.with(composition.NewImage(src, opts))
}

// AddText appends a text layer.
func (t Timeline) AddText(text string, opts composition.TextOptions) Timeline {
	return t.with(composition.NewText(text, opts))
}

// AddFilter appends a raw filter applied at this point of the layer order.
func (t Timeline) AddFilter(name string, params []composition.Param, opts composition.FilterOptions) Timeline {
	return t.with(composition.NewFilter(name, params, opts))
}

// AddWatermark appends an image watermark, or a text one when src is empty
// and opts.Text is set.
func (t Timeline) AddWatermark(src string, opts composition.WatermarkOptions) Timeline {
	return t.with(composition.NewWatermark(src, opts))
}

// Scale appends a scale filter. Order matters: Scale then Crop differs
// from Crop then Scale.
func (t Timeline) Scale(width, height int) Timeline {
	return t.AddFilter("scale", []composition.Param{
		{Value: fg.Format(width)},
		{Value: fg.Format(height)},
	}, composition.FilterOptions{})
}

// Crop appends a crop filter of width x height at (x, y).
func (t Timeline) Crop(width, height, x, y int) Timeline {
	return t.AddFilter("crop", []composition.Param{
		{Key: "w", Value: fg.Format(width)},
		{Key: "h", Value: fg.Format(height)},
		{Key: "x", Value: fg.Format(x)},
		{Key: "y", Value: fg.Format(y)},
	}, composition.FilterOptions{})
}

// Rotate appends a rotate filter turning the frame by degrees clockwise.
func (t Timeline) Rotate(degrees float64) Timeline {
	return t.AddFilter("rotate", []composition.Param{
		{Key: "a", Value: fg.Num(degrees) + "*PI/180"},
	}, composition.FilterOptions{})
}

// AddTransition requests a transition between the layers at indices from
// and to. Indices out of range are ignored at compile time.
func (t Timeline) AddTransition(from, to int, opts transition.Options) Timeline {
	t.transitions = append(slices.Clip(t.transitions), compiler.TransitionRequest{From: from, To: to, Options: opts})
	return t
}

// AddTransitionPreset is AddTransition with a named preset.
func (t Timeline) AddTransitionPreset(from, to int, preset string) Timeline {
	return t.AddTransition(from, to, transition.Preset(preset))
}

// WithTransitions joins every pair of start-adjacent video and image
// layers with opts unless an explicit transition covers the pair.
func (t Timeline) WithTransitions(opts transition.Options) Timeline {
	auto := opts.Normalized()
	t.auto = &auto
	return t
}

// WithoutTransitions drops automatic and explicit transitions.
func (t Timeline) WithoutTransitions() Timeline {
	t.auto = nil
	t.transitions = nil
	return t
}

// WithAudioDucking lowers other audio under the voice track. Unlike the
// rest of the builder the options are checked immediately; an out-of-range
// value returns the receiver unchanged and an error wrapping
// validation.ErrValidation.
func (t Timeline) WithAudioDucking(opts validation.DuckingOptions) (Timeline, error) {
	opts = opts.Normalized()
	if err := validation.ValidateDucking(opts); err != nil {
		return t, err
	}
	t.ducking = &opts
	return t, nil
}

// Layers returns a copy of the layer list in insertion order.
func (t Timeline) Layers() []composition.Layer {
	return slices.Clone(t.layers)
}

// Len returns the number of layers.
func (t Timeline) Len() int {
	return len(t.layers)
}

// Transitions returns a copy of the explicit transition requests.
func (t Timeline) Transitions() []compiler.TransitionRequest {
	return slices.Clone(t.transitions)
}

// AutoTransition returns the automatic transition options, if set.
func (t Timeline) AutoTransition() (transition.Options, bool) {
	if t.auto == nil {
		return transition.Options{}, false
	}
	return *t.auto, true
}

// Ducking returns the ducking options, if set.
func (t Timeline) Ducking() (validation.DuckingOptions, bool) {
	if t.ducking == nil {
		return validation.DuckingOptions{}, false
	}
	return *t.ducking, true
}

// Duration is the latest layer end: max(Start+Duration) over all layers,
// or 0 for an empty timeline. A SetDuration override does not change it.
func (t Timeline) Duration() float64 {
	return composition.End(t.layers)
}
