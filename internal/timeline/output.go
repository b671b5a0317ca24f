package timeline

import (
	"encoding/json"

	"splicer/internal/command"
	"splicer/internal/compiler"
	"splicer/internal/composition"
	"splicer/internal/presets"
	"splicer/internal/transition"
	"splicer/internal/validation"
)

// Compile builds the filter graph for the current state.
func (t Timeline) Compile() *compiler.Result {
	return compiler.Compile(t.request())
}

func (t Timeline) request() compiler.Request {
	return compiler.Request{
		Layers:         t.layers,
		Settings:       t.settings,
		Transitions:    t.transitions,
		AutoTransition: t.auto,
		Ducking:        t.ducking,
	}
}

// Args returns the FFmpeg argument vector writing to output; args[0] is
// the binary.
func (t Timeline) Args(output string) []string {
	return command.Build(t.Compile(), t.settings, output)
}

// ArgsWith is Args with explicit preamble options.
func (t Timeline) ArgsWith(output string, opts command.Options) []string {
	return command.BuildWith(t.Compile(), t.settings, output, opts)
}

// Command returns the shell command line writing to output. It never
// fails; an empty timeline yields a minimal invocation.
func (t Timeline) Command(output string) string {
	return command.Render(t.Args(output))
}

// FilterComplex returns the serialized filter graph, or "".
func (t Timeline) FilterComplex() string {
	return t.Compile().FilterComplex()
}

// TransitionPoints returns the transitions the compiler placed, in
// timeline order.
func (t Timeline) TransitionPoints() []transition.Point {
	return t.Compile().Transitions
}

// CheckCodecCompatibility reports whether the selected codecs fit
// container. It does not affect command generation.
func (t Timeline) CheckCodecCompatibility(container string) presets.Compatibility {
	return command.CheckCodecCompatibility(t.settings, container)
}

// Preflight runs the lenient checks for a render to output.
func (t Timeline) Preflight(output string) validation.Report {
	r := t.Compile()
	duration := t.Duration()
	if t.settings.Duration > 0 {
		duration = t.settings.Duration
	}
	return validation.Preflight(validation.Input{
		Settings: t.settings,
		Duration: duration,
		Width:    r.Canvas.Width,
		Height:   r.Canvas.Height,
		Output:   output,
	})
}

type document struct {
	Layers         []composition.Layer          `json:"layers"`
	Settings       composition.Settings         `json:"settings"`
	Transitions    []compiler.TransitionRequest `json:"transitions,omitempty"`
	AutoTransition *transition.Options          `json:"autoTransition,omitempty"`
	Ducking        *validation.DuckingOptions   `json:"ducking,omitempty"`
	Duration       float64                      `json:"duration"`
}

// MarshalJSON describes the timeline with a type discriminator on each
// layer. Non-finite numbers make encoding fail.
func (t Timeline) MarshalJSON() ([]byte, error) {
	layers := t.layers
	if layers == nil {
		layers = []composition.Layer{}
	}
	return json.Marshal(document{
		Layers:         layers,
		Settings:       t.settings,
		Transitions:    t.transitions,
		AutoTransition: t.auto,
		Ducking:        t.ducking,
		Duration:       t.Duration(),
	})
}
