package composition

import "math"

// Kind identifies the variant of a Layer.
type Kind string

const (
	KindVideo     Kind = "video"
	KindAudio     Kind = "audio"
	KindImage     Kind = "image"
	KindText      Kind = "text"
	KindFilter    Kind = "filter"
	KindWatermark Kind = "watermark"
)

// Visual reports whether layers of this kind can form the base video track.
func (k Kind) Visual() bool {
	return k == KindVideo || k == KindImage
}

// Timing places a layer on the output timeline, in seconds.
type Timing struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns Start+Duration.
func (t Timing) End() float64 {
	return t.Start + t.Duration
}

// Bounded reports whether the layer declares a finite, positive duration.
// Layers without one run for their source length or the whole output.
func (t Timing) Bounded() bool {
	return t.Duration > 0 && !math.IsInf(t.Duration, 0) && !math.IsNaN(t.Duration)
}

// Overlaps reports whether two timings share any instant. An unbounded
// timing runs from its start onwards.
func (t Timing) Overlaps(other Timing) bool {
	return t.Start < other.until() && other.Start < t.until()
}

func (t Timing) until() float64 {
	if !t.Bounded() {
		return math.Inf(1)
	}
	return t.End()
}

// Layer is one element of a composition. The set of implementations is
// closed: VideoLayer, AudioLayer, ImageLayer, TextLayer, FilterLayer and
// WatermarkLayer.
type Layer interface {
	Kind() Kind
	// Source is the input reference the layer reads, or "" for layers that
	// are generated entirely inside the filter graph.
	Source() string
	Timing() Timing
	isLayer()
}

// Retime returns a copy of l placed at t. advance moves the source in-point
// forward for layers that read a time-based source (video, audio); it is
// ignored for the other kinds.
func Retime(l Layer, t Timing, advance float64) Layer {
	switch v := l.(type) {
	case VideoLayer:
		v.Time = t
		v.In += advance
		return v
	case AudioLayer:
		v.Time = t
		v.In += advance
		return v
	case ImageLayer:
		v.Time = t
		return v
	case TextLayer:
		v.Time = t
		return v
	case FilterLayer:
		v.Time = t
		return v
	case WatermarkLayer:
		v.Time = t
		return v
	default:
		return l
	}
}

// WithSource returns a copy of l reading from src. Layers without a source
// are returned unchanged.
func WithSource(l Layer, src string) Layer {
	switch v := l.(type) {
	case VideoLayer:
		v.Src = src
		return v
	case AudioLayer:
		v.Src = src
		return v
	case ImageLayer:
		v.Src = src
		return v
	case WatermarkLayer:
		if v.Src != "" {
			v.Src = src
		}
		return v
	default:
		return l
	}
}

// End returns the latest Start+Duration over layers, or 0 when there are
// none. Values are taken as given, including negative durations.
func End(layers []Layer) float64 {
	end := 0.0
	for i, l := range layers {
		e := l.Timing().End()
		if i == 0 || e > end {
			end = e
		}
	}
	return end
}
