package transition

import (
	"sort"

	"splicer/internal/composition"
	fg "splicer/internal/filtergraph"
)

// Engine collects transition points and renders them as a standalone
// filter graph. It is not safe for concurrent use.
type Engine struct {
	points []Point
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Add places a transition between two layers and returns the point.
func (e *Engine) Add(from, to Endpoint, opts Options) Point {
	p := NewPoint(from, to, opts)
	e.points = append(e.points, p)
	return p
}

// AutoGenerate clears the engine and adds one point with opts between each
// pair of temporally adjacent video or image layers. Layers are ordered by
// start time; equal starts keep their insertion order.
func (e *Engine) AutoGenerate(layers []composition.Layer, opts Options) []Point {
	e.Clear()
	for _, pair := range AdjacentPairs(layers) {
		e.Add(pair[0], pair[1], opts)
	}
	return e.Points()
}

// AdjacentPairs sorts the visual layers by start time and returns each
// consecutive pair.
func AdjacentPairs(layers []composition.Layer) [][2]Endpoint {
	var visual []Endpoint
	for i, l := range layers {
		if l.Kind().Visual() {
			visual = append(visual, Endpoint{Index: i, Timing: l.Timing()})
		}
	}
	sort.SliceStable(visual, func(i, j int) bool {
		return visual[i].Timing.Start < visual[j].Timing.Start
	})
	var pairs [][2]Endpoint
	for i := 1; i < len(visual); i++ {
		pairs = append(pairs, [2]Endpoint{visual[i-1], visual[i]})
	}
	return pairs
}

// Points returns a copy of the held points in insertion order.
func (e *Engine) Points() []Point {
	out := make([]Point, len(e.points))
	copy(out, e.points)
	return out
}

// Clear removes every point.
func (e *Engine) Clear() {
	e.points = nil
}

// Graph builds the transition graph. Point i reads inputs 2i (outgoing) and
// 2i+1 (incoming), so callers pass the sources of each pair in order.
func (e *Engine) Graph() *fg.Graph {
	g := fg.NewGraph()
	for i, p := range e.points {
		from, to := fg.Stream(2*i, "v"), fg.Stream(2*i+1, "v")
		Apply(g, from, to, p.Cue(), p.Options)
		if p.Options.AudioFade {
			AudioCrossfade(g, fg.Stream(2*i, "a"), fg.Stream(2*i+1, "a"), p.End-p.Start)
		}
	}
	return g
}

// BuildFilterComplex serializes Graph.
func (e *Engine) BuildFilterComplex() string {
	return e.Graph().String()
}
