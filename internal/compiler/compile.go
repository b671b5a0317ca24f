package compiler

import (
	"strings"

	"splicer/internal/composition"
	fg "splicer/internal/filtergraph"
	"splicer/internal/presets"
	"splicer/internal/transition"
	"splicer/internal/validation"
)

// Defaults used when settings leave the working canvas open.
const (
	DefaultWidth      = 1920
	DefaultHeight     = 1080
	DefaultFrameRate  = 30.0
	DefaultBackground = "black"
)

// TransitionRequest asks for a transition between two layers, by index in
// the layer list.
type TransitionRequest struct {
	From    int                `json:"from"`
	To      int                `json:"to"`
	Options transition.Options `json:"options"`
}

// Request is the input to Compile.
type Request struct {
	Layers      []composition.Layer
	Settings    composition.Settings
	Transitions []TransitionRequest
	// AutoTransition joins every pair of start-adjacent visual layers that
	// has no explicit request.
	AutoTransition *transition.Options
	Ducking        *validation.DuckingOptions
}

// Result is a compiled composition.
type Result struct {
	Inputs []Input
	Graph  *fg.Graph
	// Video and Audio are the pads to map; either may be empty.
	Video fg.Pad
	Audio fg.Pad
	// Canvas is the output geometry when settings fixed it.
	Canvas      presets.Resolution
	Duration    float64
	Transitions []transition.Point
}

// FilterComplex returns the serialized graph, or "" when there is none.
func (r *Result) FilterComplex() string {
	if r == nil || r.Graph.Empty() {
		return ""
	}
	return r.Graph.String()
}

// Maps returns the -map arguments for the result's output pads.
func (r *Result) Maps() []string {
	if r == nil {
		return nil
	}
	var args []string
	if r.Video != "" {
		args = append(args, "-map", r.Video.MapArg())
	}
	if r.Audio != "" {
		args = append(args, "-map", r.Audio.MapArg())
	}
	return args
}

// InputArgs returns the -i arguments in input order.
func (r *Result) InputArgs() []string {
	if r == nil {
		return nil
	}
	var args []string
	for _, in := range r.Inputs {
		args = append(args, in.Args()...)
	}
	return args
}

// Validate checks label resolution of the graph against the inputs.
func (r *Result) Validate() error {
	if r == nil {
		return nil
	}
	return r.Graph.Validate(len(r.Inputs))
}

// canvas is the geometry the compiler works in.
type canvas struct {
	width, height int

	// fixed is set when settings determine both dimensions.
	fixed bool

	// scaleW and scaleH hold a single requested dimension, with -2 for the
	// one derived from the source aspect.
	scaleW, scaleH int

	fps float64

	// explicitFPS is set when settings name a frame rate.
	explicitFPS bool

	background string
	pixFmt     string
}

func resolveCanvas(s composition.Settings) canvas {
	c := canvas{width: DefaultWidth, height: DefaultHeight, fps: DefaultFrameRate, background: DefaultBackground}
	switch {
	case s.Width > 0 && s.Height > 0:
		c.width, c.height, c.fixed = s.Width, s.Height, true
	case s.AspectRatio != "":
		if r, ok := presets.AspectCanvas(s.AspectRatio); ok {
			c.width, c.height, c.fixed = r.Width, r.Height, true
		}
	case s.Encoding.Platform != "":
		if p, ok := presets.LookupPlatform(s.Encoding.Platform); ok {
			if r, ok := presets.LookupResolution(p.Resolution); ok {
				c.width, c.height, c.fixed = r.Width, r.Height, true
			}
		}
	case s.Width > 0 || s.Height > 0:
		c.scaleW, c.scaleH = -2, -2
		if s.Width > 0 {
			c.scaleW = s.Width
		}
		if s.Height > 0 {
			c.scaleH = s.Height
		}
	}
	if s.FrameRate != 0 {
		c.fps, c.explicitFPS = s.FrameRate, true
	}
	if bg := strings.TrimSpace(s.Background); bg != "" {
		c.background = bg
	}
	c.pixFmt = presets.Select(s.Encoding.VideoCodec, s.Encoding.AudioCodec, s.Encoding.CodecPreset,
		s.Encoding.Quality, s.Encoding.Platform, s.Encoding.PixelFormat).PixelFormat
	return c
}

type compilation struct {
	layers   []composition.Layer
	settings composition.Settings
	g        *fg.Graph
	inputs   registry
	canvas   canvas
	total    float64
	joins    map[[2]int]transition.Options
	inBase   map[int]bool
	ducking  *validation.DuckingOptions
	result   *Result
}

// Compile builds the filter graph for req. Layers are processed in
// insertion order, which fixes compositing order; only transition adjacency
// is decided by start time. An empty request yields an empty result.
func Compile(req Request) *Result {
	c := &compilation{
		layers:   req.Layers,
		settings: req.Settings,
		g:        fg.NewGraph(),
		canvas:   resolveCanvas(req.Settings),
		total:    composition.End(req.Layers),
		inBase:   make(map[int]bool),
		ducking:  req.Ducking,
		result:   &Result{},
	}
	c.result.Duration = c.total
	if req.Settings.Duration > 0 {
		c.result.Duration = req.Settings.Duration
	}
	if c.canvas.fixed {
		c.result.Canvas = presets.CustomResolution(c.canvas.width, c.canvas.height)
	}
	if len(req.Layers) == 0 {
		c.result.Graph = c.g
		return c.result
	}
	c.resolveJoins(req.Transitions, req.AutoTransition)
	c.compileVideo()
	c.compileAudio()
	c.result.Inputs = c.inputs.list
	c.result.Graph = c.g
	return c.result
}

func (c *compilation) resolveJoins(explicit []TransitionRequest, auto *transition.Options) {
	c.joins = make(map[[2]int]transition.Options)
	if auto != nil {
		for _, pair := range transition.AdjacentPairs(c.layers) {
			c.joins[[2]int{pair[0].Index, pair[1].Index}] = *auto
		}
	}
	for _, t := range explicit {
		if t.From < 0 || t.From >= len(c.layers) || t.To < 0 || t.To >= len(c.layers) {
			continue
		}
		c.joins[[2]int{t.From, t.To}] = t.Options
	}
	for key, opts := range c.joins {
		if opts.Normalized().Type == transition.None {
			delete(c.joins, key)
		}
	}
}

func (c *compilation) label(kind string) fg.Pad {
	return c.g.Label(kind)
}

func resetPTS() fg.Filter {
	return fg.New("setpts", fg.Value("PTS-STARTPTS"))
}

func shiftPTS(start float64) fg.Filter {
	return fg.New("setpts", fg.Value("PTS-STARTPTS+"+fg.Num(start)+"/TB"))
}

// chain applies filters to src, returning src unchanged when there are
// none.
func (c *compilation) chain(src fg.Pad, kind string, filters []fg.Filter) fg.Pad {
	if len(filters) == 0 {
		return src
	}
	return c.g.Chain(src, c.label(kind), filters...)
}
