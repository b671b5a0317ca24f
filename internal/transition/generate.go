package transition

import (
	"fmt"
	"math"
	"strings"

	fg "splicer/internal/filtergraph"
)

// Apply writes the stages of one transition into g and returns the pad that
// carries the joined stream. from must last until cue.Offset+cue.Duration;
// to is consumed from its first frame.
func Apply(g *fg.Graph, from, to fg.Pad, cue Cue, opts Options) fg.Pad {
	opts = opts.Normalized()
	if !(cue.Duration > 0) {
		cue.Duration = opts.Duration
	}
	if cue.Offset < 0 {
		cue.Offset = 0
	}
	gen, ok := generators[opts.Type]
	if !ok {
		gen = concatCut
	}
	return gen(g, from, to, cue, opts)
}

// Composite reports whether t is built from split windows rather than a
// single xfade.
func Composite(t Type) bool {
	switch t {
	case Slide, Iris, Morph, Glitch:
		return true
	}
	return false
}

// AudioCrossfade joins two audio pads with acrossfade over d seconds.
func AudioCrossfade(g *fg.Graph, from, to fg.Pad, d float64) fg.Pad {
	out := g.Label("a")
	g.Add([]fg.Pad{from, to}, []fg.Pad{out},
		fg.New("acrossfade", fg.KV("d", d), fg.KV("c1", "tri"), fg.KV("c2", "tri")))
	return out
}

type generator func(g *fg.Graph, from, to fg.Pad, cue Cue, opts Options) fg.Pad

var generators = map[Type]generator{
	None:     concatCut,
	Fade:     builtin(fixed("fade")),
	Dissolve: builtin(fixed("dissolve")),
	Wipe:     builtin(directional("wipe")),
	Push:     builtin(directional("slide")),
	Cover:    builtin(directional("cover")),
	Reveal:   builtin(directional("reveal")),
	Zoom:     zoom,
	Cube:     custom(cubeExpr),
	Flip:     custom(flipExpr),
	Matrix:   custom(matrixExpr),
	Particle: custom(particleExpr),
	Burn:     custom(burnExpr),
	Slide:    composite(slideEffect),
	Iris:     composite(irisEffect),
	Morph:    composite(morphEffect),
	Glitch:   composite(glitchEffect),
}

func concatCut(g *fg.Graph, from, to fg.Pad, _ Cue, _ Options) fg.Pad {
	out := g.Label("v")
	g.Add([]fg.Pad{from, to}, []fg.Pad{out}, Concat(2))
	return out
}

// Concat returns a video-only concat filter over n segments.
func Concat(n int) fg.Filter {
	return fg.New("concat", fg.KV("n", n), fg.KV("v", 1), fg.KV("a", 0))
}

func xfade(g *fg.Graph, from, to fg.Pad, cue Cue, args ...fg.Arg) fg.Pad {
	out := g.Label("v")
	all := append(args, fg.KV("duration", cue.Duration), fg.KV("offset", cue.Offset))
	g.Add([]fg.Pad{from, to}, []fg.Pad{out}, fg.New("xfade", all...))
	return out
}

func fixed(name string) func(Options) string {
	return func(Options) string { return name }
}

// directional maps a direction onto xfade's suffixed names (wipeleft,
// slideup, ...). In and Out have no xfade counterpart and use left.
func directional(prefix string) func(Options) string {
	return func(o Options) string {
		switch o.Direction {
		case Right, Up, Down:
			return prefix + string(o.Direction)
		}
		return prefix + string(Left)
	}
}

func builtin(name func(Options) string) generator {
	return func(g *fg.Graph, from, to fg.Pad, cue Cue, opts Options) fg.Pad {
		return xfade(g, from, to, cue, fg.KV("transition", name(opts)))
	}
}

func zoom(g *fg.Graph, from, to fg.Pad, cue Cue, opts Options) fg.Pad {
	if opts.Direction != Out {
		return xfade(g, from, to, cue, fg.KV("transition", "zoomin"))
	}
	return custom(zoomOutExpr)(g, from, to, cue, opts)
}

func custom(expr func(Options) string) generator {
	return func(g *fg.Graph, from, to fg.Pad, cue Cue, opts Options) fg.Pad {
		return xfade(g, from, to, cue, fg.KV("transition", "custom"), fg.KV("expr", expr(opts)))
	}
}

// progress is the eased 0..1 progress inside an xfade custom expression,
// where P runs from 1 down to 0.
func progress(o Options) string {
	return o.Easing.Expr("(1-P)")
}

// sample reads the current plane of source "a" or "b" at (x, y).
func sample(src, x, y string) string {
	at := "(" + x + "," + y + ")"
	return "if(eq(PLANE,0)," + src + "0" + at +
		",if(eq(PLANE,1)," + src + "1" + at +
		",if(eq(PLANE,2)," + src + "2" + at + "," + src + "3" + at + ")))"
}

const blank = "if(eq(PLANE,0),0,if(eq(PLANE,3),255,128))"

// axis returns the coordinate and extent the effect moves along.
func axis(d Direction) (string, string) {
	if d == Up || d == Down {
		return "Y", "H"
	}
	return "X", "W"
}

func cubeExpr(o Options) string {
	c, n := axis(o.Direction)
	first, second := "a", "b"
	edge := "st(1," + n + "*(1-ld(0)))"
	if o.Direction == Right || o.Direction == Down {
		first, second = "b", "a"
		edge = "st(1," + n + "*ld(0))"
	}
	near := c + "*" + n + "/max(ld(1),1)"
	far := "(" + c + "-ld(1))*" + n + "/max(" + n + "-ld(1),1)"
	return "st(0," + progress(o) + ");" + edge + ";" +
		"if(lt(" + c + ",ld(1))," + at(first, c, near) + "," + at(second, c, far) + ")"
}

// at samples src with coordinate c replaced by v.
func at(src, c, v string) string {
	if c == "Y" {
		return sample(src, "X", v)
	}
	return sample(src, v, "Y")
}

func flipExpr(o Options) string {
	c, n := axis(o.Direction)
	src := "(" + n + "/2+(" + c + "-" + n + "/2)/max(ld(1),0.001))"
	return "st(0," + progress(o) + ");st(1,abs(cos(PI*ld(0))));" +
		"if(gt(abs(" + c + "-" + n + "/2),ld(1)*" + n + "/2)," + blank + "," +
		"if(lt(ld(0),0.5)," + at("a", c, src) + "," + at("b", c, src) + "))"
}

func zoomOutExpr(o Options) string {
	return "st(0," + progress(o) + ");st(1,max(1-ld(0),0.001));" +
		"if(lte(abs(X-W/2),ld(1)*W/2)*lte(abs(Y-H/2),ld(1)*H/2)," +
		sample("a", "W/2+(X-W/2)/ld(1)", "H/2+(Y-H/2)/ld(1)") + ",B)"
}

func matrixExpr(o Options) string {
	size := num(o.param("size", 16))
	return "st(0," + progress(o) + ");" +
		"st(1,0.5*abs(mod(sin(floor(X/" + size + ")*12.9898)*43758.5453,1)));" +
		"if(lt(Y/H,clip((ld(0)-ld(1))/0.5,0,1)),B,A)"
}

func particleExpr(o Options) string {
	size := num(o.param("size", 8))
	return "st(0," + progress(o) + ");" +
		"st(1,abs(mod(sin(floor(X/" + size + ")*12.9898+floor(Y/" + size + ")*78.233)*43758.5453,1)));" +
		"if(lt(ld(1),ld(0)),B,A)"
}

func burnExpr(o Options) string {
	return "st(0," + progress(o) + ");st(1,A*(1-ld(0))+B*ld(0));" +
		"if(eq(PLANE,0),min(255,ld(1)+220*sin(PI*ld(0))),ld(1))"
}

type effect func(g *fg.Graph, a, b fg.Pad, d float64, opts Options) fg.Pad

// composite cuts the overlapping window out of both streams, runs the
// effect on the two windows and concatenates head, effect and tail.
func composite(fx effect) generator {
	return func(g *fg.Graph, from, to fg.Pad, cue Cue, opts Options) fg.Pad {
		d := cue.Duration
		var parts []fg.Pad
		if cue.Offset > 0 {
			keep, tail := g.Label("v"), g.Label("v")
			g.Add([]fg.Pad{from}, []fg.Pad{keep, tail}, fg.New("split", fg.Value(2)))
			parts = append(parts, g.Chain(keep, g.Label("v"),
				fg.New("trim", fg.KV("end", cue.Offset)), resetPTS()))
			from = tail
		}
		fromWin := g.Chain(from, g.Label("v"),
			fg.New("trim", fg.KV("start", cue.Offset), fg.KV("duration", d)), resetPTS())

		win, rest := g.Label("v"), g.Label("v")
		g.Add([]fg.Pad{to}, []fg.Pad{win, rest}, fg.New("split", fg.Value(2)))
		toWin := g.Chain(win, g.Label("v"), fg.New("trim", fg.KV("duration", d)), resetPTS())
		toRest := g.Chain(rest, g.Label("v"), fg.New("trim", fg.KV("start", d)), resetPTS())

		parts = append(parts, fx(g, fromWin, toWin, d, opts), toRest)
		out := g.Label("v")
		g.Add(parts, []fg.Pad{out}, Concat(len(parts)))
		return out
	}
}

func resetPTS() fg.Filter {
	return fg.New("setpts", fg.Value("PTS-STARTPTS"))
}

// windowProgress is the eased 0..1 progress over a window of d seconds,
// given the name of the filter's time variable.
func windowProgress(o Options, tvar string, d float64) string {
	return o.Easing.Expr("clip(" + tvar + "/" + num(d) + ",0,1)")
}

func slideEffect(g *fg.Graph, a, b fg.Pad, d float64, opts Options) fg.Pad {
	rem := "(1-" + windowProgress(opts, "t", d) + ")"
	x, y := "0", "0"
	switch opts.Direction {
	case Right:
		x = "-main_w*" + rem
	case Up:
		y = "main_h*" + rem
	case Down:
		y = "-main_h*" + rem
	default:
		x = "main_w*" + rem
	}
	out := g.Label("v")
	g.Add([]fg.Pad{a, b}, []fg.Pad{out},
		fg.New("overlay", fg.KV("x", x), fg.KV("y", y), fg.KV("eval", "frame")))
	return out
}

func irisEffect(g *fg.Graph, a, b fg.Pad, d float64, opts Options) fg.Pad {
	soft := num(opts.param("softness", 1))
	dist := "hypot(X-W/2,Y-H/2)"
	radius := "hypot(W/2,H/2)*" + windowProgress(opts, "T", d)
	alpha := "255*clip((" + radius + "-" + dist + ")/" + soft + ",0,1)"
	if opts.Direction == Out {
		radius = "hypot(W/2,H/2)*(1-" + windowProgress(opts, "T", d) + ")"
		alpha = "255*clip((" + dist + "-" + radius + ")/" + soft + ",0,1)"
	}
	masked := g.Chain(b, g.Label("v"),
		fg.New("format", fg.Value("yuva420p")),
		fg.New("geq",
			fg.KV("lum", "lum(X,Y)"),
			fg.KV("cb", "cb(X,Y)"),
			fg.KV("cr", "cr(X,Y)"),
			fg.KV("a", alpha)))
	out := g.Label("v")
	g.Add([]fg.Pad{a, masked}, []fg.Pad{out},
		fg.New("overlay", fg.KV("format", "auto")),
		fg.New("format", fg.Value("yuv420p")))
	return out
}

func morphEffect(g *fg.Graph, a, b fg.Pad, d float64, opts Options) fg.Pad {
	p := windowProgress(opts, "T", d)
	out := g.Label("v")
	g.Add([]fg.Pad{a, b}, []fg.Pad{out},
		fg.New("blend", fg.KV("all_expr", "A*(1-"+p+")+B*"+p)))
	return out
}

func glitchEffect(g *fg.Graph, a, b fg.Pad, d float64, opts Options) fg.Pad {
	intensity := opts.param("intensity", 1)
	shift := int(math.Round(8 * intensity))
	noise := int(math.Min(100, math.Round(40*intensity)))
	shaken := g.Chain(a, g.Label("v"),
		fg.New("rgbashift", fg.KV("rh", -shift), fg.KV("bh", shift)),
		fg.New("noise", fg.KV("alls", noise), fg.KV("allf", "t")))
	return xfade(g, shaken, b, Cue{Offset: 0, Duration: d}, fg.KV("transition", "pixelize"))
}

func num(v float64) string {
	return fg.Num(v)
}

// Describe renders a one-line summary of a point, for logs and tables.
func Describe(p Point) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s->%s", p.Options.Type, fg.Num(p.Start), fg.Num(p.End))
	if p.Options.Direction != "" && p.Options.Type != Fade && p.Options.Type != Dissolve {
		fmt.Fprintf(&b, " %s", p.Options.Direction)
	}
	return b.String()
}
