package compiler

import (
	"math"
	"strconv"

	"splicer/internal/composition"
	fg "splicer/internal/filtergraph"
	"splicer/internal/transition"
)

func (c *compilation) compileVideo() {
	base := c.selectBase()
	var cur fg.Pad
	switch {
	case len(base) > 0:
		cur = c.buildBase(base)
		cur = c.applyCanvas(cur, len(base) > 1)
	case c.needsBackground():
		cur = c.background()
	default:
		return
	}

	for i, l := range c.layers {
		if c.inBase[i] {
			continue
		}
		switch v := l.(type) {
		case composition.VideoLayer:
			cur = c.overlayVideo(cur, v)
		case composition.ImageLayer:
			cur = c.overlayImage(cur, v)
		case composition.TextLayer:
			cur = c.drawText(cur, v)
		case composition.WatermarkLayer:
			cur = c.watermark(cur, v)
		case composition.FilterLayer:
			if v.Track != composition.TrackAudio {
				cur = c.userFilter(cur, v)
			}
		}
	}
	c.result.Video = cur
}

// sequenceCandidate reports whether l can be part of the base track: a
// video or image that was not given an explicit position.
func sequenceCandidate(l composition.Layer) bool {
	switch v := l.(type) {
	case composition.VideoLayer:
		return v.Position == nil
	case composition.ImageLayer:
		return v.Position == nil
	}
	return false
}

// selectBase walks the layers in insertion order. The first candidate opens
// the base track; each later candidate joins it when it starts no earlier
// than the previous member and either does not overlap it or is joined to
// it by a transition.
func (c *compilation) selectBase() []int {
	var base []int
	for i, l := range c.layers {
		if !sequenceCandidate(l) {
			continue
		}
		if len(base) == 0 {
			base = append(base, i)
			c.inBase[i] = true
			continue
		}
		prev := base[len(base)-1]
		pt, nt := c.layers[prev].Timing(), l.Timing()
		if nt.Start < pt.Start {
			continue
		}
		_, joined := c.joins[[2]int{prev, i}]
		if joined || !pt.Overlaps(nt) {
			base = append(base, i)
			c.inBase[i] = true
		}
	}
	return base
}

func (c *compilation) needsBackground() bool {
	for _, l := range c.layers {
		switch v := l.(type) {
		case composition.VideoLayer, composition.ImageLayer, composition.TextLayer, composition.WatermarkLayer:
			return true
		case composition.FilterLayer:
			if v.Track != composition.TrackAudio {
				return true
			}
		}
	}
	return false
}

// buildBase joins the base members into one stream aligned to output time
// zero. Hard cuts are collected into runs joined by a single concat; a
// transition closes the run and feeds it to the transition generator.
func (c *compilation) buildBase(base []int) fg.Pad {
	normalize := len(base) > 1
	first := c.layers[base[0]]
	seg := c.baseSegment(first, normalize)
	if start := first.Timing().Start; start > 0 {
		seg = c.g.Chain(seg, c.label("v"), c.tpad("start", "add", start))
	}
	run := []fg.Pad{seg}

	prevIdx, pt := base[0], first.Timing()
	for _, idx := range base[1:] {
		l := c.layers[idx]
		nt := l.Timing()
		opts, joined := c.joins[[2]int{prevIdx, idx}]
		if !joined {
			if pt.Bounded() && nt.Start > pt.End() {
				run[len(run)-1] = c.g.Chain(run[len(run)-1], c.label("v"), c.tpad("stop", "add", nt.Start-pt.End()))
			}
			run = append(run, c.baseSegment(l, normalize))
			prevIdx, pt = idx, nt
			continue
		}

		point := transition.NewPoint(
			transition.Endpoint{Index: prevIdx, Timing: pt},
			transition.Endpoint{Index: idx, Timing: nt},
			opts)
		if pt.Bounded() && point.End > pt.End() {
			run[len(run)-1] = c.g.Chain(run[len(run)-1], c.label("v"), c.tpad("stop", "clone", point.End-pt.End()))
		}
		from := c.flush(run)
		next := c.baseSegment(l, normalize)
		switch lead := point.Start - nt.Start; {
		case lead > 0:
			next = c.g.Chain(next, c.label("v"), fg.New("trim", fg.KV("start", lead)), resetPTS())
		case lead < 0:
			next = c.g.Chain(next, c.label("v"), c.tpad("start", "clone", -lead))
		}
		cue := transition.Cue{Offset: math.Max(0, point.Start), Duration: point.End - point.Start}
		run = []fg.Pad{transition.Apply(c.g, from, next, cue, point.Options)}
		c.result.Transitions = append(c.result.Transitions, point)
		prevIdx, pt = idx, nt
	}
	return c.flush(run)
}

func (c *compilation) flush(run []fg.Pad) fg.Pad {
	if len(run) == 1 {
		return run[0]
	}
	out := c.label("v")
	c.g.Add(run, []fg.Pad{out}, transition.Concat(len(run)))
	return out
}

// tpad pads the start or end of a stream. mode "add" fills with the
// background colour, "clone" repeats the edge frame.
func (c *compilation) tpad(edge, mode string, seconds float64) fg.Filter {
	args := []fg.Arg{fg.KV(edge+"_mode", mode), fg.KV(edge+"_duration", seconds)}
	if mode == "add" {
		args = append(args, fg.KV("color", c.canvas.background))
	}
	return fg.New("tpad", args...)
}

// baseSegment prepares one base member. When the base has several members
// each one is conformed to the working canvas so concat and xfade see
// identical geometry, frame rate and pixel format.
func (c *compilation) baseSegment(l composition.Layer, normalize bool) fg.Pad {
	var (
		src     fg.Pad
		filters []fg.Filter
	)
	switch v := l.(type) {
	case composition.VideoLayer:
		src = fg.Stream(c.inputs.add(v.Src), "v")
		filters = append(filters, videoTrim(v.In, v.Time.Duration)...)
		filters = append(filters, c.baseTransform(v.Transform)...)
	case composition.ImageLayer:
		var idx int
		idx, filters = c.imageSource(v)
		src = fg.Stream(idx, "v")
		filters = append(filters, c.baseTransform(v.Transform)...)
		filters = append(filters, imageFades(v, false)...)
	default:
		return ""
	}
	if normalize {
		filters = append(filters, c.conform()...)
	}
	return c.chain(src, "v", filters)
}

func videoTrim(in, duration float64) []fg.Filter {
	if in == 0 && duration == 0 {
		return nil
	}
	var args []fg.Arg
	if in != 0 {
		args = append(args, fg.KV("start", in))
	}
	if duration != 0 {
		args = append(args, fg.KV("duration", duration))
	}
	return []fg.Filter{fg.New("trim", args...), resetPTS()}
}

// imageSource registers a still image. Plain stills are looped and trimmed
// to the layer duration; Ken Burns stills are read once and expanded by
// zoompan into the required number of frames.
func (c *compilation) imageSource(v composition.ImageLayer) (int, []fg.Filter) {
	if v.KenBurns == nil {
		idx := c.inputs.add(v.Src, "-loop", "1")
		return idx, []fg.Filter{fg.New("trim", fg.KV("duration", v.Time.Duration)), resetPTS()}
	}
	kb := v.KenBurns.Normalized()
	duration := v.Time.Duration
	if !v.Time.Bounded() {
		duration = composition.DefaultImageDuration
	}
	frames := int(math.Max(1, math.Round(duration*c.canvas.fps)))
	f := strconv.Itoa(frames)
	lerp := func(a, b float64) string {
		return "(" + fg.Num(a) + "+" + fg.Num(b-a) + "*on/" + f + ")"
	}
	w, h := c.canvas.width, c.canvas.height
	zoompan := fg.New("zoompan",
		fg.KV("z", lerp(kb.StartZoom, kb.EndZoom)),
		fg.KV("x", "max(0,min(iw-iw/zoom,"+lerp(kb.StartX, kb.EndX)+"*iw-iw/zoom/2))"),
		fg.KV("y", "max(0,min(ih-ih/zoom,"+lerp(kb.StartY, kb.EndY)+"*ih-ih/zoom/2))"),
		fg.KV("d", frames),
		fg.KV("s", strconv.Itoa(w)+"x"+strconv.Itoa(h)),
		fg.KV("fps", c.canvas.fps))
	idx := c.inputs.add(v.Src)
	return idx, []fg.Filter{fg.New("scale", fg.Value(2*w), fg.Value(2*h)), zoompan, resetPTS()}
}

// imageFades fades a still in and out, to the background on the base
// track or through transparency when it is composited.
func imageFades(v composition.ImageLayer, alpha bool) []fg.Filter {
	var filters []fg.Filter
	fade := func(kind string, start, d float64) fg.Filter {
		args := []fg.Arg{fg.KV("t", kind), fg.KV("st", start), fg.KV("d", d)}
		if alpha {
			args = append(args, fg.KV("alpha", 1))
		}
		return fg.New("fade", args...)
	}
	if v.FadeIn > 0 {
		filters = append(filters, fade("in", 0, v.FadeIn))
	}
	if v.FadeOut > 0 && v.Time.Bounded() {
		filters = append(filters, fade("out", v.Time.Duration-v.FadeOut, v.FadeOut))
	}
	return filters
}

// baseTransform applies scale and rotation to a base member. The frame size
// is kept for rotation so later stages see the same geometry.
func (c *compilation) baseTransform(t composition.Transform) []fg.Filter {
	var filters []fg.Filter
	if t.Scale != 1 {
		filters = append(filters, scaleBy(t.Scale))
	}
	if t.Rotation != 0 {
		filters = append(filters, fg.New("rotate", fg.KV("a", radians(t.Rotation)), fg.KV("c", c.canvas.background)))
	}
	return filters
}

// overlayTransform applies scale, rotation and opacity to a layer that is
// composited over the base. Rotation grows the frame to fit the rotated
// picture and leaves the corners transparent.
func overlayTransform(t composition.Transform) []fg.Filter {
	var filters []fg.Filter
	if t.Scale != 1 {
		filters = append(filters, scaleBy(t.Scale))
	}
	rgba := false
	if t.Rotation != 0 {
		a := radians(t.Rotation)
		filters = append(filters,
			fg.New("format", fg.Value("rgba")),
			fg.New("rotate", fg.KV("a", a), fg.KV("c", "none"), fg.KV("ow", "rotw("+a+")"), fg.KV("oh", "roth("+a+")")))
		rgba = true
	}
	if t.Opacity != 1 {
		if !rgba {
			filters = append(filters, fg.New("format", fg.Value("rgba")))
		}
		filters = append(filters, fg.New("colorchannelmixer", fg.KV("aa", t.Opacity)))
	}
	return filters
}

func scaleBy(s float64) fg.Filter {
	n := fg.Num(s)
	return fg.New("scale", fg.KV("w", "iw*"+n), fg.KV("h", "ih*"+n))
}

func radians(deg float64) string {
	return fg.Num(deg) + "*PI/180"
}

// conform fits a stream to the working canvas by covering and cropping.
func (c *compilation) conform() []fg.Filter {
	return []fg.Filter{
		fg.New("scale", fg.Value(c.canvas.width), fg.Value(c.canvas.height), fg.KV("force_original_aspect_ratio", "increase")),
		fg.New("crop", fg.Value(c.canvas.width), fg.Value(c.canvas.height)),
		fg.New("setsar", fg.Value(1)),
		fg.New("fps", fg.Value(c.canvas.fps)),
		fg.New("format", fg.Value(c.canvas.pixFmt)),
	}
}

// applyCanvas runs the global geometry and frame rate transform once, right
// after the base track. A conformed multi-member base already has it.
func (c *compilation) applyCanvas(cur fg.Pad, conformed bool) fg.Pad {
	if conformed {
		return cur
	}
	var filters []fg.Filter
	switch {
	case c.canvas.fixed:
		filters = append(filters,
			fg.New("scale", fg.Value(c.canvas.width), fg.Value(c.canvas.height), fg.KV("force_original_aspect_ratio", "increase")),
			fg.New("crop", fg.Value(c.canvas.width), fg.Value(c.canvas.height)),
			fg.New("setsar", fg.Value(1)))
	case c.canvas.scaleW != 0 || c.canvas.scaleH != 0:
		filters = append(filters,
			fg.New("scale", fg.Value(c.canvas.scaleW), fg.Value(c.canvas.scaleH)),
			fg.New("setsar", fg.Value(1)))
	}
	if c.canvas.explicitFPS {
		filters = append(filters, fg.New("fps", fg.Value(c.canvas.fps)))
	}
	return c.chain(cur, "v", filters)
}

// background generates a solid canvas for compositions without a base
// track.
func (c *compilation) background() fg.Pad {
	d := c.result.Duration
	if !(d > 0) {
		d = composition.DefaultImageDuration
	}
	out := c.label("v")
	c.g.Add(nil, []fg.Pad{out}, fg.New("color",
		fg.KV("c", c.canvas.background),
		fg.KV("s", strconv.Itoa(c.canvas.width)+"x"+strconv.Itoa(c.canvas.height)),
		fg.KV("r", c.canvas.fps),
		fg.KV("d", d)))
	return out
}
