package compiler

import (
	"splicer/internal/composition"
	fg "splicer/internal/filtergraph"
)

// overlayVideo composites a video that is not part of the base track. A
// video without a position covers the frame from the top-left corner.
func (c *compilation) overlayVideo(cur fg.Pad, v composition.VideoLayer) fg.Pad {
	src := fg.Stream(c.inputs.add(v.Src), "v")
	filters := videoTrim(v.In, v.Time.Duration)
	filters = append(filters, overlayTransform(v.Transform)...)
	if v.Time.Start != 0 {
		filters = append(filters, shiftPTS(v.Time.Start))
	}
	pos := composition.At(composition.AnchorTopLeft)
	if v.Position != nil {
		pos = *v.Position
	}
	return c.overlay(cur, c.chain(src, "v", filters), pos, v.Time)
}

func (c *compilation) overlayImage(cur fg.Pad, v composition.ImageLayer) fg.Pad {
	idx, filters := c.imageSource(v)
	filters = append(filters, overlayTransform(v.Transform)...)
	filters = append(filters, imageFades(v, true)...)
	if v.Time.Start != 0 {
		filters = append(filters, shiftPTS(v.Time.Start))
	}
	return c.overlay(cur, c.chain(fg.Stream(idx, "v"), "v", filters), v.Placement(), v.Time)
}

func (c *compilation) overlay(main, top fg.Pad, pos composition.Position, t composition.Timing) fg.Pad {
	x, y := place(pos, overlayFrame)
	args := []fg.Arg{fg.KV("x", x), fg.KV("y", y)}
	if expr, ok := enable(t); ok {
		args = append(args, fg.KV("enable", expr))
	}
	args = append(args, fg.KV("eof_action", "pass"))
	out := c.label("v")
	c.g.Add([]fg.Pad{main, top}, []fg.Pad{out}, fg.New("overlay", args...))
	return out
}

func (c *compilation) drawText(cur fg.Pad, v composition.TextLayer) fg.Pad {
	args := textArgs(v.Text, v.Style, v.Position)
	if expr, ok := enable(v.Time); ok {
		args = append(args, fg.KV("enable", expr))
	}
	if alpha, ok := textAlpha(v); ok {
		args = append(args, fg.KV("alpha", alpha))
	}
	return c.g.Chain(cur, c.label("v"), fg.New("drawtext", args...))
}

// textArgs builds drawtext options. Style values are written as given.
func textArgs(text string, s composition.TextStyle, pos composition.Position) []fg.Arg {
	args := []fg.Arg{fg.KV("text", fg.EscapeText(text))}
	if s.FontFile != "" {
		args = append(args, fg.KV("fontfile", s.FontFile))
	} else if s.Font != "" {
		args = append(args, fg.KV("font", s.Font))
	}
	args = append(args,
		fg.KV("fontsize", s.FontSize),
		fg.KV("fontcolor", withAlpha(s.FontColor, s.Opacity)))
	if s.BorderWidth != 0 {
		args = append(args, fg.KV("borderw", s.BorderWidth), fg.KV("bordercolor", or(s.BorderColor, "black")))
	}
	if s.Box {
		args = append(args, fg.KV("box", 1), fg.KV("boxcolor", or(s.BoxColor, "black@0.5")))
		if s.BoxBorder != 0 {
			args = append(args, fg.KV("boxborderw", s.BoxBorder))
		}
	}
	if s.ShadowX != 0 || s.ShadowY != 0 {
		args = append(args,
			fg.KV("shadowx", s.ShadowX),
			fg.KV("shadowy", s.ShadowY),
			fg.KV("shadowcolor", or(s.ShadowColor, "black")))
	}
	if s.LineSpacing != 0 {
		args = append(args, fg.KV("line_spacing", s.LineSpacing))
	}
	x, y := place(pos, drawtextFrame)
	return append(args, fg.KV("x", x), fg.KV("y", y))
}

// textAlpha ramps text opacity over its fade-in and fade-out.
func textAlpha(v composition.TextLayer) (string, bool) {
	if v.FadeIn <= 0 && v.FadeOut <= 0 {
		return "", false
	}
	start, end := v.Time.Start, v.Time.End()
	expr := "1"
	if v.FadeOut > 0 && v.Time.Bounded() {
		expr = "if(gt(t," + fg.Num(end-v.FadeOut) + "),(" + fg.Num(end) + "-t)/" + fg.Num(v.FadeOut) + "," + expr + ")"
	}
	if v.FadeIn > 0 {
		expr = "if(lt(t," + fg.Num(start+v.FadeIn) + "),(t-" + fg.Num(start) + ")/" + fg.Num(v.FadeIn) + "," + expr + ")"
	}
	return expr, true
}

func withAlpha(color string, opacity *float64) string {
	if opacity == nil || *opacity == 1 {
		return color
	}
	return color + "@" + fg.Num(*opacity)
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// watermark draws a text mark or composites an image mark at the
// watermark's opacity.
func (c *compilation) watermark(cur fg.Pad, v composition.WatermarkLayer) fg.Pad {
	if v.IsText() {
		style := v.Style
		opacity := v.Opacity
		style.Opacity = &opacity
		args := textArgs(v.Text, style, v.Position)
		if expr, ok := enable(v.Time); ok {
			args = append(args, fg.KV("enable", expr))
		}
		return c.g.Chain(cur, c.label("v"), fg.New("drawtext", args...))
	}
	if v.Src == "" {
		return cur
	}
	src := fg.Stream(c.inputs.add(v.Src, "-loop", "1"), "v")
	var filters []fg.Filter
	if v.Scale != 1 {
		filters = append(filters, scaleBy(v.Scale))
	}
	filters = append(filters,
		fg.New("format", fg.Value("rgba")),
		fg.New("colorchannelmixer", fg.KV("aa", v.Opacity)))
	if v.Time.Start != 0 {
		filters = append(filters, shiftPTS(v.Time.Start))
	}
	mark := c.chain(src, "v", filters)
	x, y := place(v.Position, overlayFrame)
	args := []fg.Arg{fg.KV("x", x), fg.KV("y", y)}
	if expr, ok := enable(v.Time); ok {
		args = append(args, fg.KV("enable", expr))
	}
	args = append(args, fg.KV("shortest", 1))
	out := c.label("v")
	c.g.Add([]fg.Pad{cur, mark}, []fg.Pad{out}, fg.New("overlay", args...))
	return out
}

// userFilter appends a caller-supplied filter verbatim. A bounded timing
// limits it through timeline editing.
func (c *compilation) userFilter(cur fg.Pad, v composition.FilterLayer) fg.Pad {
	f, ok := rawFilter(v)
	if !ok {
		return cur
	}
	kind := "v"
	if v.Track == composition.TrackAudio {
		kind = "a"
	}
	return c.g.Chain(cur, c.label(kind), f)
}

func rawFilter(v composition.FilterLayer) (fg.Filter, bool) {
	if v.Name == "" {
		return fg.Filter{}, false
	}
	args := make([]fg.Arg, 0, len(v.Params)+1)
	for _, p := range v.Params {
		args = append(args, fg.RawKV(p.Key, p.Value))
	}
	if expr, ok := enable(v.Time); ok {
		args = append(args, fg.KV("enable", expr))
	}
	return fg.New(v.Name, args...), true
}
