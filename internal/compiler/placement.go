package compiler

import (
	"splicer/internal/composition"
	fg "splicer/internal/filtergraph"
)

// frame names the variables a filter exposes for the frame and the object
// being placed.
type frame struct {
	W, H string
	w, h string
}

var (
	overlayFrame  = frame{W: "W", H: "H", w: "w", h: "h"}
	drawtextFrame = frame{W: "w", H: "h", w: "text_w", h: "text_h"}
)

// place returns x and y expressions for p. Anchors keep Margin pixels from
// the frame edge; explicit coordinates are pixels or percentages of the
// frame measured from the top-left corner.
func place(p composition.Position, f frame) (string, string) {
	if p.Explicit() {
		if p.Unit == composition.UnitPercent {
			return f.W + "*" + fg.Num(p.X) + "/100", f.H + "*" + fg.Num(p.Y) + "/100"
		}
		return fg.Num(p.X), fg.Num(p.Y)
	}
	m := p.Margin
	left, top := fg.Num(m), fg.Num(m)
	right, bottom := minus(f.W+"-"+f.w, m), minus(f.H+"-"+f.h, m)
	cx, cy := "("+f.W+"-"+f.w+")/2", "("+f.H+"-"+f.h+")/2"

	switch p.Anchor {
	case composition.AnchorTopLeft:
		return left, top
	case composition.AnchorTop:
		return cx, top
	case composition.AnchorTopRight:
		return right, top
	case composition.AnchorLeft:
		return left, cy
	case composition.AnchorRight:
		return right, cy
	case composition.AnchorBottomLeft:
		return left, bottom
	case composition.AnchorBottom:
		return cx, bottom
	case composition.AnchorBottomRight:
		return right, bottom
	default:
		return cx, cy
	}
}

func minus(expr string, m float64) string {
	if m == 0 {
		return expr
	}
	return expr + "-" + fg.Num(m)
}

// enable returns the timeline editing expression for a layer, or false when
// the layer covers the whole output.
func enable(t composition.Timing) (string, bool) {
	if t.Duration != 0 {
		return "between(t," + fg.Num(t.Start) + "," + fg.Num(t.End()) + ")", true
	}
	if t.Start != 0 {
		return "gte(t," + fg.Num(t.Start) + ")", true
	}
	return "", false
}
