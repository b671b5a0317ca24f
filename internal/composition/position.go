package composition

import (
	"strconv"
	"strings"
)

// Anchor is a named screen position.
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTop         Anchor = "top"
	AnchorTopRight    Anchor = "top-right"
	AnchorLeft        Anchor = "left"
	AnchorRight       Anchor = "right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottom      Anchor = "bottom"
	AnchorBottomRight Anchor = "bottom-right"
)

var anchors = map[Anchor]struct{}{
	AnchorCenter: {}, AnchorTopLeft: {}, AnchorTop: {}, AnchorTopRight: {},
	AnchorLeft: {}, AnchorRight: {}, AnchorBottomLeft: {}, AnchorBottom: {},
	AnchorBottomRight: {},
}

// Known reports whether a is one of the named anchors.
func (a Anchor) Known() bool {
	_, ok := anchors[a]
	return ok
}

// Unit qualifies explicit coordinates.
type Unit string

const (
	UnitPixels  Unit = "px"
	UnitPercent Unit = "%"
)

// Position is either a named anchor (with an optional margin from the frame
// edge) or an explicit X/Y coordinate measured from the top-left corner.
type Position struct {
	Anchor Anchor  `json:"anchor,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Unit   Unit    `json:"unit,omitempty"`
	Margin float64 `json:"margin,omitempty"`
}

// At returns an anchored position.
func At(anchor Anchor) Position {
	return Position{Anchor: anchor}
}

// Pixels returns an explicit pixel coordinate.
func Pixels(x, y float64) Position {
	return Position{X: x, Y: y, Unit: UnitPixels}
}

// Percent returns a coordinate expressed as a percentage of the frame.
func Percent(x, y float64) Position {
	return Position{X: x, Y: y, Unit: UnitPercent}
}

// Explicit reports whether the position is a coordinate rather than an anchor.
func (p Position) Explicit() bool {
	return p.Anchor == "" && p.Unit != ""
}

// String renders the position in the form ParsePosition accepts.
func (p Position) String() string {
	if !p.Explicit() {
		if p.Anchor == "" {
			return string(AnchorCenter)
		}
		return string(p.Anchor)
	}
	x := strconv.FormatFloat(p.X, 'f', -1, 64)
	y := strconv.FormatFloat(p.Y, 'f', -1, 64)
	if p.Unit == UnitPercent {
		return x + "%," + y + "%"
	}
	return x + "," + y
}

// ParsePosition reads "center", "top-left", "120,40", "120px,40px" or
// "10%,90%". Anything it cannot read falls back to center; positions are
// never an error.
func ParsePosition(value string) Position {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return At(AnchorCenter)
	}
	if a := Anchor(trimmed); a.Known() {
		return At(a)
	}
	switch trimmed {
	case "middle":
		return At(AnchorCenter)
	case "topleft":
		return At(AnchorTopLeft)
	case "topright":
		return At(AnchorTopRight)
	case "bottomleft":
		return At(AnchorBottomLeft)
	case "bottomright":
		return At(AnchorBottomRight)
	}
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return At(AnchorCenter)
	}
	x, xPercent, okX := parseCoordinate(parts[0])
	y, yPercent, okY := parseCoordinate(parts[1])
	if !okX || !okY {
		return At(AnchorCenter)
	}
	if xPercent || yPercent {
		return Percent(x, y)
	}
	return Pixels(x, y)
}

func parseCoordinate(raw string) (float64, bool, bool) {
	s := strings.TrimSpace(raw)
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false, false
	}
	return v, percent, true
}

func clonePosition(p *Position) *Position {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}
