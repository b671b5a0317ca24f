package transition

import "strings"

// Type names a transition effect.
type Type string

const (
	None     Type = "none"
	Fade     Type = "fade"
	Slide    Type = "slide"
	Zoom     Type = "zoom"
	Wipe     Type = "wipe"
	Dissolve Type = "dissolve"
	Push     Type = "push"
	Cover    Type = "cover"
	Reveal   Type = "reveal"
	Iris     Type = "iris"
	Matrix   Type = "matrix"
	Cube     Type = "cube"
	Flip     Type = "flip"
	Morph    Type = "morph"
	Particle Type = "particle"
	Glitch   Type = "glitch"
	Burn     Type = "burn"
)

// Types lists every effect in a stable order, excluding None.
func Types() []Type {
	return []Type{
		Fade, Slide, Zoom, Wipe, Dissolve, Push, Cover, Reveal,
		Iris, Matrix, Cube, Flip, Morph, Particle, Glitch, Burn,
	}
}

// ParseType reads a transition name. Unknown names fall back to Fade.
func ParseType(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if t == None {
		return None
	}
	for _, known := range Types() {
		if t == known {
			return t
		}
	}
	return Fade
}

// Direction orients directional effects.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
	In    Direction = "in"
	Out   Direction = "out"
)

// ParseDirection reads a direction. Unknown values fall back to Left.
func ParseDirection(s string) Direction {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Left, Right, Up, Down, In, Out:
		return d
	}
	return Left
}

// Opposite mirrors the direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	case In:
		return Out
	case Out:
		return In
	}
	return d
}

// Easing shapes the progress curve of an effect.
type Easing string

const (
	Linear    Easing = "linear"
	EaseIn    Easing = "ease-in"
	EaseOut   Easing = "ease-out"
	EaseInOut Easing = "ease-in-out"
	Cubic     Easing = "cubic"
	Bounce    Easing = "bounce"
)

// ParseEasing reads an easing name. Unknown values fall back to Linear.
func ParseEasing(s string) Easing {
	switch e := Easing(strings.ToLower(strings.TrimSpace(s))); e {
	case Linear, EaseIn, EaseOut, EaseInOut, Cubic, Bounce:
		return e
	case "easein":
		return EaseIn
	case "easeout":
		return EaseOut
	case "easeinout":
		return EaseInOut
	}
	return Linear
}

// Expr rewrites a progress expression p (0 at the start of the effect, 1
// at the end) into FFmpeg expression syntax with the easing applied.
func (e Easing) Expr(p string) string {
	switch e {
	case EaseIn:
		return "pow(" + p + ",2)"
	case EaseOut:
		return "(1-pow(1-" + p + ",2))"
	case EaseInOut:
		return "if(lt(" + p + ",0.5),2*pow(" + p + ",2),1-pow(2-2*" + p + ",2)/2)"
	case Cubic:
		return "pow(" + p + ",3)"
	case Bounce:
		return "(1-abs(cos(" + p + "*PI*2.5))*(1-" + p + "))"
	default:
		return p
	}
}
