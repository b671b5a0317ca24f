package composition

// Transform holds the spatial attributes shared by visual layers.
type Transform struct {
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation,omitempty"`
	Opacity  float64 `json:"opacity"`
}

func newTransform(scale, rotation float64, opacity *float64) Transform {
	if scale == 0 {
		scale = 1
	}
	return Transform{Scale: scale, Rotation: rotation, Opacity: floatOr(opacity, 1)}
}

// Identity reports whether the transform leaves the layer untouched.
func (t Transform) Identity() bool {
	return t.Scale == 1 && t.Rotation == 0 && t.Opacity == 1
}

// TextStyle configures drawtext rendering. Values are passed through to the
// filter as given, including ones FFmpeg will reject.
type TextStyle struct {
	FontFile    string   `json:"fontFile,omitempty"`
	Font        string   `json:"font,omitempty"`
	FontSize    float64  `json:"fontSize"`
	FontColor   string   `json:"fontColor"`
	Opacity     *float64 `json:"opacity,omitempty"`
	BorderWidth float64  `json:"borderWidth,omitempty"`
	BorderColor string   `json:"borderColor,omitempty"`
	Box         bool     `json:"box,omitempty"`
	BoxColor    string   `json:"boxColor,omitempty"`
	BoxBorder   float64  `json:"boxBorder,omitempty"`
	ShadowX     float64  `json:"shadowX,omitempty"`
	ShadowY     float64  `json:"shadowY,omitempty"`
	ShadowColor string   `json:"shadowColor,omitempty"`
	LineSpacing float64  `json:"lineSpacing,omitempty"`
}

// KenBurns describes a pan-and-zoom over a still image. Focus points are
// fractions of the frame (0.5,0.5 is the center).
type KenBurns struct {
	StartZoom float64 `json:"startZoom"`
	EndZoom   float64 `json:"endZoom"`
	StartX    float64 `json:"startX"`
	StartY    float64 `json:"startY"`
	EndX      float64 `json:"endX"`
	EndY      float64 `json:"endY"`
}

// DefaultKenBurns is a gentle centered zoom-in.
func DefaultKenBurns() KenBurns {
	return KenBurns{StartZoom: 1, EndZoom: 1.2, StartX: 0.5, StartY: 0.5, EndX: 0.5, EndY: 0.5}
}

// Normalized fills unset fields from DefaultKenBurns.
func (k KenBurns) Normalized() KenBurns {
	if k == (KenBurns{}) {
		return DefaultKenBurns()
	}
	if k.StartZoom == 0 {
		k.StartZoom = 1
	}
	if k.EndZoom == 0 {
		k.EndZoom = k.StartZoom
	}
	return k
}
