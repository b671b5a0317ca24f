package composition

// Settings are the global options of a composition. Symbolic values
// (aspect ratio, quality, platform, codec preset) are resolved to concrete
// numbers and flags by the presets package at compile time.
type Settings struct {
	AspectRatio string   `json:"aspectRatio,omitempty"`
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	FrameRate   float64  `json:"frameRate,omitempty"`
	Duration    float64  `json:"duration,omitempty"`
	Background  string   `json:"background,omitempty"`
	Encoding    Encoding `json:"encoding"`
}

// Encoding selects codecs and quality for the output.
type Encoding struct {
	VideoCodec  string `json:"videoCodec,omitempty"`
	AudioCodec  string `json:"audioCodec,omitempty"`
	CodecPreset string `json:"codecPreset,omitempty"`
	Quality     string `json:"quality,omitempty"`
	Platform    string `json:"platform,omitempty"`
	PixelFormat string `json:"pixelFormat,omitempty"`
}

// HasCanvas reports whether any setting fixes the output geometry.
func (s Settings) HasCanvas() bool {
	return s.AspectRatio != "" || s.Width > 0 || s.Height > 0 || s.Encoding.Platform != ""
}
