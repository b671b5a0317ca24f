package project

// Document is a declarative composition. It is read from JSON, TOML or
// YAML with the same field names in each format.
type Document struct {
	Settings       Settings     `json:"settings" toml:"settings" yaml:"settings"`
	Layers         []Layer      `json:"layers" toml:"layers" yaml:"layers"`
	Transitions    []Transition `json:"transitions,omitempty" toml:"transitions,omitempty" yaml:"transitions,omitempty"`
	AutoTransition *Transition  `json:"auto_transition,omitempty" toml:"auto_transition,omitempty" yaml:"auto_transition,omitempty"`
	Ducking        *Ducking     `json:"ducking,omitempty" toml:"ducking,omitempty" yaml:"ducking,omitempty"`
	Output         string       `json:"output,omitempty" toml:"output,omitempty" yaml:"output,omitempty"`
}

// Settings are the global options. Resolution names a preset ("1080p");
// explicit Width and Height win over it.
type Settings struct {
	AspectRatio string  `json:"aspect_ratio,omitempty" toml:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`
	Resolution  string  `json:"resolution,omitempty" toml:"resolution,omitempty" yaml:"resolution,omitempty"`
	Width       int     `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height      int     `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	FrameRate   float64 `json:"frame_rate,omitempty" toml:"frame_rate,omitempty" yaml:"frame_rate,omitempty"`
	Duration    float64 `json:"duration,omitempty" toml:"duration,omitempty" yaml:"duration,omitempty"`
	Background  string  `json:"background,omitempty" toml:"background,omitempty" yaml:"background,omitempty"`
	VideoCodec  string  `json:"video_codec,omitempty" toml:"video_codec,omitempty" yaml:"video_codec,omitempty"`
	AudioCodec  string  `json:"audio_codec,omitempty" toml:"audio_codec,omitempty" yaml:"audio_codec,omitempty"`
	CodecPreset string  `json:"codec_preset,omitempty" toml:"codec_preset,omitempty" yaml:"codec_preset,omitempty"`
	Quality     string  `json:"quality,omitempty" toml:"quality,omitempty" yaml:"quality,omitempty"`
	Platform    string  `json:"platform,omitempty" toml:"platform,omitempty" yaml:"platform,omitempty"`
	PixelFormat string  `json:"pixel_format,omitempty" toml:"pixel_format,omitempty" yaml:"pixel_format,omitempty"`
}

// Layer is one entry of the layer list. Type selects the variant
// ("video", "audio", "image", "text", "filter", "watermark"); fields that
// do not apply to it are ignored.
type Layer struct {
	Type     string  `json:"type" toml:"type" yaml:"type"`
	Source   string  `json:"source,omitempty" toml:"source,omitempty" yaml:"source,omitempty"`
	Text     string  `json:"text,omitempty" toml:"text,omitempty" yaml:"text,omitempty"`
	Start    float64 `json:"start,omitempty" toml:"start,omitempty" yaml:"start,omitempty"`
	Duration float64 `json:"duration,omitempty" toml:"duration,omitempty" yaml:"duration,omitempty"`
	In       float64 `json:"in,omitempty" toml:"in,omitempty" yaml:"in,omitempty"`

	// Position is "center", "top-left", "120,40" or "10%,90%".
	Position string   `json:"position,omitempty" toml:"position,omitempty" yaml:"position,omitempty"`
	Margin   float64  `json:"margin,omitempty" toml:"margin,omitempty" yaml:"margin,omitempty"`
	Scale    float64  `json:"scale,omitempty" toml:"scale,omitempty" yaml:"scale,omitempty"`
	Rotation float64  `json:"rotation,omitempty" toml:"rotation,omitempty" yaml:"rotation,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty" toml:"opacity,omitempty" yaml:"opacity,omitempty"`

	Volume    *float64 `json:"volume,omitempty" toml:"volume,omitempty" yaml:"volume,omitempty"`
	Muted     bool     `json:"muted,omitempty" toml:"muted,omitempty" yaml:"muted,omitempty"`
	KeepAudio bool     `json:"keep_audio,omitempty" toml:"keep_audio,omitempty" yaml:"keep_audio,omitempty"`
	Pan       float64  `json:"pan,omitempty" toml:"pan,omitempty" yaml:"pan,omitempty"`
	Loop      bool     `json:"loop,omitempty" toml:"loop,omitempty" yaml:"loop,omitempty"`
	FadeIn    float64  `json:"fade_in,omitempty" toml:"fade_in,omitempty" yaml:"fade_in,omitempty"`
	FadeOut   float64  `json:"fade_out,omitempty" toml:"fade_out,omitempty" yaml:"fade_out,omitempty"`

	Style    *Style    `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty"`
	KenBurns *KenBurns `json:"ken_burns,omitempty" toml:"ken_burns,omitempty" yaml:"ken_burns,omitempty"`

	// Filter layers.
	Filter string  `json:"filter,omitempty" toml:"filter,omitempty" yaml:"filter,omitempty"`
	Params []Param `json:"params,omitempty" toml:"params,omitempty" yaml:"params,omitempty"`
	Track  string  `json:"track,omitempty" toml:"track,omitempty" yaml:"track,omitempty"`
}

// Style configures text and text watermarks.
type Style struct {
	Font        string   `json:"font,omitempty" toml:"font,omitempty" yaml:"font,omitempty"`
	FontFile    string   `json:"font_file,omitempty" toml:"font_file,omitempty" yaml:"font_file,omitempty"`
	FontSize    float64  `json:"font_size,omitempty" toml:"font_size,omitempty" yaml:"font_size,omitempty"`
	FontColor   string   `json:"font_color,omitempty" toml:"font_color,omitempty" yaml:"font_color,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty" toml:"opacity,omitempty" yaml:"opacity,omitempty"`
	BorderWidth float64  `json:"border_width,omitempty" toml:"border_width,omitempty" yaml:"border_width,omitempty"`
	BorderColor string   `json:"border_color,omitempty" toml:"border_color,omitempty" yaml:"border_color,omitempty"`
	Box         bool     `json:"box,omitempty" toml:"box,omitempty" yaml:"box,omitempty"`
	BoxColor    string   `json:"box_color,omitempty" toml:"box_color,omitempty" yaml:"box_color,omitempty"`
	ShadowX     float64  `json:"shadow_x,omitempty" toml:"shadow_x,omitempty" yaml:"shadow_x,omitempty"`
	ShadowY     float64  `json:"shadow_y,omitempty" toml:"shadow_y,omitempty" yaml:"shadow_y,omitempty"`
	LineSpacing float64  `json:"line_spacing,omitempty" toml:"line_spacing,omitempty" yaml:"line_spacing,omitempty"`
}

// KenBurns animates a still image. Zero fields take the defaults.
type KenBurns struct {
	StartZoom float64 `json:"start_zoom,omitempty" toml:"start_zoom,omitempty" yaml:"start_zoom,omitempty"`
	EndZoom   float64 `json:"end_zoom,omitempty" toml:"end_zoom,omitempty" yaml:"end_zoom,omitempty"`
	StartX    float64 `json:"start_x,omitempty" toml:"start_x,omitempty" yaml:"start_x,omitempty"`
	StartY    float64 `json:"start_y,omitempty" toml:"start_y,omitempty" yaml:"start_y,omitempty"`
	EndX      float64 `json:"end_x,omitempty" toml:"end_x,omitempty" yaml:"end_x,omitempty"`
	EndY      float64 `json:"end_y,omitempty" toml:"end_y,omitempty" yaml:"end_y,omitempty"`
}

// Param is one filter argument; an empty key is positional.
type Param struct {
	Key   string `json:"key,omitempty" toml:"key,omitempty" yaml:"key,omitempty"`
	Value string `json:"value" toml:"value" yaml:"value"`
}

// Transition joins two layers by index. Preset names a transition preset
// whose fields the others override.
type Transition struct {
	From      int                `json:"from" toml:"from" yaml:"from"`
	To        int                `json:"to" toml:"to" yaml:"to"`
	Preset    string             `json:"preset,omitempty" toml:"preset,omitempty" yaml:"preset,omitempty"`
	Type      string             `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`
	Duration  float64            `json:"duration,omitempty" toml:"duration,omitempty" yaml:"duration,omitempty"`
	Direction string             `json:"direction,omitempty" toml:"direction,omitempty" yaml:"direction,omitempty"`
	Easing    string             `json:"easing,omitempty" toml:"easing,omitempty" yaml:"easing,omitempty"`
	Offset    float64            `json:"offset,omitempty" toml:"offset,omitempty" yaml:"offset,omitempty"`
	Reverse   bool               `json:"reverse,omitempty" toml:"reverse,omitempty" yaml:"reverse,omitempty"`
	AudioFade bool               `json:"audio_fade,omitempty" toml:"audio_fade,omitempty" yaml:"audio_fade,omitempty"`
	Params    map[string]float64 `json:"params,omitempty" toml:"params,omitempty" yaml:"params,omitempty"`
}

// Ducking lowers music under a voice track. Unset fields take the
// defaults.
type Ducking struct {
	Voice      string   `json:"voice,omitempty" toml:"voice,omitempty" yaml:"voice,omitempty"`
	Level      *float64 `json:"level,omitempty" toml:"level,omitempty" yaml:"level,omitempty"`
	VoiceBoost *float64 `json:"voice_boost,omitempty" toml:"voice_boost,omitempty" yaml:"voice_boost,omitempty"`
	FadeIn     *float64 `json:"fade_in,omitempty" toml:"fade_in,omitempty" yaml:"fade_in,omitempty"`
	FadeOut    *float64 `json:"fade_out,omitempty" toml:"fade_out,omitempty" yaml:"fade_out,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty" toml:"threshold,omitempty" yaml:"threshold,omitempty"`
	Ratio      float64  `json:"ratio,omitempty" toml:"ratio,omitempty" yaml:"ratio,omitempty"`
}
