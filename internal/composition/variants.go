package composition

// Defaults applied when the corresponding option is left unset.
const (
	DefaultImageDuration    = 5.0
	DefaultFontSize         = 48.0
	DefaultFontColor        = "white"
	DefaultWatermarkOpacity = 0.5
	DefaultWatermarkMargin  = 20.0
)

// Float returns a pointer to v, for optional numeric options.
func Float(v float64) *float64 {
	return &v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// VideoLayer reads a video source. A video layer without an explicit
// Position is a candidate for the base track; with one it is composited as
// picture-in-picture.
type VideoLayer struct {
	Src       string    `json:"source"`
	Time      Timing    `json:"timing"`
	In        float64   `json:"in,omitempty"`
	Position  *Position `json:"position,omitempty"`
	Transform Transform `json:"transform"`
	Volume    float64   `json:"volume"`
	Muted     bool      `json:"muted,omitempty"`
	KeepAudio bool      `json:"keepAudio,omitempty"`
}

func (VideoLayer) Kind() Kind { return KindVideo }
func (l VideoLayer) Source() string { return l.Src }
func (l VideoLayer) Timing() Timing { return l.Time }
func (VideoLayer) isLayer() {}

// VideoOptions configures AddVideo.
type VideoOptions struct {
	Start    float64
	Duration float64
	// In is the offset into the source where playback begins.
	In        float64
	Position  *Position
	Scale     float64
	Rotation  float64
	Opacity   *float64
	Volume    *float64
	Muted     bool
	KeepAudio bool
}

// NewVideo builds a VideoLayer. Unset scale and opacity default to 1.
func NewVideo(src string, opts VideoOptions) VideoLayer {
	return VideoLayer{
		Src:       src,
		Time:      Timing{Start: opts.Start, Duration: opts.Duration},
		In:        opts.In,
		Position:  clonePosition(opts.Position),
		Transform: newTransform(opts.Scale, opts.Rotation, opts.Opacity),
		Volume:    floatOr(opts.Volume, 1),
		Muted:     opts.Muted,
		KeepAudio: opts.KeepAudio,
	}
}

// AudioLayer reads an audio source and mixes it into the output.
type AudioLayer struct {
	Src     string  `json:"source"`
	Time    Timing  `json:"timing"`
	In      float64 `json:"in,omitempty"`
	Volume  float64 `json:"volume"`
	Pan     float64 `json:"pan,omitempty"`
	FadeIn  float64 `json:"fadeIn,omitempty"`
	FadeOut float64 `json:"fadeOut,omitempty"`
	Loop    bool    `json:"loop,omitempty"`
}

func (AudioLayer) Kind() Kind { return KindAudio }
func (l AudioLayer) Source() string { return l.Src }
func (l AudioLayer) Timing() Timing { return l.Time }
func (AudioLayer) isLayer() {}

// AudioOptions configures AddAudio. Pan ranges from -1 (left) to 1 (right).
type AudioOptions struct {
	Start    float64
	Duration float64
	In       float64
	Volume   *float64
	Pan      float64
	FadeIn   float64
	FadeOut  float64
	Loop     bool
}

// NewAudio builds an AudioLayer. Volume defaults to 1.
func NewAudio(src string, opts AudioOptions) AudioLayer {
	return AudioLayer{
		Src:     src,
		Time:    Timing{Start: opts.Start, Duration: opts.Duration},
		In:      opts.In,
		Volume:  floatOr(opts.Volume, 1),
		Pan:     opts.Pan,
		FadeIn:  opts.FadeIn,
		FadeOut: opts.FadeOut,
		Loop:    opts.Loop,
	}
}

// ImageLayer shows a still image, optionally animated with a Ken Burns move.
type ImageLayer struct {
	Src       string    `json:"source"`
	Time      Timing    `json:"timing"`
	Position  *Position `json:"position,omitempty"`
	Transform Transform `json:"transform"`
	KenBurns  *KenBurns `json:"kenBurns,omitempty"`
	FadeIn    float64   `json:"fadeIn,omitempty"`
	FadeOut   float64   `json:"fadeOut,omitempty"`
}

func (ImageLayer) Kind() Kind { return KindImage }
func (l ImageLayer) Source() string { return l.Src }
func (l ImageLayer) Timing() Timing { return l.Time }
func (ImageLayer) isLayer() {}

// Placement returns the explicit position or the image default (center).
func (l ImageLayer) Placement() Position {
	if l.Position != nil {
		return *l.Position
	}
	return At(AnchorCenter)
}

// ImageOptions configures AddImage.
type ImageOptions struct {
	Start    float64
	Duration float64
	Position *Position
	Scale    float64
	Rotation float64
	Opacity  *float64
	KenBurns *KenBurns
	FadeIn   float64
	FadeOut  float64
}

// NewImage builds an ImageLayer. A zero duration becomes DefaultImageDuration.
func NewImage(src string, opts ImageOptions) ImageLayer {
	duration := opts.Duration
	if duration == 0 {
		duration = DefaultImageDuration
	}
	var kb *KenBurns
	if opts.KenBurns != nil {
		copied := *opts.KenBurns
		kb = &copied
	}
	return ImageLayer{
		Src:       src,
		Time:      Timing{Start: opts.Start, Duration: duration},
		Position:  clonePosition(opts.Position),
		Transform: newTransform(opts.Scale, opts.Rotation, opts.Opacity),
		KenBurns:  kb,
		FadeIn:    opts.FadeIn,
		FadeOut:   opts.FadeOut,
	}
}

// TextLayer draws text over the video track.
type TextLayer struct {
	Text     string    `json:"text"`
	Time     Timing    `json:"timing"`
	Position Position  `json:"position"`
	Style    TextStyle `json:"style"`
	FadeIn   float64   `json:"fadeIn,omitempty"`
	FadeOut  float64   `json:"fadeOut,omitempty"`
}

func (TextLayer) Kind() Kind { return KindText }
func (TextLayer) Source() string { return "" }
func (l TextLayer) Timing() Timing { return l.Time }
func (TextLayer) isLayer() {}

// TextOptions configures AddText.
type TextOptions struct {
	Start    float64
	Duration float64
	Position *Position
	Style    TextStyle
	FadeIn   float64
	FadeOut  float64
}

// NewText builds a TextLayer. Position defaults to center, font size to
// DefaultFontSize and colour to DefaultFontColor.
func NewText(text string, opts TextOptions) TextLayer {
	pos := At(AnchorCenter)
	if opts.Position != nil {
		pos = *opts.Position
	}
	style := opts.Style
	if style.FontSize == 0 {
		style.FontSize = DefaultFontSize
	}
	if style.FontColor == "" {
		style.FontColor = DefaultFontColor
	}
	if style.Opacity == nil {
		style.Opacity = Float(1)
	} else {
		style.Opacity = Float(*style.Opacity)
	}
	return TextLayer{
		Text:     text,
		Time:     Timing{Start: opts.Start, Duration: opts.Duration},
		Position: pos,
		Style:    style,
		FadeIn:   opts.FadeIn,
		FadeOut:  opts.FadeOut,
	}
}

// Track selects the stream a FilterLayer applies to.
type Track string

const (
	TrackVideo Track = "video"
	TrackAudio Track = "audio"
)

// Param is one key=value filter argument. An empty Key emits the value
// positionally.
type Param struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

// FilterLayer applies a raw FFmpeg filter to the current video or audio
// track at its position in the layer order.
type FilterLayer struct {
	Name   string  `json:"name"`
	Params []Param `json:"params,omitempty"`
	Track  Track   `json:"track"`
	Time   Timing  `json:"timing"`
}

func (FilterLayer) Kind() Kind { return KindFilter }
func (FilterLayer) Source() string { return "" }
func (l FilterLayer) Timing() Timing { return l.Time }
func (FilterLayer) isLayer() {}

// FilterOptions configures AddFilter. A bounded timing limits the filter to
// that window through the timeline editing option.
type FilterOptions struct {
	Track    Track
	Start    float64
	Duration float64
}

// NewFilter builds a FilterLayer. Track defaults to video.
func NewFilter(name string, params []Param, opts FilterOptions) FilterLayer {
	track := opts.Track
	if track == "" {
		track = TrackVideo
	}
	var copied []Param
	if len(params) > 0 {
		copied = make([]Param, len(params))
		copy(copied, params)
	}
	return FilterLayer{
		Name:   name,
		Params: copied,
		Track:  track,
		Time:   Timing{Start: opts.Start, Duration: opts.Duration},
	}
}

// WatermarkLayer is a semi-transparent image or text mark that stays on
// screen for the whole output unless a bounded timing is given.
type WatermarkLayer struct {
	Src      string    `json:"source,omitempty"`
	Text     string    `json:"text,omitempty"`
	Time     Timing    `json:"timing"`
	Position Position  `json:"position"`
	Opacity  float64   `json:"opacity"`
	Scale    float64   `json:"scale"`
	Style    TextStyle `json:"style"`
}

func (WatermarkLayer) Kind() Kind { return KindWatermark }
func (l WatermarkLayer) Source() string { return l.Src }
func (l WatermarkLayer) Timing() Timing { return l.Time }
func (WatermarkLayer) isLayer() {}

// IsText reports whether the watermark renders text instead of an image.
func (l WatermarkLayer) IsText() bool {
	return l.Src == "" && l.Text != ""
}

// WatermarkOptions configures AddWatermark. Set Text instead of a source to
// draw a text mark.
type WatermarkOptions struct {
	Text     string
	Start    float64
	Duration float64
	Position *Position
	Opacity  *float64
	Scale    float64
	Style    TextStyle
}

// NewWatermark builds a WatermarkLayer anchored bottom-right with
// DefaultWatermarkMargin and DefaultWatermarkOpacity unless overridden.
func NewWatermark(src string, opts WatermarkOptions) WatermarkLayer {
	pos := Position{Anchor: AnchorBottomRight, Margin: DefaultWatermarkMargin}
	if opts.Position != nil {
		pos = *opts.Position
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	style := opts.Style
	if style.FontSize == 0 {
		style.FontSize = DefaultFontSize / 2
	}
	if style.FontColor == "" {
		style.FontColor = DefaultFontColor
	}
	return WatermarkLayer{
		Src:      src,
		Text:     opts.Text,
		Time:     Timing{Start: opts.Start, Duration: opts.Duration},
		Position: pos,
		Opacity:  floatOr(opts.Opacity, DefaultWatermarkOpacity),
		Scale:    scale,
		Style:    style,
	}
}
