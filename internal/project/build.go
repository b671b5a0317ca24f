package project

import (
	"fmt"
	"strings"

	"splicer/internal/composition"
	"splicer/internal/timeline"
	"splicer/internal/transition"
	"splicer/internal/validation"
)

// Timeline builds the composition the document describes. Numeric values
// are taken as given; an unknown layer type or out-of-range ducking
// options are errors wrapping validation.ErrValidation.
func (d Document) Timeline() (timeline.Timeline, error) {
	t := timeline.New().WithSettings(d.Settings.composition())
	if d.Settings.Width == 0 && d.Settings.Height == 0 && d.Settings.Resolution != "" {
		t = t.SetResolutionPreset(d.Settings.Resolution)
	}
	for i, l := range d.Layers {
		layer, err := l.layer()
		if err != nil {
			return timeline.Timeline{}, validation.Wrap(validation.ErrValidation, "project", "layers",
				fmt.Sprintf("layer %d", i), err)
		}
		t = t.AddLayer(layer)
	}
	for _, tr := range d.Transitions {
		t = t.AddTransition(tr.From, tr.To, tr.options())
	}
	if d.AutoTransition != nil {
		t = t.WithTransitions(d.AutoTransition.options())
	}
	if d.Ducking != nil {
		var err error
		if t, err = t.WithAudioDucking(d.Ducking.options()); err != nil {
			return timeline.Timeline{}, err
		}
	}
	return t, nil
}

func (s Settings) composition() composition.Settings {
	return composition.Settings{
		AspectRatio: s.AspectRatio,
		Width:       s.Width,
		Height:      s.Height,
		FrameRate:   s.FrameRate,
		Duration:    s.Duration,
		Background:  s.Background,
		Encoding: composition.Encoding{
			VideoCodec:  s.VideoCodec,
			AudioCodec:  s.AudioCodec,
			CodecPreset: s.CodecPreset,
			Quality:     s.Quality,
			Platform:    s.Platform,
			PixelFormat: s.PixelFormat,
		},
	}
}

// position returns nil when the layer leaves its position to the variant
// default.
func (l Layer) position() *composition.Position {
	if strings.TrimSpace(l.Position) == "" && l.Margin == 0 {
		return nil
	}
	p := composition.ParsePosition(l.Position)
	if !p.Explicit() {
		p.Margin = l.Margin
	}
	return &p
}

func (l Layer) layer() (composition.Layer, error) {
	switch composition.Kind(strings.ToLower(strings.TrimSpace(l.Type))) {
	case composition.KindVideo:
		return composition.NewVideo(l.Source, composition.VideoOptions{
			Start: l.Start, Duration: l.Duration, In: l.In,
			Position: l.position(), Scale: l.Scale, Rotation: l.Rotation, Opacity: l.Opacity,
			Volume: l.Volume, Muted: l.Muted, KeepAudio: l.KeepAudio,
		}), nil
	case composition.KindAudio:
		return composition.NewAudio(l.Source, composition.AudioOptions{
			Start: l.Start, Duration: l.Duration, In: l.In,
			Volume: l.Volume, Pan: l.Pan, FadeIn: l.FadeIn, FadeOut: l.FadeOut, Loop: l.Loop,
		}), nil
	case composition.KindImage:
		return composition.NewImage(l.Source, composition.ImageOptions{
			Start: l.Start, Duration: l.Duration,
			Position: l.position(), Scale: l.Scale, Rotation: l.Rotation, Opacity: l.Opacity,
			KenBurns: l.KenBurns.composition(), FadeIn: l.FadeIn, FadeOut: l.FadeOut,
		}), nil
	case composition.KindText:
		return composition.NewText(l.Text, composition.TextOptions{
			Start: l.Start, Duration: l.Duration, Position: l.position(),
			Style: l.Style.composition(), FadeIn: l.FadeIn, FadeOut: l.FadeOut,
		}), nil
	case composition.KindFilter:
		if strings.TrimSpace(l.Filter) == "" {
			return nil, fmt.Errorf("filter layer needs a filter name")
		}
		params := make([]composition.Param, len(l.Params))
		for i, p := range l.Params {
			params[i] = composition.Param{Key: p.Key, Value: p.Value}
		}
		return composition.NewFilter(l.Filter, params, composition.FilterOptions{
			Track: composition.Track(strings.ToLower(l.Track)), Start: l.Start, Duration: l.Duration,
		}), nil
	case composition.KindWatermark:
		return composition.NewWatermark(l.Source, composition.WatermarkOptions{
			Text: l.Text, Start: l.Start, Duration: l.Duration, Position: l.position(),
			Opacity: l.Opacity, Scale: l.Scale, Style: l.Style.composition(),
		}), nil
	}
	return nil, fmt.Errorf("unknown layer type %q", l.Type)
}

func (s *Style) composition() composition.TextStyle {
	if s == nil {
		return composition.TextStyle{}
	}
	return composition.TextStyle{
		FontFile:    s.FontFile,
		Font:        s.Font,
		FontSize:    s.FontSize,
		FontColor:   s.FontColor,
		Opacity:     s.Opacity,
		BorderWidth: s.BorderWidth,
		BorderColor: s.BorderColor,
		Box:         s.Box,
		BoxColor:    s.BoxColor,
		ShadowX:     s.ShadowX,
		ShadowY:     s.ShadowY,
		LineSpacing: s.LineSpacing,
	}
}

func (k *KenBurns) composition() *composition.KenBurns {
	if k == nil {
		return nil
	}
	return &composition.KenBurns{
		StartZoom: k.StartZoom, EndZoom: k.EndZoom,
		StartX: k.StartX, StartY: k.StartY,
		EndX: k.EndX, EndY: k.EndY,
	}
}

func (t Transition) options() transition.Options {
	opts := transition.Options{}
	if t.Preset != "" {
		opts = transition.Preset(t.Preset)
	}
	if t.Type != "" {
		opts.Type = transition.Type(t.Type)
	}
	if t.Duration != 0 {
		opts.Duration = t.Duration
	}
	if t.Direction != "" {
		opts.Direction = transition.Direction(t.Direction)
	}
	if t.Easing != "" {
		opts.Easing = transition.Easing(t.Easing)
	}
	if t.Offset != 0 {
		opts.Offset = t.Offset
	}
	opts.Reverse = opts.Reverse || t.Reverse
	opts.AudioFade = opts.AudioFade || t.AudioFade
	if len(t.Params) > 0 {
		merged := make(map[string]float64, len(opts.Params)+len(t.Params))
		for k, v := range opts.Params {
			merged[k] = v
		}
		for k, v := range t.Params {
			merged[k] = v
		}
		opts.Params = merged
	}
	return opts
}

func (d Ducking) options() validation.DuckingOptions {
	o := validation.DefaultDucking()
	o.Voice = d.Voice
	if d.Level != nil {
		o.Level = *d.Level
	}
	if d.VoiceBoost != nil {
		o.VoiceBoost = *d.VoiceBoost
	}
	if d.FadeIn != nil {
		o.FadeIn = *d.FadeIn
	}
	if d.FadeOut != nil {
		o.FadeOut = *d.FadeOut
	}
	if d.Threshold != nil {
		o.Threshold = *d.Threshold
	}
	if d.Ratio != 0 {
		o.Ratio = d.Ratio
	}
	return o
}
