package timeline

import (
	"strings"

	"splicer/internal/composition"
	"splicer/internal/presets"
)

// Settings returns the global options.
func (t Timeline) Settings() composition.Settings {
	return t.settings
}

// WithSettings replaces the global options.
func (t Timeline) WithSettings(s composition.Settings) Timeline {
	t.settings = s
	return t
}

// SetAspectRatio fixes the output aspect ratio ("16:9", "9:16", "2.39:1").
// An explicit resolution takes precedence.
func (t Timeline) SetAspectRatio(ratio string) Timeline {
	t.settings.AspectRatio = strings.TrimSpace(ratio)
	return t
}

// SetResolution fixes the output size. A zero dimension is derived from
// the source aspect ratio.
func (t Timeline) SetResolution(width, height int) Timeline {
	t.settings.Width, t.settings.Height = width, height
	return t
}

// SetResolutionPreset sets the size from a named resolution ("1080p",
// "tiktok"). Unknown names leave the timeline unchanged.
func (t Timeline) SetResolutionPreset(name string) Timeline {
	r, ok := presets.LookupResolution(name)
	if !ok {
		return t
	}
	return t.SetResolution(r.Width, r.Height)
}

// SetFrameRate sets the output frame rate.
func (t Timeline) SetFrameRate(fps float64) Timeline {
	t.settings.FrameRate = fps
	return t
}

// SetDuration caps the output length; it is emitted as -t.
func (t Timeline) SetDuration(seconds float64) Timeline {
	t.settings.Duration = seconds
	return t
}

// SetBackground sets the colour used for gaps and text-only compositions.
func (t Timeline) SetBackground(color string) Timeline {
	t.settings.Background = color
	return t
}

// SetVideoCodec overrides the video encoder.
func (t Timeline) SetVideoCodec(codec string) Timeline {
	t.settings.Encoding.VideoCodec = codec
	return t
}

// SetAudioCodec overrides the audio encoder.
func (t Timeline) SetAudioCodec(codec string) Timeline {
	t.settings.Encoding.AudioCodec = codec
	return t
}

// SetPixelFormat overrides the output pixel format.
func (t Timeline) SetPixelFormat(format string) Timeline {
	t.settings.Encoding.PixelFormat = format
	return t
}

// UseCodecPreset selects a codec preset ("h264-web", "vp9", "prores").
// Explicit codec overrides still win.
func (t Timeline) UseCodecPreset(name string) Timeline {
	t.settings.Encoding.CodecPreset = name
	return t
}

// SetQuality selects a quality preset ("high", "web").
func (t Timeline) SetQuality(name string) Timeline {
	t.settings.Encoding.Quality = name
	return t
}

// ForPlatform targets a platform profile, which brings its resolution,
// codec preset and quality unless set explicitly.
func (t Timeline) ForPlatform(name string) Timeline {
	t.settings.Encoding.Platform = name
	return t
}
