package presets

import (
	"sort"
	"strings"
)

// CodecPreset bundles codec choices that are commonly used together.
type CodecPreset struct {
	Name        string `json:"name"`
	VideoCodec  string `json:"videoCodec"`
	AudioCodec  string `json:"audioCodec"`
	PixelFormat string `json:"pixelFormat,omitempty"`
	Container   string `json:"container"`

	// ExtraArgs are appended after the codec flags.
	ExtraArgs []string `json:"extraArgs,omitempty"`

	// NoCRF marks encoders that do not accept -crf.
	NoCRF bool `json:"noCrf,omitempty"`
}

// Default codecs when nothing else selects one.
const (
	DefaultVideoCodec  = "libx264"
	DefaultAudioCodec  = "aac"
	DefaultPixelFormat = "yuv420p"
)

var codecPresets = map[string]CodecPreset{
	"h264": {Name: "h264", VideoCodec: "libx264", AudioCodec: "aac", PixelFormat: "yuv420p", Container: "mp4"},
	"h264-web": {
		Name: "h264-web", VideoCodec: "libx264", AudioCodec: "aac", PixelFormat: "yuv420p", Container: "mp4",
		ExtraArgs: []string{"-profile:v", "high", "-level", "4.1"},
	},
	"h265": {
		Name: "h265", VideoCodec: "libx265", AudioCodec: "aac", PixelFormat: "yuv420p", Container: "mp4",
		ExtraArgs: []string{"-tag:v", "hvc1"},
	},
	"vp9": {
		Name: "vp9", VideoCodec: "libvpx-vp9", AudioCodec: "libopus", PixelFormat: "yuv420p", Container: "webm",
		ExtraArgs: []string{"-b:v", "0", "-row-mt", "1"},
	},
	"av1": {
		Name: "av1", VideoCodec: "libsvtav1", AudioCodec: "libopus", PixelFormat: "yuv420p10le", Container: "mkv",
	},
	"prores": {
		Name: "prores", VideoCodec: "prores_ks", AudioCodec: "pcm_s16le", PixelFormat: "yuv422p10le", Container: "mov",
		ExtraArgs: []string{"-profile:v", "3"}, NoCRF: true,
	},
}

// LookupCodecPreset finds a codec preset by name.
func LookupCodecPreset(name string) (CodecPreset, bool) {
	p, ok := codecPresets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// CodecPresets returns every codec preset sorted by name.
func CodecPresets() []CodecPreset {
	out := make([]CodecPreset, 0, len(codecPresets))
	for _, p := range codecPresets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SupportsCRF reports whether the named video encoder takes -crf.
func SupportsCRF(videoCodec string) bool {
	switch NormalizeCodec(videoCodec) {
	case "h264", "hevc", "vp9", "av1":
		return true
	}
	return strings.EqualFold(videoCodec, "libx264rgb")
}

// NormalizeCodec maps encoder names to the codec they produce.
func NormalizeCodec(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "libx264", "h264", "avc", "h264_nvenc", "h264_vaapi", "h264_qsv", "h264_videotoolbox":
		return "h264"
	case "libx265", "h265", "hevc", "hevc_nvenc", "hevc_vaapi", "hevc_qsv", "hevc_videotoolbox":
		return "hevc"
	case "libvpx-vp9", "vp9":
		return "vp9"
	case "libvpx", "vp8":
		return "vp8"
	case "libaom-av1", "libsvtav1", "librav1e", "av1", "av1_nvenc":
		return "av1"
	case "prores", "prores_ks", "prores_aw":
		return "prores"
	case "libmp3lame", "mp3":
		return "mp3"
	case "libopus", "opus":
		return "opus"
	case "libvorbis", "vorbis":
		return "vorbis"
	case "aac", "libfdk_aac":
		return "aac"
	}
	if strings.HasPrefix(n, "pcm_") {
		return "pcm"
	}
	return n
}

// Selection is the encoder configuration after presets and explicit
// overrides have been combined.
type Selection struct {
	VideoCodec  string
	AudioCodec  string
	PixelFormat string
	Quality     Quality
	// Preset is the codec preset that contributed defaults, if any.
	Preset    CodecPreset
	HasPreset bool
}

// Select resolves codecs and quality. A named codec preset wins over the
// platform's preset; explicit codecs and pixel format override either, and
// the quality level falls back from explicit to platform to DefaultQuality.
func Select(videoCodec, audioCodec, codecPreset, quality, platform, pixelFormat string) Selection {
	sel := Selection{
		VideoCodec:  DefaultVideoCodec,
		AudioCodec:  DefaultAudioCodec,
		PixelFormat: DefaultPixelFormat,
	}
	plat, hasPlatform := LookupPlatform(platform)
	presetName := codecPreset
	if presetName == "" && hasPlatform {
		presetName = plat.CodecPreset
	}
	if p, ok := LookupCodecPreset(presetName); ok {
		sel.Preset, sel.HasPreset = p, true
		sel.VideoCodec, sel.AudioCodec = p.VideoCodec, p.AudioCodec
		if p.PixelFormat != "" {
			sel.PixelFormat = p.PixelFormat
		}
	}
	if v := strings.TrimSpace(videoCodec); v != "" {
		sel.VideoCodec = v
	}
	if a := strings.TrimSpace(audioCodec); a != "" {
		sel.AudioCodec = a
	}
	if pf := strings.TrimSpace(pixelFormat); pf != "" {
		sel.PixelFormat = pf
	}
	qualityName := quality
	if qualityName == "" && hasPlatform {
		qualityName = plat.Quality
	}
	sel.Quality = QualityOrDefault(qualityName)
	return sel
}
