package presets

import (
	"sort"
	"strings"
)

// Platform describes the upload constraints of a publishing target.
// Zero limits mean "no limit".
type Platform struct {
	Name        string    `json:"name"`
	Resolution  string    `json:"resolution"`
	MaxDuration float64   `json:"maxDuration,omitempty"`
	MinDuration float64   `json:"minDuration,omitempty"`
	MaxFileSize int64     `json:"maxFileSize,omitempty"`
	FrameRates  []float64 `json:"frameRates,omitempty"`
	Quality     string    `json:"quality"`
	CodecPreset string    `json:"codecPreset"`
}

const (
	mib = int64(1) << 20
	gib = int64(1) << 30
)

var platforms = map[string]Platform{
	"tiktok": {
		Name: "tiktok", Resolution: "tiktok", MinDuration: 3, MaxDuration: 600,
		MaxFileSize: 287 * mib, FrameRates: []float64{24, 25, 30, 60}, Quality: "high", CodecPreset: "h264-web",
	},
	"youtube-shorts": {
		Name: "youtube-shorts", Resolution: "youtube-shorts", MaxDuration: 60,
		FrameRates: []float64{24, 25, 30, 48, 50, 60}, Quality: "high", CodecPreset: "h264",
	},
	"instagram-story": {
		Name: "instagram-story", Resolution: "instagram-story", MaxDuration: 60,
		MaxFileSize: 250 * mib, FrameRates: []float64{23.976, 24, 25, 30}, Quality: "web", CodecPreset: "h264-web",
	},
	"instagram-reel": {
		Name: "instagram-reel", Resolution: "instagram-reel", MinDuration: 3, MaxDuration: 90,
		MaxFileSize: gib, FrameRates: []float64{23.976, 24, 25, 30, 60}, Quality: "high", CodecPreset: "h264-web",
	},
	"instagram-square": {
		Name: "instagram-square", Resolution: "instagram-square", MinDuration: 3, MaxDuration: 60,
		MaxFileSize: 250 * mib, FrameRates: []float64{23.976, 24, 25, 30}, Quality: "web", CodecPreset: "h264-web",
	},
	"youtube": {
		Name: "youtube", Resolution: "youtube", MaxDuration: 12 * 3600,
		MaxFileSize: 256 * gib, Quality: "high", CodecPreset: "h264",
	},
	"twitter": {
		Name: "twitter", Resolution: "twitter", MinDuration: 0.5, MaxDuration: 140,
		MaxFileSize: 512 * mib, FrameRates: []float64{30, 60}, Quality: "web", CodecPreset: "h264-web",
	},
	"facebook": {
		Name: "facebook", Resolution: "facebook", MaxDuration: 240 * 60,
		MaxFileSize: 10 * gib, FrameRates: []float64{24, 25, 30, 60}, Quality: "web", CodecPreset: "h264-web",
	},
}

// LookupPlatform finds a platform by name.
func LookupPlatform(name string) (Platform, bool) {
	p, ok := platforms[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Platform{}, false
	}
	p.FrameRates = append([]float64(nil), p.FrameRates...)
	return p, true
}

// Platforms returns every platform sorted by name.
func Platforms() []Platform {
	out := make([]Platform, 0, len(platforms))
	for name := range platforms {
		p, _ := LookupPlatform(name)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AllowsFrameRate reports whether fps is accepted. Platforms without a list
// accept any rate; listed rates match within 0.01.
func (p Platform) AllowsFrameRate(fps float64) bool {
	if len(p.FrameRates) == 0 {
		return true
	}
	for _, r := range p.FrameRates {
		if d := r - fps; d < 0.01 && d > -0.01 {
			return true
		}
	}
	return false
}
