package presets

import (
	"sort"
	"strings"
)

// Quality maps a named quality level to encoder settings. Bitrate fields
// are empty when the level relies on CRF alone.
type Quality struct {
	Name         string `json:"name"`
	CRF          int    `json:"crf"`
	Preset       string `json:"preset"`
	VideoBitrate string `json:"videoBitrate,omitempty"`
	MaxRate      string `json:"maxRate,omitempty"`
	BufSize      string `json:"bufSize,omitempty"`
	AudioBitrate string `json:"audioBitrate"`
}

// DefaultQuality is used when no quality is selected or the name is unknown.
const DefaultQuality = "medium"

var qualities = map[string]Quality{
	"ultra":  {Name: "ultra", CRF: 12, Preset: "slow", AudioBitrate: "320k"},
	"high":   {Name: "high", CRF: 18, Preset: "slow", AudioBitrate: "256k"},
	"medium": {Name: "medium", CRF: 23, Preset: "medium", AudioBitrate: "192k"},
	"low":    {Name: "low", CRF: 28, Preset: "fast", AudioBitrate: "128k"},
	"web": {
		Name: "web", CRF: 23, Preset: "fast",
		VideoBitrate: "2500k", MaxRate: "3000k", BufSize: "6000k", AudioBitrate: "128k",
	},
	"mobile": {
		Name: "mobile", CRF: 26, Preset: "fast",
		VideoBitrate: "1200k", MaxRate: "1500k", BufSize: "3000k", AudioBitrate: "96k",
	},
}

// LookupQuality finds a quality level by name.
func LookupQuality(name string) (Quality, bool) {
	q, ok := qualities[strings.ToLower(strings.TrimSpace(name))]
	return q, ok
}

// QualityOrDefault returns the named level or the medium level.
func QualityOrDefault(name string) Quality {
	if q, ok := LookupQuality(name); ok {
		return q
	}
	return qualities[DefaultQuality]
}

// Qualities returns every level ordered from best to smallest output.
func Qualities() []Quality {
	out := make([]Quality, 0, len(qualities))
	for _, q := range qualities {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CRF != out[j].CRF {
			return out[i].CRF < out[j].CRF
		}
		return out[i].Name < out[j].Name
	})
	return out
}
