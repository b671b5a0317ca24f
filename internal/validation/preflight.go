package validation

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"splicer/internal/composition"
	"splicer/internal/presets"
)

// Resolution and frame rate bounds used by Preflight.
const (
	MinDimension = 16
	MaxDimension = 8192
	MinFrameRate = 1.0
	MaxFrameRate = 120.0
)

// Input is what Preflight inspects.
type Input struct {
	Settings composition.Settings
	// Duration is the composition length in seconds.
	Duration float64
	// Width and Height are the resolved output size, when known.
	Width  int
	Height int
	Output string
}

// Warning is one pre-flight finding.
type Warning struct {
	Check   string `json:"check"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Check + ": " + w.Message
}

// Report collects pre-flight warnings. An empty report means nothing was
// found; a non-empty one never blocks command generation.
type Report struct {
	Warnings []Warning `json:"warnings"`
}

// OK reports whether there are no warnings.
func (r Report) OK() bool {
	return len(r.Warnings) == 0
}

// Messages returns the warnings rendered as strings.
func (r Report) Messages() []string {
	out := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		out[i] = w.String()
	}
	return out
}

func (r *Report) add(check, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Check: check, Message: fmt.Sprintf(format, args...)})
}

// Preflight runs the lenient checks: output size, frame rate, platform
// limits and codec/container compatibility. It never fails.
func Preflight(in Input) Report {
	var r Report
	s := in.Settings

	if in.Output == "" {
		r.add("output", "no output path given")
	}
	if !(in.Duration > 0) {
		r.add("duration", "composition has no positive duration (%gs)", in.Duration)
	}

	width, height := in.Width, in.Height
	if width == 0 && height == 0 {
		width, height = s.Width, s.Height
	}
	checkDimension(&r, "width", width)
	checkDimension(&r, "height", height)

	if s.FrameRate != 0 && !within(s.FrameRate, MinFrameRate, MaxFrameRate) {
		r.add("frame rate", "%g fps is outside %g-%g", s.FrameRate, MinFrameRate, MaxFrameRate)
	}

	if s.Encoding.Platform != "" {
		checkPlatform(&r, in, width, height)
	}

	sel := presets.Select(s.Encoding.VideoCodec, s.Encoding.AudioCodec, s.Encoding.CodecPreset,
		s.Encoding.Quality, s.Encoding.Platform, s.Encoding.PixelFormat)
	if container := presets.ContainerFromPath(in.Output); container != "" {
		compat := presets.CheckCompatibility(sel.VideoCodec, sel.AudioCodec, container)
		for _, w := range compat.Warnings {
			r.add("codec", "%s", w)
		}
	}
	if (width%2 != 0 || height%2 != 0) && sel.PixelFormat == presets.DefaultPixelFormat {
		r.add("resolution", "%dx%d has an odd dimension, which %s cannot encode", width, height, sel.PixelFormat)
	}
	return r
}

func checkDimension(r *Report, name string, v int) {
	if v == 0 {
		return
	}
	if v < MinDimension || v > MaxDimension {
		r.add("resolution", "%s %d is outside %d-%d", name, v, MinDimension, MaxDimension)
	}
}

func checkPlatform(r *Report, in Input, width, height int) {
	name := in.Settings.Encoding.Platform
	p, ok := presets.LookupPlatform(name)
	if !ok {
		r.add("platform", "unknown platform %q", name)
		return
	}
	d := in.Settings.Duration
	if !(d > 0) {
		d = in.Duration
	}
	if p.MaxDuration > 0 && d > p.MaxDuration {
		r.add("platform", "%s allows at most %gs, composition runs %gs", p.Name, p.MaxDuration, d)
	}
	if p.MinDuration > 0 && d > 0 && d < p.MinDuration {
		r.add("platform", "%s needs at least %gs, composition runs %gs", p.Name, p.MinDuration, d)
	}
	if fps := in.Settings.FrameRate; fps > 0 && !p.AllowsFrameRate(fps) {
		r.add("platform", "%s does not accept %g fps", p.Name, fps)
	}
	if res, ok := presets.LookupResolution(p.Resolution); ok && width > 0 && height > 0 {
		want := float64(res.Width) / float64(res.Height)
		got := float64(width) / float64(height)
		if math.Abs(want-got) > 0.01 {
			r.add("platform", "%s expects %s, output is %s", p.Name, res.AspectRatio, presets.ReduceAspect(width, height))
		}
	}
	if p.MaxFileSize > 0 && d > 0 {
		enc := in.Settings.Encoding
		q := presets.Select(enc.VideoCodec, enc.AudioCodec, enc.CodecPreset, enc.Quality, enc.Platform, enc.PixelFormat).Quality
		if estimate := estimateSize(q, d); estimate > p.MaxFileSize {
			r.add("platform", "estimated size %s exceeds the %s limit of %s",
				humanize.IBytes(uint64(estimate)), p.Name, humanize.IBytes(uint64(p.MaxFileSize)))
		}
	}
}

// estimateSize uses the capped bitrates of a quality level. Levels without
// a cap return 0 and are not checked.
func estimateSize(q presets.Quality, seconds float64) int64 {
	video := parseBitrate(q.MaxRate)
	if video == 0 {
		video = parseBitrate(q.VideoBitrate)
	}
	if video == 0 {
		return 0
	}
	audio := parseBitrate(q.AudioBitrate)
	return int64((video + audio) / 8 * seconds)
}

// parseBitrate reads FFmpeg-style rates such as "2500k" or "3M" in bits per
// second.
func parseBitrate(s string) float64 {
	if s == "" {
		return 0
	}
	mult := 1.0
	switch s[len(s)-1] {
	case 'k', 'K':
		mult, s = 1e3, s[:len(s)-1]
	case 'm', 'M':
		mult, s = 1e6, s[:len(s)-1]
	}
	var v float64
	if _, err := fmt.Sscanf(s, "%g", &v); err != nil {
		return 0
	}
	return v * mult
}
