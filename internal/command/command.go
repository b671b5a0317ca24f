package command

import (
	"strconv"
	"strings"

	"splicer/internal/compiler"
	"splicer/internal/composition"
	fg "splicer/internal/filtergraph"
	"splicer/internal/presets"
)

// DefaultBinary is the executable named in built commands.
const DefaultBinary = "ffmpeg"

// Options tune the preamble and encoder flags that do not come from the
// composition itself.
type Options struct {
	Binary     string
	Overwrite  bool
	HideBanner bool
	LogLevel   string
	Threads    int
}

// DefaultOptions overwrites the output and hides the banner.
func DefaultOptions() Options {
	return Options{Binary: DefaultBinary, Overwrite: true, HideBanner: true}
}

// Build assembles the argument vector for a compiled composition with
// DefaultOptions. args[0] is the binary.
func Build(r *compiler.Result, s composition.Settings, output string) []string {
	return BuildWith(r, s, output, DefaultOptions())
}

// BuildWith assembles the argument vector in a fixed section order:
// preamble, inputs, filter graph, maps, codec and quality flags, frame
// rate, duration, container flags and the output path. It never fails;
// values are written as given.
func BuildWith(r *compiler.Result, s composition.Settings, output string, opts Options) []string {
	if r == nil {
		r = &compiler.Result{}
	}
	args := preamble(opts)
	args = append(args, r.InputArgs()...)

	if graph := r.FilterComplex(); graph != "" {
		args = append(args, "-filter_complex", graph)
	}
	args = append(args, r.Maps()...)

	sel := Selection(s)
	if r.Video != "" {
		args = append(args, videoFlags(sel)...)
	}
	if opts.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(opts.Threads))
	}
	if r.Audio != "" {
		args = append(args, audioFlags(sel)...)
	}

	if s.FrameRate != 0 && r.Video != "" {
		args = append(args, "-r", fg.Num(s.FrameRate))
	}
	if s.Duration > 0 {
		args = append(args, "-t", fg.Num(s.Duration))
	}
	args = append(args, containerFlags(presets.ContainerFromPath(output))...)
	return append(args, output)
}

func preamble(opts Options) []string {
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = DefaultBinary
	}
	args := []string{binary}
	if opts.Overwrite {
		args = append(args, "-y")
	}
	if opts.HideBanner {
		args = append(args, "-hide_banner")
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		args = append(args, "-loglevel", level)
	}
	return args
}

// Selection resolves codecs, pixel format and quality for settings.
func Selection(s composition.Settings) presets.Selection {
	e := s.Encoding
	return presets.Select(e.VideoCodec, e.AudioCodec, e.CodecPreset, e.Quality, e.Platform, e.PixelFormat)
}

func videoFlags(sel presets.Selection) []string {
	args := []string{"-c:v", sel.VideoCodec}
	if sel.VideoCodec == "copy" {
		return args
	}
	q := sel.Quality
	crf := presets.SupportsCRF(sel.VideoCodec) && !sel.Preset.NoCRF
	switch {
	case crf:
		args = append(args, "-crf", strconv.Itoa(q.CRF))
	case q.VideoBitrate != "":
		args = append(args, "-b:v", q.VideoBitrate)
	}
	if q.MaxRate != "" && q.BufSize != "" {
		args = append(args, "-maxrate", q.MaxRate, "-bufsize", q.BufSize)
	}
	if usesNamedPreset(sel.VideoCodec) && q.Preset != "" {
		args = append(args, "-preset", q.Preset)
	}
	if sel.PixelFormat != "" {
		args = append(args, "-pix_fmt", sel.PixelFormat)
	}
	if sel.HasPreset {
		args = append(args, sel.Preset.ExtraArgs...)
	}
	return args
}

// usesNamedPreset reports whether the encoder takes x264-style speed
// presets (ultrafast..veryslow).
func usesNamedPreset(codec string) bool {
	switch strings.ToLower(strings.TrimSpace(codec)) {
	case "libx264", "libx265", "libx264rgb":
		return true
	}
	return false
}

func audioFlags(sel presets.Selection) []string {
	args := []string{"-c:a", sel.AudioCodec}
	if sel.AudioCodec == "copy" || presets.NormalizeCodec(sel.AudioCodec) == "pcm" {
		return args
	}
	if br := sel.Quality.AudioBitrate; br != "" {
		args = append(args, "-b:a", br)
	}
	return args
}

func containerFlags(container string) []string {
	switch container {
	case "mp4", "mov":
		return []string{"-movflags", "+faststart"}
	}
	return nil
}

// CheckCodecCompatibility reports whether the codecs settings resolve to
// can be stored in container. It never blocks command generation.
func CheckCodecCompatibility(s composition.Settings, container string) presets.Compatibility {
	sel := Selection(s)
	return presets.CheckCompatibility(sel.VideoCodec, sel.AudioCodec, container)
}
