package compiler

import (
	"math"

	"splicer/internal/composition"
	fg "splicer/internal/filtergraph"
	"splicer/internal/validation"
)

type track struct {
	pad    fg.Pad
	source string
	video  bool
}

func (c *compilation) compileAudio() {
	var tracks []track
	var filters []composition.FilterLayer
	for _, l := range c.layers {
		switch v := l.(type) {
		case composition.VideoLayer:
			if v.KeepAudio && !v.Muted {
				tracks = append(tracks, c.videoAudio(v))
			}
		case composition.AudioLayer:
			tracks = append(tracks, c.audioTrack(v))
		case composition.FilterLayer:
			if v.Track == composition.TrackAudio {
				filters = append(filters, v)
			}
		}
	}

	if len(tracks) == 0 {
		first, ok := c.firstVideo()
		if !ok {
			return
		}
		if len(filters) == 0 && c.ducking == nil && first.Volume == 1 {
			// Optional so video sources without sound still map cleanly.
			// Trim and offset ride on the input so the map stays optional.
			idx := c.inputs.add(first.Src, seekOptions(first)...)
			c.result.Audio = fg.Pad(string(fg.Stream(idx, "a")) + "?")
			return
		}
		tracks = append(tracks, c.videoAudio(first))
	}

	cur := c.mixWithDucking(tracks)
	for _, f := range filters {
		cur = c.userFilter(cur, f)
	}
	c.result.Audio = cur
}

func (c *compilation) firstVideo() (composition.VideoLayer, bool) {
	for _, l := range c.layers {
		if v, ok := l.(composition.VideoLayer); ok && !v.Muted {
			return v, true
		}
	}
	return composition.VideoLayer{}, false
}

// seekOptions places a video's sound in the same window as its picture:
// -ss skips In seconds, -t keeps Duration and -itsoffset delays by Start.
func seekOptions(v composition.VideoLayer) []string {
	var opts []string
	if v.In > 0 {
		opts = append(opts, "-ss", fg.Num(v.In))
	}
	if v.Time.Bounded() {
		opts = append(opts, "-t", fg.Num(v.Time.Duration))
	}
	if v.Time.Start > 0 {
		opts = append(opts, "-itsoffset", fg.Num(v.Time.Start))
	}
	return opts
}

// videoAudio reads the sound of a video layer, trimmed and delayed to match
// its picture.
func (c *compilation) videoAudio(v composition.VideoLayer) track {
	src := fg.Stream(c.inputs.add(v.Src), "a")
	filters := audioTrim(v.In, v.Time.Duration)
	if v.Volume != 1 {
		filters = append(filters, fg.New("volume", fg.Value(v.Volume)))
	}
	filters = append(filters, delay(v.Time.Start)...)
	return track{pad: c.chain(src, "a", filters), source: v.Src, video: true}
}

func (c *compilation) audioTrack(v composition.AudioLayer) track {
	var opts []string
	if v.Loop {
		opts = []string{"-stream_loop", "-1"}
	}
	src := fg.Stream(c.inputs.add(v.Src, opts...), "a")
	duration := v.Time.Duration
	if v.Loop && !v.Time.Bounded() {
		duration = math.Max(0, c.result.Duration-v.Time.Start)
	}
	filters := audioTrim(v.In, duration)
	if v.Volume != 1 {
		filters = append(filters, fg.New("volume", fg.Value(v.Volume)))
	}
	if v.Pan != 0 {
		filters = append(filters, pan(v.Pan))
	}
	if v.FadeIn > 0 {
		filters = append(filters, fg.New("afade", fg.KV("t", "in"), fg.KV("st", 0), fg.KV("d", v.FadeIn)))
	}
	if v.FadeOut > 0 && duration > 0 {
		filters = append(filters, fg.New("afade", fg.KV("t", "out"), fg.KV("st", duration-v.FadeOut), fg.KV("d", v.FadeOut)))
	}
	filters = append(filters, delay(v.Time.Start)...)
	return track{pad: c.chain(src, "a", filters), source: v.Src}
}

func audioTrim(in, duration float64) []fg.Filter {
	if in == 0 && duration == 0 {
		return nil
	}
	var args []fg.Arg
	if in != 0 {
		args = append(args, fg.KV("start", in))
	}
	if duration != 0 {
		args = append(args, fg.KV("duration", duration))
	}
	return []fg.Filter{fg.New("atrim", args...), fg.New("asetpts", fg.Value("PTS-STARTPTS"))}
}

func delay(start float64) []fg.Filter {
	if start == 0 {
		return nil
	}
	return []fg.Filter{fg.New("adelay", fg.KV("delays", start*1000), fg.KV("all", 1))}
}

// pan balances a stereo signal; -1 is hard left and 1 hard right.
func pan(p float64) fg.Filter {
	left := math.Min(1, 1-p)
	right := math.Min(1, 1+p)
	return fg.New("pan", fg.Value("stereo|c0="+fg.Num(left)+"*c0|c1="+fg.Num(right)+"*c1"))
}

func (c *compilation) mix(pads []fg.Pad) fg.Pad {
	if len(pads) == 1 {
		return pads[0]
	}
	out := c.label("a")
	c.g.Add(pads, []fg.Pad{out}, amix(len(pads)))
	return out
}

func amix(n int) fg.Filter {
	return fg.New("amix", fg.KV("inputs", n), fg.KV("duration", "longest"), fg.KV("normalize", 0))
}

// mixWithDucking mixes every track. With ducking configured, the voice
// track drives a sidechain compressor over the mix of the others.
func (c *compilation) mixWithDucking(tracks []track) fg.Pad {
	if c.ducking == nil {
		return c.mix(pads(tracks))
	}
	voiceAt := -1
	for i, t := range tracks {
		if (c.ducking.Voice != "" && t.source == c.ducking.Voice) || (c.ducking.Voice == "" && t.video) {
			voiceAt = i
			break
		}
	}
	if voiceAt < 0 && c.ducking.Voice == "" {
		if first, ok := c.firstVideo(); ok {
			tracks = append(tracks, c.videoAudio(first))
			voiceAt = len(tracks) - 1
		}
	}
	if voiceAt < 0 || len(tracks) < 2 {
		return c.mix(pads(tracks))
	}
	var music []fg.Pad
	for i, t := range tracks {
		if i != voiceAt {
			music = append(music, t.pad)
		}
	}
	return c.duck(tracks[voiceAt].pad, c.mix(music), *c.ducking)
}

func pads(tracks []track) []fg.Pad {
	out := make([]fg.Pad, len(tracks))
	for i, t := range tracks {
		out[i] = t.pad
	}
	return out
}

// duck splits the voice into a band-limited sidechain and the audible
// voice, compresses the music against the sidechain and mixes the two.
func (c *compilation) duck(voice, music fg.Pad, o validation.DuckingOptions) fg.Pad {
	side, audible := c.label("a"), c.label("a")
	c.g.Add([]fg.Pad{voice}, []fg.Pad{side, audible}, fg.New("asplit", fg.Value(2)))
	key := c.g.Chain(side, c.label("a"),
		fg.New("highpass", fg.KV("f", o.FrequencyLow)),
		fg.New("lowpass", fg.KV("f", o.FrequencyHigh)))

	ducked := c.label("a")
	c.g.Add([]fg.Pad{music, key}, []fg.Pad{ducked}, fg.New("sidechaincompress",
		fg.KV("threshold", math.Pow(10, o.Threshold/20)),
		fg.KV("ratio", o.Ratio),
		fg.KV("attack", clamp(o.FadeIn*1000, 0.01, 2000)),
		fg.KV("release", clamp(o.FadeOut*1000, 0.01, 9000)),
		fg.KV("mix", 1-o.Level)))

	if o.VoiceBoost != 1 {
		audible = c.g.Chain(audible, c.label("a"), fg.New("volume", fg.Value(o.VoiceBoost)))
	}
	out := c.label("a")
	c.g.Add([]fg.Pad{audible, ducked}, []fg.Pad{out}, amix(2))
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
