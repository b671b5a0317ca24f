package presets

import (
	"fmt"
	"strings"
)

// Compatibility is the outcome of a codec/container check.
type Compatibility struct {
	Compatible bool     `json:"compatible"`
	Warnings   []string `json:"warnings"`
}

type containerRule struct {
	video map[string]string
	audio map[string]string
	// noAudio marks containers that cannot carry audio at all.
	noAudio bool
}

// An empty note means fully supported; a non-empty note is a warning that
// still allows the combination.
var containerRules = map[string]containerRule{
	"mp4": {
		video: map[string]string{"h264": "", "hevc": "HEVC in MP4 needs -tag:v hvc1 for Apple players", "av1": "", "mpeg4": "", "vp9": "VP9 in MP4 has limited player support"},
		audio: map[string]string{"aac": "", "mp3": "", "ac3": "", "opus": "Opus in MP4 has limited player support", "flac": "FLAC in MP4 has limited player support", "alac": ""},
	},
	"mov": {
		video: map[string]string{"h264": "", "hevc": "", "prores": "", "mjpeg": ""},
		audio: map[string]string{"aac": "", "pcm": "", "alac": "", "mp3": ""},
	},
	"webm": {
		video: map[string]string{"vp8": "", "vp9": "", "av1": ""},
		audio: map[string]string{"opus": "", "vorbis": ""},
	},
	"mkv": {
		video: map[string]string{"h264": "", "hevc": "", "vp8": "", "vp9": "", "av1": "", "prores": "", "mpeg4": "", "mjpeg": ""},
		audio: map[string]string{"aac": "", "mp3": "", "ac3": "", "opus": "", "vorbis": "", "flac": "", "pcm": "", "alac": ""},
	},
	"avi": {
		video: map[string]string{"mpeg4": "", "mjpeg": "", "h264": "H.264 in AVI lacks B-frame timestamp support"},
		audio: map[string]string{"mp3": "", "pcm": "", "ac3": ""},
	},
	"gif": {
		video:   map[string]string{"gif": ""},
		noAudio: true,
	},
}

// ContainerFromPath returns the container implied by a file extension.
func ContainerFromPath(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	ext := strings.ToLower(path[idx+1:])
	switch ext {
	case "m4v":
		return "mp4"
	case "mkv", "matroska":
		return "mkv"
	case "qt":
		return "mov"
	}
	return ext
}

// CheckCompatibility looks up the (video, audio, container) combination in
// the static matrix. An empty audio codec skips the audio check. Unknown
// containers are reported compatible with a warning.
func CheckCompatibility(videoCodec, audioCodec, container string) Compatibility {
	result := Compatibility{Compatible: true, Warnings: []string{}}
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(container), "."))
	rule, ok := containerRules[name]
	if !ok {
		result.Warnings = append(result.Warnings, fmt.Sprintf("container %q is not in the compatibility table", container))
		return result
	}

	if v := NormalizeCodec(videoCodec); v != "" && v != "copy" {
		note, supported := rule.video[v]
		switch {
		case !supported:
			result.Compatible = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("video codec %s is not supported in %s", videoCodec, name))
		case note != "":
			result.Warnings = append(result.Warnings, note)
		}
	}

	if a := NormalizeCodec(audioCodec); a != "" && a != "copy" {
		if rule.noAudio {
			result.Compatible = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s cannot carry audio (%s)", name, audioCodec))
			return result
		}
		note, supported := rule.audio[a]
		switch {
		case !supported:
			result.Compatible = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("audio codec %s is not supported in %s", audioCodec, name))
		case note != "":
			result.Warnings = append(result.Warnings, note)
		}
	}
	return result
}
