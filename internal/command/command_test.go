package command

import (
	"strings"
	"testing"

	"splicer/internal/compiler"
	"splicer/internal/composition"
)

func compile(layers ...composition.Layer) *compiler.Result {
	return compiler.Compile(compiler.Request{Layers: layers})
}

func TestBuildSingleVideo(t *testing.T) {
	args := Build(compile(composition.NewVideo("in.mp4", composition.VideoOptions{})), composition.Settings{}, "out.mp4")
	want := "ffmpeg -y -hide_banner -i in.mp4 -map 0:v -map 0:a? -c:v libx264 -crf 23 -preset medium -pix_fmt yuv420p -c:a aac -b:a 192k -movflags +faststart out.mp4"
	if got := strings.Join(args, " "); got != want {
		t.Fatalf("args =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderQuotesPathsAndGraph(t *testing.T) {
	r := compile(
		composition.NewVideo("my clip.mp4", composition.VideoOptions{}),
		composition.NewText("Hello", composition.TextOptions{}),
	)
	cmd := Render(Build(r, composition.Settings{}, "out.mp4"))
	for _, want := range []string{
		`-i "my clip.mp4"`,
		`-filter_complex "[0:v]drawtext=text=Hello:`,
		`-map "[v_0]"`,
		`"out.mp4"`,
	} {
		if !strings.Contains(cmd, want) {
			t.Fatalf("missing %q in %s", want, cmd)
		}
	}
	if !strings.HasPrefix(cmd, "ffmpeg -y -hide_banner ") {
		t.Fatalf("unexpected preamble: %s", cmd)
	}
}

func TestRenderEscapesShellCharacters(t *testing.T) {
	got := Render([]string{"ffmpeg", "-i", `a"$b` + "`c`.mp4", "out.mp4"})
	want := `ffmpeg -i "a\"\$b\` + "`c\\`" + `.mp4" "out.mp4"`
	if got != want {
		t.Fatalf("Render = %s, want %s", got, want)
	}
	if Render(nil) != "" {
		t.Fatal("expected empty render for no args")
	}
}

func TestSectionOrder(t *testing.T) {
	r := compile(
		composition.NewVideo("a.mp4", composition.VideoOptions{}),
		composition.NewText("x", composition.TextOptions{}),
	)
	args := Build(r, composition.Settings{FrameRate: 24, Duration: 10}, "out.mkv")
	order := []string{"-i", "-filter_complex", "-map", "-c:v", "-c:a", "-r", "-t", "out.mkv"}
	pos := -1
	for _, flag := range order {
		idx := indexOf(args, flag, pos+1)
		if idx < 0 {
			t.Fatalf("%s missing or out of order in %v", flag, args)
		}
		pos = idx
	}
	if indexOf(args, "-movflags", 0) >= 0 {
		t.Fatalf("mkv output should not get movflags: %v", args)
	}
	if args[len(args)-1] != "out.mkv" {
		t.Fatalf("output must be last, got %v", args)
	}
}

func indexOf(args []string, v string, from int) int {
	for i := from; i < len(args); i++ {
		if args[i] == v {
			return i
		}
	}
	return -1
}

func TestEncodingSelection(t *testing.T) {
	video := compile(composition.NewVideo("in.mp4", composition.VideoOptions{}))
	tests := []struct {
		name     string
		enc      composition.Encoding
		output   string
		contains []string
		absent   []string
	}{
		{
			name:     "platform",
			enc:      composition.Encoding{Platform: "tiktok"},
			output:   "out.mp4",
			contains: []string{"-crf 18 -preset slow -pix_fmt yuv420p -profile:v high -level 4.1", "-b:a 256k"},
		},
		{
			name:     "capped crf",
			enc:      composition.Encoding{Quality: "web"},
			output:   "out.mp4",
			contains: []string{"-crf 23 -maxrate 3000k -bufsize 6000k -preset fast"},
		},
		{
			name:     "prores",
			enc:      composition.Encoding{CodecPreset: "prores"},
			output:   "out.mov",
			contains: []string{"-c:v prores_ks -pix_fmt yuv422p10le -profile:v 3", "-c:a pcm_s16le -movflags"},
			absent:   []string{"-crf", "-b:a"},
		},
		{
			name:     "explicit codecs override preset",
			enc:      composition.Encoding{CodecPreset: "vp9", VideoCodec: "libx265", AudioCodec: "libopus"},
			output:   "out.webm",
			contains: []string{"-c:v libx265 -crf 23 -preset medium", "-c:a libopus -b:a 192k"},
			absent:   []string{"-movflags"},
		},
		{
			name:     "stream copy",
			enc:      composition.Encoding{VideoCodec: "copy", AudioCodec: "copy"},
			output:   "out.mkv",
			contains: []string{"-c:v copy -c:a copy out.mkv"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := strings.Join(Build(video, composition.Settings{Encoding: tc.enc}, tc.output), " ")
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Fatalf("missing %q in %s", want, got)
				}
			}
			for _, bad := range tc.absent {
				if strings.Contains(got, bad) {
					t.Fatalf("unexpected %q in %s", bad, got)
				}
			}
		})
	}
}

func TestBuildEmptyComposition(t *testing.T) {
	got := strings.Join(Build(compile(), composition.Settings{}, "out.mp4"), " ")
	if got != "ffmpeg -y -hide_banner -movflags +faststart out.mp4" {
		t.Fatalf("unexpected args %s", got)
	}
	if got := strings.Join(Build(nil, composition.Settings{}, "x.mkv"), " "); got != "ffmpeg -y -hide_banner x.mkv" {
		t.Fatalf("unexpected args for nil result %s", got)
	}
}

func TestBuildWithOptions(t *testing.T) {
	r := compile(composition.NewVideo("in.mp4", composition.VideoOptions{}))
	args := BuildWith(r, composition.Settings{}, "out.mkv", Options{Binary: "/opt/ffmpeg", LogLevel: "error", Threads: 4})
	got := strings.Join(args, " ")
	if !strings.HasPrefix(got, "/opt/ffmpeg -loglevel error -i in.mp4") {
		t.Fatalf("unexpected preamble %s", got)
	}
	if !strings.Contains(got, "-threads 4") {
		t.Fatalf("missing threads in %s", got)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	build := func() string {
		r := compile(
			composition.NewImage("a.png", composition.ImageOptions{}),
			composition.NewImage("b.png", composition.ImageOptions{Start: 5}),
			composition.NewAudio("music.mp3", composition.AudioOptions{Volume: composition.Float(0.4)}),
		)
		return Render(Build(r, composition.Settings{AspectRatio: "1:1"}, "out.mp4"))
	}
	if a, b := build(), build(); a != b {
		t.Fatalf("builds differ:\n%s\n%s", a, b)
	}
}

func TestCheckCodecCompatibility(t *testing.T) {
	if got := CheckCodecCompatibility(composition.Settings{}, "mp4"); !got.Compatible {
		t.Fatalf("default codecs should fit mp4: %+v", got)
	}
	got := CheckCodecCompatibility(composition.Settings{Encoding: composition.Encoding{CodecPreset: "vp9"}}, "mov")
	if got.Compatible {
		t.Fatalf("vp9/opus in mov should be reported: %+v", got)
	}
}
