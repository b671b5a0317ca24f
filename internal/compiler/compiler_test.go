package compiler

import (
	"math"
	"strings"
	"testing"

	"splicer/internal/composition"
	fg "splicer/internal/filtergraph"
	"splicer/internal/transition"
	"splicer/internal/validation"
)

func mustResolve(t *testing.T, r *Result) {
	t.Helper()
	if err := r.Validate(); err != nil {
		t.Fatalf("graph does not resolve: %v\n%s", err, r.FilterComplex())
	}
}

func TestCompileEmpty(t *testing.T) {
	r := Compile(Request{})
	if r.FilterComplex() != "" || len(r.Inputs) != 0 || len(r.Maps()) != 0 {
		t.Fatalf("expected empty result, got %+v", r)
	}
}

func TestSingleVideoPassesThrough(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("in.mp4", composition.VideoOptions{}),
	}})
	if got := r.FilterComplex(); got != "" {
		t.Fatalf("expected no graph, got %s", got)
	}
	want := []string{"-map", "0:v", "-map", "0:a?"}
	if got := r.Maps(); strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("Maps = %v, want %v", got, want)
	}
}

func TestTrimmedVideoSoundFollowsPicture(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("v.mp4", composition.VideoOptions{In: 10, Duration: 5, Start: 3}),
	}})
	mustResolve(t, r)
	if len(r.Inputs) != 2 {
		t.Fatalf("expected picture and sound inputs, got %+v", r.Inputs)
	}
	if got := strings.Join(r.Inputs[1].Args(), " "); got != "-ss 10 -t 5 -itsoffset 3 -i v.mp4" {
		t.Fatalf("sound input = %q", got)
	}
	if r.Audio != "1:a?" {
		t.Fatalf("expected optional map of the seeked input, got %s", r.Audio)
	}
	maps := strings.Join(r.Maps(), " ")
	if strings.Contains(maps, "0:a") {
		t.Fatalf("untrimmed sound still mapped: %s", maps)
	}
}

func TestVideoSoundVolumeUsesGraph(t *testing.T) {
	vol := 0.5
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("v.mp4", composition.VideoOptions{In: 2, Volume: &vol}),
	}})
	mustResolve(t, r)
	got := r.FilterComplex()
	if !strings.Contains(got, "[0:a]atrim=start=2,asetpts=PTS-STARTPTS,volume=0.5") {
		t.Fatalf("expected trimmed and attenuated sound:\n%s", got)
	}
}

func TestTextOverVideo(t *testing.T) {
	pos := composition.At(composition.AnchorCenter)
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("in.mp4", composition.VideoOptions{}),
		composition.NewText("Hello", composition.TextOptions{Position: &pos}),
	}})
	want := "[0:v]drawtext=text=Hello:fontsize=48:fontcolor=white:x=(w-text_w)/2:y=(h-text_h)/2[v_0]"
	if got := r.FilterComplex(); got != want {
		t.Fatalf("FilterComplex =\n%s\nwant\n%s", got, want)
	}
	if r.Video != "v_0" {
		t.Fatalf("expected video pad v_0, got %s", r.Video)
	}
	mustResolve(t, r)
}

func TestAspectRatioScalesOnce(t *testing.T) {
	r := Compile(Request{
		Layers:   []composition.Layer{composition.NewVideo("v.mp4", composition.VideoOptions{})},
		Settings: composition.Settings{AspectRatio: "9:16"},
	})
	want := "[0:v]scale=1080:1920:force_original_aspect_ratio=increase,crop=1080:1920,setsar=1[v_0]"
	if got := r.FilterComplex(); got != want {
		t.Fatalf("FilterComplex =\n%s\nwant\n%s", got, want)
	}
	if r.Canvas.AspectRatio != "9:16" {
		t.Fatalf("unexpected canvas %+v", r.Canvas)
	}
}

func TestFrameRateAndPartialResolution(t *testing.T) {
	r := Compile(Request{
		Layers:   []composition.Layer{composition.NewVideo("v.mp4", composition.VideoOptions{})},
		Settings: composition.Settings{Width: 1280, FrameRate: 24},
	})
	want := "[0:v]scale=1280:-2,setsar=1,fps=24[v_0]"
	if got := r.FilterComplex(); got != want {
		t.Fatalf("FilterComplex =\n%s\nwant\n%s", got, want)
	}
}

func TestSlideshowUsesConcat(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewImage("a.png", composition.ImageOptions{}),
		composition.NewImage("b.png", composition.ImageOptions{Start: 5}),
	}})
	mustResolve(t, r)
	got := r.FilterComplex()
	if !strings.Contains(got, "[v_0][v_1]concat=n=2:v=1:a=0[v_2]") {
		t.Fatalf("expected concat of both stills:\n%s", got)
	}
	if !strings.HasPrefix(got, "[0:v]trim=duration=5,setpts=PTS-STARTPTS,scale=1920:1080:force_original_aspect_ratio=increase") {
		t.Fatalf("expected conformed first still:\n%s", got)
	}
	if len(r.Inputs) != 2 || strings.Join(r.Inputs[0].Args(), " ") != "-loop 1 -i a.png" {
		t.Fatalf("unexpected inputs %+v", r.Inputs)
	}
	if r.Audio != "" {
		t.Fatalf("stills have no audio, got %s", r.Audio)
	}
}

func TestGapIsPadded(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewImage("a.png", composition.ImageOptions{Duration: 2}),
		composition.NewImage("b.png", composition.ImageOptions{Start: 3, Duration: 2}),
	}})
	mustResolve(t, r)
	if !strings.Contains(r.FilterComplex(), "tpad=stop_mode=add:stop_duration=1:color=black") {
		t.Fatalf("expected gap padding:\n%s", r.FilterComplex())
	}
}

func TestExplicitTransitionSplicesXfade(t *testing.T) {
	r := Compile(Request{
		Layers: []composition.Layer{
			composition.NewVideo("a.mp4", composition.VideoOptions{Duration: 5}),
			composition.NewVideo("b.mp4", composition.VideoOptions{Start: 5, Duration: 5}),
		},
		Transitions: []TransitionRequest{{From: 0, To: 1, Options: transition.Options{Type: transition.Fade, Duration: 1}}},
	})
	mustResolve(t, r)
	got := r.FilterComplex()
	for _, want := range []string{
		"[v_0]tpad=stop_mode=clone:stop_duration=1[v_1]",
		"[v_1][v_2]xfade=transition=fade:duration=1:offset=5[v_3]",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
	if r.Video != "v_3" {
		t.Fatalf("expected v_3 as output, got %s", r.Video)
	}
	if len(r.Transitions) != 1 || r.Transitions[0].Start != 5 || r.Transitions[0].End != 6 {
		t.Fatalf("unexpected transition points %+v", r.Transitions)
	}
}

func TestOverlappingTransitionTrimsIncoming(t *testing.T) {
	r := Compile(Request{
		Layers: []composition.Layer{
			composition.NewVideo("a.mp4", composition.VideoOptions{Duration: 5}),
			composition.NewVideo("b.mp4", composition.VideoOptions{Start: 3, Duration: 5}),
		},
		Transitions: []TransitionRequest{{From: 0, To: 1, Options: transition.Options{Type: transition.Wipe, Duration: 1}}},
	})
	mustResolve(t, r)
	got := r.FilterComplex()
	if !strings.Contains(got, "trim=start=1,setpts=PTS-STARTPTS") {
		t.Fatalf("expected incoming clip to be trimmed to the window:\n%s", got)
	}
	if !strings.Contains(got, "xfade=transition=wipeleft:duration=1:offset=4") {
		t.Fatalf("expected wipe at 4s:\n%s", got)
	}
}

func TestAutoTransitionsAndComposite(t *testing.T) {
	auto := transition.Options{Type: transition.Iris, Duration: 0.5}
	r := Compile(Request{
		Layers: []composition.Layer{
			composition.NewImage("a.png", composition.ImageOptions{Duration: 3}),
			composition.NewImage("b.png", composition.ImageOptions{Start: 3, Duration: 3}),
			composition.NewImage("c.png", composition.ImageOptions{Start: 6, Duration: 3}),
		},
		AutoTransition: &auto,
	})
	mustResolve(t, r)
	if n := strings.Count(r.FilterComplex(), "geq="); n != 2 {
		t.Fatalf("expected two iris masks, got %d:\n%s", n, r.FilterComplex())
	}
	if len(r.Transitions) != 2 {
		t.Fatalf("expected two transition points, got %d", len(r.Transitions))
	}
}

func TestNoneTransitionIsHardCut(t *testing.T) {
	r := Compile(Request{
		Layers: []composition.Layer{
			composition.NewVideo("a.mp4", composition.VideoOptions{Duration: 5}),
			composition.NewVideo("b.mp4", composition.VideoOptions{Start: 5, Duration: 5}),
		},
		Transitions: []TransitionRequest{{From: 0, To: 1, Options: transition.Options{Type: transition.None}}},
	})
	if strings.Contains(r.FilterComplex(), "xfade") {
		t.Fatalf("did not expect xfade:\n%s", r.FilterComplex())
	}
	if !strings.Contains(r.FilterComplex(), "concat=n=2") {
		t.Fatalf("expected concat:\n%s", r.FilterComplex())
	}
}

func TestOverlapWithoutTransitionBecomesOverlay(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("a.mp4", composition.VideoOptions{Duration: 10}),
		composition.NewVideo("b.mp4", composition.VideoOptions{Start: 2, Duration: 3}),
	}})
	mustResolve(t, r)
	want := "[1:v]trim=duration=3,setpts=PTS-STARTPTS,setpts=PTS-STARTPTS+2/TB[v_1]"
	if !strings.Contains(r.FilterComplex(), want) {
		t.Fatalf("missing %q in\n%s", want, r.FilterComplex())
	}
	if !strings.Contains(r.FilterComplex(), "overlay=x=0:y=0:enable='between(t,2,5)':eof_action=pass") {
		t.Fatalf("expected gated full-frame overlay:\n%s", r.FilterComplex())
	}
}

func TestOpenEndedLayerAfterBoundedOneIsSequenced(t *testing.T) {
	cases := map[string][]composition.Layer{
		"image then video": {
			composition.NewImage("a.png", composition.ImageOptions{Duration: 5}),
			composition.NewVideo("b.mp4", composition.VideoOptions{Start: 5}),
		},
		"video then video": {
			composition.NewVideo("a.mp4", composition.VideoOptions{Duration: 10}),
			composition.NewVideo("b.mp4", composition.VideoOptions{Start: 10}),
		},
	}
	for name, layers := range cases {
		t.Run(name, func(t *testing.T) {
			r := Compile(Request{Layers: layers})
			mustResolve(t, r)
			got := r.FilterComplex()
			if !strings.Contains(got, "concat=n=2:v=1:a=0") {
				t.Fatalf("expected concat:\n%s", got)
			}
			if strings.Contains(got, "overlay") {
				t.Fatalf("did not expect overlay:\n%s", got)
			}
		})
	}
}

func TestOpenEndedLayerInsideBoundedOneIsOverlaid(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("a.mp4", composition.VideoOptions{Duration: 10}),
		composition.NewVideo("b.mp4", composition.VideoOptions{Start: 4}),
	}})
	mustResolve(t, r)
	if !strings.Contains(r.FilterComplex(), "overlay") {
		t.Fatalf("expected overlay:\n%s", r.FilterComplex())
	}
}

func TestPictureInPicture(t *testing.T) {
	pos := composition.Position{Anchor: composition.AnchorTopRight, Margin: 10}
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("main.mp4", composition.VideoOptions{}),
		composition.NewVideo("cam.mp4", composition.VideoOptions{Position: &pos, Scale: 0.25, Opacity: composition.Float(0.8)}),
	}})
	mustResolve(t, r)
	got := r.FilterComplex()
	for _, want := range []string{
		"[1:v]scale=w=iw*0.25:h=ih*0.25,format=rgba,colorchannelmixer=aa=0.8[v_0]",
		"[0:v][v_0]overlay=x=W-w-10:y=10:eof_action=pass[v_1]",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
}

func TestTextOnlyUsesBackground(t *testing.T) {
	r := Compile(Request{
		Layers:   []composition.Layer{composition.NewText("Title", composition.TextOptions{Duration: 4})},
		Settings: composition.Settings{Background: "navy"},
	})
	mustResolve(t, r)
	if !strings.HasPrefix(r.FilterComplex(), "color=c=navy:s=1920x1080:r=30:d=4[v_0];[v_0]drawtext=text=Title") {
		t.Fatalf("unexpected graph:\n%s", r.FilterComplex())
	}
	if len(r.Inputs) != 0 {
		t.Fatalf("expected no inputs, got %+v", r.Inputs)
	}
}

func TestTextStyleAndFades(t *testing.T) {
	style := composition.TextStyle{FontSize: 32, FontColor: "yellow", Opacity: composition.Float(0.5), Box: true, BorderWidth: 2}
	pos := composition.Percent(10, 90)
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("in.mp4", composition.VideoOptions{}),
		composition.NewText("it's 12:30", composition.TextOptions{Start: 1, Duration: 4, Position: &pos, Style: style, FadeIn: 1, FadeOut: 1}),
	}})
	got := r.FilterComplex()
	for _, want := range []string{
		`text='it\'\''s 12\:30'`,
		"fontcolor=yellow@0.5",
		"borderw=2:bordercolor=black",
		"box=1:boxcolor=black@0.5",
		"x=w*10/100:y=h*90/100",
		"enable='between(t,1,5)'",
		"alpha='if(lt(t,2),(t-1)/1,if(gt(t,4),(5-t)/1,1))'",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
}

func TestWatermarks(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("in.mp4", composition.VideoOptions{}),
		composition.NewWatermark("logo.png", composition.WatermarkOptions{}),
		composition.NewWatermark("", composition.WatermarkOptions{Text: "(c) splicer"}),
	}})
	mustResolve(t, r)
	got := r.FilterComplex()
	for _, want := range []string{
		"[1:v]format=rgba,colorchannelmixer=aa=0.5[v_0]",
		"[0:v][v_0]overlay=x=W-w-20:y=H-h-20:shortest=1[v_1]",
		"drawtext=text='(c) splicer':fontsize=24:fontcolor=white@0.5:x=w-text_w-20:y=h-text_h-20",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
	if strings.Join(r.Inputs[1].Args(), " ") != "-loop 1 -i logo.png" {
		t.Fatalf("unexpected watermark input %+v", r.Inputs[1])
	}
}

func TestUserFiltersKeepInsertionOrder(t *testing.T) {
	scale := composition.NewFilter("scale", []composition.Param{{Value: "640"}, {Value: "360"}}, composition.FilterOptions{})
	crop := composition.NewFilter("crop", []composition.Param{{Key: "w", Value: "320"}, {Key: "h", Value: "180"}}, composition.FilterOptions{})
	video := composition.NewVideo("in.mp4", composition.VideoOptions{})

	a := Compile(Request{Layers: []composition.Layer{video, scale, crop}}).FilterComplex()
	b := Compile(Request{Layers: []composition.Layer{video, crop, scale}}).FilterComplex()
	if a == b {
		t.Fatal("expected filter order to change the graph")
	}
	if a != "[0:v]scale=640:360[v_0];[v_0]crop=w=320:h=180[v_1]" {
		t.Fatalf("unexpected graph %s", a)
	}
}

func TestBoundedUserFilterGetsEnable(t *testing.T) {
	blur := composition.NewFilter("boxblur", []composition.Param{{Value: "5"}}, composition.FilterOptions{Start: 1, Duration: 2})
	r := Compile(Request{Layers: []composition.Layer{composition.NewVideo("in.mp4", composition.VideoOptions{}), blur}})
	if got := r.FilterComplex(); got != "[0:v]boxblur=5:enable='between(t,1,3)'[v_0]" {
		t.Fatalf("unexpected graph %s", got)
	}
}

func TestAudioLayerChain(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("in.mp4", composition.VideoOptions{}),
		composition.NewAudio("music.mp3", composition.AudioOptions{Start: 2, Volume: composition.Float(0.5), FadeIn: 1, Pan: -1}),
	}})
	mustResolve(t, r)
	want := "[1:a]volume=0.5,pan=stereo|c0=1*c0|c1=0*c1,afade=t=in:st=0:d=1,adelay=delays=2000:all=1[a_0]"
	if got := r.FilterComplex(); got != want {
		t.Fatalf("FilterComplex =\n%s\nwant\n%s", got, want)
	}
	if r.Audio != "a_0" {
		t.Fatalf("expected a_0, got %s", r.Audio)
	}
}

func TestAudioMix(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewAudio("a.mp3", composition.AudioOptions{}),
		composition.NewAudio("b.mp3", composition.AudioOptions{Duration: 3}),
	}})
	mustResolve(t, r)
	if !strings.Contains(r.FilterComplex(), "[0:a][a_0]amix=inputs=2:duration=longest:normalize=0[a_1]") {
		t.Fatalf("unexpected graph %s", r.FilterComplex())
	}
	if r.Video != "" {
		t.Fatalf("audio-only composition should not map video, got %s", r.Video)
	}
}

func TestDucking(t *testing.T) {
	opts := validation.DefaultDucking()
	r := Compile(Request{
		Layers: []composition.Layer{
			composition.NewVideo("talk.mp4", composition.VideoOptions{}),
			composition.NewAudio("music.mp3", composition.AudioOptions{}),
		},
		Ducking: &opts,
	})
	mustResolve(t, r)
	got := r.FilterComplex()
	for _, want := range []string{
		"[0:a]asplit=2[a_0][a_1]",
		"[a_0]highpass=f=300,lowpass=f=3000[a_2]",
		"[1:a][a_2]sidechaincompress=threshold=",
		"mix=0.7",
		"[a_1][a_3]amix=inputs=2:duration=longest:normalize=0[a_4]",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
}

func TestInputsAreDeduplicated(t *testing.T) {
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("clip.mp4", composition.VideoOptions{Duration: 2}),
		composition.NewVideo("clip.mp4", composition.VideoOptions{Start: 2, In: 5, Duration: 2}),
		composition.NewImage("still.png", composition.ImageOptions{Start: 4, Duration: 2}),
		composition.NewImage("still.png", composition.ImageOptions{Start: 6, Duration: 2, KenBurns: &composition.KenBurns{}}),
	}})
	mustResolve(t, r)
	if len(r.Inputs) != 3 {
		t.Fatalf("expected 3 inputs, got %+v", r.Inputs)
	}
	if !strings.Contains(r.FilterComplex(), "zoompan=z=(1+") {
		t.Fatalf("expected ken burns zoompan:\n%s", r.FilterComplex())
	}
}

func TestLenientValuesPassThrough(t *testing.T) {
	style := composition.TextStyle{FontSize: math.Inf(1)}
	r := Compile(Request{Layers: []composition.Layer{
		composition.NewVideo("", composition.VideoOptions{Duration: -3}),
		composition.NewText("x", composition.TextOptions{Style: style, Start: -1}),
	}})
	got := r.FilterComplex()
	if !strings.Contains(got, "trim=duration=-3") || !strings.Contains(got, "fontsize=+Inf") {
		t.Fatalf("expected raw values in graph:\n%s", got)
	}
	if r.Inputs[0].Source != "" {
		t.Fatalf("expected empty source to be kept, got %q", r.Inputs[0].Source)
	}
}

func TestLabelsResolveForMixedComposition(t *testing.T) {
	pos := composition.At(composition.AnchorBottomLeft)
	fade := transition.Options{Type: transition.Slide, Duration: 1}
	layers := []composition.Layer{
		composition.NewVideo("a.mp4", composition.VideoOptions{Duration: 4, KeepAudio: true}),
		composition.NewImage("b.png", composition.ImageOptions{Start: 4, Duration: 4, FadeIn: 0.5}),
		composition.NewVideo("c.mp4", composition.VideoOptions{Start: 8, Duration: 4, Rotation: 90}),
		composition.NewImage("sticker.png", composition.ImageOptions{Position: &pos, Start: 1, Duration: 2, Rotation: 15}),
		composition.NewText("caption", composition.TextOptions{Start: 2, Duration: 3}),
		composition.NewAudio("bed.mp3", composition.AudioOptions{Loop: true, FadeOut: 2}),
		composition.NewFilter("eq", []composition.Param{{Key: "contrast", Value: "1.1"}}, composition.FilterOptions{}),
		composition.NewFilter("loudnorm", nil, composition.FilterOptions{Track: composition.TrackAudio}),
		composition.NewWatermark("logo.png", composition.WatermarkOptions{}),
	}
	r := Compile(Request{
		Layers:      layers,
		Settings:    composition.Settings{AspectRatio: "1:1", FrameRate: 25},
		Transitions: []TransitionRequest{{From: 1, To: 2, Options: fade}},
	})
	mustResolve(t, r)

	mapped := map[fg.Pad]bool{r.Video: true, r.Audio: true}
	outs := r.Graph.Unconsumed()
	if len(outs) != 2 || !mapped[outs[0]] || !mapped[outs[1]] {
		t.Fatalf("expected the mapped pads to be the only unconsumed labels, got %v (video %s audio %s)", outs, r.Video, r.Audio)
	}
	again := Compile(Request{
		Layers:      layers,
		Settings:    composition.Settings{AspectRatio: "1:1", FrameRate: 25},
		Transitions: []TransitionRequest{{From: 1, To: 2, Options: fade}},
	})
	if again.FilterComplex() != r.FilterComplex() {
		t.Fatal("compilation is not deterministic")
	}
	if !strings.Contains(strings.Join(r.InputArgs(), " "), "-stream_loop -1 -i bed.mp3") {
		t.Fatalf("expected looped music input, got %v", r.InputArgs())
	}
}
