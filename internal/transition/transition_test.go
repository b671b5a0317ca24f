package transition

import (
	"strings"
	"testing"

	"splicer/internal/composition"
)

func endpoint(index int, start, duration float64) Endpoint {
	return Endpoint{Index: index, Timing: composition.Timing{Start: start, Duration: duration}}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		from, to   composition.Timing
		opts       Options
		start, end float64
	}{
		{"back to back", composition.Timing{Start: 0, Duration: 5}, composition.Timing{Start: 5, Duration: 5}, Options{Duration: 1}, 5, 6},
		{"overlapping", composition.Timing{Start: 0, Duration: 5}, composition.Timing{Start: 3, Duration: 5}, Options{Duration: 1}, 4, 5},
		{"offset", composition.Timing{Start: 0, Duration: 5}, composition.Timing{Start: 3, Duration: 5}, Options{Duration: 1, Offset: 0.5}, 4.5, 5.5},
		{"default duration", composition.Timing{Start: 0, Duration: 5}, composition.Timing{Start: 2, Duration: 5}, Options{}, 4, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := Window(tc.from, tc.to, tc.opts)
			if start != tc.start || end != tc.end {
				t.Fatalf("Window = %v..%v, want %v..%v", start, end, tc.start, tc.end)
			}
		})
	}
}

func TestParseHelpersAreLenient(t *testing.T) {
	if got := ParseType("SLIDE"); got != Slide {
		t.Fatalf("ParseType(SLIDE) = %q", got)
	}
	if got := ParseType("warp"); got != Fade {
		t.Fatalf("unknown type should fall back to fade, got %q", got)
	}
	if got := ParseType("none"); got != None {
		t.Fatalf("ParseType(none) = %q", got)
	}
	if got := ParseDirection("sideways"); got != Left {
		t.Fatalf("unknown direction should fall back to left, got %q", got)
	}
	if got := ParseEasing("easeInOut"); got != EaseInOut {
		t.Fatalf("ParseEasing(easeInOut) = %q", got)
	}
	if got := EaseIn.Expr("p"); got != "pow(p,2)" {
		t.Fatalf("EaseIn.Expr = %q", got)
	}
}

func TestEngineFadeBindsInputPairs(t *testing.T) {
	e := NewEngine()
	e.Add(endpoint(0, 0, 5), endpoint(1, 4, 5), Options{Type: Fade, Duration: 1})
	e.Add(endpoint(2, 0, 3), endpoint(3, 3, 3), Options{Type: Dissolve, Duration: 0.5})

	got := e.BuildFilterComplex()
	want := "[0:v][1:v]xfade=transition=fade:duration=1:offset=4[v_0];" +
		"[2:v][3:v]xfade=transition=dissolve:duration=0.5:offset=3[v_1]"
	if got != want {
		t.Fatalf("BuildFilterComplex =\n%s\nwant\n%s", got, want)
	}
}

func TestEngineAudioFade(t *testing.T) {
	e := NewEngine()
	e.Add(endpoint(0, 0, 5), endpoint(1, 4, 5), Options{Type: Fade, Duration: 1, AudioFade: true})
	got := e.BuildFilterComplex()
	if !strings.Contains(got, "[0:a][1:a]acrossfade=d=1:c1=tri:c2=tri[a_0]") {
		t.Fatalf("expected acrossfade stage, got %s", got)
	}
}

func TestAutoGenerateSortsByStart(t *testing.T) {
	layers := []composition.Layer{
		composition.NewImage("b.png", composition.ImageOptions{Start: 5}),
		composition.NewAudio("music.mp3", composition.AudioOptions{}),
		composition.NewVideo("a.mp4", composition.VideoOptions{Duration: 5}),
		composition.NewText("title", composition.TextOptions{}),
	}
	e := NewEngine()
	e.Add(endpoint(9, 0, 1), endpoint(10, 1, 1), Options{})

	points := e.AutoGenerate(layers, Options{Type: Wipe, Duration: 1})
	if len(points) != 1 {
		t.Fatalf("expected 1 point after regeneration, got %d", len(points))
	}
	p := points[0]
	if p.From.Index != 2 || p.To.Index != 0 {
		t.Fatalf("unexpected pair %d -> %d", p.From.Index, p.To.Index)
	}
	if p.Start != 5 || p.End != 6 {
		t.Fatalf("unexpected window %v..%v", p.Start, p.End)
	}
}

func TestAutoGenerateKeepsInsertionOrderForTies(t *testing.T) {
	layers := []composition.Layer{
		composition.NewVideo("first.mp4", composition.VideoOptions{Duration: 3}),
		composition.NewVideo("second.mp4", composition.VideoOptions{Duration: 3}),
	}
	pairs := AdjacentPairs(layers)
	if len(pairs) != 1 || pairs[0][0].Index != 0 || pairs[0][1].Index != 1 {
		t.Fatalf("unexpected pairs %+v", pairs)
	}
}

func TestEveryTypeProducesResolvableGraph(t *testing.T) {
	marker := map[Type]string{
		Fade:     "transition=fade",
		Slide:    "overlay=",
		Zoom:     "transition=zoomin",
		Wipe:     "transition=wipeleft",
		Dissolve: "transition=dissolve",
		Push:     "transition=slideleft",
		Cover:    "transition=coverleft",
		Reveal:   "transition=revealleft",
		Iris:     "geq=",
		Matrix:   "transition=custom",
		Cube:     "transition=custom",
		Flip:     "transition=custom",
		Morph:    "blend=all_expr=",
		Particle: "transition=custom",
		Glitch:   "rgbashift=",
		Burn:     "transition=custom",
		None:     "concat=n=2",
	}
	for typ, want := range marker {
		t.Run(string(typ), func(t *testing.T) {
			e := NewEngine()
			e.Add(endpoint(0, 0, 5), endpoint(1, 4, 5), Options{Type: typ, Duration: 1})
			g := e.Graph()
			if err := g.Validate(2); err != nil {
				t.Fatalf("graph does not resolve: %v\n%s", err, g)
			}
			if outs := g.Unconsumed(); len(outs) != 1 {
				t.Fatalf("expected one output pad, got %v\n%s", outs, g)
			}
			if !strings.Contains(g.String(), want) {
				t.Fatalf("expected %q in %s", want, g)
			}
		})
	}
}

func TestCompositeWithoutHeadSkipsSplit(t *testing.T) {
	e := NewEngine()
	e.Add(endpoint(0, 0, 1), endpoint(1, 0, 5), Options{Type: Slide, Duration: 1})
	got := e.BuildFilterComplex()
	if strings.HasPrefix(got, "[0:v]split") {
		t.Fatalf("did not expect the outgoing stream to be split: %s", got)
	}
	if !strings.Contains(got, "concat=n=2:v=1:a=0") {
		t.Fatalf("expected two-part concat: %s", got)
	}
}

func TestReverseMirrorsDirection(t *testing.T) {
	e := NewEngine()
	e.Add(endpoint(0, 0, 5), endpoint(1, 4, 5), Options{Type: Wipe, Direction: Left, Reverse: true})
	if got := e.BuildFilterComplex(); !strings.Contains(got, "transition=wiperight") {
		t.Fatalf("expected mirrored wipe: %s", got)
	}
}

func TestCustomExpressionIsQuoted(t *testing.T) {
	e := NewEngine()
	e.Add(endpoint(0, 0, 5), endpoint(1, 4, 5), Options{Type: Cube})
	got := e.BuildFilterComplex()
	if !strings.Contains(got, "expr='st(0,(1-P));st(1,W*(1-ld(0)));if(lt(X,ld(1))") {
		t.Fatalf("unexpected cube expression: %s", got)
	}
}

func TestPresets(t *testing.T) {
	smooth := Preset("does-not-exist")
	if smooth.Type != Fade || smooth.Duration != 1 || smooth.Easing != EaseInOut {
		t.Fatalf("unexpected fallback preset %+v", smooth)
	}
	names := PresetNames()
	if len(names) != 9 {
		t.Fatalf("expected 9 presets, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("preset names not sorted: %v", names)
		}
	}
	retro := Preset("RETRO")
	retro.Params["intensity"] = 9
	if Preset("retro").Params["intensity"] != 1.5 {
		t.Fatal("preset params leaked between lookups")
	}
}
