package filtergraph

import (
	"math"
	"strings"
	"testing"
)

func TestFilterString(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		want string
	}{
		{"bare", New("hflip"), "hflip"},
		{"positional", New("scale", Value(1280), Value(720)), "scale=1280:720"},
		{"keyed", New("fps", KV("fps", 29.97)), "fps=fps=29.97"},
		{"expression", New("overlay", KV("x", "if(gte(t,2),10,20)")), "overlay=x='if(gte(t,2),10,20)'"},
		{"colon", New("drawtext", KV("text", "12:30")), `drawtext=text='12\:30'`},
		{"quote", New("drawtext", KV("text", "it's")), `drawtext=text='it\'\''s'`},
		{"raw", New("scale", RawKV("size", "1280:720")), "scale=size=1280:720"},
		{"verbatim", Verbatim("eq=contrast=1.2"), "eq=contrast=1.2"},
		{"inf", New("drawtext", KV("fontsize", math.Inf(1))), "drawtext=fontsize=+Inf"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNum(t *testing.T) {
	if got := Num(2); got != "2" {
		t.Fatalf("Num(2) = %q", got)
	}
	if got := Num(0.5); got != "0.5" {
		t.Fatalf("Num(0.5) = %q", got)
	}
	if got := Num(math.NaN()); got != "NaN" {
		t.Fatalf("Num(NaN) = %q", got)
	}
}

func TestGraphLabelsAreUnique(t *testing.T) {
	g := NewGraph()
	seen := map[Pad]struct{}{}
	for i := 0; i < 100; i++ {
		p := g.Label("v")
		if _, ok := seen[p]; ok {
			t.Fatalf("duplicate label %s", p)
		}
		seen[p] = struct{}{}
	}
	if g.Label("a") != "a_0" {
		t.Fatalf("prefixes must count independently")
	}
}

func TestGraphStringAndValidate(t *testing.T) {
	g := NewGraph()
	base := g.Chain(Stream(0, "v"), g.Label("v"), New("scale", Value(1280), Value(720)))
	out := g.Chain(base, g.Label("v"), New("drawtext", KV("text", "Hi")))
	if err := g.Validate(1); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	want := "[0:v]scale=1280:720[v_0];[v_0]drawtext=text=Hi[v_1]"
	if got := g.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if un := g.Unconsumed(); len(un) != 1 || un[0] != out {
		t.Fatalf("unexpected outputs %v", un)
	}
}

func TestValidateRejectsForwardAndDoubleUse(t *testing.T) {
	g := NewGraph()
	g.Add([]Pad{"later"}, []Pad{"x"}, New("null"))
	g.Add([]Pad{Stream(0, "v")}, []Pad{"later"}, New("null"))
	g.Add([]Pad{"later"}, []Pad{"y"}, New("null"))
	g.Add([]Pad{"later"}, []Pad{"x"}, New("null"))
	g.Add([]Pad{Stream(3, "v")}, []Pad{"z"}, New("null"))
	err := g.Validate(1)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"read before it is defined", "already consumed", "already defined", "missing input 3"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestPadMapArg(t *testing.T) {
	if Pad("0:a?").MapArg() != "0:a?" {
		t.Fatalf("stream pads map without brackets")
	}
	if Pad("v_2").MapArg() != "[v_2]" {
		t.Fatalf("labels map with brackets")
	}
}
