package presets

import "testing"

func TestLookupResolutionIsCaseInsensitive(t *testing.T) {
	r, ok := LookupResolution(" TikTok ")
	if !ok {
		t.Fatal("expected tiktok resolution")
	}
	if r.Width != 1080 || r.Height != 1920 || r.AspectRatio != "9:16" {
		t.Fatalf("unexpected tiktok resolution %+v", r)
	}
	if _, ok := LookupResolution("8k"); ok {
		t.Fatal("expected unknown preset to miss")
	}
}

func TestReduceAspect(t *testing.T) {
	tests := []struct {
		w, h int
		want string
	}{
		{1920, 1080, "16:9"},
		{1080, 1350, "4:5"},
		{854, 480, "427:240"},
		{0, 1080, "0:0"},
		{-4, 3, "0:0"},
	}
	for _, tc := range tests {
		if got := ReduceAspect(tc.w, tc.h); got != tc.want {
			t.Fatalf("ReduceAspect(%d, %d) = %q, want %q", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestParseAspect(t *testing.T) {
	tests := []struct {
		in   string
		w, h float64
		ok   bool
	}{
		{"16:9", 16, 9, true},
		{"4/3", 4, 3, true},
		{"1.5", 1.5, 1, true},
		{"0:9", 0, 0, false},
		{"wide", 0, 0, false},
	}
	for _, tc := range tests {
		w, h, ok := ParseAspect(tc.in)
		if ok != tc.ok || w != tc.w || h != tc.h {
			t.Fatalf("ParseAspect(%q) = %v, %v, %v", tc.in, w, h, ok)
		}
	}
}

func TestAspectCanvas(t *testing.T) {
	r, ok := AspectCanvas("9:16")
	if !ok || r.Width != 1080 || r.Height != 1920 {
		t.Fatalf("9:16 canvas = %+v, %v", r, ok)
	}
	r, ok = AspectCanvas("32:18")
	if !ok || r.Width != 1920 || r.Height != 1080 {
		t.Fatalf("expected 32:18 to reduce to 16:9, got %+v", r)
	}
	r, ok = AspectCanvas("2.39:1")
	if !ok || r.Height != 1080 || r.Width%2 != 0 || r.Width < 2580 || r.Width > 2582 {
		t.Fatalf("unexpected scope canvas %+v", r)
	}
	if _, ok := AspectCanvas("nope"); ok {
		t.Fatal("expected unreadable aspect to fail")
	}
}

func TestFitAspect(t *testing.T) {
	r, ok := FitAspect(1920, 1080, "9:16")
	if !ok {
		t.Fatal("expected fit")
	}
	if r.Height != 1080 || r.Width != 608 {
		t.Fatalf("FitAspect = %+v", r)
	}
}

func TestQualityOrDefaultFallsBackToMedium(t *testing.T) {
	q := QualityOrDefault("bogus")
	if q.Name != DefaultQuality || q.CRF != 23 {
		t.Fatalf("unexpected fallback quality %+v", q)
	}
	levels := Qualities()
	for i := 1; i < len(levels); i++ {
		if levels[i-1].CRF > levels[i].CRF {
			t.Fatalf("qualities not ordered by CRF: %+v", levels)
		}
	}
}

func TestCodecPresets(t *testing.T) {
	p, ok := LookupCodecPreset("prores")
	if !ok || !p.NoCRF || p.Container != "mov" {
		t.Fatalf("unexpected prores preset %+v", p)
	}
	if SupportsCRF("prores_ks") {
		t.Fatal("prores should not take -crf")
	}
	if !SupportsCRF("libx265") {
		t.Fatal("libx265 should take -crf")
	}
	if got := NormalizeCodec("pcm_s24le"); got != "pcm" {
		t.Fatalf("NormalizeCodec(pcm_s24le) = %q", got)
	}
}

func TestPlatformLookupCopiesFrameRates(t *testing.T) {
	p, ok := LookupPlatform("tiktok")
	if !ok {
		t.Fatal("expected tiktok platform")
	}
	p.FrameRates[0] = 999
	again, _ := LookupPlatform("tiktok")
	if again.FrameRates[0] == 999 {
		t.Fatal("lookup leaked the shared frame rate slice")
	}
	if !again.AllowsFrameRate(30) || again.AllowsFrameRate(29) {
		t.Fatal("unexpected frame rate acceptance")
	}
	for _, p := range Platforms() {
		if _, ok := LookupResolution(p.Resolution); !ok {
			t.Fatalf("platform %s references unknown resolution %s", p.Name, p.Resolution)
		}
		if _, ok := LookupQuality(p.Quality); !ok {
			t.Fatalf("platform %s references unknown quality %s", p.Name, p.Quality)
		}
		if _, ok := LookupCodecPreset(p.CodecPreset); !ok {
			t.Fatalf("platform %s references unknown codec preset %s", p.Name, p.CodecPreset)
		}
	}
}

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name       string
		video      string
		audio      string
		container  string
		compatible bool
		warnings   int
	}{
		{"h264 mp4", "libx264", "aac", "mp4", true, 0},
		{"hevc mp4 warns", "libx265", "aac", "mp4", true, 1},
		{"vp9 webm", "libvpx-vp9", "libopus", "webm", true, 0},
		{"h264 webm", "libx264", "libopus", "webm", false, 1},
		{"aac webm", "libvpx-vp9", "aac", "webm", false, 1},
		{"gif audio", "gif", "aac", "gif", false, 1},
		{"prores mov", "prores_ks", "pcm_s16le", ".MOV", true, 0},
		{"unknown container", "libx264", "aac", "xyz", true, 1},
		{"copy skips", "copy", "copy", "webm", true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckCompatibility(tc.video, tc.audio, tc.container)
			if got.Compatible != tc.compatible || len(got.Warnings) != tc.warnings {
				t.Fatalf("CheckCompatibility = %+v", got)
			}
		})
	}
}

func TestContainerFromPath(t *testing.T) {
	tests := map[string]string{
		"out.mp4":        "mp4",
		"/tmp/a.b/c.MKV": "mkv",
		"clip.m4v":       "mp4",
		"noext":          "",
		"trailing.":      "",
	}
	for in, want := range tests {
		if got := ContainerFromPath(in); got != want {
			t.Fatalf("ContainerFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSelectPrecedence(t *testing.T) {
	sel := Select("", "", "", "", "", "")
	if sel.VideoCodec != DefaultVideoCodec || sel.AudioCodec != DefaultAudioCodec || sel.Quality.Name != DefaultQuality {
		t.Fatalf("unexpected default selection %+v", sel)
	}

	sel = Select("", "", "", "", "tiktok", "")
	if !sel.HasPreset || sel.Preset.Name != "h264-web" || sel.Quality.Name != "high" {
		t.Fatalf("platform defaults not applied: %+v", sel)
	}

	sel = Select("libx265", "", "vp9", "low", "tiktok", "")
	if sel.Preset.Name != "vp9" || sel.VideoCodec != "libx265" || sel.AudioCodec != "libopus" || sel.Quality.Name != "low" {
		t.Fatalf("explicit values did not win: %+v", sel)
	}
}
