package presets

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Resolution is a named output size.
type Resolution struct {
	Name        string `json:"name"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	AspectRatio string `json:"aspectRatio"`
}

// String renders WxH.
func (r Resolution) String() string {
	return strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height)
}

var resolutions = map[string]Resolution{
	"4k":                 {Name: "4K", Width: 3840, Height: 2160, AspectRatio: "16:9"},
	"2k":                 {Name: "2K", Width: 2560, Height: 1440, AspectRatio: "16:9"},
	"1080p":              {Name: "1080p", Width: 1920, Height: 1080, AspectRatio: "16:9"},
	"720p":               {Name: "720p", Width: 1280, Height: 720, AspectRatio: "16:9"},
	"480p":               {Name: "480p", Width: 854, Height: 480, AspectRatio: "16:9"},
	"360p":               {Name: "360p", Width: 640, Height: 360, AspectRatio: "16:9"},
	"tiktok":             {Name: "tiktok", Width: 1080, Height: 1920, AspectRatio: "9:16"},
	"youtube-shorts":     {Name: "youtube-shorts", Width: 1080, Height: 1920, AspectRatio: "9:16"},
	"instagram-story":    {Name: "instagram-story", Width: 1080, Height: 1920, AspectRatio: "9:16"},
	"instagram-reel":     {Name: "instagram-reel", Width: 1080, Height: 1920, AspectRatio: "9:16"},
	"instagram-square":   {Name: "instagram-square", Width: 1080, Height: 1080, AspectRatio: "1:1"},
	"instagram-portrait": {Name: "instagram-portrait", Width: 1080, Height: 1350, AspectRatio: "4:5"},
	"youtube":            {Name: "youtube", Width: 1920, Height: 1080, AspectRatio: "16:9"},
	"twitter":            {Name: "twitter", Width: 1280, Height: 720, AspectRatio: "16:9"},
	"facebook":           {Name: "facebook", Width: 1280, Height: 720, AspectRatio: "16:9"},
}

// LookupResolution finds a named resolution, case-insensitively.
func LookupResolution(name string) (Resolution, bool) {
	r, ok := resolutions[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

// Resolutions returns every named resolution sorted by name.
func Resolutions() []Resolution {
	out := make([]Resolution, 0, len(resolutions))
	for _, r := range resolutions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out
}

// CustomResolution builds a resolution whose aspect ratio is w:h reduced by
// their greatest common divisor.
func CustomResolution(width, height int) Resolution {
	return Resolution{
		Name:        "custom",
		Width:       width,
		Height:      height,
		AspectRatio: ReduceAspect(width, height),
	}
}

// ReduceAspect returns "a:b" for w:h in lowest terms. Non-positive input
// yields "0:0".
func ReduceAspect(w, h int) string {
	if w <= 0 || h <= 0 {
		return "0:0"
	}
	g := GCD(w, h)
	return strconv.Itoa(w/g) + ":" + strconv.Itoa(h/g)
}

// GCD is the greatest common divisor of two non-negative integers.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// ParseAspect reads "16:9", "16/9" or "1.7778". ok is false for anything
// non-positive or unreadable.
func ParseAspect(value string) (w, h float64, ok bool) {
	s := strings.TrimSpace(value)
	for _, sep := range []string{":", "/", "x"} {
		if a, b, found := strings.Cut(s, sep); found {
			wv, err1 := strconv.ParseFloat(strings.TrimSpace(a), 64)
			hv, err2 := strconv.ParseFloat(strings.TrimSpace(b), 64)
			if err1 != nil || err2 != nil || wv <= 0 || hv <= 0 {
				return 0, 0, false
			}
			return wv, hv, true
		}
	}
	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil || ratio <= 0 || math.IsInf(ratio, 0) {
		return 0, 0, false
	}
	return ratio, 1, true
}

var aspectCanvases = map[string]Resolution{
	"16:9": {Width: 1920, Height: 1080},
	"9:16": {Width: 1080, Height: 1920},
	"1:1":  {Width: 1080, Height: 1080},
	"4:5":  {Width: 1080, Height: 1350},
	"4:3":  {Width: 1440, Height: 1080},
	"3:4":  {Width: 1080, Height: 1440},
	"21:9": {Width: 2560, Height: 1080},
	"2:3":  {Width: 1080, Height: 1620},
}

// AspectCanvas returns the default canvas for an aspect ratio. Unlisted
// ratios keep the short side at 1080 and round the long side to an even
// number of pixels. ok is false when the ratio cannot be read.
func AspectCanvas(aspect string) (Resolution, bool) {
	w, h, ok := ParseAspect(aspect)
	if !ok {
		return Resolution{}, false
	}
	if w == math.Trunc(w) && h == math.Trunc(h) {
		key := ReduceAspect(int(w), int(h))
		if r, found := aspectCanvases[key]; found {
			r.Name = key
			r.AspectRatio = key
			return r, true
		}
	}
	var width, height int
	if w >= h {
		height = 1080
		width = even(1080 * w / h)
	} else {
		width = 1080
		height = even(1080 * h / w)
	}
	r := CustomResolution(width, height)
	r.Name = strings.TrimSpace(aspect)
	return r, true
}

// FitAspect returns the largest even-sized frame of the given aspect ratio
// that fits within width x height.
func FitAspect(width, height int, aspect string) (Resolution, bool) {
	w, h, ok := ParseAspect(aspect)
	if !ok || width <= 0 || height <= 0 {
		return Resolution{}, false
	}
	target := w / h
	fw, fh := float64(width), float64(height)
	if fw/fh > target {
		fw = fh * target
	} else {
		fh = fw / target
	}
	return CustomResolution(even(fw), even(fh)), true
}

func even(v float64) int {
	n := int(math.Round(v))
	if n%2 != 0 {
		n++
	}
	return n
}
