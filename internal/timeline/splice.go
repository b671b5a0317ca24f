package timeline

import (
	"math"
	"slices"

	"splicer/internal/compiler"
	"splicer/internal/composition"
)

// cut returns the part of l that falls inside [from, to), moved back by
// shift. Sources of video and audio layers advance by the amount cut from
// their head. A layer without a bounded duration is kept whole when it
// starts before to.
func cut(l composition.Layer, from, to, shift float64) (composition.Layer, bool) {
	t := l.Timing()
	if !t.Bounded() {
		if t.Start >= to {
			return nil, false
		}
		start := math.Max(t.Start, from)
		return composition.Retime(l, composition.Timing{Start: start - shift, Duration: t.Duration}, start-t.Start), true
	}
	start, end := math.Max(t.Start, from), math.Min(t.End(), to)
	if end <= start {
		return nil, false
	}
	return composition.Retime(l, composition.Timing{Start: start - shift, Duration: end - start}, start-t.Start), true
}

// rebuild collects the pieces of every layer and remaps explicit
// transitions onto them: a transition leaves the last piece of its from
// layer and enters the first piece of its to layer. Transitions whose
// layers were dropped are dropped too.
func (t Timeline) rebuild(pieces func(composition.Layer) []composition.Layer) Timeline {
	out := t
	out.layers = nil
	first := make([]int, len(t.layers))
	last := make([]int, len(t.layers))
	for i, l := range t.layers {
		first[i], last[i] = -1, -1
		for _, p := range pieces(l) {
			if first[i] < 0 {
				first[i] = len(out.layers)
			}
			last[i] = len(out.layers)
			out.layers = append(out.layers, p)
		}
	}
	out.transitions = nil
	for _, tr := range t.transitions {
		if tr.From < 0 || tr.From >= len(t.layers) || tr.To < 0 || tr.To >= len(t.layers) {
			continue
		}
		from, to := last[tr.From], first[tr.To]
		if from < 0 || to < 0 || from == to {
			continue
		}
		out.transitions = append(out.transitions, compiler.TransitionRequest{From: from, To: to, Options: tr.Options})
	}
	return out
}

func keep(l composition.Layer, ok bool) []composition.Layer {
	if !ok {
		return nil
	}
	return []composition.Layer{l}
}

// TrimTo keeps [start, end) and moves it to time zero.
func (t Timeline) TrimTo(start, end float64) Timeline {
	return t.rebuild(func(l composition.Layer) []composition.Layer {
		return keep(cut(l, start, end, start))
	})
}

// RemoveSegment deletes [start, end) and closes the gap. A layer spanning
// the segment becomes two layers, the second reading its source from
// where the cut ends. RemoveSegment(0, Duration()) yields a zero duration.
func (t Timeline) RemoveSegment(start, end float64) Timeline {
	if !(end > start) {
		return t
	}
	gap := end - start
	return t.rebuild(func(l composition.Layer) []composition.Layer {
		head, ok := cut(l, math.Inf(-1), start, 0)
		if ok && !l.Timing().Bounded() {
			return []composition.Layer{head}
		}
		out := keep(head, ok)
		return append(out, keep(cut(l, end, math.Inf(1), gap))...)
	})
}

// Split cuts the timeline at at. The second part starts at time zero.
// Layers without a bounded duration that start before at stay in the first
// part only.
func (t Timeline) Split(at float64) (Timeline, Timeline) {
	head := t.rebuild(func(l composition.Layer) []composition.Layer {
		return keep(cut(l, math.Inf(-1), at, 0))
	})
	tail := t.rebuild(func(l composition.Layer) []composition.Layer {
		if !l.Timing().Bounded() && l.Timing().Start < at {
			return nil
		}
		return keep(cut(l, at, math.Inf(1), at))
	})
	return head, tail
}

// shifted moves every layer later by offset.
func (t Timeline) shifted(offset float64) Timeline {
	if offset == 0 {
		return t
	}
	return t.rebuild(func(l composition.Layer) []composition.Layer {
		lt := l.Timing()
		return []composition.Layer{composition.Retime(l, composition.Timing{Start: lt.Start + offset, Duration: lt.Duration}, 0)}
	})
}

// appendTimeline adds other's layers and transitions after t's. Settings,
// automatic transitions and ducking stay t's.
func (t Timeline) appendTimeline(other Timeline) Timeline {
	base := len(t.layers)
	t.layers = append(slices.Clip(t.layers), other.layers...)
	t.transitions = slices.Clip(t.transitions)
	for _, tr := range other.transitions {
		tr.From += base
		tr.To += base
		t.transitions = append(t.transitions, tr)
	}
	return t
}

// Concatenate plays the timelines one after another. Each one starts where
// the previous one's Duration ends, so the result's Duration is the sum.
// Settings come from the first timeline.
func Concatenate(ts ...Timeline) Timeline {
	if len(ts) == 0 {
		return New()
	}
	out := ts[0]
	offset := ts[0].Duration()
	for _, next := range ts[1:] {
		out = out.appendTimeline(next.shifted(offset))
		offset += next.Duration()
	}
	return out
}

// InsertAt opens a gap at at as long as clip and places clip in it. Layers
// that span at are split around the insertion.
func (t Timeline) InsertAt(at float64, clip Timeline) Timeline {
	head, tail := t.Split(at)
	return head.
		appendTimeline(clip.shifted(at)).
		appendTimeline(tail.shifted(at + clip.Duration()))
}
