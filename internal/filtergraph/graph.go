package filtergraph

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pad is a link label without brackets: either an input stream specifier
// ("0:v", "2:a?") or a label produced by a stage ("v_3").
type Pad string

// Stream returns the pad for stream kind ("v" or "a") of input index.
func Stream(input int, kind string) Pad {
	return Pad(strconv.Itoa(input) + ":" + kind)
}

var streamPattern = regexp.MustCompile(`^\d+:[vas](:\d+)?\??$`)

// IsStream reports whether p refers to a demuxed input stream.
func (p Pad) IsStream() bool {
	return streamPattern.MatchString(string(p))
}

// String renders the bracketed form used inside the graph.
func (p Pad) String() string {
	return "[" + string(p) + "]"
}

// MapArg renders the value for -map: labels are bracketed, input streams
// are not.
func (p Pad) MapArg() string {
	if p.IsStream() {
		return string(p)
	}
	return p.String()
}

// Stage is one filter chain: inputs, comma-joined filters, outputs.
type Stage struct {
	Inputs  []Pad
	Chain   []Filter
	Outputs []Pad
}

// String renders the stage in filter_complex syntax.
func (s Stage) String() string {
	var b strings.Builder
	for _, in := range s.Inputs {
		b.WriteString(in.String())
	}
	for i, f := range s.Chain {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.String())
	}
	for _, out := range s.Outputs {
		b.WriteString(out.String())
	}
	return b.String()
}

// Graph accumulates stages in dependency order.
type Graph struct {
	stages   []Stage
	counters map[string]int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{counters: make(map[string]int)}
}

// Label allocates a fresh label of the form prefix_N.
func (g *Graph) Label(prefix string) Pad {
	if g.counters == nil {
		g.counters = make(map[string]int)
	}
	n := g.counters[prefix]
	g.counters[prefix] = n + 1
	return Pad(prefix + "_" + strconv.Itoa(n))
}

// Add appends a stage.
func (g *Graph) Add(inputs []Pad, outputs []Pad, chain ...Filter) {
	g.stages = append(g.stages, Stage{
		Inputs:  append([]Pad(nil), inputs...),
		Chain:   append([]Filter(nil), chain...),
		Outputs: append([]Pad(nil), outputs...),
	})
}

// Chain appends a single-input, single-output stage and returns out.
func (g *Graph) Chain(in Pad, out Pad, chain ...Filter) Pad {
	g.Add([]Pad{in}, []Pad{out}, chain...)
	return out
}

// Stages returns a copy of the stage list.
func (g *Graph) Stages() []Stage {
	out := make([]Stage, len(g.stages))
	copy(out, g.stages)
	return out
}

// Len returns the number of stages.
func (g *Graph) Len() int {
	return len(g.stages)
}

// Empty reports whether the graph has no stages.
func (g *Graph) Empty() bool {
	return g == nil || len(g.stages) == 0
}

// String serializes the graph, one stage per ';'-separated segment.
func (g *Graph) String() string {
	if g.Empty() {
		return ""
	}
	parts := make([]string, len(g.stages))
	for i, s := range g.stages {
		parts[i] = s.String()
	}
	return strings.Join(parts, ";")
}

// Validate checks label resolution. inputs is the number of -i inputs the
// graph may reference; pass a negative value to skip the range check.
func (g *Graph) Validate(inputs int) error {
	if g.Empty() {
		return nil
	}
	defined := make(map[Pad]int)
	consumed := make(map[Pad]int)
	var errs []error
	for i, s := range g.stages {
		if len(s.Chain) == 0 {
			errs = append(errs, fmt.Errorf("stage %d: empty filter chain", i))
		}
		for _, in := range s.Inputs {
			if in.IsStream() {
				if inputs >= 0 {
					idx, _ := strconv.Atoi(strings.SplitN(string(in), ":", 2)[0])
					if idx >= inputs {
						errs = append(errs, fmt.Errorf("stage %d: %s references missing input %d", i, in, idx))
					}
				}
				continue
			}
			if _, ok := defined[in]; !ok {
				errs = append(errs, fmt.Errorf("stage %d: %s is read before it is defined", i, in))
				continue
			}
			if prev, ok := consumed[in]; ok {
				errs = append(errs, fmt.Errorf("stage %d: %s already consumed by stage %d", i, in, prev))
				continue
			}
			consumed[in] = i
		}
		for _, out := range s.Outputs {
			if out.IsStream() {
				errs = append(errs, fmt.Errorf("stage %d: output %s uses stream syntax", i, out))
				continue
			}
			if prev, ok := defined[out]; ok {
				errs = append(errs, fmt.Errorf("stage %d: %s already defined by stage %d", i, out, prev))
				continue
			}
			defined[out] = i
		}
	}
	return errors.Join(errs...)
}

// Unconsumed returns labels that are defined but never read, in definition
// order. These are the graph's outputs.
func (g *Graph) Unconsumed() []Pad {
	if g.Empty() {
		return nil
	}
	consumed := make(map[Pad]struct{})
	for _, s := range g.stages {
		for _, in := range s.Inputs {
			consumed[in] = struct{}{}
		}
	}
	var out []Pad
	for _, s := range g.stages {
		for _, p := range s.Outputs {
			if _, ok := consumed[p]; !ok {
				out = append(out, p)
			}
		}
	}
	return out
}
