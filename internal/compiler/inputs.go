package compiler

import "strings"

// Input is one -i entry with the options that precede it.
type Input struct {
	Source  string   `json:"source"`
	Options []string `json:"options,omitempty"`
}

// Args renders the input as command line arguments.
func (in Input) Args() []string {
	out := make([]string, 0, len(in.Options)+2)
	out = append(out, in.Options...)
	return append(out, "-i", in.Source)
}

// registry hands out input indices in first-use order. A source read with
// different input options (a looped still versus a single frame) is a
// different input.
type registry struct {
	list  []Input
	index map[string]int
}

func (r *registry) add(source string, options ...string) int {
	key := strings.Join(options, "\x1f") + "\x00" + source
	if idx, ok := r.index[key]; ok {
		return idx
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	idx := len(r.list)
	r.list = append(r.list, Input{Source: source, Options: append([]string(nil), options...)})
	r.index[key] = idx
	return idx
}
