package timeline

import (
	"context"
	"fmt"

	"splicer/internal/assets"
	"splicer/internal/composition"
)

// ResolveSources returns a timeline whose layer sources have been mapped
// through r. Each distinct source is resolved once. Layers without a
// source are kept as they are.
func (t Timeline) ResolveSources(ctx context.Context, r assets.Resolver) (Timeline, error) {
	if r == nil {
		return t, nil
	}
	resolved := make(map[string]string)
	out := t
	out.layers = make([]composition.Layer, len(t.layers))
	for i, l := range t.layers {
		src := l.Source()
		if src == "" {
			out.layers[i] = l
			continue
		}
		p, ok := resolved[src]
		if !ok {
			var err error
			p, err = r.Resolve(ctx, src)
			if err != nil {
				return t, fmt.Errorf("resolve layer %d source %q: %w", i, src, err)
			}
			resolved[src] = p
		}
		out.layers[i] = composition.WithSource(l, p)
	}
	return out, nil
}
