// Package transition turns a pair of adjacent timeline layers and a
// transition description into filter graph stages. Generators write typed
// stages into a filtergraph.Graph from bound input pads; the Engine is a
// small stateful helper for building standalone transition graphs.
package transition
