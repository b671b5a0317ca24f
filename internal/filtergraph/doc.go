// Package filtergraph is a typed representation of an FFmpeg filter graph.
//
// A Graph is an ordered list of stages. Each stage reads labelled pads, runs
// a comma-joined chain of filters and writes new labelled pads. Labels come
// from the graph's allocator so they are unique, and String is the only
// place the textual -filter_complex syntax is produced. Validate checks the
// properties FFmpeg enforces at parse time: every label is defined before it
// is read, defined once, and consumed at most once.
package filtergraph
