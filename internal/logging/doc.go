// Package logging assembles structured slog loggers for splicer.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// standard field names (component, batch_id, job_id, output) that the render
// runner and CLI attach to their records. Library packages take a
// *slog.Logger and fall back to NewNop when handed nil.
package logging
