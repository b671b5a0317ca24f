package logging

import (
	"context"
	"log/slog"
)

// Standard structured logging keys.
const (
	FieldComponent = "component"
	FieldBatchID   = "batch_id"
	FieldJobID     = "job_id"
	FieldOutput    = "output"
	FieldAttempt   = "attempt"
	FieldEventType = "event_type"
)

// Error returns the standard attribute for err.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags logger with a component attribute. A nil logger
// becomes a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// WithJob tags logger with the batch and job a record belongs to.
func WithJob(logger *slog.Logger, batchID, jobID, output string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(
		slog.String(FieldBatchID, batchID),
		slog.String(FieldJobID, jobID),
		slog.String(FieldOutput, output),
	)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
