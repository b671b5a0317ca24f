package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"splicer/internal/logging"
	"splicer/internal/validation"
)

// Result is the outcome of one execution.
type Result struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Executor runs an argument vector whose first element is the binary.
// A non-nil error always accompanies Success == false.
type Executor interface {
	Execute(ctx context.Context, args []string) (Result, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, args []string) (Result, error)

func (f ExecutorFunc) Execute(ctx context.Context, args []string) (Result, error) {
	return f(ctx, args)
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct {
	// Timeout bounds each execution; zero leaves it to ctx.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Execute runs args and captures both output streams. Failures wrap
// validation.ErrTimeout when the deadline passed and
// validation.ErrExternalTool otherwise.
func (e ExecExecutor) Execute(ctx context.Context, args []string) (Result, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return Result{ExitCode: -1}, validation.Wrap(validation.ErrValidation, "render", "execute", "empty command", nil)
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	logger := logging.NewComponentLogger(e.Logger, "executor")
	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * time.Second

	logger.Debug("starting command", slog.String("binary", args[0]), slog.Int("args", len(args)-1))
	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err == nil {
		res.Success = true
		return res, nil
	}

	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return res, validation.Wrap(validation.ErrTimeout, "render", "execute",
			fmt.Sprintf("%s exceeded its deadline after %s", args[0], res.Duration.Round(time.Millisecond)), err)
	case ctx.Err() != nil:
		return res, fmt.Errorf("%s canceled: %w", args[0], ctx.Err())
	}
	return res, validation.Wrap(validation.ErrExternalTool, "render", "execute", StderrTail(res.Stderr, 3), err)
}

// StderrTail returns the last n non-empty lines of stderr, joined by "; ".
// ffmpeg prints the reason for a failure at the end.
func StderrTail(stderr string, n int) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	out := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(out) < n; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			out = append(out, line)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return strings.Join(out, "; ")
}
