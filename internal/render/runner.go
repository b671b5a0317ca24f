package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"splicer/internal/logging"
	"splicer/internal/validation"
)

// Options configures a Runner.
type Options struct {
	Concurrency int
	// Timeout bounds each attempt; zero means none.
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	// OnProgress is called after every finished job, one call at a time.
	OnProgress func(Progress)
}

// Runner executes batches of jobs on a fixed pool of workers.
type Runner struct {
	exec   Executor
	store  *Store
	logger *slog.Logger
	opts   Options
}

// NewRunner builds a runner. store may be nil to skip persistence.
func NewRunner(exec Executor, store *Store, logger *slog.Logger, opts Options) *Runner {
	return &Runner{
		exec:   exec,
		store:  store,
		logger: logging.NewComponentLogger(logger, "render"),
		opts:   opts,
	}
}

// Run validates the batch options, then executes jobs with
// Options.Concurrency workers. Jobs not started before ctx is canceled are
// reported as canceled. The returned error is non-nil only when the batch
// could not start or ctx ended it; individual job failures are in the
// Summary.
func (r *Runner) Run(ctx context.Context, jobs []Job) (Summary, error) {
	outputs := make([]string, len(jobs))
	for i, job := range jobs {
		outputs[i] = job.Output
	}
	if err := validation.ValidateBatch(validation.BatchOptions{
		Concurrency: r.opts.Concurrency,
		Outputs:     outputs,
		Timeout:     r.opts.Timeout,
		Retries:     r.opts.Retries,
	}); err != nil {
		return Summary{}, err
	}

	batchID := uuid.NewString()
	jobs = append([]Job(nil), jobs...)
	for i := range jobs {
		if jobs[i].ID == "" {
			jobs[i].ID = uuid.NewString()
		}
	}

	if r.store != nil {
		release, err := r.store.Lock()
		if err != nil {
			return Summary{}, err
		}
		defer release()
		// Holding the lock means no other runner owns pending rows.
		if n, err := r.store.ResetStale(ctx); err != nil {
			return Summary{}, fmt.Errorf("reset stale jobs: %w", err)
		} else if n > 0 {
			r.logger.Warn("marked interrupted jobs as canceled",
				slog.Int64("jobs", n),
				slog.String(logging.FieldEventType, "stale_jobs_reset"))
		}
		if err := r.store.CreateBatch(ctx, batchID, jobs); err != nil {
			return Summary{}, fmt.Errorf("record batch: %w", err)
		}
	}

	start := time.Now()
	logger := r.logger.With(slog.String(logging.FieldBatchID, batchID))
	logger.Info("batch started",
		slog.Int("jobs", len(jobs)),
		slog.Int("concurrency", r.opts.Concurrency),
		slog.Int("retries", r.opts.Retries))

	results := make([]JobResult, len(jobs))
	started := make([]bool, len(jobs))
	queue := make(chan int)

	var (
		mu      sync.Mutex
		done    int
		sampler = logging.NewProgressSampler(10)
	)
	finish := func(res JobResult) {
		mu.Lock()
		defer mu.Unlock()
		done++
		if sampler.ShouldLog(done, len(jobs)) {
			logger.Info("batch progress", slog.Int("done", done), slog.Int("total", len(jobs)))
		}
		if r.opts.OnProgress != nil {
			r.opts.OnProgress(Progress{Done: done, Total: len(jobs), Last: res})
		}
	}

	var wg sync.WaitGroup
	for w := 0; w < r.opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results[i] = r.runJob(ctx, batchID, jobs[i])
				finish(results[i])
			}
		}()
	}

dispatch:
	for i := range jobs {
		select {
		case queue <- i:
			started[i] = true
		case <-ctx.Done():
			break dispatch
		}
	}
	close(queue)
	wg.Wait()

	summary := Summary{BatchID: batchID, Results: results, Duration: time.Since(start)}
	for i := range results {
		if !started[i] {
			results[i] = JobResult{Job: jobs[i], Status: StatusCanceled, Err: ctx.Err()}
			r.record(context.WithoutCancel(ctx), jobs[i].ID, results[i])
		}
		switch results[i].Status {
		case StatusSucceeded:
			summary.Succeeded++
		case StatusFailed:
			summary.Failed++
		case StatusCanceled:
			summary.Canceled++
		}
	}

	logger.Info("batch finished",
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
		slog.Int("canceled", summary.Canceled),
		slog.Duration("duration", summary.Duration))
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// runJob executes one job with the retry policy. Validation failures and
// cancellation are not retried.
func (r *Runner) runJob(ctx context.Context, batchID string, job Job) JobResult {
	logger := logging.WithJob(r.logger, batchID, job.ID, job.Output)
	res := JobResult{Job: job, Status: StatusRunning}
	// Bookkeeping writes outlive cancellation so the final state lands.
	recordCtx := context.WithoutCancel(ctx)

	for attempt := 1; attempt <= r.opts.Retries+1; attempt++ {
		res.Attempts = attempt
		res.Status = StatusRunning
		r.record(recordCtx, job.ID, res)

		res.Result, res.Err = r.attempt(ctx, job)
		if res.Err == nil && res.Result.Success {
			res.Status = StatusSucceeded
			logger.Info("job finished",
				slog.Int(logging.FieldAttempt, attempt),
				slog.Duration("duration", res.Result.Duration))
			break
		}
		if res.Err == nil {
			res.Err = fmt.Errorf("exit code %d", res.Result.ExitCode)
		}
		if ctx.Err() != nil {
			res.Status = StatusCanceled
			break
		}
		res.Status = StatusFailed
		if errors.Is(res.Err, validation.ErrValidation) || attempt > r.opts.Retries {
			logger.Error("job failed",
				slog.Int(logging.FieldAttempt, attempt),
				slog.Int("exit_code", res.Result.ExitCode),
				logging.Error(res.Err))
			break
		}
		logger.Warn("job attempt failed; retrying",
			slog.Int(logging.FieldAttempt, attempt),
			slog.String(logging.FieldEventType, "render_retry"),
			logging.Error(res.Err))
		if !sleep(ctx, r.opts.RetryDelay) {
			res.Status = StatusCanceled
			break
		}
	}

	r.record(recordCtx, job.ID, res)
	return res
}

func (r *Runner) attempt(ctx context.Context, job Job) (Result, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}
	return r.exec.Execute(ctx, job.Args)
}

func (r *Runner) record(ctx context.Context, id string, res JobResult) {
	if r.store == nil {
		return
	}
	if err := r.store.UpdateJob(ctx, id, res); err != nil {
		r.logger.Warn("failed to record job state",
			slog.String(logging.FieldJobID, id),
			slog.String(logging.FieldEventType, "store_write_failed"),
			logging.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
