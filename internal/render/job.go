package render

import (
	"time"

	"splicer/internal/command"
	"splicer/internal/timeline"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Terminal reports whether no further transitions happen from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// Job is one command in a batch. ID is assigned by the Runner when empty.
type Job struct {
	ID     string
	Output string
	Args   []string
}

// NewJob compiles t into a job writing to output.
func NewJob(t timeline.Timeline, output string, opts command.Options) Job {
	return Job{Output: output, Args: t.ArgsWith(output, opts)}
}

// Command renders the job as a shell command line.
func (j Job) Command() string {
	return command.Render(j.Args)
}

// JobResult is the final state of a job after the batch.
type JobResult struct {
	Job      Job
	Status   Status
	Attempts int
	Result   Result
	Err      error
}

// Summary aggregates a finished batch.
type Summary struct {
	BatchID   string
	Results   []JobResult
	Succeeded int
	Failed    int
	Canceled  int
	Duration  time.Duration
}

// OK reports whether every job succeeded.
func (s Summary) OK() bool {
	return s.Succeeded == len(s.Results)
}

// Progress is reported after each job finishes.
type Progress struct {
	Done  int
	Total int
	Last  JobResult
}
