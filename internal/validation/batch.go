package validation

import (
	"strings"
	"time"
)

// Batch limits.
const (
	MaxConcurrency = 64
	MaxRetries     = 10
)

// BatchOptions is the part of a batch render request that is checked before
// any job starts.
type BatchOptions struct {
	Concurrency int
	Outputs     []string
	Timeout     time.Duration
	Retries     int
}

// ValidateBatch rejects unusable batch settings with a *RangeError wrapped in
// ErrValidation.
func ValidateBatch(o BatchOptions) error {
	const component = "batch"
	if o.Concurrency < 1 || o.Concurrency > MaxConcurrency {
		return violation(component, "concurrency", o.Concurrency, "Concurrency must be between 1 and %d", MaxConcurrency)
	}
	if len(o.Outputs) == 0 {
		return violation(component, "jobs", 0, "Batch must contain at least one job")
	}
	if o.Timeout < 0 {
		return violation(component, "timeout", o.Timeout, "Timeout must be non-negative")
	}
	if o.Retries < 0 || o.Retries > MaxRetries {
		return violation(component, "retries", o.Retries, "Retries must be between 0 and %d", MaxRetries)
	}
	seen := make(map[string]int, len(o.Outputs))
	for i, out := range o.Outputs {
		out = strings.TrimSpace(out)
		if out == "" {
			return violation(component, "outputs", i, "Job %d output path must not be empty", i+1)
		}
		if prev, ok := seen[out]; ok {
			return violation(component, "outputs", out, "Jobs %d and %d write the same output %s", prev+1, i+1, out)
		}
		seen[out] = i
	}
	return nil
}
