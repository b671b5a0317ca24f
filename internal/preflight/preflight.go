package preflight

import (
	"context"

	"splicer/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the configured output and state directories and the ffmpeg
// binaries. The cache directory is checked only when it exists, since
// nothing creates it until an asset is stored.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
	}
	if dirExists(cfg.Paths.CacheDir) {
		results = append(results, CheckDirectoryAccess("Asset cache", cfg.Paths.CacheDir))
	}
	for _, status := range CheckSystemDeps(ctx, cfg) {
		r := Result{Name: status.Name, Passed: status.Available || status.Optional, Detail: status.Detail}
		if status.Available {
			r.Detail = status.Path
			if status.Version != "" {
				r.Detail += " (" + status.Version + ")"
			}
		}
		results = append(results, r)
	}
	return results
}

// Failed returns the checks that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
