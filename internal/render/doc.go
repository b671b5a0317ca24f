// Package render executes compiled ffmpeg commands.
//
// An Executor runs one argument vector and reports its exit status and
// output. The Runner drives a fixed pool of workers over a batch of jobs,
// applying the per-job timeout and retry policy, and records every job in
// the SQLite-backed Store. A flock on the store keeps a second runner from
// writing the same history concurrently.
//
// Compilation itself never happens here: jobs carry finished argument
// vectors built by the command package.
package render
