// Package preflight runs the environment checks behind `splicer check` and
// the render command: directory access through access(2) and the ffmpeg
// binaries through the deps package.
package preflight
