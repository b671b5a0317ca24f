// Package config loads, normalizes, and validates splicer configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts),
// reads TOML files, and honours the SPLICER_FFMPEG and SPLICER_FFPROBE
// environment overrides. The Config type collects the knobs the CLI and the
// render runner need: output and cache directories, the ffmpeg invocation,
// batch limits, composition defaults, and logging.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
