// Package presets holds the static lookup tables that turn symbolic render
// settings into concrete numbers: named resolutions, aspect ratios, quality
// levels, codec bundles, per-platform constraints and the codec/container
// compatibility matrix. Everything here is a pure function of its inputs.
package presets
