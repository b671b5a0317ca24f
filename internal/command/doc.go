// Package command turns a compiled composition into an FFmpeg argument
// vector and its shell rendering.
//
// Builds are pure: the same compiled result and settings always yield the
// same arguments, byte for byte.
package command
