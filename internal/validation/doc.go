// Package validation holds the strict option checks used by ducking and
// batch rendering, the shared error markers, and the lenient pre-flight
// report that annotates a composition with warnings without rejecting it.
package validation
