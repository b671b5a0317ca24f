// Package composition defines the value types that describe a video
// composition: typed layers placed in time and space and the global render
// settings that apply to the whole output.
//
// Every type here is a plain value. Constructors never fail and never clamp:
// empty sources, negative or infinite times and out-of-range style values are
// kept exactly as given and flow through to filter generation. Range checks
// that must reject input live in the validation package instead.
package composition
