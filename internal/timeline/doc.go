// Package timeline is the public builder for compositions.
//
// A Timeline is a persistent value: AddVideo, SetAspectRatio and the other
// methods return a new Timeline and never modify the receiver. Command
// compiles the current state into a single FFmpeg command line; it is a
// pure function of the timeline and never fails. The strict exception is
// WithAudioDucking, which rejects out-of-range options immediately.
//
// RemoveSegment, TrimTo, Split, InsertAt and Concatenate edit a timeline
// in time, cutting and shifting layers and advancing source in-points.
package timeline
