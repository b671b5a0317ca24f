// Package compiler turns a list of layers and global settings into a
// filter graph, the ordered input list it reads, and the pads to map.
//
// Compilation never fails. Values that FFmpeg will reject are written into
// the graph as given, so problems surface when the command runs.
package compiler
