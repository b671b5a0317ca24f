// Package main hosts the splicer CLI.
//
// Commands load a project file, compile it to an FFmpeg invocation, and
// either print the command or run it through the batch runner. Config
// resolution and logger setup live in commandContext so each subcommand
// only deals with its own flags.
package main
