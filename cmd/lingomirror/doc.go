// Package lingomirror provides the command-line interface for LingoMirror.
// It configures subcommands (scan, fix, check, review, baseline, etc.),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/lingomirror/lingomirror/cmd/lingomirror"
//	func main() { lingomirror.Execute() }
package lingomirror
