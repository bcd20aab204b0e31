// Package core provides a small, stable facade over LingoMirror's scanner and
// tree engine for external integrations, such as editor plugins or build
// steps, without exposing internal implementation packages.
//
// Example:
//
//	findings := core.ScanText(`<div class="ml-4 text-left">`)
//	fixed := core.ApplyAllFixes(`<div class="ml-4 text-left">`)
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
