// Package engine runs the line scanner over a directory tree. It walks target
// files, applies inline suppression directives, fans work across a bounded
// worker pool, and writes fixes back to disk. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
