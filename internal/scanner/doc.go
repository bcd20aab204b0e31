// Package scanner is the detection-and-fix core. It scans text line by line
// against the rule table, suppresses duplicate findings, orders results by
// line, and rewrites text from findings without touching line structure.
//
// Every function here is pure: text is taken by value and new text is
// returned, so the package is safe for concurrent use.
package scanner
