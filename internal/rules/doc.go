// Package rules declares the fixed, ordered table of physical-to-logical
// Tailwind utility mappings. Each rule pairs a line pattern with a prefix
// substitution and a severity; the declaration order is the order findings
// are reported in for a single line.
package rules
