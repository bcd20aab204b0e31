// Package report renders findings as tables, text, JSON and SARIF, and manages
// baselines of accepted findings.
package report
