package core

import (
	"context"

	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/scanner"
	"github.com/lingomirror/lingomirror/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Result = engine.Result
type FixResult = engine.FixResult
type Finding = types.Finding
type Severity = types.Severity
type Stats = types.Stats

const (
	SevError   = types.SevError
	SevWarning = types.SevWarning
)

// ScanText returns the findings for a single text, ordered by line. It never
// fails and ignores inline suppression directives.
func ScanText(text string) []Finding { return scanner.Scan(text) }

// ApplyFix applies one finding's suggestion to text. Stale findings leave the
// text unchanged.
func ApplyFix(text string, f Finding) string { return scanner.ApplyFix(text, f) }

// ApplyAllFixes rescans text and applies every finding from that scan.
func ApplyAllFixes(text string) string { return scanner.ApplyAllFixes(text) }

// ComputeStats totals findings by severity and rule.
func ComputeStats(findings []Finding) Stats { return scanner.Stats(findings) }

// Scan walks cfg.Root and returns findings for every eligible file.
func Scan(ctx context.Context, cfg Config) ([]Finding, error) {
	return engine.Scan(ctx, cfg)
}

// ScanWithStats is Scan plus file counts and timing.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanWithStats(ctx, cfg)
}

// FixFiles rewrites eligible files under cfg.Root in place, or only reports
// the changes when dryRun is set.
func FixFiles(ctx context.Context, cfg Config, dryRun bool) (FixResult, error) {
	return engine.FixFiles(ctx, cfg, dryRun)
}

// RuleIDs returns the list of rule IDs in evaluation order.
func RuleIDs() []string { return engine.RuleIDs() }
