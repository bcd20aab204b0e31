package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/lingomirror/lingomirror/internal/scanner"
	"github.com/lingomirror/lingomirror/internal/types"
	"github.com/olekukonko/tablewriter"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	FilesCached  int
}

const noFindings = "No physical direction utilities found ✅"

// styles mirrors the palette used across text output.
type styles struct {
	err, warn, rule, file, line, suggestion *color.Color
}

func newStyles(noColor bool) styles {
	s := styles{
		err:        color.New(color.FgRed, color.Bold),
		warn:       color.New(color.FgYellow, color.Bold),
		rule:       color.New(color.FgMagenta),
		file:       color.New(color.FgCyan, color.Bold),
		line:       color.New(color.FgBlue, color.Bold),
		suggestion: color.New(color.FgGreen),
	}
	if noColor {
		for _, c := range []*color.Color{s.err, s.warn, s.rule, s.file, s.line, s.suggestion} {
			c.DisableColor()
		}
	}
	return s
}

func (s styles) severity(sev types.Severity) string {
	if sev == types.SevError {
		return s.err.Sprint(string(sev))
	}
	return s.warn.Sprint(string(sev))
}

func sorted(findings []types.Finding) []types.Finding {
	out := make([]types.Finding, len(findings))
	copy(out, findings)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Location formats path:line[:column].
func Location(f types.Finding) string {
	loc := strconv.Itoa(f.Line)
	if f.Path != "" {
		loc = f.Path + ":" + loc
	}
	if f.Column > 0 {
		loc += ":" + strconv.Itoa(f.Column)
	}
	return loc
}

// PrintTable renders findings as a bordered table followed by the summary.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) error {
	if len(findings) == 0 {
		fmt.Fprintln(w, noFindings)
	} else {
		st := newStyles(opts.NoColor)
		table := tablewriter.NewWriter(w)
		table.Header("Severity", "Rule", "Location", "Found", "Suggestion")
		for _, f := range sorted(findings) {
			if err := table.Append([]string{st.severity(f.Severity), f.Rule, Location(f), f.Original, f.Suggestion}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	printFooter(w, findings, opts)
	return nil
}

// PrintText renders one compact block per finding.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, noFindings)
	} else {
		st := newStyles(opts.NoColor)
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		for _, f := range sorted(findings) {
			fmt.Fprintf(w, "%s: %s\n", st.severity(f.Severity), st.rule.Sprint(f.Rule))
			fmt.Fprintf(w, "%s%s\n", st.line.Sprint(" --> "), st.file.Sprint(Location(f)))
			fmt.Fprintf(w, "     replace %q with %s\n\n", f.Original, st.suggestion.Sprintf("%q", f.Suggestion))
		}
	}
	printFooter(w, findings, opts)
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	s := scanner.Stats(findings)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (errors: %d, warnings: %d)\n", s.Total, s.Errors, s.Warnings)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d", opts.FilesScanned)
		if opts.FilesCached > 0 {
			fmt.Fprintf(w, " (%d unchanged and clean)", opts.FilesCached)
		}
		fmt.Fprintln(w)
	}
}
