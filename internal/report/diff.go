package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/lingomirror/lingomirror/internal/engine"
)

// PrintDiff renders per-line before/after pairs for each fixed file in a
// unified-diff-like layout.
func PrintDiff(w io.Writer, files []engine.FileFix, noColor bool) {
	del := color.New(color.FgRed)
	add := color.New(color.FgGreen)
	hdr := color.New(color.Bold)
	hunk := color.New(color.FgCyan)
	if noColor {
		for _, c := range []*color.Color{del, add, hdr, hunk} {
			c.DisableColor()
		}
	}
	for _, f := range files {
		fmt.Fprintln(w, hdr.Sprintf("--- a/%s", f.Path))
		fmt.Fprintln(w, hdr.Sprintf("+++ b/%s", f.Path))
		for _, c := range f.Changes {
			fmt.Fprintln(w, hunk.Sprintf("@@ -%d +%d @@", c.Line, c.Line))
			fmt.Fprintln(w, del.Sprint("-"+c.Before))
			fmt.Fprintln(w, add.Sprint("+"+c.After))
		}
	}
}

// PrintFixSummary prints a one-line outcome for a fix run.
func PrintFixSummary(w io.Writer, res engine.FixResult, dryRun bool) {
	verb := "Fixed"
	if dryRun {
		verb = "Would fix"
	}
	fmt.Fprintf(w, "%s %d finding(s) in %d file(s); %d file(s) scanned", verb, res.FixesApplied, len(res.Files), res.FilesScanned)
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, "; %d file(s) skipped", len(res.Skipped))
	}
	if res.Remaining > 0 {
		fmt.Fprintf(w, "; %d finding(s) could not be fixed", res.Remaining)
	}
	fmt.Fprintln(w)
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "  skipped %s: %s\n", s.Path, s.Reason)
	}
}
