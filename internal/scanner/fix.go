package scanner

import (
	"sort"
	"strings"

	"github.com/lingomirror/lingomirror/internal/types"
)

// ApplyFix replaces one occurrence of f.Original with f.Suggestion on line
// f.Line and returns the new text. When f.Column points at the original the
// replacement happens there; otherwise the first occurrence on the line is
// used. A finding whose line no longer exists leaves text unchanged: stale
// findings against edited text are expected and are not errors.
func ApplyFix(text string, f types.Finding) string {
	lines := strings.Split(text, "\n")
	if !applyToLines(lines, f) {
		return text
	}
	return strings.Join(lines, "\n")
}

// ApplyFixes applies findings taken from one scan of text. They are applied
// from the last line upward and, within a line, from the rightmost column
// leftward, so spans not yet rewritten keep their offsets even when a
// replacement changes the line's length. Line count never changes.
func ApplyFixes(text string, findings []types.Finding) string {
	if len(findings) == 0 {
		return text
	}
	ordered := make([]types.Finding, len(findings))
	copy(ordered, findings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Line != ordered[j].Line {
			return ordered[i].Line > ordered[j].Line
		}
		return ordered[i].Column > ordered[j].Column
	})

	lines := strings.Split(text, "\n")
	changed := false
	for _, f := range ordered {
		if applyToLines(lines, f) {
			changed = true
		}
	}
	if !changed {
		return text
	}
	return strings.Join(lines, "\n")
}

func applyToLines(lines []string, f types.Finding) bool {
	idx := f.Line - 1
	if idx < 0 || idx >= len(lines) || f.Original == "" {
		return false
	}
	next := replaceOnLine(lines[idx], f)
	if next == lines[idx] {
		return false
	}
	lines[idx] = next
	return true
}

func replaceOnLine(line string, f types.Finding) string {
	if f.Column > 0 {
		start := f.Column - 1
		end := start + len(f.Original)
		if end <= len(line) && line[start:end] == f.Original {
			return line[:start] + f.Suggestion + line[end:]
		}
	}
	return strings.Replace(line, f.Original, f.Suggestion, 1)
}
