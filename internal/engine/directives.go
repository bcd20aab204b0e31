package engine

import (
	"strings"

	"github.com/lingomirror/lingomirror/internal/types"
)

const directive = "lingomirror:ignore"

// HasIgnoreFileDirective reports whether text opts out of scanning entirely.
func HasIgnoreFileDirective(text string) bool {
	return strings.Contains(text, directive+"-file")
}

// suppression is the set of rule IDs a directive applies to; nil means all.
type suppression map[string]bool

func (s suppression) covers(rule string) bool {
	return s == nil || s[rule]
}

// FilterSuppressed drops findings covered by inline directives:
//
//	lingomirror:ignore [rule,...]             the directive's own line
//	lingomirror:ignore-next-line [rule,...]   the following line
//	lingomirror:ignore-start / ignore-end     every line in between, inclusive
//
// Directives may sit inside any comment syntax. The input slice is not
// modified.
func FilterSuppressed(text string, fs []types.Finding) []types.Finding {
	if len(fs) == 0 || !strings.Contains(text, directive) {
		return fs
	}
	byLine := suppressedLines(text)
	out := make([]types.Finding, 0, len(fs))
	for _, f := range fs {
		if sup, ok := byLine[f.Line]; ok && sup.covers(f.Rule) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func suppressedLines(text string) map[int]suppression {
	lines := strings.Split(text, "\n")
	out := map[int]suppression{}
	add := func(line int, s suppression) {
		prev, ok := out[line]
		switch {
		case !ok:
			out[line] = s
		case prev == nil || s == nil:
			out[line] = nil
		default:
			merged := suppression{}
			for id := range prev {
				merged[id] = true
			}
			for id := range s {
				merged[id] = true
			}
			out[line] = merged
		}
	}

	var region suppression
	inRegion := false
	for i, line := range lines {
		n := i + 1
		if inRegion {
			add(n, region)
		}
		idx := strings.Index(line, directive)
		for idx >= 0 {
			kind, rest := parseDirective(line[idx+len(directive):])
			switch kind {
			case "":
				add(n, ruleList(rest))
			case "-next-line":
				add(n+1, ruleList(rest))
			case "-start":
				inRegion = true
				region = ruleList(rest)
				add(n, region)
			case "-end":
				inRegion = false
			}
			next := strings.Index(line[idx+len(directive):], directive)
			if next < 0 {
				break
			}
			idx += len(directive) + next
		}
	}
	return out
}

// parseDirective splits the text following "lingomirror:ignore" into its
// variant suffix and the remainder.
func parseDirective(s string) (string, string) {
	for _, k := range []string{"-next-line", "-start", "-end", "-file"} {
		if strings.HasPrefix(s, k) {
			return k, s[len(k):]
		}
	}
	if s != "" && (isWordByteASCII(s[0]) || s[0] == '-') {
		return "unknown", ""
	}
	return "", s
}

// ruleList reads an optional comma or space separated list of rule IDs,
// stopping at a comment terminator.
func ruleList(s string) suppression {
	for _, end := range []string{"-->", "*/", "}", "\"", "'"} {
		if i := strings.Index(s, end); i >= 0 {
			s = s[:i]
		}
	}
	if i := strings.Index(s, directive); i >= 0 {
		s = s[:i]
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\r' })
	if len(fields) == 0 {
		return nil
	}
	out := suppression{}
	for _, f := range fields {
		out[f] = true
	}
	return out
}

func isWordByteASCII(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
