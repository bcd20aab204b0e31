package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lingomirror/lingomirror/internal/types"
)

// Rule maps one physical utility family to its logical counterpart.
type Rule struct {
	ID        string
	Pattern   *regexp.Regexp
	Transform func(match string) string
	Severity  types.Severity
	// Example is a sample physical token, used by listings and docs.
	Example string
}

// Fix returns the logical replacement for a token matched by this rule.
func (r Rule) Fix(match string) string {
	if r.Transform == nil {
		return match
	}
	return r.Transform(match)
}

// FindAll returns the [start, end) byte spans of every whole-token match of
// the rule on line, left to right and non-overlapping. Candidates the pattern
// finds inside a longer class name are dropped.
func (r Rule) FindAll(line string) [][2]int {
	var out [][2]int
	for _, loc := range r.Pattern.FindAllStringIndex(line, -1) {
		if !tokenStarts(line, loc[0]) || !tokenEnds(line, loc[1]) {
			continue
		}
		out = append(out, [2]int{loc[0], loc[1]})
	}
	return out
}

// swapPrefix builds a transform that replaces the leading physical segment
// and keeps whatever size or variant suffix follows it.
func swapPrefix(physical, logical string) func(string) string {
	return func(match string) string {
		if !strings.HasPrefix(match, physical) {
			return match
		}
		return logical + match[len(physical):]
	}
}

func newRule(id, physical, logical, suffix string, sev types.Severity, example string) Rule {
	return Rule{
		ID:        id,
		Pattern:   regexp.MustCompile(`\b` + regexp.QuoteMeta(physical) + suffix),
		Transform: swapPrefix(physical, logical),
		Severity:  sev,
		Example:   example,
	}
}

var all = []Rule{
	MarginLeft, MarginRight, PaddingLeft, PaddingRight,
	TextLeft, TextRight,
	RoundedLeft, RoundedRight,
	InsetLeft, InsetRight,
	BorderLeft, BorderRight,
	ScrollMarginLeft, ScrollMarginRight, ScrollPaddingLeft, ScrollPaddingRight,
}

// All returns the rule table in declaration order. The slice is a copy; the
// rules themselves are immutable.
func All() []Rule {
	out := make([]Rule, len(all))
	copy(out, all)
	return out
}

func IDs() []string {
	ids := make([]string, len(all))
	for i, r := range all {
		ids[i] = r.ID
	}
	return ids
}

func ByID(id string) (Rule, bool) {
	for _, r := range all {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Select narrows the table using comma-separated enable and disable lists.
// An empty enable list keeps every rule. Declaration order is preserved and
// unknown IDs are reported.
func Select(enable, disable string) ([]Rule, error) {
	allowed, err := parseIDs(enable)
	if err != nil {
		return nil, err
	}
	blocked, err := parseIDs(disable)
	if err != nil {
		return nil, err
	}
	var out []Rule
	for _, r := range all {
		if len(allowed) > 0 && !allowed[r.ID] {
			continue
		}
		if blocked[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func parseIDs(list string) (map[string]bool, error) {
	ids := map[string]bool{}
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := ByID(id); !ok {
			return nil, fmt.Errorf("unknown rule id %q (available: %s)", id, strings.Join(IDs(), ", "))
		}
		ids[id] = true
	}
	return ids, nil
}
