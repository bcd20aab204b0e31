package scanner

import (
	"sort"
	"strings"

	"github.com/lingomirror/lingomirror/internal/rules"
	"github.com/lingomirror/lingomirror/internal/types"
)

// Scanner evaluates a fixed rule set. The zero value is not usable; use New.
type Scanner struct {
	rules []rules.Rule
}

// New returns a Scanner over rs, or over the full rule table when rs is empty.
func New(rs ...rules.Rule) *Scanner {
	if len(rs) == 0 {
		rs = rules.All()
	}
	cp := make([]rules.Rule, len(rs))
	copy(cp, rs)
	return &Scanner{rules: cp}
}

var defaultScanner = New()

// Rules returns the rules this scanner evaluates, in evaluation order.
func (s *Scanner) Rules() []rules.Rule {
	out := make([]rules.Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

type lineKey struct {
	line     int
	original string
}

// Scan returns the findings for text sorted by line. Within a line, findings
// keep rule declaration order, then match order. A second match with the same
// (line, original) pair is dropped, so a token repeated on one line yields a
// single finding.
func (s *Scanner) Scan(text string) []types.Finding {
	out := []types.Finding{}
	seen := make(map[lineKey]bool)
	for i, line := range strings.Split(text, "\n") {
		n := i + 1
		for _, r := range s.rules {
			for _, span := range r.FindAll(line) {
				original := line[span[0]:span[1]]
				k := lineKey{line: n, original: original}
				if seen[k] {
					continue
				}
				seen[k] = true
				out = append(out, types.Finding{
					Line:       n,
					Column:     span[0] + 1,
					Original:   original,
					Suggestion: r.Fix(original),
					Rule:       r.ID,
					Severity:   r.Severity,
				})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// ApplyAllFixes rescans text and applies every resulting finding from that
// single snapshot. Findings held by the caller are never consulted.
func (s *Scanner) ApplyAllFixes(text string) string {
	return ApplyFixes(text, s.Scan(text))
}

// FixUntilStable applies all fixes repeatedly until a scan comes back empty,
// a round changes nothing, or maxRounds is reached. It resolves tokens that
// repeat on one line, which a single ApplyAllFixes round leaves behind. The
// number of rounds that changed the text is returned.
func (s *Scanner) FixUntilStable(text string, maxRounds int) (string, int) {
	rounds := 0
	for rounds < maxRounds {
		next := s.ApplyAllFixes(text)
		if next == text {
			break
		}
		text = next
		rounds++
	}
	return text, rounds
}

// Scan runs the full rule table over text.
func Scan(text string) []types.Finding {
	return defaultScanner.Scan(text)
}

// ApplyAllFixes rescans text with the full rule table and fixes everything found.
func ApplyAllFixes(text string) string {
	return defaultScanner.ApplyAllFixes(text)
}

// FixUntilStable is Scanner.FixUntilStable over the full rule table.
func FixUntilStable(text string, maxRounds int) (string, int) {
	return defaultScanner.FixUntilStable(text, maxRounds)
}
