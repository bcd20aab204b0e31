package scanner

import "github.com/lingomirror/lingomirror/internal/types"

// Stats counts findings by severity and by rule.
func Stats(findings []types.Finding) types.Stats {
	st := types.Stats{Total: len(findings), ByRule: map[string]int{}}
	for _, f := range findings {
		switch f.Severity {
		case types.SevError:
			st.Errors++
		case types.SevWarning:
			st.Warnings++
		}
		if f.Rule != "" {
			st.ByRule[f.Rule]++
		}
	}
	return st
}
