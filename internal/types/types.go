package types

// Severity classifies how badly a physical utility breaks right-to-left layout.
type Severity string

const (
	SevError   Severity = "error"
	SevWarning Severity = "warning"
)

// Finding is one physical-property token detected on a line, together with
// the logical replacement proposed for it. Line and Column are 1-based;
// Column is 0 when unknown (for example, a finding built by hand).
type Finding struct {
	Path       string   `json:"path,omitempty"`
	Line       int      `json:"line"`
	Column     int      `json:"column,omitempty"`
	Original   string   `json:"original"`
	Suggestion string   `json:"suggestion"`
	Rule       string   `json:"rule,omitempty"`
	Severity   Severity `json:"severity"`
}

// Stats aggregates a finding list for display.
type Stats struct {
	Total    int            `json:"total"`
	Errors   int            `json:"errors"`
	Warnings int            `json:"warnings"`
	ByRule   map[string]int `json:"by_rule,omitempty"`
}
