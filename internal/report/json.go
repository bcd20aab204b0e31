package report

import (
	"encoding/json"
	"io"

	"github.com/lingomirror/lingomirror/internal/scanner"
	"github.com/lingomirror/lingomirror/internal/types"
)

// Envelope is the JSON report shape.
type Envelope struct {
	Findings     []types.Finding `json:"findings"`
	Stats        types.Stats     `json:"stats"`
	FilesScanned int             `json:"files_scanned,omitempty"`
	DurationMS   int64           `json:"duration_ms,omitempty"`
}

// WriteJSON writes findings and their stats as indented JSON.
func WriteJSON(w io.Writer, findings []types.Finding, opts PrintOptions) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	env := Envelope{
		Findings:     sorted(findings),
		Stats:        scanner.Stats(findings),
		FilesScanned: opts.FilesScanned,
		DurationMS:   opts.Duration.Milliseconds(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
