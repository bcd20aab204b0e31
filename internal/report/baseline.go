package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lingomirror/lingomirror/internal/types"
)

// DefaultBaselinePath is used when no baseline path is configured.
const DefaultBaselinePath = "lingomirror.baseline.json"

// Baseline is a set of accepted findings. Keys omit line numbers so edits
// elsewhere in a file do not resurrect accepted findings.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, fmt.Errorf("decode baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[key(f)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// FilterNewFindings returns findings absent from base, preserving order.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	out := []types.Finding{}
	for _, f := range findings {
		if !base.Items[key(f)] {
			out = append(out, f)
		}
	}
	return out
}

func key(f types.Finding) string {
	return f.Path + "|" + f.Rule + "|" + f.Original
}

// ParseFailOn validates a --fail-on value.
func ParseFailOn(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return "error", nil
	case "warning":
		return "warning", nil
	case "none":
		return "none", nil
	}
	return "", fmt.Errorf("invalid --fail-on %q (want error, warning or none)", s)
}

// ShouldFail reports whether any finding is at or above the failOn threshold.
func ShouldFail(findings []types.Finding, failOn string) bool {
	level := map[types.Severity]int{types.SevWarning: 1, types.SevError: 2}
	var th int
	switch failOn {
	case "none":
		return false
	case "warning":
		th = 1
	default:
		th = 2
	}
	for _, f := range findings {
		if level[f.Severity] >= th {
			return true
		}
	}
	return false
}

// AddToBaseline merges findings into the baseline stored at path, creating the
// file if needed.
func AddToBaseline(path string, findings ...types.Finding) error {
	base, err := LoadBaseline(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, f := range findings {
		base.Items[key(f)] = true
	}
	buf, err := json.MarshalIndent(base, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// Contains reports whether f is accepted by the baseline.
func (b Baseline) Contains(f types.Finding) bool {
	return b.Items[key(f)]
}

// Add marks f as accepted.
func (b *Baseline) Add(f types.Finding) {
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	b.Items[key(f)] = true
}
