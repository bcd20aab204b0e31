package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lingomirror/lingomirror/internal/rules"
	"github.com/lingomirror/lingomirror/internal/types"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string       `json:"id"`
	ShortDescription     sarifMessage `json:"shortDescription"`
	DefaultConfiguration sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
	Fixes     []sarifFix   `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int           `json:"startLine"`
	StartColumn int           `json:"startColumn,omitempty"`
	EndColumn   int           `json:"endColumn,omitempty"`
	Snippet     *sarifMessage `json:"snippet,omitempty"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArt           `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion  `json:"deletedRegion"`
	InsertedContent sarifMessage `json:"insertedContent"`
}

func sevToLevel(s types.Severity) string {
	if s == types.SevError {
		return "error"
	}
	return "warning"
}

// WriteSARIF writes findings as SARIF 2.1.0. Every known rule is listed under
// tool.driver.rules so results can reference them by ruleIndex.
func WriteSARIF(w io.Writer, findings []types.Finding, version string) error {
	all := rules.All()
	index := make(map[string]int, len(all))
	driver := sarifDriver{
		Name:           "lingomirror",
		Version:        version,
		InformationURI: "https://github.com/lingomirror/lingomirror",
	}
	for i, r := range all {
		index[r.ID] = i
		driver.Rules = append(driver.Rules, sarifRule{
			ID:                   r.ID,
			ShortDescription:     sarifMessage{Text: fmt.Sprintf("Prefer logical %s over physical %s", r.Fix(r.Example), r.Example)},
			DefaultConfiguration: sarifConfig{Level: sevToLevel(r.Severity)},
		})
	}

	run := sarifRun{Tool: sarifTool{Driver: driver}, Results: []sarifResult{}}
	for _, f := range sorted(findings) {
		region := sarifRegion{StartLine: f.Line, Snippet: &sarifMessage{Text: f.Original}}
		if f.Column > 0 {
			region.StartColumn = f.Column
			region.EndColumn = f.Column + len(f.Original)
		}
		res := sarifResult{
			RuleID:    f.Rule,
			RuleIndex: index[f.Rule],
			Level:     sevToLevel(f.Severity),
			Message:   sarifMessage{Text: fmt.Sprintf("%q breaks right-to-left layouts; use %q", f.Original, f.Suggestion)},
			Locations: []sarifLoc{{PhysicalLocation: sarifPhys{ArtifactLocation: sarifArt{URI: f.Path}, Region: region}}},
		}
		if f.Column > 0 {
			res.Fixes = []sarifFix{{
				Description: sarifMessage{Text: "Replace with " + f.Suggestion},
				ArtifactChanges: []sarifArtifactChange{{
					ArtifactLocation: sarifArt{URI: f.Path},
					Replacements: []sarifReplacement{{
						DeletedRegion:   sarifRegion{StartLine: f.Line, StartColumn: region.StartColumn, EndColumn: region.EndColumn},
						InsertedContent: sarifMessage{Text: f.Suggestion},
					}},
				}},
			}}
		}
		run.Results = append(run.Results, res)
	}
	doc := sarif{Schema: sarifSchema, Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
