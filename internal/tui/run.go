package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lingomirror/lingomirror/internal/types"
)

// Run starts the interactive review session.
func Run(findings []types.Finding, opts Options) error {
	m := NewModel(findings, opts)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
