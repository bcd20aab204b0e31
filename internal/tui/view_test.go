package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestView_BeforeResize(t *testing.T) {
	_, fs := setupTree(t)
	m := NewModel(fs, Options{})
	assert.Equal(t, "Initializing...", m.View())
}

func TestView_ListsFindings(t *testing.T) {
	dir, fs := setupTree(t)
	m := NewModel(fs, Options{Root: dir})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})

	out := m.View()
	assert.Contains(t, out, "Total: 3")
	assert.Contains(t, out, "Errors:")
	assert.Contains(t, out, "margin-left")
	assert.Contains(t, out, "Finding Details")
}

func TestView_Help(t *testing.T) {
	_, fs := setupTree(t)
	m := NewModel(fs, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, key("?"))
	assert.Contains(t, m.View(), "fix selected finding")

	m, _ = update(t, m, key("x"))
	assert.False(t, m.showHelp)
}

func TestView_NoFindings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m := NewModel(nil, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	out := m.View()
	assert.Contains(t, out, "No physical direction utilities")
	assert.Contains(t, out, "Nothing to review.")
}

func TestView_Scanning(t *testing.T) {
	_, fs := setupTree(t)
	m := NewModel(fs, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m.scanning = true
	assert.Contains(t, m.View(), "Rescanning...")
}
