package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/lingomirror/lingomirror/internal/scanner"
	"github.com/lingomirror/lingomirror/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "<div className=\"ml-4 text-left\">\n  <p className=\"pr-2\">hi</p>\n</div>\n"

func setupTree(t *testing.T) (string, []types.Finding) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tsx"), []byte(sample), 0644))
	fs := scanner.Scan(sample)
	for i := range fs {
		fs[i].Path = "a.tsx"
	}
	require.Len(t, fs, 3)
	return dir, fs
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestNewModel_Empty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m := NewModel(nil, Options{})
	assert.True(t, m.showEmpty)
	assert.Equal(t, emptyStatus, m.statusMessage)
	assert.Nil(t, m.selectedFinding())
	assert.Nil(t, m.fixSelected())
}

func TestSeverityFilterCycle(t *testing.T) {
	_, fs := setupTree(t)
	m := NewModel(fs, Options{})

	m, _ = update(t, m, key("s"))
	require.NotNil(t, m.filteredFindings)
	for _, f := range m.displayFindings() {
		assert.Equal(t, types.SevError, f.Severity)
	}
	assert.Len(t, m.displayFindings(), 2)

	m, _ = update(t, m, key("s"))
	assert.Len(t, m.displayFindings(), 1)
	assert.Equal(t, "text-left", m.displayFindings()[0].Original)

	m, _ = update(t, m, key("s"))
	assert.Nil(t, m.filteredFindings)
	assert.Len(t, m.displayFindings(), 3)
}

func TestSearchFilter(t *testing.T) {
	_, fs := setupTree(t)
	m := NewModel(fs, Options{})

	m.searchQuery = "padding"
	m.applyFilters()
	require.Len(t, m.displayFindings(), 1)
	assert.Equal(t, "pr-2", m.displayFindings()[0].Original)

	m.searchQuery = "nothing-matches"
	m.applyFilters()
	assert.NotNil(t, m.filteredFindings)
	assert.Empty(t, m.displayFindings())
	assert.True(t, m.showEmpty)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.displayFindings(), 3)
}

func TestFixSelected_WritesAndRefreshes(t *testing.T) {
	dir, fs := setupTree(t)
	m := NewModel(fs, Options{Root: dir})

	_, cmd := update(t, m, key("f"))
	require.NotNil(t, cmd)
	msg := cmd()
	fixed, ok := msg.(fixedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 1, fixed.count)

	b, err := os.ReadFile(filepath.Join(dir, "a.tsx"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `className="ms-4 text-left"`)

	m, _ = update(t, m, fixed)
	assert.Equal(t, 1, m.fixedCount)
	assert.Len(t, m.findings, 2)
	for _, f := range m.findings {
		assert.NotEqual(t, "ml-4", f.Original)
		assert.Equal(t, "a.tsx", f.Path)
	}
}

func TestFixSelected_Stale(t *testing.T) {
	dir, fs := setupTree(t)
	m := NewModel(fs, Options{Root: dir})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tsx"), []byte("<div></div>\n"), 0644))

	msg := m.fixSelected()()
	_, ok := msg.(statusMsg)
	assert.True(t, ok)

	b, err := os.ReadFile(filepath.Join(dir, "a.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "<div></div>\n", string(b))
}

func TestFixFile_AllFindings(t *testing.T) {
	dir, fs := setupTree(t)
	var rescans int
	m := NewModel(fs, Options{Root: dir, Rescan: func() ([]types.Finding, error) {
		rescans++
		return []types.Finding{}, nil
	}})

	msg := m.fixFile()()
	fixed, ok := msg.(fixedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 3, fixed.count)

	b, err := os.ReadFile(filepath.Join(dir, "a.tsx"))
	require.NoError(t, err)
	assert.Equal(t, scanner.ApplyAllFixes(sample), string(b))

	m, cmd := update(t, m, fixed)
	assert.True(t, m.scanning)
	require.NotNil(t, cmd)
	m, _ = update(t, m, m.rescan()())
	assert.Equal(t, 1, rescans)
	assert.False(t, m.scanning)
	assert.True(t, m.showEmpty)
}

func TestFixFile_HonorsDirectives(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	src := "<div class=\"ml-4\"></div> <!-- lingomirror:ignore -->\n<div class=\"mr-4\"></div>\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.html"), []byte(src), 0644))
	fs := []types.Finding{{Path: "b.html", Line: 2, Column: 13, Original: "mr-4", Suggestion: "me-4", Rule: "margin-right", Severity: types.SevError}}
	m := NewModel(fs, Options{Root: dir})

	msg := m.fixFile()()
	fixed, ok := msg.(fixedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 1, fixed.count)

	b, err := os.ReadFile(filepath.Join(dir, "b.html"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `class="ml-4"`)
	assert.Contains(t, string(b), `class="me-4"`)
}

func TestRescanUnavailable(t *testing.T) {
	_, fs := setupTree(t)
	m := NewModel(fs, Options{})
	msg := m.rescan()()
	assert.Equal(t, statusMsg("Rescan not available"), msg)
}

func TestCopyToClipboard(t *testing.T) {
	_, fs := setupTree(t)
	var got string
	orig := writeClipboard
	writeClipboard = func(s string) error { got = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	m := NewModel(fs, Options{})
	_, cmd := update(t, m, key("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, "ms-4", got)
	assert.Equal(t, statusMsg("Copied: ms-4"), cmd())

	_, cmd = update(t, m, key("c"))
	require.NotNil(t, cmd)
	assert.Contains(t, got, "a.tsx:1:17: margin-left")
	assert.Contains(t, got, `Replace "ml-4" with "ms-4"`)
}

func TestAddToBaseline(t *testing.T) {
	dir, fs := setupTree(t)
	m := NewModel(fs, Options{Root: dir})

	m, cmd := update(t, m, key("b"))
	require.NotNil(t, cmd)
	assert.Equal(t, statusMsg("Added finding to baseline"), cmd())
	assert.True(t, m.opts.Baseline.Contains(fs[0]))

	base, err := report.LoadBaseline(filepath.Join(dir, report.DefaultBaselinePath))
	require.NoError(t, err)
	assert.True(t, base.Contains(fs[0]))
	assert.False(t, base.Contains(fs[1]))
}

func TestContextLines(t *testing.T) {
	_, fs := setupTree(t)
	m := NewModel(fs, Options{})
	require.Equal(t, 3, m.contextLines)

	m, _ = update(t, m, key("+"))
	assert.Equal(t, 5, m.contextLines)
	assert.Equal(t, 5, LoadPrefs().ContextLines)

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, key("-"))
	}
	assert.Equal(t, 0, m.contextLines)
}

func TestNavigation(t *testing.T) {
	_, fs := setupTree(t)
	m := NewModel(fs, Options{})

	m, _ = update(t, m, key("j"))
	assert.Equal(t, "text-left", m.selectedFinding().Original)
	m, _ = update(t, m, key("G"))
	assert.Equal(t, "pr-2", m.selectedFinding().Original)
	m, _ = update(t, m, key("g"))
	assert.Equal(t, "ml-4", m.selectedFinding().Original)
}

func TestQuit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m := NewModel(nil, Options{})
	m, cmd := update(t, m, key("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestEditorArgs(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"code", []string{"-g", "/x/a.tsx:4:9"}},
		{"/usr/bin/nvim", []string{"+call cursor(4,9)", "/x/a.tsx"}},
		{"nano", []string{"+4,9", "/x/a.tsx"}},
		{"emacs", []string{"+4:9", "/x/a.tsx"}},
		{"zed", []string{"/x/a.tsx:4:9"}},
		{"ed", []string{"+4", "/x/a.tsx"}},
	}
	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			assert.Equal(t, tt.want, editorArgs(tt.editor, "/x/a.tsx", 4, 9))
		})
	}
}

func TestIgnoreFile(t *testing.T) {
	dir, fs := setupTree(t)
	m := NewModel(fs, Options{Root: dir})

	_, cmd := update(t, m, key("i"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, ignoredMsg("a.tsx"), msg)

	b, err := os.ReadFile(filepath.Join(dir, ".lingomirrorignore"))
	require.NoError(t, err)
	assert.Equal(t, "a.tsx\n", string(b))

	m, _ = update(t, m, msg)
	assert.Empty(t, m.findings)
	assert.True(t, m.showEmpty)
}
