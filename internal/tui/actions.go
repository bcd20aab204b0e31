package tui

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/files"
	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/lingomirror/lingomirror/internal/scanner"
)

// writeClipboard is swapped in tests; headless CI has no clipboard.
var writeClipboard = clipboard.WriteAll

func rewrite(path string, fn func(string) string) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	before := string(b)
	after := fn(before)
	if after == before {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, []byte(after), info.Mode().Perm())
}

// fixSelected applies the selected finding's suggestion in place.
func (m Model) fixSelected() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return nil
	}
	path := m.absPath(*f)
	return func() tea.Msg {
		changed, err := rewrite(path, func(text string) string { return scanner.ApplyFix(text, *f) })
		if err != nil {
			return statusMsg(fmt.Sprintf("Fix failed: %v", err))
		}
		if !changed {
			return statusMsg("Finding is stale; press r to rescan")
		}
		return fixedMsg{count: 1, path: f.Path}
	}
}

// fixFile fixes every finding in the selected finding's file, honoring
// inline suppression directives.
func (m Model) fixFile() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return nil
	}
	path := m.absPath(*f)
	sc := m.opts.Scanner
	return func() tea.Msg {
		n := 0
		changed, err := rewrite(path, func(text string) string {
			fixed, applied, _ := engine.FixText(sc, text)
			n = len(applied)
			return fixed
		})
		if err != nil {
			return statusMsg(fmt.Sprintf("Fix failed: %v", err))
		}
		if !changed {
			return statusMsg("Nothing to fix in " + f.Path)
		}
		return fixedMsg{count: n, path: f.Path}
	}
}

func (m Model) copyFindingToClipboard() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return func() tea.Msg { return statusMsg("No finding selected") }
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", report.Location(*f), f.Rule)
	fmt.Fprintf(&sb, "Severity: %s\n", f.Severity)
	fmt.Fprintf(&sb, "Replace %q with %q\n", f.Original, f.Suggestion)
	if err := writeClipboard(sb.String()); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Clipboard error: %v", err)) }
	}
	return func() tea.Msg { return statusMsg("Copied finding details to clipboard") }
}

func (m Model) copySuggestionToClipboard() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return func() tea.Msg { return statusMsg("No finding selected") }
	}
	if err := writeClipboard(f.Suggestion); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Clipboard error: %v", err)) }
	}
	return func() tea.Msg { return statusMsg("Copied: " + f.Suggestion) }
}

func (m *Model) addToBaseline() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return nil
	}
	path := m.opts.BaselinePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.opts.Root, path)
	}
	if err := report.AddToBaseline(path, *f); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Error writing baseline: %v", err)) }
	}
	m.opts.Baseline.Add(*f)
	cursor := m.table.Cursor()
	m.rebuildTableRows()
	m.table.SetCursor(cursor)
	return func() tea.Msg { return statusMsg("Added finding to baseline") }
}

// ignoreFile appends the selected finding's path to the ignore file so later
// scans skip it.
func (m Model) ignoreFile() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return nil
	}
	path := filepath.Join(m.opts.Root, engine.IgnoreFile)
	rel := f.Path
	return func() tea.Msg {
		if _, err := files.AppendIgnore(path, rel); err != nil {
			return statusMsg(fmt.Sprintf("Error updating %s: %v", engine.IgnoreFile, err))
		}
		return ignoredMsg(rel)
	}
}

func (m Model) openEditor() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return nil
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}
	c := exec.Command(editor, editorArgs(editor, m.absPath(*f), f.Line, f.Column)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return statusMsg(fmt.Sprintf("Error opening editor: %v", err))
		}
		return statusMsg("Editor closed")
	})
}

// editorArgs builds jump-to-position arguments for common editors.
func editorArgs(editor, path string, line, col int) []string {
	base := filepath.Base(editor)
	if col < 1 {
		col = 1
	}
	switch base {
	case "code", "code-insiders", "cursor":
		return []string{"-g", fmt.Sprintf("%s:%d:%d", path, line, col)}
	case "subl", "sublime", "sublime_text", "zed":
		return []string{fmt.Sprintf("%s:%d:%d", path, line, col)}
	case "emacs", "emacsclient":
		return []string{fmt.Sprintf("+%d:%d", line, col), path}
	case "nano":
		return []string{fmt.Sprintf("+%d,%d", line, col), path}
	case "vi", "vim", "nvim":
		return []string{fmt.Sprintf("+call cursor(%d,%d)", line, col), path}
	default:
		return []string{fmt.Sprintf("+%d", line), path}
	}
}
