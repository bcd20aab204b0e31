package tui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/lingomirror/lingomirror/internal/scanner"
	"github.com/lingomirror/lingomirror/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)

	sevErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

const (
	defaultStatus = "q: quit | ?: help | j/k: navigate | f: fix | F: fix file | i: ignore file | r: rescan | c: copy | b: baseline"
	emptyStatus   = "q: quit | r: rescan"
)

// severityText returns plain text for severity (ANSI codes break table truncation).
func severityText(s types.Severity) string {
	switch s {
	case types.SevError:
		return "ERROR"
	case types.SevWarning:
		return "WARN"
	default:
		return string(s)
	}
}

// Options configures a review session.
type Options struct {
	// Root is the directory finding paths are relative to.
	Root string
	// Scanner applies the same rule selection as the scan that produced the
	// findings. Nil means every rule.
	Scanner *scanner.Scanner
	// Rescan re-runs the scan; nil disables rescans.
	Rescan func() ([]types.Finding, error)
	// BaselinePath is where "b" records accepted findings.
	BaselinePath string
	Baseline     report.Baseline
}

// Model represents the main state of the TUI application.
type Model struct {
	table            table.Model
	viewport         viewport.Model
	spinner          spinner.Model
	opts             Options
	findings         []types.Finding
	filteredFindings []types.Finding // nil = no filter
	filteredIndices  []int           // maps filtered index to findings index
	quitting         bool
	ready            bool
	scanning         bool
	height           int
	width            int
	statusMessage    string
	statusTimeout    *time.Time
	showEmpty        bool
	showHelp         bool
	lastScanTime     time.Time
	fixedCount       int

	searchMode     bool
	searchInput    textinput.Model
	searchQuery    string
	severityFilter types.Severity

	contextLines int
}

// NewModel initializes a new TUI model.
func NewModel(findings []types.Finding, opts Options) Model {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Scanner == nil {
		opts.Scanner = scanner.New()
	}
	if opts.BaselinePath == "" {
		opts.BaselinePath = report.DefaultBaselinePath
	}

	columns := []table.Column{
		{Title: "Sev", Width: 7},
		{Title: "Rule", Width: 20},
		{Title: "Location", Width: 40},
		{Title: "Found", Width: 18},
		{Title: "Suggestion", Width: 18},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	t.SetStyles(s)

	// Line spinner avoids Braille characters that render poorly on some terminals
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ti := textinput.New()
	ti.Placeholder = "Search path, rule, or token..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	m := Model{
		table:        t,
		spinner:      sp,
		opts:         opts,
		searchInput:  ti,
		lastScanTime: time.Now(),
		contextLines: LoadPrefs().ContextLines,
	}
	m.setFindings(findings)
	if m.showEmpty {
		m.statusMessage = emptyStatus
	} else {
		m.statusMessage = defaultStatus
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

type findingsMsg []types.Finding

type statusMsg string

// ignoredMsg reports a path added to the ignore file.
type ignoredMsg string

// fixedMsg reports fixes written to disk; the model rescans afterwards.
type fixedMsg struct {
	count int
	path  string
}

func (m *Model) setFindings(fs []types.Finding) {
	m.findings = fs
	m.applyFilters()
}

func (m *Model) rescan() tea.Cmd {
	rescan := m.opts.Rescan
	return func() tea.Msg {
		if rescan == nil {
			return statusMsg("Rescan not available")
		}
		fs, err := rescan()
		if err != nil {
			return statusMsg(fmt.Sprintf("Scan error: %v", err))
		}
		return findingsMsg(fs)
	}
}

func (m *Model) applyFilters() {
	if m.searchQuery == "" && m.severityFilter == "" {
		m.filteredFindings = nil
		m.filteredIndices = nil
		m.rebuildTableRows()
		return
	}

	filtered := []types.Finding{}
	var indices []int
	query := strings.ToLower(m.searchQuery)
	for i, f := range m.findings {
		if m.severityFilter != "" && f.Severity != m.severityFilter {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(f.Path), query) &&
			!strings.Contains(strings.ToLower(f.Rule), query) &&
			!strings.Contains(strings.ToLower(f.Original), query) {
			continue
		}
		filtered = append(filtered, f)
		indices = append(indices, i)
	}
	m.filteredFindings = filtered
	m.filteredIndices = indices
	m.rebuildTableRows()
}

func (m *Model) clearFilters() {
	m.searchQuery = ""
	m.searchInput.SetValue("")
	m.severityFilter = ""
	m.applyFilters()
}

func (m *Model) cycleSeverityFilter() {
	switch m.severityFilter {
	case "":
		m.severityFilter = types.SevError
	case types.SevError:
		m.severityFilter = types.SevWarning
	default:
		m.severityFilter = ""
	}
	m.applyFilters()
}

func (m *Model) rebuildTableRows() {
	findings := m.displayFindings()
	rows := make([]table.Row, len(findings))
	for i, f := range findings {
		sev := severityText(f.Severity)
		if m.opts.Baseline.Contains(f) {
			sev = "(b) " + sev
		}
		rows[i] = table.Row{sev, f.Rule, report.Location(f), f.Original, f.Suggestion}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(findings) {
		m.table.SetCursor(0)
	}
	m.showEmpty = len(findings) == 0
	m.updateViewportContent()
}

func (m *Model) displayFindings() []types.Finding {
	if m.filteredFindings != nil {
		return m.filteredFindings
	}
	return m.findings
}

func (m Model) selectedFinding() *types.Finding {
	fs := m.displayFindings()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(fs) {
		return nil
	}
	f := fs[idx]
	return &f
}

func (m *Model) expandContext() {
	if m.contextLines < 20 {
		m.contextLines += 2
		if m.contextLines > 20 {
			m.contextLines = 20
		}
		_ = SavePrefs(Prefs{ContextLines: m.contextLines})
		m.updateViewportContent()
	}
}

func (m *Model) contractContext() {
	if m.contextLines > 0 {
		m.contextLines -= 2
		if m.contextLines < 0 {
			m.contextLines = 0
		}
		_ = SavePrefs(Prefs{ContextLines: m.contextLines})
		m.updateViewportContent()
	}
}

func (m Model) absPath(f types.Finding) string {
	if filepath.IsAbs(f.Path) {
		return f.Path
	}
	return filepath.Join(m.opts.Root, filepath.FromSlash(f.Path))
}

func readFileContext(path string, targetLine int, contextLines int) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	startLine := targetLine - contextLines
	if startLine < 1 {
		startLine = 1
	}
	endLine := targetLine + contextLines

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, sc.Text())
		}
		if lineNum > endLine {
			break
		}
	}
	return lines, startLine, sc.Err()
}

func highlightLine(line string, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		if ext := filepath.Ext(filename); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}
	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (m *Model) updateViewportContent() {
	fs := m.displayFindings()
	if len(fs) == 0 || !m.ready {
		m.viewport.SetContent("")
		return
	}
	idx := m.table.Cursor()
	if idx >= 0 && idx < len(fs) {
		m.viewport.SetContent(m.detailFor(fs[idx]))
	}
}

func (m *Model) detailFor(f types.Finding) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Finding Details") + "\n\n")
	if m.opts.Baseline.Contains(f) {
		b.WriteString(dimStyle.Italic(true).Render("BASELINED: this finding is accepted and hidden from scan reports.") + "\n\n")
	}
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Path:"), f.Path)
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Rule:"), f.Rule)
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Severity:"), f.Severity)
	fmt.Fprintf(&b, "%s %d\n", keyStyle.Render("Line:"), f.Line)
	if f.Column > 0 {
		fmt.Fprintf(&b, "%s %d\n", keyStyle.Render("Column:"), f.Column)
	}
	fmt.Fprintf(&b, "%s %s -> %s\n", keyStyle.Render("Fix:"), matchStyle.Render(f.Original), suggestionStyle.Render(f.Suggestion))

	hint := fmt.Sprintf(" (+/- to expand/contract, showing %d lines)", m.contextLines*2+1)
	b.WriteString("\n" + keyStyle.Render("Context:") + dimStyle.Render(hint) + "\n")

	lines, start, err := readFileContext(m.absPath(f), f.Line, m.contextLines)
	if err != nil || len(lines) == 0 {
		b.WriteString(dimStyle.Render("(source unavailable)"))
		return b.String()
	}
	current := lipgloss.NewStyle().Background(lipgloss.Color("236"))
	for i, line := range lines {
		n := start + i
		num := dimStyle.Render(fmt.Sprintf("%4d ", n))
		hl := highlightLine(line, f.Path)
		if n == f.Line {
			hl = strings.ReplaceAll(hl, f.Original, matchStyle.Render(f.Original))
			b.WriteString(num + current.Render(hl) + "\n")
			preview := scanner.ApplyFix(line, types.Finding{Line: 1, Column: f.Column, Original: f.Original, Suggestion: f.Suggestion})
			b.WriteString(dimStyle.Render("   → ") + strings.ReplaceAll(preview, f.Suggestion, suggestionStyle.Render(f.Suggestion)) + "\n")
			continue
		}
		b.WriteString(num + hl + "\n")
	}
	return b.String()
}

func (m *Model) setStatus(msg string, d time.Duration) {
	timeout := time.Now().Add(d)
	m.statusTimeout = &timeout
	m.statusMessage = msg
}
