package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/types"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchQuery = m.searchInput.Value()
				m.searchMode = false
				m.searchInput.Blur()
				return m, nil
			case "esc":
				m.searchMode = false
				m.searchInput.Blur()
				m.searchInput.SetValue(m.searchQuery)
				m.applyFilters()
				return m, nil
			default:
				m.searchInput, cmd = m.searchInput.Update(msg)
				m.searchQuery = m.searchInput.Value()
				m.applyFilters()
				return m, cmd
			}
		}

		if m.scanning {
			if msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?", "h":
			m.showHelp = true
			return m, nil
		case "/":
			m.searchMode = true
			m.searchInput.Focus()
			return m, textinput.Blink
		case "esc":
			m.clearFilters()
			return m, nil
		case "s":
			m.cycleSeverityFilter()
			return m, nil
		case "r":
			m.scanning = true
			return m, tea.Batch(m.spinner.Tick, m.rescan())
		case "f", "enter":
			return m, m.fixSelected()
		case "F":
			return m, m.fixFile()
		case "i":
			return m, m.ignoreFile()
		case "c":
			return m, m.copyFindingToClipboard()
		case "y":
			return m, m.copySuggestionToClipboard()
		case "b":
			return m, m.addToBaseline()
		case "o":
			return m, m.openEditor()
		case "+", "=":
			m.expandContext()
			return m, nil
		case "-", "_":
			m.contractContext()
			return m, nil
		case "down", "j":
			if !m.showEmpty {
				m.table.MoveDown(1)
				m.updateViewportContent()
			}
			return m, nil
		case "up", "k":
			if !m.showEmpty {
				m.table.MoveUp(1)
				m.updateViewportContent()
			}
			return m, nil
		case "g", "home":
			if !m.showEmpty {
				m.table.GotoTop()
				m.updateViewportContent()
			}
			return m, nil
		case "G", "end":
			if !m.showEmpty {
				m.table.GotoBottom()
				m.updateViewportContent()
			}
			return m, nil
		case "ctrl+d", "pgdown":
			m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
			return m, nil
		case "ctrl+u", "pgup":
			m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case findingsMsg:
		m.setFindings(msg)
		m.lastScanTime = time.Now()
		m.scanning = false
		if m.showEmpty && len(m.findings) == 0 {
			m.setStatus("Rescan complete - no physical utilities left", 5*time.Second)
		} else {
			m.setStatus(fmt.Sprintf("Rescan complete - %d findings", len(m.findings)), 5*time.Second)
		}
		return m, nil

	case fixedMsg:
		m.fixedCount += msg.count
		m.setStatus(fmt.Sprintf("Fixed %d in %s", msg.count, msg.path), 5*time.Second)
		if m.opts.Rescan == nil {
			m.refreshFile(msg.path)
			return m, nil
		}
		m.scanning = true
		return m, tea.Batch(m.spinner.Tick, m.rescan())

	case ignoredMsg:
		var kept []types.Finding
		for _, f := range m.findings {
			if f.Path != string(msg) {
				kept = append(kept, f)
			}
		}
		m.setFindings(kept)
		m.setStatus("Ignored "+string(msg), 3*time.Second)
		return m, nil

	case statusMsg:
		m.setStatus(string(msg), 3*time.Second)
		return m, nil

	case spinner.TickMsg:
		var spinCmd tea.Cmd
		m.spinner, spinCmd = m.spinner.Update(msg)
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusTimeout = nil
			if m.showEmpty {
				m.statusMessage = emptyStatus
			} else {
				m.statusMessage = defaultStatus
			}
		}
		return m, spinCmd
	}

	if !m.quitting && !m.showEmpty {
		m.table, cmd = m.table.Update(msg)
	}
	m.updateViewportContent()
	return m, cmd
}

// refreshFile rescans a single file in place of a full rescan.
func (m *Model) refreshFile(path string) {
	var kept []types.Finding
	for _, f := range m.findings {
		if f.Path != path {
			kept = append(kept, f)
		}
	}
	if b, err := os.ReadFile(m.absPath(types.Finding{Path: path})); err == nil {
		text := string(b)
		for _, f := range engine.FilterSuppressed(text, m.opts.Scanner.Scan(text)) {
			f.Path = path
			kept = append(kept, f)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Path != kept[j].Path {
			return kept[i].Path < kept[j].Path
		}
		if kept[i].Line != kept[j].Line {
			return kept[i].Line < kept[j].Line
		}
		return kept[i].Column < kept[j].Column
	})
	m.setFindings(kept)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	usable := m.width - 12
	sevWidth, ruleWidth := 9, 20
	rest := usable - sevWidth - ruleWidth
	locWidth := rest / 2
	tokWidth := (rest - locWidth) / 2
	if locWidth < 20 {
		locWidth = 20
	}
	if tokWidth < 12 {
		tokWidth = 12
	}
	cols := m.table.Columns()
	cols[0].Width = sevWidth
	cols[1].Width = ruleWidth
	cols[2].Width = locWidth
	cols[3].Width = tokWidth
	cols[4].Width = tokWidth
	m.table.SetColumns(cols)

	statsHeaderHeight := 1
	available := m.height - lipgloss.Height(statusStyle.Render("")) - statsHeaderHeight
	tableHeight := int(float64(available) * 0.45)
	viewportHeight := available - tableHeight - detailPaneBorderStyle.GetVerticalFrameSize() - 1
	if viewportHeight < 3 {
		viewportHeight = 3
	}
	m.table.SetWidth(m.width)
	m.table.SetHeight(tableHeight)
	if m.viewport.Height == 0 {
		m.viewport = viewport.New(m.width, viewportHeight)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}
	statusStyle = statusStyle.Width(m.width)
	m.updateViewportContent()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.scanning {
		box := popupStyle.Width(55).Align(lipgloss.Center).
			Render(fmt.Sprintf("%s  Rescanning...\n\nPlease wait", m.spinner.View()))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupStyle.Render(helpText()))
	}

	fs := m.displayFindings()
	errs, warns := 0, 0
	for _, f := range fs {
		if f.Severity == types.SevError {
			errs++
		} else {
			warns++
		}
	}

	var stats string
	if len(m.findings) == 0 {
		stats = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("[OK] No physical direction utilities")
	} else {
		var filters []string
		if m.searchQuery != "" {
			filters = append(filters, fmt.Sprintf("search:'%s'", m.searchQuery))
		}
		if m.severityFilter != "" {
			filters = append(filters, "sev:"+severityText(m.severityFilter))
		}
		shown := fmt.Sprintf("Total: %-4d", len(m.findings))
		if m.filteredFindings != nil {
			shown = fmt.Sprintf("Showing: %d/%d", len(fs), len(m.findings))
		}
		stats = fmt.Sprintf("%s  |  %s %-4d  |  %s %-4d", shown, sevErrorStyle.Render("Errors:"), errs, sevWarnStyle.Render("Warnings:"), warns)
		if len(filters) > 0 {
			stats += fmt.Sprintf("  [FILTER: %s]", strings.Join(filters, ", "))
		}
		if m.fixedCount > 0 {
			stats += fmt.Sprintf("  [%d fixed this session]", m.fixedCount)
		}
	}
	statsHeader := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(stats)

	tableRender := tableBorderStyle.Width(m.width).Height(m.table.Height()).Render(m.table.View())

	var detail string
	if len(fs) == 0 {
		msg := "Nothing to review.\n\nPress 'r' to rescan\nPress '?' for help"
		if len(m.findings) > 0 {
			msg = "No findings match filter.\n\nPress 'Esc' to clear filter"
		}
		detail = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, emptyTextStyle.Render(msg))
	} else {
		detail = m.viewport.View()
	}
	detailRender := detailPaneBorderStyle.Width(m.width).Height(m.viewport.Height).Render(detail)

	status := m.statusMessage + dimStyle.Render("  (scanned "+m.lastScanTime.Format("15:04:05")+")")
	if m.searchMode {
		status = m.searchInput.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, statsHeader, tableRender, detailRender, statusStyle.Render(status))
}

func helpText() string {
	rows := [][2]string{
		{"j/k, ↑/↓", "move"},
		{"g/G", "top / bottom"},
		{"f, enter", "fix selected finding"},
		{"F", "fix every finding in the selected file"},
		{"i", "ignore the selected file in future scans"},
		{"r", "rescan"},
		{"/", "search path, rule, or token"},
		{"s", "cycle severity filter"},
		{"esc", "clear filters"},
		{"c / y", "copy finding / suggestion"},
		{"b", "add finding to baseline"},
		{"o", "open in $EDITOR"},
		{"+/-", "more / less context"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys") + "\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Width(10).Render(r[0]), r[1])
	}
	return b.String()
}
