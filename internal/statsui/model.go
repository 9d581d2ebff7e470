// Package statsui provides the Bubble Tea game history browser.
package statsui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordgrid/internal/model"
	"github.com/verte-zerg/wordgrid/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	src    stats.GameLister
	filter model.HistoryFilter

	report stats.Report
	errMsg string

	games table.Model

	filterMode  bool
	filterInput textinput.Model
	filterError string

	width  int
	height int
}

// NewModel constructs a stats UI model over src.
func NewModel(src stats.GameLister, filter model.HistoryFilter) *Model {
	m := &Model{
		src:         src,
		filter:      filter,
		games:       newGamesTable(),
		filterInput: newFilterInput(),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "f":
			m.filterMode = true
			m.filterError = ""
			m.filterInput.SetValue(lastValue(m.filter))
			return m, m.filterInput.Focus()
		case "c":
			m.filter = model.HistoryFilter{}
			m.refreshReport()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.games, cmd = m.games.Update(msg)
	return m, cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case "enter":
		last, err := parseLast(m.filterInput.Value())
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filter.Last = last
		m.filterMode = false
		m.filterInput.Blur()
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{titleStyle.Render("wordgrid history") + headerStyle.Render("  "+filterSummary(m.filter)), ""}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	} else if m.report.Summary.Played == 0 {
		sections = append(sections, "No games found.")
	} else {
		sections = append(sections, renderSummaryCards(m.report.Summary, m.width), "", m.games.View())
	}
	sections = append(sections, "")
	if m.filterMode {
		sections = append(sections, m.filterInput.View())
		if m.filterError != "" {
			sections = append(sections, errorStyle.Render(m.filterError))
		}
		sections = append(sections, headerStyle.Render("enter: apply | esc: cancel"))
	} else {
		sections = append(sections, headerStyle.Render("↑/↓: scroll | f: last N | c: clear filter | q: quit"))
	}
	return strings.Join(sections, "\n")
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.src, m.filter)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load games: %v", err)
		m.report = stats.Report{}
		m.games.SetRows(nil)
		return
	}
	m.errMsg = ""
	m.report = report
	m.games.SetRows(buildRows(report.Games))
	m.games.GotoTop()
}

func (m *Model) updateLayout() {
	if m.width > 0 {
		m.games.SetWidth(m.width)
	}
	// title, cards and footer take roughly ten lines
	if h := m.height - 10; h > 1 {
		m.games.SetHeight(h)
	}
}

func renderSummaryCards(s stats.Summary, width int) string {
	cards := []string{
		metricCard("Games", strconv.Itoa(s.Played)),
		metricCard("Won", fmt.Sprintf("%d (%.0f%%)", s.Won, s.WinRate*100)),
		metricCard("Avg Wrong", fmt.Sprintf("%.2f", s.AvgWrong)),
		metricCard("Avg Solve", stats.FormatDuration(s.AvgSolve)),
		metricCard("Best Solve", stats.FormatDuration(s.BestSolve)),
	}
	if width > 0 && width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func newGamesTable() table.Model {
	widths := []int{16, 6, 6, 6, 6, 6}
	columns := make([]table.Column, len(stats.GameColumns))
	for i, title := range stats.GameColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(gamesTableStyles())
	return t
}

func gamesTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// buildRows lists games newest first.
func buildRows(games []model.GameAggregate) []table.Row {
	rows := make([]table.Row, 0, len(games))
	for i := len(games) - 1; i >= 0; i-- {
		rows = append(rows, table.Row(stats.GameRow(games[i])))
	}
	return rows
}

func newFilterInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Last N games: "
	input.Placeholder = "0 = all"
	input.CharLimit = 6
	return input
}

func parseLast(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("last must be a number >= 0")
	}
	return n, nil
}

func lastValue(f model.HistoryFilter) string {
	if f.Last == 0 {
		return ""
	}
	return strconv.Itoa(f.Last)
}

func filterSummary(f model.HistoryFilter) string {
	var parts []string
	if f.Since != nil {
		parts = append(parts, "since "+f.Since.Format("2006-01-02"))
	}
	if f.Last > 0 {
		parts = append(parts, fmt.Sprintf("last %d", f.Last))
	}
	if len(parts) == 0 {
		return "all games"
	}
	return strings.Join(parts, ", ")
}
