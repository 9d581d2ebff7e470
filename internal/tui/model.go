// Package tui provides the Bubble Tea word-search interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordgrid/internal/game"
	"github.com/verte-zerg/wordgrid/internal/model"
	"github.com/verte-zerg/wordgrid/internal/selection"
)

// Recorder stores finished games.
type Recorder interface {
	InsertGame(ctx context.Context, rec model.GameRecord) (int64, error)
}

// Model implements the Bubble Tea game UI.
type Model struct {
	session  *game.Session
	sched    *Scheduler
	recorder Recorder
	log      zerolog.Logger

	keys keyMap
	help help.Model

	cursor model.Position
	status string
	saved  bool

	width  int
	height int
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	wonStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#52C41A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs the game UI. sched must be the Scheduler the session's engine was built with.
// recorder may be nil, in which case games are not saved.
func NewModel(session *game.Session, sched *Scheduler, recorder Recorder, log zerolog.Logger) *Model {
	return &Model{
		session:  session,
		sched:    sched,
		recorder: recorder,
		log:      log,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
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
		m.help.Width = msg.Width
		return m, nil
	case timerFiredMsg:
		if m.sched.fire(msg.id) {
			m.status = ""
		}
		return m, nil
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if p, ok := cellAt(msg.X, msg.Y, m.session.Grid().Size()); ok {
			m.cursor = p
			m.pick()
		}
		return m, m.sched.drain()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveRecord()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Pick):
		m.pick()
	case key.Matches(msg, m.keys.Validate):
		m.validate()
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.status = ""
	}
	return m, m.sched.drain()
}

func (m *Model) moveCursor(dr, dc int) {
	size := m.session.Grid().Size()
	m.cursor.Row = clamp(m.cursor.Row+dr, 0, size-1)
	m.cursor.Col = clamp(m.cursor.Col+dc, 0, size-1)
}

func (m *Model) pick() {
	m.session.Click(m.cursor.Row, m.cursor.Col)
	m.status = ""
}

func (m *Model) validate() {
	wasWon := m.session.Won()
	switch m.session.Validate() {
	case selection.ResultFound:
		found := m.session.Engine().Found()
		m.status = fmt.Sprintf("Found %s!", found[len(found)-1])
		if !wasWon && m.session.Won() {
			m.saveRecord()
		}
	case selection.ResultWrong:
		m.status = "Not a word on the list."
	case selection.ResultEmpty:
		m.status = "Pick some letters first."
	}
}

// saveRecord stores the game once, on the first win or on quit.
func (m *Model) saveRecord() {
	if m.saved || m.recorder == nil {
		return
	}
	m.saved = true
	rec := m.session.Record()
	if _, err := m.recorder.InsertGame(context.Background(), rec); err != nil {
		m.log.Error().Err(err).Msg("failed to save game")
		return
	}
	m.log.Debug().Int("found", rec.Found).Bool("won", rec.Won).Msg("saved game")
}

// View implements tea.Model.
func (m *Model) View() string {
	eng := m.session.Engine()
	words := eng.Words()

	board := renderBoard(m.session.Board(), m.cursor)
	list := renderWordList(words, eng.IsFound)
	body := lipgloss.NewStyle().PaddingLeft(boardLeft).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, board, "    ", list),
	)

	sections := []string{m.renderHeader(len(eng.Found()), len(words)), "", body, ""}
	if line := m.renderStatus(eng); line != "" {
		sections = append(sections, line)
	}
	if m.session.Won() {
		sections = append(sections, wonStyle.Render("All words found!"))
	}
	sections = append(sections, footerStyle.Render(m.help.View(m.keys)))
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader(found, total int) string {
	return titleStyle.Render("wordgrid") + footerStyle.Render(fmt.Sprintf("  Found %d/%d", found, total))
}

func (m *Model) renderStatus(eng *selection.Engine) string {
	if eng.WrongShowing() {
		return errorStyle.Render(m.status)
	}
	if word := eng.SelectedWord(); word != "" {
		return statusStyle.Render("Selected: " + word)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
