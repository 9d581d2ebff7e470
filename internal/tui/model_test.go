package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordgrid/internal/game"
	"github.com/verte-zerg/wordgrid/internal/grid"
	"github.com/verte-zerg/wordgrid/internal/logging"
	"github.com/verte-zerg/wordgrid/internal/model"
)

type memoryRecorder struct {
	records []model.GameRecord
}

func (r *memoryRecorder) InsertGame(_ context.Context, rec model.GameRecord) (int64, error) {
	r.records = append(r.records, rec)
	return int64(len(r.records)), nil
}

func newTestModel(t *testing.T) (*Model, *memoryRecorder) {
	t.Helper()
	kv := game.NewMemoryKV()
	g, err := grid.FromRows([]string{
		"AGADIRXQ",
		"OQWERTYZ",
		"SUDPLMNB",
		"OUFELLAC",
		"ZXCVBNMK",
		"QWERTYUI",
		"ASDFGHJK",
		"ZXCVBNMP",
	})
	if err != nil {
		t.Fatalf("from rows: %v", err)
	}
	data, err := grid.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := kv.Set(context.Background(), "grid", data); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sched := NewScheduler()
	cfg := model.Config{GridSize: 8, Words: []string{"AGADIR", "SUD", "OUFELLA"}, SessionKey: "grid"}
	session, err := game.LoadOrCreate(context.Background(), cfg, game.Deps{KV: kv, Scheduler: sched, Logger: logging.Nop()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec := &memoryRecorder{}
	return NewModel(session, sched, rec, logging.Nop()), rec
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestKeyboardFindsWord(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "down", "down", "space", "right", "space", "right", "space")
	if got := m.session.Engine().SelectedWord(); got != "SUD" {
		t.Fatalf("expected SUD selected, got %q", got)
	}
	press(m, "enter")
	if !m.session.Engine().IsFound("SUD") {
		t.Fatalf("expected SUD found")
	}
	if !strings.Contains(m.View(), "Found 1/3") {
		t.Fatalf("expected header to show progress:\n%s", m.View())
	}
}

func TestWrongSelectionClearsOnTick(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "space")
	cmd := press(m, "v")
	if cmd == nil {
		t.Fatalf("expected a tick command for the wrong-selection timer")
	}
	if !m.session.Engine().WrongShowing() {
		t.Fatalf("expected wrong flag")
	}
	m.Update(timerFiredMsg{id: m.sched.next})
	if m.session.Engine().WrongShowing() {
		t.Fatalf("expected wrong flag cleared by tick")
	}
	if len(m.session.Engine().Selection()) != 0 {
		t.Fatalf("expected selection cleared by tick")
	}
}

func TestStaleTickAfterReset(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "space", "v", "r")
	id := m.sched.next
	press(m, "down", "down", "space")
	m.Update(timerFiredMsg{id: id})
	if got := len(m.session.Engine().Selection()); got != 1 {
		t.Fatalf("stale tick changed the selection: %d", got)
	}
}

func TestMouseClickPicksCell(t *testing.T) {
	m, _ := newTestModel(t)
	for col := 0; col < 3; col++ {
		m.Update(tea.MouseMsg{
			X:      boardLeft + col*cellWidth + 1,
			Y:      boardTop + 2,
			Action: tea.MouseActionPress,
			Button: tea.MouseButtonLeft,
		})
	}
	if got := m.session.Engine().SelectedWord(); got != "SUD" {
		t.Fatalf("expected SUD selected by mouse, got %q", got)
	}
}

func TestWinSavesRecordOnce(t *testing.T) {
	m, rec := newTestModel(t)
	press(m, "space", "right", "space", "right", "space", "right", "space", "right", "space", "right", "space", "enter")
	press(m, "down", "down")
	for i := 0; i < 5; i++ {
		press(m, "h")
	}
	press(m, "space", "right", "space", "right", "space", "enter")
	press(m, "down")
	for i := 0; i < 2; i++ {
		press(m, "h")
	}
	for i := 0; i < 7; i++ {
		press(m, "space", "right")
	}
	press(m, "enter")
	if !m.session.Won() {
		t.Fatalf("expected game won, found %v", m.session.Engine().Found())
	}
	if len(rec.records) != 1 || !rec.records[0].Won {
		t.Fatalf("expected one won record, got %+v", rec.records)
	}
	if !strings.Contains(m.View(), "All words found!") {
		t.Fatalf("expected win banner")
	}
	press(m, "q")
	if len(rec.records) != 1 {
		t.Fatalf("quit after win must not save again")
	}
}

func TestQuitSavesRecord(t *testing.T) {
	m, rec := newTestModel(t)
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if len(rec.records) != 1 || rec.records[0].Won {
		t.Fatalf("expected one unfinished record, got %+v", rec.records)
	}
}
