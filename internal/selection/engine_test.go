package selection

import (
	"testing"
	"time"

	"github.com/verte-zerg/wordgrid/internal/grid"
	"github.com/verte-zerg/wordgrid/internal/model"
)

type pendingTask struct {
	d       time.Duration
	f       func()
	stopped bool
}

type manualScheduler struct {
	tasks []*pendingTask
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	task := &pendingTask{d: d, f: f}
	s.tasks = append(s.tasks, task)
	return func() bool {
		wasPending := !task.stopped
		task.stopped = true
		return wasPending
	}
}

// fire runs every task that has not been stopped.
func (s *manualScheduler) fire() {
	tasks := s.tasks
	s.tasks = nil
	for _, task := range tasks {
		if !task.stopped {
			task.stopped = true
			task.f()
		}
	}
}

// scenarioGrid is the 8x8 board with SUD at row 2, cols 0..2.
func scenarioGrid(t *testing.T) grid.Grid {
	t.Helper()
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
	return g
}

var scenarioWords = []string{"AGADIR", "SUD", "OUFELLA"}

func pos(r, c int) model.Position { return model.Position{Row: r, Col: c} }

func newEngine(t *testing.T, rule model.SelectionRule) (*Engine, *manualScheduler, *[]Event) {
	t.Helper()
	sched := &manualScheduler{}
	events := &[]Event{}
	e := New(scenarioGrid(t), scenarioWords, Options{
		Rule:      rule,
		Scheduler: sched,
		Observer:  func(ev Event) { *events = append(*events, ev) },
	})
	return e, sched, events
}

func clickAll(t *testing.T, e *Engine, positions ...model.Position) {
	t.Helper()
	for _, p := range positions {
		if !e.Click(p) {
			t.Fatalf("click %v rejected; selection %v", p, e.Selection())
		}
	}
}

func TestFindSUD(t *testing.T) {
	e, _, events := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(2, 0), pos(2, 1), pos(2, 2))
	if got := e.Validate(); got != ResultFound {
		t.Fatalf("expected ResultFound, got %v", got)
	}
	if found := e.Found(); len(found) != 1 || found[0] != "SUD" {
		t.Fatalf("expected [SUD], got %v", found)
	}
	for c := 0; c < 3; c++ {
		if !e.Validated(pos(2, c)) {
			t.Fatalf("expected (2,%d) validated", c)
		}
	}
	if e.Validated(pos(2, 3)) {
		t.Fatalf("unexpected validated cell (2,3)")
	}
	if len(e.Selection()) != 0 {
		t.Fatalf("expected empty selection, got %v", e.Selection())
	}
	if e.Won() {
		t.Fatalf("game should not be won after one word")
	}
	if len(*events) != 1 || (*events)[0].Kind != EventFound || (*events)[0].Word != "SUD" {
		t.Fatalf("unexpected events %+v", *events)
	}
}

func TestSingleLetterIsWrongThenClears(t *testing.T) {
	e, sched, events := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(5, 5))
	if got := e.Validate(); got != ResultWrong {
		t.Fatalf("expected ResultWrong, got %v", got)
	}
	if !e.WrongShowing() {
		t.Fatalf("expected wrong flag set")
	}
	if !e.Cell(pos(5, 5)).Wrong {
		t.Fatalf("expected selected cell to show wrong")
	}
	if e.Cell(pos(0, 0)).Wrong {
		t.Fatalf("unselected cell must not show wrong")
	}
	if len(sched.tasks) != 1 || sched.tasks[0].d != DefaultWrongDelay {
		t.Fatalf("expected one task after %v, got %+v", DefaultWrongDelay, sched.tasks)
	}
	sched.fire()
	if e.WrongShowing() {
		t.Fatalf("expected wrong flag cleared")
	}
	if len(e.Selection()) != 0 {
		t.Fatalf("expected empty selection, got %v", e.Selection())
	}
	if e.WrongCount() != 1 {
		t.Fatalf("expected 1 wrong attempt, got %d", e.WrongCount())
	}
	last := (*events)[len(*events)-1]
	if last.Kind != EventWrongCleared {
		t.Fatalf("expected EventWrongCleared, got %+v", last)
	}
}

func TestStrictRejectsNonAdjacent(t *testing.T) {
	e, _, _ := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(2, 0))
	if e.Click(pos(2, 2)) {
		t.Fatalf("expected non-adjacent click to be ignored")
	}
	if e.Click(pos(2, 0)) {
		t.Fatalf("expected clicking the last cell again to be ignored")
	}
	if got := e.Selection(); len(got) != 1 {
		t.Fatalf("selection changed: %v", got)
	}
}

func TestStrictSecondClickAnyNeighbour(t *testing.T) {
	for _, next := range []model.Position{pos(2, 2), pos(2, 4), pos(1, 3), pos(3, 3), pos(1, 2), pos(3, 4)} {
		e, _, _ := newEngine(t, model.RuleStrict)
		clickAll(t, e, pos(2, 3), next)
	}
}

func TestStrictKeepsDirection(t *testing.T) {
	e, _, _ := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(0, 0), pos(1, 1))
	for _, bad := range []model.Position{pos(2, 1), pos(1, 2), pos(0, 0), pos(0, 2), pos(2, 0), pos(0, 1)} {
		if e.Click(bad) {
			t.Fatalf("expected %v to be rejected after diagonal start", bad)
		}
	}
	if got := e.Selection(); len(got) != 2 {
		t.Fatalf("selection changed: %v", got)
	}
	clickAll(t, e, pos(2, 2), pos(3, 3))
}

func TestStrictRejectsReversal(t *testing.T) {
	e, _, _ := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(3, 3), pos(3, 4))
	if e.Click(pos(3, 3)) {
		t.Fatalf("expected reversal to be rejected")
	}
	if e.Click(pos(4, 5)) {
		t.Fatalf("expected bend to be rejected")
	}
	clickAll(t, e, pos(3, 5))
}

func TestFreeRuleAcceptsAnything(t *testing.T) {
	e, _, _ := newEngine(t, model.RuleFree)
	clickAll(t, e, pos(2, 0), pos(7, 7), pos(7, 7), pos(0, 3))
	if got := len(e.Selection()); got != 4 {
		t.Fatalf("expected 4 positions, got %d", got)
	}
	e.Reset()
	// S(2,0) U(3,1) D(0,3): not a line, still spells SUD.
	clickAll(t, e, pos(2, 0), pos(3, 1), pos(0, 3))
	if got := e.Validate(); got != ResultFound {
		t.Fatalf("expected free selection to match, got %v", got)
	}
}

func TestOutOfBoundsClickIgnored(t *testing.T) {
	e, _, _ := newEngine(t, model.RuleFree)
	if e.Click(pos(-1, 0)) || e.Click(pos(0, 8)) {
		t.Fatalf("expected out-of-bounds clicks to be ignored")
	}
}

func TestFoundWordCannotBeValidatedTwice(t *testing.T) {
	e, sched, _ := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(2, 0), pos(2, 1), pos(2, 2))
	e.Validate()
	clickAll(t, e, pos(2, 0), pos(2, 1), pos(2, 2))
	if got := e.Validate(); got != ResultWrong {
		t.Fatalf("expected duplicate validation to be wrong, got %v", got)
	}
	sched.fire()
	if found := e.Found(); len(found) != 1 {
		t.Fatalf("expected one found word, got %v", found)
	}
}

func TestWinAfterAllWords(t *testing.T) {
	e, _, events := newEngine(t, model.RuleStrict)
	paths := [][]model.Position{
		{pos(0, 0), pos(0, 1), pos(0, 2), pos(0, 3), pos(0, 4), pos(0, 5)},
		{pos(2, 0), pos(2, 1), pos(2, 2)},
		{pos(3, 0), pos(3, 1), pos(3, 2), pos(3, 3), pos(3, 4), pos(3, 5), pos(3, 6)},
	}
	for i, path := range paths {
		if e.Won() {
			t.Fatalf("won before word %d", i)
		}
		clickAll(t, e, path...)
		if got := e.Validate(); got != ResultFound {
			t.Fatalf("word %d: expected ResultFound, got %v", i, got)
		}
	}
	if !e.Won() {
		t.Fatalf("expected won")
	}
	if len(e.Remaining()) != 0 {
		t.Fatalf("expected no remaining words, got %v", e.Remaining())
	}
	if (*events)[len(*events)-1].Kind != EventWon {
		t.Fatalf("expected EventWon last, got %+v", *events)
	}
	// Clicks keep working after the win.
	clickAll(t, e, pos(7, 7))
}

func TestResetCancelsWrongDisplay(t *testing.T) {
	e, sched, _ := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(6, 6), pos(6, 7))
	e.Validate()
	e.Reset()
	if e.WrongShowing() {
		t.Fatalf("expected reset to clear wrong flag")
	}
	if !sched.tasks[0].stopped {
		t.Fatalf("expected pending timer to be stopped")
	}
	clickAll(t, e, pos(2, 0))
	sched.fire()
	if got := e.Selection(); len(got) != 1 {
		t.Fatalf("stale timer cleared the new selection: %v", got)
	}
}

func TestStaleTimerIsNoop(t *testing.T) {
	e, sched, _ := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(6, 6))
	e.Validate()
	stale := sched.tasks[0].f
	e.Reset()
	clickAll(t, e, pos(2, 0), pos(2, 1))
	stale()
	if got := e.Selection(); len(got) != 2 {
		t.Fatalf("stale callback changed selection: %v", got)
	}
}

func TestClickDuringWrongStartsNewSelection(t *testing.T) {
	e, sched, _ := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(6, 6))
	e.Validate()
	clickAll(t, e, pos(2, 0))
	if e.WrongShowing() {
		t.Fatalf("expected wrong flag cleared by new click")
	}
	if got := e.Selection(); len(got) != 1 || got[0] != pos(2, 0) {
		t.Fatalf("expected fresh selection at (2,0), got %v", got)
	}
	sched.fire()
	if got := e.Selection(); len(got) != 1 {
		t.Fatalf("timer cleared the new selection: %v", got)
	}
}

func TestValidateEmptyAndBusy(t *testing.T) {
	e, _, _ := newEngine(t, model.RuleStrict)
	if got := e.Validate(); got != ResultEmpty {
		t.Fatalf("expected ResultEmpty, got %v", got)
	}
	clickAll(t, e, pos(6, 6))
	e.Validate()
	if got := e.Validate(); got != ResultBusy {
		t.Fatalf("expected ResultBusy, got %v", got)
	}
	if e.WrongCount() != 1 {
		t.Fatalf("busy validation must not count as wrong")
	}
}

func TestBoardView(t *testing.T) {
	e, _, _ := newEngine(t, model.RuleStrict)
	clickAll(t, e, pos(2, 0), pos(2, 1))
	board := e.Board()
	if len(board) != 8 || len(board[0]) != 8 {
		t.Fatalf("unexpected board dimensions")
	}
	if board[2][0].Letter != 'S' || !board[2][0].Selected {
		t.Fatalf("unexpected cell %+v", board[2][0])
	}
	if board[2][2].Selected {
		t.Fatalf("(2,2) should not be selected")
	}
	if e.SelectedWord() != "SU" {
		t.Fatalf("expected SU, got %q", e.SelectedWord())
	}
}

func TestDefaultSchedulerClearsWrong(t *testing.T) {
	e := New(scenarioGrid(t), scenarioWords, Options{WrongDelay: 10 * time.Millisecond})
	e.Click(pos(6, 6))
	e.Validate()
	deadline := time.Now().Add(2 * time.Second)
	for e.WrongShowing() {
		if time.Now().After(deadline) {
			t.Fatalf("wrong flag never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if len(e.Selection()) != 0 {
		t.Fatalf("expected selection cleared")
	}
}
