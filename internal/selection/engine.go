// Package selection tracks the player's cell picks and validates them against target words.
package selection

import (
	"sync"
	"time"

	"github.com/verte-zerg/wordgrid/internal/grid"
	"github.com/verte-zerg/wordgrid/internal/model"
)

// DefaultWrongDelay is how long a failed validation stays visible.
const DefaultWrongDelay = time.Second

// Result is the outcome of Validate.
type Result int

const (
	// ResultEmpty means there was nothing selected.
	ResultEmpty Result = iota
	// ResultFound means the selection spelled a remaining target word.
	ResultFound
	// ResultWrong means the selection did not match and the wrong flag is now set.
	ResultWrong
	// ResultBusy means a previous wrong selection is still on display.
	ResultBusy
)

// EventKind identifies an engine notification.
type EventKind int

const (
	// EventFound carries the word that was just validated.
	EventFound EventKind = iota
	// EventWrong carries the letters of a failed selection.
	EventWrong
	// EventWrongCleared fires when the wrong-selection display times out.
	EventWrongCleared
	// EventWon fires once, after the last word is found.
	EventWon
)

// Event is delivered to Options.Observer after the state change it describes.
type Event struct {
	Kind EventKind
	Word string
}

// Scheduler runs f once after d. The returned stop func cancels a pending call.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Options configures an Engine.
type Options struct {
	Rule       model.SelectionRule
	WrongDelay time.Duration
	Scheduler  Scheduler
	Observer   func(Event)
}

// CellView is what the presentation layer needs to draw one cell.
type CellView struct {
	Letter    rune
	Selected  bool
	Validated bool
	Wrong     bool
}

// Engine owns the selection state for one board.
type Engine struct {
	mu sync.Mutex

	grid     grid.Grid
	words    []string
	rule     model.SelectionRule
	delay    time.Duration
	sched    Scheduler
	observer func(Event)

	selection []model.Position
	validated map[model.Position]struct{}
	found     []string
	foundSet  map[string]struct{}

	wrong      bool
	wrongSeq   uint64
	stopWrong  func() bool
	wrongCount int
}

// New returns an Engine for g and the target words.
func New(g grid.Grid, words []string, opts Options) *Engine {
	if opts.WrongDelay <= 0 {
		opts.WrongDelay = DefaultWrongDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timeScheduler{}
	}
	return &Engine{
		grid:      g,
		words:     append([]string(nil), words...),
		rule:      opts.Rule,
		delay:     opts.WrongDelay,
		sched:     opts.Scheduler,
		observer:  opts.Observer,
		validated: map[model.Position]struct{}{},
		foundSet:  map[string]struct{}{},
	}
}

// Click extends the selection with p. It reports whether p was accepted.
func (e *Engine) Click(p model.Position) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.grid.InBounds(p) {
		return false
	}
	if e.wrong {
		// A new pick supersedes the failed one still on display.
		e.cancelWrongLocked()
		e.selection = nil
	}
	if !e.acceptsLocked(p) {
		return false
	}
	e.selection = append(e.selection, p)
	return true
}

func (e *Engine) acceptsLocked(p model.Position) bool {
	if len(e.selection) == 0 || e.rule == model.RuleFree {
		return true
	}
	last := e.selection[len(e.selection)-1]
	if !last.Adjacent(p) {
		return false
	}
	if len(e.selection) == 1 {
		return true
	}
	baseRow, baseCol := e.selection[1].Sub(e.selection[0])
	stepRow, stepCol := p.Sub(last)
	return sameAxisStep(baseRow, stepRow) && sameAxisStep(baseCol, stepCol)
}

// sameAxisStep requires equal magnitude and no sign flip on one axis.
func sameAxisStep(base, step int) bool {
	return abs(base) == abs(step) && base*step >= 0
}

// Validate checks the selection against the words not yet found.
func (e *Engine) Validate() Result {
	e.mu.Lock()
	if e.wrong {
		e.mu.Unlock()
		return ResultBusy
	}
	if len(e.selection) == 0 {
		e.mu.Unlock()
		return ResultEmpty
	}

	candidate := e.grid.Word(e.selection)
	if e.remainingLocked(candidate) {
		e.found = append(e.found, candidate)
		e.foundSet[candidate] = struct{}{}
		for _, p := range e.selection {
			e.validated[p] = struct{}{}
		}
		e.selection = nil
		won := len(e.found) == len(e.words)
		e.mu.Unlock()

		e.emit(Event{Kind: EventFound, Word: candidate})
		if won {
			e.emit(Event{Kind: EventWon})
		}
		return ResultFound
	}

	e.wrong = true
	e.wrongCount++
	e.wrongSeq++
	seq := e.wrongSeq
	e.stopWrong = e.sched.AfterFunc(e.delay, func() { e.expireWrong(seq) })
	e.mu.Unlock()

	e.emit(Event{Kind: EventWrong, Word: candidate})
	return ResultWrong
}

func (e *Engine) remainingLocked(candidate string) bool {
	if _, done := e.foundSet[candidate]; done {
		return false
	}
	for _, w := range e.words {
		if w == candidate {
			return true
		}
	}
	return false
}

func (e *Engine) expireWrong(seq uint64) {
	e.mu.Lock()
	if !e.wrong || seq != e.wrongSeq {
		e.mu.Unlock()
		return
	}
	e.wrong = false
	e.stopWrong = nil
	e.selection = nil
	e.mu.Unlock()

	e.emit(Event{Kind: EventWrongCleared})
}

// Reset clears the selection and any pending wrong-selection display.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelWrongLocked()
	e.selection = nil
}

func (e *Engine) cancelWrongLocked() {
	if e.stopWrong != nil {
		e.stopWrong()
		e.stopWrong = nil
	}
	e.wrong = false
}

func (e *Engine) emit(ev Event) {
	if e.observer != nil {
		e.observer(ev)
	}
}

// Grid returns the board.
func (e *Engine) Grid() grid.Grid {
	return e.grid
}

// Words returns the target words in configured order.
func (e *Engine) Words() []string {
	return append([]string(nil), e.words...)
}

// Selection returns a copy of the in-progress selection.
func (e *Engine) Selection() []model.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.Position(nil), e.selection...)
}

// SelectedWord returns the letters currently selected.
func (e *Engine) SelectedWord() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Word(e.selection)
}

// Found returns validated words in the order they were found.
func (e *Engine) Found() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.found...)
}

// IsFound reports whether word has been validated.
func (e *Engine) IsFound(word string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.foundSet[word]
	return ok
}

// Remaining returns the target words not yet found, in configured order.
func (e *Engine) Remaining() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.words)-len(e.found))
	for _, w := range e.words {
		if _, ok := e.foundSet[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}

// Validated reports whether p belongs to a found word.
func (e *Engine) Validated(p model.Position) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.validated[p]
	return ok
}

// WrongShowing reports whether the wrong-selection flag is set.
func (e *Engine) WrongShowing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wrong
}

// WrongCount returns the number of failed validations so far.
func (e *Engine) WrongCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wrongCount
}

// Won reports whether every target word has been found.
func (e *Engine) Won() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.found) == len(e.words)
}

// Cell returns the render state of p.
func (e *Engine) Cell(p model.Position) CellView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cellLocked(p, e.selectedSetLocked())
}

// Board returns the render state of every cell, row by row.
func (e *Engine) Board() [][]CellView {
	e.mu.Lock()
	defer e.mu.Unlock()
	selected := e.selectedSetLocked()
	n := e.grid.Size()
	out := make([][]CellView, n)
	for r := 0; r < n; r++ {
		out[r] = make([]CellView, n)
		for c := 0; c < n; c++ {
			out[r][c] = e.cellLocked(model.Position{Row: r, Col: c}, selected)
		}
	}
	return out
}

func (e *Engine) selectedSetLocked() map[model.Position]struct{} {
	set := make(map[model.Position]struct{}, len(e.selection))
	for _, p := range e.selection {
		set[p] = struct{}{}
	}
	return set
}

func (e *Engine) cellLocked(p model.Position, selected map[model.Position]struct{}) CellView {
	_, sel := selected[p]
	_, val := e.validated[p]
	return CellView{
		Letter:    e.grid.At(p),
		Selected:  sel,
		Validated: val,
		Wrong:     sel && e.wrong,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
