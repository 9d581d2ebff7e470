package grid

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/wordgrid/internal/model"
)

// DefaultMaxAttempts bounds random placement tries per word.
const DefaultMaxAttempts = 10000

// Orientation is the reading direction of a placed word.
type Orientation int

const (
	// Horizontal reads left-to-right along a row.
	Horizontal Orientation = iota
	// Vertical reads top-to-bottom along a column.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Placement records where a word was written.
type Placement struct {
	Word        string
	Start       model.Position
	Orientation Orientation
}

// Path returns the positions the word occupies, in reading order.
func (p Placement) Path() []model.Position {
	n := len([]rune(p.Word))
	path := make([]model.Position, n)
	for i := 0; i < n; i++ {
		pos := p.Start
		if p.Orientation == Horizontal {
			pos.Col += i
		} else {
			pos.Row += i
		}
		path[i] = pos
	}
	return path
}

// Generator produces randomized grids.
type Generator struct {
	rnd         *rand.Rand
	maxAttempts int
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator whose output is reproducible for a seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed)), maxAttempts: DefaultMaxAttempts}
}

// WithMaxAttempts sets the per-word retry bound. Values <= 0 keep the default.
func (g *Generator) WithMaxAttempts(n int) *Generator {
	if n > 0 {
		g.maxAttempts = n
	}
	return g
}

// CheckWords validates a word list against a grid size without placing anything.
func CheckWords(size int, words []string) error {
	if size <= 0 {
		return fmt.Errorf("%w: size must be > 0", ErrConfig)
	}
	if len(words) == 0 {
		return fmt.Errorf("%w: word list is empty", ErrConfig)
	}
	for _, word := range words {
		runes := []rune(word)
		if len(runes) == 0 {
			return fmt.Errorf("%w: empty word", ErrConfig)
		}
		for _, ch := range runes {
			if !isLetter(ch) {
				return fmt.Errorf("%w: %q must contain only A-Z", ErrConfig, word)
			}
		}
		if len(runes) > size {
			return fmt.Errorf("%w: %q has %d letters, grid is %d", ErrWordTooLong, word, len(runes), size)
		}
	}
	return nil
}

// Generate places words in list order and fills the remaining cells with random letters.
func (g *Generator) Generate(size int, words []string) (Grid, []Placement, error) {
	if err := CheckWords(size, words); err != nil {
		return Grid{}, nil, err
	}
	grid := newEmpty(size)
	placements := make([]Placement, 0, len(words))
	for _, word := range words {
		p, err := g.place(grid, word)
		if err != nil {
			return Grid{}, nil, err
		}
		placements = append(placements, p)
	}
	g.fill(grid)
	return grid, placements, nil
}

func (g *Generator) place(grid Grid, word string) (Placement, error) {
	size := grid.Size()
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		p := Placement{
			Word:        word,
			Start:       model.Position{Row: g.rnd.Intn(size), Col: g.rnd.Intn(size)},
			Orientation: Orientation(g.rnd.Intn(2)),
		}
		if !canPlace(grid, p) {
			continue
		}
		letters := []rune(word)
		for i, pos := range p.Path() {
			grid.cells[pos.Row][pos.Col] = letters[i]
		}
		return p, nil
	}
	return Placement{}, fmt.Errorf("%w: %q after %d attempts", ErrPlacementExhausted, word, g.maxAttempts)
}

// canPlace rejects any path leaving the grid or touching a set cell, even one holding the same letter.
func canPlace(grid Grid, p Placement) bool {
	for _, pos := range p.Path() {
		if !grid.InBounds(pos) || grid.cells[pos.Row][pos.Col] != empty {
			return false
		}
	}
	return true
}

func (g *Generator) fill(grid Grid) {
	for r := range grid.cells {
		for c := range grid.cells[r] {
			if grid.cells[r][c] == empty {
				grid.cells[r][c] = rune(Alphabet[g.rnd.Intn(len(Alphabet))])
			}
		}
	}
}
