// Package grid builds and serializes word-search letter grids.
package grid

import (
	"errors"
	"strings"

	"github.com/verte-zerg/wordgrid/internal/model"
)

// Alphabet is the set of letters used for words and filler cells.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const empty rune = 0

var (
	// ErrConfig marks errors caused by an unusable size or word list.
	ErrConfig = errors.New("invalid grid configuration")
	// ErrWordTooLong is returned when a word cannot fit in either orientation.
	ErrWordTooLong = wrapConfig("word longer than grid size")
	// ErrPlacementExhausted is returned when no free placement was found within the retry bound.
	ErrPlacementExhausted = wrapConfig("no free placement found")
	// ErrCorruptSnapshot is returned when a serialized grid cannot be decoded.
	ErrCorruptSnapshot = errors.New("corrupt grid snapshot")
)

type configError struct{ msg string }

func (e *configError) Error() string        { return e.msg }
func (e *configError) Is(target error) bool { return target == ErrConfig }

func wrapConfig(msg string) error { return &configError{msg: msg} }

// Grid is a square matrix of uppercase letters.
type Grid struct {
	cells [][]rune
}

func newEmpty(size int) Grid {
	cells := make([][]rune, size)
	for i := range cells {
		cells[i] = make([]rune, size)
	}
	return Grid{cells: cells}
}

// FromRows builds a grid from equal-length uppercase rows.
func FromRows(rows []string) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, ErrCorruptSnapshot
	}
	g := newEmpty(len(rows))
	for r, row := range rows {
		runes := []rune(row)
		if len(runes) != len(rows) {
			return Grid{}, ErrCorruptSnapshot
		}
		for c, ch := range runes {
			if !isLetter(ch) {
				return Grid{}, ErrCorruptSnapshot
			}
			g.cells[r][c] = ch
		}
	}
	return g, nil
}

// Size returns N for an N×N grid.
func (g Grid) Size() int {
	return len(g.cells)
}

// InBounds reports whether p addresses a cell of g.
func (g Grid) InBounds(p model.Position) bool {
	n := g.Size()
	return p.Row >= 0 && p.Row < n && p.Col >= 0 && p.Col < n
}

// At returns the letter at p, or 0 when p is out of bounds.
func (g Grid) At(p model.Position) rune {
	if !g.InBounds(p) {
		return empty
	}
	return g.cells[p.Row][p.Col]
}

// Word concatenates the letters along path.
func (g Grid) Word(path []model.Position) string {
	var b strings.Builder
	for _, p := range path {
		if ch := g.At(p); ch != empty {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// Rows returns each row as a string.
func (g Grid) Rows() []string {
	out := make([]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = string(row)
	}
	return out
}

// Equal reports whether both grids hold the same letters.
func (g Grid) Equal(other Grid) bool {
	if g.Size() != other.Size() {
		return false
	}
	for r := range g.cells {
		if string(g.cells[r]) != string(other.cells[r]) {
			return false
		}
	}
	return true
}

// Complete reports whether every cell holds a letter.
func (g Grid) Complete() bool {
	if g.Size() == 0 {
		return false
	}
	for _, row := range g.cells {
		for _, ch := range row {
			if !isLetter(ch) {
				return false
			}
		}
	}
	return true
}

// Contains reports whether word reads left-to-right along a row or top-to-bottom along a column.
func (g Grid) Contains(word string) bool {
	target := []rune(word)
	if len(target) == 0 {
		return false
	}
	n := g.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			for _, o := range []Orientation{Horizontal, Vertical} {
				p := Placement{Word: word, Start: model.Position{Row: r, Col: c}, Orientation: o}
				path := p.Path()
				if !g.InBounds(path[len(path)-1]) {
					continue
				}
				if g.Word(path) == string(target) {
					return true
				}
			}
		}
	}
	return false
}

func isLetter(ch rune) bool {
	return ch >= 'A' && ch <= 'Z'
}
