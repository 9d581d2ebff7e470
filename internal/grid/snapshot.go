package grid

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes g as a JSON array of rows of one-letter strings.
func Marshal(g Grid) ([]byte, error) {
	if !g.Complete() {
		return nil, fmt.Errorf("marshal grid: grid is not fully populated")
	}
	rows := make([][]string, g.Size())
	for r, row := range g.cells {
		rows[r] = make([]string, len(row))
		for c, ch := range row {
			rows[r][c] = string(ch)
		}
	}
	return json.Marshal(rows)
}

// Unmarshal decodes a snapshot written by Marshal. Any structural problem yields ErrCorruptSnapshot.
func Unmarshal(data []byte) (Grid, error) {
	var rows [][]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return Grid{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if len(rows) == 0 {
		return Grid{}, fmt.Errorf("%w: no rows", ErrCorruptSnapshot)
	}
	g := newEmpty(len(rows))
	for r, row := range rows {
		if len(row) != len(rows) {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrCorruptSnapshot, r, len(row), len(rows))
		}
		for c, cell := range row {
			letters := []rune(cell)
			if len(letters) != 1 || !isLetter(letters[0]) {
				return Grid{}, fmt.Errorf("%w: cell (%d,%d) = %q", ErrCorruptSnapshot, r, c, cell)
			}
			g.cells[r][c] = letters[0]
		}
	}
	return g, nil
}
