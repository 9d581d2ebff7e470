package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordgrid/internal/model"
	"github.com/verte-zerg/wordgrid/internal/selection"
)

const (
	// cellWidth is the rendered width of one board cell.
	cellWidth = 3
	// boardTop and boardLeft locate cell (0,0) on screen for mouse hit-testing.
	boardTop  = 2
	boardLeft = 2
)

var (
	plainCellStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	selectedCellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A"))
	validatedCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#52C41A"))
	wrongCellStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#FF4D4F"))
	foundWordStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Strikethrough(true)
	pendingWordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

func cellText(letter rune) string {
	return " " + runewidth.FillRight(string(letter), cellWidth-1)
}

// cellStyle picks the style for one cell. Wrong beats selected beats validated.
func cellStyle(view selection.CellView, cursor bool) lipgloss.Style {
	style := plainCellStyle
	switch {
	case view.Wrong:
		style = wrongCellStyle
	case view.Selected:
		style = selectedCellStyle
	case view.Validated:
		style = validatedCellStyle
	}
	if cursor {
		style = style.Reverse(true)
	}
	return style
}

func renderCell(view selection.CellView, cursor bool) string {
	return cellStyle(view, cursor).Render(cellText(view.Letter))
}

func renderBoard(board [][]selection.CellView, cursor model.Position) string {
	lines := make([]string, len(board))
	for r, row := range board {
		var b strings.Builder
		for c, view := range row {
			b.WriteString(renderCell(view, cursor.Row == r && cursor.Col == c))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func renderWordList(words []string, found func(string) bool) string {
	lines := make([]string, len(words))
	for i, w := range words {
		if found(w) {
			lines[i] = foundWordStyle.Render(w)
		} else {
			lines[i] = pendingWordStyle.Render(w)
		}
	}
	return strings.Join(lines, "\n")
}

// cellAt maps screen coordinates to a board position.
func cellAt(x, y, size int) (model.Position, bool) {
	row := y - boardTop
	if x < boardLeft || row < 0 || row >= size {
		return model.Position{}, false
	}
	col := (x - boardLeft) / cellWidth
	if col >= size {
		return model.Position{}, false
	}
	return model.Position{Row: row, Col: col}, true
}
