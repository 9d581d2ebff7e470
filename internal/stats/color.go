package stats

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette styles report text. The zero value renders plain text.
type Palette struct {
	enabled bool
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// PaletteFor enables colour when w is a terminal and NO_COLOR is unset.
func PaletteFor(w io.Writer) Palette {
	return Palette{enabled: ShouldUseColor(w)}
}

// ShouldUseColor reports whether ANSI styling is appropriate for w.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func (p Palette) title(s string) string { return p.render(titleStyle, s) }
func (p Palette) good(s string) string  { return p.render(goodStyle, s) }
func (p Palette) muted(s string) string { return p.render(mutedStyle, s) }

func (p Palette) render(style lipgloss.Style, s string) string {
	if !p.enabled {
		return s
	}
	return style.Render(s)
}
