// Package stats contains game history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/wordgrid/internal/model"
)

// Summary aggregates a set of stored games.
type Summary struct {
	Played       int
	Won          int
	WinRate      float64
	AvgSolve     time.Duration
	BestSolve    time.Duration
	AvgWrong     float64
	WordsFound   int
	WordsOffered int
}

// Summarize computes totals over games. Solve times only count won games.
func Summarize(games []model.GameAggregate) Summary {
	var s Summary
	var solveTotal int64
	var wrongTotal int
	for _, g := range games {
		s.Played++
		s.WordsFound += g.Found
		s.WordsOffered += g.WordCount
		wrongTotal += g.Wrong
		if !g.Won {
			continue
		}
		s.Won++
		solveTotal += g.DurationMs
		d := time.Duration(g.DurationMs) * time.Millisecond
		if s.BestSolve == 0 || d < s.BestSolve {
			s.BestSolve = d
		}
	}
	if s.Played > 0 {
		s.WinRate = float64(s.Won) / float64(s.Played)
		s.AvgWrong = float64(wrongTotal) / float64(s.Played)
	}
	if s.Won > 0 {
		s.AvgSolve = time.Duration(solveTotal/int64(s.Won)) * time.Millisecond
	}
	return s
}

// RenderSummary prints the summary block.
func RenderSummary(w io.Writer, s Summary, p Palette) error {
	if s.Played == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	lines := []string{
		p.title("Summary"),
		fmt.Sprintf("Games: %d", s.Played),
		fmt.Sprintf("Won: %d (%.1f%%)", s.Won, s.WinRate*100),
		fmt.Sprintf("Words found: %d/%d", s.WordsFound, s.WordsOffered),
		fmt.Sprintf("Avg wrong attempts: %.2f", s.AvgWrong),
	}
	if s.Won > 0 {
		lines = append(lines,
			fmt.Sprintf("Avg solve time: %s", FormatDuration(s.AvgSolve)),
			fmt.Sprintf("Best solve time: %s", p.good(FormatDuration(s.BestSolve))),
		)
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatDuration renders d as m:ss.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
