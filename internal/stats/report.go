package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/wordgrid/internal/model"
)

// maxTableRows caps the recent-games table.
const maxTableRows = 20

// GameLister is the history source a report reads from.
type GameLister interface {
	ListGames(ctx context.Context, filter model.HistoryFilter) ([]model.GameAggregate, error)
}

// GameColumns are the headers matching GameRow.
var GameColumns = []string{"Ended", "Grid", "Found", "Wrong", "Time", "Result"}

// GameRow formats one game for the history tables.
func GameRow(g model.GameAggregate) []string {
	result := "quit"
	if g.Won {
		result = "won"
	}
	return []string{
		g.EndedAt.Local().Format("2006-01-02 15:04"),
		fmt.Sprintf("%dx%d", g.GridSize, g.GridSize),
		fmt.Sprintf("%d/%d", g.Found, g.WordCount),
		strconv.Itoa(g.Wrong),
		FormatDuration(time.Duration(g.DurationMs) * time.Millisecond),
		result,
	}
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Games   []model.GameAggregate
	Summary Summary
}

// BuildReport loads games matching filter and summarizes them.
func BuildReport(ctx context.Context, src GameLister, filter model.HistoryFilter) (Report, error) {
	games, err := src.ListGames(ctx, filter)
	if err != nil {
		return Report{}, fmt.Errorf("list games: %w", err)
	}
	return Report{Games: games, Summary: Summarize(games)}, nil
}

// WriteReport prints the summary followed by the most recent games.
func WriteReport(w io.Writer, r Report, p Palette) error {
	if err := RenderSummary(w, r.Summary, p); err != nil {
		return err
	}
	if len(r.Games) == 0 {
		return nil
	}
	games := r.Games
	if len(games) > maxTableRows {
		games = games[len(games)-maxTableRows:]
	}
	rows := make([][]string, 0, len(games))
	for i := len(games) - 1; i >= 0; i-- {
		rows = append(rows, GameRow(games[i]))
	}
	lines := formatTable(GameColumns, rows, map[int]bool{2: true, 3: true, 4: true})
	if _, err := fmt.Fprintln(w, p.title("Recent games")); err != nil {
		return err
	}
	for i, line := range lines {
		if i == 0 {
			line = p.muted(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
