// Package model defines shared data structures.
package model

import "time"

// SelectionRule controls which clicks extend a selection.
type SelectionRule int

const (
	// RuleStrict accepts only adjacent clicks continuing the direction set by the first two cells.
	RuleStrict SelectionRule = iota
	// RuleFree accepts any in-bounds click and relies on the final string match.
	RuleFree
)

// String returns the config name of the rule.
func (r SelectionRule) String() string {
	if r == RuleFree {
		return "free"
	}
	return "strict"
}

// ParseSelectionRule maps a config name to a rule.
func ParseSelectionRule(s string) (SelectionRule, bool) {
	switch s {
	case "", "strict":
		return RuleStrict, true
	case "free":
		return RuleFree, true
	default:
		return RuleStrict, false
	}
}

// Position is a 0-indexed grid coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Adjacent reports whether other is one of the eight neighbours of p.
func (p Position) Adjacent(other Position) bool {
	dr := abs(p.Row - other.Row)
	dc := abs(p.Col - other.Col)
	return dr <= 1 && dc <= 1 && !(dr == 0 && dc == 0)
}

// Sub returns the step from other to p.
func (p Position) Sub(other Position) (dr, dc int) {
	return p.Row - other.Row, p.Col - other.Col
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Config defines game settings.
type Config struct {
	GridSize    int
	Words       []string
	Rule        SelectionRule
	WrongDelay  time.Duration
	SessionKey  string
	MaxAttempts int
	Seed        int64
}

// GameRecord captures a finished or abandoned game.
type GameRecord struct {
	SessionKey string
	StartedAt  time.Time
	EndedAt    time.Time
	GridSize   int
	WordCount  int
	Found      int
	Wrong      int
	Won        bool
}

// HistoryFilter narrows history queries.
type HistoryFilter struct {
	Since *time.Time
	Last  int
}

// GameAggregate summarizes a stored game for reporting.
type GameAggregate struct {
	GameID     int64
	EndedAt    time.Time
	GridSize   int
	WordCount  int
	Found      int
	Wrong      int
	Won        bool
	DurationMs int64
}
