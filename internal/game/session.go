// Package game owns one play session: the board, its snapshot, and the selection engine.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordgrid/internal/grid"
	"github.com/verte-zerg/wordgrid/internal/model"
	"github.com/verte-zerg/wordgrid/internal/selection"
)

// DefaultSessionKey is the snapshot slot used when none is configured.
const DefaultSessionKey = "grid"

// Deps are the collaborators a Session is built from.
type Deps struct {
	KV        KV
	Generator *grid.Generator
	Scheduler selection.Scheduler
	Observer  func(selection.Event)
	Logger    zerolog.Logger
	Now       func() time.Time
}

// Session is the single controller for a game's mutable state.
type Session struct {
	cfg        model.Config
	engine     *selection.Engine
	placements []grid.Placement
	restored   bool
	startedAt  time.Time
	now        func() time.Time
	log        zerolog.Logger
}

// LoadOrCreate restores the cached grid for cfg.SessionKey, or generates and caches a new one.
// Only configuration errors are returned; storage problems are logged and play continues.
func LoadOrCreate(ctx context.Context, cfg model.Config, deps Deps) (*Session, error) {
	if err := grid.CheckWords(cfg.GridSize, cfg.Words); err != nil {
		return nil, err
	}
	if cfg.SessionKey == "" {
		cfg.SessionKey = DefaultSessionKey
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Generator == nil {
		deps.Generator = grid.New()
	}
	log := deps.Logger.With().Str("session", cfg.SessionKey).Logger()

	s := &Session{cfg: cfg, now: deps.Now, log: log}

	board, ok := s.restore(ctx, deps.KV)
	if !ok {
		var err error
		board, s.placements, err = deps.Generator.WithMaxAttempts(cfg.MaxAttempts).Generate(cfg.GridSize, cfg.Words)
		if err != nil {
			return nil, fmt.Errorf("generate grid: %w", err)
		}
		log.Debug().Int("size", cfg.GridSize).Int("words", len(cfg.Words)).Msg("generated grid")
		s.save(ctx, deps.KV, board)
	}

	s.engine = selection.New(board, cfg.Words, selection.Options{
		Rule:       cfg.Rule,
		WrongDelay: cfg.WrongDelay,
		Scheduler:  deps.Scheduler,
		Observer:   deps.Observer,
	})
	s.startedAt = s.now()
	return s, nil
}

func (s *Session) restore(ctx context.Context, kv KV) (grid.Grid, bool) {
	if kv == nil {
		return grid.Grid{}, false
	}
	data, found, err := kv.Get(ctx, s.cfg.SessionKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read cached grid; generating a new one")
		return grid.Grid{}, false
	}
	if !found {
		return grid.Grid{}, false
	}
	board, err := grid.Unmarshal(data)
	if err != nil {
		s.log.Warn().Err(err).Msg("ignoring cached grid")
		return grid.Grid{}, false
	}
	if board.Size() != s.cfg.GridSize {
		s.log.Warn().Int("cached", board.Size()).Int("configured", s.cfg.GridSize).Msg("cached grid size differs; generating a new one")
		return grid.Grid{}, false
	}
	for _, w := range s.cfg.Words {
		if !board.Contains(w) {
			s.log.Warn().Str("word", w).Msg("cached grid is missing a target word; generating a new one")
			return grid.Grid{}, false
		}
	}
	s.restored = true
	s.log.Debug().Msg("restored cached grid")
	return board, true
}

func (s *Session) save(ctx context.Context, kv KV, board grid.Grid) {
	if kv == nil {
		return
	}
	data, err := grid.Marshal(board)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode grid")
		return
	}
	if err := kv.Set(ctx, s.cfg.SessionKey, data); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache grid")
	}
}

// Forget drops the cached grid so the next session generates a fresh board.
func Forget(ctx context.Context, kv KV, key string) error {
	if key == "" {
		key = DefaultSessionKey
	}
	if err := kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete cached grid %q: %w", key, err)
	}
	return nil
}

// IsConfigError reports whether err is a fatal configuration problem.
func IsConfigError(err error) bool {
	return errors.Is(err, grid.ErrConfig)
}

// Click is the cell-click action.
func (s *Session) Click(row, col int) bool {
	return s.engine.Click(model.Position{Row: row, Col: col})
}

// Validate is the validate action.
func (s *Session) Validate() selection.Result {
	res := s.engine.Validate()
	switch res {
	case selection.ResultFound:
		s.log.Info().Strs("found", s.engine.Found()).Msg("word found")
	case selection.ResultWrong:
		s.log.Debug().Int("wrong", s.engine.WrongCount()).Msg("wrong selection")
	}
	return res
}

// Reset is the reset action.
func (s *Session) Reset() {
	s.engine.Reset()
}

// Board returns per-cell render state.
func (s *Session) Board() [][]selection.CellView {
	return s.engine.Board()
}

// Engine exposes read accessors of the selection engine.
func (s *Session) Engine() *selection.Engine {
	return s.engine
}

// Grid returns the board letters.
func (s *Session) Grid() grid.Grid {
	return s.engine.Grid()
}

// Placements returns where words were placed, or nil for a restored grid.
func (s *Session) Placements() []grid.Placement {
	return append([]grid.Placement(nil), s.placements...)
}

// Restored reports whether the board came from the snapshot cache.
func (s *Session) Restored() bool {
	return s.restored
}

// Won reports whether every word has been found.
func (s *Session) Won() bool {
	return s.engine.Won()
}

// Config returns the session configuration.
func (s *Session) Config() model.Config {
	return s.cfg
}

// Record summarizes the session for history.
func (s *Session) Record() model.GameRecord {
	return model.GameRecord{
		SessionKey: s.cfg.SessionKey,
		StartedAt:  s.startedAt,
		EndedAt:    s.now(),
		GridSize:   s.cfg.GridSize,
		WordCount:  len(s.cfg.Words),
		Found:      len(s.engine.Found()),
		Wrong:      s.engine.WrongCount(),
		Won:        s.engine.Won(),
	}
}
