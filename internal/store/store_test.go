package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wordgrid/internal/game"
	"github.com/verte-zerg/wordgrid/internal/model"
)

var _ game.KV = (*Store)(nil)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "wordgrid.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSnapshotKV(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()

	if _, ok, err := st.Get(ctx, "grid"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := st.Set(ctx, "grid", []byte(`[["A"]]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "grid", []byte(`[["B"]]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, ok, err := st.Get(ctx, "grid")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(value) != `[["B"]]` {
		t.Fatalf("unexpected value %s", value)
	}
	if err := st.Delete(ctx, "grid"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := st.Get(ctx, "grid"); ok {
		t.Fatalf("expected key removed")
	}
	if err := st.Delete(ctx, "grid"); err != nil {
		t.Fatalf("deleting a missing key: %v", err)
	}
}

func TestSnapshotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordgrid.db")
	ctx := context.Background()
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.Set(ctx, "grid", []byte("snapshot")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = st.Close() }()
	value, ok, err := st.Get(ctx, "grid")
	if err != nil || !ok || string(value) != "snapshot" {
		t.Fatalf("expected snapshot after reopen, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestGames(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		start := base.Add(time.Duration(i) * 24 * time.Hour)
		rec := model.GameRecord{
			SessionKey: "grid",
			StartedAt:  start,
			EndedAt:    start.Add(2 * time.Minute),
			GridSize:   10,
			WordCount:  5,
			Found:      i + 2,
			Wrong:      i,
			Won:        i+2 >= 5,
		}
		if _, err := st.InsertGame(ctx, rec); err != nil {
			t.Fatalf("insert game: %v", err)
		}
	}

	all, err := st.ListGames(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 games, got %d", len(all))
	}
	if all[0].DurationMs != 120000 || all[0].Won || !all[3].Won {
		t.Fatalf("unexpected games %+v", all)
	}

	since := base.Add(36 * time.Hour)
	recent, err := st.ListGames(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 games since %v, got %d", since, len(recent))
	}

	last, err := st.ListGames(ctx, model.HistoryFilter{Last: 1})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 1 || last[0].GameID != all[3].GameID {
		t.Fatalf("expected newest game, got %+v", last)
	}
}
