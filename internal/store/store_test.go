package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/trials"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	g := game.New("crane", 6)
	g.ID = "g1"
	require.NoError(t, s.Save(ctx, g))

	got, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New("crane", 6)
	g.ID = "g1"
	require.NoError(t, s.Save(ctx, g))

	require.NoError(t, s.Update(ctx, "g1", func(g *game.Game) error {
		return g.Submit("slate")
	}))
	assert.Equal(t, []string{"slate"}, g.Guesses())

	boom := errors.New("boom")
	assert.ErrorIs(t, s.Update(ctx, "g1", func(*game.Game) error { return boom }), boom)
	assert.ErrorIs(t, s.Update(ctx, "nope", func(*game.Game) error { return nil }), ErrNotFound)
}

func sampleReport(started time.Time) trials.Report {
	return trials.Report{
		ID:           uuid.New(),
		StartedAt:    started,
		Duration:     1500 * time.Millisecond,
		Rules:        "standard",
		Seed:         ^uint64(0),
		MaxGuesses:   6,
		Distribution: []int{1, 0, 2, 3, 0, 0, 0},
	}
}

func TestReportsSaveGet(t *testing.T) {
	ctx := context.Background()
	reps := NewReports(openTestDB(t))

	want := sampleReport(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, reps.Save(ctx, want))

	got, err := reps.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.True(t, want.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, want.Duration, got.Duration)
	assert.Equal(t, want.Seed, got.Seed)
	assert.Equal(t, want.Distribution, got.Distribution)
	assert.Equal(t, 6, got.Games())
	assert.Empty(t, got.Records)

	_, err = reps.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, reps.Save(ctx, want), "duplicate id")
}

func TestReportsListNewestFirst(t *testing.T) {
	ctx := context.Background()
	reps := NewReports(openTestDB(t))

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := range 3 {
		r := sampleReport(base.Add(time.Duration(i) * time.Hour))
		ids = append(ids, r.ID)
		require.NoError(t, reps.Save(ctx, r))
	}

	list, err := reps.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}
