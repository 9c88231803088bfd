package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/solver/internal/trials"
)

// timeLayout has fixed-width fractions so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Reports persists trial tallies. Per-game records are not stored, so
// reports read back have an empty Records slice.
type Reports struct{ db *sql.DB }

func NewReports(db *sql.DB) *Reports { return &Reports{db: db} }

func (s *Reports) Save(ctx context.Context, r trials.Report) error {
	dist, err := json.Marshal(r.Distribution)
	if err != nil {
		return fmt.Errorf("encode distribution: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO trial_reports
            (id, started_at, duration_ms, rules, seed, max_guesses, games, wins, mean_guesses, distribution)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.StartedAt.UTC().Format(timeLayout), r.Duration.Milliseconds(),
		r.Rules, strconv.FormatUint(r.Seed, 10), r.MaxGuesses,
		r.Games(), r.Wins(), r.MeanGuesses(), string(dist),
	)
	if err != nil {
		return fmt.Errorf("insert report %s: %w", r.ID, err)
	}
	return nil
}

func (s *Reports) Get(ctx context.Context, id uuid.UUID) (trials.Report, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, started_at, duration_ms, rules, seed, max_guesses, distribution
        FROM trial_reports WHERE id=?`, id.String())
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return trials.Report{}, ErrNotFound
	}
	return r, err
}

// List returns the most recent reports first. Default limit is 20.
func (s *Reports) List(ctx context.Context, limit int) ([]trials.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, started_at, duration_ms, rules, seed, max_guesses, distribution
        FROM trial_reports
        ORDER BY started_at DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]trials.Report, 0, limit)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanReport(s scanner) (trials.Report, error) {
	var (
		r                       trials.Report
		id, started, seed, dist string
		durMs                   int64
	)
	if err := s.Scan(&id, &started, &durMs, &r.Rules, &seed, &r.MaxGuesses, &dist); err != nil {
		return r, err
	}

	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return r, fmt.Errorf("report id %q: %w", id, err)
	}
	if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return r, fmt.Errorf("report %s started_at: %w", id, err)
	}
	if r.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return r, fmt.Errorf("report %s seed: %w", id, err)
	}
	if err := json.Unmarshal([]byte(dist), &r.Distribution); err != nil {
		return r, fmt.Errorf("report %s distribution: %w", id, err)
	}
	r.Duration = time.Duration(durMs) * time.Millisecond
	return r, nil
}
