package daily

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Result is the solver's game for one day.
type Result struct {
	Date      string        `json:"date"`
	WordIndex int           `json:"wordIndex"`
	Record    solver.Record `json:"record"`
}

// Store keeps one Result per date in the daily_solves table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Get returns the stored result for date; ok is false when there is none.
func (s *Store) Get(ctx context.Context, date string) (r Result, ok bool, err error) {
	var answer, guesses string
	var won bool
	err = s.db.QueryRowContext(ctx,
		`SELECT date, word_index, answer, guesses, won FROM daily_solves WHERE date=?`, date,
	).Scan(&r.Date, &r.WordIndex, &answer, &guesses, &won)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}
	var list []string
	if err := json.Unmarshal([]byte(guesses), &list); err != nil {
		return Result{}, false, fmt.Errorf("daily %s guesses: %w", date, err)
	}
	r.Record = solver.NewRecord(answer, list, won)
	return r, true, nil
}

// Insert stores r. A row already present for the date is kept, and
// inserted reports whether r was written.
func (s *Store) Insert(ctx context.Context, r Result) (inserted bool, err error) {
	guesses, err := json.Marshal(r.Record.Guesses())
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_solves(date, word_index, answer, guesses, won)
        VALUES (?, ?, ?, ?, ?)`,
		r.Date, r.WordIndex, r.Record.Answer(), string(guesses), r.Record.Won(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// History returns the most recent days first. Default limit is 20.
func (s *Store) History(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT date, word_index, answer, guesses, won
        FROM daily_solves
        ORDER BY date DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r               Result
			answer, guesses string
			won             bool
			list            []string
		)
		if err := rows.Scan(&r.Date, &r.WordIndex, &answer, &guesses, &won); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(guesses), &list); err != nil {
			return nil, fmt.Errorf("daily %s guesses: %w", r.Date, err)
		}
		r.Record = solver.NewRecord(answer, list, won)
		out = append(out, r)
	}
	return out, rows.Err()
}
