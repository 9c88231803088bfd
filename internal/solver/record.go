package solver

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Record summarizes one finished game. It is never modified after creation.
type Record struct {
	answer  string
	guesses []string
	won     bool
}

// NewRecord copies guesses so later changes by the caller do not leak in.
func NewRecord(answer string, guesses []string, won bool) Record {
	return Record{answer: answer, guesses: slices.Clone(guesses), won: won}
}

func (r Record) Answer() string { return r.answer }
func (r Record) Won() bool      { return r.won }

// Guesses returns a copy of the guesses in the order they were made.
func (r Record) Guesses() []string { return slices.Clone(r.guesses) }

// WinIndex is the number of guesses a won game took, or 0 for a loss.
func (r Record) WinIndex() int {
	if r.won {
		return len(r.guesses)
	}
	return 0
}

func (r Record) String() string {
	return fmt.Sprintf("%s\tWIN: %t -> %v", r.answer, r.won, r.guesses)
}

type recordJSON struct {
	Answer  string   `json:"answer"`
	Guesses []string `json:"guesses"`
	Won     bool     `json:"won"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	guesses := r.guesses
	if guesses == nil {
		guesses = []string{}
	}
	return json.Marshal(recordJSON{Answer: r.answer, Guesses: guesses, Won: r.won})
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = NewRecord(raw.Answer, raw.Guesses, raw.Won)
	return nil
}
