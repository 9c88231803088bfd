package trials

import (
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Report is the outcome of one trial run. Records is empty for reports read
// back from storage; the tallies are always present.
type Report struct {
	ID           uuid.UUID       `json:"id"`
	StartedAt    time.Time       `json:"startedAt"`
	Duration     time.Duration   `json:"durationNs"`
	Rules        string          `json:"rules"`
	Seed         uint64          `json:"seed"`
	MaxGuesses   int             `json:"maxGuesses"`
	Records      []solver.Record `json:"records,omitempty"`
	Distribution []int           `json:"distribution"`
}

// Tally counts records by WinIndex: slot 0 holds losses, slot k the games won
// in k guesses.
func Tally(records []solver.Record, maxGuesses int) []int {
	dist := make([]int, maxGuesses+1)
	for _, r := range records {
		dist[r.WinIndex()]++
	}
	return dist
}

func (r Report) Games() int {
	n := 0
	for _, c := range r.Distribution {
		n += c
	}
	return n
}

func (r Report) Losses() int {
	if len(r.Distribution) == 0 {
		return 0
	}
	return r.Distribution[0]
}

func (r Report) Wins() int { return r.Games() - r.Losses() }

// MeanGuesses averages the guess count over won games only.
func (r Report) MeanGuesses() float64 {
	wins := r.Wins()
	if wins == 0 {
		return 0
	}
	sum := 0
	for k := 1; k < len(r.Distribution); k++ {
		sum += k * r.Distribution[k]
	}
	return float64(sum) / float64(wins)
}

func (r Report) WinRate() float64 {
	games := r.Games()
	if games == 0 {
		return 0
	}
	return float64(r.Wins()) / float64(games)
}
