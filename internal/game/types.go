// internal/game/types.go
//
// Core type definitions for the Wordle game state machine.
// Defines:
//   - Mark:   per-letter result of a guess (correct/present/absent).
//   - Status: lifecycle of a single game (playing → won/lost).
//   - Rules:  how duplicate letters are scored.
//   - Game:   grid, answer and progress of one game.

package game

import (
	"errors"
	"fmt"
)

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the answer at this exact position.
//   - "present": letter exists in the answer but in a different position.
//   - "absent":  letter does not exist in the answer at all.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Status is the lifecycle state of a game. Won and Lost are terminal.
type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

// String reports the coarse state string used on the wire.
func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// Rules selects the scoring of repeated letters.
//
// Positional marks a cell Present whenever the guessed letter occurs anywhere
// in the answer, regardless of how many copies the rest of the row already
// used. Standard is the classic two-pass multiset scoring.
type Rules int

const (
	Positional Rules = iota
	Standard
)

func (r Rules) String() string {
	if r == Standard {
		return "standard"
	}
	return "positional"
}

// ParseRules maps a config value to Rules.
func ParseRules(s string) (Rules, error) {
	switch s {
	case "", "positional":
		return Positional, nil
	case "standard":
		return Standard, nil
	}
	return Positional, fmt.Errorf("game: unknown scoring rules %q", s)
}

var (
	ErrInvalidGuess = errors.New("invalid guess")
	ErrFinished     = errors.New("game finished")
)

// Game holds the state of a single Wordle game.
type Game struct {
	ID string // Optional identifier assigned by the session layer.

	answer string
	rules  Rules
	grid   [][]byte // maxGuesses rows of len(answer) letters, 0 = blank
	next   int      // index of the next empty row
	status Status
}
