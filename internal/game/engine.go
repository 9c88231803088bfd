// internal/game/engine.go
//
// Game state machine for a single Wordle game.
// Responsibilities:
//   - Create games with a fixed answer and guess budget (grid of rows × letters).
//   - Validate and place guesses (shape only; dictionary checks belong to callers).
//   - Score any placed cell or row against the answer.
//   - Track state transitions: playing → won/lost. Terminal games are frozen.
//
// Notes:
//   - Scoring follows the game's Rules. Positional scoring checks each cell on
//     its own, so a repeated guess letter may be marked present more than once.
//   - The answer defines the word length.
package game

import (
	"strings"
)

// Default dimensions of a standard game.
const (
	DefaultGuesses = 6
	DefaultLength  = 5
)

// Option configures a Game at construction.
type Option func(*Game)

// WithRules selects the duplicate-letter scoring.
func WithRules(r Rules) Option {
	return func(g *Game) { g.rules = r }
}

// New constructs a game for answer with the given guess budget.
// The answer is lowercased; a non-positive budget falls back to DefaultGuesses.
func New(answer string, guesses int, opts ...Option) *Game {
	if guesses <= 0 {
		guesses = DefaultGuesses
	}
	ans := strings.ToLower(strings.TrimSpace(answer))
	g := &Game{
		answer: ans,
		grid:   make([][]byte, guesses),
	}
	for i := range g.grid {
		g.grid[i] = make([]byte, len(ans))
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Submit validates a guess and places it on the next row.
//
// Validation rules (no state change on failure):
//   - Game must not be finished (ErrFinished).
//   - Guess must be exactly Length() letters, alphabetic a–z (ErrInvalidGuess).
//
// State transitions:
//   - Row equals the answer → Won.
//   - Else if every row is used → Lost.
func (g *Game) Submit(word string) error {
	if g.status != InProgress {
		return ErrFinished
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if !ValidShape(word, len(g.answer)) {
		return ErrInvalidGuess
	}

	copy(g.grid[g.next], word)
	g.next++

	if word == g.answer {
		g.status = Won
	} else if g.next == len(g.grid) {
		g.status = Lost
	}
	return nil
}

// ScoreCell evaluates one placed letter against the answer.
func (g *Game) ScoreCell(row, col int) Mark {
	if g.rules == Standard {
		return g.ScoreRow(row)[col]
	}
	return scorePositional(g.answer, g.grid[row][col], col)
}

// ScoreRow evaluates every cell of a placed row.
func (g *Game) ScoreRow(row int) []Mark {
	return Score(g.answer, string(g.grid[row]), g.rules)
}

// Score evaluates guess against answer without a game, under the given rules.
// Both words must have the same length.
func Score(answer, guess string, rules Rules) []Mark {
	if rules == Standard {
		return scoreStandard(answer, guess)
	}
	res := make([]Mark, len(guess))
	for i := 0; i < len(guess); i++ {
		res[i] = scorePositional(answer, guess[i], i)
	}
	return res
}

// scorePositional scores a single letter without regard to other cells.
func scorePositional(answer string, c byte, col int) Mark {
	switch {
	case c == answer[col]:
		return MarkCorrect
	case strings.IndexByte(answer, c) >= 0:
		return MarkPresent
	default:
		return MarkAbsent
	}
}

// scoreStandard implements the two-pass Wordle scoring.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) answer letters.
//
// Pass 2:
//   - For each non-correct guess letter: if a remaining count exists,
//     mark Present and decrement; otherwise mark Absent.
func scoreStandard(answer, guess string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkCorrect
		} else {
			counts[idx(answer[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c) - 'a' }

// ValidShape reports whether word is a well-formed guess of the given length:
// non-empty, exactly length letters, all a–z.
func ValidShape(word string, length int) bool {
	if word == "" || len(word) != length {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

// Last returns the index of the most recently submitted row, or -1.
func (g *Game) Last() int { return g.next - 1 }

// Won reports whether the last submitted row equals the answer.
func (g *Game) Won() bool {
	return g.next > 0 && string(g.grid[g.next-1]) == g.answer
}

// Row returns the letters placed on row i ("" for an unused row).
func (g *Game) Row(i int) string {
	if i < 0 || i >= g.next {
		return ""
	}
	return string(g.grid[i])
}

// Guesses returns the submitted guesses in order.
func (g *Game) Guesses() []string {
	out := make([]string, g.next)
	for i := range out {
		out[i] = string(g.grid[i])
	}
	return out
}

func (g *Game) Done() bool      { return g.status != InProgress }
func (g *Game) Status() Status  { return g.status }
func (g *Game) Answer() string  { return g.answer }
func (g *Game) Rules() Rules    { return g.rules }
func (g *Game) Length() int     { return len(g.answer) }
func (g *Game) MaxGuesses() int { return len(g.grid) }
func (g *Game) Remaining() int  { return len(g.grid) - g.next }
