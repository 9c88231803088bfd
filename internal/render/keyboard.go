package render

import "github.com/robalobadob/wordle/apps/solver/internal/game"

// qwerty holds the keyboard rows in display order.
var qwerty = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// Keyboard remembers the best mark seen for each letter. It is a plain
// value: Update returns a new Keyboard and leaves the receiver untouched.
type Keyboard struct {
	keys [26]game.Mark
}

// Update folds one scored guess into the keyboard. A letter never loses
// information: correct beats present beats absent.
func (k Keyboard) Update(guess string, marks []game.Mark) Keyboard {
	for i, m := range marks {
		if i >= len(guess) {
			break
		}
		c := guess[i]
		if c < 'a' || c > 'z' {
			continue
		}
		if rank(m) > rank(k.keys[c-'a']) {
			k.keys[c-'a'] = m
		}
	}
	return k
}

// Mark returns the best mark seen for c, or "" if c was never guessed.
func (k Keyboard) Mark(c byte) game.Mark {
	if c < 'a' || c > 'z' {
		return ""
	}
	return k.keys[c-'a']
}

func rank(m game.Mark) int {
	switch m {
	case game.MarkCorrect:
		return 3
	case game.MarkPresent:
		return 2
	case game.MarkAbsent:
		return 1
	}
	return 0
}
