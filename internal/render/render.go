// internal/render/render.go
//
// Terminal rendering of a game grid, the letter keyboard and solver records.
//
// Colours follow the usual convention: green for correct, yellow for
// present, red for absent. The lipgloss renderer is bound to the output
// writer, so colour is dropped automatically when the writer is not a
// terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

type Renderer struct {
	title   lipgloss.Style
	correct lipgloss.Style
	present lipgloss.Style
	absent  lipgloss.Style
	muted   lipgloss.Style
}

// New returns a Renderer whose colour profile matches w.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		title:   r.NewStyle().Bold(true),
		correct: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		present: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		absent:  r.NewStyle().Foreground(lipgloss.Color("1")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (r *Renderer) letter(c byte, m game.Mark) string {
	s := string(c)
	switch m {
	case game.MarkCorrect:
		return r.correct.Render(s)
	case game.MarkPresent:
		return r.present.Render(s)
	case game.MarkAbsent:
		return r.absent.Render(s)
	}
	return s
}

// Grid draws every row of g. The row the next guess goes into is marked
// with "> " and unplayed cells show as "_".
func (r *Renderer) Grid(g *game.Game) string {
	var b strings.Builder
	b.WriteString(r.title.Render("    WORDLE"))
	b.WriteByte('\n')

	for i := 0; i < g.MaxGuesses(); i++ {
		if !g.Done() && i == g.Last()+1 {
			b.WriteString("> ")
		} else {
			b.WriteString("  ")
		}
		if i > g.Last() {
			b.WriteString(strings.Repeat("_ ", g.Length()))
			b.WriteByte('\n')
			continue
		}
		row := g.Row(i)
		marks := g.ScoreRow(i)
		for j := 0; j < len(row); j++ {
			b.WriteString(r.letter(row[j], marks[j]))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// Keyboard draws the QWERTY rows, each letter in the colour of its best mark.
func (r *Renderer) Keyboard(k Keyboard) string {
	var b strings.Builder
	for i, row := range qwerty {
		b.WriteString(strings.Repeat(" ", i))
		for j := 0; j < len(row); j++ {
			b.WriteString(r.letter(row[j], k.Mark(row[j])))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Record draws a solver record with its guesses coloured against the answer.
func (r *Renderer) Record(label string, rec solver.Record, rules game.Rules) string {
	var b strings.Builder
	outcome := r.absent.Render("LOSS")
	if rec.Won() {
		outcome = r.correct.Render(fmt.Sprintf("WIN in %d", rec.WinIndex()))
	}
	fmt.Fprintf(&b, "%s %s %s\n", r.title.Render(label+":"), rec.Answer(), outcome)
	for _, guess := range rec.Guesses() {
		marks := game.Score(rec.Answer(), guess, rules)
		b.WriteString("  ")
		for j := 0; j < len(guess); j++ {
			b.WriteString(r.letter(guess[j], marks[j]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Muted renders secondary text such as prompts and hints.
func (r *Renderer) Muted(s string) string { return r.muted.Render(s) }
