// internal/words/words.go
//
// Frequency-ordered word corpus shared by the solver, the trial runner and
// the HTTP server.
//
// Responsibilities:
//   - Parse word lists (plain one-per-line or ANC "word<TAB>count" layout).
//   - Hold the immutable master list and a lookup set.
//   - Hand out per-game clones and random answers from the answer pool.
//
// Constraints:
//   - Words are lowercase a–z of one uniform length.
//   - Order is preserved: index 0 is the most frequent word.
//   - A Corpus is read-only after New and safe for concurrent use.
package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// DefaultAnswerPool is how many of the most frequent words answers are drawn
// from. Rarer words stay valid guesses but are never picked as answers.
const DefaultAnswerPool = 2309

// ErrEmpty is returned when a list holds no usable word.
var ErrEmpty = errors.New("words: empty word list")

// Corpus is an ordered, deduplicated word list.
type Corpus struct {
	words []string
	set   map[string]struct{}
}

// New builds a corpus over a copy of list. Duplicates keep their first
// position.
func New(list []string) *Corpus {
	uniq := lo.Uniq(list)
	return &Corpus{
		words: uniq,
		set: lo.SliceToMap(uniq, func(w string) (string, struct{}) {
			return w, struct{}{}
		}),
	}
}

func (c *Corpus) Len() int { return len(c.words) }

// WordLength is the length of the corpus words, or 0 for an empty corpus.
func (c *Corpus) WordLength() int {
	if len(c.words) == 0 {
		return 0
	}
	return len(c.words[0])
}

// At returns the i-th most frequent word.
func (c *Corpus) At(i int) string { return c.words[i] }

// Words returns a copy of the full list.
func (c *Corpus) Words() []string { return slices.Clone(c.words) }

// Clone returns a private copy for one game's candidate engine.
func (c *Corpus) Clone() []string { return slices.Clone(c.words) }

// Contains reports whether w (any case) is in the corpus.
func (c *Corpus) Contains(w string) bool {
	_, ok := c.set[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// AnswerPool returns the n most frequent words, or all of them when the
// corpus is smaller. n <= 0 means the whole corpus.
func (c *Corpus) AnswerPool(n int) []string {
	return slices.Clone(c.words[:c.poolSize(n)])
}

// Random picks an answer uniformly from the first pool words.
func (c *Corpus) Random(rng *rand.Rand, pool int) string {
	return c.words[rng.IntN(c.poolSize(pool))]
}

func (c *Corpus) poolSize(n int) int {
	if n <= 0 || n > len(c.words) {
		return len(c.words)
	}
	return n
}

// Parse reads one word per line. Text after the first tab is ignored, blank
// lines and '#' comments are skipped, and only lowercase-able a–z words of
// the given length are kept, in first-seen order.
func Parse(r io.Reader, length int) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if tab := strings.IndexByte(line, '\t'); tab >= 0 {
			line = line[:tab]
		}
		w := strings.ToLower(strings.TrimSpace(line))
		if len(w) == length && isAlpha(w) {
			out = append(out, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: scan: %w", err)
	}
	return lo.Uniq(out), nil
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
