package words

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// Source says where Load looks for a corpus. Empty fields are skipped.
type Source struct {
	File    string
	URL     string
	Timeout time.Duration
}

// LoadFile parses the word list at path.
func LoadFile(path string, length int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, length)
}

// Fetch downloads and parses a word list. A nil client uses
// http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string, length int) ([]string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("words: request %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("words: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("words: fetch %s: status %d", url, resp.StatusCode)
	}
	return Parse(resp.Body, length)
}

// Embedded parses the word list compiled into the binary.
func Embedded(length int) ([]string, error) {
	f, err := assets.OpenWords()
	if err != nil {
		return nil, fmt.Errorf("words: open embedded list: %w", err)
	}
	defer f.Close()
	return Parse(f, length)
}

// Load tries src.URL, then src.File, then the embedded list, and returns the
// first non-empty result. Failures along the way are logged, not returned.
func Load(ctx context.Context, src Source, length int) (*Corpus, error) {
	if src.URL != "" {
		fctx := ctx
		if src.Timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(ctx, src.Timeout)
			defer cancel()
		}
		list, err := Fetch(fctx, nil, src.URL, length)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("url", src.URL).Msg("corpus fetch failed, falling back")
		case len(list) == 0:
			log.Warn().Str("url", src.URL).Int("length", length).Msg("fetched corpus has no words, falling back")
		default:
			log.Info().Str("url", src.URL).Int("words", len(list)).Msg("corpus loaded")
			return New(list), nil
		}
	}

	if src.File != "" {
		list, err := LoadFile(src.File, length)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("file", src.File).Msg("corpus file unreadable, falling back")
		case len(list) == 0:
			log.Warn().Str("file", src.File).Int("length", length).Msg("corpus file has no words, falling back")
		default:
			log.Info().Str("file", src.File).Int("words", len(list)).Msg("corpus loaded")
			return New(list), nil
		}
	}

	list, err := Embedded(length)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w for length %d", ErrEmpty, length)
	}
	log.Info().Int("words", len(list)).Msg("corpus loaded from embedded list")
	return New(list), nil
}
