// internal/words/words.go
//
// Word list loading for the ladder lexicon.
//
// Responsibilities:
//   - Load a word list from a file (WORDS_FILE) or fall back to the embedded default.
//   - Normalize entries: trim, lowercase, alphabetic a–z only, length within [min, max].
//   - Deduplicate while keeping first-seen order.
//
// File format:
//   One word per line. Blank lines and lines starting with '#' are skipped.
//   Lines failing the alphabet or length policy are dropped silently.
//
// Constraints:
//   • Default length policy is 3–6 letters (DefaultMinLen/DefaultMaxLen).
//   • The embedded default is parsed once (sync.Once) and shared read-only.

package words

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordladder/assets"
)

const (
	DefaultMinLen = 3
	DefaultMaxLen = 6
)

// ErrEmpty is returned when no word survives filtering.
var ErrEmpty = errors.New("words: word list is empty")

// Options control where words come from and which lengths are kept.
type Options struct {
	Path   string // optional file; empty means the embedded default
	MinLen int    // minimum word length (0 → DefaultMinLen)
	MaxLen int    // maximum word length (0 → DefaultMaxLen)
}

func (o Options) bounds() (int, int) {
	lo, hi := o.MinLen, o.MaxLen
	if lo <= 0 {
		lo = DefaultMinLen
	}
	if hi <= 0 {
		hi = DefaultMaxLen
	}
	return lo, hi
}

var (
	defaultOnce  sync.Once
	defaultWords []string
	defaultErr   error
)

// Default returns the embedded lexicon filtered to the default length policy.
// The result is shared; callers must not modify it.
func Default() ([]string, error) {
	defaultOnce.Do(func() {
		raw, err := assets.Words()
		if err != nil {
			defaultErr = err
			return
		}
		defaultWords, defaultErr = Parse(bytes.NewReader(raw), DefaultMinLen, DefaultMaxLen)
	})
	return defaultWords, defaultErr
}

// Load reads the word list described by opts.
func Load(opts Options) ([]string, error) {
	lo, hi := opts.bounds()
	if lo > hi {
		return nil, fmt.Errorf("words: min length %d exceeds max length %d", lo, hi)
	}
	if opts.Path == "" {
		return embedded(lo, hi)
	}
	f, err := os.Open(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", opts.Path, err)
	}
	defer f.Close()
	return Parse(f, lo, hi)
}

// embedded returns the embedded list for [lo, hi].
// Bounds inside the default policy filter the cached Default list; wider
// bounds need a fresh parse. The result is always a new slice.
func embedded(lo, hi int) ([]string, error) {
	if lo < DefaultMinLen || hi > DefaultMaxLen {
		raw, err := assets.Words()
		if err != nil {
			return nil, err
		}
		return Parse(bytes.NewReader(raw), lo, hi)
	}
	all, err := Default()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for _, w := range all {
		if len(w) >= lo && len(w) <= hi {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Parse reads one word per line from r and applies the normalization policy.
func Parse(r io.Reader, minLen, maxLen int) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w := strings.ToLower(line)
		if len(w) < minLen || len(w) > maxLen || !IsAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// IsAlpha reports whether s is non-empty and all lowercase ASCII letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Normalize trims and lowercases user input.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
