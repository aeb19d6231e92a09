package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/search"
)

// ErrNoPair is returned when no start/target pair can be drawn.
var ErrNoPair = errors.New("game: no word pair available")

// PairOptions tune PickPair.
type PairOptions struct {
	// RequireReachable redraws until the target is reachable from the start.
	RequireReachable bool
	// Attempts bounds the number of draws when RequireReachable is set (0 → 200).
	Attempts int
}

// PickPair draws two distinct words of the lengths belonging to d.
// When the band holds fewer than two words every lexicon word is a candidate.
func PickPair(g *ladder.Graph, d Difficulty, rng *rand.Rand, opts PairOptions) (string, string, error) {
	candidates := g.WordsOfLength(d.Lengths()...)
	if len(candidates) < 2 {
		candidates = g.Words()
	}
	if len(candidates) < 2 {
		return "", "", ErrNoPair
	}

	draw := func() (string, string) {
		i := rng.IntN(len(candidates))
		j := rng.IntN(len(candidates) - 1)
		if j >= i {
			j++
		}
		return candidates[i], candidates[j]
	}

	if !opts.RequireReachable {
		s, t := draw()
		return s, t, nil
	}

	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 200
	}
	for n := 0; n < attempts; n++ {
		s, t := draw()
		if len(g.Neighbors(s)) == 0 || len(g.Neighbors(t)) == 0 {
			continue
		}
		path, _, err := search.Search(search.BFS, g, s, t)
		if err != nil {
			return "", "", err
		}
		if len(path) > 1 {
			return s, t, nil
		}
	}
	return "", "", fmt.Errorf("%w: no reachable %s pair after %d draws", ErrNoPair, d, attempts)
}
