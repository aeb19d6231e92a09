package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordladder/internal/ladder"
)

// Hint returns the word that follows current on the path found by strategy.
// ErrNoHint is returned (with stats) when current already equals target or
// target is unreachable; unknown words yield ErrUnknownWord.
func Hint(strategy Strategy, g *ladder.Graph, current, target string) (string, *Stats, error) {
	path, stats, err := Search(strategy, g, current, target)
	if err != nil {
		return "", nil, err
	}
	if len(path) < 2 {
		return "", stats, ErrNoHint
	}
	return path[1], stats, nil
}

// Result is one strategy's outcome in a comparison.
type Result struct {
	Strategy Strategy `json:"strategy"`
	Path     []string `json:"path"`
	Stats    *Stats   `json:"stats"`
}

// Moves returns the number of edges in the path, or -1 when no path was found.
func (r Result) Moves() int { return len(r.Path) - 1 }

// Compare runs each strategy as an independent search over the shared graph,
// one goroutine per strategy. With no strategies given, all four are run.
// Results are returned in the requested order.
func Compare(ctx context.Context, g *ladder.Graph, start, target string, strategies ...Strategy) ([]Result, error) {
	if len(strategies) == 0 {
		strategies = All()
	}
	out := make([]Result, len(strategies))

	eg, ctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, stats, err := Search(s, g, start, target)
			if err != nil {
				return err
			}
			out[i] = Result{Strategy: s, Path: path, Stats: stats}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
