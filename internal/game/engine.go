// internal/game/engine.go
//
// Game engine for word ladder sessions.
// Responsibilities:
//   - Create games from a difficulty (random pair) or an explicit pair.
//   - Compute the optimal solution at game start (BFS) for scoring.
//   - Validate and apply moves (must be a neighbor of the current word).
//   - Produce single-step hints with the game's search strategy.
//   - Track state transitions: playing → won, with the final score.
//
// Notes:
//   - The engine shares one read-only ladder.Graph across all games.
//   - Each game is mutated under its own mutex; the engine's RNG under e.mu.

package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/search"
	"github.com/robalobadob/wordladder/internal/words"
)

var (
	ErrFinished    = errors.New("game finished")
	ErrNotAdjacent = errors.New("not a valid move")
	ErrUnknownWord = errors.New("word not in word list")
)

// Engine creates and drives games over a shared graph.
type Engine struct {
	graph *ladder.Graph

	mu  sync.Mutex // guards rng
	rng *rand.Rand
	now func() time.Time
}

// NewEngine returns an engine over g seeded from crypto/rand.
func NewEngine(g *ladder.Graph) *Engine {
	var seed [16]byte
	_, _ = crand.Read(seed[:])
	return NewSeededEngine(g, binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:]))
}

// NewSeededEngine returns an engine with a deterministic pair generator.
func NewSeededEngine(g *ladder.Graph, seed1, seed2 uint64) *Engine {
	return &Engine{graph: g, rng: rand.New(rand.NewPCG(seed1, seed2)), now: time.Now}
}

// SetClock replaces the clock used for game timestamps.
// Call it before the engine is shared.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Now returns the engine's current time in UTC.
func (e *Engine) Now() time.Time { return e.now().UTC() }

// Graph returns the shared lexicon graph.
func (e *Engine) Graph() *ladder.Graph { return e.graph }

// NewGame draws a reachable pair for d and starts a game on it.
func (e *Engine) NewGame(d Difficulty, strategy search.Strategy) (*Game, error) {
	e.mu.Lock()
	start, target, err := PickPair(e.graph, d, e.rng, PairOptions{RequireReachable: true})
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return e.Start(start, target, d, strategy)
}

// Start begins a game on an explicit pair.
// Both words must be in the lexicon; the pair need not be solvable.
func (e *Engine) Start(start, target string, d Difficulty, strategy search.Strategy) (*Game, error) {
	start, target = words.Normalize(start), words.Normalize(target)
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %q", search.ErrUnknownStrategy, strategy)
	}
	for _, w := range []string{start, target} {
		if !e.graph.Has(w) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWord, w)
		}
	}

	optimal, _, err := search.Search(search.BFS, e.graph, start, target)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:         uuid.NewString(),
		Start:      start,
		Target:     target,
		Current:    start,
		Difficulty: d,
		Strategy:   strategy,
		Path:       []string{start},
		Optimal:    optimal,
		Finished:   start == target,
		StartedAt:  e.Now(),
	}, nil
}

// Move advances g to word.
// Returns the new state, or an error when the game is over or word is not
// a neighbor of the current word.
func (e *Engine) Move(g *Game, word string) (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Finished {
		return g.state(), ErrFinished
	}
	word = words.Normalize(word)
	if !e.isNeighbor(g.Current, word) {
		return g.state(), fmt.Errorf("%w: %q -> %q", ErrNotAdjacent, g.Current, word)
	}

	g.Current = word
	g.Path = append(g.Path, word)
	if word == g.Target {
		g.Finished = true
		g.Score = Score(g.Path, g.Optimal, g.HintsUsed)
	}
	return g.state(), nil
}

func (e *Engine) isNeighbor(from, to string) bool {
	for _, n := range e.graph.Neighbors(from) {
		if n == to {
			return true
		}
	}
	return false
}

// Hint returns the next word from g's current position using g's strategy.
// Only successful hints count toward HintsUsed; the stats are kept either way.
func (e *Engine) Hint(g *Game) (string, *search.Stats, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Finished {
		return "", nil, ErrFinished
	}
	next, stats, err := search.Hint(g.Strategy, e.graph, g.Current, g.Target)
	if stats != nil {
		g.LastStats = stats
	}
	if err != nil {
		return "", stats, err
	}
	g.HintsUsed++
	g.LastHint = next
	return next, stats, nil
}

// SetStrategy switches the strategy used for subsequent hints.
func (e *Engine) SetStrategy(g *Game, s search.Strategy) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", search.ErrUnknownStrategy, s)
	}
	g.mu.Lock()
	g.Strategy = s
	g.mu.Unlock()
	return nil
}

// ValidMoves lists the neighbors of g's current word with the costs recorded
// by the last hint search.
func (e *Engine) ValidMoves(g *Game) []MoveOption {
	g.mu.Lock()
	defer g.mu.Unlock()
	return e.validMoves(g)
}

func (e *Engine) validMoves(g *Game) []MoveOption {
	nbrs := e.graph.Neighbors(g.Current)
	out := make([]MoveOption, 0, len(nbrs))
	for _, w := range nbrs {
		opt := MoveOption{Word: w}
		if g.LastStats != nil {
			if c, ok := g.LastStats.Costs[w]; ok {
				opt.Cost = &c
			}
		}
		out = append(out, opt)
	}
	return out
}

// View snapshots g for presentation.
func (e *Engine) View(g *Game) View {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := View{
		ID:           g.ID,
		Start:        g.Start,
		Target:       g.Target,
		Current:      g.Current,
		Difficulty:   g.Difficulty,
		Strategy:     g.Strategy,
		Path:         append([]string(nil), g.Path...),
		Moves:        g.Moves(),
		HintsUsed:    g.HintsUsed,
		LastHint:     g.LastHint,
		State:        g.state(),
		Score:        g.Score,
		OptimalMoves: len(g.Optimal) - 1,
		ValidMoves:   e.validMoves(g),
		Stats:        g.LastStats,
	}
	if g.Finished {
		v.OptimalPath = append([]string(nil), g.Optimal...)
	}
	return v
}
