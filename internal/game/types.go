// internal/game/types.go
//
// Core type definitions for the word ladder game.
// Defines:
//   - Difficulty: word-length band used to draw start/target pairs.
//   - State: coarse lifecycle of a game (playing → won).
//   - Game: state for a single in-progress or finished ladder.
//   - View: JSON snapshot of a Game handed to the presentation layer.

package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robalobadob/wordladder/internal/search"
)

// Difficulty selects the word lengths a pair is drawn from.
type Difficulty string

const (
	Easy   Difficulty = "easy"   // 3-letter words
	Medium Difficulty = "medium" // 4-letter words
	Hard   Difficulty = "hard"   // 5- and 6-letter words
)

// Lengths returns the word lengths that belong to d.
func (d Difficulty) Lengths() []int {
	switch d {
	case Easy:
		return []int{3}
	case Medium:
		return []int{4}
	default:
		return []int{5, 6}
	}
}

// ParseDifficulty maps user input to a Difficulty; empty input means Easy.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return "", fmt.Errorf("game: unknown difficulty %q", s)
}

// DifficultyOf returns the band a word's length belongs to.
func DifficultyOf(word string) Difficulty {
	switch n := len(word); {
	case n <= 3:
		return Easy
	case n == 4:
		return Medium
	}
	return Hard
}

// State is the lifecycle of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
)

// Game holds the state of a single ladder session.
// Mutations go through Engine, which serializes them on mu.
type Game struct {
	mu sync.Mutex

	ID         string          // unique game identifier (uuid)
	Start      string          // start word
	Target     string          // target word
	Current    string          // word the player is on
	Difficulty Difficulty      // band the pair was drawn from
	Strategy   search.Strategy // strategy used for hints
	Path       []string        // words visited so far, Start first
	Optimal    []string        // shortest solution computed at start; empty if unsolvable
	HintsUsed  int             // hints handed out
	LastHint   string          // most recent hint word
	LastStats  *search.Stats   // statistics of the most recent hint search
	Finished   bool            // target reached
	Score      int             // final score once finished
	StartedAt  time.Time
}

// Moves is the number of moves made so far.
func (g *Game) Moves() int { return len(g.Path) - 1 }

func (g *Game) state() State {
	if g.Finished {
		return StateWon
	}
	return StatePlaying
}

// MoveOption is a valid next word together with the costs the last hint
// search recorded for it, if any.
type MoveOption struct {
	Word string       `json:"word"`
	Cost *search.Cost `json:"cost,omitempty"`
}

// View is the JSON shape of a game.
// The optimal path is only revealed once the game is finished.
type View struct {
	ID           string          `json:"gameId"`
	Start        string          `json:"start"`
	Target       string          `json:"target"`
	Current      string          `json:"current"`
	Difficulty   Difficulty      `json:"difficulty"`
	Strategy     search.Strategy `json:"strategy"`
	Path         []string        `json:"path"`
	Moves        int             `json:"moves"`
	HintsUsed    int             `json:"hintsUsed"`
	LastHint     string          `json:"lastHint,omitempty"`
	State        State           `json:"state"`
	Score        int             `json:"score"`
	OptimalMoves int             `json:"optimalMoves"`
	OptimalPath  []string        `json:"optimalPath,omitempty"`
	ValidMoves   []MoveOption    `json:"validMoves"`
	Stats        *search.Stats   `json:"stats,omitempty"`
}
