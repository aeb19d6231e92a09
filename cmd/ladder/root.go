// cmd/ladder/root.go
//
// Root command and shared state.
// Responsibilities:
//   - Persistent flags: word list source, length policy, log level, JSON output.
//   - Build the graph once per invocation (PersistentPreRunE) for every subcommand.
//   - Logging goes to stderr through zerolog so stdout stays machine-readable.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/words"
)

// app carries flag values and the graph between cobra hooks and commands.
type app struct {
	wordsFile string
	minLen    int
	maxLen    int
	logLevel  string
	asJSON    bool

	log   zerolog.Logger
	graph *ladder.Graph
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ladder",
		Short:         "Solve and explore word ladders",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `Word ladder solver: change one letter at a time to get from START to TARGET.

Strategies:
  bfs    breadth-first search (fewest moves)
  ucs    uniform-cost search (fewest moves, priority queue)
  gbfs   greedy best-first search (Hamming distance only)
  astar  A* search (moves so far + Hamming distance)`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.wordsFile, "words", os.Getenv("WORDS_FILE"), "word list file (default: embedded list)")
	f.IntVar(&a.minLen, "min-len", words.DefaultMinLen, "minimum word length")
	f.IntVar(&a.maxLen, "max-len", words.DefaultMaxLen, "maximum word length")
	f.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	f.BoolVar(&a.asJSON, "json", false, "print JSON instead of a table")

	root.AddCommand(
		a.solveCmd(),
		a.hintCmd(),
		a.compareCmd(),
		a.neighborsCmd(),
		a.pairCmd(),
	)
	return root
}

// init configures logging and builds the graph.
func (a *app) init(stderr io.Writer) error {
	lvl, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(lvl).With().Timestamp().Logger()

	list, err := words.Load(words.Options{Path: a.wordsFile, MinLen: a.minLen, MaxLen: a.maxLen})
	if err != nil {
		return err
	}
	t0 := time.Now()
	a.graph = ladder.Build(list)
	a.log.Debug().
		Int("words", a.graph.Len()).
		Int("edges", a.graph.EdgeCount()).
		Dur("took", time.Since(t0)).
		Msg("word graph built")
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
