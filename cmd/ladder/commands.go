// cmd/ladder/commands.go
//
// Subcommands: solve, hint, compare, neighbors, pair.
// Each prints a table by default or, with --json, the object the HTTP API
// returns for the same request.

package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/search"
	"github.com/robalobadob/wordladder/internal/words"
)

// solveOut mirrors the /solve response body.
type solveOut struct {
	Strategy search.Strategy `json:"strategy"`
	Path     []string        `json:"path"`
	Moves    int             `json:"moves"`
	Found    bool            `json:"found"`
	Stats    *search.Stats   `json:"stats"`
}

func toSolveOut(r search.Result) solveOut {
	return solveOut{
		Strategy: r.Strategy,
		Path:     r.Path,
		Moves:    r.Moves(),
		Found:    len(r.Path) > 0,
		Stats:    r.Stats,
	}
}

// --------------------------------- solve -----------------------------------

func (a *app) solveCmd() *cobra.Command {
	var strategy string
	cmd := &cobra.Command{
		Use:   "solve START TARGET",
		Short: "Find a path from START to TARGET",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := search.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			start, target := words.Normalize(args[0]), words.Normalize(args[1])
			path, stats, err := search.Search(st, a.graph, start, target)
			if err != nil {
				return err
			}
			a.log.Debug().Str("strategy", string(st)).Int("explored", stats.NodesExplored).Msg("solve")

			out := toSolveOut(search.Result{Strategy: st, Path: path, Stats: stats})
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			return writeSolve(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&strategy, "strategy", "s", string(search.AStar), "bfs, ucs, gbfs or astar")
	return cmd
}

func writeSolve(w io.Writer, out solveOut) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "strategy\t%s\n", out.Strategy.Label())
	if out.Found {
		fmt.Fprintf(tw, "path\t%s\n", strings.Join(out.Path, " -> "))
		fmt.Fprintf(tw, "moves\t%d\n", out.Moves)
	} else {
		fmt.Fprintf(tw, "path\tnone\n")
	}
	writeStatsRows(tw, out.Stats)
	fmt.Fprintln(tw)
	writeCosts(tw, out.Stats)
	return tw.Flush()
}

func writeStatsRows(tw io.Writer, s *search.Stats) {
	fmt.Fprintf(tw, "explored\t%d\n", s.NodesExplored)
	fmt.Fprintf(tw, "max queue\t%d\n", s.MaxQueueSize)
	fmt.Fprintf(tw, "time\t%s\n", s.ExecutionTime.Round(time.Microsecond))
}

// writeCosts lists recorded costs ordered by g, then word.
func writeCosts(tw io.Writer, s *search.Stats) {
	keys := make([]string, 0, len(s.Costs))
	for w := range s.Costs {
		keys = append(keys, w)
	}
	slices.SortFunc(keys, func(x, y string) int {
		if d := s.Costs[x].G - s.Costs[y].G; d != 0 {
			return d
		}
		return strings.Compare(x, y)
	})
	fmt.Fprintln(tw, "WORD\tG\tH\tF")
	for _, w := range keys {
		c := s.Costs[w]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", w, c.G, c.H, c.F)
	}
}

// ---------------------------------- hint -----------------------------------

type hintOut struct {
	Hint  string        `json:"hint"`
	Stats *search.Stats `json:"stats"`
}

func (a *app) hintCmd() *cobra.Command {
	var strategy string
	cmd := &cobra.Command{
		Use:   "hint CURRENT TARGET",
		Short: "Print the next word on the way from CURRENT to TARGET",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := search.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			next, stats, err := search.Hint(st, a.graph, words.Normalize(args[0]), words.Normalize(args[1]))
			if err != nil && !errors.Is(err, search.ErrNoHint) {
				return err
			}
			w := cmd.OutOrStdout()
			if a.asJSON {
				if err != nil {
					_ = printJSON(w, map[string]any{"error": err.Error(), "stats": stats})
					return err
				}
				return printJSON(w, hintOut{Hint: next, Stats: stats})
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			if err == nil {
				fmt.Fprintf(tw, "hint\t%s\n", next)
			} else {
				fmt.Fprintf(tw, "hint\tnone\n")
			}
			writeStatsRows(tw, stats)
			if ferr := tw.Flush(); ferr != nil {
				return ferr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&strategy, "strategy", "s", string(search.AStar), "bfs, ucs, gbfs or astar")
	return cmd
}

// -------------------------------- compare ----------------------------------

func (a *app) compareCmd() *cobra.Command {
	var names []string
	cmd := &cobra.Command{
		Use:   "compare START TARGET",
		Short: "Run several strategies on the same pair side by side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategies := make([]search.Strategy, 0, len(names))
			for _, n := range names {
				st, err := search.ParseStrategy(n)
				if err != nil {
					return err
				}
				strategies = append(strategies, st)
			}
			results, err := search.Compare(cmd.Context(), a.graph,
				words.Normalize(args[0]), words.Normalize(args[1]), strategies...)
			if err != nil {
				return err
			}

			out := make([]solveOut, len(results))
			for i, r := range results {
				out[i] = toSolveOut(r)
			}
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{"results": out})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STRATEGY\tMOVES\tEXPLORED\tMAX QUEUE\tTIME\tPATH")
			for _, r := range out {
				moves, path := "-", "none"
				if r.Found {
					moves, path = fmt.Sprint(r.Moves), strings.Join(r.Path, " -> ")
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n", r.Strategy, moves,
					r.Stats.NodesExplored, r.Stats.MaxQueueSize,
					r.Stats.ExecutionTime.Round(time.Microsecond), path)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringSliceVarP(&names, "strategies", "s", nil, "strategies to run (default: all four)")
	return cmd
}

// ------------------------------- neighbors ---------------------------------

func (a *app) neighborsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors WORD",
		Short: "List the words one letter away from WORD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := words.Normalize(args[0])
			if !a.graph.Has(word) {
				return fmt.Errorf("%w: %q", search.ErrUnknownWord, word)
			}
			nbrs := a.graph.Neighbors(word)
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{"word": word, "neighbors": nbrs})
			}
			for _, n := range nbrs {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

// ---------------------------------- pair -----------------------------------

type pairOut struct {
	Start        string          `json:"start"`
	Target       string          `json:"target"`
	Difficulty   game.Difficulty `json:"difficulty"`
	OptimalMoves int             `json:"optimalMoves"`
	OptimalPath  []string        `json:"optimalPath"`
}

func (a *app) pairCmd() *cobra.Command {
	var (
		difficulty string
		seed       uint64
	)
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Draw a solvable start/target pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := game.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			engine := game.NewEngine(a.graph)
			if cmd.Flags().Changed("seed") {
				engine = game.NewSeededEngine(a.graph, seed, seed)
			}
			g, err := engine.NewGame(d, search.BFS)
			if err != nil {
				return err
			}
			out := pairOut{
				Start:        g.Start,
				Target:       g.Target,
				Difficulty:   d,
				OptimalMoves: len(g.Optimal) - 1,
				OptimalPath:  g.Optimal,
			}
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s, %d moves)\n",
				out.Start, out.Target, out.Difficulty, out.OptimalMoves)
			return nil
		},
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(game.Easy), "easy, medium or hard")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible pair")
	return cmd
}
