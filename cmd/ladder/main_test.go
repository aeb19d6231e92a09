package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/search"
)

// writeWords creates a word list holding the chain cold-cord-card-ward-warm
// and an isolated three-letter word.
func writeWords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("cold\ncord\ncard\nward\nwarm\ndog\n"), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--words", writeWords(t)}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSolveJSON(t *testing.T) {
	out, err := run(t, "solve", "cold", "warm", "--strategy", "bfs", "--json")
	require.NoError(t, err)

	var res solveOut
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, search.BFS, res.Strategy)
	assert.True(t, res.Found)
	assert.Equal(t, 4, res.Moves)
	assert.Equal(t, []string{"cold", "cord", "card", "ward", "warm"}, res.Path)
	assert.Equal(t, 0, res.Stats.Costs["cold"].G)
}

func TestSolveTable(t *testing.T) {
	out, err := run(t, "solve", "COLD", "warm")
	require.NoError(t, err)
	assert.Contains(t, out, "cold -> cord -> card -> ward -> warm")
	assert.Contains(t, out, "WORD")
	assert.Contains(t, out, "A*")
}

func TestSolveErrors(t *testing.T) {
	_, err := run(t, "solve", "cold", "zzzz")
	require.ErrorIs(t, err, search.ErrUnknownWord)

	_, err = run(t, "solve", "cold", "warm", "--strategy", "dfs")
	require.ErrorIs(t, err, search.ErrUnknownStrategy)

	_, err = run(t, "solve", "cold")
	require.Error(t, err)
}

func TestHint(t *testing.T) {
	out, err := run(t, "hint", "cold", "warm", "--json")
	require.NoError(t, err)
	var res hintOut
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "cord", res.Hint)
	assert.Equal(t, search.AStar, res.Stats.Strategy)

	out, err = run(t, "hint", "warm", "warm")
	require.ErrorIs(t, err, search.ErrNoHint)
	assert.Contains(t, out, "none")
}

func TestCompareJSON(t *testing.T) {
	out, err := run(t, "compare", "cold", "warm", "--json")
	require.NoError(t, err)

	var res struct {
		Results []solveOut `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Results, 4)
	for i, st := range search.All() {
		assert.Equal(t, st, res.Results[i].Strategy)
		assert.Equal(t, 4, res.Results[i].Moves, st)
	}
}

func TestCompareSubset(t *testing.T) {
	out, err := run(t, "compare", "cold", "warm", "-s", "gbfs,bfs")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "gbfs"))
	assert.True(t, strings.HasPrefix(lines[2], "bfs"))
}

func TestNeighbors(t *testing.T) {
	out, err := run(t, "neighbors", "card")
	require.NoError(t, err)
	assert.Equal(t, "ward\ncord\n", out)

	out, err = run(t, "neighbors", "dog")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "neighbors", "cat")
	require.ErrorIs(t, err, search.ErrUnknownWord)
}

func TestPairSeeded(t *testing.T) {
	first, err := run(t, "pair", "--difficulty", "medium", "--seed", "7", "--json")
	require.NoError(t, err)
	second, err := run(t, "pair", "--difficulty", "medium", "--seed", "7", "--json")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var res pairOut
	require.NoError(t, json.Unmarshal([]byte(first), &res))
	assert.Len(t, res.Start, 4)
	assert.NotEqual(t, res.Start, res.Target)
	assert.GreaterOrEqual(t, res.OptimalMoves, 1)
	assert.Equal(t, res.Start, res.OptimalPath[0])
	assert.Equal(t, res.Target, res.OptimalPath[len(res.OptimalPath)-1])
}

func TestPairBadDifficulty(t *testing.T) {
	_, err := run(t, "pair", "--difficulty", "extreme")
	require.Error(t, err)
}
