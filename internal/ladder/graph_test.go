package ladder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/ladder"
)

var sample = []string{
	"cat", "bat", "bad", "bid", "bit",
	"cold", "cord", "card", "ward", "warm", "word", "worm",
	"lonely",
}

// TestBuild_Chain checks the bat/bit shortcut a correct builder must find.
func TestBuild_Chain(t *testing.T) {
	g := ladder.Build([]string{"cat", "bat", "bad", "bid", "bit"})

	assert.Equal(t, []string{"bat"}, g.Neighbors("cat"))
	assert.Equal(t, []string{"cat", "bit", "bad"}, g.Neighbors("bat"))
	assert.Equal(t, []string{"bid", "bat"}, g.Neighbors("bad"))
	assert.Equal(t, []string{"bad", "bit"}, g.Neighbors("bid"))
	assert.Equal(t, []string{"bat", "bid"}, g.Neighbors("bit"))
	assert.Equal(t, 5, g.Len())
	assert.Equal(t, 5, g.EdgeCount())
}

func TestFromMap(t *testing.T) {
	adj := map[string][]string{
		"cat": {"bat"},
		"bat": {"cat", "bad"},
		"bad": {"bat"},
		"dog": {"dot"},
	}
	g := ladder.FromMap(adj)
	adj["cat"][0] = "xxx"

	assert.Equal(t, []string{"bat"}, g.Neighbors("cat"))
	assert.True(t, g.Has("dot"))
	assert.Empty(t, g.Neighbors("dot"))
	assert.Equal(t, 5, g.Len())
}

func TestBuild_Symmetry(t *testing.T) {
	g := ladder.Build(sample)
	for _, a := range g.Words() {
		for _, b := range g.Neighbors(a) {
			assert.Contains(t, g.Neighbors(b), a, "%s -> %s has no reverse edge", a, b)
		}
	}
}

func TestBuild_Correctness(t *testing.T) {
	g := ladder.Build(sample)
	for _, a := range g.Words() {
		seen := map[string]bool{}
		for _, b := range g.Neighbors(a) {
			require.Len(t, b, len(a))
			require.Equal(t, 1, ladder.Hamming(a, b), "%s/%s", a, b)
			require.NotEqual(t, a, b)
			require.False(t, seen[b], "duplicate neighbor %s of %s", b, a)
			seen[b] = true
		}
	}
	// brute force: every pair at distance one must be linked
	words := g.Words()
	for i := range words {
		for j := range words {
			if i != j && ladder.Hamming(words[i], words[j]) == 1 {
				assert.Contains(t, g.Neighbors(words[i]), words[j])
			}
		}
	}
}

func TestBuild_IsolatedAndUnknown(t *testing.T) {
	g := ladder.Build(sample)

	assert.True(t, g.Has("lonely"))
	assert.Empty(t, g.Neighbors("lonely"))

	assert.False(t, g.Has("zebra"))
	assert.Empty(t, g.Neighbors("zebra"))
}

func TestBuild_DuplicatesAndEmpty(t *testing.T) {
	g := ladder.Build([]string{"cat", "cat", "", "bat"})
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"bat"}, g.Neighbors("cat"))
}

func TestBuild_NeighborOrderIsPositionMajor(t *testing.T) {
	g := ladder.Build([]string{"cat", "hat", "bat", "cot", "car", "can"})
	// position 0 (b, h), then position 1 (o), then position 2 (n, r)
	assert.Equal(t, []string{"bat", "hat", "cot", "can", "car"}, g.Neighbors("cat"))
}

func TestWordsOfLength(t *testing.T) {
	g := ladder.Build(sample)
	assert.Equal(t, []string{"bad", "bat", "bid", "bit", "cat"}, g.WordsOfLength(3))
	assert.Equal(t, []string{"lonely"}, g.WordsOfLength(5, 6))
	assert.Len(t, g.Words(), len(sample))
}

func TestNilGraph(t *testing.T) {
	var g *ladder.Graph
	assert.False(t, g.Has("cat"))
	assert.Nil(t, g.Neighbors("cat"))
	assert.Zero(t, g.Len())
	assert.Nil(t, g.Words())
}

func TestHamming(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"cat", "cat", 0},
		{"cat", "bat", 1},
		{"cat", "bit", 2},
		{"cold", "warm", 4},
		{"", "", 0},
		{"cat", "cats", ladder.Infinite},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ladder.Hamming(tc.a, tc.b), "%q/%q", tc.a, tc.b)
	}
}
