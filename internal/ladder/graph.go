// internal/ladder/graph.go
//
// Lexicon graph for the word ladder.
// Responsibilities:
//   - Build the implicit adjacency mapping over a word list: two words are
//     adjacent iff they have the same length and differ in exactly one position.
//   - Expose read-only lookups (neighbors, membership, words by length).
//
// Notes:
//   - Neighbors are generated by substituting every letter a–z at every position,
//     so the cost is O(words × length × 26) instead of pairwise O(n²).
//   - Neighbor order is position-major, alphabet-minor, which keeps every search
//     over the graph deterministic.
//   - A Graph is never mutated after Build and may be shared between goroutines.

package ladder

import (
	"sort"
)

// alphabet is the substitution alphabet used when generating neighbors.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Graph is the adjacency mapping from each lexicon word to its one-letter neighbors.
// Every word passed to Build is a key, including words without neighbors.
type Graph struct {
	adj   map[string][]string
	edges int // number of directed entries across all neighbor lists
}

// Build constructs the adjacency mapping for words.
// Duplicates are ignored; words are used as given (callers normalize case).
func Build(words []string) *Graph {
	set := make(map[string]struct{}, len(words))
	byLen := make(map[int][]string)
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, dup := set[w]; dup {
			continue
		}
		set[w] = struct{}{}
		byLen[len(w)] = append(byLen[len(w)], w)
	}

	g := &Graph{adj: make(map[string][]string, len(set))}
	for _, group := range byLen {
		for _, w := range group {
			nbrs := neighborsOf(w, set)
			g.adj[w] = nbrs
			g.edges += len(nbrs)
		}
	}
	return g
}

// FromMap wraps an explicit adjacency mapping without checking it.
// Neighbor words missing as keys are added with no neighbors of their own.
// The mapping is copied, so later changes to adj do not affect the Graph.
func FromMap(adj map[string][]string) *Graph {
	g := &Graph{adj: make(map[string][]string, len(adj))}
	for w, nbrs := range adj {
		g.adj[w] = append([]string{}, nbrs...)
		g.edges += len(nbrs)
	}
	for _, nbrs := range adj {
		for _, n := range nbrs {
			if _, ok := g.adj[n]; !ok {
				g.adj[n] = []string{}
			}
		}
	}
	return g
}

// neighborsOf generates every member of set that differs from w in exactly one position.
func neighborsOf(w string, set map[string]struct{}) []string {
	out := []string{}
	buf := []byte(w)
	for i := 0; i < len(buf); i++ {
		orig := buf[i]
		for j := 0; j < len(alphabet); j++ {
			c := alphabet[j]
			if c == orig {
				continue
			}
			buf[i] = c
			if _, ok := set[string(buf)]; ok {
				out = append(out, string(buf))
			}
		}
		buf[i] = orig
	}
	return out
}

// Neighbors returns the stored neighbors of w in generation order.
// Unknown words and isolated words both yield an empty result.
// The returned slice must not be modified.
func (g *Graph) Neighbors(w string) []string {
	if g == nil {
		return nil
	}
	return g.adj[w]
}

// Has reports whether w is a lexicon word (a key of the mapping).
func (g *Graph) Has(w string) bool {
	if g == nil {
		return false
	}
	_, ok := g.adj[w]
	return ok
}

// Len returns the number of words in the graph.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return g.edges / 2
}

// Words returns all lexicon words sorted lexicographically.
func (g *Graph) Words() []string {
	return g.WordsOfLength()
}

// WordsOfLength returns the sorted words whose length is one of lengths.
// With no lengths given, every word is returned.
func (g *Graph) WordsOfLength(lengths ...int) []string {
	if g == nil {
		return nil
	}
	want := make(map[int]bool, len(lengths))
	for _, n := range lengths {
		want[n] = true
	}
	out := make([]string, 0, len(g.adj))
	for w := range g.adj {
		if len(want) == 0 || want[len(w)] {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}
