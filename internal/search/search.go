package search

import (
	"fmt"
	"time"

	"github.com/robalobadob/wordladder/internal/ladder"
)

// runner holds the mutable state of a single search invocation.
type runner struct {
	strategy Strategy
	graph    *ladder.Graph
	target   string
	nodes    arena
	front    frontier
	visited  map[string]bool
	stats    *Stats
}

// Search finds a path from start to target using strategy.
//
// Returns the path start..target inclusive, or an empty path when target is
// unreachable. Stats are returned in both cases. Invalid input (nil graph,
// unknown strategy, start or target missing from the graph) is reported as
// an error before any exploration happens.
func Search(strategy Strategy, g *ladder.Graph, start, target string) ([]string, *Stats, error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !strategy.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	if !g.Has(start) {
		return nil, nil, fmt.Errorf("%w: start %q", ErrUnknownWord, start)
	}
	if !g.Has(target) {
		return nil, nil, fmt.Errorf("%w: target %q", ErrUnknownWord, target)
	}

	r := &runner{
		strategy: strategy,
		graph:    g,
		target:   target,
		visited:  make(map[string]bool),
		stats:    newStats(strategy),
	}
	r.front = newFrontier(strategy, &r.nodes)

	began := time.Now()
	path := r.run(start)
	r.stats.ExecutionTime = time.Since(began)

	observe(r.stats, len(path) > 0)
	return path, r.stats, nil
}

// run executes the shared traversal skeleton.
func (r *runner) run(start string) []string {
	root := r.admit(start, -1, 0)
	if r.strategy == BFS {
		r.visited[start] = true
	}
	r.front.push(root)

	for r.front.len() > 0 {
		if n := r.front.len(); n > r.stats.MaxQueueSize {
			r.stats.MaxQueueSize = n
		}

		idx := r.front.pop()
		r.stats.NodesExplored++
		cur := *r.nodes.at(idx)

		if cur.Word == r.target {
			return r.nodes.path(idx)
		}

		// BFS marks on discovery; the heap strategies mark on expansion and
		// drop stale duplicates here.
		if r.strategy != BFS {
			if r.visited[cur.Word] {
				continue
			}
			r.visited[cur.Word] = true
		}

		for _, nbr := range r.graph.Neighbors(cur.Word) {
			if r.visited[nbr] {
				continue
			}
			if r.strategy == BFS {
				r.visited[nbr] = true
			}
			r.front.push(r.admit(nbr, idx, cur.G+1))
		}
	}
	return []string{}
}

// admit creates a node for word and records its costs on first discovery.
func (r *runner) admit(word string, parent, g int) int {
	h := 0
	if r.strategy.informed() {
		h = ladder.Hamming(word, r.target)
	}
	idx := r.nodes.add(word, parent, g, h)
	if _, seen := r.stats.Costs[word]; !seen {
		r.stats.Costs[word] = r.costOf(r.nodes.at(idx))
	}
	return idx
}

// costOf renders a node's costs the way each strategy reports them.
func (r *runner) costOf(n *Node) Cost {
	switch r.strategy {
	case UCS:
		return Cost{G: n.G, H: NA, F: Value(n.G)}
	case GBFS:
		return Cost{G: n.G, H: Value(n.H), F: Value(n.H)}
	case AStar:
		return Cost{G: n.G, H: Value(n.H), F: Value(n.F)}
	}
	return Cost{G: n.G, H: NA, F: NA}
}
