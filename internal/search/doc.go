// Package search runs shortest-path searches over a ladder.Graph.
//
// Four strategies share one traversal skeleton and differ only in frontier
// order and cost bookkeeping:
//
//   - BFS:   FIFO queue, words marked visited when discovered.
//   - UCS:   min-heap on path cost g.
//   - GBFS:  min-heap on the Hamming estimate h.
//   - AStar: min-heap on f = g + h.
//
// The heap strategies mark words visited only when they are expanded, so a
// word may sit in the frontier several times; stale entries are popped,
// counted in NodesExplored and skipped. Heap ties are broken by a strictly
// increasing insertion counter, which makes every run reproducible.
//
// Every invocation owns its frontier, visited set, node arena and Stats.
// The graph is only read, so concurrent invocations over one graph are safe
// (see Compare).
//
// An unreachable target is not an error: Search returns an empty path with
// the statistics of the exhausted exploration. Words missing from the graph
// are rejected up front with ErrUnknownWord.
package search
