package search

import "container/heap"

// frontier holds arena indices of discovered, not yet expanded nodes.
type frontier interface {
	push(i int)
	pop() int
	len() int
}

// fifo is the BFS queue.
type fifo struct {
	items []int
	head  int
}

func (q *fifo) push(i int) { q.items = append(q.items, i) }

func (q *fifo) pop() int {
	i := q.items[q.head]
	q.head++
	// reclaim the consumed prefix once it dominates the backing array
	if q.head > 64 && q.head*2 >= len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return i
}

func (q *fifo) len() int { return len(q.items) - q.head }

// pqItem is a heap entry: an arena index with its order key and tie-break.
type pqItem struct {
	node int
	key  int
	seq  uint64
}

// itemHeap implements heap.Interface ordered by (key, seq).
type itemHeap []pqItem

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].seq < h[j].seq
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)   { *h = append(*h, x.(pqItem)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// priorityQueue orders arena nodes by a strategy-specific key.
type priorityQueue struct {
	items itemHeap
	nodes *arena
	key   func(*Node) int
}

func (pq *priorityQueue) push(i int) {
	n := pq.nodes.at(i)
	heap.Push(&pq.items, pqItem{node: i, key: pq.key(n), seq: n.Seq})
}

func (pq *priorityQueue) pop() int { return heap.Pop(&pq.items).(pqItem).node }

func (pq *priorityQueue) len() int { return pq.items.Len() }

// newFrontier returns the frontier discipline for s.
func newFrontier(s Strategy, nodes *arena) frontier {
	switch s {
	case UCS:
		return &priorityQueue{nodes: nodes, key: func(n *Node) int { return n.G }}
	case GBFS:
		return &priorityQueue{nodes: nodes, key: func(n *Node) int { return n.H }}
	case AStar:
		return &priorityQueue{nodes: nodes, key: func(n *Node) int { return n.F }}
	}
	return &fifo{}
}
