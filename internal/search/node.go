package search

// Node is one step of a candidate path.
// Nodes live in a per-search arena; Parent is the arena index of the
// previous step (-1 for the start node). A Node is never modified once created.
type Node struct {
	Word   string
	Parent int
	G      int    // edges from the start word
	H      int    // Hamming estimate to the target (0 when unused)
	F      int    // G + H
	Seq    uint64 // creation counter, used as the heap tie-break
}

// arena owns all nodes created by one search invocation.
type arena struct {
	nodes []Node
}

// add appends a node and returns its index.
func (a *arena) add(word string, parent, g, h int) int {
	a.nodes = append(a.nodes, Node{
		Word:   word,
		Parent: parent,
		G:      g,
		H:      h,
		F:      g + h,
		Seq:    uint64(len(a.nodes)),
	})
	return len(a.nodes) - 1
}

func (a *arena) at(i int) *Node { return &a.nodes[i] }

// path walks parent links from i back to the root and returns start..i.
func (a *arena) path(i int) []string {
	var rev []string
	for i >= 0 {
		rev = append(rev, a.nodes[i].Word)
		i = a.nodes[i].Parent
	}
	out := make([]string, len(rev))
	for j, w := range rev {
		out[len(rev)-1-j] = w
	}
	return out
}
