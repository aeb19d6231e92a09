package search_test

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/search"
)

func ExampleSearch() {
	g := ladder.Build([]string{"cold", "cord", "card", "ward", "warm"})

	path, stats, err := search.Search(search.AStar, g, "cold", "warm")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(strings.Join(path, " -> "))
	fmt.Println("explored:", stats.NodesExplored)
	fmt.Println("cord:", stats.Costs["cord"].G, stats.Costs["cord"].H, stats.Costs["cord"].F)
	// Output:
	// cold -> cord -> card -> ward -> warm
	// explored: 5
	// cord: 1 3 4
}

func ExampleHint() {
	g := ladder.Build([]string{"cold", "cord", "card", "ward", "warm"})

	next, _, err := search.Hint(search.BFS, g, "cold", "warm")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(next)
	// Output: cord
}
