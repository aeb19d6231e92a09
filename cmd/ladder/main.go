// cmd/ladder/main.go
//
// Command-line front end for the word ladder solver.
// Loads the same word list as the server and runs searches locally:
//
//	ladder solve cold warm --strategy astar
//	ladder compare cold warm --json
//	ladder pair --difficulty hard --seed 7

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ladder:", err)
		os.Exit(1)
	}
}
