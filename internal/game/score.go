package game

// Score rates a finished ladder.
// It is 100 scaled by optimal/player moves, minus 10 per hint, floored at 0.
// An unsolvable puzzle (no optimal path) scores 0.
func Score(playerPath, optimalPath []string, hints int) int {
	if len(playerPath) == 0 || len(optimalPath) == 0 {
		return 0
	}
	optimal := len(optimalPath) - 1
	player := max(len(playerPath)-1, 1)

	score := int(100*float64(optimal)/float64(player) - float64(10*hints))
	return max(score, 0)
}
