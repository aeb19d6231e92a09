package ladder

import "math"

// Infinite is returned by Hamming for words of different length.
const Infinite = math.MaxInt32

// Hamming counts the positions where a and b differ.
// It is admissible for the ladder graph: every edge changes exactly one letter.
func Hamming(a, b string) int {
	if len(a) != len(b) {
		return Infinite
	}
	d := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}
