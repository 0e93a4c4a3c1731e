package engine

import (
	"strings"

	"github.com/regginator/bruteviz/charset"
)

// Odometer yields every string of length symbols over set in the same order the counter walks
// them, but by bumping per-position indices from the right instead of converting a number. It's
// the cheap way to stream the order when the big.Int bookkeeping isn't needed.
func Odometer(set charset.Set, length int) func(func(string) bool) {
	numChars := set.Len()

	return func(yield func(string) bool) {
		indices := make([]int, length)

		for {
			var sb strings.Builder
			for _, i := range indices {
				sb.WriteRune(set.Symbol(i))
			}

			if !yield(sb.String()) {
				return
			}

			i := length - 1
			for i >= 0 && indices[i] == numChars-1 {
				i--
			}
			if i < 0 {
				return
			}

			indices[i]++
			for j := i + 1; j < length; j++ {
				indices[j] = 0
			}
		}
	}
}
