package synthesis

import "math/rand"

// RandomSource is the randomness the synthesizer draws from.
type RandomSource interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
	// Shuffle permutes n elements with an unbiased Fisher-Yates pass.
	Shuffle(n int, swap func(i, j int))
}

type globalSource struct{}

// DefaultSource uses the top-level math/rand functions, which are safe for
// concurrent use and seeded at startup.
func DefaultSource() RandomSource { return globalSource{} }

func (globalSource) Intn(n int) int                     { return rand.Intn(n) }
func (globalSource) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
