package authoring

import "math/rand/v2"

// Shuffler permutes n elements through swap. Implementations must produce
// a uniform permutation (Fisher–Yates).
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// DefaultShuffler is safe for concurrent use.
func DefaultShuffler() Shuffler {
	return globalShuffler{}
}

// NewSeededShuffler returns a deterministic shuffler. Not safe for
// concurrent use.
func NewSeededShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func shuffleStrings(s Shuffler, words []string) {
	s.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
