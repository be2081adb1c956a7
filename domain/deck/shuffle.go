package deck

// Permutation returns a permutation of [0, permSize) drawn from the stream
// keyed by seed.
func Permutation(permSize int, seed int64) []int {
	perm := make([]int, permSize)
	for i := range perm {
		perm[i] = i
	}
	Shuffle(perm, seed)
	return perm
}

// Shuffle permutes cards in place with a Fisher-Yates pass over the stream
// keyed by seed.
func Shuffle[T any](cards []T, seed int64) {
	src := NewSource(seed)
	for i := len(cards) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
