package deck

import (
	"slices"
	"testing"
)

func TestShuffleIsDeterministic(t *testing.T) {
	a := Permutation(48, 42)
	b := Permutation(48, 42)
	if !slices.Equal(a, b) {
		t.Fatalf("same seed gave different permutations:\n%v\n%v", a, b)
	}
}

func TestShuffleDependsOnSeed(t *testing.T) {
	a := Permutation(48, 1)
	b := Permutation(48, 2)
	if slices.Equal(a, b) {
		t.Fatalf("seeds 1 and 2 gave the same permutation %v", a)
	}
}

func TestPermutationIsComplete(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		perm := Permutation(40, seed)
		if len(perm) != 40 {
			t.Fatalf("seed %d: expected 40 entries, got %d", seed, len(perm))
		}
		seen := make([]bool, 40)
		for _, v := range perm {
			if v < 0 || v >= 40 {
				t.Fatalf("seed %d: value %d out of range", seed, v)
			}
			if seen[v] {
				t.Fatalf("seed %d: value %d repeated", seed, v)
			}
			seen[v] = true
		}
	}
}

func TestShuffleGeneric(t *testing.T) {
	cards := []string{"a", "b", "c", "d", "e", "f"}
	Shuffle(cards, 7)
	sorted := slices.Clone(cards)
	slices.Sort(sorted)
	if !slices.Equal(sorted, []string{"a", "b", "c", "d", "e", "f"}) {
		t.Fatalf("shuffle lost elements: %v", cards)
	}
}

func TestShuffleEmptyAndSingle(t *testing.T) {
	var empty []int
	Shuffle(empty, 3)
	one := []int{9}
	Shuffle(one, 3)
	if one[0] != 9 {
		t.Fatalf("single element moved: %v", one)
	}
}
