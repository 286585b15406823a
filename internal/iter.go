package internal

import (
	"cmp"
	"iter"
	"slices"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// NextPermutation rearranges elems into the next lexicographic permutation.
// Returns false, and leaves elems sorted ascending, if elems was the last
// permutation.
func NextPermutation[T cmp.Ordered](elems []T) bool {
	if len(elems) < 2 {
		return false
	}

	// Find the rightmost ascent.
	pivot := len(elems) - 2
	for pivot >= 0 && elems[pivot] >= elems[pivot+1] {
		pivot--
	}
	if pivot < 0 {
		slices.Reverse(elems)
		return false
	}

	larger := len(elems) - 1
	for elems[larger] <= elems[pivot] {
		larger--
	}

	elems[pivot], elems[larger] = elems[larger], elems[pivot]
	slices.Reverse(elems[pivot+1:])

	return true
}

// Permutations iterates over every distinct permutation of elems, in
// lexicographic order. Each yielded slice is a private copy.
func Permutations[T cmp.Ordered](elems []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		perm := slices.Clone(elems)
		slices.Sort(perm)
		for {
			if !yield(slices.Clone(perm)) {
				return
			}
			if !NextPermutation(perm) {
				return
			}
		}
	}
}
