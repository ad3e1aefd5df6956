package internal

import (
	"iter"
)

// IterSeqConcat walks each sequence in turn, as one sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return
				}
			}
		}
	}
}

// IterSeqEnumerate pairs each value of seq with its position.
func IterSeqEnumerate[T any](seq iter.Seq[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := 0
		for val := range seq {
			if !yield(n, val) {
				return
			}
			n++
		}
	}
}
