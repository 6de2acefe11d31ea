package internal

import (
	"iter"
)

// IterSeqTake yields at most the first n values of seq.
func IterSeqTake[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		count := 0
		for val := range seq {
			if !yield(val) {
				return // Stop if the consumer stops
			}
			count++
			if count == n {
				return
			}
		}
	}
}

// IterSeq2Take yields at most the first n pairs of seq.
func IterSeq2Take[T1 any, T2 any](seq iter.Seq2[T1, T2], n int) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		if n <= 0 {
			return
		}
		count := 0
		for val1, val2 := range seq {
			if !yield(val1, val2) {
				return // Stop if the consumer stops
			}
			count++
			if count == n {
				return
			}
		}
	}
}

// IterSeqPairs yields each pair of consecutive values of seq.
func IterSeqPairs[T any](seq iter.Seq[T]) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		var prior T
		first := true
		for val := range seq {
			if !first {
				if !yield(prior, val) {
					return
				}
			}
			prior = val
			first = false
		}
	}
}
