package internal

import (
	"iter"
)

// IterSeq2Concat chains dual-value iterators, yielding every pair of the
// first sequence before moving on to the next.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
