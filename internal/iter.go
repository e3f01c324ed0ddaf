package internal

import (
	"fmt"
	"iter"
	"maps"
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

// HexDefines renders a table of hardware constants as "0x..." strings,
// in the form consumed by the configuration and vector script predeclares.
func HexDefines[T ~uint32 | ~int](table map[string]T) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, key := range slices.Sorted(maps.Keys(table)) {
			if !yield(key, fmt.Sprintf("%#x", uint64(table[key]))) {
				return
			}
		}
	}
}
