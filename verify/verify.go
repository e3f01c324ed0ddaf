// Package verify compares engine results with the expected values carried
// in the vector stream, and defines the report codes a CI consumer keys on.
package verify

import (
	"iter"

	"github.com/ezrec/enginetb/internal"
	"github.com/ezrec/enginetb/vector"
)

// Report codes. These are matched bit-exact by the CI consumer.
const (
	CODE_PASS        = uint32(0xC0DE_600D) // Vector, or whole run, passed.
	CODE_VECTOR_FAIL = uint32(0xDEAD_2551) // Vector result mismatch.
	CODE_FAIL        = uint32(0xC0DE_DEAD) // Whole run failed.
	CODE_STALL       = uint32(0xDEAD_57A1) // Engine never completed within the poll budget.
)

var _verify_defines = map[string]uint32{
	"CODE_PASS":        CODE_PASS,
	"CODE_VECTOR_FAIL": CODE_VECTOR_FAIL,
	"CODE_FAIL":        CODE_FAIL,
	"CODE_STALL":       CODE_STALL,
}

// Defines returns the report codes.
func Defines() iter.Seq2[string, string] {
	return internal.HexDefines(_verify_defines)
}

// Result is the outcome of one vector.
type Result = [vector.RESULT_WORDS]uint32

// Verify reports whether all result words match, position by position.
func Verify(expect, actual Result) bool {
	return expect == actual
}

// Mismatches lists the word positions that differ.
func Mismatches(expect, actual Result) (words []int) {
	for n := range expect {
		if expect[n] != actual[n] {
			words = append(words, n)
		}
	}
	return
}

// VectorCode is the per-vector report code.
func VectorCode(pass bool) uint32 {
	if pass {
		return CODE_PASS
	}
	return CODE_VECTOR_FAIL
}

// FinalCode is the end of run report code.
func FinalCode(pass bool) uint32 {
	if pass {
		return CODE_PASS
	}
	return CODE_FAIL
}

// Tally accumulates vector outcomes. An empty tally has passed.
type Tally struct {
	Vectors int
	Passed  int
	Failed  int
}

// Record one vector, returning its outcome.
func (tally *Tally) Record(expect, actual Result) (pass bool) {
	pass = Verify(expect, actual)
	tally.Vectors++
	if pass {
		tally.Passed++
	} else {
		tally.Failed++
	}
	return
}

// AllPassed reports whether no recorded vector failed.
func (tally *Tally) AllPassed() bool {
	return tally.Failed == 0
}
