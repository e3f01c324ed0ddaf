package engine

import (
	"errors"

	"github.com/ezrec/enginetb/translate"
)

var f = translate.From

var (
	// ErrStall is returned when a bounded poll runs out of iterations.
	// It never indicates success.
	ErrStall = errors.New(f("engine stalled"))
)

// ErrCodeLen is returned when a program does not fit the microcode store.
type ErrCodeLen struct {
	CodeLen uint32
	Words   uint32
}

func (err *ErrCodeLen) Error() string {
	return f("code_len %d exceeds microcode store of %d words", err.CodeLen, err.Words)
}

// ErrStallAt records where a bounded poll gave up.
type ErrStallAt struct {
	Stage  string
	Status uint32
	Polls  int
}

func (err *ErrStallAt) Error() string {
	return f("%v: status 0x%08x after %d polls", err.Stage, err.Status, err.Polls)
}

func (err *ErrStallAt) Unwrap() error {
	return ErrStall
}
