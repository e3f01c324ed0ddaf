package mmio

import (
	"errors"

	"github.com/ezrec/enginetb/translate"
)

var f = translate.From

var (
	ErrAlign   = errors.New(f("unaligned word access"))
	ErrOverlap = errors.New(f("mapping overlaps existing device"))
	ErrEmpty   = errors.New(f("mapping has zero size"))
)

// ErrBusFault is returned for an access to an address no device decodes.
type ErrBusFault uint32

func (err ErrBusFault) Error() string {
	return f("bus fault at 0x%08x", uint32(err))
}

// ErrRange is returned for a word offset outside of a Window.
type ErrRange struct {
	Name   string
	Offset uint32
	Words  uint32
}

func (err *ErrRange) Error() string {
	return f("%v: offset 0x%x outside of 0x%x words", err.Name, err.Offset, err.Words)
}
