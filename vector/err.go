package vector

import (
	"errors"

	"github.com/ezrec/enginetb/translate"
)

var f = translate.From

var (
	ErrArgCount    = errors.New(f("vector argument count does not match num_args"))
	ErrBlockClosed = errors.New(f("block already passed"))
	ErrShortFile   = errors.New(f("vector file is not a whole number of words"))
)

// ErrField is returned when a header field does not fit its hardware field.
type ErrField struct {
	Name  string
	Value uint32
	Max   uint32
}

func (err *ErrField) Error() string {
	return f("%v 0x%x exceeds 0x%x", err.Name, err.Value, err.Max)
}

// ErrStream wraps a failure to read the stream source at a cursor.
type ErrStream struct {
	Cursor uint32
	Err    error
}

func (err *ErrStream) Error() string {
	return f("stream word 0x%x: %v", err.Cursor, err.Err)
}

func (err *ErrStream) Unwrap() error {
	return err.Err
}

// ErrScript locates a vector script failure.
type ErrScript struct {
	Name string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// ErrValue is returned for a script value that is not a 32-bit word, or
// not a sequence of the expected length.
type ErrValue string

func (err ErrValue) Error() string {
	return f("'%v' is not a valid word or word list", string(err))
}
