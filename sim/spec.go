// Package sim is a deterministic model of the engine hardware and the
// simulation status block, for exercising the bench without RTL.
//
// The model advances one engine cycle per status register read, so the
// harness's busy-wait loop is the model's clock. Microcode is not
// interpreted: a Kernel computes the result from the window's registers
// when the run completes.
package sim

import (
	"errors"

	akitasim "github.com/sarchlab/akita/v4/sim"
)

// Engine address space layout, in bytes from the engine base.
const (
	MICROCODE_OFFSET = 0x0_0000
	REGFILE_OFFSET   = 0x1_0000
	WINDOW_BYTES     = 0x1_0000 // Size of each of the microcode and register file windows.
	ENGINE_BYTES     = 0x2_0000 // Size of the engine memory mapping.
	ESCAPE_VALUE     = uint32(0xC0DE_BADD)
)

// Spec holds immutable configuration values for the engine model.
type Spec struct {
	Freq           akitasim.Freq // Engine clock, for run time accounting.
	MicrocodeWords uint32        // Implemented microcode words.
	RegFileWords   uint32        // Implemented register file words.
	CyclesPerWord  int           // Cycles to execute one microcode word.
	GrantLatency   int           // Cycles from pause request to grant.
}

func (s Spec) validate() error {
	if s.Freq <= 0 {
		return errors.New(f("freq must be > 0"))
	}
	if s.MicrocodeWords == 0 || s.MicrocodeWords*4 > WINDOW_BYTES {
		return errors.New(f("microcode words must be in (0, %d]", WINDOW_BYTES/4))
	}
	if s.RegFileWords == 0 || s.RegFileWords*4 > WINDOW_BYTES {
		return errors.New(f("register file words must be in (0, %d]", WINDOW_BYTES/4))
	}
	if s.CyclesPerWord <= 0 {
		return errors.New(f("cycles per word must be > 0"))
	}
	if s.GrantLatency < 0 {
		return errors.New(f("grant latency must be >= 0"))
	}
	return nil
}

// DefaultSpec returns the geometry of the curve engine: a 1K word
// microcode store and a 16 window register file, on a 50MHz clock.
func DefaultSpec() Spec {
	return Spec{
		Freq:           50 * akitasim.MHz,
		MicrocodeWords: 0x400,
		RegFileWords:   0x1000,
		CyclesPerWord:  16,
		GrantLatency:   1,
	}
}
