package harness

import (
	"iter"

	"github.com/ezrec/enginetb/internal"
)

// SIMSTATUS register word offsets and bits, as watched by CI.
const (
	SIMSTATUS_REPORT = 0 // Diagnostic report register, write only.
	SIMSTATUS_STATUS = 1 // Completion register.
	SIMSTATUS_WORDS  = 2 // Size of the block, in words.

	SIMSTATUS_SUCCESS = uint32(1 << 0) // Every check passed.
	SIMSTATUS_DONE    = uint32(1 << 1) // The run is complete.
)

var _simstatus_defines = map[string]uint32{
	"SIMSTATUS_REPORT":  SIMSTATUS_REPORT,
	"SIMSTATUS_STATUS":  SIMSTATUS_STATUS,
	"SIMSTATUS_WORDS":   SIMSTATUS_WORDS,
	"SIMSTATUS_SUCCESS": SIMSTATUS_SUCCESS,
	"SIMSTATUS_DONE":    SIMSTATUS_DONE,
}

// Defines returns the SIMSTATUS register map.
func Defines() iter.Seq2[string, string] {
	return internal.HexDefines(_simstatus_defines)
}
