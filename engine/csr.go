package engine

import (
	"iter"

	"github.com/ezrec/enginetb/internal"
)

// Engine CSR word offsets from the CSR base.
const (
	CSR_WINDOW  = 0 // Active register file window.
	CSR_MPSTART = 1 // Microcode start offset.
	CSR_MPLEN   = 2 // Microcode program length.
	CSR_CONTROL = 3 // Control (pulse) register.
	CSR_STATUS  = 4 // Status register.
	CSR_POWER   = 5 // Power and pause control.
	CSR_WORDS   = 6 // Size of the CSR block, in words.
)

// CSR_CONTROL bits.
const (
	CONTROL_GO = uint32(1 << 0) // Start a run; self clearing.
)

// CSR_STATUS bits.
const (
	STATUS_RUNNING   = uint32(1 << 0)  // Engine is executing.
	STATUS_MPC_SHIFT = 1               // Microcode program counter, for debug.
	STATUS_MPC_MASK  = uint32(0x3ff)
	STATUS_PAUSE_GNT = uint32(1 << 11) // Pause request granted.
)

// CSR_POWER bits.
const (
	POWER_ON        = uint32(1 << 0) // Engine clock enable.
	POWER_PAUSE_REQ = uint32(1 << 1) // Request a pause at the next safe point.
)

var _engine_defines = map[string]uint32{
	"CSR_WINDOW":       CSR_WINDOW,
	"CSR_MPSTART":      CSR_MPSTART,
	"CSR_MPLEN":        CSR_MPLEN,
	"CSR_CONTROL":      CSR_CONTROL,
	"CSR_STATUS":       CSR_STATUS,
	"CSR_POWER":        CSR_POWER,
	"CSR_WORDS":        CSR_WORDS,
	"CONTROL_GO":       CONTROL_GO,
	"STATUS_RUNNING":   STATUS_RUNNING,
	"STATUS_PAUSE_GNT": STATUS_PAUSE_GNT,
	"POWER_ON":         POWER_ON,
	"POWER_PAUSE_REQ":  POWER_PAUSE_REQ,
}

// Defines returns the engine register map.
func Defines() iter.Seq2[string, string] {
	return internal.HexDefines(_engine_defines)
}

// Mpc extracts the microcode program counter from a status word.
func Mpc(status uint32) uint32 {
	return (status >> STATUS_MPC_SHIFT) & STATUS_MPC_MASK
}
