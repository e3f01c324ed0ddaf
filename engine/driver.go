// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package engine drives the microcoded accelerator through its memory
// mapped microcode store, register file and CSRs.
//
// A run is: load microcode and arguments, Start, then Poll until the
// running bit clears. Poll spins with no timeout unless a PollBudget is
// set, since a hung engine is a defect the bench exists to expose.
package engine

import (
	"errors"
	"log"

	"github.com/ezrec/enginetb/mmio"
	"github.com/ezrec/enginetb/vector"
)

// PAUSE_AT_DEFAULT is the poll iteration at which the pause/resume
// diagnostic is taken.
const PAUSE_AT_DEFAULT = 50

// Reporter receives diagnostic codes.
type Reporter interface {
	Report(code uint32)
}

// Snapshot of engine memories taken while paused.
type Snapshot struct {
	RegFile   [3]uint32 // rf[4], rf[0], rf[8]
	Microcode [3]uint32 // mc[4], mc[0], mc[8]
}

// snapshotOffsets is the order the snapshot words are read and reported.
var snapshotOffsets = [3]uint32{4, 0, 8}

// Driver controls the engine.
type Driver struct {
	Verbose bool // If set, logs each run.

	Microcode mmio.Region // Microcode store.
	RegFile   mmio.Region // Register file.
	Csr       mmio.Region // Engine CSRs.
	Report    Reporter    // Diagnostic channel, may be nil.

	MicrocodeWords uint32 // Implemented microcode words.
	PauseAt        int    // Poll iteration of the pause diagnostic, <0 to disable.
	PauseEvery     bool   // Pause on every run, instead of once.
	PollBudget     int    // Maximum iterations per spin loop, 0 for unlimited.

	Pauses   int      // Pause diagnostics taken.
	Polls    int      // Status polls of the last run.
	Snapshot Snapshot // Last pause snapshot.
}

// NewDriver creates a driver with the default pause iteration.
func NewDriver(microcode, regfile, csr mmio.Region, report Reporter) (drv *Driver) {
	drv = &Driver{
		Microcode:      microcode,
		RegFile:        regfile,
		Csr:            csr,
		Report:         report,
		MicrocodeWords: microcode.Len(),
		PauseAt:        PAUSE_AT_DEFAULT,
	}
	return
}

func (drv *Driver) report(code uint32) {
	if drv.Report != nil {
		drv.Report.Report(code)
	}
}

// PowerOn enables the engine clock.
func (drv *Driver) PowerOn() (err error) {
	return drv.Csr.Write(CSR_POWER, POWER_ON)
}

// LoadMicrocode copies a block's microcode to the store at offset 0. The
// block's LoadAddr is not a copy destination; it is given to Start.
func (drv *Driver) LoadMicrocode(blk *vector.Block) (err error) {
	if blk.CodeLen > drv.MicrocodeWords {
		err = &ErrCodeLen{CodeLen: blk.CodeLen, Words: drv.MicrocodeWords}
		return
	}

	for n, word := range blk.Microcode {
		err = drv.Microcode.Write(uint32(n), word)
		if err != nil {
			return
		}
	}

	return
}

// LoadArgs writes a vector's argument groups into the block's window.
func (drv *Driver) LoadArgs(window uint32, vec *vector.Vector) (err error) {
	for arg, group := range vec.Args {
		for word, value := range group {
			err = drv.RegFile.Write(vector.RegOffset(window, uint32(arg), uint32(word)), value)
			if err != nil {
				return
			}
		}
	}

	return
}

// Load loads the block's microcode and a vector's arguments.
func (drv *Driver) Load(blk *vector.Block, vec *vector.Vector) (err error) {
	err = drv.LoadMicrocode(blk)
	if err != nil {
		return
	}

	return drv.LoadArgs(blk.Window, vec)
}

// Start configures the window and program bounds, then sets go.
func (drv *Driver) Start(window, loadAddr, codeLen uint32) (err error) {
	if drv.Verbose {
		log.Printf("engine: start window=%d mpstart=0x%x mplen=%d", window, loadAddr, codeLen)
	}

	writes := []struct {
		csr   uint32
		value uint32
	}{
		{CSR_WINDOW, window},
		{CSR_MPSTART, loadAddr},
		{CSR_MPLEN, codeLen},
		{CSR_CONTROL, CONTROL_GO},
	}
	for _, w := range writes {
		err = drv.Csr.Write(w.csr, w.value)
		if err != nil {
			return
		}
	}

	return
}

func (drv *Driver) pauseArmed() bool {
	return drv.PauseAt >= 0 && (drv.PauseEvery || drv.Pauses == 0)
}

func (drv *Driver) overBudget(polls int) bool {
	return drv.PollBudget > 0 && polls >= drv.PollBudget
}

// Poll spins until the engine clears its running bit. Each status read is
// reported. At iteration PauseAt the status read is replaced by the pause
// diagnostic.
func (drv *Driver) Poll() (err error) {
	var status uint32

	for drv.Polls = 0; ; drv.Polls++ {
		if drv.overBudget(drv.Polls) {
			err = &ErrStallAt{Stage: "run", Status: status, Polls: drv.Polls}
			return
		}

		if drv.Polls == drv.PauseAt && drv.pauseArmed() {
			err = drv.Pause()
			if err != nil {
				return
			}
			continue
		}

		status, err = drv.Csr.Read(CSR_STATUS)
		if err != nil {
			return
		}
		drv.report(status)

		if status&STATUS_RUNNING == 0 {
			break
		}
	}

	if drv.Verbose {
		log.Printf("engine: done after %d polls, mpc=0x%x", drv.Polls, Mpc(status))
	}

	return
}

// Pause requests a pause, waits for the grant, reports a snapshot of the
// register file and microcode, then drops the request. Resumption is not
// acknowledged by the engine, so none is waited for.
func (drv *Driver) Pause() (err error) {
	err = drv.Csr.Write(CSR_POWER, POWER_ON|POWER_PAUSE_REQ)
	if err != nil {
		return
	}

	var status uint32
	for spin := 0; status&STATUS_PAUSE_GNT == 0; spin++ {
		if drv.overBudget(spin) {
			err = &ErrStallAt{Stage: "pause", Status: status, Polls: spin}
			// Drop the request; the stall is still reported.
			if werr := drv.Csr.Write(CSR_POWER, POWER_ON); werr != nil {
				err = errors.Join(err, werr)
			}
			return
		}
		status, err = drv.Csr.Read(CSR_STATUS)
		if err != nil {
			return
		}
	}

	for n, offset := range snapshotOffsets {
		drv.Snapshot.RegFile[n], err = drv.RegFile.Read(offset)
		if err != nil {
			return
		}
		drv.report(drv.Snapshot.RegFile[n])
	}
	for n, offset := range snapshotOffsets {
		drv.Snapshot.Microcode[n], err = drv.Microcode.Read(offset)
		if err != nil {
			return
		}
		drv.report(drv.Snapshot.Microcode[n])
	}

	if drv.Verbose {
		log.Printf("engine: paused at mpc=0x%x rf=%08x mc=%08x", Mpc(status), drv.Snapshot.RegFile, drv.Snapshot.Microcode)
	}

	drv.Pauses++

	return drv.Csr.Write(CSR_POWER, POWER_ON)
}

// Result reads the result register of a window.
func (drv *Driver) Result(window uint32) (result [vector.RESULT_WORDS]uint32, err error) {
	for word := range result {
		result[word], err = drv.RegFile.Read(vector.ResultOffset(window, uint32(word)))
		if err != nil {
			return
		}
	}
	return
}

// Run loads a vector's arguments, runs the block's program on them, and
// returns the result register. The block's microcode must already be
// loaded.
func (drv *Driver) Run(blk *vector.Block, vec *vector.Vector) (result [vector.RESULT_WORDS]uint32, err error) {
	err = drv.LoadArgs(blk.Window, vec)
	if err != nil {
		return
	}

	err = drv.Start(blk.Window, blk.LoadAddr, blk.CodeLen)
	if err != nil {
		return
	}

	err = drv.Poll()
	if err != nil {
		return
	}

	return drv.Result(blk.Window)
}
