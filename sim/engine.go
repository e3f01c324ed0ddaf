// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package sim

import (
	"log"

	"github.com/ezrec/enginetb/engine"
	"github.com/ezrec/enginetb/mmio"
	"github.com/ezrec/enginetb/vector"
)

// Engine models the microcoded engine: microcode store, windowed register
// file, and CSR block.
type Engine struct {
	Verbose bool   // If set, logs run start and completion.
	Spec    Spec   // Geometry and timing.
	Kernel  Kernel // Result computation.
	Hang    bool   // If set, runs never complete.

	Microcode []uint32
	RegFile   []uint32

	window  uint32
	mpstart uint32
	mplen   uint32
	power   uint32

	running  bool
	paused   bool
	latched  uint32 // Window latched at go.
	mpc      uint32
	mpcStop  uint32
	wordTick int
	grant    int

	Cycles uint64 // Cycles spent running, excluding pauses.
	Runs   int    // Completed runs.
}

// NewEngine creates an engine model.
func NewEngine(spec Spec, kernel Kernel) (eng *Engine, err error) {
	err = spec.validate()
	if err != nil {
		return
	}

	eng = &Engine{
		Spec:      spec,
		Kernel:    kernel,
		Microcode: make([]uint32, spec.MicrocodeWords),
		RegFile:   make([]uint32, spec.RegFileWords),
	}
	return
}

// Elapsed is the simulated run time, in seconds.
func (eng *Engine) Elapsed() float64 {
	return float64(eng.Cycles) / float64(eng.Spec.Freq)
}

// Running reports whether a run is in progress.
func (eng *Engine) Running() bool {
	return eng.running
}

// Paused reports whether the pause request has been granted.
func (eng *Engine) Paused() bool {
	return eng.paused
}

// Status is the current CSR_STATUS value.
func (eng *Engine) Status() (status uint32) {
	if eng.running {
		status |= engine.STATUS_RUNNING
	}
	status |= (eng.mpc & engine.STATUS_MPC_MASK) << engine.STATUS_MPC_SHIFT
	if eng.paused {
		status |= engine.STATUS_PAUSE_GNT
	}
	return
}

func (eng *Engine) start() {
	if eng.power&engine.POWER_ON == 0 || eng.running {
		return
	}

	eng.running = true
	eng.latched = eng.window & vector.WINDOW_MASK
	eng.mpc = eng.mpstart
	eng.mpcStop = eng.mpstart + eng.mplen - 1
	eng.wordTick = 0

	if eng.Verbose {
		log.Printf("sim: go window=%d mpstart=0x%x mplen=%d", eng.latched, eng.mpstart, eng.mplen)
	}
}

func (eng *Engine) complete() {
	eng.running = false
	eng.Runs++

	lo := min(eng.mpstart, uint32(len(eng.Microcode)))
	hi := min(eng.mpstart+eng.mplen, uint32(len(eng.Microcode)))
	base := eng.latched * vector.WINDOW_STRIDE
	if eng.Kernel != nil && base+vector.WINDOW_STRIDE <= uint32(len(eng.RegFile)) {
		rw := RegisterWindow{words: eng.RegFile[base : base+vector.WINDOW_STRIDE]}
		eng.Kernel(eng.Microcode[lo:hi], rw)
	}

	if eng.Verbose {
		log.Printf("sim: done after %d cycles", eng.Cycles)
	}
}

// Tick advances the engine by one cycle.
func (eng *Engine) Tick() {
	if eng.power&engine.POWER_PAUSE_REQ != 0 {
		if !eng.paused {
			eng.grant++
			if eng.grant >= eng.Spec.GrantLatency {
				eng.paused = true
			}
		}
		return
	}
	eng.paused = false
	eng.grant = 0

	if !eng.running {
		return
	}

	eng.Cycles++
	if eng.Hang {
		return
	}

	eng.wordTick++
	if eng.wordTick < eng.Spec.CyclesPerWord {
		return
	}
	eng.wordTick = 0

	if eng.mplen == 0 || eng.mpc >= eng.mpcStop {
		eng.complete()
		return
	}
	eng.mpc++
}

// Memory returns the device for the engine's memory mapping: the microcode
// window followed by the register file window.
func (eng *Engine) Memory() mmio.Device {
	return (*engineMemory)(eng)
}

// Csr returns the device for the engine's CSR block.
func (eng *Engine) Csr() mmio.Device {
	return (*engineCsr)(eng)
}

type engineMemory Engine

func (mem *engineMemory) word(addr uint32) (store []uint32, index uint32) {
	if addr < REGFILE_OFFSET {
		store, index = mem.Microcode, (addr-MICROCODE_OFFSET)/4
	} else {
		store, index = mem.RegFile, (addr-REGFILE_OFFSET)/4
	}
	if index >= uint32(len(store)) {
		store = nil
	}
	return
}

func (mem *engineMemory) ReadWord(addr uint32) (value uint32) {
	store, index := mem.word(addr)
	if store == nil {
		return ESCAPE_VALUE
	}
	return store[index]
}

func (mem *engineMemory) WriteWord(addr uint32, value uint32) {
	store, index := mem.word(addr)
	if store != nil {
		store[index] = value
	}
}

type engineCsr Engine

func (csr *engineCsr) ReadWord(addr uint32) (value uint32) {
	eng := (*Engine)(csr)
	switch addr / 4 {
	case engine.CSR_WINDOW:
		value = eng.window
	case engine.CSR_MPSTART:
		value = eng.mpstart
	case engine.CSR_MPLEN:
		value = eng.mplen
	case engine.CSR_STATUS:
		eng.Tick()
		value = eng.Status()
	case engine.CSR_POWER:
		value = eng.power
	}
	return
}

func (csr *engineCsr) WriteWord(addr uint32, value uint32) {
	eng := (*Engine)(csr)
	switch addr / 4 {
	case engine.CSR_WINDOW:
		eng.window = value
	case engine.CSR_MPSTART:
		eng.mpstart = value & engine.STATUS_MPC_MASK
	case engine.CSR_MPLEN:
		eng.mplen = value & engine.STATUS_MPC_MASK
	case engine.CSR_CONTROL:
		if value&engine.CONTROL_GO != 0 {
			eng.start()
		}
	case engine.CSR_POWER:
		eng.power = value
	}
}
