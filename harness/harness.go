// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package harness sequences a bench run: every vector of the stream is run
// and verified, then the engine address space is probed, then a single
// pass or fail is signalled. Progress is reported as phase markers for
// waveform correlation.
package harness

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ezrec/enginetb/engine"
	"github.com/ezrec/enginetb/mmio"
	"github.com/ezrec/enginetb/probe"
	"github.com/ezrec/enginetb/verify"
	"github.com/ezrec/enginetb/vector"
)

// State of the harness.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_INIT        State = iota // init
	STATE_RUN_VECTORS              // run-vectors
	STATE_PROBE                    // probe-address-space
	STATE_REPORT                   // report
	STATE_DONE                     // done
)

// Summary of a run.
type Summary struct {
	Blocks int // Blocks decoded.
	verify.Tally

	Stalled   bool // A run exhausted the poll budget.
	Microcode bool // Microcode space check passed.
	RegFile   bool // Register file space check passed.
	Escape    bool // Unimplemented offsets read back ESCAPE.
	Faults    int  // Infrastructure errors.

	Pass bool // Aggregate of every check.
	Code uint32
}

// probeStep is one stage of the address space probe.
type probeStep struct {
	name string
	run  func(h *Harness) error
}

var probeSteps = []probeStep{
	{"microcode write", func(h *Harness) error {
		return h.Prober.FillMicrocode()
	}},
	{"microcode read", func(h *Harness) (err error) {
		h.Summary.Microcode, err = h.Prober.CheckMicrocode()
		return
	}},
	{"regfile write", func(h *Harness) error {
		return h.Prober.FillRegFile()
	}},
	{"regfile read", func(h *Harness) (err error) {
		h.Summary.RegFile, err = h.Prober.CheckRegFile()
		return
	}},
	{"escape", func(h *Harness) (err error) {
		h.Summary.Escape, err = h.Prober.Escape()
		return
	}},
}

// Harness runs the bench against a bus.
type Harness struct {
	Verbose bool // If set, logs stage transitions and vector outcomes.

	Config Config
	Bus    *mmio.Bus
	Status *StatusPort // SIMSTATUS report and completion.
	Sink   Sink        // Every report goes here, Status included.

	Parser *vector.Parser
	Driver *engine.Driver
	Prober *probe.Prober

	State   State
	Phase   Phase
	Summary Summary
	Last    uint32 // Last reported code.

	pass  bool
	block *vector.Block
	step  int
}

// NewHarness wires the bench to the regions of `bus` given by `cfg`.
// Reports go to the SIMSTATUS block, and to each of `sinks`.
func NewHarness(cfg Config, bus *mmio.Bus, sinks ...Sink) (h *Harness, err error) {
	err = cfg.validate()
	if err != nil {
		return
	}

	h = &Harness{
		Verbose: cfg.Verbose,
		Config:  cfg,
		Bus:     bus,
		Status: &StatusPort{
			Region: bus.Window("simstatus", cfg.SimStatusBase, SIMSTATUS_WORDS),
		},
		Phase: PHASE_START,
		pass:  true,
	}
	h.Sink = append(Tee{h.Status}, sinks...)

	microcode := bus.Window("microcode", cfg.MicrocodeBase, cfg.MicrocodeWindowWords)
	regfile := bus.Window("regfile", cfg.RegFileBase, cfg.RegFileWindowWords)

	h.Parser = vector.NewParser(bus.Window("vectors", cfg.VectorBase, cfg.VectorWords))
	h.Parser.Verbose = cfg.Verbose

	h.Driver = engine.NewDriver(microcode, regfile,
		bus.Window("csr", cfg.CsrBase, engine.CSR_WORDS),
		reporter{h})
	h.Driver.Verbose = cfg.Verbose
	h.Driver.MicrocodeWords = cfg.MicrocodeWords
	h.Driver.PauseAt = cfg.PauseAt
	h.Driver.PauseEvery = cfg.PauseEvery
	h.Driver.PollBudget = cfg.PollBudget

	h.Prober = &probe.Prober{
		Verbose:        cfg.Verbose,
		Microcode:      microcode,
		RegFile:        regfile,
		Report:         reporter{h},
		MicrocodeWords: cfg.MicrocodeWords,
		RegFileWords:   cfg.RegFileWords,
	}

	return
}

// reporter lets the driver and prober report through the harness.
type reporter struct {
	h *Harness
}

func (rp reporter) Report(code uint32) {
	rp.h.report(code)
}

func (h *Harness) report(code uint32) {
	h.Last = code
	h.Sink.Report(code)
}

func (h *Harness) marker() {
	h.report(h.Phase.Next())
}

func (h *Harness) fail() {
	h.pass = false
}

func (h *Harness) fault(err error) error {
	h.Summary.Faults++
	h.fail()
	if h.Verbose {
		log.Printf("harness: %v: %v", h.State, err)
	}
	return &ErrStage{State: h.State, Err: err}
}

func (h *Harness) enter(state State) {
	if h.Verbose {
		log.Printf("harness: %v -> %v", h.State, state)
	}
	h.State = state
}

// endVectors leaves the vector stage.
func (h *Harness) endVectors() {
	h.block = nil
	h.Phase.Stage()
	h.enter(STATE_PROBE)
}

// Tick advances the harness by one step: a block, a vector, or a probe
// stage. An error is an infrastructure fault; it has been counted as a
// failure, and Tick may be called again to run the remaining checks.
func (h *Harness) Tick() (done bool, err error) {
	switch h.State {
	case STATE_INIT:
		h.marker()
		err = h.Driver.PowerOn()
		if err != nil {
			err = h.fault(err)
		}
		h.enter(STATE_RUN_VECTORS)
	case STATE_RUN_VECTORS:
		if h.block == nil {
			err = h.nextBlock()
		} else {
			err = h.nextVector()
		}
	case STATE_PROBE:
		step := probeSteps[h.step]
		h.marker()
		if h.Verbose {
			log.Printf("harness: probe %v", step.name)
		}
		err = step.run(h)
		if err != nil {
			err = h.fault(err)
		}
		h.step++
		if h.step == len(probeSteps) {
			h.enter(STATE_REPORT)
		}
	case STATE_REPORT:
		err = h.finish()
		h.enter(STATE_DONE)
		done = true
	case STATE_DONE:
		done = true
	}

	return
}

func (h *Harness) nextBlock() (err error) {
	blk, err := h.Parser.Next()
	if err != nil {
		err = h.fault(err)
		h.endVectors()
		return
	}

	// Every candidate magic word is reported, the terminator included.
	h.report(h.Parser.Magic)

	if blk == nil {
		if h.Verbose {
			log.Printf("harness: %d blocks, %d vectors, %d failed", h.Summary.Blocks, h.Summary.Vectors, h.Summary.Failed)
		}
		h.endVectors()
		return
	}

	h.Summary.Blocks++
	err = h.Driver.LoadMicrocode(blk)
	h.marker()
	if err != nil {
		// Its vectors are skipped with the block.
		return h.fault(err)
	}

	h.block = blk
	return
}

func (h *Harness) nextVector() (err error) {
	blk := h.block

	vec, err := blk.Next()
	if err != nil {
		err = h.fault(err)
		h.endVectors()
		return
	}
	if vec == nil {
		h.block = nil
		return
	}

	actual, err := h.Driver.Run(blk, vec)
	if errors.Is(err, engine.ErrStall) {
		// The engine is still busy, so no later vector can run.
		h.Summary.Stalled = true
		h.Summary.Vectors++
		h.Summary.Failed++
		h.report(verify.CODE_STALL)
		h.marker()
		err = h.fault(err)
		h.endVectors()
		return
	}
	if err != nil {
		h.Summary.Vectors++
		h.Summary.Failed++
		h.report(verify.CODE_VECTOR_FAIL)
		h.marker()
		return h.fault(err)
	}

	pass := h.Summary.Record(vec.Expect, actual)
	h.report(verify.VectorCode(pass))
	h.marker()
	if !pass {
		h.fail()
		if h.Verbose {
			log.Printf("harness: block %d vector %d: words %v differ: expected %08x, got %08x",
				blk.Index, vec.Index, verify.Mismatches(vec.Expect, actual), vec.Expect, actual)
		}
	}

	return
}

// finish reports the final marker and code, then signals completion.
func (h *Harness) finish() (err error) {
	h.report(uint32(h.Phase))

	for _, ok := range []bool{h.Summary.Microcode, h.Summary.RegFile, h.Summary.Escape} {
		if !ok {
			h.fail()
		}
	}

	h.Summary.Pass = h.pass
	h.Summary.Code = verify.FinalCode(h.pass)
	h.report(h.Summary.Code)

	h.Status.Complete(h.pass)
	if h.Status.Err != nil {
		err = h.fault(h.Status.Err)
		h.Summary.Pass = false
	}

	if h.Verbose {
		log.Printf("harness: final 0x%08x", h.Summary.Code)
	}

	return
}

// Run ticks the harness to completion. Every check runs; the returned
// error joins every infrastructure fault seen on the way.
func (h *Harness) Run() (summary Summary, err error) {
	var errs []error
	for done := false; !done; {
		var terr error
		done, terr = h.Tick()
		if terr != nil {
			errs = append(errs, terr)
		}
	}

	summary = h.Summary
	err = errors.Join(errs...)
	return
}

// Journal appends the CI log line for a completed run.
func (h *Harness) Journal(w io.Writer) (err error) {
	if h.State != STATE_DONE {
		err = ErrNotCompleted
		return
	}

	result := "Success"
	if !h.Summary.Pass {
		result = "Failure"
	}
	_, err = fmt.Fprintf(w, "%v: report code 0x%08x\n", result, h.Last)
	return
}
