// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"golang.org/x/term"

	"github.com/ezrec/enginetb/harness"
	"github.com/ezrec/enginetb/sim"
	"github.com/ezrec/enginetb/vector"
)

const (
	ansiPass  = "\x1b[32m"
	ansiFail  = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func main() {
	var config string
	var script string
	var write string
	var input string
	var journal string
	var kernel string
	var budget int
	var pauseAt int
	var save bool
	var trace bool
	var verbose bool

	flag.StringVar(&config, "c", "", ".star bench configuration")
	flag.StringVar(&script, "g", "", ".star vector script to build")
	flag.StringVar(&write, "w", "", "Write the vector stream to a .bin file")
	flag.StringVar(&input, "i", "", ".bin vector file to run")
	flag.StringVar(&journal, "j", "", "Append the CI result line to a journal file")
	flag.StringVar(&kernel, "k", "double", fmt.Sprintf("Engine model kernel %v", slices.Sorted(maps.Keys(sim.Kernels))))
	flag.IntVar(&budget, "budget", -1, "Poll budget, 0 for unlimited (default from configuration)")
	flag.IntVar(&pauseAt, "pause", -2, "Poll iteration of the pause diagnostic, -1 to disable (default from configuration)")
	flag.BoolVar(&save, "s", false, "Save the vector stream, do not run")
	flag.BoolVar(&trace, "t", false, "Trace every bus access")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(script) != 0 && len(input) != 0 {
		log.Fatalf("%v: -g and -i are exclusive", os.Args[0])
	}

	cfg := harness.DefaultConfig()
	if len(config) != 0 {
		var err error
		cfg, err = harness.LoadConfig(config, nil)
		if err != nil {
			log.Fatal(err)
		}
	}
	if budget >= 0 {
		cfg.PollBudget = budget
	}
	if pauseAt >= -1 {
		cfg.PauseAt = pauseAt
	}
	cfg.Verbose = cfg.Verbose || verbose

	var words []uint32

	// Build a new vector stream.
	if len(script) != 0 {
		sc := &vector.Script{Verbose: cfg.Verbose}
		err := sc.Exec(script, nil)
		if err != nil {
			log.Fatal(err)
		}
		words = sc.Words()
	}

	if len(input) != 0 {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()

		words, err = vector.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	}

	if len(write) != 0 {
		ouf, err := os.Create(write)
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
		err = vector.Save(ouf, words)
		if err == nil {
			err = ouf.Close()
		}
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
	}

	if save {
		return
	}

	if !run(cfg, kernel, words, journal, trace) {
		os.Exit(1)
	}
}

// run executes the bench against the engine model.
func run(cfg harness.Config, kernel string, words []uint32, journal string, trace bool) (pass bool) {
	fn, ok := sim.Kernels[kernel]
	if !ok {
		log.Fatalf("%v: unknown kernel", kernel)
	}

	if cfg.RegFileBase != cfg.MicrocodeBase+sim.REGFILE_OFFSET {
		log.Fatalf("register file base 0x%08x: the engine model maps it at microcode base + 0x%x", cfg.RegFileBase, sim.REGFILE_OFFSET)
	}

	layout := sim.Layout{
		VectorBase:    cfg.VectorBase,
		EngineBase:    cfg.MicrocodeBase,
		CsrBase:       cfg.CsrBase,
		SimStatusBase: cfg.SimStatusBase,
	}

	spec := sim.DefaultSpec()
	spec.MicrocodeWords = cfg.MicrocodeWords
	spec.RegFileWords = cfg.RegFileWords

	m, err := sim.NewMachine(layout, spec, fn, words)
	if err != nil {
		log.Fatal(err)
	}
	m.Bus.Verbose = trace
	m.Engine.Verbose = cfg.Verbose

	var sinks []harness.Sink
	if cfg.Verbose {
		sinks = append(sinks, harness.LogSink{Prefix: "enginetb: "})
	}

	h, err := harness.NewHarness(cfg, m.Bus, sinks...)
	if err != nil {
		log.Fatal(err)
	}

	summary, err := h.Run()
	if err != nil {
		log.Print(err)
	}

	if len(journal) != 0 {
		jf, err := os.OpenFile(journal, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", journal, err)
		}
		err = h.Journal(jf)
		if err == nil {
			err = jf.Close()
		}
		if err != nil {
			log.Fatalf("%v: %v", journal, err)
		}
	}

	result := "PASS"
	color := ansiPass
	if !summary.Pass {
		result = "FAIL"
		color = ansiFail
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		result = color + result + ansiReset
	}

	fmt.Printf("%v: %d blocks, %d/%d vectors passed, microcode %v, regfile %v, escape %v, %d faults, %.3fus engine time, report code 0x%08x\n",
		result, summary.Blocks, summary.Passed, summary.Vectors,
		summary.Microcode, summary.RegFile, summary.Escape, summary.Faults,
		m.Engine.Elapsed()*1e6, summary.Code)

	return summary.Pass
}
