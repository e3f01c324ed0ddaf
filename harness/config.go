// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package harness

import (
	"iter"
	"log"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/enginetb/engine"
	"github.com/ezrec/enginetb/internal"
	"github.com/ezrec/enginetb/mmio"
	"github.com/ezrec/enginetb/probe"
	"github.com/ezrec/enginetb/verify"
	"github.com/ezrec/enginetb/vector"
)

// Config is the bench's view of the platform: where each region lives,
// how much of it is implemented, and how the engine is polled.
type Config struct {
	Verbose bool // If set, the harness and its parts log their progress.

	VectorBase    uint32 // Vector stream ROM.
	MicrocodeBase uint32 // Engine microcode window.
	RegFileBase   uint32 // Engine register file window.
	CsrBase       uint32 // Engine CSR block.
	SimStatusBase uint32 // SIMSTATUS block.

	VectorWords          uint32 // Addressable vector stream words.
	MicrocodeWords       uint32 // Implemented microcode words.
	MicrocodeWindowWords uint32 // Microcode window size, in words.
	RegFileWords         uint32 // Implemented register file words.
	RegFileWindowWords   uint32 // Register file window size, in words.

	PauseAt    int  // Poll iteration of the pause diagnostic, <0 to disable.
	PauseEvery bool // Take the pause diagnostic on every vector.
	PollBudget int  // Maximum iterations per spin loop, 0 for unlimited.
}

// DefaultConfig is the curve engine test bench.
func DefaultConfig() Config {
	return Config{
		VectorBase:    0x3000_0000,
		MicrocodeBase: 0xE002_0000,
		RegFileBase:   0xE003_0000,
		CsrBase:       0xF000_8000,
		SimStatusBase: 0xF000_9000,

		VectorWords:          0x0040_0000,
		MicrocodeWords:       0x400,
		MicrocodeWindowWords: 0x4000,
		RegFileWords:         0x1000,
		RegFileWindowWords:   0x4000,

		PauseAt: engine.PAUSE_AT_DEFAULT,
	}
}

func (cfg *Config) validate() error {
	for _, base := range []uint32{cfg.VectorBase, cfg.MicrocodeBase, cfg.RegFileBase, cfg.CsrBase, cfg.SimStatusBase} {
		if base%mmio.WORD_BYTES != 0 {
			return ErrBaseAlign
		}
	}
	if cfg.VectorWords == 0 || cfg.MicrocodeWords == 0 || cfg.RegFileWords == 0 {
		return ErrEmptyWindow
	}
	if cfg.MicrocodeWords >= cfg.MicrocodeWindowWords || cfg.RegFileWords >= cfg.RegFileWindowWords {
		return ErrWindowWords
	}
	if cfg.PollBudget < 0 {
		return ErrPollBudget
	}
	return nil
}

// fields maps configuration script globals to Config fields.
func (cfg *Config) fields() map[string]any {
	return map[string]any{
		"verbose":                &cfg.Verbose,
		"vector_base":            &cfg.VectorBase,
		"microcode_base":         &cfg.MicrocodeBase,
		"regfile_base":           &cfg.RegFileBase,
		"csr_base":               &cfg.CsrBase,
		"simstatus_base":         &cfg.SimStatusBase,
		"vector_words":           &cfg.VectorWords,
		"microcode_words":        &cfg.MicrocodeWords,
		"microcode_window_words": &cfg.MicrocodeWindowWords,
		"regfile_words":          &cfg.RegFileWords,
		"regfile_window_words":   &cfg.RegFileWindowWords,
		"pause_at":               &cfg.PauseAt,
		"pause_every":            &cfg.PauseEvery,
		"poll_budget":            &cfg.PollBudget,
	}
}

// Set a field from a configuration script value.
func (cfg *Config) Set(name string, value starlark.Value) (err error) {
	ptr, ok := cfg.fields()[name]
	if !ok {
		err = ErrConfigName(name)
		return
	}

	bad := &ErrConfigValue{Name: name, Value: value.String()}

	switch ptr := ptr.(type) {
	case *bool:
		b, ok := value.(starlark.Bool)
		if !ok {
			return bad
		}
		*ptr = bool(b)
	case *uint32:
		i, ok := value.(starlark.Int)
		if !ok {
			return bad
		}
		u64, ok := i.Uint64()
		if !ok || u64 > 0xffff_ffff {
			return bad
		}
		*ptr = uint32(u64)
	case *int:
		var i int
		err = starlark.AsInt(value, &i)
		if err != nil {
			return bad
		}
		*ptr = i
	}

	return
}

// AllDefines returns every constant predeclared to configuration scripts.
func AllDefines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		vector.Defines(),
		engine.Defines(),
		probe.Defines(),
		verify.Defines(),
		Defines(),
	)
}

// LoadConfig runs a configuration script over DefaultConfig. `src` is as
// for starlark.ExecFile. Each global the script assigns sets the field of
// the same name, for example:
//
//	vector_base = 0x30000000
//	poll_budget = 100000
//
// Globals starting with an underscore are private to the script.
func LoadConfig(name string, src any) (cfg Config, err error) {
	cfg = DefaultConfig()

	defer func() {
		if err != nil {
			err = &ErrConfig{Name: name, Err: err}
		}
	}()

	pred := starlark.StringDict{}
	for key, str := range AllDefines() {
		var value uint64
		value, err = strconv.ParseUint(str, 0, 32)
		if err != nil {
			return
		}
		pred[key] = starlark.MakeUint64(value)
	}

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("harness: %v: %v", name, msg)
		},
	}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, name, src, pred)
	if err != nil {
		return
	}

	for _, key := range globals.Keys() {
		if strings.HasPrefix(key, "_") {
			continue
		}
		err = cfg.Set(key, globals[key])
		if err != nil {
			return
		}
	}

	err = cfg.validate()
	return
}
