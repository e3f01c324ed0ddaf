// Package probe checks the engine's microcode and register file address
// mapping: every implemented word holds what was written to it, and
// unimplemented offsets inside the engine windows read back ESCAPE.
package probe

import (
	"iter"
	"log"

	"github.com/ezrec/enginetb/internal"
	"github.com/ezrec/enginetb/mmio"
)

// Hardware contract values.
const (
	ESCAPE       = uint32(0xC0DE_BADD) // Read value of unmapped engine offsets.
	REGFILE_BIAS = uint32(0xA000_0000) // Register file fill pattern bias.
)

// Values written to unmapped offsets; none may be read back.
const (
	ESCAPE_MICROCODE_LOW  = uint32(0x1234_5678)
	ESCAPE_MICROCODE_HIGH = uint32(0x8765_4321)
	ESCAPE_REGFILE        = uint32(0x3141_5926)
)

var _probe_defines = map[string]uint32{
	"ESCAPE":       ESCAPE,
	"REGFILE_BIAS": REGFILE_BIAS,
}

// Defines returns the probe constants.
func Defines() iter.Seq2[string, string] {
	return internal.HexDefines(_probe_defines)
}

// Reporter receives diagnostic codes.
type Reporter interface {
	Report(code uint32)
}

// Prober runs the address space checks.
type Prober struct {
	Verbose bool // If set, logs every mismatch.

	Microcode mmio.Region // Microcode window.
	RegFile   mmio.Region // Register file window.
	Report    Reporter    // Receives mismatching readback values, may be nil.

	MicrocodeWords uint32 // Implemented microcode words.
	RegFileWords   uint32 // Implemented register file words.
}

func (pr *Prober) report(code uint32) {
	if pr.Report != nil {
		pr.Report.Report(code)
	}
}

func fill(region mmio.Region, words uint32, bias uint32) (err error) {
	for i := range words {
		err = region.Write(i, i+bias)
		if err != nil {
			return
		}
	}
	return
}

func (pr *Prober) check(name string, region mmio.Region, words uint32, bias uint32) (ok bool, err error) {
	ok = true
	for i := range words {
		var rbk uint32
		rbk, err = region.Read(i)
		if err != nil {
			return
		}
		if rbk != i+bias {
			if pr.Verbose {
				log.Printf("probe: %v[0x%x] = 0x%08x, expected 0x%08x", name, i, rbk, i+bias)
			}
			pr.report(rbk)
			ok = false
		}
	}
	return
}

// FillMicrocode writes i to microcode word i.
func (pr *Prober) FillMicrocode() (err error) {
	return fill(pr.Microcode, pr.MicrocodeWords, 0)
}

// CheckMicrocode reads back the FillMicrocode pattern. Every mismatching
// value is reported; the scan is not cut short.
func (pr *Prober) CheckMicrocode() (ok bool, err error) {
	return pr.check("microcode", pr.Microcode, pr.MicrocodeWords, 0)
}

// FillRegFile writes REGFILE_BIAS + i to register file word i.
func (pr *Prober) FillRegFile() (err error) {
	return fill(pr.RegFile, pr.RegFileWords, REGFILE_BIAS)
}

// CheckRegFile reads back the FillRegFile pattern.
func (pr *Prober) CheckRegFile() (ok bool, err error) {
	return pr.check("regfile", pr.RegFile, pr.RegFileWords, REGFILE_BIAS)
}

// MicrocodeSpace fills and checks the microcode store.
func (pr *Prober) MicrocodeSpace() (ok bool, err error) {
	err = pr.FillMicrocode()
	if err != nil {
		return
	}
	return pr.CheckMicrocode()
}

// RegFileSpace fills and checks the register file.
func (pr *Prober) RegFileSpace() (ok bool, err error) {
	err = pr.FillRegFile()
	if err != nil {
		return
	}
	return pr.CheckRegFile()
}

// Escape writes to the first unimplemented microcode word, the last word of
// the microcode window, and the first unimplemented register file word,
// then checks that all three read ESCAPE.
func (pr *Prober) Escape() (ok bool, err error) {
	probes := []struct {
		name   string
		region mmio.Region
		offset uint32
		value  uint32
	}{
		{"microcode", pr.Microcode, pr.MicrocodeWords, ESCAPE_MICROCODE_LOW},
		{"microcode", pr.Microcode, pr.Microcode.Len() - 1, ESCAPE_MICROCODE_HIGH},
		{"regfile", pr.RegFile, pr.RegFileWords, ESCAPE_REGFILE},
	}

	for _, probe := range probes {
		err = probe.region.Write(probe.offset, probe.value)
		if err != nil {
			return
		}
	}

	ok = true
	for _, probe := range probes {
		var rbk uint32
		rbk, err = probe.region.Read(probe.offset)
		if err != nil {
			return
		}
		if rbk != ESCAPE {
			if pr.Verbose {
				log.Printf("probe: %v[0x%x] = 0x%08x, expected escape", probe.name, probe.offset, rbk)
			}
			ok = false
		}
	}

	return
}
