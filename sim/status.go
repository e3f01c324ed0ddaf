package sim

import (
	"github.com/ezrec/enginetb/harness"
	"github.com/ezrec/enginetb/mmio"
)

// SIMSTATUS_BYTES is the size of the status block mapping.
const SIMSTATUS_BYTES = harness.SIMSTATUS_WORDS * mmio.WORD_BYTES

// SimStatus models the simulation status block watched by CI: every
// report write is captured in order, as a waveform would show it.
type SimStatus struct {
	Reports []uint32 // Every value written to the report register.
	Status  uint32   // Last value written to the completion register.
	Writes  int      // Number of completion register writes.
}

// Success reports whether the success bit is set.
func (ss *SimStatus) Success() bool {
	return ss.Status&harness.SIMSTATUS_SUCCESS != 0
}

// Done reports whether the done bit is set.
func (ss *SimStatus) Done() bool {
	return ss.Status&harness.SIMSTATUS_DONE != 0
}

// Last returns the most recent report.
func (ss *SimStatus) Last() (code uint32, ok bool) {
	if len(ss.Reports) > 0 {
		ok = true
		code = ss.Reports[len(ss.Reports)-1]
	}
	return
}

func (ss *SimStatus) ReadWord(addr uint32) (value uint32) {
	switch addr / 4 {
	case harness.SIMSTATUS_REPORT:
		value, _ = ss.Last()
	case harness.SIMSTATUS_STATUS:
		value = ss.Status
	}
	return
}

func (ss *SimStatus) WriteWord(addr uint32, value uint32) {
	switch addr / 4 {
	case harness.SIMSTATUS_REPORT:
		ss.Reports = append(ss.Reports, value)
	case harness.SIMSTATUS_STATUS:
		ss.Status = value
		ss.Writes++
	}
}
