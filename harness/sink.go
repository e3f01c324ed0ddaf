package harness

import (
	"log"

	"github.com/ezrec/enginetb/mmio"
)

// Sink is the diagnostic report channel. Reporting has no effect on the
// harness's own logic.
type Sink interface {
	Report(code uint32)
}

// Recorder is a Sink that keeps every code, in order.
type Recorder struct {
	Codes []uint32
}

var _ Sink = (*Recorder)(nil)

// Reset discards all recorded codes.
func (rec *Recorder) Reset() {
	rec.Codes = nil
}

// Report appends a code.
func (rec *Recorder) Report(code uint32) {
	rec.Codes = append(rec.Codes, code)
}

// Last returns the most recent code.
func (rec *Recorder) Last() (code uint32, ok bool) {
	if len(rec.Codes) > 0 {
		ok = true
		code = rec.Codes[len(rec.Codes)-1]
	}
	return
}

// Index returns the position of the first occurrence of a code, or -1.
func (rec *Recorder) Index(code uint32) int {
	for n, c := range rec.Codes {
		if c == code {
			return n
		}
	}
	return -1
}

// StatusPort reports through the SIMSTATUS block, and signals completion.
type StatusPort struct {
	Region mmio.Region // SIMSTATUS block.
	Err    error       // First write failure, if any.

	completed bool
}

var _ Sink = (*StatusPort)(nil)

func (sp *StatusPort) write(offset uint32, value uint32) {
	err := sp.Region.Write(offset, value)
	if err != nil && sp.Err == nil {
		sp.Err = err
	}
}

// Report writes a code to the report register.
func (sp *StatusPort) Report(code uint32) {
	sp.write(SIMSTATUS_REPORT, code)
}

// Complete writes the completion register, once. Later calls are ignored.
func (sp *StatusPort) Complete(pass bool) {
	if sp.completed {
		return
	}
	sp.completed = true

	status := SIMSTATUS_DONE
	if pass {
		status |= SIMSTATUS_SUCCESS
	}
	sp.write(SIMSTATUS_STATUS, status)
}

// Completed reports whether Complete has been called.
func (sp *StatusPort) Completed() bool {
	return sp.completed
}

// Tee reports each code to every sink, in order.
type Tee []Sink

func (tee Tee) Report(code uint32) {
	for _, sink := range tee {
		sink.Report(code)
	}
}

// LogSink logs every code.
type LogSink struct {
	Prefix string
}

func (ls LogSink) Report(code uint32) {
	log.Printf("%vreport 0x%08x", ls.Prefix, code)
}
