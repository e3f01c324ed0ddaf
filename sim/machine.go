package sim

import (
	"github.com/ezrec/enginetb/engine"
	"github.com/ezrec/enginetb/mmio"
)

// Layout gives the base addresses the model's devices are mapped at.
type Layout struct {
	VectorBase    uint32
	EngineBase    uint32 // Microcode window; the register file follows at +REGFILE_OFFSET.
	CsrBase       uint32
	SimStatusBase uint32
}

// DefaultLayout is the curve engine test bench address map.
func DefaultLayout() Layout {
	return Layout{
		VectorBase:    0x3000_0000,
		EngineBase:    0xE002_0000,
		CsrBase:       0xF000_8000,
		SimStatusBase: 0xF000_9000,
	}
}

// Machine is a bus with the vector ROM, engine and status block mapped.
type Machine struct {
	Bus       *mmio.Bus
	Vectors   *mmio.Rom
	Engine    *Engine
	SimStatus *SimStatus
}

// NewMachine builds a machine with `vectors` in the vector ROM.
func NewMachine(layout Layout, spec Spec, kernel Kernel, vectors []uint32) (m *Machine, err error) {
	eng, err := NewEngine(spec, kernel)
	if err != nil {
		return
	}

	m = &Machine{
		Bus:       mmio.NewBus(),
		Vectors:   &mmio.Rom{Data: vectors},
		Engine:    eng,
		SimStatus: &SimStatus{},
	}

	// An empty vector file still decodes to an end-of-stream word.
	romSize := max(m.Vectors.Size(), mmio.WORD_BYTES)

	maps := []struct {
		name string
		base uint32
		size uint32
		dev  mmio.Device
	}{
		{"vectors", layout.VectorBase, romSize, m.Vectors},
		{"engine", layout.EngineBase, ENGINE_BYTES, eng.Memory()},
		{"csr", layout.CsrBase, engine.CSR_WORDS * mmio.WORD_BYTES, eng.Csr()},
		{"simstatus", layout.SimStatusBase, SIMSTATUS_BYTES, m.SimStatus},
	}
	for _, mp := range maps {
		err = m.Bus.Map(mp.name, mp.base, mp.size, mp.dev)
		if err != nil {
			m = nil
			return
		}
	}

	return
}
