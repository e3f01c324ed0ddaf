package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/enginetb/engine"
	"github.com/ezrec/enginetb/harness"
	"github.com/ezrec/enginetb/mmio"
	"github.com/ezrec/enginetb/sim"
	"github.com/ezrec/enginetb/vector"
)

var _ = Describe("Engine", func() {
	var (
		eng *sim.Engine
		mem mmio.Device
		csr mmio.Device
	)

	status := func() uint32 {
		return csr.ReadWord(engine.CSR_STATUS * 4)
	}

	start := func(window, mpstart, mplen uint32) {
		csr.WriteWord(engine.CSR_WINDOW*4, window)
		csr.WriteWord(engine.CSR_MPSTART*4, mpstart)
		csr.WriteWord(engine.CSR_MPLEN*4, mplen)
		csr.WriteWord(engine.CSR_CONTROL*4, engine.CONTROL_GO)
	}

	BeforeEach(func() {
		var err error
		eng, err = sim.NewEngine(sim.DefaultSpec(), sim.Double)
		Expect(err).NotTo(HaveOccurred())
		mem = eng.Memory()
		csr = eng.Csr()
		csr.WriteWord(engine.CSR_POWER*4, engine.POWER_ON)
	})

	Describe("NewEngine", func() {
		It("should reject an invalid spec", func() {
			spec := sim.DefaultSpec()
			spec.CyclesPerWord = 0
			_, err := sim.NewEngine(spec, sim.Double)
			Expect(err).To(HaveOccurred())

			spec = sim.DefaultSpec()
			spec.RegFileWords = 0x4001
			_, err = sim.NewEngine(spec, sim.Double)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Memory", func() {
		It("should map implemented microcode and register file words", func() {
			mem.WriteWord(0x3fc, 0x1234)
			mem.WriteWord(sim.REGFILE_OFFSET+0x3ffc, 0x5678)

			Expect(eng.Microcode[0xff]).To(Equal(uint32(0x1234)))
			Expect(eng.RegFile[0xfff]).To(Equal(uint32(0x5678)))
			Expect(mem.ReadWord(0x3fc)).To(Equal(uint32(0x1234)))
			Expect(mem.ReadWord(sim.REGFILE_OFFSET + 0x3ffc)).To(Equal(uint32(0x5678)))
		})

		It("should return the escape value for unimplemented offsets", func() {
			for _, addr := range []uint32{0x1000, 0xfffc, sim.REGFILE_OFFSET + 0x4000, sim.ENGINE_BYTES - 4} {
				mem.WriteWord(addr, 0xffff_ffff)
				Expect(mem.ReadWord(addr)).To(Equal(sim.ESCAPE_VALUE))
			}
		})
	})

	Describe("Run", func() {
		It("should execute mplen words from mpstart, then run the kernel", func() {
			eng.RegFile[vector.RegOffset(2, 0, 0)] = 0x8000_0000
			start(2, 0x10, 3)

			Expect(eng.Running()).To(BeTrue())
			var polls int
			var st uint32
			for st = status(); st&engine.STATUS_RUNNING != 0; st = status() {
				polls++
				Expect(engine.Mpc(st)).To(BeNumerically(">=", 0x10))
				Expect(engine.Mpc(st)).To(BeNumerically("<=", 0x12))
			}

			Expect(polls).To(Equal(3*16 - 1))
			Expect(engine.Mpc(st)).To(Equal(uint32(0x12)))
			Expect(eng.Runs).To(Equal(1))
			Expect(eng.Cycles).To(Equal(uint64(48)))
			Expect(eng.Elapsed()).To(BeNumerically("~", 48.0/50e6))

			result := vector.ResultOffset(2, 0)
			Expect(eng.RegFile[result : result+2]).To(Equal([]uint32{0, 1}))
		})

		It("should not start while powered off", func() {
			csr.WriteWord(engine.CSR_POWER*4, 0)
			start(0, 0, 4)
			Expect(eng.Running()).To(BeFalse())
			Expect(status() & engine.STATUS_RUNNING).To(BeZero())
		})

		It("should never complete when hung", func() {
			eng.Hang = true
			start(0, 0, 1)
			for range 1000 {
				Expect(status() & engine.STATUS_RUNNING).NotTo(BeZero())
			}
			Expect(eng.Cycles).To(Equal(uint64(1000)))
		})
	})

	Describe("Pause", func() {
		It("should grant a pause and freeze execution until released", func() {
			eng.RegFile[0] = 21
			start(0, 0, 2)
			for range 10 {
				status()
			}
			cycles := eng.Cycles

			csr.WriteWord(engine.CSR_POWER*4, engine.POWER_ON|engine.POWER_PAUSE_REQ)
			Expect(status() & engine.STATUS_PAUSE_GNT).NotTo(BeZero())
			for range 100 {
				st := status()
				Expect(st & engine.STATUS_PAUSE_GNT).NotTo(BeZero())
				Expect(st & engine.STATUS_RUNNING).NotTo(BeZero())
			}
			Expect(eng.Cycles).To(Equal(cycles))
			Expect(eng.Paused()).To(BeTrue())

			csr.WriteWord(engine.CSR_POWER*4, engine.POWER_ON)
			for status()&engine.STATUS_RUNNING != 0 {
			}
			Expect(eng.Paused()).To(BeFalse())
			Expect(eng.Cycles).To(Equal(uint64(32)))
			Expect(eng.RegFile[vector.ResultOffset(0, 0)]).To(Equal(uint32(42)))
		})
	})
})

var _ = Describe("Machine", func() {
	It("should map every device at its layout base", func() {
		layout := sim.DefaultLayout()
		m, err := sim.NewMachine(layout, sim.DefaultSpec(), sim.Add, []uint32{vector.MAGIC})
		Expect(err).NotTo(HaveOccurred())

		value, err := m.Bus.Read(layout.VectorBase)
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal(vector.MAGIC))

		Expect(m.Bus.Write(layout.SimStatusBase, 0x8000_0000)).To(Succeed())
		Expect(m.Bus.Write(layout.SimStatusBase+4, harness.SIMSTATUS_SUCCESS|harness.SIMSTATUS_DONE)).To(Succeed())
		Expect(m.SimStatus.Reports).To(Equal([]uint32{0x8000_0000}))
		Expect(m.SimStatus.Success()).To(BeTrue())
		Expect(m.SimStatus.Done()).To(BeTrue())
		Expect(m.SimStatus.Writes).To(Equal(1))

		value, err = m.Bus.Read(layout.EngineBase + sim.REGFILE_OFFSET + 0x4000)
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal(sim.ESCAPE_VALUE))

		_, err = m.Bus.Read(layout.EngineBase + sim.ENGINE_BYTES)
		Expect(err).To(HaveOccurred())
	})

	It("should reject overlapping layouts", func() {
		layout := sim.DefaultLayout()
		layout.CsrBase = layout.EngineBase + 0x100
		_, err := sim.NewMachine(layout, sim.DefaultSpec(), sim.Add, nil)
		Expect(err).To(MatchError(mmio.ErrOverlap))
	})
})
