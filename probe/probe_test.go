package probe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/enginetb/mmio"
	"github.com/ezrec/enginetb/probe"
	"github.com/ezrec/enginetb/sim"
)

type recorder struct {
	codes []uint32
}

func (rec *recorder) Report(code uint32) {
	rec.codes = append(rec.codes, code)
}

const windowWords = sim.WINDOW_BYTES / mmio.WORD_BYTES

func newProber(t *testing.T, dev mmio.Device) (pr *probe.Prober, rec *recorder) {
	bus := mmio.NewBus()
	require.NoError(t, bus.Map("engine", 0x1000_0000, sim.ENGINE_BYTES, dev))

	rec = &recorder{}
	pr = &probe.Prober{
		Microcode:      bus.Window("microcode", 0x1000_0000, windowWords),
		RegFile:        bus.Window("regfile", 0x1000_0000+sim.REGFILE_OFFSET, windowWords),
		Report:         rec,
		MicrocodeWords: 0x400,
		RegFileWords:   0x1000,
	}
	return
}

func TestProber_Engine(t *testing.T) {
	assert := assert.New(t)

	eng, err := sim.NewEngine(sim.DefaultSpec(), sim.Double)
	require.NoError(t, err)
	pr, rec := newProber(t, eng.Memory())

	ok, err := pr.MicrocodeSpace()
	assert.NoError(err)
	assert.True(ok)

	ok, err = pr.RegFileSpace()
	assert.NoError(err)
	assert.True(ok)

	ok, err = pr.Escape()
	assert.NoError(err)
	assert.True(ok)

	assert.Empty(rec.codes)
	assert.Equal(uint32(0x3ff), eng.Microcode[0x3ff])
	assert.Equal(probe.REGFILE_BIAS+0xfff, eng.RegFile[0xfff])
}

// aliased decodes only the low address bits, so writes past the
// implemented words wrap onto real storage.
type aliased struct {
	ram *mmio.Ram
}

func (al *aliased) ReadWord(addr uint32) uint32 {
	return al.ram.ReadWord(addr & 0xfff)
}

func (al *aliased) WriteWord(addr uint32, value uint32) {
	al.ram.WriteWord(addr&0xfff, value)
}

func TestProber_Aliased(t *testing.T) {
	assert := assert.New(t)

	pr, rec := newProber(t, &aliased{ram: mmio.NewRam(0x400)})

	// The microcode store passes on its own.
	ok, err := pr.MicrocodeSpace()
	assert.NoError(err)
	assert.True(ok)
	assert.Empty(rec.codes)

	// The register file wraps four times over the same storage, so only
	// its last quarter reads back, and each mismatch is reported.
	ok, err = pr.RegFileSpace()
	assert.NoError(err)
	assert.False(ok)
	require.Len(t, rec.codes, 0xc00)
	assert.Equal(probe.REGFILE_BIAS+0xc00, rec.codes[0])
	assert.Equal(probe.REGFILE_BIAS+0xfff, rec.codes[0xbff])

	// The microcode store was clobbered too.
	rec.codes = nil
	ok, err = pr.CheckMicrocode()
	assert.NoError(err)
	assert.False(ok)
	assert.Len(rec.codes, 0x400)

	ok, err = pr.Escape()
	assert.NoError(err)
	assert.False(ok)
}

func TestProber_Ram(t *testing.T) {
	assert := assert.New(t)

	pr, _ := newProber(t, mmio.NewRam(sim.ENGINE_BYTES/mmio.WORD_BYTES))

	ok, err := pr.MicrocodeSpace()
	assert.NoError(err)
	assert.True(ok)

	// Plain RAM has no holes, so nothing reads back as ESCAPE.
	ok, err = pr.Escape()
	assert.NoError(err)
	assert.False(ok)
}

func TestProber_Range(t *testing.T) {
	eng, err := sim.NewEngine(sim.DefaultSpec(), sim.Double)
	require.NoError(t, err)
	pr, _ := newProber(t, eng.Memory())
	pr.MicrocodeWords = windowWords + 1

	_, err = pr.MicrocodeSpace()
	var rerr *mmio.ErrRange
	assert.ErrorAs(t, err, &rerr)
}

func TestDefines(t *testing.T) {
	defines := map[string]string{}
	for k, v := range probe.Defines() {
		defines[k] = v
	}
	assert.Equal(t, "0xc0debadd", defines["ESCAPE"])
	assert.Equal(t, "0xa0000000", defines["REGFILE_BIAS"])
}
