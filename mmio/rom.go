package mmio

// Rom is a read-only word store. Writes are dropped, reads past the end of
// the data return zero.
type Rom struct {
	Data []uint32
}

var _ Device = (*Rom)(nil)

// Size of the ROM contents in bytes.
func (rom *Rom) Size() uint32 {
	return uint32(len(rom.Data)) * WORD_BYTES
}

func (rom *Rom) ReadWord(addr uint32) (value uint32) {
	index := addr / WORD_BYTES
	if index < uint32(len(rom.Data)) {
		value = rom.Data[index]
	}
	return
}

func (rom *Rom) WriteWord(addr uint32, value uint32) {
}

// Ram is a read/write word store of fixed size.
type Ram struct {
	Data []uint32
}

var _ Device = (*Ram)(nil)

// NewRam creates a zeroed RAM of `words` words.
func NewRam(words uint32) (ram *Ram) {
	ram = &Ram{Data: make([]uint32, words)}
	return
}

// Size of the RAM in bytes.
func (ram *Ram) Size() uint32 {
	return uint32(len(ram.Data)) * WORD_BYTES
}

func (ram *Ram) ReadWord(addr uint32) (value uint32) {
	index := addr / WORD_BYTES
	if index < uint32(len(ram.Data)) {
		value = ram.Data[index]
	}
	return
}

func (ram *Ram) WriteWord(addr uint32, value uint32) {
	index := addr / WORD_BYTES
	if index < uint32(len(ram.Data)) {
		ram.Data[index] = value
	}
}
