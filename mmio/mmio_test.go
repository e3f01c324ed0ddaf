package mmio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_Map(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus()
	assert.NoError(bus.Map("ram", 0x1000, 0x100, NewRam(0x40)))
	assert.NoError(bus.Map("rom", 0x0000, 0x1000, &Rom{}))
	assert.NoError(bus.Map("hi", 0xffff_ff00, 0x100, NewRam(0x40)))

	assert.ErrorIs(bus.Map("dup", 0x1000, 4, NewRam(1)), ErrOverlap)
	assert.ErrorIs(bus.Map("tail", 0x10fc, 8, NewRam(2)), ErrOverlap)
	assert.ErrorIs(bus.Map("cover", 0x0f00, 0x400, NewRam(2)), ErrOverlap)
	assert.ErrorIs(bus.Map("empty", 0x2000, 0, NewRam(0)), ErrEmpty)
	assert.ErrorIs(bus.Map("odd", 0x2002, 4, NewRam(1)), ErrAlign)

	var names []string
	for _, mp := range bus.Mappings() {
		names = append(names, mp.Name)
	}
	assert.Equal([]string{"rom", "ram", "hi"}, names)
}

func TestBus_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	ram := NewRam(4)
	bus := NewBus()
	require.NoError(t, bus.Map("ram", 0x8000, ram.Size(), ram))

	assert.NoError(bus.Write(0x8004, 0xdeadbeef))
	assert.Equal(uint32(0xdeadbeef), ram.Data[1])

	value, err := bus.Read(0x8004)
	assert.NoError(err)
	assert.Equal(uint32(0xdeadbeef), value)

	_, err = bus.Read(0x8010)
	var fault ErrBusFault
	assert.True(errors.As(err, &fault))
	assert.Equal(ErrBusFault(0x8010), fault)

	assert.ErrorIs(bus.Write(0x8001, 1), ErrAlign)
}

func TestWindow(t *testing.T) {
	assert := assert.New(t)

	ram := NewRam(16)
	bus := NewBus()
	require.NoError(t, bus.Map("ram", 0x100, ram.Size(), ram))

	win := bus.Window("rf", 0x100, 8)
	assert.Equal(uint32(8), win.Len())

	for i := range uint32(8) {
		assert.NoError(win.Write(i, 0xa000_0000+i))
	}
	for i := range uint32(8) {
		value, err := win.Read(i)
		assert.NoError(err)
		assert.Equal(0xa000_0000+i, value)
	}

	// Past the window, even though the RAM behind it continues.
	_, err := win.Read(8)
	var rerr *ErrRange
	assert.True(errors.As(err, &rerr))
	assert.Equal(uint32(8), rerr.Offset)
	assert.Equal("rf", rerr.Name)
	assert.Error(win.Write(9, 0))
	assert.Equal(uint32(0), ram.Data[9])
}

func TestRom(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint32{0x56454354, 2, 3}}
	assert.Equal(uint32(12), rom.Size())

	rom.WriteWord(0, 0)
	assert.Equal(uint32(0x56454354), rom.ReadWord(0))
	assert.Equal(uint32(3), rom.ReadWord(8))
	assert.Equal(uint32(0), rom.ReadWord(12))
}
