// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package mmio provides typed, bounds-checked access to memory-mapped
// devices: a Bus that decodes physical addresses to Devices, and Windows
// that expose a word-offset view of a fixed base address.
package mmio

import (
	"cmp"
	"log"
	"slices"
)

// WORD_BYTES is the size of a bus word.
const WORD_BYTES = 4

// Device is a memory-mapped peripheral. Addresses passed to the device are
// byte offsets from the base the device is mapped at, always word aligned.
type Device interface {
	ReadWord(addr uint32) (value uint32)
	WriteWord(addr uint32, value uint32)
}

// Region is a word-addressed view of part of the bus.
type Region interface {
	// Read the word at a word offset.
	Read(offset uint32) (value uint32, err error)
	// Write the word at a word offset.
	Write(offset uint32, value uint32) (err error)
	// Len is the number of addressable words.
	Len() uint32
}

// Mapping of a device into the bus address space.
type Mapping struct {
	Name   string
	Base   uint32 // Base byte address.
	Size   uint32 // Size in bytes.
	Device Device
}

func (mp *Mapping) contains(addr uint32) bool {
	return addr >= mp.Base && uint64(addr) < uint64(mp.Base)+uint64(mp.Size)
}

// Bus decodes physical addresses to devices.
type Bus struct {
	Verbose bool // If set, logs every bus access.

	mappings []Mapping
}

// NewBus creates an empty bus.
func NewBus() (bus *Bus) {
	bus = &Bus{}
	return
}

// Map attaches a device at [base, base+size).
func (bus *Bus) Map(name string, base uint32, size uint32, dev Device) (err error) {
	if size == 0 {
		err = ErrEmpty
		return
	}
	if base%WORD_BYTES != 0 {
		err = ErrAlign
		return
	}

	mp := Mapping{Name: name, Base: base, Size: size, Device: dev}
	last := uint64(base) + uint64(size) - 1
	for _, other := range bus.mappings {
		if other.contains(base) || other.contains(uint32(min(last, 0xffff_ffff))) || mp.contains(other.Base) {
			err = ErrOverlap
			return
		}
	}

	bus.mappings = append(bus.mappings, mp)
	slices.SortFunc(bus.mappings, func(a, b Mapping) int {
		return cmp.Compare(a.Base, b.Base)
	})

	return
}

// Mappings returns the current address map, ordered by base.
func (bus *Bus) Mappings() []Mapping {
	return slices.Clone(bus.mappings)
}

func (bus *Bus) decode(addr uint32) (mp *Mapping, err error) {
	if addr%WORD_BYTES != 0 {
		err = ErrAlign
		return
	}

	for n := range bus.mappings {
		if bus.mappings[n].contains(addr) {
			mp = &bus.mappings[n]
			return
		}
	}

	err = ErrBusFault(addr)
	return
}

// Read a word from a physical address.
func (bus *Bus) Read(addr uint32) (value uint32, err error) {
	mp, err := bus.decode(addr)
	if err != nil {
		return
	}

	value = mp.Device.ReadWord(addr - mp.Base)
	if bus.Verbose {
		log.Printf("mmio: %v[0x%x] -> 0x%08x", mp.Name, addr-mp.Base, value)
	}

	return
}

// Write a word to a physical address.
func (bus *Bus) Write(addr uint32, value uint32) (err error) {
	mp, err := bus.decode(addr)
	if err != nil {
		return
	}

	if bus.Verbose {
		log.Printf("mmio: %v[0x%x] <- 0x%08x", mp.Name, addr-mp.Base, value)
	}
	mp.Device.WriteWord(addr-mp.Base, value)

	return
}

// Window returns a word-offset region of `words` words starting at `base`.
func (bus *Bus) Window(name string, base uint32, words uint32) (win *Window) {
	win = &Window{
		Name:  name,
		Bus:   bus,
		Base:  base,
		Words: words,
	}
	return
}
