package sim

import (
	"math/bits"

	"github.com/ezrec/enginetb/vector"
)

// Register is one 256-bit register, least significant word first.
type Register = [vector.REG_WORDS]uint32

// RegisterWindow is the view of the register file a run operates on.
type RegisterWindow struct {
	words []uint32
}

// Get a register of the window.
func (rw RegisterWindow) Get(slot int) (reg Register) {
	copy(reg[:], rw.words[slot*vector.REG_WORDS:])
	return
}

// Set a register of the window.
func (rw RegisterWindow) Set(slot int, reg Register) {
	copy(rw.words[slot*vector.REG_WORDS:], reg[:])
}

// Kernel computes a program's effect on its register window. `code` is
// the microcode in [mpstart, mpstart+mplen).
type Kernel func(code []uint32, rw RegisterWindow)

func add256(a, b Register) (sum Register) {
	var carry uint32
	for n := range sum {
		sum[n], carry = bits.Add32(a[n], b[n], carry)
	}
	return
}

// Double sets the result register to twice register 0, modulo 2^256.
func Double(code []uint32, rw RegisterWindow) {
	r0 := rw.Get(0)
	rw.Set(vector.RESULT_SLOT, add256(r0, r0))
}

// Add sets the result register to the sum of registers 0 and 1, modulo 2^256.
func Add(code []uint32, rw RegisterWindow) {
	rw.Set(vector.RESULT_SLOT, add256(rw.Get(0), rw.Get(1)))
}

// Kernels by name, for command line selection.
var Kernels = map[string]Kernel{
	"double": Double,
	"add":    Add,
}
