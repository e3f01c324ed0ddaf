package mmio

// Window is a bounds-checked word view of the bus at a fixed base address.
// Offsets inside the window are forwarded to the bus verbatim, so a device
// sees exactly the address a raw pointer access would have produced.
type Window struct {
	Name  string
	Bus   *Bus
	Base  uint32 // Base byte address.
	Words uint32 // Number of words in the window.
}

var _ Region = (*Window)(nil)

func (win *Window) addr(offset uint32) (addr uint32, err error) {
	if offset >= win.Words {
		err = &ErrRange{Name: win.Name, Offset: offset, Words: win.Words}
		return
	}

	addr = win.Base + offset*WORD_BYTES
	return
}

// Len returns the number of words in the window.
func (win *Window) Len() uint32 {
	return win.Words
}

// Read the word at offset.
func (win *Window) Read(offset uint32) (value uint32, err error) {
	addr, err := win.addr(offset)
	if err != nil {
		return
	}

	return win.Bus.Read(addr)
}

// Write the word at offset.
func (win *Window) Write(offset uint32, value uint32) (err error) {
	addr, err := win.addr(offset)
	if err != nil {
		return
	}

	return win.Bus.Write(addr, value)
}
