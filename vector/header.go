package vector

import (
	"iter"

	"github.com/ezrec/enginetb/internal"
)

// Stream framing.
const (
	MAGIC       = uint32(0x5645_4354) // "VECT", big-endian
	BLOCK_ALIGN = 8                   // Post-microcode alignment, in words.
)

// Header word 1 fields.
const (
	CODE_LEN_SHIFT  = 0
	CODE_LEN_MASK   = 0xFFFF
	LOAD_ADDR_SHIFT = 16
	LOAD_ADDR_MASK  = 0xFFFF
)

// Header word 2 fields.
const (
	NUM_ARGS_SHIFT    = 27
	NUM_ARGS_MASK     = 0x1F
	WINDOW_SHIFT      = 23
	WINDOW_MASK       = 0xF
	NUM_VECTORS_SHIFT = 0
	NUM_VECTORS_MASK  = 0x3F_FFFF
)

// Register file geometry.
const (
	REG_WORDS     = 8                            // Words per register.
	WINDOW_REGS   = 32                           // Registers per window.
	WINDOW_STRIDE = WINDOW_REGS * REG_WORDS      // Words per window.
	RESULT_SLOT   = 31                           // Register holding the result.
	RESULT_WORDS  = REG_WORDS                    // Words compared per vector.
	MAX_ARGS      = NUM_ARGS_MASK                // Largest num_args.
	WINDOW_COUNT  = WINDOW_MASK + 1              // Number of windows.
	REGFILE_WORDS = WINDOW_COUNT * WINDOW_STRIDE // Words in the register file.
)

var _vector_defines = map[string]uint32{
	"MAGIC":         MAGIC,
	"BLOCK_ALIGN":   BLOCK_ALIGN,
	"REG_WORDS":     REG_WORDS,
	"WINDOW_REGS":   WINDOW_REGS,
	"WINDOW_STRIDE": WINDOW_STRIDE,
	"RESULT_SLOT":   RESULT_SLOT,
	"MAX_ARGS":      MAX_ARGS,
	"WINDOW_COUNT":  WINDOW_COUNT,
	"REGFILE_WORDS": REGFILE_WORDS,
}

// Defines returns the stream and register file constants.
func Defines() iter.Seq2[string, string] {
	return internal.HexDefines(_vector_defines)
}

// Header is the decoded form of a test block's two header words.
type Header struct {
	LoadAddr   uint32 // Microcode start offset passed to the engine.
	CodeLen    uint32 // Number of microcode words.
	NumArgs    uint32 // Argument registers per vector.
	Window     uint32 // Register file window.
	NumVectors uint32 // Number of vectors in the block.
}

// DecodeHeader unpacks the two header words that follow MAGIC.
func DecodeHeader(h1, h2 uint32) (hdr Header) {
	hdr = Header{
		CodeLen:    (h1 >> CODE_LEN_SHIFT) & CODE_LEN_MASK,
		LoadAddr:   (h1 >> LOAD_ADDR_SHIFT) & LOAD_ADDR_MASK,
		NumArgs:    (h2 >> NUM_ARGS_SHIFT) & NUM_ARGS_MASK,
		Window:     (h2 >> WINDOW_SHIFT) & WINDOW_MASK,
		NumVectors: (h2 >> NUM_VECTORS_SHIFT) & NUM_VECTORS_MASK,
	}
	return
}

// Encode packs the header. Fields wider than their hardware field are
// rejected rather than truncated.
func (hdr Header) Encode() (h1, h2 uint32, err error) {
	check := []struct {
		name  string
		value uint32
		mask  uint32
	}{
		{"code_len", hdr.CodeLen, CODE_LEN_MASK},
		{"load_addr", hdr.LoadAddr, LOAD_ADDR_MASK},
		{"num_args", hdr.NumArgs, NUM_ARGS_MASK},
		{"window", hdr.Window, WINDOW_MASK},
		{"num_vectors", hdr.NumVectors, NUM_VECTORS_MASK},
	}
	for _, field := range check {
		if field.value&^field.mask != 0 {
			err = &ErrField{Name: field.name, Value: field.value, Max: field.mask}
			return
		}
	}

	h1 = (hdr.LoadAddr << LOAD_ADDR_SHIFT) | (hdr.CodeLen << CODE_LEN_SHIFT)
	h2 = (hdr.NumArgs << NUM_ARGS_SHIFT) | (hdr.Window << WINDOW_SHIFT) | (hdr.NumVectors << NUM_VECTORS_SHIFT)
	return
}

// RegOffset is the register file word offset of a register word in a window.
func RegOffset(window uint32, slot uint32, word uint32) uint32 {
	return window*WINDOW_STRIDE + slot*REG_WORDS + word
}

// ResultOffset is the register file word offset of a result word.
func ResultOffset(window uint32, word uint32) uint32 {
	return RegOffset(window, RESULT_SLOT, word)
}

// PadWords is the number of pad words skipped after microcode ending at
// `cursor`. Always in [1, BLOCK_ALIGN].
func PadWords(cursor uint32) uint32 {
	return BLOCK_ALIGN - (cursor % BLOCK_ALIGN)
}
