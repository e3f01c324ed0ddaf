// Package vector decodes and encodes the engine test-vector stream.
//
// A stream is a flat sequence of 32-bit words. It is a series of test
// blocks, each introduced by the MAGIC word and two packed header words,
// followed by the block's microcode, an alignment pad, and the block's
// vectors. Decoding stops, without error, at the first word in block
// position that is not MAGIC.
//
// The header layout is fixed by the engine's interface control document:
//
//	header1: [31:16] load_addr   [15:0] code_len
//	header2: [31:27] num_args    [26:23] window   [21:0] num_vectors
//
// After the microcode, the stream cursor advances by 8 - (cursor % 8)
// words. The skip is taken even when the cursor is already aligned, so an
// aligned block carries a full 8 word pad. Existing vector files depend on
// this.
package vector
