// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package vector

import (
	"iter"
	"log"
)

// WordSource is a word-addressed, read-only stream origin, such as the
// vector ROM window.
type WordSource interface {
	Read(offset uint32) (value uint32, err error)
}

// Vector is one argument set and its expected result.
type Vector struct {
	Index  uint32               // Index within the block.
	Args   [][REG_WORDS]uint32  // NumArgs argument groups.
	Expect [RESULT_WORDS]uint32 // Expected result register.
}

// Block is one decoded test block. Its vectors are decoded lazily from the
// stream, in order, and only while the block is the parser's current block.
type Block struct {
	Header
	Index     int      // Index of the block in the stream.
	Microcode []uint32 // CodeLen microcode words, verbatim.

	parser    *Parser
	remaining uint32
}

// Parser decodes a vector stream. The cursor only advances; a parser is
// not restartable.
type Parser struct {
	Verbose bool // If set, logs each decoded block.

	Source WordSource
	Cursor uint32 // Next stream word to read.
	Magic  uint32 // Last word read in block position.

	blocks  int
	current *Block
	done    bool
}

// NewParser creates a parser reading `src` from offset 0.
func NewParser(src WordSource) (p *Parser) {
	p = &Parser{Source: src}
	return
}

// next reads the word under the cursor and advances.
func (p *Parser) next() (value uint32, err error) {
	value, err = p.Source.Read(p.Cursor)
	if err != nil {
		err = &ErrStream{Cursor: p.Cursor, Err: err}
		return
	}
	p.Cursor++
	return
}

// Done reports whether the end-of-stream word has been seen.
func (p *Parser) Done() bool {
	return p.done
}

// Next decodes the next block header and microcode. Any vectors of the
// previous block that were not consumed are skipped first. At the end of
// the stream Next returns a nil block and nil error.
func (p *Parser) Next() (blk *Block, err error) {
	if p.done {
		return
	}

	if p.current != nil {
		p.current.drain()
		p.current = nil
	}

	p.Magic, err = p.next()
	if err != nil {
		return
	}
	if p.Magic != MAGIC {
		p.done = true
		if p.Verbose {
			log.Printf("vector: end of stream 0x%08x at 0x%x", p.Magic, p.Cursor-1)
		}
		return
	}

	h1, err := p.next()
	if err != nil {
		return
	}
	h2, err := p.next()
	if err != nil {
		return
	}

	hdr := DecodeHeader(h1, h2)
	code := make([]uint32, hdr.CodeLen)
	for n := range code {
		code[n], err = p.next()
		if err != nil {
			return
		}
	}

	p.Cursor += PadWords(p.Cursor)

	blk = &Block{
		Header:    hdr,
		Index:     p.blocks,
		Microcode: code,
		parser:    p,
		remaining: hdr.NumVectors,
	}
	p.blocks++
	p.current = blk

	if p.Verbose {
		log.Printf("vector: block %d load_addr=0x%x code_len=%d num_args=%d window=%d num_vectors=%d",
			blk.Index, hdr.LoadAddr, hdr.CodeLen, hdr.NumArgs, hdr.Window, hdr.NumVectors)
	}

	return
}

// Blocks returns an iterator over the remaining blocks of the stream. A
// source error is yielded once, and ends the iteration.
func (p *Parser) Blocks() iter.Seq2[*Block, error] {
	return func(yield func(*Block, error) bool) {
		for {
			blk, err := p.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if blk == nil {
				return
			}
			if !yield(blk, nil) {
				return
			}
		}
	}
}

// Remaining is the number of vectors not yet decoded.
func (blk *Block) Remaining() uint32 {
	return blk.remaining
}

// Next decodes the block's next vector. After the last vector, Next returns
// a nil vector and nil error.
func (blk *Block) Next() (vec *Vector, err error) {
	if blk.parser.current != blk {
		err = ErrBlockClosed
		return
	}
	if blk.remaining == 0 {
		return
	}

	p := blk.parser
	vec = &Vector{
		Index: blk.NumVectors - blk.remaining,
		Args:  make([][REG_WORDS]uint32, blk.NumArgs),
	}
	for arg := range vec.Args {
		for word := range REG_WORDS {
			vec.Args[arg][word], err = p.next()
			if err != nil {
				vec = nil
				return
			}
		}
	}
	for word := range RESULT_WORDS {
		vec.Expect[word], err = p.next()
		if err != nil {
			vec = nil
			return
		}
	}

	blk.remaining--
	return
}

// Vectors returns an iterator over the block's remaining vectors.
func (blk *Block) Vectors() iter.Seq2[*Vector, error] {
	return func(yield func(*Vector, error) bool) {
		for {
			vec, err := blk.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if vec == nil {
				return
			}
			if !yield(vec, nil) {
				return
			}
		}
	}
}

// drain advances the cursor past any undecoded vectors.
func (blk *Block) drain() {
	per := blk.NumArgs*REG_WORDS + RESULT_WORDS
	blk.parser.Cursor += blk.remaining * per
	blk.remaining = 0
}
