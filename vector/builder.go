package vector

// Builder encodes test blocks into a vector stream, using the same
// framing and padding law the Parser decodes.
type Builder struct {
	words []uint32
}

// Len is the number of words encoded so far.
func (b *Builder) Len() int {
	return len(b.words)
}

// Reset discards all encoded blocks.
func (b *Builder) Reset() {
	b.words = b.words[:0]
}

// Block appends a test block. The header's CodeLen and NumVectors are
// taken from `code` and `vectors`; every vector must carry NumArgs
// argument groups.
func (b *Builder) Block(hdr Header, code []uint32, vectors ...Vector) (err error) {
	hdr.CodeLen = uint32(len(code))
	hdr.NumVectors = uint32(len(vectors))

	for _, vec := range vectors {
		if uint32(len(vec.Args)) != hdr.NumArgs {
			err = ErrArgCount
			return
		}
	}

	h1, h2, err := hdr.Encode()
	if err != nil {
		return
	}

	b.words = append(b.words, MAGIC, h1, h2)
	b.words = append(b.words, code...)
	pad := PadWords(uint32(len(b.words)))
	b.words = append(b.words, make([]uint32, pad)...)

	for _, vec := range vectors {
		for _, arg := range vec.Args {
			b.words = append(b.words, arg[:]...)
		}
		b.words = append(b.words, vec.Expect[:]...)
	}

	return
}

// Words returns the stream followed by the end-of-stream word `end`,
// which must not be MAGIC.
func (b *Builder) Words(end uint32) (words []uint32) {
	if end == MAGIC {
		end = 0
	}
	words = make([]uint32, 0, len(b.words)+1)
	words = append(words, b.words...)
	words = append(words, end)
	return
}
