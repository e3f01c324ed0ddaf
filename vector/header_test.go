package vector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeHeader(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		H1, H2 uint32
		Header Header
	}){
		{H1: 0x0000_0004, H2: (1 << 27) | 1, Header: Header{CodeLen: 4, NumArgs: 1, NumVectors: 1}},
		{H1: 0x0123_0456, H2: 0, Header: Header{LoadAddr: 0x123, CodeLen: 0x456}},
		{H1: 0xffff_ffff, H2: 0xffff_ffff, Header: Header{LoadAddr: 0xffff, CodeLen: 0xffff, NumArgs: 0x1f, Window: 0xf, NumVectors: 0x3f_ffff}},
		{H1: 0, H2: 0x0040_0000, Header: Header{}}, // bit 22 is unused
		{H1: 0, H2: (3 << 23) | (2 << 27) | 17, Header: Header{Window: 3, NumArgs: 2, NumVectors: 17}},
	}

	for _, testcase := range table {
		assert.Equal(testcase.Header, DecodeHeader(testcase.H1, testcase.H2), "%+v", testcase)
	}
}

func TestHeader_Encode(t *testing.T) {
	assert := assert.New(t)

	hdr := Header{LoadAddr: 0x20, CodeLen: 12, NumArgs: 3, Window: 9, NumVectors: 1000}
	h1, h2, err := hdr.Encode()
	assert.NoError(err)
	assert.Equal(uint32(0x0020_000c), h1)
	assert.Equal(hdr, DecodeHeader(h1, h2))

	_, _, err = Header{Window: 16}.Encode()
	var ferr *ErrField
	assert.True(errors.As(err, &ferr))
	assert.Equal("window", ferr.Name)

	_, _, err = Header{NumArgs: 32}.Encode()
	assert.Error(err)
	_, _, err = Header{NumVectors: 0x40_0000}.Encode()
	assert.Error(err)
	_, _, err = Header{CodeLen: 0x1_0000}.Encode()
	assert.Error(err)
}

func TestOffsets(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0), RegOffset(0, 0, 0))
	assert.Equal(uint32(2*256+3*8+5), RegOffset(2, 3, 5))
	assert.Equal(uint32(31*8), ResultOffset(0, 0))
	assert.Equal(uint32(15*256+31*8+7), ResultOffset(15, 7))
	assert.Equal(uint32(REGFILE_WORDS-1), ResultOffset(15, 7))
}

func TestPadWords(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(8), PadWords(0))
	assert.Equal(uint32(1), PadWords(7))
	assert.Equal(uint32(1), PadWords(15))
	assert.Equal(uint32(8), PadWords(16))
	assert.Equal(uint32(5), PadWords(11))
}
