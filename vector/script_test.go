package vector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	assert := assert.New(t)

	src := `
one = [1, 0, 0, 0, 0, 0, 0, 0]
two = [2, 0, 0, 0, 0, 0, 0, 0]
block(code = [0x10, 0x11, 0x12, 0x13], vectors = [([one], two)])
block(code = [-1], load_addr = 0x20, window = WINDOW_COUNT - 1, num_args = 0)
end(0xdeadbeef)
`
	sc := &Script{}
	require.NoError(t, sc.Exec("test.star", src))

	p := NewParser(words(sc.Words()))

	blk, err := p.Next()
	require.NoError(t, err)
	assert.Equal(Header{CodeLen: 4, NumArgs: 1, NumVectors: 1}, blk.Header)
	v, err := blk.Next()
	require.NoError(t, err)
	assert.Equal([][8]uint32{{1}}, v.Args)
	assert.Equal([8]uint32{2}, v.Expect)

	blk, err = p.Next()
	require.NoError(t, err)
	assert.Equal(Header{LoadAddr: 0x20, CodeLen: 1, Window: 15}, blk.Header)
	assert.Equal([]uint32{0xffff_ffff}, blk.Microcode)

	blk, err = p.Next()
	assert.NoError(err)
	assert.Nil(blk)
	assert.Equal(uint32(0xdeadbeef), p.Magic)
}

func TestScript_Errors(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		`block(code = [0x1_0000_0000])`,
		`block(code = "nope")`,
		`block(code = [], vectors = [([[1, 2]], [0] * 8)])`,
		`block(code = [], vectors = [([[0] * 8], [0] * 8)], num_args = 2)`,
		`block(code = [], window = 16)`,
		`undefined()`,
	}

	for _, src := range table {
		sc := &Script{}
		err := sc.Exec("bad.star", src)
		var serr *ErrScript
		assert.True(errors.As(err, &serr), src)
	}
}
