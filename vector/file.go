package vector

import (
	"encoding/binary"
	"io"
)

// Load reads a little-endian vector file, as loaded into the vector ROM.
func Load(r io.Reader) (words []uint32, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}
	if len(data)%4 != 0 {
		err = ErrShortFile
		return
	}

	words = make([]uint32, len(data)/4)
	for n := range words {
		words[n] = binary.LittleEndian.Uint32(data[n*4:])
	}
	return
}

// Save writes words as a little-endian vector file.
func Save(w io.Writer, words []uint32) (err error) {
	data := make([]byte, 0, len(words)*4)
	for _, word := range words {
		data = binary.LittleEndian.AppendUint32(data, word)
	}
	_, err = w.Write(data)
	return
}
