// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package vector

import (
	"log"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Script builds a vector stream from a Starlark description:
//
//	block(code = [...], vectors = [([arg0, arg1, ...], expect), ...],
//	      load_addr = 0, window = 0, num_args = len(args))
//	end(0xffffffff)
//
// Every arg and expect is a list of REG_WORDS words. The stream constants
// (MAGIC, WINDOW_STRIDE, ...) are predeclared.
type Script struct {
	Verbose bool    // If set, logs each block as it is built.
	Builder Builder // Encoded stream.
	End     uint32  // End-of-stream word.
}

// Exec runs a script, appending its blocks to the builder. `src` is as
// for starlark.ExecFile: nil to read `filename`, or a string, []byte or
// io.Reader.
func (sc *Script) Exec(filename string, src any) (err error) {
	defer func() {
		if err != nil {
			err = &ErrScript{Name: filename, Err: err}
		}
	}()

	pred := starlark.StringDict{
		"block": starlark.NewBuiltin("block", sc.block),
		"end":   starlark.NewBuiltin("end", sc.end),
	}
	for key, str := range Defines() {
		var value uint64
		value, err = strconv.ParseUint(str, 0, 32)
		if err != nil {
			return
		}
		pred[key] = starlark.MakeUint64(value)
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("vector: %v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{}
	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, pred)
	return
}

// Words returns the built stream, terminated by the End word.
func (sc *Script) Words() []uint32 {
	return sc.Builder.Words(sc.End)
}

func (sc *Script) end(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var word starlark.Value
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &word)
	if err != nil {
		return
	}
	sc.End, err = toWord(word)
	rc = starlark.None
	return
}

func (sc *Script) block(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var code, vectors starlark.Value
	var loadAddr, window int
	numArgs := -1

	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"code", &code,
		"vectors?", &vectors,
		"load_addr?", &loadAddr,
		"window?", &window,
		"num_args?", &numArgs,
	)
	if err != nil {
		return
	}

	hdr := Header{
		LoadAddr: uint32(loadAddr),
		Window:   uint32(window),
	}

	microcode, err := toWords(code, -1)
	if err != nil {
		return
	}

	var vecs []Vector
	if vectors != nil {
		vecs, err = toVectors(vectors)
		if err != nil {
			return
		}
	}

	switch {
	case numArgs >= 0:
		hdr.NumArgs = uint32(numArgs)
	case len(vecs) > 0:
		hdr.NumArgs = uint32(len(vecs[0].Args))
	}

	err = sc.Builder.Block(hdr, microcode, vecs...)
	if err != nil {
		return
	}

	if sc.Verbose {
		log.Printf("vector: block load_addr=0x%x code_len=%d num_args=%d window=%d num_vectors=%d",
			hdr.LoadAddr, len(microcode), hdr.NumArgs, hdr.Window, len(vecs))
	}

	rc = starlark.MakeInt(sc.Builder.Len())
	return
}

// toWord converts a Starlark integer to a word. Negative values in int32
// range wrap, as in two's complement.
func toWord(v starlark.Value) (word uint32, err error) {
	i, ok := v.(starlark.Int)
	if !ok {
		err = ErrValue(v.String())
		return
	}

	if u64, ok := i.Uint64(); ok && u64 <= 0xffff_ffff {
		word = uint32(u64)
		return
	}
	if i64, ok := i.Int64(); ok && i64 < 0 && i64 >= -0x8000_0000 {
		word = uint32(int32(i64))
		return
	}

	err = ErrValue(v.String())
	return
}

// toWords converts a Starlark list or tuple to words. If `count` is not
// negative, the sequence must have exactly that many items.
func toWords(v starlark.Value, count int) (words []uint32, err error) {
	seq, ok := v.(starlark.Indexable)
	if !ok || (count >= 0 && seq.Len() != count) {
		err = ErrValue(v.String())
		return
	}

	words = make([]uint32, seq.Len())
	for n := range words {
		words[n], err = toWord(seq.Index(n))
		if err != nil {
			return
		}
	}
	return
}

// toVectors converts a sequence of (args, expect) pairs.
func toVectors(v starlark.Value) (vecs []Vector, err error) {
	seq, ok := v.(starlark.Indexable)
	if !ok {
		err = ErrValue(v.String())
		return
	}

	for n := range seq.Len() {
		pair, ok := seq.Index(n).(starlark.Indexable)
		if !ok || pair.Len() != 2 {
			err = ErrValue(seq.Index(n).String())
			return
		}

		argList, ok := pair.Index(0).(starlark.Indexable)
		if !ok {
			err = ErrValue(pair.Index(0).String())
			return
		}

		vec := Vector{
			Index: uint32(n),
			Args:  make([][REG_WORDS]uint32, argList.Len()),
		}
		for a := range vec.Args {
			var words []uint32
			words, err = toWords(argList.Index(a), REG_WORDS)
			if err != nil {
				return
			}
			copy(vec.Args[a][:], words)
		}

		var expect []uint32
		expect, err = toWords(pair.Index(1), RESULT_WORDS)
		if err != nil {
			return
		}
		copy(vec.Expect[:], expect)

		vecs = append(vecs, vec)
	}

	return
}
