// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bytes"
	"io"

	"gate.computer/abcjit/binary"
	"gate.computer/abcjit/internal/module"
)

// L provides panicking reading and integer decoding methods over a method
// body.  Offsets are relative to the start of the code.
type L struct {
	r *bytes.Reader
}

func New(code []byte) *L {
	return &L{bytes.NewReader(code)}
}

// Tell returns the offset of the next byte.
func (load *L) Tell() int {
	return int(load.r.Size()) - load.r.Len()
}

// Size of the code.
func (load *L) Size() int {
	return int(load.r.Size())
}

// EOF reports whether the whole code has been consumed.
func (load *L) EOF() bool {
	return load.r.Len() == 0
}

func (load *L) Byte() byte {
	x, _, err := binary.U8(load.r)
	if err != nil {
		panic(err)
	}
	return x
}

func (load *L) S24() int32 {
	x, _, err := binary.S24(load.r)
	if err != nil {
		panic(err)
	}
	return x
}

func (load *L) U30() uint32 {
	x, _, err := binary.U30(load.r)
	if err != nil {
		panic(err)
	}
	return x
}

// Index reads a u30 constant pool index and checks it against the pool size.
func (load *L) Index(size int, name string) uint32 {
	x := load.U30()
	if int64(x) >= int64(size) {
		panic(module.Errorf("%s index %d out of range (pool size %d)", name, x, size))
	}
	return x
}

// Count reads a u30 for iteration.
func (load *L) Count(maxCount uint32, name string) uint32 {
	count := load.U30()
	if count > maxCount {
		panic(module.Errorf("%s count is too large: %d", name, count))
	}
	return count
}

// Seek to an absolute offset within the code.
func (load *L) Seek(offset int) {
	if offset < 0 || offset > load.Size() {
		panic(module.Errorf("branch target %d out of range", offset))
	}
	load.r.Seek(int64(offset), io.SeekStart)
}
