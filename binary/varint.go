// Copyright (c) 2021 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binary implements AVM2 bytecode immediate decoding.
//
// Variable-length integers are little-endian base-128 groups of up to 5
// bytes.  Branch offsets are fixed 24-bit signed values.
package binary

import "io"

// Reader is appropriate for decoding method bodies.
type Reader interface {
	io.Reader
	io.ByteScanner
}

// U8 reads one byte.  The number of bytes read is also returned (0 or 1).
func U8(r Reader) (byte, int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	return b, 1, nil
}

// S24 reads a little-endian 24-bit signed value.  The number of bytes read is
// also returned (3 if successful).
func S24(r Reader) (int32, int, error) {
	var b [3]byte

	n, err := io.ReadFull(r, b[:])
	if err != nil {
		return 0, n, err
	}

	x := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	x = x << 8 >> 8 // Sign-extend.
	return x, n, nil
}

// U32 reads variably encoded value.  The number of bytes read is also
// returned (up to 5).
func U32(r Reader) (uint32, int, error) {
	var x uint32
	var n int
	var shift uint

	for n < 5 {
		b, err := r.ReadByte()
		if err != nil {
			return x, n, err
		}
		n++

		x |= (uint32(b) & 0x7f) << shift
		if b < 0x80 {
			return x, n, nil
		}
		shift += 7
	}

	return 0, n, methodError("u32 encoding is too long")
}

// U30 reads variably encoded value which must fit in 30 bits.  The number of
// bytes read is also returned (up to 5).
func U30(r Reader) (uint32, int, error) {
	x, n, err := U32(r)
	if err != nil {
		return 0, n, err
	}
	if x >= 1<<30 {
		return 0, n, methodError("u30 value is too large")
	}
	return x, n, nil
}

// AppendU32 encodes x in the variable-length format.
func AppendU32(b []byte, x uint32) []byte {
	for x >= 0x80 {
		b = append(b, byte(x)|0x80)
		x >>= 7
	}
	return append(b, byte(x))
}

// AppendS24 encodes x as a 24-bit branch offset.  Higher bits are discarded.
func AppendS24(b []byte, x int32) []byte {
	return append(b, byte(x), byte(x>>8), byte(x>>16))
}

type methodError string

func (e methodError) Error() string       { return string(e) }
func (e methodError) MethodError() string { return string(e) }
