// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"io"
	"testing"

	"gate.computer/abcjit/binary"
)

func TestTell(t *testing.T) {
	code := []byte{0x24, 5}
	code = binary.AppendS24(code, -4)
	code = binary.AppendU32(code, 300)

	load := New(code)

	if load.Byte() != 0x24 || load.Byte() != 5 {
		t.Fatal("bytes")
	}
	if load.Tell() != 2 {
		t.Fatal(load.Tell())
	}
	if x := load.S24(); x != -4 {
		t.Fatal(x)
	}
	if x := load.U30(); x != 300 {
		t.Fatal(x)
	}
	if !load.EOF() || load.Tell() != load.Size() {
		t.Fatal(load.Tell(), load.Size())
	}
}

func TestPanicEOF(t *testing.T) {
	defer func() {
		if x := recover(); x != io.ErrUnexpectedEOF {
			t.Fatal(x)
		}
	}()

	New([]byte{1}).S24()
}

func TestIndexRange(t *testing.T) {
	defer func() {
		if x := recover(); x == nil {
			t.Fatal("no panic")
		}
	}()

	New(binary.AppendU32(nil, 3)).Index(3, "string")
}
