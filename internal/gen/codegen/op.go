// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/internal/gen"
	"gate.computer/abcjit/internal/gen/debug"
	"gate.computer/abcjit/internal/gen/entry"
	"gate.computer/abcjit/internal/registry"
)

var shiftHelpers = map[opcode.Opcode]string{
	opcode.LShift:  registry.LShiftIO,
	opcode.RShift:  registry.RShiftIO,
	opcode.URShift: registry.URShiftIO,
}

func genUnary(f *gen.Func, op opcode.Opcode, e registry.Entry) {
	x := f.Pop()

	if x.Kind == entry.Int {
		switch op {
		case opcode.ConvertI, opcode.CoerceI:
			f.Push(x)
			return

		case opcode.IncrementI:
			f.Push(entry.Unboxed(f.AddInt(x.Value, f.Const(1))))
			return

		case opcode.DecrementI:
			f.Push(entry.Unboxed(f.AddInt(x.Value, f.Const(-1))))
			return
		}
	}

	x = f.Box(x)
	f.Push(entry.Obj(f.CallHelper(e.Name, x.Value)))
}

func genBinary(f *gen.Func, op opcode.Opcode, e registry.Entry) {
	b := f.Pop()
	a := f.Pop()

	switch op {
	case opcode.BitAnd:
		genBitAnd(f, a, b, e)
		return

	case opcode.LShift, opcode.RShift, opcode.URShift:
		if a.Kind == entry.Int {
			b = f.Box(b)
			f.Push(entry.Obj(f.CallHelper(shiftHelpers[op], a.Value, b.Value)))
			return
		}

	case opcode.AddI:
		if a.Kind == entry.Int && b.Kind == entry.Int {
			f.Push(entry.Unboxed(f.AddInt(a.Value, b.Value)))
			return
		}
	}

	a = f.Box(a)
	b = f.Box(b)
	f.Push(entry.Obj(f.CallHelper(e.Name, a.Value, b.Value)))
}

// genBitAnd keeps int operands unboxed.  With one int operand the object
// operand is passed first.
func genBitAnd(f *gen.Func, a, b entry.E, e registry.Entry) {
	switch {
	case a.Kind == entry.Int && b.Kind == entry.Int:
		f.Push(entry.Unboxed(f.CallHelper(registry.BitAndII, a.Value, b.Value)))

	case a.Kind == entry.Int:
		if debug.Enabled {
			debug.Printf("transpose bitand operands")
		}
		f.Push(entry.Unboxed(f.CallHelper(registry.BitAndOI, b.Value, a.Value)))

	case b.Kind == entry.Int:
		f.Push(entry.Unboxed(f.CallHelper(registry.BitAndOI, a.Value, b.Value)))

	default:
		f.Push(entry.Obj(f.CallHelper(e.Name, a.Value, b.Value)))
	}
}
