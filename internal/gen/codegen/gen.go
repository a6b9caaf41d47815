// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/backend"
	"gate.computer/abcjit/internal/gen"
	"gate.computer/abcjit/internal/gen/debug"
	"gate.computer/abcjit/internal/gen/entry"
	"gate.computer/abcjit/internal/loader"
	"gate.computer/abcjit/internal/module"
	"gate.computer/abcjit/internal/registry"
	"gate.computer/abcjit/trap"
)

func genOp(f *gen.Func, load *loader.L, op opcode.Opcode) {
	if debug.Enabled {
		debug.Printf("%s at %d", op, f.Offset)
		debug.Depth++
	}

	e := registry.Lookup(op)

	switch e.Conv {
	case registry.Unsupported:
		genUnsupported(f, op)

	case registry.Custom:
		genCustom(f, load, op)

	case registry.Ctx:
		f.SyncAll()
		f.CallHelper(e.Name, backend.ParamContext)

	case registry.CtxImm:
		imm := readImm(f, load, e.Imms[0])
		f.SyncAll()
		f.CallHelper(e.Name, backend.ParamContext, f.Const(imm))

	case registry.CtxImm2:
		imm1 := readImm(f, load, e.Imms[0])
		imm2 := readImm(f, load, e.Imms[1])
		f.SyncAll()
		f.CallHelper(e.Name, backend.ParamContext, f.Const(imm1), f.Const(imm2))

		if op == opcode.HasNext2 {
			f.InvalidateLocal(int(imm1))
			f.InvalidateLocal(int(imm2))
		}

	case registry.LazyCtx:
		f.Push(entry.Obj(f.CallHelper(e.Name, backend.ParamContext)))

	case registry.LazyCtxImm:
		imm := readImm(f, load, e.Imms[0])
		f.Push(entry.Obj(f.CallHelper(e.Name, backend.ParamContext, f.Const(imm))))

	case registry.Ptr1:
		if e.Throws {
			f.SyncAll()
		}
		genUnary(f, op, e)

	case registry.Ptr2:
		if e.Throws {
			f.SyncAll()
		}
		genBinary(f, op, e)

	case registry.Branch1, registry.Branch2:
		genConditional(f, load, e)

	case registry.Jump:
		genJump(f, load, e)

	default:
		f.Internalf("%s has unknown calling convention %s", op, e.Conv)
	}

	if debug.Enabled {
		debug.Depth--
	}
}

func genUnsupported(f *gen.Func, op opcode.Opcode) {
	f.Log.Error().Str("method", f.Method.Name).Str("opcode", op.String()).Int("offset", f.Offset).Msg("unsupported opcode")

	f.Trap(trap.Unsupported, byte(op), f.Offset)
	panic(&module.Unsupported{Opcode: byte(op), Offset: f.Offset})
}

// readImm decodes an immediate operand and checks pool indexes.
func readImm(f *gen.Func, load *loader.L, imm registry.Imm) int32 {
	pool := f.Method.Constants()

	switch imm {
	case registry.ImmMultiname:
		return int32(load.Index(len(pool.Multinames), "multiname"))
	case registry.ImmInt:
		return int32(load.Index(len(pool.Ints), "int"))
	case registry.ImmUInt:
		return int32(load.Index(len(pool.UInts), "uint"))
	case registry.ImmDouble:
		return int32(load.Index(len(pool.Doubles), "double"))
	case registry.ImmString:
		return int32(load.Index(len(pool.Strings), "string"))
	case registry.ImmCount:
		return int32(load.U30())
	case registry.ImmLocal:
		return int32(load.Index(f.Method.LocalCount, "local"))
	case registry.ImmByte:
		return int32(load.Byte())
	default:
		f.Internalf("immediate kind %d", imm)
		return 0
	}
}

func genCustom(f *gen.Func, load *loader.L, op opcode.Opcode) {
	switch op {
	case opcode.Nop, opcode.Label:

	case opcode.Debug:
		load.Byte()
		load.U30()
		load.Byte()
		load.U30()

	case opcode.DebugLine, opcode.DebugFile:
		load.U30()

	case opcode.PushByte:
		f.Push(entry.Unboxed(f.Const(int32(int8(load.Byte())))))

	case opcode.PushShort:
		f.Push(entry.Unboxed(f.Const(int32(int16(load.U30())))))

	case opcode.Pop:
		f.DecRef(f.Pop())

	case opcode.Dup:
		x := f.Peek()
		f.IncRef(x)
		f.Push(x)

	case opcode.Swap:
		b := f.Pop()
		a := f.Pop()
		f.Push(b)
		f.Push(a)

	case opcode.GetLocal:
		f.Push(f.GetLocal(localIndex(f, load)))

	case opcode.GetLocal0, opcode.GetLocal1, opcode.GetLocal2, opcode.GetLocal3:
		f.Push(f.GetLocal(fixedLocal(f, int(op-opcode.GetLocal0))))

	case opcode.SetLocal:
		f.SetLocal(localIndex(f, load), f.Box(f.Pop()))

	case opcode.SetLocal0, opcode.SetLocal1, opcode.SetLocal2, opcode.SetLocal3:
		f.SetLocal(fixedLocal(f, int(op-opcode.SetLocal0)), f.Box(f.Pop()))

	case opcode.Kill:
		genKill(f, localIndex(f, load))

	case opcode.IncLocal:
		genStepLocal(f, localIndex(f, load), opcode.Increment)
	case opcode.DecLocal:
		genStepLocal(f, localIndex(f, load), opcode.Decrement)
	case opcode.IncLocalI:
		genStepLocal(f, localIndex(f, load), opcode.IncrementI)
	case opcode.DecLocalI:
		genStepLocal(f, localIndex(f, load), opcode.DecrementI)

	case opcode.ReturnVoid:
		f.SyncAll()
		f.ResetLocals()
		f.RetVoid()

	case opcode.ReturnValue:
		x := f.Box(f.Pop())
		f.SyncAll()
		f.ResetLocals()
		f.Ret(x.Value)

	case opcode.Throw:
		x := f.Box(f.Pop())
		f.SyncAll()
		f.ResetLocals()
		f.CallHelper(registry.ThrowValue, x.Value)
		f.Unreachable()

	default:
		f.Internalf("%s is not a custom opcode", op)
	}
}
