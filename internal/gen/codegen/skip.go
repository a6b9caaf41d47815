// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/internal/gen"
	"gate.computer/abcjit/internal/gen/debug"
	"gate.computer/abcjit/internal/loader"
	"gate.computer/abcjit/internal/module"
)

const maxLookupSwitchCases = 1 << 20

// skipUnreachable consumes instructions until a block boundary or a label.
func skipUnreachable(f *gen.Func, load *loader.L) {
	from := load.Tell()

	for !load.EOF() {
		pos := load.Tell()
		if _, found := f.Blocks.Get(pos); found {
			break
		}
		if opcode.Opcode(f.Method.Code[pos]) == opcode.Label {
			break
		}

		f.Offset = pos
		skipOp(load, opcode.Opcode(load.Byte()))
		checkInterior(f, pos, load.Tell())
	}

	f.Log.Debug().Str("method", f.Method.Name).Int("from", from).Int("to", load.Tell()).Msg("skipped unreachable code")
}

func skipOp(load *loader.L, op opcode.Opcode) {
	if debug.Enabled {
		debug.Printf("skip %s", op)
	}

	switch op {
	case opcode.PushByte, opcode.GetScopeObject:
		load.Byte()

	case opcode.GetSuper, opcode.SetSuper, opcode.DXNS, opcode.Kill,
		opcode.PushShort, opcode.PushString, opcode.PushInt, opcode.PushUInt, opcode.PushDouble, opcode.PushNamespace,
		opcode.NewFunction, opcode.Call, opcode.Construct, opcode.ConstructSuper,
		opcode.NewObject, opcode.NewArray, opcode.NewClass, opcode.GetDescendants, opcode.NewCatch,
		opcode.FindPropStrict, opcode.FindProperty, opcode.GetLex,
		opcode.SetProperty, opcode.GetProperty, opcode.InitProperty, opcode.DeleteProperty,
		opcode.GetLocal, opcode.SetLocal, opcode.GetSlot, opcode.SetSlot, opcode.GetGlobalSlot, opcode.SetGlobalSlot,
		opcode.Coerce, opcode.AsType, opcode.IsType, opcode.ApplyType,
		opcode.IncLocal, opcode.DecLocal, opcode.IncLocalI, opcode.DecLocalI,
		opcode.DebugLine, opcode.DebugFile, opcode.BkptLine:
		load.U30()

	case opcode.HasNext2, opcode.CallMethod, opcode.CallStatic, opcode.CallSuper, opcode.CallSuperVoid,
		opcode.CallProperty, opcode.CallPropLex, opcode.CallPropVoid, opcode.ConstructProp:
		load.U30()
		load.U30()

	case opcode.Jump, opcode.IfTrue, opcode.IfFalse, opcode.IfEq, opcode.IfNe,
		opcode.IfLT, opcode.IfLE, opcode.IfGT, opcode.IfGE, opcode.IfNLT, opcode.IfNLE, opcode.IfNGT, opcode.IfNGE,
		opcode.IfStrictEq, opcode.IfStrictNe:
		load.S24()

	case opcode.Debug:
		load.Byte() // type
		load.U30()  // name
		load.Byte() // register
		load.U30()  // extra

	case opcode.LookupSwitch:
		load.S24()
		for range load.Count(maxLookupSwitchCases, "lookupswitch case") + 1 {
			load.S24()
		}

	default:
		if !opcode.Exists(byte(op)) {
			panic(module.Errorf("unknown opcode 0x%02x", byte(op)))
		}
	}
}
