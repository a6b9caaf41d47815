// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/backend"
	"gate.computer/abcjit/internal/gen"
	"gate.computer/abcjit/internal/gen/entry"
	"gate.computer/abcjit/internal/loader"
	"gate.computer/abcjit/internal/module"
	"gate.computer/abcjit/internal/registry"
)

func localIndex(f *gen.Func, load *loader.L) int {
	return int(load.Index(f.Method.LocalCount, "local"))
}

func fixedLocal(f *gen.Func, index int) int {
	if index >= f.Method.LocalCount {
		panic(module.Errorf("local index %d out of range", index))
	}
	return index
}

func genKill(f *gen.Func, index int) {
	undefined := f.CallHelper(opcode.PushUndefined.String(), backend.ParamContext)
	f.SetLocal(index, entry.Obj(undefined))
}

// genStepLocal replaces a local with the result of a unary helper.
func genStepLocal(f *gen.Func, index int, step opcode.Opcode) {
	x := f.GetLocal(index)
	r := f.CallHelper(registry.Lookup(step).Name, x.Value)
	f.SetLocal(index, entry.Obj(r))
}
