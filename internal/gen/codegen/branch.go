// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"gate.computer/abcjit/backend"
	"gate.computer/abcjit/internal/gen"
	"gate.computer/abcjit/internal/loader"
	"gate.computer/abcjit/internal/registry"
)

func genConditional(f *gen.Func, load *loader.L, e registry.Entry) {
	var cond backend.Value

	if e.Conv == registry.Branch1 {
		x := f.Box(f.Pop())
		cond = f.CallHelper(e.Name, x.Value)
	} else {
		b := f.Pop()
		a := f.Box(f.Pop())
		b = f.Box(b)
		cond = f.CallHelper(e.Name, a.Value, b.Value)
	}

	offset := load.S24()
	next := load.Tell()
	target := branchTarget(f, next, offset)
	cont := blockAt(f, next)

	f.SyncAll()
	f.CondBr(cond, target, cont)
}

func genJump(f *gen.Func, load *loader.L, e registry.Entry) {
	offset := load.S24()
	next := load.Tell()
	target := branchTarget(f, next, offset)
	blockAt(f, next)

	f.SyncAll()
	f.CallHelper(e.Name, backend.ParamContext, f.Const(offset))
	f.Br(target)
}
