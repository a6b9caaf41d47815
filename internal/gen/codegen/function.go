// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codegen translates method bytecode into backend IR in a single
// pass.
package codegen

import (
	"fmt"

	"gate.computer/abcjit/abc"
	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/backend"
	"gate.computer/abcjit/internal/errorpanic"
	"gate.computer/abcjit/internal/gen"
	"gate.computer/abcjit/internal/gen/debug"
	"gate.computer/abcjit/internal/loader"
	"gate.computer/abcjit/internal/module"
	"gate.computer/abcjit/internal/registry"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

var errFallOffEnd = module.Error("code falls off the end")

// GenMethod translates a method.  An unsupported opcode yields a partially
// built function which must not be lowered, together with a
// *module.Unsupported error.  Other method errors yield no function.
// Compiler defects are not recovered.
func GenMethod(m *abc.Method, mod *backend.Module, log zerolog.Logger) (fn *backend.Function, err error) {
	f := gen.NewFunc(m, mod, log)

	defer func() {
		if err = errorpanic.Handle(recover()); err != nil {
			var u *module.Unsupported
			if xerrors.As(err, &u) {
				fn = f.Function()
			}
		}
	}()

	genFunction(f, loader.New(m.Code))
	fn = f.Function()
	return
}

func genFunction(f *gen.Func, load *loader.L) {
	if debug.Enabled {
		debug.Printf("method %s", f.Method)
		debug.Depth++
	}

	f.SetInsertPoint(f.NewBlock("entry"))
	f.CallHelper(registry.BindArguments, backend.ParamContext)

	for {
		pos := load.Tell()
		f.Offset = pos

		if !load.EOF() && opcode.Opcode(f.Method.Code[pos]) == opcode.Label {
			blockAt(f, pos)
		}
		if id, found := f.Blocks.Get(pos); found {
			enterBlock(f, id)
		}

		if load.EOF() {
			break
		}

		if f.Terminated() {
			skipUnreachable(f, load)
			continue
		}

		genOp(f, load, opcode.Opcode(load.Byte()))
		checkInterior(f, pos, load.Tell())
	}

	if !f.Terminated() {
		panic(errFallOffEnd)
	}

	for _, b := range f.Function().Blocks {
		if b.Term.Kind == backend.TermNone {
			f.Log.Error().Str("method", f.Method.Name).Str("block", b.Name).Msg("block without terminator")
			f.Internalf("block %s has no terminator", b.Name)
		}
	}

	if debug.Enabled {
		debug.Depth--
	}
}

func blockAt(f *gen.Func, offset int) backend.BlockID {
	id, _ := f.Blocks.GetOrCreate(offset, func() backend.BlockID {
		return f.NewBlock(fmt.Sprintf("L%d", offset))
	})
	return id
}

func enterBlock(f *gen.Func, id backend.BlockID) {
	if !f.Terminated() {
		f.SyncAll()
		f.Br(id)
		f.Log.Trace().Int("offset", f.Offset).Msg("fallthrough")
	}

	if debug.Enabled {
		debug.Printf("block L%d", f.Offset)
	}

	f.SetInsertPoint(id)
	f.ResetLocals()
}

// checkInterior rejects blocks which start inside the instruction at pos.
func checkInterior(f *gen.Func, pos, end int) {
	if offset, found := f.Blocks.Within(pos+1, end); found {
		panic(module.Errorf("branch target %d is inside instruction at offset %d", offset, pos))
	}
}

// branchTarget resolves a branch offset relative to next.  Forward targets
// get a block on demand; backward targets must have one already.
func branchTarget(f *gen.Func, next int, offset int32) backend.BlockID {
	target := next + int(offset)
	if target < 0 || target > len(f.Method.Code) {
		panic(module.Errorf("branch target %d out of range at offset %d", target, f.Offset))
	}

	if target < next {
		id, found := f.Blocks.Get(target)
		if !found {
			panic(module.Errorf("backward branch at offset %d to %d without label", f.Offset, target))
		}
		return id
	}

	return blockAt(f, target)
}
