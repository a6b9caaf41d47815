// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"gate.computer/abcjit/object"
	"gate.computer/abcjit/trap"
	"gate.computer/abcjit/vm"
	"github.com/pkg/errors"
)

// Native is the calling convention of compiled methods.  The locals and
// stack slices are those of the context.
type Native func(locals, stack []object.Object, ctx *vm.Context) object.Object

const maxCallArgs = 3

// frame of one invocation.
type frame struct {
	regs   []word
	args   [maxCallArgs]word
	result object.Object
}

type step func(f *frame)

// terminator returns the next block index, or -1 to return.
type terminator func(f *frame) int

type lowBlock struct {
	steps []step
	term  terminator
}

// Lower a verified function.  Every called helper must be bound.
func Lower(fn *Function) (Native, error) {
	if err := Verify(fn); err != nil {
		return nil, err
	}

	blocks := make([]lowBlock, len(fn.Blocks))

	for i, b := range fn.Blocks {
		steps := make([]step, 0, len(b.Instrs))
		for _, in := range b.Instrs {
			s, err := lowerInstr(in)
			if err != nil {
				return nil, errors.Wrapf(err, "block %s", b.Name)
			}
			steps = append(steps, s)
		}
		blocks[i] = lowBlock{steps, lowerTerm(b.Term)}
	}

	numValues := fn.NumValues()

	return func(locals, stack []object.Object, ctx *vm.Context) object.Object {
		f := &frame{regs: make([]word, numValues)}
		f.regs[ParamLocals].s = locals
		f.regs[ParamStack].s = stack
		f.regs[ParamContext].c = ctx

		for i := 0; i >= 0; {
			b := &blocks[i]
			for _, s := range b.steps {
				s(f)
			}
			i = b.term(f)
		}
		return f.result
	}, nil
}

func lowerInstr(in Instr) (step, error) {
	r := in.Result
	a := in.Args

	switch in.Op {
	case OpConstInt:
		x := in.Imm
		return func(f *frame) { f.regs[r].i = x }, nil

	case OpLoadField:
		switch in.Field {
		case FieldLocals:
			return func(f *frame) { f.regs[r].s = f.regs[a[0]].c.Locals }, nil
		case FieldStack:
			return func(f *frame) { f.regs[r].s = f.regs[a[0]].c.Stack }, nil
		case FieldStackIndex:
			return func(f *frame) { f.regs[r].i = int64(f.regs[a[0]].c.StackIndex) }, nil
		}

	case OpStoreField:
		switch in.Field {
		case FieldLocals:
			return func(f *frame) { f.regs[a[0]].c.Locals = f.regs[a[1]].s }, nil
		case FieldStack:
			return func(f *frame) { f.regs[a[0]].c.Stack = f.regs[a[1]].s }, nil
		case FieldStackIndex:
			return func(f *frame) { f.regs[a[0]].c.StackIndex = int(f.regs[a[1]].i) }, nil
		}

	case OpLoadElem:
		return func(f *frame) { f.regs[r].o = f.regs[a[0]].s[f.regs[a[1]].i] }, nil

	case OpStoreElem:
		return func(f *frame) { f.regs[a[0]].s[f.regs[a[1]].i] = f.regs[a[2]].o }, nil

	case OpAddInt:
		return func(f *frame) { f.regs[r].i = int64(int32(f.regs[a[0]].i) + int32(f.regs[a[1]].i)) }, nil

	case OpCall:
		h := in.Helper
		if !h.Bound() {
			return nil, errors.Errorf("helper %s is not bound", h.Name)
		}
		if len(a) > maxCallArgs {
			return nil, errors.Errorf("helper %s takes %d arguments", h.Name, len(a))
		}
		call := h.call
		n := len(a)
		return func(f *frame) {
			args := f.args[:n]
			for i, v := range a {
				args[i] = f.regs[v]
			}
			res := call(args)
			if r != 0 {
				f.regs[r] = res
			}
		}, nil
	}

	return nil, errors.Errorf("cannot lower %s", in.Op)
}

func lowerTerm(t Term) terminator {
	switch t.Kind {
	case TermBr:
		target := int(t.Targets[0])
		return func(*frame) int { return target }

	case TermCondBr:
		cond := t.Value
		taken, notTaken := int(t.Targets[0]), int(t.Targets[1])
		return func(f *frame) int {
			if f.regs[cond].i != 0 {
				return taken
			}
			return notTaken
		}

	case TermRet:
		x := t.Value
		return func(f *frame) int {
			f.result = f.regs[x].o
			return -1
		}

	case TermRetVoid:
		return func(f *frame) int {
			f.result = object.Undefined
			return -1
		}

	default:
		e := &trap.Error{ID: t.Trap, Opcode: t.Opcode, Offset: t.Offset}
		return func(*frame) int { panic(e) }
	}
}
