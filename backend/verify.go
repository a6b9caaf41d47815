// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Verify checks the structure of a function.  All problems are reported.
func Verify(fn *Function) error {
	var result *multierror.Error

	fail := func(b *Block, format string, args ...interface{}) {
		result = multierror.Append(result, errors.Wrapf(errors.Errorf(format, args...), "block %s", b.Name))
	}

	if len(fn.Blocks) == 0 {
		return errors.Errorf("function %s has no blocks", fn.Name)
	}

	for _, b := range fn.Blocks {
		switch {
		case b.terms == 0:
			fail(b, "no terminator")
		case b.terms > 1:
			fail(b, "%d terminators", b.terms)
		}
		if b.afterTerms > 0 {
			fail(b, "%d instructions after terminator", b.afterTerms)
		}

		for i, in := range b.Instrs {
			for _, msg := range checkInstr(fn, &in) {
				fail(b, "instruction %d (%s): %s", i, in.Op, msg)
			}
		}

		if b.terms > 0 {
			for _, msg := range checkTerm(fn, &b.Term) {
				fail(b, "%s: %s", b.Term.Kind, msg)
			}
		}
	}

	return result.ErrorOrNil()
}

func expect(fn *Function, args []Value, types ...Type) (problems []string) {
	if len(args) != len(types) {
		return []string{fmt.Sprintf("%d operands, expected %d", len(args), len(types))}
	}
	for i, v := range args {
		if t := fn.TypeOf(v); t != types[i] {
			problems = append(problems, fmt.Sprintf("operand %d is %s %s, expected %s", i, v, t, types[i]))
		}
	}
	return
}

func checkInstr(fn *Function, in *Instr) []string {
	switch in.Op {
	case OpConstInt:
		return expect(fn, in.Args)

	case OpLoadField:
		return expect(fn, in.Args, Context)

	case OpStoreField:
		return expect(fn, in.Args, Context, in.Field.Type())

	case OpLoadElem:
		return expect(fn, in.Args, Slice, Int)

	case OpStoreElem:
		return expect(fn, in.Args, Slice, Int, Object)

	case OpAddInt:
		return expect(fn, in.Args, Int, Int)

	case OpCall:
		if in.Helper == nil {
			return []string{"no helper"}
		}
		return expect(fn, in.Args, in.Helper.Sig.Params...)

	default:
		return []string{"unknown operation"}
	}
}

func checkTerm(fn *Function, t *Term) (problems []string) {
	targets := 0

	switch t.Kind {
	case TermBr:
		targets = 1

	case TermCondBr:
		targets = 2
		problems = expect(fn, []Value{t.Value}, Bool)

	case TermRet:
		problems = expect(fn, []Value{t.Value}, Object)
	}

	for _, id := range t.Targets[:targets] {
		if id < 0 || int(id) >= len(fn.Blocks) {
			problems = append(problems, fmt.Sprintf("target %d does not exist", id))
		}
	}
	return
}
