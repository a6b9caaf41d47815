// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"fmt"
	"io"
	"strings"
)

// Style decorates dump output.  Nil functions leave text as is.
type Style struct {
	Label  func(format string, a ...interface{}) string
	Helper func(format string, a ...interface{}) string
}

func (s Style) label(format string, a ...interface{}) string {
	if s.Label != nil {
		return s.Label(format, a...)
	}
	return fmt.Sprintf(format, a...)
}

func (s Style) helper(format string, a ...interface{}) string {
	if s.Helper != nil {
		return s.Helper(format, a...)
	}
	return fmt.Sprintf(format, a...)
}

// Dump the function as text.
func (fn *Function) Dump(w io.Writer) error {
	return fn.DumpStyle(w, Style{})
}

func (fn *Function) DumpStyle(w io.Writer, style Style) error {
	var b strings.Builder

	fmt.Fprintf(&b, "func %s(%s locals, %s stack, %s ctx) {\n", fn.Name, ParamLocals, ParamStack, ParamContext)

	for i, blk := range fn.Blocks {
		fmt.Fprintf(&b, "%s\n", style.label("b%d %s:", i, blk.Name))

		for _, in := range blk.Instrs {
			b.WriteString("\t")
			if in.Result != 0 {
				fmt.Fprintf(&b, "%s = ", in.Result)
			}

			switch in.Op {
			case OpConstInt:
				fmt.Fprintf(&b, "%s %d", in.Op, in.Imm)

			case OpLoadField, OpStoreField:
				fmt.Fprintf(&b, "%s %s", in.Op, in.Field)
				writeValues(&b, in.Args)

			case OpCall:
				fmt.Fprintf(&b, "%s %s", in.Op, style.helper("%s", in.Helper.Name))
				writeValues(&b, in.Args)

			default:
				b.WriteString(in.Op.String())
				writeValues(&b, in.Args)
			}
			b.WriteString("\n")
		}

		t := blk.Term
		fmt.Fprintf(&b, "\t%s", t.Kind)
		switch t.Kind {
		case TermBr:
			fmt.Fprintf(&b, " b%d", t.Targets[0])
		case TermCondBr:
			fmt.Fprintf(&b, " %s, b%d, b%d", t.Value, t.Targets[0], t.Targets[1])
		case TermRet:
			fmt.Fprintf(&b, " %s", t.Value)
		case TermTrap:
			fmt.Fprintf(&b, " %q opcode 0x%02x offset %d", t.Trap.String(), t.Opcode, t.Offset)
		}
		b.WriteString("\n")
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeValues(b *strings.Builder, vs []Value) {
	for i, v := range vs {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
}
