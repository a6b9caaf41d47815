// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend is the code generation backend of the JIT.  Helper
// routines are declared and bound in a Module, functions are built block by
// block with a Builder, and verified functions are lowered into directly
// callable Go functions.
package backend

import (
	"fmt"

	"gate.computer/abcjit/trap"
)

type Type uint8

const (
	Void Type = iota
	Int       // 32-bit integer semantics.
	Bool
	Object
	Slice // Of objects.
	Context
)

func (t Type) String() string {
	switch t {
	case Void:
		return "void"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Object:
		return "object"
	case Slice:
		return "slice"
	case Context:
		return "ctx"
	default:
		return fmt.Sprintf("<type %d>", uint8(t))
	}
}

// Value identifies an instruction result or a parameter.  The zero value is
// not a value.
type Value uint32

const (
	ParamLocals Value = 1 + iota
	ParamStack
	ParamContext

	numParams = 3
)

func (v Value) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}

// BlockID is an index into the blocks of a function.
type BlockID int

// Field of the call context accessible to compiled code.
type Field uint8

const (
	FieldLocals Field = iota
	FieldStack
	FieldStackIndex
)

func (f Field) Type() Type {
	if f == FieldStackIndex {
		return Int
	}
	return Slice
}

func (f Field) String() string {
	switch f {
	case FieldLocals:
		return "locals"
	case FieldStack:
		return "stack"
	case FieldStackIndex:
		return "stackIndex"
	default:
		return fmt.Sprintf("<field %d>", uint8(f))
	}
}

type Op uint8

const (
	OpConstInt Op = iota
	OpLoadField
	OpStoreField
	OpLoadElem
	OpStoreElem
	OpAddInt
	OpCall
)

var opNames = [...]string{
	OpConstInt:   "const",
	OpLoadField:  "load.field",
	OpStoreField: "store.field",
	OpLoadElem:   "load.elem",
	OpStoreElem:  "store.elem",
	OpAddInt:     "add.int",
	OpCall:       "call",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("<op %d>", uint8(op))
}

type Instr struct {
	Op     Op
	Result Value // Zero if the instruction has no result.
	Args   []Value
	Imm    int64
	Field  Field
	Helper *Helper
}

type TermKind uint8

const (
	TermNone TermKind = iota
	TermBr
	TermCondBr
	TermRet
	TermRetVoid
	TermUnreachable
	TermTrap
)

var termNames = [...]string{
	TermNone:        "<none>",
	TermBr:          "br",
	TermCondBr:      "condbr",
	TermRet:         "ret",
	TermRetVoid:     "ret.void",
	TermUnreachable: "unreachable",
	TermTrap:        "trap",
}

func (k TermKind) String() string {
	if int(k) < len(termNames) {
		return termNames[k]
	}
	return fmt.Sprintf("<term %d>", uint8(k))
}

type Term struct {
	Kind    TermKind
	Value   Value      // Condition or return value.
	Targets [2]BlockID // Taken and not-taken.

	Trap   trap.ID
	Opcode byte
	Offset int
}

type Block struct {
	Name   string
	Instrs []Instr
	Term   Term

	// Builder misuse is recorded for Verify.
	terms      int
	afterTerms int
}

// Function under construction or lowered.
type Function struct {
	Name   string
	Blocks []*Block

	types []Type // Indexed by Value.
}

func NewFunction(name string) *Function {
	return &Function{
		Name:  name,
		types: []Type{Void, Slice, Slice, Context},
	}
}

// TypeOf a value.  The result is Void for unknown values.
func (fn *Function) TypeOf(v Value) Type {
	if int(v) < len(fn.types) {
		return fn.types[v]
	}
	return Void
}

// NumValues including the parameters and the zero value.
func (fn *Function) NumValues() int {
	return len(fn.types)
}

// NumInstrs in all blocks, excluding terminators.
func (fn *Function) NumInstrs() (n int) {
	for _, b := range fn.Blocks {
		n += len(b.Instrs)
	}
	return
}

func (fn *Function) newValue(t Type) Value {
	fn.types = append(fn.types, t)
	return Value(len(fn.types) - 1)
}
