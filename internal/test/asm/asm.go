// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm assembles method bodies for tests.
package asm

import (
	"fmt"

	"gate.computer/abcjit/abc"
	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/binary"
)

type fixup struct {
	at    int // Position of the s24 field.
	base  int // Offsets are relative to this position.
	label string
}

// A accumulates code.  Branch offsets referring to labels are resolved by
// Code.
type A struct {
	code   []byte
	labels map[string]int
	fixups []fixup
}

func New() *A {
	return &A{labels: make(map[string]int)}
}

// Op appends an opcode with u30 immediates.
func (a *A) Op(op opcode.Opcode, imms ...uint32) *A {
	a.code = append(a.code, byte(op))
	for _, x := range imms {
		a.code = binary.AppendU32(a.code, x)
	}
	return a
}

// Raw appends bytes.
func (a *A) Raw(b ...byte) *A {
	a.code = append(a.code, b...)
	return a
}

func (a *A) PushByte(x int8) *A {
	return a.Raw(byte(opcode.PushByte), byte(x))
}

func (a *A) PushShort(x int16) *A {
	a.code = append(a.code, byte(opcode.PushShort))
	a.code = binary.AppendU32(a.code, uint32(uint16(x)))
	return a
}

// Mark binds a label to the current position without emitting code.
func (a *A) Mark(label string) *A {
	if _, dup := a.labels[label]; dup {
		panic(fmt.Sprintf("duplicate label %q", label))
	}
	a.labels[label] = len(a.code)
	return a
}

// Label binds a label and emits the label opcode.
func (a *A) Label(label string) *A {
	return a.Mark(label).Op(opcode.Label)
}

// Branch appends a jump or conditional branch to a label.
func (a *A) Branch(op opcode.Opcode, label string) *A {
	a.code = append(a.code, byte(op))
	a.fixups = append(a.fixups, fixup{len(a.code), len(a.code) + 3, label})
	a.code = append(a.code, 0, 0, 0)
	return a
}

// BranchOffset appends a branch with a literal offset.
func (a *A) BranchOffset(op opcode.Opcode, offset int32) *A {
	a.code = append(a.code, byte(op))
	a.code = binary.AppendS24(a.code, offset)
	return a
}

func (a *A) LookupSwitch(defaultLabel string, cases ...string) *A {
	base := len(a.code)
	a.code = append(a.code, byte(opcode.LookupSwitch))

	a.fixups = append(a.fixups, fixup{len(a.code), base, defaultLabel})
	a.code = append(a.code, 0, 0, 0)
	a.code = binary.AppendU32(a.code, uint32(len(cases)-1))

	for _, label := range cases {
		a.fixups = append(a.fixups, fixup{len(a.code), base, label})
		a.code = append(a.code, 0, 0, 0)
	}
	return a
}

// Code resolves branch offsets.
func (a *A) Code() []byte {
	code := append([]byte(nil), a.code...)

	for _, f := range a.fixups {
		target, found := a.labels[f.label]
		if !found {
			panic(fmt.Sprintf("undefined label %q", f.label))
		}
		binary.AppendS24(code[:f.at], int32(target-f.base))
	}
	return code
}

// Method with room for this and the parameters in addition to extra locals.
func (a *A) Method(name string, params, extraLocals, maxStack int) *abc.Method {
	return &abc.Method{
		Name:       name,
		ParamCount: params,
		MaxStack:   maxStack,
		LocalCount: 1 + params + extraLocals,
		Code:       a.Code(),
		Pool:       new(abc.ConstantPool),
	}
}
