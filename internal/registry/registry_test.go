// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"testing"

	"gate.computer/abcjit/abc/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule(t *testing.T) {
	m := Module()
	require.Same(t, m, Module())

	for i := 0; i < 256; i++ {
		op := opcode.Opcode(i)
		e := Lookup(op)

		switch e.Conv {
		case Unsupported, Custom:
			assert.Nil(t, e.Impl, op.String())
			assert.Nil(t, m.Helper(e.Name), op.String())

		default:
			h := m.Helper(e.Name)
			if assert.NotNil(t, h, op.String()) {
				assert.True(t, h.Bound(), op.String())
				sig, _ := e.Conv.Signature()
				assert.True(t, sig.Equal(h.Sig), op.String())
			}
		}
	}

	for _, a := range auxiliaries {
		h := m.Helper(a.name)
		require.NotNil(t, h, a.name)
		assert.True(t, h.Bound(), a.name)
	}
}

func TestClasses(t *testing.T) {
	cases := map[opcode.Opcode]Conv{
		opcode.Add:          Ptr2,
		opcode.ConvertI:     Ptr1,
		opcode.PushInt:      LazyCtxImm,
		opcode.PushNull:     LazyCtx,
		opcode.GetProperty:  CtxImm,
		opcode.CallProperty: CtxImm2,
		opcode.PushScope:    Ctx,
		opcode.IfLT:         Branch2,
		opcode.IfTrue:       Branch1,
		opcode.Jump:         Jump,
		opcode.GetLocal0:    Custom,
		opcode.PushByte:     Custom,
		opcode.LookupSwitch: Unsupported,
		opcode.NewFunction:  Unsupported,
		opcode.GetSlot:      Unsupported,
	}

	for op, conv := range cases {
		e := Lookup(op)
		assert.Equal(t, conv, e.Conv, op.String())
		assert.Equal(t, op.String(), e.Name)
	}

	assert.True(t, Lookup(opcode.IfNGE).Branch)
	assert.True(t, Lookup(opcode.Jump).Branch)
	assert.True(t, Lookup(opcode.PushString).Lazy)
	assert.True(t, Lookup(opcode.Subtract).Lazy)
	assert.False(t, Lookup(opcode.SetProperty).Lazy)
	assert.True(t, Lookup(opcode.ConvertO).Throws)
	assert.True(t, Lookup(opcode.InstanceOf).Throws)
	assert.False(t, Lookup(opcode.ConvertI).Throws)
	assert.False(t, Lookup(opcode.IfEq).Throws)
	assert.Equal(t, [2]Imm{ImmMultiname, ImmCount}, Lookup(opcode.CallPropVoid).Imms)
	assert.Equal(t, [2]Imm{ImmLocal, ImmLocal}, Lookup(opcode.HasNext2).Imms)
}

func TestUniqueNames(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 256; i++ {
		e := Lookup(opcode.Opcode(i))
		if _, ok := e.Conv.Signature(); ok {
			assert.False(t, seen[e.Name], e.Name)
			seen[e.Name] = true
		}
	}

	for _, a := range auxiliaries {
		assert.False(t, seen[a.name], a.name)
		seen[a.name] = true
	}
}
