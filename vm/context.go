// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vm contains the call context and the native helper routines shared
// by the interpreter and compiled code, and the interpreter itself.
//
// Helpers which take object arguments consume them and return a new
// reference.  Helpers which take the context operate on the real operand
// stack.
package vm

import (
	"gate.computer/abcjit/abc"
	"gate.computer/abcjit/object"
)

// Context of one method invocation.  Compiled code accesses Locals, Stack
// and StackIndex directly.
type Context struct {
	Locals     []object.Object
	Stack      []object.Object
	StackIndex int

	This   object.Object
	Args   []object.Object // Borrowed from the caller.
	Scope  []object.Object
	Global object.Object
	Method *abc.Method

	// Jumps counts unconditional jumps taken.
	Jumps int
}

// NewContext allocates locals and an operand stack for m.  The locals are
// filled by BindArguments.
func NewContext(m *abc.Method, this object.Object, args []object.Object, global object.Object) *Context {
	if global == nil {
		global = object.Null
	}
	return &Context{
		Locals: make([]object.Object, m.LocalCount),
		Stack:  make([]object.Object, m.MaxStack),
		This:   this,
		Args:   args,
		Global: global,
		Method: m,
	}
}

// Release gives up the references held by locals, leftover stack values and
// the scope stack.
func (ctx *Context) Release() {
	for i, x := range ctx.Locals {
		if x != nil {
			x.DecRef()
			ctx.Locals[i] = nil
		}
	}
	for i := 0; i < ctx.StackIndex; i++ {
		ctx.Stack[i].DecRef()
		ctx.Stack[i] = nil
	}
	ctx.StackIndex = 0
	for _, x := range ctx.Scope {
		x.DecRef()
	}
	ctx.Scope = nil
}

func push(ctx *Context, x object.Object) {
	ctx.Stack[ctx.StackIndex] = x
	ctx.StackIndex++
}

func pop(ctx *Context) object.Object {
	ctx.StackIndex--
	x := ctx.Stack[ctx.StackIndex]
	ctx.Stack[ctx.StackIndex] = nil
	return x
}

// popN returns the topmost n values in stack order.
func popN(ctx *Context, n int32) []object.Object {
	ctx.StackIndex -= int(n)
	xs := make([]object.Object, n)
	copy(xs, ctx.Stack[ctx.StackIndex:])
	for i := range xs {
		ctx.Stack[ctx.StackIndex+i] = nil
	}
	return xs
}

func release(xs []object.Object) {
	for _, x := range xs {
		x.DecRef()
	}
}

// Jump accounts for an unconditional jump by offset.
func Jump(ctx *Context, offset int32) {
	ctx.Jumps++
}

// BindArguments fills the locals: this, the declared parameters, the
// arguments or rest array, and undefined for the remaining slots.
func BindArguments(ctx *Context) {
	m := ctx.Method
	locals := ctx.Locals

	ctx.This.IncRef()
	locals[0] = ctx.This

	for i := 0; i < m.ParamCount; i++ {
		x := object.Object(object.Undefined)
		if i < len(ctx.Args) {
			x = ctx.Args[i]
			x.IncRef()
		}
		locals[1+i] = x
	}

	n := 1 + m.ParamCount

	if slot := m.ArgumentsSlot(); slot >= 0 {
		var extra []object.Object
		if m.Flags&abc.NeedArguments != 0 {
			extra = ctx.Args
		} else if len(ctx.Args) > m.ParamCount {
			extra = ctx.Args[m.ParamCount:]
		}

		elems := make([]object.Object, len(extra))
		for i, x := range extra {
			x.IncRef()
			elems[i] = x
		}
		locals[slot] = object.NewArray(elems)
		n++
	}

	for i := n; i < len(locals); i++ {
		locals[i] = object.Undefined
	}
}

// IncRef is the reference acquisition helper.
func IncRef(x object.Object) { x.IncRef() }

// DecRef is the reference release helper.
func DecRef(x object.Object) { x.DecRef() }

// DecRefSafe releases a displaced local slot value.  It is called after the
// replacement has been stored, so that a value which replaces itself is not
// freed while still referenced.  Slots which were never bound are nil.
func DecRefSafe(x object.Object) {
	if x != nil {
		x.DecRef()
	}
}

// BoxInt converts an unboxed integer into an object.
func BoxInt(x int32) object.Object {
	return object.NewInteger(x)
}
