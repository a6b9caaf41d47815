// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"gate.computer/abcjit/object"
)

func propertyName(ctx *Context, index int32) string {
	return ctx.Method.Constants().Multinames[index].Name
}

func PushScope(ctx *Context) {
	ctx.Scope = append(ctx.Scope, pop(ctx))
}

// PushWith is PushScope which rejects null and undefined.
func PushWith(ctx *Context) {
	x := pop(ctx)
	if t := x.Type(); t == object.TypeUndefined || t == object.TypeNull {
		throwError("TypeError", "cannot use %s as scope", t)
	}
	ctx.Scope = append(ctx.Scope, x)
}

func PopScope(ctx *Context) {
	n := len(ctx.Scope) - 1
	if n < 0 {
		throwError("VerifyError", "scope stack underflow")
	}
	x := ctx.Scope[n]
	ctx.Scope = ctx.Scope[:n]
	x.DecRef()
}

func GetGlobalScope(ctx *Context) object.Object {
	x := ctx.Global
	if len(ctx.Scope) > 0 {
		x = ctx.Scope[0]
	}
	x.IncRef()
	return x
}

func GetScopeObject(ctx *Context, index int32) {
	if int(index) >= len(ctx.Scope) {
		throwError("VerifyError", "scope index %d out of range", index)
	}
	x := ctx.Scope[index]
	x.IncRef()
	push(ctx, x)
}

// findProperty searches the scope stack from the top, then the global
// object.  A borrowed reference is returned, or nil.
func findProperty(ctx *Context, name string) object.Object {
	for i := len(ctx.Scope) - 1; i >= 0; i-- {
		if x := ctx.Scope[i]; object.HasProperty(x, name) {
			return x
		}
	}
	if object.HasProperty(ctx.Global, name) {
		return ctx.Global
	}
	return nil
}

func FindPropStrict(ctx *Context, index int32) {
	name := propertyName(ctx, index)
	x := findProperty(ctx, name)
	if x == nil {
		throwError("ReferenceError", "%s is not defined", name)
	}
	x.IncRef()
	push(ctx, x)
}

func FindProperty(ctx *Context, index int32) {
	x := findProperty(ctx, propertyName(ctx, index))
	if x == nil {
		x = ctx.Global
	}
	x.IncRef()
	push(ctx, x)
}

func GetLex(ctx *Context, index int32) {
	name := propertyName(ctx, index)
	x := findProperty(ctx, name)
	if x == nil {
		throwError("ReferenceError", "%s is not defined", name)
	}
	push(ctx, object.GetProperty(x, name))
}

func GetProperty(ctx *Context, index int32) {
	x := pop(ctx)
	defer x.DecRef()
	push(ctx, object.GetProperty(x, propertyName(ctx, index)))
}

func SetProperty(ctx *Context, index int32) {
	v := pop(ctx)
	x := pop(ctx)
	defer x.DecRef()
	object.SetProperty(x, propertyName(ctx, index), v)
}

func InitProperty(ctx *Context, index int32) {
	SetProperty(ctx, index)
}

func DeleteProperty(ctx *Context, index int32) {
	x := pop(ctx)
	defer x.DecRef()
	push(ctx, object.Bool(object.DeleteProperty(x, propertyName(ctx, index))))
}

// call consumes fn, this and args.
func call(fn, this object.Object, args []object.Object) object.Object {
	defer fn.DecRef()
	defer this.DecRef()
	defer release(args)

	f, ok := fn.(*object.Function)
	if !ok {
		throwError("TypeError", "%s is not a function", object.TypeOf(fn))
	}
	return f.Call(this, args)
}

func construct(fn object.Object, args []object.Object) object.Object {
	defer fn.DecRef()
	defer release(args)

	f, ok := fn.(*object.Function)
	if !ok {
		throwError("TypeError", "%s is not a constructor", object.TypeOf(fn))
	}
	return f.Construct(args)
}

func callProperty(ctx *Context, index, argc int32, lex bool) object.Object {
	args := popN(ctx, argc)
	x := pop(ctx)
	fn := object.GetProperty(x, propertyName(ctx, index))
	if lex {
		x.DecRef()
		x = object.Null
	}
	return call(fn, x, args)
}

func CallProperty(ctx *Context, index, argc int32) {
	push(ctx, callProperty(ctx, index, argc, false))
}

func CallPropLex(ctx *Context, index, argc int32) {
	push(ctx, callProperty(ctx, index, argc, true))
}

func CallPropVoid(ctx *Context, index, argc int32) {
	callProperty(ctx, index, argc, false).DecRef()
}

func ConstructProp(ctx *Context, index, argc int32) {
	args := popN(ctx, argc)
	x := pop(ctx)
	defer x.DecRef()
	push(ctx, construct(object.GetProperty(x, propertyName(ctx, index)), args))
}

func Call(ctx *Context, argc int32) {
	args := popN(ctx, argc)
	this := pop(ctx)
	fn := pop(ctx)
	push(ctx, call(fn, this, args))
}

func Construct(ctx *Context, argc int32) {
	args := popN(ctx, argc)
	fn := pop(ctx)
	push(ctx, construct(fn, args))
}

// NewObject pops argc name-value pairs.
func NewObject(ctx *Context, argc int32) {
	pairs := popN(ctx, 2*argc)
	o := object.NewObject()
	for i := 0; i < len(pairs); i += 2 {
		object.SetProperty(o, object.ToString(pairs[i]), pairs[i+1])
		pairs[i].DecRef()
	}
	push(ctx, o)
}

func NewArray(ctx *Context, argc int32) {
	push(ctx, object.NewArray(popN(ctx, argc)))
}

// HasNext2 advances the enumeration state held in two locals and pushes
// whether a property remains.  The object local is nulled when exhausted.
func HasNext2(ctx *Context, objectReg, indexReg int32) {
	x := ctx.Locals[objectReg]
	i := int(object.ToInt32(ctx.Locals[indexReg]))

	next := object.NextIndex(x, i)

	old := ctx.Locals[indexReg]
	ctx.Locals[indexReg] = object.NewInteger(int32(next))
	old.DecRef()

	if next == 0 {
		ctx.Locals[objectReg] = object.Null
		x.DecRef()
	}

	push(ctx, object.Bool(next != 0))
}

func NextName(x, index object.Object) object.Object {
	defer x.DecRef()
	defer index.DecRef()
	return object.NameAt(x, int(object.ToInt32(index)))
}

func NextValue(x, index object.Object) object.Object {
	defer x.DecRef()
	defer index.DecRef()
	return object.ValueAt(x, int(object.ToInt32(index)))
}

// In tests whether the object has the named property.
func In(name, x object.Object) object.Object {
	defer name.DecRef()
	defer x.DecRef()
	return object.Bool(object.HasProperty(x, object.ToString(name)))
}

// InstanceOf tests whether x was created by the constructor typ.
func InstanceOf(x, typ object.Object) object.Object {
	defer x.DecRef()
	defer typ.DecRef()

	f, ok := typ.(*object.Function)
	if !ok {
		throwError("TypeError", "instanceof requires a function")
	}
	o, ok := x.(*object.Obj)
	return object.Bool(ok && o.Constructor() == f)
}
