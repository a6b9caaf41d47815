// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package object implements the reference-counted value model shared by the
// interpreter and compiled code.
//
// A dynamic value starts with one reference, owned by whoever created it.
// IncRef creates another owned reference and DecRef gives one up.  Undefined,
// null and the booleans are immortal.
package object

import (
	"fmt"
	"sync/atomic"
)

type Type uint8

const (
	TypeUndefined Type = iota
	TypeNull
	TypeBoolean
	TypeInteger
	TypeUInteger
	TypeNumber
	TypeString
	TypeObject
	TypeArray
	TypeFunction
)

func (t Type) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "Boolean"
	case TypeInteger:
		return "int"
	case TypeUInteger:
		return "uint"
	case TypeNumber:
		return "Number"
	case TypeString:
		return "String"
	case TypeObject:
		return "Object"
	case TypeArray:
		return "Array"
	case TypeFunction:
		return "Function"
	default:
		return fmt.Sprintf("<type %d>", uint8(t))
	}
}

func (t Type) numeric() bool {
	return t == TypeInteger || t == TypeUInteger || t == TypeNumber
}

type Object interface {
	IncRef()
	DecRef()
	RefCount() int32
	Type() Type
}

// RefCountError is raised when a reference is released twice.
type RefCountError struct {
	Type Type
}

func (e *RefCountError) Error() string {
	return fmt.Sprintf("reference count underflow on %s object", e.Type)
}

// Ref implements reference counting for embedding types.  The count must be
// initialized to 1.
type Ref struct {
	n int32
}

func (r *Ref) IncRef()         { atomic.AddInt32(&r.n, 1) }
func (r *Ref) RefCount() int32 { return atomic.LoadInt32(&r.n) }

// release reports whether the last reference was given up.
func (r *Ref) release(t Type) bool {
	n := atomic.AddInt32(&r.n, -1)
	if n < 0 {
		panic(&RefCountError{t})
	}
	return n == 0
}

type immortal struct{}

func (immortal) IncRef()         {}
func (immortal) DecRef()         {}
func (immortal) RefCount() int32 { return 1 }

type Special struct {
	immortal
	t Type
}

func (s *Special) Type() Type { return s.t }

var (
	Undefined = &Special{t: TypeUndefined}
	Null      = &Special{t: TypeNull}
)

type Boolean struct {
	immortal
	Val bool
}

func (*Boolean) Type() Type { return TypeBoolean }

var (
	True  = &Boolean{Val: true}
	False = &Boolean{Val: false}
)

func Bool(b bool) *Boolean {
	if b {
		return True
	}
	return False
}

type Integer struct {
	Ref
	Val int32
}

func NewInteger(x int32) *Integer { return &Integer{Ref{1}, x} }
func (i *Integer) Type() Type    { return TypeInteger }
func (i *Integer) DecRef()       { i.release(TypeInteger) }

type UInteger struct {
	Ref
	Val uint32
}

func NewUInteger(x uint32) *UInteger { return &UInteger{Ref{1}, x} }
func (u *UInteger) Type() Type      { return TypeUInteger }
func (u *UInteger) DecRef()         { u.release(TypeUInteger) }

type Number struct {
	Ref
	Val float64
}

func NewNumber(x float64) *Number { return &Number{Ref{1}, x} }
func (n *Number) Type() Type     { return TypeNumber }
func (n *Number) DecRef()        { n.release(TypeNumber) }

type String struct {
	Ref
	Val string
}

func NewString(s string) *String { return &String{Ref{1}, s} }
func (s *String) Type() Type    { return TypeString }
func (s *String) DecRef()       { s.release(TypeString) }

// Obj is a dynamic object.  Enumeration follows insertion order.
type Obj struct {
	Ref
	props map[string]Object
	keys  []string
	ctor  *Function // Not a counted reference.
}

func NewObject() *Obj {
	return &Obj{Ref: Ref{1}, props: make(map[string]Object)}
}

func (o *Obj) Type() Type { return TypeObject }

// Constructor returns the function which constructed the object, or nil.
func (o *Obj) Constructor() *Function { return o.ctor }

func (o *Obj) DecRef() {
	if o.release(TypeObject) {
		for _, v := range o.props {
			v.DecRef()
		}
		o.props = nil
		o.keys = nil
	}
}

type Array struct {
	Ref
	Elems []Object
}

// NewArray takes ownership of the element references.
func NewArray(elems []Object) *Array {
	return &Array{Ref{1}, elems}
}

func (a *Array) Type() Type { return TypeArray }

func (a *Array) DecRef() {
	if a.release(TypeArray) {
		for _, v := range a.Elems {
			v.DecRef()
		}
		a.Elems = nil
	}
}

// NativeFunc borrows this and args, and returns a new reference.
type NativeFunc func(this Object, args []Object) Object

type Function struct {
	Ref
	Name string
	Call NativeFunc
}

func NewFunction(name string, call NativeFunc) *Function {
	return &Function{Ref{1}, name, call}
}

func (f *Function) Type() Type { return TypeFunction }
func (f *Function) DecRef()    { f.release(TypeFunction) }

// Construct creates an object and runs f with it as this.  If the function
// returns an object, that replaces the created one.
func (f *Function) Construct(args []Object) Object {
	this := NewObject()
	this.ctor = f

	result := f.Call(this, args)
	if t := result.Type(); t == TypeObject || t == TypeArray || t == TypeFunction {
		this.DecRef()
		return result
	}
	result.DecRef()
	return this
}
