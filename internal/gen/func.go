// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gen holds the state of a method being compiled: the compile-time
// operand stack, the local variable cache, and the emitter which
// materializes them in the call context.
package gen

import (
	"fmt"

	"gate.computer/abcjit/abc"
	"gate.computer/abcjit/backend"
	"gate.computer/abcjit/internal/gen/blockmap"
	"gate.computer/abcjit/internal/gen/entry"
	"gate.computer/abcjit/internal/registry"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// InternalError is a compiler defect.  It is never returned; the panic
// which carries it is not recovered.
type InternalError struct {
	Offset int
	Err    error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error at offset %d: %v", e.Offset, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

type Func struct {
	Method *abc.Method
	Module *backend.Module
	*backend.Builder
	Blocks *blockmap.Map
	Log    zerolog.Logger

	Offset int // Start of the instruction being translated.

	Operands []entry.E
	Locals   []Slot

	helpers map[string]*backend.Helper
}

func NewFunc(m *abc.Method, mod *backend.Module, log zerolog.Logger) *Func {
	return &Func{
		Method:  m,
		Module:  mod,
		Builder: backend.NewBuilder(backend.NewFunction(m.Name)),
		Blocks:  blockmap.New(),
		Log:     log,
		Locals:  make([]Slot, m.LocalCount),
		helpers: make(map[string]*backend.Helper),
	}
}

// Internalf panics with an InternalError.
func (f *Func) Internalf(format string, args ...interface{}) {
	panic(&InternalError{f.Offset, errors.Errorf(format, args...)})
}

func (f *Func) helper(name string) *backend.Helper {
	h := f.helpers[name]
	if h == nil {
		h = f.Module.Helper(name)
		if h == nil {
			f.Internalf("helper %q is not declared", name)
		}
		f.helpers[name] = h
	}
	return h
}

// CallHelper emits a call to a registered helper.
func (f *Func) CallHelper(name string, args ...backend.Value) backend.Value {
	return f.Call(f.helper(name), args...)
}

func (f *Func) Const(x int32) backend.Value {
	return f.ConstInt(int64(x))
}

// IncRef emits a reference increment for an object entry.
func (f *Func) IncRef(e entry.E) {
	if e.Owns() {
		f.CallHelper(registry.IncRef, e.Value)
	}
}

// DecRef emits a reference decrement for an object entry.
func (f *Func) DecRef(e entry.E) {
	if e.Owns() {
		f.CallHelper(registry.DecRef, e.Value)
	}
}

// Box converts an int entry to an object entry.
func (f *Func) Box(e entry.E) entry.E {
	switch e.Kind {
	case entry.Object:
		return e

	case entry.Int:
		return entry.Obj(f.CallHelper(registry.BoxInt, e.Value))

	default:
		f.Internalf("boxing %s entry", e.Kind)
		return e
	}
}

func (f *Func) stackIndex() backend.Value {
	return f.LoadField(backend.ParamContext, backend.FieldStackIndex)
}

// pushReal stores an object at the stack index of the call context and
// increments the index.
func (f *Func) pushReal(v backend.Value) {
	i := f.stackIndex()
	f.StoreElem(backend.ParamStack, i, v)
	f.StoreField(backend.ParamContext, backend.FieldStackIndex, f.AddInt(i, f.Const(1)))
}

// popReal decrements the stack index of the call context and loads the
// object at it.
func (f *Func) popReal() backend.Value {
	i := f.AddInt(f.stackIndex(), f.Const(-1))
	f.StoreField(backend.ParamContext, backend.FieldStackIndex, i)
	return f.LoadElem(backend.ParamStack, i)
}

func (f *Func) peekReal() backend.Value {
	return f.LoadElem(backend.ParamStack, f.AddInt(f.stackIndex(), f.Const(-1)))
}

func (f *Func) loadLocal(index int) backend.Value {
	return f.LoadElem(backend.ParamLocals, f.Const(int32(index)))
}

func (f *Func) storeLocal(index int, v backend.Value) {
	f.StoreElem(backend.ParamLocals, f.Const(int32(index)), v)
}

// Synchronize the operand stack and the dirty locals with the call context.
func (f *Func) SyncAll() {
	f.Synchronize()
	f.SyncLocals()
}
