// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry maps opcodes to the helper routines which implement them
// and their calling conventions.
package registry

import (
	"fmt"

	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/backend"
	"gate.computer/abcjit/object"
	"gate.computer/abcjit/vm"
)

// Conv is a calling convention class.
type Conv uint8

const (
	Unsupported Conv = iota
	Custom           // Translated by the generator without a single helper.
	Ctx              // (ctx)
	CtxImm           // (ctx, imm)
	CtxImm2          // (ctx, imm, imm)
	LazyCtx          // (ctx) object
	LazyCtxImm       // (ctx, imm) object
	Ptr1             // (object) object
	Ptr2             // (object, object) object
	Branch1          // (object) bool
	Branch2          // (object, object) bool
	Jump             // (ctx, offset)
)

var convNames = [...]string{
	Unsupported: "unsupported",
	Custom:      "custom",
	Ctx:         "ctx",
	CtxImm:      "ctx+imm",
	CtxImm2:     "ctx+imm2",
	LazyCtx:     "lazy ctx",
	LazyCtxImm:  "lazy ctx+imm",
	Ptr1:        "ptr1",
	Ptr2:        "ptr2",
	Branch1:     "branch1",
	Branch2:     "branch2",
	Jump:        "jump",
}

func (c Conv) String() string {
	if int(c) < len(convNames) {
		return convNames[c]
	}
	return fmt.Sprintf("<conv %d>", uint8(c))
}

// Signature of helpers of the class.  Unsupported and Custom have none.
func (c Conv) Signature() (sig backend.Signature, ok bool) {
	ok = true

	switch c {
	case Ctx:
		sig = backend.Sig(backend.Void, backend.Context)
	case CtxImm, Jump:
		sig = backend.Sig(backend.Void, backend.Context, backend.Int)
	case CtxImm2:
		sig = backend.Sig(backend.Void, backend.Context, backend.Int, backend.Int)
	case LazyCtx:
		sig = backend.Sig(backend.Object, backend.Context)
	case LazyCtxImm:
		sig = backend.Sig(backend.Object, backend.Context, backend.Int)
	case Ptr1:
		sig = backend.Sig(backend.Object, backend.Object)
	case Ptr2:
		sig = backend.Sig(backend.Object, backend.Object, backend.Object)
	case Branch1:
		sig = backend.Sig(backend.Bool, backend.Object)
	case Branch2:
		sig = backend.Sig(backend.Bool, backend.Object, backend.Object)
	default:
		ok = false
	}
	return
}

// Imm describes an immediate operand.
type Imm uint8

const (
	ImmNone      Imm = iota
	ImmMultiname     // u30 multiname pool index.
	ImmInt           // u30 int pool index.
	ImmUInt          // u30 uint pool index.
	ImmDouble        // u30 double pool index.
	ImmString        // u30 string pool index.
	ImmCount         // u30 argument count.
	ImmLocal         // u30 local index.
	ImmByte          // u8.
)

type Entry struct {
	Name   string
	Conv   Conv
	Branch bool // The helper result selects a control transfer.
	Lazy   bool // The result is returned instead of pushed.
	Throws bool // The helper may raise an exception.
	Imms   [2]Imm
	Impl   interface{}
}

func custom(op opcode.Opcode) Entry {
	return Entry{Name: op.String(), Conv: Custom}
}

func ctxOp(op opcode.Opcode, f func(*vm.Context)) Entry {
	return Entry{Name: op.String(), Conv: Ctx, Impl: f}
}

func ctxImm(op opcode.Opcode, imm Imm, f func(*vm.Context, int32)) Entry {
	return Entry{Name: op.String(), Conv: CtxImm, Imms: [2]Imm{imm}, Impl: f}
}

func ctxImm2(op opcode.Opcode, imm1, imm2 Imm, f func(*vm.Context, int32, int32)) Entry {
	return Entry{Name: op.String(), Conv: CtxImm2, Imms: [2]Imm{imm1, imm2}, Impl: f}
}

func lazyCtx(op opcode.Opcode, f func(*vm.Context) object.Object) Entry {
	return Entry{Name: op.String(), Conv: LazyCtx, Lazy: true, Impl: f}
}

func lazyCtxImm(op opcode.Opcode, imm Imm, f func(*vm.Context, int32) object.Object) Entry {
	return Entry{Name: op.String(), Conv: LazyCtxImm, Lazy: true, Imms: [2]Imm{imm}, Impl: f}
}

func ptr1(op opcode.Opcode, f func(object.Object) object.Object) Entry {
	return Entry{Name: op.String(), Conv: Ptr1, Lazy: true, Impl: f}
}

func ptr2(op opcode.Opcode, f func(a, b object.Object) object.Object) Entry {
	return Entry{Name: op.String(), Conv: Ptr2, Lazy: true, Impl: f}
}

// throws marks a helper which may raise an exception.  The generator
// materializes pending values before calling it.
func throws(e Entry) Entry {
	e.Throws = true
	return e
}

func branch1(op opcode.Opcode, f func(object.Object) bool) Entry {
	return Entry{Name: op.String(), Conv: Branch1, Branch: true, Impl: f}
}

func branch2(op opcode.Opcode, f func(a, b object.Object) bool) Entry {
	return Entry{Name: op.String(), Conv: Branch2, Branch: true, Impl: f}
}

// Lookup the entry of an opcode.  Opcodes without a translation have the
// Unsupported class.
func Lookup(op opcode.Opcode) Entry {
	switch op {
	case opcode.Nop, opcode.Label, opcode.Debug, opcode.DebugLine, opcode.DebugFile:
		return custom(op)

	case opcode.PushByte, opcode.PushShort, opcode.Pop, opcode.Dup, opcode.Swap:
		return custom(op)

	case opcode.GetLocal, opcode.GetLocal0, opcode.GetLocal1, opcode.GetLocal2, opcode.GetLocal3:
		return custom(op)

	case opcode.SetLocal, opcode.SetLocal0, opcode.SetLocal1, opcode.SetLocal2, opcode.SetLocal3:
		return custom(op)

	case opcode.Kill, opcode.IncLocal, opcode.DecLocal, opcode.IncLocalI, opcode.DecLocalI:
		return custom(op)

	case opcode.ReturnVoid, opcode.ReturnValue, opcode.Throw:
		return custom(op)

	case opcode.PushNull:
		return lazyCtx(op, vm.PushNull)
	case opcode.PushUndefined:
		return lazyCtx(op, vm.PushUndefined)
	case opcode.PushTrue:
		return lazyCtx(op, vm.PushTrue)
	case opcode.PushFalse:
		return lazyCtx(op, vm.PushFalse)
	case opcode.PushNaN:
		return lazyCtx(op, vm.PushNaN)
	case opcode.GetGlobalScope:
		return lazyCtx(op, vm.GetGlobalScope)

	case opcode.PushInt:
		return lazyCtxImm(op, ImmInt, vm.PushInt)
	case opcode.PushUInt:
		return lazyCtxImm(op, ImmUInt, vm.PushUInt)
	case opcode.PushDouble:
		return lazyCtxImm(op, ImmDouble, vm.PushDouble)
	case opcode.PushString:
		return lazyCtxImm(op, ImmString, vm.PushString)

	case opcode.PushScope:
		return ctxOp(op, vm.PushScope)
	case opcode.PopScope:
		return ctxOp(op, vm.PopScope)
	case opcode.PushWith:
		return ctxOp(op, vm.PushWith)

	case opcode.GetScopeObject:
		return ctxImm(op, ImmByte, vm.GetScopeObject)
	case opcode.FindPropStrict:
		return ctxImm(op, ImmMultiname, vm.FindPropStrict)
	case opcode.FindProperty:
		return ctxImm(op, ImmMultiname, vm.FindProperty)
	case opcode.GetLex:
		return ctxImm(op, ImmMultiname, vm.GetLex)
	case opcode.GetProperty:
		return ctxImm(op, ImmMultiname, vm.GetProperty)
	case opcode.SetProperty:
		return ctxImm(op, ImmMultiname, vm.SetProperty)
	case opcode.InitProperty:
		return ctxImm(op, ImmMultiname, vm.InitProperty)
	case opcode.DeleteProperty:
		return ctxImm(op, ImmMultiname, vm.DeleteProperty)
	case opcode.Call:
		return ctxImm(op, ImmCount, vm.Call)
	case opcode.Construct:
		return ctxImm(op, ImmCount, vm.Construct)
	case opcode.NewObject:
		return ctxImm(op, ImmCount, vm.NewObject)
	case opcode.NewArray:
		return ctxImm(op, ImmCount, vm.NewArray)

	case opcode.CallProperty:
		return ctxImm2(op, ImmMultiname, ImmCount, vm.CallProperty)
	case opcode.CallPropLex:
		return ctxImm2(op, ImmMultiname, ImmCount, vm.CallPropLex)
	case opcode.CallPropVoid:
		return ctxImm2(op, ImmMultiname, ImmCount, vm.CallPropVoid)
	case opcode.ConstructProp:
		return ctxImm2(op, ImmMultiname, ImmCount, vm.ConstructProp)
	case opcode.HasNext2:
		return ctxImm2(op, ImmLocal, ImmLocal, vm.HasNext2)

	case opcode.ConvertS:
		return ptr1(op, vm.ConvertS)
	case opcode.ConvertI, opcode.CoerceI:
		return ptr1(op, vm.ConvertI)
	case opcode.ConvertU, opcode.CoerceU:
		return ptr1(op, vm.ConvertU)
	case opcode.ConvertD, opcode.CoerceD:
		return ptr1(op, vm.ConvertD)
	case opcode.ConvertB, opcode.CoerceB:
		return ptr1(op, vm.ConvertB)
	case opcode.ConvertO:
		return throws(ptr1(op, vm.ConvertO))
	case opcode.CoerceA:
		return ptr1(op, vm.CoerceA)
	case opcode.CoerceS:
		return ptr1(op, vm.CoerceS)
	case opcode.CoerceO:
		return ptr1(op, vm.CoerceO)
	case opcode.Negate:
		return ptr1(op, vm.Negate)
	case opcode.NegateI:
		return ptr1(op, vm.NegateI)
	case opcode.Increment:
		return ptr1(op, vm.Increment)
	case opcode.IncrementI:
		return ptr1(op, vm.IncrementI)
	case opcode.Decrement:
		return ptr1(op, vm.Decrement)
	case opcode.DecrementI:
		return ptr1(op, vm.DecrementI)
	case opcode.TypeOf:
		return ptr1(op, vm.TypeOf)
	case opcode.Not:
		return ptr1(op, vm.Not)
	case opcode.BitNot:
		return ptr1(op, vm.BitNot)

	case opcode.Add:
		return ptr2(op, vm.Add)
	case opcode.AddI:
		return ptr2(op, vm.AddI)
	case opcode.Subtract:
		return ptr2(op, vm.Subtract)
	case opcode.SubtractI:
		return ptr2(op, vm.SubtractI)
	case opcode.Multiply:
		return ptr2(op, vm.Multiply)
	case opcode.MultiplyI:
		return ptr2(op, vm.MultiplyI)
	case opcode.Divide:
		return ptr2(op, vm.Divide)
	case opcode.Modulo:
		return ptr2(op, vm.Modulo)
	case opcode.LShift:
		return ptr2(op, vm.LShift)
	case opcode.RShift:
		return ptr2(op, vm.RShift)
	case opcode.URShift:
		return ptr2(op, vm.URShift)
	case opcode.BitAnd:
		return ptr2(op, vm.BitAnd)
	case opcode.BitOr:
		return ptr2(op, vm.BitOr)
	case opcode.BitXor:
		return ptr2(op, vm.BitXor)
	case opcode.Equals:
		return ptr2(op, vm.Equals)
	case opcode.StrictEquals:
		return ptr2(op, vm.StrictEquals)
	case opcode.LessThan:
		return ptr2(op, vm.LessThan)
	case opcode.LessEquals:
		return ptr2(op, vm.LessEquals)
	case opcode.GreaterThan:
		return ptr2(op, vm.GreaterThan)
	case opcode.GreaterEquals:
		return ptr2(op, vm.GreaterEquals)
	case opcode.In:
		return ptr2(op, vm.In)
	case opcode.InstanceOf:
		return throws(ptr2(op, vm.InstanceOf))
	case opcode.NextName:
		return ptr2(op, vm.NextName)
	case opcode.NextValue:
		return ptr2(op, vm.NextValue)

	case opcode.IfTrue:
		return branch1(op, vm.IfTrue)
	case opcode.IfFalse:
		return branch1(op, vm.IfFalse)

	case opcode.IfEq:
		return branch2(op, vm.IfEq)
	case opcode.IfNe:
		return branch2(op, vm.IfNE)
	case opcode.IfLT:
		return branch2(op, vm.IfLT)
	case opcode.IfNLT:
		return branch2(op, vm.IfNLT)
	case opcode.IfLE:
		return branch2(op, vm.IfLE)
	case opcode.IfNLE:
		return branch2(op, vm.IfNLE)
	case opcode.IfGT:
		return branch2(op, vm.IfGT)
	case opcode.IfNGT:
		return branch2(op, vm.IfNGT)
	case opcode.IfGE:
		return branch2(op, vm.IfGE)
	case opcode.IfNGE:
		return branch2(op, vm.IfNGE)
	case opcode.IfStrictEq:
		return branch2(op, vm.IfStrictEq)
	case opcode.IfStrictNe:
		return branch2(op, vm.IfStrictNE)

	case opcode.Jump:
		return Entry{Name: op.String(), Conv: Jump, Branch: true, Impl: vm.Jump}

	default:
		// Includes lookupswitch, which is left to the interpreter.
		return Entry{Name: op.String(), Conv: Unsupported}
	}
}
