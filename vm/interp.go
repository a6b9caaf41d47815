// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/internal/errorpanic"
	"gate.computer/abcjit/internal/loader"
	"gate.computer/abcjit/internal/module"
	"gate.computer/abcjit/object"
)

var binaryOps = map[opcode.Opcode]func(a, b object.Object) object.Object{
	opcode.Add:           Add,
	opcode.AddI:          AddI,
	opcode.Subtract:      Subtract,
	opcode.SubtractI:     SubtractI,
	opcode.Multiply:      Multiply,
	opcode.MultiplyI:     MultiplyI,
	opcode.Divide:        Divide,
	opcode.Modulo:        Modulo,
	opcode.BitAnd:        BitAnd,
	opcode.BitOr:         BitOr,
	opcode.BitXor:        BitXor,
	opcode.LShift:        LShift,
	opcode.RShift:        RShift,
	opcode.URShift:       URShift,
	opcode.Equals:        Equals,
	opcode.StrictEquals:  StrictEquals,
	opcode.LessThan:      LessThan,
	opcode.LessEquals:    LessEquals,
	opcode.GreaterThan:   GreaterThan,
	opcode.GreaterEquals: GreaterEquals,
	opcode.In:            In,
	opcode.InstanceOf:    InstanceOf,
	opcode.NextName:      NextName,
	opcode.NextValue:     NextValue,
}

var unaryOps = map[opcode.Opcode]func(x object.Object) object.Object{
	opcode.ConvertS:   ConvertS,
	opcode.ConvertI:   ConvertI,
	opcode.ConvertU:   ConvertU,
	opcode.ConvertD:   ConvertD,
	opcode.ConvertB:   ConvertB,
	opcode.ConvertO:   ConvertO,
	opcode.CoerceA:    CoerceA,
	opcode.CoerceS:    CoerceS,
	opcode.CoerceI:    ConvertI,
	opcode.CoerceU:    ConvertU,
	opcode.CoerceD:    ConvertD,
	opcode.CoerceB:    ConvertB,
	opcode.CoerceO:    CoerceO,
	opcode.Negate:     Negate,
	opcode.NegateI:    NegateI,
	opcode.Increment:  Increment,
	opcode.IncrementI: IncrementI,
	opcode.Decrement:  Decrement,
	opcode.DecrementI: DecrementI,
	opcode.TypeOf:     TypeOf,
	opcode.Not:        Not,
	opcode.BitNot:     BitNot,
}

var branchOps = map[opcode.Opcode]func(a, b object.Object) bool{
	opcode.IfEq:       IfEq,
	opcode.IfNe:       IfNE,
	opcode.IfLT:       IfLT,
	opcode.IfNLT:      IfNLT,
	opcode.IfLE:       IfLE,
	opcode.IfNLE:      IfNLE,
	opcode.IfGT:       IfGT,
	opcode.IfNGT:      IfNGT,
	opcode.IfGE:       IfGE,
	opcode.IfNGE:      IfNGE,
	opcode.IfStrictEq: IfStrictEq,
	opcode.IfStrictNe: IfStrictNE,
}

var constOps = map[opcode.Opcode]func(*Context) object.Object{
	opcode.PushNull:       PushNull,
	opcode.PushUndefined:  PushUndefined,
	opcode.PushTrue:       PushTrue,
	opcode.PushFalse:      PushFalse,
	opcode.PushNaN:        PushNaN,
	opcode.GetGlobalScope: GetGlobalScope,
}

var scopeOps = map[opcode.Opcode]func(*Context){
	opcode.PushScope: PushScope,
	opcode.PopScope:  PopScope,
	opcode.PushWith:  PushWith,
}

// nameOps take a multiname index.
var nameOps = map[opcode.Opcode]func(*Context, int32){
	opcode.FindPropStrict: FindPropStrict,
	opcode.FindProperty:   FindProperty,
	opcode.GetLex:         GetLex,
	opcode.GetProperty:    GetProperty,
	opcode.SetProperty:    SetProperty,
	opcode.InitProperty:   InitProperty,
	opcode.DeleteProperty: DeleteProperty,
}

// countOps take an argument count.
var countOps = map[opcode.Opcode]func(*Context, int32){
	opcode.Call:      Call,
	opcode.Construct: Construct,
	opcode.NewObject: NewObject,
	opcode.NewArray:  NewArray,
}

// nameCountOps take a multiname index and an argument count.
var nameCountOps = map[opcode.Opcode]func(*Context, int32, int32){
	opcode.CallProperty:  CallProperty,
	opcode.CallPropLex:   CallPropLex,
	opcode.CallPropVoid:  CallPropVoid,
	opcode.ConstructProp: ConstructProp,
}

// Interpret runs the method of a fresh context.  Method errors are returned;
// thrown script values propagate as *Exception panics.
func Interpret(ctx *Context) (result object.Object, err error) {
	defer func() {
		if x := recover(); x != nil {
			result = nil
			err = errorpanic.Handle(x)
		}
	}()

	BindArguments(ctx)
	result = interpret(ctx, loader.New(ctx.Method.Code))
	return
}

func interpret(ctx *Context, load *loader.L) object.Object {
	pool := ctx.Method.Constants()

	local := func() int {
		return int(load.Index(len(ctx.Locals), "local"))
	}

	fixedLocal := func(i opcode.Opcode) int {
		if int(i) >= len(ctx.Locals) {
			panic(module.Errorf("local index %d out of range", i))
		}
		return int(i)
	}

	setLocal := func(i int, x object.Object) {
		old := ctx.Locals[i]
		ctx.Locals[i] = x
		DecRefSafe(old)
	}

	branch := func(take bool) {
		offset := load.S24()
		if take {
			load.Seek(load.Tell() + int(offset))
		}
	}

	for {
		if load.EOF() {
			panic(module.Errorf("code falls off the end at offset %d", load.Tell()))
		}

		pos := load.Tell()
		op := opcode.Opcode(load.Byte())

		if f := binaryOps[op]; f != nil {
			b := pop(ctx)
			a := pop(ctx)
			push(ctx, f(a, b))
			continue
		}
		if f := unaryOps[op]; f != nil {
			push(ctx, f(pop(ctx)))
			continue
		}
		if f := branchOps[op]; f != nil {
			b := pop(ctx)
			a := pop(ctx)
			branch(f(a, b))
			continue
		}
		if f := constOps[op]; f != nil {
			push(ctx, f(ctx))
			continue
		}
		if f := scopeOps[op]; f != nil {
			f(ctx)
			continue
		}
		if f := nameOps[op]; f != nil {
			f(ctx, int32(load.Index(len(pool.Multinames), "multiname")))
			continue
		}
		if f := countOps[op]; f != nil {
			f(ctx, int32(load.U30()))
			continue
		}
		if f := nameCountOps[op]; f != nil {
			index := load.Index(len(pool.Multinames), "multiname")
			f(ctx, int32(index), int32(load.U30()))
			continue
		}

		switch op {
		case opcode.Nop, opcode.Label:

		case opcode.Debug:
			load.Byte()
			load.U30()
			load.Byte()
			load.U30()

		case opcode.DebugLine, opcode.DebugFile:
			load.U30()

		case opcode.PushByte:
			push(ctx, BoxInt(int32(int8(load.Byte()))))

		case opcode.PushShort:
			push(ctx, BoxInt(int32(int16(load.U30()))))

		case opcode.PushInt:
			push(ctx, PushInt(ctx, int32(load.Index(len(pool.Ints), "int"))))

		case opcode.PushUInt:
			push(ctx, PushUInt(ctx, int32(load.Index(len(pool.UInts), "uint"))))

		case opcode.PushDouble:
			push(ctx, PushDouble(ctx, int32(load.Index(len(pool.Doubles), "double"))))

		case opcode.PushString:
			push(ctx, PushString(ctx, int32(load.Index(len(pool.Strings), "string"))))

		case opcode.Pop:
			pop(ctx).DecRef()

		case opcode.Dup:
			x := pop(ctx)
			x.IncRef()
			push(ctx, x)
			push(ctx, x)

		case opcode.Swap:
			b := pop(ctx)
			a := pop(ctx)
			push(ctx, b)
			push(ctx, a)

		case opcode.GetLocal0, opcode.GetLocal1, opcode.GetLocal2, opcode.GetLocal3:
			x := ctx.Locals[fixedLocal(op-opcode.GetLocal0)]
			x.IncRef()
			push(ctx, x)

		case opcode.GetLocal:
			x := ctx.Locals[local()]
			x.IncRef()
			push(ctx, x)

		case opcode.SetLocal0, opcode.SetLocal1, opcode.SetLocal2, opcode.SetLocal3:
			setLocal(fixedLocal(op-opcode.SetLocal0), pop(ctx))

		case opcode.SetLocal:
			setLocal(local(), pop(ctx))

		case opcode.Kill:
			setLocal(local(), object.Undefined)

		case opcode.IncLocal, opcode.DecLocal, opcode.IncLocalI, opcode.DecLocalI:
			i := local()
			x := ctx.Locals[i]
			x.IncRef()
			setLocal(i, localStep[op](x))

		case opcode.GetScopeObject:
			GetScopeObject(ctx, int32(load.Byte()))

		case opcode.HasNext2:
			objectReg := local()
			indexReg := local()
			HasNext2(ctx, int32(objectReg), int32(indexReg))

		case opcode.Jump:
			offset := load.S24()
			Jump(ctx, offset)
			load.Seek(load.Tell() + int(offset))

		case opcode.IfTrue:
			branch(IfTrue(pop(ctx)))

		case opcode.IfFalse:
			branch(IfFalse(pop(ctx)))

		case opcode.LookupSwitch:
			lookupSwitch(ctx, load, pos)

		case opcode.Throw:
			Throw(pop(ctx))

		case opcode.ReturnVoid:
			return object.Undefined

		case opcode.ReturnValue:
			return pop(ctx)

		default:
			panic(&module.Unsupported{Opcode: byte(op), Offset: pos})
		}
	}
}

var localStep = map[opcode.Opcode]func(object.Object) object.Object{
	opcode.IncLocal:  Increment,
	opcode.DecLocal:  Decrement,
	opcode.IncLocalI: IncrementI,
	opcode.DecLocalI: DecrementI,
}

// lookupSwitch offsets are relative to the instruction itself.
func lookupSwitch(ctx *Context, load *loader.L, base int) {
	target := base + int(load.S24())

	n := load.Count(1<<20, "lookupswitch case")
	cases := make([]int32, n+1)
	for i := range cases {
		cases[i] = load.S24()
	}

	x := pop(ctx)
	i := object.ToInt32(x)
	x.DecRef()

	if i >= 0 && int(i) < len(cases) {
		target = base + int(cases[i])
	}
	load.Seek(target)
}
