// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm_test

import (
	"testing"

	"gate.computer/abcjit/abc"
	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/internal/module"
	"gate.computer/abcjit/internal/test/asm"
	"gate.computer/abcjit/object"
	"gate.computer/abcjit/vm"
	"golang.org/x/xerrors"
)

func run(t *testing.T, m *abc.Method, global object.Object, args ...object.Object) (object.Object, *vm.Context) {
	t.Helper()

	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}

	ctx := vm.NewContext(m, object.Undefined, args, global)
	result, err := vm.Interpret(ctx)
	if err != nil {
		t.Fatal(err)
	}
	ctx.Release()
	return result, ctx
}

func expectInt(t *testing.T, x object.Object, expect int32) {
	t.Helper()
	defer x.DecRef()

	if i, ok := x.(*object.Integer); !ok || i.Val != expect {
		t.Fatalf("result %s %s, expected int %d", x.Type(), object.ToString(x), expect)
	}
}

func TestAdd(t *testing.T) {
	m := asm.New().
		PushByte(5).
		PushByte(3).
		Op(opcode.Add).
		Op(opcode.ReturnValue).
		Method("add", 0, 0, 2)

	result, _ := run(t, m, nil)
	expectInt(t, result, 8)
}

func TestLoop(t *testing.T) {
	m := asm.New().
		PushByte(0).Op(opcode.SetLocal1).
		PushByte(0).Op(opcode.SetLocal2).
		Branch(opcode.Jump, "cond").
		Label("loop").
		Op(opcode.GetLocal2).Op(opcode.GetLocal1).Op(opcode.Add).Op(opcode.SetLocal2).
		Op(opcode.IncLocalI, 1).
		Mark("cond").
		Op(opcode.GetLocal1).PushByte(10).Branch(opcode.IfLT, "loop").
		Op(opcode.GetLocal2).
		Op(opcode.ReturnValue).
		Method("loop", 0, 2, 2)

	result, ctx := run(t, m, nil)
	expectInt(t, result, 45)

	if ctx.Jumps != 1 {
		t.Error("jumps:", ctx.Jumps)
	}
}

func TestCallProperty(t *testing.T) {
	twice := object.NewFunction("twice", func(this object.Object, args []object.Object) object.Object {
		return object.NewInteger(2 * object.ToInt32(args[0]))
	})

	global := object.NewObject()
	object.SetProperty(global, "twice", twice)
	defer global.DecRef()

	m := asm.New().
		Op(opcode.FindPropStrict, 0).
		Op(opcode.GetLocal1).
		Op(opcode.CallProperty, 0, 1).
		Op(opcode.ReturnValue).
		Method("call", 1, 0, 3)
	m.Pool.Multinames = []abc.Multiname{{Name: "twice"}}

	arg := object.NewNumber(21)
	defer arg.DecRef()

	result, _ := run(t, m, global, arg)
	expectInt(t, result, 42)

	if n := arg.RefCount(); n != 1 {
		t.Error("argument reference count:", n)
	}
	if n := twice.RefCount(); n != 1 {
		t.Error("function reference count:", n)
	}
}

func TestThrow(t *testing.T) {
	m := asm.New().
		Op(opcode.PushString, 0).
		Op(opcode.Throw).
		Method("throw", 0, 0, 1)
	m.Pool.Strings = []string{"boom"}

	defer func() {
		e, ok := recover().(*vm.Exception)
		if !ok {
			t.Fatal("no exception")
		}
		if s := object.ToString(e.Value); s != "boom" {
			t.Error(s)
		}
	}()

	vm.Interpret(vm.NewContext(m, object.Undefined, nil, nil))
}

func TestLookupSwitch(t *testing.T) {
	a := asm.New().
		Op(opcode.GetLocal1).
		LookupSwitch("default", "c0", "c1").
		Mark("c0").PushByte(10).Op(opcode.ReturnValue).
		Mark("c1").PushByte(11).Op(opcode.ReturnValue).
		Mark("default").PushByte(-1).Op(opcode.ReturnValue)

	for i, expect := range []int32{10, 11, -1} {
		result, _ := run(t, a.Method("switch", 1, 0, 1), nil, object.NewInteger(int32(i)))
		expectInt(t, result, expect)
	}
}

func TestHasNext2(t *testing.T) {
	o := object.NewObject()
	defer o.DecRef()
	for i, k := range []string{"a", "b", "c"} {
		object.SetProperty(o, k, object.NewInteger(int32(i+1)))
	}

	m := asm.New().
		PushByte(0).Op(opcode.SetLocal2).
		PushByte(0).Op(opcode.SetLocal3).
		Branch(opcode.Jump, "cond").
		Label("loop").
		Op(opcode.GetLocal3).
		Op(opcode.GetLocal1).Op(opcode.GetLocal2).Op(opcode.NextValue).
		Op(opcode.Add).
		Op(opcode.SetLocal3).
		Mark("cond").
		Op(opcode.HasNext2, 1, 2).
		Branch(opcode.IfTrue, "loop").
		Op(opcode.GetLocal3).
		Op(opcode.ReturnValue).
		Method("sum", 1, 2, 3)

	result, _ := run(t, m, nil, o)
	expectInt(t, result, 6)

	if n := o.RefCount(); n != 1 {
		t.Error("object reference count:", n)
	}
}

func TestBindRest(t *testing.T) {
	m := asm.New().
		Op(opcode.GetLocal2).
		Op(opcode.GetProperty, 0).
		Op(opcode.ReturnValue).
		Method("rest", 1, 1, 1)
	m.Flags = abc.NeedRest
	m.Pool.Multinames = []abc.Multiname{{Name: "length"}}

	result, _ := run(t, m, nil, object.True, object.False, object.Null)
	expectInt(t, result, 2)
}

func TestUnsupported(t *testing.T) {
	m := asm.New().
		Op(opcode.GetSlot, 1).
		Op(opcode.ReturnValue).
		Method("slot", 0, 0, 1)

	ctx := vm.NewContext(m, object.Undefined, nil, nil)
	defer ctx.Release()

	_, err := vm.Interpret(ctx)

	var e *module.Unsupported
	if !xerrors.As(err, &e) {
		t.Fatal(err)
	}
	if e.Opcode != byte(opcode.GetSlot) || e.Offset != 0 {
		t.Error(e)
	}
}

func TestFallOffEnd(t *testing.T) {
	m := asm.New().PushByte(1).Method("end", 0, 0, 1)

	ctx := vm.NewContext(m, object.Undefined, nil, nil)
	defer ctx.Release()

	if _, err := vm.Interpret(ctx); err == nil {
		t.Fatal("no error")
	}
}
