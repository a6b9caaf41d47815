// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"bytes"
	"strings"
	"testing"

	"gate.computer/abcjit/object"
	"gate.computer/abcjit/trap"
	"gate.computer/abcjit/vm"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

func testModule(t *testing.T) *Module {
	t.Helper()

	m := NewModule()
	m.Declare("box", Sig(Object, Int))
	m.Declare("add", Sig(Object, Object, Object))
	m.Declare("truthy", Sig(Bool, Object))

	for name, impl := range map[string]interface{}{
		"box":    vm.BoxInt,
		"add":    vm.Add,
		"truthy": vm.IfTrue,
	} {
		if err := m.Bind(name, impl); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Freeze(); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestBindRejects(t *testing.T) {
	m := NewModule()
	m.Declare("f", Sig(Object, Object))

	if err := m.Bind("f", func(string) {}); err == nil {
		t.Error("unsupported shape accepted")
	}
	if err := m.Bind("f", vm.BoxInt); err == nil {
		t.Error("mismatching signature accepted")
	}
	if err := m.Bind("g", vm.Not); err == nil {
		t.Error("undeclared helper accepted")
	}
	if err := m.Freeze(); err == nil {
		t.Error("unbound helper frozen")
	}
	if err := m.Bind("f", vm.Not); err != nil {
		t.Error(err)
	}
}

func TestFrozenDeclare(t *testing.T) {
	m := NewModule()
	if err := m.Freeze(); err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	m.Declare("late", Sig(Void))
}

func TestVerify(t *testing.T) {
	fn := NewFunction("bad")
	b := NewBuilder(fn)

	b.SetInsertPoint(b.NewBlock("unterminated"))
	b.ConstInt(1)

	b.SetInsertPoint(b.NewBlock("twice"))
	b.RetVoid()
	b.RetVoid()

	b.SetInsertPoint(b.NewBlock("after"))
	b.RetVoid()
	b.ConstInt(2)

	b.SetInsertPoint(b.NewBlock("target"))
	b.Br(BlockID(99))

	b.SetInsertPoint(b.NewBlock("type"))
	b.Ret(b.ConstInt(3))

	err := Verify(fn)

	var merr *multierror.Error
	if !xerrors.As(err, &merr) {
		t.Fatal(err)
	}
	if n := len(merr.Errors); n != 5 {
		t.Fatal(n, err)
	}
	for _, name := range []string{"unterminated", "twice", "after", "target", "type"} {
		if !strings.Contains(err.Error(), "block "+name) {
			t.Error(name)
		}
	}

	if _, err := Lower(fn); err == nil {
		t.Error("lowered invalid function")
	}
}

// build: return add(box(x), locals[0]) if truthy(locals[0]), else undefined.
func build(m *Module, x int64) *Function {
	fn := NewFunction("test")
	b := NewBuilder(fn)

	entry := b.NewBlock("entry")
	then := b.NewBlock("then")
	els := b.NewBlock("else")

	b.SetInsertPoint(entry)
	locals := b.LoadField(ParamContext, FieldLocals)
	elem := b.LoadElem(locals, b.ConstInt(0))
	cond := b.Call(m.Helper("truthy"), elem)
	b.CondBr(cond, then, els)

	b.SetInsertPoint(then)
	elem = b.LoadElem(ParamLocals, b.ConstInt(0))
	sum := b.Call(m.Helper("add"), b.Call(m.Helper("box"), b.AddInt(b.ConstInt(x), b.ConstInt(1))), elem)
	b.Ret(sum)

	b.SetInsertPoint(els)
	b.RetVoid()

	return fn
}

func TestLower(t *testing.T) {
	m := testModule(t)

	native, err := Lower(build(m, 41))
	if err != nil {
		t.Fatal(err)
	}

	call := func(x object.Object) object.Object {
		locals := []object.Object{x}
		return native(locals, nil, &vm.Context{Locals: locals})
	}

	if x := call(object.NewInteger(0)); x != object.Undefined {
		t.Error(object.ToString(x))
	}

	// truthy and add consume one reference each.
	n := object.NewInteger(100)
	n.IncRef()
	if x := object.ToInt32(call(n)); x != 142 {
		t.Error(x)
	}
}

func TestAddIntWraps(t *testing.T) {
	fn := NewFunction("wrap")
	b := NewBuilder(fn)
	m := testModule(t)

	b.SetInsertPoint(b.NewBlock("entry"))
	x := b.AddInt(b.ConstInt(0x7fffffff), b.ConstInt(1))
	b.Ret(b.Call(m.Helper("box"), x))

	native, err := Lower(fn)
	if err != nil {
		t.Fatal(err)
	}
	if x := object.ToInt32(native(nil, nil, &vm.Context{})); x != -0x80000000 {
		t.Error(x)
	}
}

func TestStackIndex(t *testing.T) {
	fn := NewFunction("push")
	b := NewBuilder(fn)
	m := testModule(t)

	b.SetInsertPoint(b.NewBlock("entry"))
	index := b.LoadField(ParamContext, FieldStackIndex)
	b.StoreElem(ParamStack, index, b.Call(m.Helper("box"), b.ConstInt(7)))
	b.StoreField(ParamContext, FieldStackIndex, b.AddInt(index, b.ConstInt(1)))
	b.RetVoid()

	native, err := Lower(fn)
	if err != nil {
		t.Fatal(err)
	}

	stack := make([]object.Object, 2)
	ctx := &vm.Context{Stack: stack, StackIndex: 1}
	native(nil, stack, ctx)

	if ctx.StackIndex != 2 || object.ToInt32(stack[1]) != 7 {
		t.Error(ctx.StackIndex, stack)
	}
}

func TestTrap(t *testing.T) {
	fn := NewFunction("trap")
	b := NewBuilder(fn)

	b.SetInsertPoint(b.NewBlock("entry"))
	b.Trap(trap.Unsupported, 0x1b, 12)

	native, err := Lower(fn)
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		e, ok := recover().(*trap.Error)
		if !ok || e.ID != trap.Unsupported || e.Opcode != 0x1b || e.Offset != 12 {
			t.Error(e)
		}
	}()
	native(nil, nil, &vm.Context{})
}

func TestDump(t *testing.T) {
	fn := build(testModule(t), 1)

	var buf bytes.Buffer
	if err := fn.Dump(&buf); err != nil {
		t.Fatal(err)
	}

	s := buf.String()
	for _, sub := range []string{"b0 entry:", "call truthy v", "condbr v", "b1, b2", "ret.void", "add.int"} {
		if !strings.Contains(s, sub) {
			t.Errorf("%q not in dump:\n%s", sub, s)
		}
	}
}
