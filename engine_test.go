// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abcjit

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"gate.computer/abcjit/abc"
	"gate.computer/abcjit/abc/opcode"
	publicerrors "gate.computer/abcjit/errors"
	"gate.computer/abcjit/internal/test/asm"
	"gate.computer/abcjit/object"
	"gate.computer/abcjit/vm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type roundTrip struct {
	name   string
	method func() *abc.Method
	args   func() []object.Object
}

func noArgs() []object.Object { return nil }

func ints(xs ...int32) func() []object.Object {
	return func() (args []object.Object) {
		for _, x := range xs {
			args = append(args, object.NewInteger(x))
		}
		return
	}
}

var roundTrips = []roundTrip{
	{"add", func() *abc.Method {
		return asm.New().
			PushByte(3).PushByte(5).Op(opcode.Add).
			Op(opcode.ReturnValue).
			Method("add", 0, 0, 2)
	}, noArgs},

	{"loop", func() *abc.Method {
		return asm.New().
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
	}, noArgs},

	{"bitand", func() *abc.Method {
		return asm.New().
			PushByte(12).Op(opcode.GetLocal1).Op(opcode.BitAnd).
			Op(opcode.GetLocal1).PushByte(6).Op(opcode.BitAnd).
			Op(opcode.BitOr).
			Op(opcode.ReturnValue).
			Method("bitand", 1, 0, 3)
	}, ints(10)},

	{"urshift", func() *abc.Method {
		return asm.New().
			PushByte(-16).Op(opcode.GetLocal1).Op(opcode.URShift).
			Op(opcode.ReturnValue).
			Method("urshift", 1, 0, 2)
	}, ints(28)},

	{"concat", func() *abc.Method {
		m := asm.New().
			Op(opcode.PushString, 0).Op(opcode.GetLocal1).Op(opcode.Add).
			Op(opcode.GetLocal2).Op(opcode.Add).
			Op(opcode.ReturnValue).
			Method("concat", 2, 0, 2)
		m.Pool.Strings = []string{"a"}
		return m
	}, func() []object.Object {
		return []object.Object{object.NewInteger(1), object.NewNumber(2.5)}
	}},

	{"compare nan", func() *abc.Method {
		return asm.New().
			Op(opcode.GetLocal1).Op(opcode.GetLocal2).Branch(opcode.IfNGT, "not").
			PushByte(1).Op(opcode.ReturnValue).
			Label("not").
			PushByte(0).Op(opcode.ReturnValue).
			Method("cmp", 2, 0, 2)
	}, func() []object.Object {
		return []object.Object{object.NewNumber(math.NaN()), object.NewInteger(1)}
	}},

	{"object", func() *abc.Method {
		m := asm.New().
			Op(opcode.PushString, 0).PushByte(7).Op(opcode.NewObject, 1).
			Op(opcode.Dup).
			Op(opcode.GetLocal1).Op(opcode.SetProperty, 1).
			Op(opcode.Dup).Op(opcode.GetProperty, 0).
			Op(opcode.Swap).Op(opcode.GetProperty, 1).
			Op(opcode.Subtract).
			Op(opcode.ReturnValue).
			Method("object", 1, 0, 4)
		m.Pool.Strings = []string{"x"}
		m.Pool.Multinames = []abc.Multiname{{Name: "x"}, {Name: "y"}}
		return m
	}, ints(3)},

	{"enumerate", func() *abc.Method {
		return asm.New().
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
	}, func() []object.Object {
		o := object.NewObject()
		object.SetProperty(o, "a", object.NewInteger(1))
		object.SetProperty(o, "b", object.NewInteger(2))
		object.SetProperty(o, "c", object.NewInteger(3))
		return []object.Object{o}
	}},

	{"array", func() *abc.Method {
		return asm.New().
			Op(opcode.GetLocal1).PushShort(-300).Op(opcode.PushNull).
			Op(opcode.NewArray, 3).
			Op(opcode.ConvertS).
			Op(opcode.ReturnValue).
			Method("array", 1, 0, 3)
	}, ints(1)},

	{"kill", func() *abc.Method {
		return asm.New().
			Op(opcode.GetLocal1).Op(opcode.SetLocal2).
			Op(opcode.Kill, 1).
			Op(opcode.GetLocal1).Op(opcode.TypeOf).
			Op(opcode.GetLocal2).Op(opcode.TypeOf).
			Op(opcode.Add).
			Op(opcode.ReturnValue).
			Method("kill", 1, 1, 2)
	}, ints(5)},

	{"int steps", func() *abc.Method {
		return asm.New().
			PushByte(127).Op(opcode.IncrementI).Op(opcode.CoerceI).
			Op(opcode.GetLocal1).Op(opcode.DecrementI).
			Op(opcode.MultiplyI).
			Op(opcode.DecLocal, 1).
			Op(opcode.GetLocal1).
			Op(opcode.AddI).
			Op(opcode.ReturnValue).
			Method("steps", 1, 0, 2)
	}, func() []object.Object {
		return []object.Object{object.NewNumber(2.5)}
	}},

	{"not", func() *abc.Method {
		return asm.New().
			Op(opcode.GetLocal1).Op(opcode.Not).
			Branch(opcode.IfFalse, "no").
			Op(opcode.PushTrue).Op(opcode.ReturnValue).
			Label("no").
			Op(opcode.PushUndefined).Op(opcode.PushNull).Branch(opcode.IfStrictEq, "no2").
			Op(opcode.PushNaN).Op(opcode.ReturnValue).
			Label("no2").
			Op(opcode.ReturnVoid).
			Method("not", 1, 0, 2)
	}, ints(0)},

	{"leftovers", func() *abc.Method {
		return asm.New().
			Op(opcode.GetLocal1).Op(opcode.GetLocal1).PushByte(4).
			Op(opcode.ReturnVoid).
			Method("leftovers", 1, 0, 3)
	}, func() []object.Object {
		return []object.Object{object.NewString("s")}
	}},
}

type outcome struct {
	typ       object.Type
	text      string
	argCounts []int32
}

func runRoundTrip(t *testing.T, rt roundTrip, enabled bool) outcome {
	t.Helper()

	e := NewEngine(Config{Enabled: enabled}, nil)
	defer e.Close()

	m := rt.method()
	args := rt.args()

	result, err := e.Call(m, object.Undefined, args)
	require.NoError(t, err)
	defer result.DecRef()

	c := e.Compile(m)
	if enabled {
		require.NoError(t, c.Err)
		require.NotNil(t, c.Native)
	} else {
		require.Equal(t, ErrDisabled, c.Err)
	}

	o := outcome{
		typ:  result.Type(),
		text: object.ToString(result),
	}
	for _, x := range args {
		o.argCounts = append(o.argCounts, x.RefCount())
		x.DecRef()
	}
	return o
}

func TestRoundTrip(t *testing.T) {
	for _, rt := range roundTrips {
		t.Run(rt.name, func(t *testing.T) {
			interpreted := runRoundTrip(t, rt, false)
			compiled := runRoundTrip(t, rt, true)

			assert.Equal(t, interpreted, compiled)
			for i, n := range compiled.argCounts {
				assert.EqualValues(t, 1, n, "argument %d", i)
			}
		})
	}
}

func TestRoundTripValues(t *testing.T) {
	expect := map[string]string{
		"add":         "8",
		"loop":        "45",
		"bitand":      "10",
		"urshift":     "15",
		"concat":      "a12.5",
		"compare nan": "0",
		"object":      "4",
		"enumerate":   "6",
		"array":       "1,-300,",
		"kill":        "undefinednumber",
		"int steps":   "129",
		"not":         "true",
		"leftovers":   "undefined",
	}

	for _, rt := range roundTrips {
		o := runRoundTrip(t, rt, true)
		assert.Equal(t, expect[rt.name], o.text, rt.name)
	}
}

func TestLazyCompile(t *testing.T) {
	e := NewEngine(Config{Enabled: true}, nil)
	defer e.Close()

	m := roundTrips[0].method()
	assert.Nil(t, m.JIT())

	result, err := e.Call(m, object.Undefined, nil)
	require.NoError(t, err)
	result.DecRef()

	c, ok := m.JIT().(*Compiled)
	require.True(t, ok)
	assert.NotNil(t, c.Native)
	assert.Same(t, c, e.Compile(m))
}

func TestConcurrentCompile(t *testing.T) {
	engines := []*Engine{
		NewEngine(Config{Enabled: true}, nil),
		NewEngine(Config{Enabled: true}, nil),
	}

	for round := 0; round < 10; round++ {
		m := roundTrips[1].method()
		results := make([]*Compiled, 32)

		var g errgroup.Group
		for i := range results {
			i := i
			g.Go(func() error {
				results[i] = engines[i%len(engines)].Compile(m)
				return nil
			})
		}
		require.NoError(t, g.Wait())

		for _, c := range results {
			assert.Same(t, results[0], c)
		}
		assert.Same(t, results[0], m.JIT())
	}
}

func TestConcurrentCalls(t *testing.T) {
	e := NewEngine(Config{Enabled: true}, nil)
	defer e.Close()

	m := roundTrips[7].method()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			args := roundTrips[7].args()
			result, err := e.Call(m, object.Undefined, args)
			if assert.NoError(t, err) {
				assert.Equal(t, "6", object.ToString(result))
				result.DecRef()
			}
			assert.EqualValues(t, 1, args[0].RefCount())
		}()
	}
	wg.Wait()
}

func TestFallback(t *testing.T) {
	var logged bytes.Buffer
	log := zerolog.New(&logged)

	e := NewEngine(Config{Enabled: true, Logger: &log}, nil)
	defer e.Close()

	m := asm.New().
		Op(opcode.GetLocal1).
		LookupSwitch("default", "zero", "one").
		Label("zero").
		PushByte(10).Op(opcode.ReturnValue).
		Label("one").
		PushByte(11).Op(opcode.ReturnValue).
		Label("default").
		PushByte(12).Op(opcode.ReturnValue).
		Method("switch", 1, 0, 1)

	for arg, expect := range []string{"10", "11", "12"} {
		result, err := e.Call(m, object.Undefined, []object.Object{object.NewInteger(int32(arg))})
		require.NoError(t, err)
		assert.Equal(t, expect, object.ToString(result))
		result.DecRef()
	}

	c := e.Compile(m)
	assert.Nil(t, c.Native)
	assert.True(t, publicerrors.IsUnsupported(c.Err))
	assert.Contains(t, logged.String(), "unsupported opcode")
	assert.Contains(t, logged.String(), c.ID.String())
}

func TestMaxCodeSize(t *testing.T) {
	e := NewEngine(Config{Enabled: true, MaxCodeSize: 4}, nil)
	defer e.Close()

	m := roundTrips[1].method()
	c := e.Compile(m)
	assert.Nil(t, c.Native)
	assert.True(t, publicerrors.IsMethodError(c.Err))

	result, err := e.Call(m, object.Undefined, nil)
	require.NoError(t, err)
	assert.Equal(t, "45", object.ToString(result))
}

func TestMalformedMethod(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		e := NewEngine(Config{Enabled: enabled}, nil)

		m := asm.New().PushByte(1).Method("end", 0, 0, 1)
		_, err := e.Call(m, object.Undefined, nil)
		assert.True(t, publicerrors.IsMethodError(err), "enabled=%v: %v", enabled, err)

		e.Close()
	}
}

func TestException(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		e := NewEngine(Config{Enabled: enabled}, nil)

		m := asm.New().
			Op(opcode.GetLocal1).
			Op(opcode.PushString, 0).
			Op(opcode.GetLocal1).
			Op(opcode.Add).
			Op(opcode.Throw).
			Method("throw", 1, 0, 3)
		m.Pool.Strings = []string{"boom "}

		arg := object.NewString("x")
		_, err := e.Call(m, object.Undefined, []object.Object{arg})

		exc, ok := err.(*vm.Exception)
		if assert.True(t, ok, "enabled=%v: %v", enabled, err) {
			assert.Equal(t, "boom x", object.ToString(exc.Value))
			exc.Value.DecRef()
		}
		assert.EqualValues(t, 1, arg.RefCount(), "enabled=%v", enabled)

		e.Close()
	}
}

func TestHelperException(t *testing.T) {
	methods := map[string]*asm.A{
		"convert_o": asm.New().
			Op(opcode.GetLocal1).
			Op(opcode.SetLocal2).
			Op(opcode.GetLocal1).
			Op(opcode.PushNull).
			Op(opcode.ConvertO).
			Op(opcode.ReturnValue),
		"instanceof": asm.New().
			Op(opcode.GetLocal1).
			Op(opcode.SetLocal2).
			Op(opcode.GetLocal1).
			Op(opcode.GetLocal1).
			Op(opcode.GetLocal1).
			Op(opcode.InstanceOf).
			Op(opcode.ReturnValue),
	}

	for name, code := range methods {
		for _, enabled := range []bool{false, true} {
			e := NewEngine(Config{Enabled: enabled}, nil)
			m := code.Method(name, 1, 1, 3)

			arg := object.NewObject()
			_, err := e.Call(m, object.Undefined, []object.Object{arg})

			exc, ok := err.(*vm.Exception)
			if assert.True(t, ok, "%s enabled=%v: %v", name, enabled, err) {
				assert.Contains(t, object.ToString(exc.Value), "TypeError", name)
				exc.Value.DecRef()
			}
			assert.EqualValues(t, 1, arg.RefCount(), "%s enabled=%v", name, enabled)
			if enabled {
				assert.NotNil(t, e.Compile(m).Native, name)
			}

			arg.DecRef()
			e.Close()
		}
	}
}

func TestNewFunction(t *testing.T) {
	global := object.NewObject()
	e := NewEngine(Config{Enabled: true}, global)
	global.DecRef()
	defer e.Close()

	double := asm.New().
		Op(opcode.GetLocal1).Op(opcode.Dup).Op(opcode.Add).
		Op(opcode.ReturnValue).
		Method("double", 1, 0, 2)
	object.SetProperty(e.Global(), "double", e.NewFunction(double))

	caller := asm.New().
		Op(opcode.FindPropStrict, 0).
		Op(opcode.GetLocal1).
		Op(opcode.CallProperty, 0, 1).
		Op(opcode.FindPropStrict, 0).
		Op(opcode.Swap).
		Op(opcode.CallProperty, 0, 1).
		Op(opcode.ReturnValue).
		Method("caller", 1, 0, 3)
	caller.Pool.Multinames = []abc.Multiname{{Name: "double"}}

	result, err := e.Call(caller, object.Undefined, []object.Object{object.NewInteger(5)})
	require.NoError(t, err)
	assert.Equal(t, "20", object.ToString(result))

	assert.NotNil(t, e.Compile(double).Native)
	assert.NotNil(t, e.Compile(caller).Native)
}

func TestDumpIR(t *testing.T) {
	var dump bytes.Buffer

	e := NewEngine(Config{Enabled: true, DumpIR: &dump}, nil)
	defer e.Close()

	m := roundTrips[0].method()
	result, err := e.Call(m, object.Undefined, nil)
	require.NoError(t, err)
	result.DecRef()

	assert.Contains(t, dump.String(), "func add(")
	assert.Contains(t, dump.String(), "call bindArguments")
}
