// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abcjit

import (
	"fmt"

	"gate.computer/abcjit/abc"
	"gate.computer/abcjit/object"
	"gate.computer/abcjit/vm"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Engine runs methods, compiling them on first call.  It is safe for
// concurrent use.
type Engine struct {
	config Config
	log    zerolog.Logger
	global object.Object
	group  singleflight.Group
}

// NewEngine with a global object which may be nil.  The engine holds a
// reference to it.
func NewEngine(config Config, global object.Object) *Engine {
	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}

	if global == nil {
		global = object.Null
	}
	global.IncRef()

	return &Engine{
		config: config,
		log:    log,
		global: global,
	}
}

func (e *Engine) Global() object.Object {
	return e.global
}

// Close releases the global object.
func (e *Engine) Close() {
	e.global.DecRef()
	e.global = object.Null
}

// Compile returns the result published for the method, compiling it if
// nothing has been published.  Concurrent callers wait for a single
// compilation.
func (e *Engine) Compile(m *abc.Method) *Compiled {
	if x := m.JIT(); x != nil {
		return x.(*Compiled)
	}

	x, _, _ := e.group.Do(fmt.Sprintf("%p", m), func() (interface{}, error) {
		if x := m.JIT(); x != nil {
			return x, nil
		}
		return m.PublishJIT(compile(m, &e.config, e.log)), nil
	})
	return x.(*Compiled)
}

// Call a method.  The receiver and the arguments are borrowed.  The result
// is a new reference.  A thrown value is returned as *vm.Exception.
func (e *Engine) Call(m *abc.Method, this object.Object, args []object.Object) (result object.Object, err error) {
	c := e.Compile(m)

	ctx := vm.NewContext(m, this, args, e.global)
	defer ctx.Release()

	defer func() {
		if x := recover(); x != nil {
			exc, ok := x.(*vm.Exception)
			if !ok {
				panic(x)
			}
			result = nil
			err = exc
		}
	}()

	if c.Native == nil {
		return vm.Interpret(ctx)
	}

	result = c.Native(ctx.Locals, ctx.Stack, ctx)
	if result == nil {
		result = object.Undefined
	}
	return
}

// NewFunction wraps a method as a script function.  Calls to it propagate
// thrown values to the caller.
func (e *Engine) NewFunction(m *abc.Method) *object.Function {
	return object.NewFunction(m.Name, func(this object.Object, args []object.Object) object.Object {
		result, err := e.Call(m, this, args)
		if err != nil {
			if exc, ok := err.(*vm.Exception); ok {
				panic(exc)
			}
			vm.Throw(object.NewString("VerifyError: " + err.Error()))
		}
		return result
	})
}
