// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"fmt"
	"sort"
	"strings"

	"gate.computer/abcjit/object"
	"gate.computer/abcjit/vm"
	"github.com/pkg/errors"
)

type Signature struct {
	Params []Type
	Result Type
}

func Sig(result Type, params ...Type) Signature {
	return Signature{params, result}
}

func (sig Signature) Equal(other Signature) bool {
	if sig.Result != other.Result || len(sig.Params) != len(other.Params) {
		return false
	}
	for i, t := range sig.Params {
		if other.Params[i] != t {
			return false
		}
	}
	return true
}

func (sig Signature) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, t := range sig.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteString(") ")
	b.WriteString(sig.Result.String())
	return b.String()
}

// word is a register of a lowered function.  Only the field matching the
// value's type is used.
type word struct {
	o object.Object
	i int64
	s []object.Object
	c *vm.Context
}

// Helper is a native routine callable from compiled code.
type Helper struct {
	Name string
	Sig  Signature

	call func(args []word) word
}

// Bound reports whether an implementation has been bound.
func (h *Helper) Bound() bool {
	return h.call != nil
}

func b2i(b bool) (i int64) {
	if b {
		i = 1
	}
	return
}

// adapt the closed set of supported Go function shapes.
func adapt(impl interface{}) (sig Signature, call func([]word) word, ok bool) {
	ok = true

	switch f := impl.(type) {
	case func(*vm.Context):
		sig = Sig(Void, Context)
		call = func(a []word) word {
			f(a[0].c)
			return word{}
		}

	case func(*vm.Context, int32):
		sig = Sig(Void, Context, Int)
		call = func(a []word) word {
			f(a[0].c, int32(a[1].i))
			return word{}
		}

	case func(*vm.Context, int32, int32):
		sig = Sig(Void, Context, Int, Int)
		call = func(a []word) word {
			f(a[0].c, int32(a[1].i), int32(a[2].i))
			return word{}
		}

	case func(*vm.Context) object.Object:
		sig = Sig(Object, Context)
		call = func(a []word) word { return word{o: f(a[0].c)} }

	case func(*vm.Context, int32) object.Object:
		sig = Sig(Object, Context, Int)
		call = func(a []word) word { return word{o: f(a[0].c, int32(a[1].i))} }

	case func(object.Object):
		sig = Sig(Void, Object)
		call = func(a []word) word {
			f(a[0].o)
			return word{}
		}

	case func(object.Object) object.Object:
		sig = Sig(Object, Object)
		call = func(a []word) word { return word{o: f(a[0].o)} }

	case func(object.Object, object.Object) object.Object:
		sig = Sig(Object, Object, Object)
		call = func(a []word) word { return word{o: f(a[0].o, a[1].o)} }

	case func(object.Object) bool:
		sig = Sig(Bool, Object)
		call = func(a []word) word { return word{i: b2i(f(a[0].o))} }

	case func(object.Object, object.Object) bool:
		sig = Sig(Bool, Object, Object)
		call = func(a []word) word { return word{i: b2i(f(a[0].o, a[1].o))} }

	case func(int32) object.Object:
		sig = Sig(Object, Int)
		call = func(a []word) word { return word{o: f(int32(a[0].i))} }

	case func(int32, int32) int32:
		sig = Sig(Int, Int, Int)
		call = func(a []word) word { return word{i: int64(f(int32(a[0].i), int32(a[1].i)))} }

	case func(object.Object, int32) int32:
		sig = Sig(Int, Object, Int)
		call = func(a []word) word { return word{i: int64(f(a[0].o, int32(a[1].i)))} }

	case func(int32, object.Object) object.Object:
		sig = Sig(Object, Int, Object)
		call = func(a []word) word { return word{o: f(int32(a[0].i), a[1].o)} }

	default:
		ok = false
	}
	return
}

// Module is the symbol table of helper routines.
type Module struct {
	helpers map[string]*Helper
	frozen  bool
}

func NewModule() *Module {
	return &Module{helpers: make(map[string]*Helper)}
}

// Declare a helper signature.  Declaring a name twice with a different
// signature, or after Freeze, is a programming error.
func (m *Module) Declare(name string, sig Signature) *Helper {
	if m.frozen {
		panic(fmt.Sprintf("backend: declaring %s in frozen module", name))
	}
	if h := m.helpers[name]; h != nil {
		if !h.Sig.Equal(sig) {
			panic(fmt.Sprintf("backend: %s redeclared as %s (was %s)", name, sig, h.Sig))
		}
		return h
	}

	h := &Helper{Name: name, Sig: sig}
	m.helpers[name] = h
	return h
}

// Bind an implementation to a declared helper.  The implementation must be
// one of the supported function shapes and match the declared signature.
func (m *Module) Bind(name string, impl interface{}) error {
	if m.frozen {
		return errors.Errorf("backend: binding %s in frozen module", name)
	}

	h := m.helpers[name]
	if h == nil {
		return errors.Errorf("backend: %s is not declared", name)
	}

	sig, call, ok := adapt(impl)
	if !ok {
		return errors.Errorf("backend: %s implementation has unsupported type %T", name, impl)
	}
	if !sig.Equal(h.Sig) {
		return errors.Errorf("backend: %s implementation signature %s does not match declaration %s", name, sig, h.Sig)
	}

	h.call = call
	return nil
}

// Helper looks up a declared helper, or returns nil.
func (m *Module) Helper(name string) *Helper {
	return m.helpers[name]
}

// Names of the declared helpers in sorted order.
func (m *Module) Names() []string {
	names := make([]string, 0, len(m.helpers))
	for name := range m.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Freeze makes the module read-only.  Every helper must be bound.
func (m *Module) Freeze() error {
	for _, name := range m.Names() {
		if !m.helpers[name].Bound() {
			return errors.Errorf("backend: %s is declared but not bound", name)
		}
	}
	m.frozen = true
	return nil
}
