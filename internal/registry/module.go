// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"sync"

	"gate.computer/abcjit/abc/opcode"
	"gate.computer/abcjit/backend"
	"gate.computer/abcjit/vm"
	"github.com/pkg/errors"
)

// Names of helpers which don't implement an opcode.
const (
	BoxInt        = "box_i"
	IncRef        = "incRef"
	DecRef        = "decRef"
	DecRefSafe    = "decRefSafe"
	BitAndII      = "bitand_ii"
	BitAndOI      = "bitand_oi"
	LShiftIO      = "lshift_io"
	RShiftIO      = "rshift_io"
	URShiftIO     = "urshift_io"
	ThrowValue    = "throwValue"
	BindArguments = "bindArguments"
)

type auxiliary struct {
	name string
	sig  backend.Signature
	impl interface{}
}

var auxiliaries = []auxiliary{
	{BoxInt, backend.Sig(backend.Object, backend.Int), vm.BoxInt},
	{IncRef, backend.Sig(backend.Void, backend.Object), vm.IncRef},
	{DecRef, backend.Sig(backend.Void, backend.Object), vm.DecRef},
	{DecRefSafe, backend.Sig(backend.Void, backend.Object), vm.DecRefSafe},
	{BitAndII, backend.Sig(backend.Int, backend.Int, backend.Int), vm.BitAndII},
	{BitAndOI, backend.Sig(backend.Int, backend.Object, backend.Int), vm.BitAndOI},
	{LShiftIO, backend.Sig(backend.Object, backend.Int, backend.Object), vm.LShiftIO},
	{RShiftIO, backend.Sig(backend.Object, backend.Int, backend.Object), vm.RShiftIO},
	{URShiftIO, backend.Sig(backend.Object, backend.Int, backend.Object), vm.URShiftIO},
	{ThrowValue, backend.Sig(backend.Void, backend.Object), vm.Throw},
	{BindArguments, backend.Sig(backend.Void, backend.Context), vm.BindArguments},
}

// Register declares and binds every helper.
func Register(m *backend.Module) error {
	for i := 0; i < 256; i++ {
		e := Lookup(opcode.Opcode(i))

		sig, ok := e.Conv.Signature()
		if !ok {
			continue
		}

		m.Declare(e.Name, sig)
		if err := m.Bind(e.Name, e.Impl); err != nil {
			return errors.Wrapf(err, "opcode %s", e.Name)
		}
	}

	for _, a := range auxiliaries {
		m.Declare(a.name, a.sig)
		if err := m.Bind(a.name, a.impl); err != nil {
			return err
		}
	}

	return nil
}

var (
	moduleOnce sync.Once
	module     *backend.Module
)

// Module returns the process-wide helper module.  It is read-only.
func Module() *backend.Module {
	moduleOnce.Do(func() {
		m := backend.NewModule()
		if err := Register(m); err != nil {
			panic(err)
		}
		if err := m.Freeze(); err != nil {
			panic(err)
		}
		module = m
	})
	return module
}
