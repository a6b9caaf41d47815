// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abc describes method bodies as delivered by the container parser.
package abc

import (
	"fmt"
	"sync/atomic"
)

// Flags of a method.
type Flags uint8

const (
	NeedArguments  Flags = 0x01
	NeedActivation Flags = 0x02
	NeedRest       Flags = 0x04
	HasOptional    Flags = 0x08
	SetDXNS        Flags = 0x40
	HasParamNames  Flags = 0x80
)

func (f Flags) String() string {
	s := ""
	if f&NeedArguments != 0 {
		s += "|arguments"
	}
	if f&NeedActivation != 0 {
		s += "|activation"
	}
	if f&NeedRest != 0 {
		s += "|rest"
	}
	if f&HasOptional != 0 {
		s += "|optional"
	}
	if s == "" {
		return "0"
	}
	return s[1:]
}

// Multiname is reduced to a qualified name; namespaces are resolved by the
// parser.
type Multiname struct {
	Name string `cbor:"1,keyasint"`
}

// ConstantPool values referenced by u30 indexes in the code.
type ConstantPool struct {
	Ints       []int32     `cbor:"1,keyasint,omitempty"`
	UInts      []uint32    `cbor:"2,keyasint,omitempty"`
	Doubles    []float64   `cbor:"3,keyasint,omitempty"`
	Strings    []string    `cbor:"4,keyasint,omitempty"`
	Multinames []Multiname `cbor:"5,keyasint,omitempty"`
}

// Method metadata and body.
type Method struct {
	Name       string        `cbor:"1,keyasint"`
	ParamCount int           `cbor:"2,keyasint"`
	Flags      Flags         `cbor:"3,keyasint"`
	MaxStack   int           `cbor:"4,keyasint"`
	LocalCount int           `cbor:"5,keyasint"`
	Code       []byte        `cbor:"6,keyasint"`
	Pool       *ConstantPool `cbor:"7,keyasint,omitempty"`

	jit atomic.Value
}

// ArgumentsSlot is the local which receives the arguments object or the rest
// array, or -1 if the method needs neither.
func (m *Method) ArgumentsSlot() int {
	if m.Flags&(NeedArguments|NeedRest) == 0 {
		return -1
	}
	return 1 + m.ParamCount
}

// Validate the metadata which the JIT and the interpreter rely on.
func (m *Method) Validate() error {
	switch {
	case m.ParamCount < 0:
		return fmt.Errorf("method %s: negative parameter count", m.Name)

	case m.MaxStack < 0:
		return fmt.Errorf("method %s: negative max stack", m.Name)

	case m.Flags&NeedArguments != 0 && m.Flags&NeedRest != 0:
		return fmt.Errorf("method %s: both arguments and rest requested", m.Name)
	}

	need := 1 + m.ParamCount
	if m.ArgumentsSlot() >= 0 {
		need++
	}
	if m.LocalCount < need {
		return fmt.Errorf("method %s: local count %d does not cover %d bound slots", m.Name, m.LocalCount, need)
	}
	return nil
}

var emptyPool ConstantPool

// Constants returns the pool, which may be empty but never nil.
func (m *Method) Constants() *ConstantPool {
	if m.Pool == nil {
		return &emptyPool
	}
	return m.Pool
}

func (m *Method) String() string {
	return fmt.Sprintf("%s(%d)", m.Name, m.ParamCount)
}

// JIT returns the value published in the method's compiled-code slot, or nil.
func (m *Method) JIT() interface{} {
	return m.jit.Load()
}

// PublishJIT stores x in the compiled-code slot unless something was already
// published.  It returns the value which ended up in the slot.  All values
// must be pointers of the same type.
func (m *Method) PublishJIT(x interface{}) interface{} {
	if m.jit.CompareAndSwap(nil, x) {
		return x
	}
	return m.jit.Load()
}
