// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entry defines the compile-time representation of values which
// have not been materialized.
package entry

import (
	"fmt"

	"gate.computer/abcjit/backend"
)

type Kind uint8

const (
	None   Kind = iota
	Object      // Owns one reference.
	Int         // Unboxed; owns nothing.
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Object:
		return "object"
	case Int:
		return "int"
	default:
		return fmt.Sprintf("<kind %d>", uint8(k))
	}
}

// E is a value handle tagged with its kind.  The zero value is a None
// entry.
type E struct {
	Value backend.Value
	Kind  Kind
}

func Obj(v backend.Value) E { return E{v, Object} }
func Unboxed(v backend.Value) E { return E{v, Int} }

func (e E) None() bool { return e.Kind == None }

// Owns reports whether the entry carries a reference obligation.
func (e E) Owns() bool { return e.Kind == Object }

func (e E) String() string {
	if e.Kind == None {
		return "none"
	}
	return fmt.Sprintf("%s:%s", e.Kind, e.Value)
}
