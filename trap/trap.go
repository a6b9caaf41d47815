// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trap enumerates trap identifiers raised by compiled code.
package trap

import (
	"fmt"
)

type ID int

const (
	Unreachable = ID(iota)
	Unsupported // Code of a method left to the interpreter.

	NumTraps
)

func (id ID) String() string {
	switch id {
	case Unreachable:
		return "unreachable"

	case Unsupported:
		return "unsupported opcode"

	default:
		return fmt.Sprintf("unknown trap %d", id)
	}
}

func (id ID) Error() string {
	return "trap: " + id.String()
}

// Error is the panic value of a trap terminator.  Opcode is meaningful for
// Unsupported.
type Error struct {
	ID     ID
	Opcode byte
	Offset int
}

func (e *Error) Error() string {
	if e.ID == Unsupported {
		return fmt.Sprintf("trap: unsupported opcode 0x%02x at offset %d", e.Opcode, e.Offset)
	}
	return fmt.Sprintf("trap: %s at offset %d", e.ID, e.Offset)
}

func (e *Error) Unwrap() error { return e.ID }
