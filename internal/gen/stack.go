// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"gate.computer/abcjit/internal/gen/debug"
	"gate.computer/abcjit/internal/gen/entry"
)

// Push an entry on the operand stack.  The stack takes over the entry's
// reference.
func (f *Func) Push(e entry.E) {
	if e.None() {
		f.Internalf("pushing none entry")
	}

	if debug.Enabled {
		debug.Printf("push operand #%d: %s", len(f.Operands), e)
	}

	f.Operands = append(f.Operands, e)
}

// Pop the top entry.  If the operand stack is empty, the value is popped from
// the real stack.  The caller takes over the entry's reference.
func (f *Func) Pop() (e entry.E) {
	if n := len(f.Operands) - 1; n >= 0 {
		e = f.Operands[n]
		f.Operands = f.Operands[:n]
	} else {
		e = entry.Obj(f.popReal())
	}

	if debug.Enabled {
		debug.Printf("pop operand #%d: %s", len(f.Operands), e)
	}
	return
}

// Peek at the top entry without removing it.  The stack keeps the
// reference.
func (f *Func) Peek() entry.E {
	if n := len(f.Operands); n > 0 {
		return f.Operands[n-1]
	}
	return entry.Obj(f.peekReal())
}

// Synchronize pushes the pending entries on the real stack, bottom first.
// Int entries are boxed.
func (f *Func) Synchronize() {
	if debug.Enabled && len(f.Operands) > 0 {
		debug.Printf("synchronize %d operands", len(f.Operands))
	}

	for _, e := range f.Operands {
		f.pushReal(f.Box(e).Value)
	}
	f.Operands = f.Operands[:0]
}
