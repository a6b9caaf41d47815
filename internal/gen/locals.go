// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"gate.computer/abcjit/internal/gen/debug"
	"gate.computer/abcjit/internal/gen/entry"
	"gate.computer/abcjit/internal/registry"
)

// Slot caches a local variable.  A clean slot holds the value stored in the
// locals array, which owns its reference.  A dirty slot owns the reference of
// a value which has not been stored yet.
type Slot struct {
	entry.E
	Dirty bool
}

func (f *Func) checkLocal(index int) *Slot {
	if index < 0 || index >= len(f.Locals) {
		f.Internalf("local %d out of range", index)
	}
	return &f.Locals[index]
}

// GetLocal returns a new reference to a local.
func (f *Func) GetLocal(index int) entry.E {
	s := f.checkLocal(index)
	if s.None() {
		s.E = entry.Obj(f.loadLocal(index))
		s.Dirty = false
	}

	f.IncRef(s.E)
	return s.E
}

// SetLocal takes over the reference of an object entry.  The store is
// deferred until SyncLocals.
func (f *Func) SetLocal(index int, e entry.E) {
	if e.Kind != entry.Object {
		f.Internalf("setting local %d to %s entry", index, e.Kind)
	}

	s := f.checkLocal(index)

	switch {
	case s.Dirty:
		f.DecRef(s.E)

	case s.Kind == entry.Object && s.Value == e.Value:
		// Storing the value which is already there.
		f.DecRef(e)
		return
	}

	if debug.Enabled {
		debug.Printf("set local %d: %s", index, e)
	}

	s.E = e
	s.Dirty = true
}

// SyncLocals stores the dirty locals and releases the values they replace.
func (f *Func) SyncLocals() {
	for i := range f.Locals {
		s := &f.Locals[i]
		if !s.Dirty {
			continue
		}

		if s.Kind != entry.Object {
			f.Internalf("local %d is %s", i, s.Kind)
		}

		old := f.loadLocal(i)
		f.storeLocal(i, s.Value)
		f.CallHelper(registry.DecRefSafe, old)
		s.Dirty = false
	}
}

// InvalidateLocal forgets a synchronized slot after the locals array has been
// modified behind the cache.
func (f *Func) InvalidateLocal(index int) {
	s := f.checkLocal(index)
	if s.Dirty {
		f.Internalf("invalidating dirty local %d", index)
	}
	*s = Slot{}
}

// ResetLocals forgets every slot.  The locals must have been synchronized.
func (f *Func) ResetLocals() {
	for i := range f.Locals {
		if f.Locals[i].Dirty {
			f.Internalf("local %d is dirty at block boundary", i)
		}
		f.Locals[i] = Slot{}
	}
}
