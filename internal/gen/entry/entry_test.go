// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entry

import (
	"testing"

	"gate.computer/abcjit/backend"
)

func TestOwnership(t *testing.T) {
	var v backend.Value

	if e := Obj(v); e.Kind != Object || !e.Owns() || e.None() {
		t.Error(e)
	}
	if e := Unboxed(v); e.Kind != Int || e.Owns() || e.None() {
		t.Error(e)
	}
	if e := (E{}); !e.None() || e.Owns() {
		t.Error(e)
	}
}
