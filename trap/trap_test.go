// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trap

import (
	"errors"
	"strings"
	"testing"
)

func TestError(t *testing.T) {
	err := error(&Error{ID: Unsupported, Opcode: 0x1b, Offset: 4})

	if s := err.Error(); s != "trap: unsupported opcode 0x1b at offset 4" {
		t.Error(s)
	}
	if !errors.Is(err, Unsupported) || errors.Is(err, Unreachable) {
		t.Fail()
	}
}

func TestString(t *testing.T) {
	for id := ID(0); id < NumTraps; id++ {
		if s := id.String(); strings.HasPrefix(s, "unknown") {
			t.Error(id)
		}
	}
	if s := NumTraps.String(); s != "unknown trap 2" {
		t.Error(s)
	}
}
