// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errorpanic

import (
	"errors"
	"io"
	"testing"

	"gate.computer/abcjit/internal/module"
	"golang.org/x/xerrors"
)

func TestHandleEOF(t *testing.T) {
	if err := Handle(io.EOF); !xerrors.Is(err, module.ErrUnexpectedEOF) {
		t.Error(err)
	}
	if err := Handle(module.ErrUnexpectedEOF); !xerrors.Is(err, io.ErrUnexpectedEOF) {
		t.Error(err)
	}
}

func TestHandleMethodError(t *testing.T) {
	orig := &module.Unsupported{Opcode: 0x1b, Offset: 7}

	err := Handle(xerrors.Errorf("compile: %w", orig))

	var unsupported *module.Unsupported
	if !xerrors.As(err, &unsupported) || unsupported != orig {
		t.Fatal(err)
	}
}

func TestHandleNil(t *testing.T) {
	if err := Handle(nil); err != nil {
		t.Fatal(err)
	}
}

func TestHandleRepanics(t *testing.T) {
	for _, x := range []interface{}{
		"string",
		errors.New("internal"),
	} {
		func() {
			defer func() {
				if recover() != x {
					t.Error("not re-panicked:", x)
				}
			}()
			Handle(x)
		}()
	}
}
