// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errorpanic converts method errors raised by panicking back into
// return values.  Everything else keeps propagating.
package errorpanic

import (
	"io"
	"runtime"

	"gate.computer/abcjit/internal/module"
	"golang.org/x/xerrors"
)

type methodError interface {
	error
	MethodError() string
}

func Handle(x interface{}) (err error) {
	if x != nil {
		err, _ = x.(error)
		if err == nil {
			panic(x)
		}

		if _, ok := err.(runtime.Error); ok {
			panic(x)
		}

		switch {
		case xerrors.Is(err, io.EOF), xerrors.Is(err, io.ErrUnexpectedEOF):
			err = module.ErrUnexpectedEOF

		default:
			var e methodError
			if !xerrors.As(err, &e) {
				panic(x)
			}
		}
	}

	return
}
