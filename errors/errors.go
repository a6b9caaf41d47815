// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports the method error types.
package errors

import (
	"gate.computer/abcjit/internal/module"
	"golang.org/x/xerrors"
)

// MethodError indicates that the error is caused by unsupported or malformed
// method code.  It may wrap an underlying error.
type MethodError interface {
	error
	MethodError() string
}

// Unsupported opcode.  Such methods are interpreted.
type Unsupported = module.Unsupported

// IsMethodError reports whether err or an error it wraps is a MethodError.
func IsMethodError(err error) bool {
	var e MethodError
	return xerrors.As(err, &e)
}

// IsUnsupported reports whether err is caused by an opcode without a
// translation.
func IsUnsupported(err error) bool {
	var e *Unsupported
	return xerrors.As(err, &e)
}
