// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package module defines the error type for problems caused by the method
// being compiled, as opposed to defects in the compiler.
package module

import (
	"fmt"
	"io"
)

type methodError string

func Error(text string) error {
	return methodError(text)
}

func Errorf(format string, args ...interface{}) error {
	return methodError(fmt.Sprintf(format, args...))
}

func (s methodError) Error() string       { return string(s) }
func (s methodError) MethodError() string { return string(s) }

type wrappedError struct {
	text  string
	cause error
}

func WrapError(cause error, text string) error {
	return &wrappedError{text, cause}
}

func (e *wrappedError) Error() string       { return e.text }
func (e *wrappedError) MethodError() string { return e.text }
func (e *wrappedError) Unwrap() error       { return e.cause }

// Unsupported is raised when the code generator meets an opcode it does not
// translate.  The method is left to the interpreter.
type Unsupported struct {
	Opcode byte
	Offset int
}

func (e *Unsupported) Error() string {
	return fmt.Sprintf("unsupported opcode 0x%02x at offset %d", e.Opcode, e.Offset)
}

func (e *Unsupported) MethodError() string { return e.Error() }

var ErrUnexpectedEOF unexpectedEOF

type unexpectedEOF struct{}

func (unexpectedEOF) Error() string       { return io.ErrUnexpectedEOF.Error() }
func (unexpectedEOF) MethodError() string { return io.ErrUnexpectedEOF.Error() }
func (unexpectedEOF) Unwrap() error       { return io.ErrUnexpectedEOF }
