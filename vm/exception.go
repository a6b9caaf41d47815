// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"fmt"

	"gate.computer/abcjit/object"
)

// Exception is the panic value of a thrown script value.  It unwinds through
// interpreted and compiled frames alike.
type Exception struct {
	Value object.Object
}

func (e *Exception) Error() string {
	return "uncaught exception: " + object.ToString(e.Value)
}

// Throw consumes x and raises it.
func Throw(x object.Object) {
	panic(&Exception{x})
}

func throwError(kind, format string, args ...interface{}) {
	Throw(object.NewString(kind + ": " + fmt.Sprintf(format, args...)))
}
