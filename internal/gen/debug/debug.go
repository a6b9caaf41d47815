// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build debug || gendebug

// Package debug traces code generation when built with the debug tag.
package debug

import (
	"fmt"
	"os"
	"strings"
)

const Enabled = true

// Depth of indentation.
var Depth int

func Printf(format string, args ...interface{}) {
	if Depth < 0 {
		panic("negative debug.Depth")
	}

	fmt.Fprintf(os.Stderr, "%s%s\n", strings.Repeat("  ", Depth), fmt.Sprintf(format, args...))
}
