// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abcjit

import (
	"gate.computer/abcjit/internal/module"
)

// ErrDisabled is recorded for methods which were not compiled because
// compilation is disabled.
var ErrDisabled = module.Error("compilation is disabled")
