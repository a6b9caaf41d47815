// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"math"

	"gate.computer/abcjit/object"
)

// Constant helpers return the value instead of pushing it.

func PushNull(ctx *Context) object.Object      { return object.Null }
func PushUndefined(ctx *Context) object.Object { return object.Undefined }
func PushTrue(ctx *Context) object.Object      { return object.True }
func PushFalse(ctx *Context) object.Object     { return object.False }
func PushNaN(ctx *Context) object.Object       { return object.NewNumber(math.NaN()) }

func PushInt(ctx *Context, index int32) object.Object {
	return object.NewInteger(ctx.Method.Constants().Ints[index])
}

func PushUInt(ctx *Context, index int32) object.Object {
	return object.NewUInteger(ctx.Method.Constants().UInts[index])
}

func PushDouble(ctx *Context, index int32) object.Object {
	return object.NewNumber(ctx.Method.Constants().Doubles[index])
}

func PushString(ctx *Context, index int32) object.Object {
	return object.NewString(ctx.Method.Constants().Strings[index])
}
