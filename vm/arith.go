// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"math"

	"gate.computer/abcjit/object"
)

func stringish(x object.Object) bool {
	switch x.Type() {
	case object.TypeString, object.TypeObject, object.TypeArray, object.TypeFunction:
		return true
	}
	return false
}

func Add(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()

	if stringish(a) || stringish(b) {
		return object.NewString(object.ToString(a) + object.ToString(b))
	}
	return object.Numeric(object.ToNumber(a) + object.ToNumber(b))
}

func AddI(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.NewInteger(object.ToInt32(a) + object.ToInt32(b))
}

func Subtract(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.Numeric(object.ToNumber(a) - object.ToNumber(b))
}

func SubtractI(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.NewInteger(object.ToInt32(a) - object.ToInt32(b))
}

func Multiply(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.Numeric(object.ToNumber(a) * object.ToNumber(b))
}

func MultiplyI(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.NewInteger(object.ToInt32(a) * object.ToInt32(b))
}

func Divide(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.Numeric(object.ToNumber(a) / object.ToNumber(b))
}

func Modulo(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.Numeric(math.Mod(object.ToNumber(a), object.ToNumber(b)))
}

func Negate(x object.Object) object.Object {
	defer x.DecRef()
	return object.Numeric(-object.ToNumber(x))
}

func NegateI(x object.Object) object.Object {
	defer x.DecRef()
	return object.NewInteger(-object.ToInt32(x))
}

func Increment(x object.Object) object.Object {
	defer x.DecRef()
	return object.Numeric(object.ToNumber(x) + 1)
}

func IncrementI(x object.Object) object.Object {
	defer x.DecRef()
	return object.NewInteger(object.ToInt32(x) + 1)
}

func Decrement(x object.Object) object.Object {
	defer x.DecRef()
	return object.Numeric(object.ToNumber(x) - 1)
}

func DecrementI(x object.Object) object.Object {
	defer x.DecRef()
	return object.NewInteger(object.ToInt32(x) - 1)
}

func BitNot(x object.Object) object.Object {
	defer x.DecRef()
	return object.NewInteger(^object.ToInt32(x))
}

func BitAnd(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.NewInteger(object.ToInt32(a) & object.ToInt32(b))
}

// BitAndII is the unboxed fast path.
func BitAndII(a, b int32) int32 {
	return a & b
}

// BitAndOI takes the boxed operand first.  The operation commutes, so call
// sites with an unboxed left operand pass the operands transposed.
func BitAndOI(b object.Object, a int32) int32 {
	defer b.DecRef()
	return a & object.ToInt32(b)
}

func BitOr(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.NewInteger(object.ToInt32(a) | object.ToInt32(b))
}

func BitXor(a, b object.Object) object.Object {
	defer a.DecRef()
	defer b.DecRef()
	return object.NewInteger(object.ToInt32(a) ^ object.ToInt32(b))
}

func shiftCount(x object.Object) uint32 {
	return object.ToUint32(x) & 31
}

func LShift(a, b object.Object) object.Object {
	defer a.DecRef()
	return LShiftIO(object.ToInt32(a), b)
}

func RShift(a, b object.Object) object.Object {
	defer a.DecRef()
	return RShiftIO(object.ToInt32(a), b)
}

func URShift(a, b object.Object) object.Object {
	defer a.DecRef()
	return URShiftIO(object.ToInt32(a), b)
}

// LShiftIO shifts an unboxed integer by a boxed count.
func LShiftIO(a int32, b object.Object) object.Object {
	defer b.DecRef()
	return object.NewInteger(a << shiftCount(b))
}

func RShiftIO(a int32, b object.Object) object.Object {
	defer b.DecRef()
	return object.NewInteger(a >> shiftCount(b))
}

func URShiftIO(a int32, b object.Object) object.Object {
	defer b.DecRef()
	return object.NewUInteger(uint32(a) >> shiftCount(b))
}
