// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"gate.computer/abcjit/object"
)

func ConvertI(x object.Object) object.Object {
	if _, ok := x.(*object.Integer); ok {
		return x
	}
	defer x.DecRef()
	return object.NewInteger(object.ToInt32(x))
}

func ConvertU(x object.Object) object.Object {
	if _, ok := x.(*object.UInteger); ok {
		return x
	}
	defer x.DecRef()
	return object.NewUInteger(object.ToUint32(x))
}

func ConvertD(x object.Object) object.Object {
	if x.Type() == object.TypeNumber {
		return x
	}
	defer x.DecRef()
	return object.NewNumber(object.ToNumber(x))
}

func ConvertB(x object.Object) object.Object {
	defer x.DecRef()
	return object.Bool(object.ToBoolean(x))
}

func ConvertS(x object.Object) object.Object {
	if x.Type() == object.TypeString {
		return x
	}
	defer x.DecRef()
	return object.NewString(object.ToString(x))
}

// ConvertO throws on null and undefined.
func ConvertO(x object.Object) object.Object {
	if t := x.Type(); t == object.TypeUndefined || t == object.TypeNull {
		x.DecRef()
		throwError("TypeError", "cannot convert %s to object", t)
	}
	return x
}

func CoerceA(x object.Object) object.Object {
	return x
}

// CoerceS keeps null and undefined as null.
func CoerceS(x object.Object) object.Object {
	if t := x.Type(); t == object.TypeUndefined || t == object.TypeNull {
		return object.Null
	}
	return ConvertS(x)
}

func CoerceO(x object.Object) object.Object {
	if x.Type() == object.TypeUndefined {
		return object.Null
	}
	return x
}

func Not(x object.Object) object.Object {
	defer x.DecRef()
	return object.Bool(!object.ToBoolean(x))
}

func TypeOf(x object.Object) object.Object {
	defer x.DecRef()
	return object.NewString(object.TypeOf(x))
}
