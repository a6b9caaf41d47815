// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"gate.computer/abcjit/object"
)

func lessThan(a, b object.Object) bool {
	less, _ := object.Less(a, b)
	return less
}

// notLess is true if a < b is false or undefined.
func notLess(a, b object.Object) bool {
	return !lessThan(a, b)
}

// greaterOrEqual is true if a < b is false and defined.
func greaterOrEqual(a, b object.Object) bool {
	less, undefined := object.Less(a, b)
	return !less && !undefined
}

func compare(a, b object.Object, f func(a, b object.Object) bool) bool {
	defer a.DecRef()
	defer b.DecRef()
	return f(a, b)
}

func Equals(a, b object.Object) object.Object {
	return object.Bool(compare(a, b, object.Equals))
}

func StrictEquals(a, b object.Object) object.Object {
	return object.Bool(compare(a, b, object.StrictEquals))
}

func LessThan(a, b object.Object) object.Object {
	return object.Bool(compare(a, b, lessThan))
}

func LessEquals(a, b object.Object) object.Object {
	return object.Bool(compare(b, a, greaterOrEqual))
}

func GreaterThan(a, b object.Object) object.Object {
	return object.Bool(compare(b, a, lessThan))
}

func GreaterEquals(a, b object.Object) object.Object {
	return object.Bool(compare(a, b, greaterOrEqual))
}

// Branch helpers decide whether the branch is taken.

func IfTrue(x object.Object) bool {
	defer x.DecRef()
	return object.ToBoolean(x)
}

func IfFalse(x object.Object) bool {
	defer x.DecRef()
	return !object.ToBoolean(x)
}

func IfEq(a, b object.Object) bool  { return compare(a, b, object.Equals) }
func IfNE(a, b object.Object) bool  { return !compare(a, b, object.Equals) }
func IfLT(a, b object.Object) bool  { return compare(a, b, lessThan) }
func IfNLT(a, b object.Object) bool { return compare(a, b, notLess) }
func IfLE(a, b object.Object) bool  { return compare(b, a, greaterOrEqual) }
func IfNLE(a, b object.Object) bool { return !compare(b, a, greaterOrEqual) }
func IfGT(a, b object.Object) bool  { return compare(b, a, lessThan) }
func IfNGT(a, b object.Object) bool { return compare(b, a, notLess) }
func IfGE(a, b object.Object) bool  { return compare(a, b, greaterOrEqual) }
func IfNGE(a, b object.Object) bool { return !compare(a, b, greaterOrEqual) }

func IfStrictEq(a, b object.Object) bool { return compare(a, b, object.StrictEquals) }
func IfStrictNE(a, b object.Object) bool { return !compare(a, b, object.StrictEquals) }
