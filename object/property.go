// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"strconv"
)

func arrayIndex(name string) (int, bool) {
	i, err := strconv.Atoi(name)
	if err != nil || i < 0 || strconv.Itoa(i) != name {
		return 0, false
	}
	return i, true
}

// GetProperty returns a new reference to the named property value, or
// Undefined.
func GetProperty(o Object, name string) Object {
	switch x := o.(type) {
	case *Obj:
		if v := x.props[name]; v != nil {
			v.IncRef()
			return v
		}

	case *Array:
		if name == "length" {
			return NewInteger(int32(len(x.Elems)))
		}
		if i, ok := arrayIndex(name); ok && i < len(x.Elems) {
			v := x.Elems[i]
			v.IncRef()
			return v
		}

	case *String:
		if name == "length" {
			return NewInteger(int32(len([]rune(x.Val))))
		}

	case *Function:
		if name == "name" {
			return NewString(x.Name)
		}
	}

	return Undefined
}

// SetProperty consumes the value reference.  The displaced value is
// released.  Primitive receivers drop the value.
func SetProperty(o Object, name string, v Object) {
	switch x := o.(type) {
	case *Obj:
		old, found := x.props[name]
		x.props[name] = v
		if found {
			old.DecRef()
		} else {
			x.keys = append(x.keys, name)
		}
		return

	case *Array:
		if i, ok := arrayIndex(name); ok {
			for len(x.Elems) <= i {
				x.Elems = append(x.Elems, Undefined)
			}
			old := x.Elems[i]
			x.Elems[i] = v
			old.DecRef()
			return
		}
	}

	v.DecRef()
}

func HasProperty(o Object, name string) bool {
	switch x := o.(type) {
	case *Obj:
		_, found := x.props[name]
		return found

	case *Array:
		if name == "length" {
			return true
		}
		i, ok := arrayIndex(name)
		return ok && i < len(x.Elems)

	case *String:
		return name == "length"
	}

	return false
}

func DeleteProperty(o Object, name string) bool {
	x, ok := o.(*Obj)
	if !ok {
		return false
	}

	v, found := x.props[name]
	if !found {
		return false
	}

	delete(x.props, name)
	for i, k := range x.keys {
		if k == name {
			x.keys = append(x.keys[:i], x.keys[i+1:]...)
			break
		}
	}
	v.DecRef()
	return true
}

func enumLen(o Object) int {
	switch x := o.(type) {
	case *Obj:
		return len(x.keys)
	case *Array:
		return len(x.Elems)
	}
	return 0
}

// NextIndex returns the 1-based enumeration index following i, or 0 when the
// enumeration is exhausted.
func NextIndex(o Object, i int) int {
	if i < enumLen(o) {
		return i + 1
	}
	return 0
}

// NameAt returns a new reference to the name at 1-based index i.
func NameAt(o Object, i int) Object {
	if i < 1 || i > enumLen(o) {
		return Undefined
	}

	switch x := o.(type) {
	case *Obj:
		return NewString(x.keys[i-1])
	default:
		return NewInteger(int32(i - 1))
	}
}

// ValueAt returns a new reference to the value at 1-based index i.
func ValueAt(o Object, i int) Object {
	if i < 1 || i > enumLen(o) {
		return Undefined
	}

	switch x := o.(type) {
	case *Obj:
		return GetProperty(x, x.keys[i-1])
	case *Array:
		v := x.Elems[i-1]
		v.IncRef()
		return v
	}
	return Undefined
}
