// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"math"
	"strconv"
	"strings"
)

func ToNumber(o Object) float64 {
	switch x := o.(type) {
	case *Integer:
		return float64(x.Val)
	case *UInteger:
		return float64(x.Val)
	case *Number:
		return x.Val
	case *Boolean:
		if x.Val {
			return 1
		}
		return 0
	case *String:
		return parseNumber(x.Val)
	case *Special:
		if x.t == TypeNull {
			return 0
		}
	}
	return math.NaN()
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if n, err := strconv.ParseUint(s[2:], 16, 64); err == nil {
			return float64(n)
		}
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToInt32 implements the ECMAScript ToInt32 wrap-around.
func ToInt32(o Object) int32 {
	if i, ok := o.(*Integer); ok {
		return i.Val
	}
	if u, ok := o.(*UInteger); ok {
		return int32(u.Val)
	}
	return numberToInt32(ToNumber(o))
}

func numberToInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(uint32(int64(math.Mod(math.Trunc(f), 1<<32))))
}

func ToUint32(o Object) uint32 {
	return uint32(ToInt32(o))
}

func ToBoolean(o Object) bool {
	switch x := o.(type) {
	case *Special:
		return false
	case *Boolean:
		return x.Val
	case *Integer:
		return x.Val != 0
	case *UInteger:
		return x.Val != 0
	case *Number:
		return x.Val != 0 && !math.IsNaN(x.Val)
	case *String:
		return x.Val != ""
	default:
		return true
	}
}

func ToString(o Object) string {
	switch x := o.(type) {
	case *Special:
		return x.t.String()
	case *Boolean:
		return strconv.FormatBool(x.Val)
	case *Integer:
		return strconv.FormatInt(int64(x.Val), 10)
	case *UInteger:
		return strconv.FormatUint(uint64(x.Val), 10)
	case *Number:
		return FormatNumber(x.Val)
	case *String:
		return x.Val
	case *Array:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			if t := e.Type(); t != TypeUndefined && t != TypeNull {
				parts[i] = ToString(e)
			}
		}
		return strings.Join(parts, ",")
	case *Function:
		return "function Function() {}"
	default:
		return "[object Object]"
	}
}

func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func TypeOf(o Object) string {
	switch o.Type() {
	case TypeUndefined:
		return "undefined"
	case TypeBoolean:
		return "boolean"
	case TypeInteger, TypeUInteger, TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeFunction:
		return "function"
	default:
		return "object"
	}
}

// Numeric boxes a float, preferring an integer representation when exact.
func Numeric(f float64) Object {
	if i := int32(f); float64(i) == f && !(f == 0 && math.Signbit(f)) {
		return NewInteger(i)
	}
	return NewNumber(f)
}

func StrictEquals(a, b Object) bool {
	ta, tb := a.Type(), b.Type()

	if ta.numeric() && tb.numeric() {
		return ToNumber(a) == ToNumber(b)
	}
	if ta != tb {
		return false
	}

	switch x := a.(type) {
	case *String:
		return x.Val == b.(*String).Val
	case *Boolean:
		return x.Val == b.(*Boolean).Val
	default:
		return a == b
	}
}

// Equals implements the abstract equality comparison.
func Equals(a, b Object) bool {
	ta, tb := a.Type(), b.Type()

	nullish := func(t Type) bool { return t == TypeUndefined || t == TypeNull }

	switch {
	case nullish(ta) || nullish(tb):
		return nullish(ta) && nullish(tb)

	case ta == tb || (ta.numeric() && tb.numeric()):
		return StrictEquals(a, b)

	case ta == TypeBoolean || tb == TypeBoolean,
		ta.numeric() && tb == TypeString,
		ta == TypeString && tb.numeric():
		return ToNumber(a) == ToNumber(b)

	case tb == TypeString || tb.numeric():
		return ToString(a) == ToString(b) || ToNumber(a) == ToNumber(b)

	case ta == TypeString || ta.numeric():
		return ToString(a) == ToString(b) || ToNumber(a) == ToNumber(b)

	default:
		return a == b
	}
}

// Less compares a < b.  The second result is true if the comparison is
// undefined (NaN involved).
func Less(a, b Object) (less, undefined bool) {
	if sa, ok := a.(*String); ok {
		if sb, ok := b.(*String); ok {
			return sa.Val < sb.Val, false
		}
	}

	x, y := ToNumber(a), ToNumber(b)
	if math.IsNaN(x) || math.IsNaN(y) {
		return false, true
	}
	return x < y, false
}
