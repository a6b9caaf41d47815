// Copyright (c) 2024 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcode

const (
	Bkpt           = Opcode(0x01)
	Nop            = Opcode(0x02)
	Throw          = Opcode(0x03)
	GetSuper       = Opcode(0x04)
	SetSuper       = Opcode(0x05)
	DXNS           = Opcode(0x06)
	DXNSLate       = Opcode(0x07)
	Kill           = Opcode(0x08)
	Label          = Opcode(0x09)
	IfNLT          = Opcode(0x0c)
	IfNLE          = Opcode(0x0d)
	IfNGT          = Opcode(0x0e)
	IfNGE          = Opcode(0x0f)
	Jump           = Opcode(0x10)
	IfTrue         = Opcode(0x11)
	IfFalse        = Opcode(0x12)
	IfEq           = Opcode(0x13)
	IfNe           = Opcode(0x14)
	IfLT           = Opcode(0x15)
	IfLE           = Opcode(0x16)
	IfGT           = Opcode(0x17)
	IfGE           = Opcode(0x18)
	IfStrictEq     = Opcode(0x19)
	IfStrictNe     = Opcode(0x1a)
	LookupSwitch   = Opcode(0x1b)
	PushWith       = Opcode(0x1c)
	PopScope       = Opcode(0x1d)
	NextName       = Opcode(0x1e)
	HasNext        = Opcode(0x1f)
	PushNull       = Opcode(0x20)
	PushUndefined  = Opcode(0x21)
	NextValue      = Opcode(0x23)
	PushByte       = Opcode(0x24)
	PushShort      = Opcode(0x25)
	PushTrue       = Opcode(0x26)
	PushFalse      = Opcode(0x27)
	PushNaN        = Opcode(0x28)
	Pop            = Opcode(0x29)
	Dup            = Opcode(0x2a)
	Swap           = Opcode(0x2b)
	PushString     = Opcode(0x2c)
	PushInt        = Opcode(0x2d)
	PushUInt       = Opcode(0x2e)
	PushDouble     = Opcode(0x2f)
	PushScope      = Opcode(0x30)
	PushNamespace  = Opcode(0x31)
	HasNext2       = Opcode(0x32)
	NewFunction    = Opcode(0x40)
	Call           = Opcode(0x41)
	Construct      = Opcode(0x42)
	CallMethod     = Opcode(0x43)
	CallStatic     = Opcode(0x44)
	CallSuper      = Opcode(0x45)
	CallProperty   = Opcode(0x46)
	ReturnVoid     = Opcode(0x47)
	ReturnValue    = Opcode(0x48)
	ConstructSuper = Opcode(0x49)
	ConstructProp  = Opcode(0x4a)
	CallPropLex    = Opcode(0x4c)
	CallSuperVoid  = Opcode(0x4e)
	CallPropVoid   = Opcode(0x4f)
	ApplyType      = Opcode(0x53)
	NewObject      = Opcode(0x55)
	NewArray       = Opcode(0x56)
	NewActivation  = Opcode(0x57)
	NewClass       = Opcode(0x58)
	GetDescendants = Opcode(0x59)
	NewCatch       = Opcode(0x5a)
	FindPropStrict = Opcode(0x5d)
	FindProperty   = Opcode(0x5e)
	GetLex         = Opcode(0x60)
	SetProperty    = Opcode(0x61)
	GetLocal       = Opcode(0x62)
	SetLocal       = Opcode(0x63)
	GetGlobalScope = Opcode(0x64)
	GetScopeObject = Opcode(0x65)
	GetProperty    = Opcode(0x66)
	InitProperty   = Opcode(0x68)
	DeleteProperty = Opcode(0x6a)
	GetSlot        = Opcode(0x6c)
	SetSlot        = Opcode(0x6d)
	GetGlobalSlot  = Opcode(0x6e)
	SetGlobalSlot  = Opcode(0x6f)
	ConvertS       = Opcode(0x70)
	EscXElem       = Opcode(0x71)
	EscXAttr       = Opcode(0x72)
	ConvertI       = Opcode(0x73)
	ConvertU       = Opcode(0x74)
	ConvertD       = Opcode(0x75)
	ConvertB       = Opcode(0x76)
	ConvertO       = Opcode(0x77)
	CheckFilter    = Opcode(0x78)
	Coerce         = Opcode(0x80)
	CoerceB        = Opcode(0x81)
	CoerceA        = Opcode(0x82)
	CoerceI        = Opcode(0x83)
	CoerceD        = Opcode(0x84)
	CoerceS        = Opcode(0x85)
	AsType         = Opcode(0x86)
	AsTypeLate     = Opcode(0x87)
	CoerceU        = Opcode(0x88)
	CoerceO        = Opcode(0x89)
	Negate         = Opcode(0x90)
	Increment      = Opcode(0x91)
	IncLocal       = Opcode(0x92)
	Decrement      = Opcode(0x93)
	DecLocal       = Opcode(0x94)
	TypeOf         = Opcode(0x95)
	Not            = Opcode(0x96)
	BitNot         = Opcode(0x97)
	Add            = Opcode(0xa0)
	Subtract       = Opcode(0xa1)
	Multiply       = Opcode(0xa2)
	Divide         = Opcode(0xa3)
	Modulo         = Opcode(0xa4)
	LShift         = Opcode(0xa5)
	RShift         = Opcode(0xa6)
	URShift        = Opcode(0xa7)
	BitAnd         = Opcode(0xa8)
	BitOr          = Opcode(0xa9)
	BitXor         = Opcode(0xaa)
	Equals         = Opcode(0xab)
	StrictEquals   = Opcode(0xac)
	LessThan       = Opcode(0xad)
	LessEquals     = Opcode(0xae)
	GreaterThan    = Opcode(0xaf)
	GreaterEquals  = Opcode(0xb0)
	InstanceOf     = Opcode(0xb1)
	IsType         = Opcode(0xb2)
	IsTypeLate     = Opcode(0xb3)
	In             = Opcode(0xb4)
	IncrementI     = Opcode(0xc0)
	DecrementI     = Opcode(0xc1)
	IncLocalI      = Opcode(0xc2)
	DecLocalI      = Opcode(0xc3)
	NegateI        = Opcode(0xc4)
	AddI           = Opcode(0xc5)
	SubtractI      = Opcode(0xc6)
	MultiplyI      = Opcode(0xc7)
	GetLocal0      = Opcode(0xd0)
	GetLocal1      = Opcode(0xd1)
	GetLocal2      = Opcode(0xd2)
	GetLocal3      = Opcode(0xd3)
	SetLocal0      = Opcode(0xd4)
	SetLocal1      = Opcode(0xd5)
	SetLocal2      = Opcode(0xd6)
	SetLocal3      = Opcode(0xd7)
	Debug          = Opcode(0xef)
	DebugLine      = Opcode(0xf0)
	DebugFile      = Opcode(0xf1)
	BkptLine       = Opcode(0xf2)
	Timestamp      = Opcode(0xf3)
)

var strings = [256]string{
	Bkpt:           "bkpt",
	Nop:            "nop",
	Throw:          "throw",
	GetSuper:       "getsuper",
	SetSuper:       "setsuper",
	DXNS:           "dxns",
	DXNSLate:       "dxnslate",
	Kill:           "kill",
	Label:          "label",
	IfNLT:          "ifnlt",
	IfNLE:          "ifnle",
	IfNGT:          "ifngt",
	IfNGE:          "ifnge",
	Jump:           "jump",
	IfTrue:         "iftrue",
	IfFalse:        "iffalse",
	IfEq:           "ifeq",
	IfNe:           "ifne",
	IfLT:           "iflt",
	IfLE:           "ifle",
	IfGT:           "ifgt",
	IfGE:           "ifge",
	IfStrictEq:     "ifstricteq",
	IfStrictNe:     "ifstrictne",
	LookupSwitch:   "lookupswitch",
	PushWith:       "pushwith",
	PopScope:       "popscope",
	NextName:       "nextname",
	HasNext:        "hasnext",
	PushNull:       "pushnull",
	PushUndefined:  "pushundefined",
	NextValue:      "nextvalue",
	PushByte:       "pushbyte",
	PushShort:      "pushshort",
	PushTrue:       "pushtrue",
	PushFalse:      "pushfalse",
	PushNaN:        "pushnan",
	Pop:            "pop",
	Dup:            "dup",
	Swap:           "swap",
	PushString:     "pushstring",
	PushInt:        "pushint",
	PushUInt:       "pushuint",
	PushDouble:     "pushdouble",
	PushScope:      "pushscope",
	PushNamespace:  "pushnamespace",
	HasNext2:       "hasnext2",
	NewFunction:    "newfunction",
	Call:           "call",
	Construct:      "construct",
	CallMethod:     "callmethod",
	CallStatic:     "callstatic",
	CallSuper:      "callsuper",
	CallProperty:   "callproperty",
	ReturnVoid:     "returnvoid",
	ReturnValue:    "returnvalue",
	ConstructSuper: "constructsuper",
	ConstructProp:  "constructprop",
	CallPropLex:    "callproplex",
	CallSuperVoid:  "callsupervoid",
	CallPropVoid:   "callpropvoid",
	ApplyType:      "applytype",
	NewObject:      "newobject",
	NewArray:       "newarray",
	NewActivation:  "newactivation",
	NewClass:       "newclass",
	GetDescendants: "getdescendants",
	NewCatch:       "newcatch",
	FindPropStrict: "findpropstrict",
	FindProperty:   "findproperty",
	GetLex:         "getlex",
	SetProperty:    "setproperty",
	GetLocal:       "getlocal",
	SetLocal:       "setlocal",
	GetGlobalScope: "getglobalscope",
	GetScopeObject: "getscopeobject",
	GetProperty:    "getproperty",
	InitProperty:   "initproperty",
	DeleteProperty: "deleteproperty",
	GetSlot:        "getslot",
	SetSlot:        "setslot",
	GetGlobalSlot:  "getglobalslot",
	SetGlobalSlot:  "setglobalslot",
	ConvertS:       "convert_s",
	EscXElem:       "esc_xelem",
	EscXAttr:       "esc_xattr",
	ConvertI:       "convert_i",
	ConvertU:       "convert_u",
	ConvertD:       "convert_d",
	ConvertB:       "convert_b",
	ConvertO:       "convert_o",
	CheckFilter:    "checkfilter",
	Coerce:         "coerce",
	CoerceB:        "coerce_b",
	CoerceA:        "coerce_a",
	CoerceI:        "coerce_i",
	CoerceD:        "coerce_d",
	CoerceS:        "coerce_s",
	AsType:         "astype",
	AsTypeLate:     "astypelate",
	CoerceU:        "coerce_u",
	CoerceO:        "coerce_o",
	Negate:         "negate",
	Increment:      "increment",
	IncLocal:       "inclocal",
	Decrement:      "decrement",
	DecLocal:       "declocal",
	TypeOf:         "typeof",
	Not:            "not",
	BitNot:         "bitnot",
	Add:            "add",
	Subtract:       "subtract",
	Multiply:       "multiply",
	Divide:         "divide",
	Modulo:         "modulo",
	LShift:         "lshift",
	RShift:         "rshift",
	URShift:        "urshift",
	BitAnd:         "bitand",
	BitOr:          "bitor",
	BitXor:         "bitxor",
	Equals:         "equals",
	StrictEquals:   "strictequals",
	LessThan:       "lessthan",
	LessEquals:     "lessequals",
	GreaterThan:    "greaterthan",
	GreaterEquals:  "greaterequals",
	InstanceOf:     "instanceof",
	IsType:         "istype",
	IsTypeLate:     "istypelate",
	In:             "in",
	IncrementI:     "increment_i",
	DecrementI:     "decrement_i",
	IncLocalI:      "inclocal_i",
	DecLocalI:      "declocal_i",
	NegateI:        "negate_i",
	AddI:           "add_i",
	SubtractI:      "subtract_i",
	MultiplyI:      "multiply_i",
	GetLocal0:      "getlocal_0",
	GetLocal1:      "getlocal_1",
	GetLocal2:      "getlocal_2",
	GetLocal3:      "getlocal_3",
	SetLocal0:      "setlocal_0",
	SetLocal1:      "setlocal_1",
	SetLocal2:      "setlocal_2",
	SetLocal3:      "setlocal_3",
	Debug:          "debug",
	DebugLine:      "debugline",
	DebugFile:      "debugfile",
	BkptLine:       "bkptline",
	Timestamp:      "timestamp",
}
