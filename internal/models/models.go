package models

import (
	"math"
	"strconv"
)

// Kind identifies what a Value holds.
type Kind int

const (
	// KindInvalid is the zero Value: no value at all. Containers ignore it.
	KindInvalid Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindString:  "string",
	KindNumber:  "number",
	KindBool:    "boolean",
	KindObject:  "object",
	KindArray:   "array",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a single JSON value. All numbers are stored as float64; there is
// no separate integer kind.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  *Object
	arr  *Array
}

// NullValue returns the JSON null.
func NullValue() Value { return Value{kind: KindNull} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps f.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ObjectValue wraps a child object. A nil object yields the invalid Value.
func ObjectValue(o *Object) Value {
	if o == nil {
		return Value{}
	}
	return Value{kind: KindObject, obj: o}
}

// ArrayValue wraps a child array. A nil array yields the invalid Value.
func ArrayValue(a *Array) Value {
	if a == nil {
		return Value{}
	}
	return Value{kind: KindArray, arr: a}
}

// ContainerValue wraps either shape of container.
func ContainerValue(c Container) Value {
	switch n := c.(type) {
	case *Object:
		return ObjectValue(n)
	case *Array:
		return ArrayValue(n)
	default:
		return Value{}
	}
}

// Kind reports what v holds.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds anything, null included.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsNull reports whether v is the JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload, or "" for other kinds.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload, or 0 for other kinds.
func (v Value) Num() float64 { return v.num }

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Object returns the child object, or nil.
func (v Value) Object() *Object { return v.obj }

// Array returns the child array, or nil.
func (v Value) Array() *Array { return v.arr }

// Container returns the child container, or nil for scalars.
func (v Value) Container() Container {
	switch v.kind {
	case KindObject:
		return v.obj
	case KindArray:
		return v.arr
	}
	return nil
}

// FormatNumber renders f in the shortest form that reads back to the same
// float64, never using an exponent so the output stays within the number
// characters the lexer accepts.
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
