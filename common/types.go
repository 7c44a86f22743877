package common

import (
	"strconv"
	"strings"
)

// Type identifies one of the value kinds the engine supports. The set is
// closed: type checks are exhaustive switches over these tags.
type Type int8

const (
	// NilType marks an uninitialized Value, used as the "missing" sentinel.
	NilType Type = iota
	StringType
	IntType
	FloatType
	BoolType
)

func (t Type) String() string {
	switch t {
	case StringType:
		return "string"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case BoolType:
		return "bool"
	}
	return "nil"
}

// IsNumeric reports whether the type participates in arithmetic.
func (t Type) IsNumeric() bool {
	return t == IntType || t == FloatType
}

// Value is a tagged union over the supported kinds. The zero Value is the
// "missing" sentinel (NilType), used transiently during join concatenation
// and batch attribute lookups.
type Value struct {
	t Type
	s string
	i int64
	f float64
	b bool
}

// NilValue is the missing sentinel.
var NilValue = Value{}

// NewStringValue creates a new string Value.
func NewStringValue(v string) Value {
	return Value{t: StringType, s: v}
}

// NewIntValue creates a new integer Value.
func NewIntValue(v int64) Value {
	return Value{t: IntType, i: v}
}

// NewFloatValue creates a new floating-point Value.
func NewFloatValue(v float64) Value {
	return Value{t: FloatType, f: v}
}

// NewBoolValue creates a new boolean Value.
func NewBoolValue(v bool) Value {
	return Value{t: BoolType, b: v}
}

// Type returns the type tag of the Value.
func (v Value) Type() Type {
	return v.t
}

// IsNil returns true if the Value is the missing sentinel.
func (v Value) IsNil() bool {
	return v.t == NilType
}

// StringValue returns the underlying string.
func (v Value) StringValue() string {
	Assert(v.t == StringType, "type mismatch in StringValue")
	return v.s
}

// IntValue returns the underlying integer.
func (v Value) IntValue() int64 {
	Assert(v.t == IntType, "type mismatch in IntValue")
	return v.i
}

// FloatValue returns the underlying float.
func (v Value) FloatValue() float64 {
	Assert(v.t == FloatType, "type mismatch in FloatValue")
	return v.f
}

// BoolValue returns the underlying boolean.
func (v Value) BoolValue() bool {
	Assert(v.t == BoolType, "type mismatch in BoolValue")
	return v.b
}

// Compare compares two Values of the same type.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
// Booleans order false before true. The missing sentinel orders before
// everything, so keys containing it still have a total order.
func (v Value) Compare(other Value) int {
	Assert(v.t == other.t, "type mismatch in comparison: %s vs %s", v.t, other.t)

	switch v.t {
	case NilType:
		return 0
	case StringType:
		return strings.Compare(v.s, other.s)
	case IntType:
		return compareOrdered(v.i, other.i)
	case FloatType:
		return compareOrdered(v.f, other.f)
	case BoolType:
		if v.b == other.b {
			return 0
		}
		if !v.b {
			return -1
		}
		return 1
	}
	panic("unreachable")
}

// Equal reports structural equality. Values of different types are never
// equal; there is no implicit numeric coercion.
func (v Value) Equal(other Value) bool {
	if v.t != other.t {
		return false
	}
	return v.Compare(other) == 0
}

// String renders the value for the textual tuple form. Floats always carry
// a decimal point ("1000.0", not "1000") so golden outputs are stable across
// integral values.
func (v Value) String() string {
	switch v.t {
	case StringType:
		return v.s
	case IntType:
		return strconv.FormatInt(v.i, 10)
	case FloatType:
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case BoolType:
		return strconv.FormatBool(v.b)
	}
	return "<nil>"
}

func compareOrdered[T int64 | float64](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
