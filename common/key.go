package common

import "strings"

// Key identifies a tuple within a relation. It is the vector of primary-key
// attribute values, or the tuple's full value vector when no primary key is
// declared. Because every supported value kind is totally ordered, keys of
// equal arity always have a deterministic total order.
type Key struct {
	values []Value
}

// NewKey creates a Key from the given component values.
func NewKey(values ...Value) Key {
	return Key{values: values}
}

// Values returns the key's component values. The returned slice is shared;
// callers must not modify it.
func (k Key) Values() []Value {
	return k.values
}

// Compare compares two keys componentwise.
// Returns -1 if k < other, 0 if k == other, 1 if k > other.
// Keys in the same relation always have the same arity.
func (k Key) Compare(other Key) int {
	Assert(len(k.values) == len(other.values), "cannot compare keys of different arity")

	for i := range k.values {
		if cmp := k.values[i].Compare(other.values[i]); cmp != 0 {
			return cmp
		}
	}
	return 0
}

// Equal reports structural equality of two keys.
func (k Key) Equal(other Key) bool {
	if len(k.values) != len(other.values) {
		return false
	}
	return k.Compare(other) == 0
}

func (k Key) String() string {
	if len(k.values) == 1 {
		return k.values[0].String()
	}
	parts := make([]string, len(k.values))
	for i, v := range k.values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
