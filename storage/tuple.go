package storage

import (
	"strings"

	"github.com/relgo/relgo/common"
)

// Tuple is one typed row bound to exactly one Schema. The value at position
// i has exactly the declared type of attribute i; there is no implicit
// coercion. Tuples are immutable after construction.
type Tuple struct {
	schema *Schema
	values []common.Value
}

// NewTuple constructs a Tuple, positionally type-checking each value
// against the schema. The first violation fails with TypeMismatch; a
// missing or extra value is a TypeMismatch as well.
func NewTuple(schema *Schema, values ...common.Value) (*Tuple, error) {
	if len(values) != schema.Size() {
		return nil, common.NewError(common.TypeMismatch,
			"got %d values for schema of size %d", len(values), schema.Size())
	}
	for i, v := range values {
		if v.Type() != schema.AttributeType(i) {
			return nil, common.NewError(common.TypeMismatch,
				"attribute %q declared %s, got %s",
				schema.AttributeName(i), schema.AttributeType(i), v.Type())
		}
	}
	return &Tuple{schema: schema, values: values}, nil
}

// Concatenate builds a tuple for the given schema by taking, for each
// attribute, t1's value when t1's schema has the attribute and t2's value
// otherwise. It is used to assemble natural-join output rows after matching
// has already verified equality on the shared attributes.
func Concatenate(schema *Schema, t1, t2 *Tuple) (*Tuple, error) {
	values := make([]common.Value, schema.Size())
	for i := range values {
		v := t1.ValueByName(schema.AttributeName(i))
		if v.IsNil() {
			v = t2.ValueByName(schema.AttributeName(i))
		}
		values[i] = v
	}
	return NewTuple(schema, values...)
}

// Schema returns the schema this tuple conforms to.
func (t *Tuple) Schema() *Schema {
	return t.schema
}

// Value returns the value at position i.
func (t *Tuple) Value(i int) common.Value {
	return t.values[i]
}

// ValueByName returns the value of the named attribute, or the missing
// sentinel when the schema has no such attribute.
func (t *Tuple) ValueByName(name string) common.Value {
	i, ok := t.schema.AttributeIndex(name)
	if !ok {
		return common.NilValue
	}
	return t.values[i]
}

// Values returns the values of the named attributes, position by position;
// unknown names yield the missing sentinel at their position.
func (t *Tuple) Values(names ...string) []common.Value {
	out := make([]common.Value, len(names))
	for i, name := range names {
		out[i] = t.ValueByName(name)
	}
	return out
}

// AllValues returns the full value vector in schema order. The returned
// slice is shared; callers must not modify it.
func (t *Tuple) AllValues() []common.Value {
	return t.values
}

// String renders the tuple as an ordered mapping {name=value, ...}.
func (t *Tuple) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range t.values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.schema.AttributeName(i))
		b.WriteByte('=')
		b.WriteString(v.String())
	}
	b.WriteByte('}')
	return b.String()
}
