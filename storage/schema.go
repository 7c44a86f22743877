// Package storage implements the engine's data model: schemas, typed
// tuples, and key-ordered in-memory relations.
package storage

import (
	"strings"

	"github.com/relgo/relgo/common"
)

// Schema is the ordered attribute catalog shared by a relation and its
// tuples. Insertion order is the physical tuple layout and is semantically
// significant: it drives positional construction and the textual rendering.
// A schema is built once through AddAttribute calls and then treated as
// immutable by every tuple and relation that references it.
type Schema struct {
	indices    map[string]int
	names      []string
	types      []common.Type
	primaryKey []string
}

// NewSchema creates an empty Schema.
func NewSchema() *Schema {
	return &Schema{indices: make(map[string]int)}
}

// AddAttribute appends an attribute. It fails with DuplicateAttributeName
// if the name is already present.
func (s *Schema) AddAttribute(name string, t common.Type) error {
	if _, ok := s.indices[name]; ok {
		return common.NewError(common.DuplicateAttributeName, "attribute %q already defined", name)
	}
	s.indices[name] = len(s.names)
	s.names = append(s.names, name)
	s.types = append(s.types, t)
	return nil
}

// SetPrimaryKey records the ordered key attribute list. Every named
// attribute must already exist in the schema; unknown names fail with
// UnboundVariable rather than surfacing at first use. Calling it with no
// names clears the key, so tuples key on their full value vector again; an
// empty key list must never survive, or every tuple would share one key.
func (s *Schema) SetPrimaryKey(names ...string) error {
	for _, name := range names {
		if _, ok := s.indices[name]; !ok {
			return common.NewError(common.UnboundVariable, "primary key attribute %q not in schema", name)
		}
	}
	if len(names) == 0 {
		s.primaryKey = nil
		return nil
	}
	s.primaryKey = names
	return nil
}

// Size returns the number of attributes.
func (s *Schema) Size() int {
	return len(s.names)
}

// AttributeName returns the name of the attribute at index i.
func (s *Schema) AttributeName(i int) string {
	return s.names[i]
}

// AttributeNames returns the attribute names in insertion order. The
// returned slice is shared; callers must not modify it.
func (s *Schema) AttributeNames() []string {
	return s.names
}

// AttributeType returns the declared type of the attribute at index i.
func (s *Schema) AttributeType(i int) common.Type {
	return s.types[i]
}

// AttributeIndex returns the index of the named attribute. The second
// return is false when the schema has no such attribute; callers rely on
// this to detect non-overlap, so an unknown name is not an error.
func (s *Schema) AttributeIndex(name string) (int, bool) {
	i, ok := s.indices[name]
	return i, ok
}

// TypeOf returns the declared type of the named attribute.
func (s *Schema) TypeOf(name string) (common.Type, bool) {
	i, ok := s.indices[name]
	if !ok {
		return common.NilType, false
	}
	return s.types[i], true
}

// PrimaryKey returns the ordered primary-key attribute names, or nil when
// no key is declared.
func (s *Schema) PrimaryKey() []string {
	return s.primaryKey
}

// CommonAttributeNames returns the names present in both schemas, in this
// schema's insertion order. This drives natural-join matching.
func (s *Schema) CommonAttributeNames(other *Schema) []string {
	var out []string
	for _, name := range s.names {
		if _, ok := other.indices[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Combine builds the natural-join/concatenation output shape: every
// attribute of s1 in order, then the attributes of s2 not already present.
// The left side wins on name collision. The result carries no primary key.
func Combine(s1, s2 *Schema) *Schema {
	out := NewSchema()
	for i, name := range s1.names {
		out.indices[name] = len(out.names)
		out.names = append(out.names, name)
		out.types = append(out.types, s1.types[i])
	}
	for i, name := range s2.names {
		if _, ok := out.indices[name]; ok {
			continue
		}
		out.indices[name] = len(out.names)
		out.names = append(out.names, name)
		out.types = append(out.types, s2.types[i])
	}
	return out
}

// String renders the schema as an ordered mapping {name=typeName, ...}.
func (s *Schema) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(s.types[i].String())
	}
	b.WriteByte('}')
	return b.String()
}
