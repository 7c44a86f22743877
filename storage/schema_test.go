package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgo/relgo/common"
)

func customerSchema(t *testing.T) *Schema {
	s := NewSchema()
	require.NoError(t, s.AddAttribute("customerNumber", common.StringType))
	require.NoError(t, s.AddAttribute("zipCode", common.IntType))
	require.NoError(t, s.SetPrimaryKey("customerNumber"))
	return s
}

func TestSchema_AddAttribute_Duplicate(t *testing.T) {
	s := NewSchema()
	require.NoError(t, s.AddAttribute("a", common.IntType))
	err := s.AddAttribute("a", common.StringType)
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.DuplicateAttributeName))
}

func TestSchema_SetPrimaryKey_UnknownAttribute(t *testing.T) {
	// Unknown key attributes are rejected at declaration time, not at
	// first insert.
	s := NewSchema()
	require.NoError(t, s.AddAttribute("a", common.IntType))
	err := s.SetPrimaryKey("missing")
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.UnboundVariable))
	assert.Nil(t, s.PrimaryKey())
}

func TestSchema_SetPrimaryKey_NoNamesClearsKey(t *testing.T) {
	s := customerSchema(t)
	require.NoError(t, s.SetPrimaryKey())
	assert.Nil(t, s.PrimaryKey())

	// With the key cleared, tuples key on the full value vector: rows that
	// differ in any attribute coexist.
	r := NewRelation(s)
	_, err := r.Insert(common.NewStringValue("C00"), common.NewIntValue(12222))
	require.NoError(t, err)
	_, err = r.Insert(common.NewStringValue("C00"), common.NewIntValue(12223))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestSchema_Lookups(t *testing.T) {
	s := customerSchema(t)
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, []string{"customerNumber", "zipCode"}, s.AttributeNames())

	i, ok := s.AttributeIndex("zipCode")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, common.IntType, s.AttributeType(i))

	_, ok = s.AttributeIndex("balance")
	assert.False(t, ok)

	typ, ok := s.TypeOf("customerNumber")
	require.True(t, ok)
	assert.Equal(t, common.StringType, typ)
}

func TestSchema_CommonAttributeNames(t *testing.T) {
	left := NewSchema()
	require.NoError(t, left.AddAttribute("a", common.IntType))
	require.NoError(t, left.AddAttribute("b", common.StringType))
	require.NoError(t, left.AddAttribute("c", common.FloatType))

	right := NewSchema()
	require.NoError(t, right.AddAttribute("c", common.FloatType))
	require.NoError(t, right.AddAttribute("a", common.IntType))
	require.NoError(t, right.AddAttribute("d", common.BoolType))

	// Receiver order, not argument order.
	assert.Equal(t, []string{"a", "c"}, left.CommonAttributeNames(right))
	assert.Equal(t, []string{"c", "a"}, right.CommonAttributeNames(left))
	assert.Nil(t, left.CommonAttributeNames(NewSchema()))
}

func TestSchema_Combine(t *testing.T) {
	left := NewSchema()
	require.NoError(t, left.AddAttribute("a", common.IntType))
	require.NoError(t, left.AddAttribute("b", common.StringType))
	require.NoError(t, left.SetPrimaryKey("a"))

	right := NewSchema()
	require.NoError(t, right.AddAttribute("a", common.IntType))
	require.NoError(t, right.AddAttribute("c", common.FloatType))

	combined := Combine(left, right)
	assert.Equal(t, []string{"a", "b", "c"}, combined.AttributeNames())
	assert.Nil(t, combined.PrimaryKey())
}

func TestSchema_String(t *testing.T) {
	s := customerSchema(t)
	assert.Equal(t, "{customerNumber=string, zipCode=int}", s.String())
	assert.Equal(t, "{}", NewSchema().String())
}
