package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgo/relgo/common"
)

func TestNewTuple_TypeChecks(t *testing.T) {
	s := customerSchema(t)

	_, err := NewTuple(s, common.NewStringValue("C01"))
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.TypeMismatch), "missing value must be a type mismatch")

	_, err = NewTuple(s, common.NewStringValue("C01"), common.NewStringValue("12222"))
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.TypeMismatch), "wrong kind must be a type mismatch")

	// No int/float coercion on construction either.
	_, err = NewTuple(s, common.NewStringValue("C01"), common.NewFloatValue(12222))
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.TypeMismatch))

	tup, err := NewTuple(s, common.NewStringValue("C01"), common.NewIntValue(12222))
	require.NoError(t, err)
	assert.Equal(t, "C01", tup.Value(0).StringValue())
	assert.Equal(t, int64(12222), tup.Value(1).IntValue())
}

func TestTuple_ValueByName(t *testing.T) {
	s := customerSchema(t)
	tup, err := NewTuple(s, common.NewStringValue("C01"), common.NewIntValue(12222))
	require.NoError(t, err)

	assert.Equal(t, int64(12222), tup.ValueByName("zipCode").IntValue())
	assert.True(t, tup.ValueByName("balance").IsNil())

	values := tup.Values("zipCode", "balance", "customerNumber")
	assert.Equal(t, int64(12222), values[0].IntValue())
	assert.True(t, values[1].IsNil())
	assert.Equal(t, "C01", values[2].StringValue())
}

func TestConcatenate_LeftWins(t *testing.T) {
	left := NewSchema()
	require.NoError(t, left.AddAttribute("a", common.IntType))
	require.NoError(t, left.AddAttribute("b", common.StringType))
	right := NewSchema()
	require.NoError(t, right.AddAttribute("a", common.IntType))
	require.NoError(t, right.AddAttribute("c", common.FloatType))

	t1, err := NewTuple(left, common.NewIntValue(1), common.NewStringValue("x"))
	require.NoError(t, err)
	t2, err := NewTuple(right, common.NewIntValue(1), common.NewFloatValue(2.5))
	require.NoError(t, err)

	combined := Combine(left, right)
	joined, err := Concatenate(combined, t1, t2)
	require.NoError(t, err)
	assert.Equal(t, "{a=1, b=x, c=2.5}", joined.String())
}

func TestTuple_String(t *testing.T) {
	s := customerSchema(t)
	tup, err := NewTuple(s, common.NewStringValue("C01"), common.NewIntValue(12223))
	require.NoError(t, err)
	assert.Equal(t, "{customerNumber=C01, zipCode=12223}", tup.String())
}
