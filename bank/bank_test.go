package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TableShapes(t *testing.T) {
	db, err := New(10)
	require.NoError(t, err)

	customers, err := db.Relation("customers")
	require.NoError(t, err)
	assert.Equal(t, "{customerNumber=string, zipCode=int}", customers.Schema().String())
	assert.Equal(t, []string{"customerNumber"}, customers.Schema().PrimaryKey())
	assert.Equal(t, 10, customers.Len())

	accounts, err := db.Relation("accounts")
	require.NoError(t, err)
	assert.Equal(t, "{accountNumber=string, customerNumber=string, balance=float}", accounts.Schema().String())
	assert.Equal(t, []string{"accountNumber"}, accounts.Schema().PrimaryKey())
	assert.Equal(t, 21, accounts.Len())
}

func TestAddData_Distribution(t *testing.T) {
	db, err := New(4)
	require.NoError(t, err)

	// Four customers across four zip codes, nine accounts with the last
	// customer taking the overflow account.
	tuples, err := db.Select("*", "customers")
	require.NoError(t, err)
	require.Len(t, tuples, 4)
	assert.Equal(t, "{customerNumber=C03, zipCode=12225}", tuples[3].String())

	tuples, err = db.Select("*", "accounts")
	require.NoError(t, err)
	require.Len(t, tuples, 9)
	assert.Equal(t, "{accountNumber=A08, customerNumber=C03, balance=100000.0}", tuples[8].String())
}
