package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/relgo/relgo/bank"
	"github.com/relgo/relgo/catalog"
	"github.com/relgo/relgo/common"
	"github.com/relgo/relgo/storage"
)

func sampleBank(t *testing.T) *catalog.Database {
	db, err := bank.New(10)
	require.NoError(t, err)
	return db
}

func strs(tuples []*storage.Tuple) []string {
	out := make([]string, len(tuples))
	for i, tup := range tuples {
		out[i] = tup.String()
	}
	return out
}

func TestDatabase_CreateTableAndInsert(t *testing.T) {
	db := catalog.NewDatabase("Sample Bank")
	customers := db.CreateTable("customers")
	require.NoError(t, customers.AddAttribute("customerNumber", common.StringType))
	require.NoError(t, customers.AddAttribute("zipCode", common.IntType))
	require.NoError(t, customers.SetPrimaryKey("customerNumber"))

	tup, err := db.Insert("customers", common.NewStringValue("C10"), common.NewIntValue(12224))
	require.NoError(t, err)
	assert.Equal(t, "{customerNumber=C10, zipCode=12224}", tup.String())

	_, err = db.Insert("customers", common.NewStringValue("C10"), common.NewIntValue(12224))
	assert.True(t, common.IsCode(err, common.DuplicateKey))

	assert.Equal(t, "Sample Bank{customers={customerNumber=string, zipCode=int}:1}", db.String())
}

func TestDatabase_InsertIntoUnknownTable(t *testing.T) {
	db := catalog.NewDatabase("empty")
	_, err := db.Insert("customers", common.NewStringValue("C00"))
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.NoSuchRelation))
}

func TestDatabase_SelectAll(t *testing.T) {
	db := sampleBank(t)

	tuples, err := db.Select("*", "customers")
	require.NoError(t, err)
	require.Len(t, tuples, 10)
	assert.Equal(t, "{customerNumber=C00, zipCode=12222}", tuples[0].String())
	assert.Equal(t, "{customerNumber=C09, zipCode=12223}", tuples[9].String())

	tuples, err = db.Select("*", "accounts")
	require.NoError(t, err)
	require.Len(t, tuples, 21)
	assert.Equal(t, "{accountNumber=A00, customerNumber=C00, balance=1000.0}", tuples[0].String())
	assert.Equal(t, "{accountNumber=A09, customerNumber=C04, balance=1000.0}", tuples[9].String())
}

func TestDatabase_SelectWhere(t *testing.T) {
	db := sampleBank(t)

	tuples, err := db.SelectWhere("*", "accounts", "balance > 10000")
	require.NoError(t, err)
	require.Len(t, tuples, 7)
	assert.Equal(t, "{accountNumber=A02, customerNumber=C01, balance=100000.0}", tuples[0].String())
	assert.Equal(t, "{accountNumber=A20, customerNumber=C09, balance=100000.0}", tuples[6].String())
}

func TestDatabase_NaturalJoin(t *testing.T) {
	db := sampleBank(t)

	tuples, err := db.Select("accountNumber, zipCode", "accounts natural join customers")
	require.NoError(t, err)
	require.Len(t, tuples, 21)
	assert.Equal(t, "{accountNumber=A00, zipCode=12222}", tuples[0].String())
	assert.Equal(t, "{accountNumber=A20, zipCode=12223}", tuples[20].String())

	for account, want := range map[string]string{
		"A10": "{zipCode=12223}",
		"A11": "{zipCode=12223}",
		"A15": "{zipCode=12225}",
	} {
		tuples, err = db.SelectWhere("zipCode", "accounts natural join customers",
			`accountNumber = "`+account+`"`)
		require.NoError(t, err)
		assert.Equal(t, []string{want}, strs(tuples), "account %s", account)
	}
}

func TestDatabase_GlobalAggregation(t *testing.T) {
	db := sampleBank(t)

	tuples, err := db.Select("count(accountNumber) as count", "accounts")
	require.NoError(t, err)
	assert.Equal(t, []string{"{count=21}"}, strs(tuples))

	tuples, err = db.Select("max(balance) as maxBalance", "accounts")
	require.NoError(t, err)
	assert.Equal(t, []string{"{maxBalance=100000.0}"}, strs(tuples))
}

func TestDatabase_GroupedAggregation(t *testing.T) {
	db := sampleBank(t)

	tuples, err := db.SelectGroupBy("zipCode, count(customerNumber) as customerCount",
		"customers", "", "zipCode")
	require.NoError(t, err)
	require.Len(t, tuples, 4)
	assert.Equal(t, "{zipCode=12222, customerCount=3}", tuples[0].String())
	assert.Equal(t, "{zipCode=12225, customerCount=2}", tuples[3].String())

	tuples, err = db.SelectGroupBy("zipCode, count(accountNumber) as accountCount",
		"accounts natural join customers", "", "zipCode")
	require.NoError(t, err)
	require.Len(t, tuples, 4)
	assert.Equal(t, "{zipCode=12222, accountCount=6}", tuples[0].String())
	assert.Equal(t, "{zipCode=12225, accountCount=4}", tuples[3].String())
}

func TestDatabase_With(t *testing.T) {
	db := sampleBank(t)

	// Materialize the minimum balance, then join it back against accounts
	// to find the accounts holding it.
	derived, err := db.With("t", catalog.Request{
		Attributes: "min(balance) as balance",
		Tables:     "accounts",
	})
	require.NoError(t, err)

	tuples, err := derived.Select("accountNumber, balance", "accounts natural join t")
	require.NoError(t, err)
	require.Len(t, tuples, 7)
	assert.Equal(t, "{accountNumber=A00, balance=1000.0}", tuples[0].String())
	assert.Equal(t, "{accountNumber=A09, balance=1000.0}", tuples[3].String())

	// The original catalog is untouched.
	_, err = db.Select("*", "t")
	assert.True(t, common.IsCode(err, common.NoSuchRelation))

	// The two catalogs share the base relations.
	before, err := db.Select("*", "accounts")
	require.NoError(t, err)
	after, err := derived.Select("*", "accounts")
	require.NoError(t, err)
	assert.Equal(t, strs(before), strs(after))
}

func TestDatabase_WithTracesQueryID(t *testing.T) {
	// Materialization runs through the same uuid-tagged trace as Query.
	core, logs := observer.New(zapcore.DebugLevel)
	db, err := bank.New(2, catalog.WithLogger(zap.New(core)))
	require.NoError(t, err)

	_, err = db.With("t", catalog.Request{
		Attributes: "min(balance) as balance",
		Tables:     "accounts",
	})
	require.NoError(t, err)

	started := logs.FilterMessage("query start").All()
	require.Len(t, started, 1)
	assert.NotEmpty(t, started[0].ContextMap()["queryID"])

	done := logs.FilterMessage("query done").All()
	require.Len(t, done, 1)
	assert.Equal(t, started[0].ContextMap()["queryID"], done[0].ContextMap()["queryID"])
}

func TestDatabase_CompileErrors(t *testing.T) {
	db := sampleBank(t)

	_, err := db.Select("*", "loans")
	assert.True(t, common.IsCode(err, common.NoSuchRelation))

	_, err = db.Select("*", "")
	assert.True(t, common.IsCode(err, common.ParsingError))

	_, err = db.SelectWhere("*", "accounts", "zipCode = 12222")
	assert.True(t, common.IsCode(err, common.UnboundVariable))

	_, err = db.SelectWhere("*", "accounts", "balance + 1")
	assert.True(t, common.IsCode(err, common.TypeMismatch))
}

func TestDatabase_String(t *testing.T) {
	db := sampleBank(t)
	assert.Equal(t,
		"Sample Bank{"+
			"accounts={accountNumber=string, customerNumber=string, balance=float}:21, "+
			"customers={customerNumber=string, zipCode=int}:10}",
		db.String())
}
