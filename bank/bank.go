// Package bank builds the sample bank database used by the command line
// tool and the end-to-end tests: a customers table keyed by customer number
// and an accounts table keyed by account number, with roughly two accounts
// per customer.
package bank

import (
	"fmt"

	"github.com/relgo/relgo/catalog"
	"github.com/relgo/relgo/common"
)

// CreateTables registers the customers and accounts tables on db.
func CreateTables(db *catalog.Database) error {
	customers := db.CreateTable("customers")
	if err := customers.AddAttribute("customerNumber", common.StringType); err != nil {
		return err
	}
	if err := customers.AddAttribute("zipCode", common.IntType); err != nil {
		return err
	}
	if err := customers.SetPrimaryKey("customerNumber"); err != nil {
		return err
	}

	accounts := db.CreateTable("accounts")
	if err := accounts.AddAttribute("accountNumber", common.StringType); err != nil {
		return err
	}
	if err := accounts.AddAttribute("customerNumber", common.StringType); err != nil {
		return err
	}
	if err := accounts.AddAttribute("balance", common.FloatType); err != nil {
		return err
	}
	return accounts.SetPrimaryKey("accountNumber")
}

// AddData populates the tables with n customers spread over four zip codes
// and 2n+1 accounts. Customer i is named Cii with zip code 12222+i%4;
// account j is named Ajj, belongs to customer j/2 (the last customer takes
// the overflow) and holds one of three balances cycling by j%3.
func AddData(db *catalog.Database, n int) error {
	for i := 0; i < n; i++ {
		_, err := db.Insert("customers",
			common.NewStringValue(fmt.Sprintf("C%02d", i)),
			common.NewIntValue(int64(12222+i%4)))
		if err != nil {
			return err
		}
	}

	balances := []float64{1000, 10000, 100000}
	for j := 0; j <= 2*n; j++ {
		owner := j / 2
		if owner > n-1 {
			owner = n - 1
		}
		_, err := db.Insert("accounts",
			common.NewStringValue(fmt.Sprintf("A%02d", j)),
			common.NewStringValue(fmt.Sprintf("C%02d", owner)),
			common.NewFloatValue(balances[j%3]))
		if err != nil {
			return err
		}
	}
	return nil
}

// New creates the sample bank database with n customers.
func New(n int, opts ...catalog.Option) (*catalog.Database, error) {
	db := catalog.NewDatabase("Sample Bank", opts...)
	if err := CreateTables(db); err != nil {
		return nil, err
	}
	if err := AddData(db, n); err != nil {
		return nil, err
	}
	return db, nil
}
