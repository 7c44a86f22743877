package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relgo/relgo/bank"
	"github.com/relgo/relgo/catalog"
	"github.com/relgo/relgo/logging"
)

func fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

func getString(cmd *cobra.Command, name string) string {
	result, _ := cmd.Flags().GetString(name)
	return result
}

// newBank builds the sample database from the persistent flags.
func newBank(cmd *cobra.Command) *catalog.Database {
	n, _ := cmd.Flags().GetInt("customers")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := logging.New(verbose)
	if err != nil {
		fatal("%s", err)
	}
	db, err := bank.New(n, catalog.WithLogger(logger))
	if err != nil {
		fatal("%s", err)
	}
	return db
}

func requestFromFlags(cmd *cobra.Command, tables string) catalog.Request {
	return catalog.Request{
		Attributes: getString(cmd, "attributes"),
		Tables:     tables,
		Predicate:  getString(cmd, "where"),
		GroupBy:    getString(cmd, "group-by"),
	}
}

func selectQuery(cmd *cobra.Command, args []string) {
	db := newBank(cmd)
	tuples, err := db.Query(requestFromFlags(cmd, args[0]))
	if err != nil {
		fatal("%s", err)
	}
	for _, t := range tuples {
		fmt.Println(t)
	}
	fmt.Printf("%d rows\n", len(tuples))
}

func withTable(cmd *cobra.Command, args []string) {
	db := newBank(cmd)
	next, err := db.With(args[0], requestFromFlags(cmd, args[1]))
	if err != nil {
		fatal("%s", err)
	}
	fmt.Println(next)
}

func listTables(cmd *cobra.Command, args []string) {
	fmt.Println(newBank(cmd))
}
