package main

import (
	"github.com/spf13/cobra"
)

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "select tables",
		Short: "Run a query against the sample bank database",
		Args:  cobra.ExactArgs(1),
		Run:   selectQuery}
	cmd.Flags().StringP("attributes", "a", "*", "attribute definitions, comma separated")
	cmd.Flags().StringP("where", "w", "", "selection predicate")
	cmd.Flags().StringP("group-by", "g", "", "grouping attributes, comma separated")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "with table tables",
		Short: "Materialize a query result as a derived table and show the catalog",
		Args:  cobra.ExactArgs(2),
		Run:   withTable}
	cmd.Flags().StringP("attributes", "a", "*", "attribute definitions, comma separated")
	cmd.Flags().StringP("where", "w", "", "selection predicate")
	cmd.Flags().StringP("group-by", "g", "", "grouping attributes, comma separated")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "tables",
		Short: "List the tables and schemas of the sample bank database",
		Run:   listTables}
	root.AddCommand(cmd)
}

func main() {
	var root = &cobra.Command{Use: "relgo"}
	root.PersistentFlags().IntP("customers", "n", 10, "number of customers in the sample bank")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable query tracing")
	addCommands(root)
	root.Execute()
}
