package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leengari/colstore/internal/logging"
)

func main() {
	logger, cleanup := logging.SetupLogger()
	defer cleanup()
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:           "colstore",
		Short:         "In-memory columnar query engine over CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("comma", ",", "CSV field delimiter")
	root.PersistentFlags().String("out", "", "write the result to this CSV file instead of stdout")

	addCommands(root)

	if err := root.Execute(); err != nil {
		fatal("%s", err)
	}
}

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show file",
		Short: "Load a CSV file and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow}
	cmd.Flags().StringArray("columns", nil, "columns to load (default all)")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "project file",
		Short: "Project a CSV file onto a subset of its columns",
		Args:  cobra.ExactArgs(1),
		RunE:  runProject}
	cmd.Flags().StringArray("columns", nil, "output columns, optionally renamed as src:as")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "filter file",
		Short: "Filter rows of a CSV file by a predicate",
		Args:  cobra.ExactArgs(1),
		RunE:  runFilter}
	cmd.Flags().StringArray("where", nil, "predicate term as column:op:value, ANDed together")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "aggregate file",
		Short: "Group and aggregate a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE:  runAggregate}
	cmd.Flags().StringArray("group-by", nil, "group-by columns")
	cmd.Flags().StringArray("agg", nil, "aggregate as func:column (count, sum, min, max, avg)")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "join left-file right-file",
		Short: "Equi-join two CSV files",
		Args:  cobra.ExactArgs(2),
		RunE:  runJoin}
	cmd.Flags().String("on", "", "join keys as leftcol=rightcol")
	cmd.Flags().String("strategy", "hash", "join strategy: nested-loop, sort-merge or hash")
	cmd.Flags().Bool("index", false, "build and reuse an index on the right key")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "update file",
		Short: "Update matching rows of a CSV file in place",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate}
	cmd.Flags().StringArray("where", nil, "predicate term as column:op:value, ANDed together")
	cmd.Flags().StringArray("set", nil, "assignment as column=value")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "lookup file",
		Short: "Index-accelerated equality lookup on one column",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookup}
	cmd.Flags().String("column", "", "column to index")
	cmd.Flags().String("value", "", "value to look up")
	root.AddCommand(cmd)
}

func fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}
