package main

import (
	"fmt"

	"github.com/npillmayer/clrsim/report"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "tables <grammar file path>",
		Short:   "Show the ACTION and GOTO tables of a grammar",
		Example: `  clrsim tables expr.grammar --follow`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTables,
	}
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	lrgen, err := loadTables(args[0])
	if err != nil {
		return err
	}
	fmt.Println(report.Tables(lrgen))
	return nil
}
