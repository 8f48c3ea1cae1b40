package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/clrsim/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var analyzeFlags = struct {
	dot *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "analyze <grammar file path>",
		Short:   "Show a grammar with its FIRST/FOLLOW sets and LR(1) item sets",
		Example: `  clrsim analyze expr.grammar --dot cfsm.dot`,
		Args:    cobra.ExactArgs(1),
		RunE:    runAnalyze,
	}
	analyzeFlags.dot = cmd.Flags().String("dot", "", "write the CFSM to a GraphViz file")
	rootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	lrgen, err := loadTables(args[0])
	if err != nil {
		return err
	}
	fmt.Println(report.Grammar(lrgen.Analysis()))
	fmt.Println(report.ItemSets(lrgen.CFSM()))
	if *analyzeFlags.dot == "" {
		return nil
	}
	f, err := os.Create(*analyzeFlags.dot)
	if err != nil {
		return usageError(fmt.Errorf("cannot create Dot file: %w", err))
	}
	defer f.Close()
	if err := lrgen.CFSM().CFSM2GraphViz(f); err != nil {
		return usageError(err)
	}
	pterm.Info.Println(fmt.Sprintf("CFSM written to %s", *analyzeFlags.dot))
	return nil
}
