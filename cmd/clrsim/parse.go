package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/clrsim/lr/sim"
	"github.com/npillmayer/clrsim/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// inputFlags are shared by the commands which simulate a parse.
type inputFlags struct {
	input *string
	file  *string
}

func addInputFlags(cmd *cobra.Command) inputFlags {
	return inputFlags{
		input: cmd.Flags().StringP("input", "i", "", "input line"),
		file:  cmd.Flags().StringP("file", "f", "", "input file path; the first line is read (default stdin)"),
	}
}

var parseFlags inputFlags

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Simulate the parse of an input line and show every step",
		Example: `  echo "id + id * id" | clrsim parse expr.grammar`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags = addInputFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	lrgen, err := loadTables(args[0])
	if err != nil {
		return err
	}
	s := sim.NewSimulator(lrgen)
	if err := prepare(s, parseFlags, true); err != nil {
		return err
	}
	final, err := s.Run()
	if err != nil {
		return inputError(err)
	}
	fmt.Println(report.Trace(s))
	fmt.Println()
	if final.Accepted {
		pterm.Success.Println("Parsing successful - input accepted!")
		return nil
	}
	return inputError(errors.New(final.Message))
}

// prepare starts a simulation from the input given by flags. Standard input
// is used if allowed and neither an input line nor a file is given.
func prepare(s *sim.Simulator, flags inputFlags, stdin bool) error {
	var err error
	switch {
	case *flags.input != "":
		err = s.Prepare(*flags.input)
	case *flags.file != "":
		f, ferr := os.Open(*flags.file)
		if ferr != nil {
			return inputError(fmt.Errorf("cannot open input: %w", ferr))
		}
		defer f.Close()
		err = s.PrepareFrom(f)
	case stdin:
		err = s.PrepareFrom(os.Stdin)
	default:
		return usageError(errors.New("no input given, use --input or --file"))
	}
	if err != nil {
		return inputError(err)
	}
	tracer().Infof("simulation run %s", s.RunID())
	return nil
}
