package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/clrsim/lr/sim"
	"github.com/npillmayer/clrsim/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var stepFlags inputFlags

func init() {
	cmd := &cobra.Command{
		Use:     "step <grammar file path>",
		Short:   "Step through the parse of an input line interactively",
		Example: `  clrsim step expr.grammar -i "id + id * id"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runStep,
	}
	stepFlags = addInputFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runStep(cmd *cobra.Command, args []string) error {
	lrgen, err := loadTables(args[0])
	if err != nil {
		return err
	}
	s := sim.NewSimulator(lrgen)
	if err := prepare(s, stepFlags, false); err != nil {
		return err
	}
	repl, err := readline.New(settings.Prompt)
	if err != nil {
		return usageError(err)
	}
	defer repl.Close()
	stepper := &Stepper{sim: s, repl: repl}
	pterm.Info.Println(fmt.Sprintf("Simulation run %s", s.RunID()))
	pterm.Info.Println("Commands: n(ext), p(rev), r(eset), run, d(erivation), t(ree), q(uit). Quit with <ctrl>D")
	fmt.Print(report.Step(s))
	stepper.REPL()
	return nil
}

// Stepper is an interactive stepper for a simulation.
type Stepper struct {
	sim  *sim.Simulator
	repl *readline.Instance
}

// REPL starts interactive mode.
func (st *Stepper) REPL() {
	for {
		line, err := st.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if quit := st.Eval(strings.TrimSpace(line)); quit {
			break
		}
	}
	fmt.Println("Good bye!")
}

// Eval executes a single stepper command. It returns true for quit.
func (st *Stepper) Eval(cmd string) bool {
	switch cmd {
	case "", "n", "next":
		if !st.sim.HasNext() {
			pterm.Warning.Println("no next step")
			return false
		}
		if _, err := st.sim.Step(); err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
	case "p", "prev":
		if !st.sim.Back() {
			pterm.Warning.Println("no previous step")
			return false
		}
	case "r", "reset":
		st.sim.Reset()
	case "run":
		if _, err := st.sim.Run(); err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
	case "d", "derivation":
		for _, r := range st.sim.Derivation() {
			fmt.Printf("  %v\n", r)
		}
		return false
	case "t", "tree":
		renderForest(st.sim)
		return false
	case "q", "quit":
		return true
	default:
		pterm.Error.Println(fmt.Sprintf("unknown command %q", cmd))
		return false
	}
	fmt.Print(report.Step(st.sim))
	return false
}
