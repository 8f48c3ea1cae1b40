/*
Package report renders the stages of clrsim as plain text: the grammar with
its FIRST and FOLLOW sets, the canonical collection of item sets, the
ACTION/GOTO tables and single steps or complete traces of a simulation.

Every report is a function of its input only and returns a string.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The clrsim Authors

*/
package report

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/npillmayer/clrsim/grammar"
	"github.com/npillmayer/clrsim/lr"
	"github.com/npillmayer/clrsim/lr/sim"
)

// tableWidth is the maximum width of rendered tables.
const tableWidth = 160

// Grammar lists the numbered rules of a grammar and the FIRST and FOLLOW
// sets of its non-terminals.
func Grammar(ga *lr.LRAnalysis) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Grammar %s (start symbol %s):\n", ga.Grammar().Name, ga.Start()))
	for _, r := range ga.Rules() {
		b.WriteString(fmt.Sprintf("%4d: %v\n", r.Serial, r))
	}
	nonterms := ga.Grammar().Productions().NonTerminals()
	b.WriteString("\nFIRST sets:\n")
	for _, A := range nonterms {
		b.WriteString(fmt.Sprintf("  FIRST(%s) = { %s }\n", A, strings.Join(ga.First(A), ", ")))
	}
	b.WriteString("\nFOLLOW sets:\n")
	for _, A := range nonterms {
		b.WriteString(fmt.Sprintf("  FOLLOW(%s) = { %s }\n", A, strings.Join(ga.Follow(A), ", ")))
	}
	return b.String()
}

// ItemSets lists the states of a CFSM with their items and transitions.
func ItemSets(cfsm *lr.CFSM) string {
	var b strings.Builder
	for _, s := range cfsm.States() {
		b.WriteString(fmt.Sprintf("I%d:", s.ID))
		if s.Accept {
			b.WriteString(" (accepting)")
		}
		b.WriteString("\n")
		for _, i := range s.Items.Values() {
			b.WriteString("    ")
			b.WriteString(i.String())
			b.WriteString("\n")
		}
	}
	b.WriteString("\nTransitions:\n")
	for _, e := range cfsm.Edges() {
		b.WriteString(fmt.Sprintf("  goto(I%d, %s) = I%d\n", e.From, e.Label, e.To))
	}
	return b.String()
}

// Tables renders the ACTION and GOTO tables side by side, followed by the
// rule list and the conflicts found during table construction. The header row
// is plain table data, so symbols keep their case.
func Tables(lrgen *lr.TableGenerator) string {
	actions, gotos := lrgen.ActionTable(), lrgen.GotoTable()
	if actions == nil || gotos == nil {
		return "tables not yet created\n"
	}
	header := []string{"State"}
	for _, a := range actions.Columns() {
		header = append(header, a)
	}
	for _, A := range gotos.Columns() {
		header = append(header, A)
	}
	data := [][]string{header}
	for state := 0; state < actions.Rows(); state++ {
		row := []string{fmt.Sprintf("%d", state)}
		for _, a := range actions.Columns() {
			cell := ""
			if action, ok := actions.Action(state, a); ok {
				cell = action.String()
			}
			row = append(row, cell)
		}
		for _, A := range gotos.Columns() {
			cell := ""
			if target, ok := gotos.Goto(state, A); ok {
				cell = fmt.Sprintf("%d", target)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	var b strings.Builder
	b.WriteString(table(data))
	b.WriteString("\n\nRules:\n")
	for _, r := range lrgen.Analysis().Rules() {
		b.WriteString(fmt.Sprintf("%4d: %v\n", r.Serial, r))
	}
	if conflicts := lrgen.Conflicts(); len(conflicts) > 0 {
		b.WriteString(fmt.Sprintf("\nConflicts (%d):\n", len(conflicts)))
		for _, c := range conflicts {
			b.WriteString(fmt.Sprintf("  %v\n", c))
		}
	} else {
		b.WriteString("\nNo conflicts.\n")
	}
	return b.String()
}

// Step renders the current snapshot of a simulation: remaining input, the
// action which led to the snapshot, and the stack of (symbol, state) pairs,
// top first. The bottom state carries the marker $.
func Step(s *sim.Simulator) string {
	snap := s.Current()
	if snap == nil {
		return "No simulation prepared.\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Step %d of %d\n", s.Cursor(), len(s.History())-1))
	b.WriteString("Remaining input: ")
	b.WriteString(strings.Join(s.Remaining(), " "))
	b.WriteString("\n")
	b.WriteString("Action: ")
	b.WriteString(actionText(s, snap))
	b.WriteString("\n")
	b.WriteString("Stack:\n")
	pairs := stackPairs(snap)
	w := 1
	for _, p := range pairs {
		if len([]rune(p[0])) > w {
			w = len([]rune(p[0]))
		}
	}
	b.WriteString("  ┌" + strings.Repeat("─", w+7) + "┐\n")
	for i := len(pairs) - 1; i >= 0; i-- {
		b.WriteString(fmt.Sprintf("  │ %-*s %4s │\n", w, pairs[i][0], pairs[i][1]))
	}
	b.WriteString("  └" + strings.Repeat("─", w+7) + "┘\n")
	switch {
	case snap.Accepted:
		b.WriteString("Parsing successful - input accepted!\n")
	case snap.Error:
		b.WriteString("Error: " + snap.Message + "\n")
	}
	return b.String()
}

// stackPairs returns (symbol, state) pairs, bottom first.
func stackPairs(snap *sim.Snapshot) [][2]string {
	pairs := make([][2]string, len(snap.States))
	for i, state := range snap.States {
		sym := grammar.EndMarker
		if i > 0 && i-1 < len(snap.Symbols) {
			sym = snap.Symbols[i-1]
		}
		pairs[i] = [2]string{sym, fmt.Sprintf("%d", state)}
	}
	return pairs
}

func actionText(s *sim.Simulator, snap *sim.Snapshot) string {
	switch snap.Action.Kind {
	case lr.Shift:
		return fmt.Sprintf("%v (shift to state %d)", snap.Action, snap.Action.Target)
	case lr.Reduce:
		if r := s.Tables().Rule(snap.Action.Target); r != nil {
			return fmt.Sprintf("%v (reduce by %v)", snap.Action, r)
		}
		return snap.Action.String()
	case lr.Accept:
		return "acc"
	}
	if snap.Error {
		return "none"
	}
	return "start"
}

// Trace renders the complete history of a simulation as a table, one row per
// snapshot.
func Trace(s *sim.Simulator) string {
	history := s.History()
	if len(history) == 0 {
		return "No simulation prepared.\n"
	}
	tokens := s.Tokens()
	data := [][]string{{"Step", "Stack", "Input", "Action"}}
	for i, snap := range history {
		var stack []string
		for _, p := range stackPairs(snap) {
			stack = append(stack, p[0]+" "+p[1])
		}
		var input []string
		if snap.Pointer < len(tokens) {
			input = append(input, tokens[snap.Pointer:]...)
		}
		input = append(input, grammar.EndMarker)
		action := snap.Action.String()
		if snap.Error {
			action = "error: " + snap.Message
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			strings.Join(stack, " "),
			strings.Join(input, " "),
			action,
		})
	}
	return table(data)
}

// table renders rows with borders. The first row is rendered like any other
// row, then underlined with the top border.
func table(data [][]string) string {
	out := rosed.Edit("").
		InsertTableOpts(0, data, tableWidth, rosed.Options{
			TableBorders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	lines := strings.Split(out, "\n")
	if len(data) < 2 || len(lines) < 3 {
		return out
	}
	ruled := append([]string{lines[0], lines[1], lines[0]}, lines[2:]...)
	return strings.Join(ruled, "\n")
}
