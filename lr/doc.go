/*
Package lr implements the construction of canonical LR(1) parser tables.

Static Grammar Analysis

Grammars (see package grammar) are augmented with a start rule S' → S₀ and
then subjected to an LRAnalysis object, which computes FIRST and FOLLOW sets
for the grammar by fixed-point iteration.

    g, _, _ := grammar.ReadGrammar("G", strings.NewReader(`
        A -> B c
        B -> b | ε
    `))
    aug, _ := grammar.Augment(g)
    ga := lr.Analysis(aug)
    fmt.Printf("FIRST(B) = %v", ga.First("B"))

    // Output:
    FIRST(B) = [b ε]

Parser Construction

From the analysis the canonical collection of LR(1) item sets is built, the
characteristic finite state machine (CFSM). The CFSM is transformed into a
GOTO table and an ACTION table. Actions are written as s<n> (shift to state
n), r<n> (reduce by rule n) and acc (accept). Reduce actions are placed on the
lookahead of completed items; option ReduceOnFollow places them on the FOLLOW
set of the left-hand side instead.

    lrgen := lr.NewTableGenerator(ga)  // ga is an LRAnalysis, see above
    err := lrgen.CreateTables()        // construct LR parser tables

Cells written twice with different actions keep the last action and are
reported as conflicts. The CFSM is made available to the client. It can be
exported to Graphviz's Dot-format.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The clrsim Authors

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'clrsim.lr'.
func tracer() tracing.Trace {
	return tracing.Select("clrsim.lr")
}
