package report

import (
	"strings"
	"testing"

	"github.com/npillmayer/clrsim/grammar"
	"github.com/npillmayer/clrsim/lr"
	"github.com/npillmayer/clrsim/lr/sim"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func tables(t *testing.T, text string, opts ...lr.TableOption) *lr.TableGenerator {
	g, _, err := grammar.ReadGrammar("G", strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	lrgen, err := lr.Build(g, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return lrgen
}

func TestGrammarReport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.lr")
	defer teardown()
	//
	assert := assert.New(t)
	lrgen := tables(t, "A -> B c\nB -> b | ε\n")
	out := Grammar(lrgen.Analysis())
	t.Log("\n" + out)
	assert.Contains(out, "0: S' → A")
	assert.Contains(out, "3: B → ε")
	assert.Contains(out, "FIRST(A) = { b, c }")
	assert.Contains(out, "FOLLOW(B) = { c }")
	assert.Contains(out, "FOLLOW(A) = { $ }")
	if out != Grammar(lrgen.Analysis()) {
		t.Errorf("expected report to be reproducible")
	}
}

func TestItemSetsReport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.lr")
	defer teardown()
	//
	assert := assert.New(t)
	lrgen := tables(t, "S -> C C\nC -> c C | d\n")
	out := ItemSets(lrgen.CFSM())
	assert.Contains(out, "I0:\n    [C → · c C, c]")
	assert.Contains(out, "I9:")
	assert.NotContains(out, "I10:")
	assert.Contains(out, "(accepting)")
	assert.Contains(out, "goto(I0, C) = I1")
}

func TestTablesReport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.lr")
	defer teardown()
	//
	assert := assert.New(t)
	out := Tables(tables(t, "E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id\n"))
	t.Log("\n" + out)
	header := tableHeader(out)
	assert.Contains(header, " State ")
	assert.Contains(header, " id ")
	assert.NotContains(header, "ID")
	assert.Contains(out, "acc")
	assert.Contains(out, "r6")
	assert.Contains(out, "6: F → id")
	assert.Contains(out, "No conflicts.")
	out = Tables(tables(t, "S -> L = R | R\nL -> * R | id\nR -> L\n", lr.ReduceOnFollow()))
	assert.Contains(out, "Conflicts (")
	assert.Contains(out, "on =")
	header = tableHeader(Tables(tables(t, "S -> id | ID\n")))
	assert.Contains(header, " id ")
	assert.Contains(header, " ID ")
}

// tableHeader returns the first line of a rendered table containing a column
// label.
func tableHeader(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "State") {
			return line
		}
	}
	return ""
}

func TestStepReport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.sim")
	defer teardown()
	//
	assert := assert.New(t)
	s := sim.NewSimulator(tables(t, "E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id\n"))
	assert.Contains(Step(s), "No simulation prepared")
	if err := s.Prepare("id + id"); err != nil {
		t.Fatal(err)
	}
	out := Step(s)
	assert.Contains(out, "Remaining input: id + id $")
	assert.Contains(out, "Action: start")
	assert.Contains(out, "│ $    0 │")
	s.Step()
	out = Step(s)
	t.Log("\n" + out)
	assert.Contains(out, "Remaining input: + id $")
	assert.Contains(out, "(shift to state")
	assert.Contains(out, "│ id")
	s.Step()
	assert.Contains(Step(s), "(reduce by F → id)")
	s.Run()
	assert.Contains(Step(s), "Parsing successful - input accepted!")
	trace := Trace(s)
	assert.Contains(trace, "acc")
	assert.Contains(trace, "Step")
	assert.Contains(trace, "id")
	s.Prepare("id +")
	s.Run()
	out = Step(s)
	assert.Contains(out, "Error: no action defined")
	assert.Contains(out, "Action: none")
}
