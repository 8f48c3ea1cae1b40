package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func exprGrammar() *Grammar {
	g := NewGrammar("G")
	g.AddProduction("E", []string{"E", "+", "T"}, []string{"T"})
	g.AddProduction("T", []string{"T", "*", "F"}, []string{"F"})
	g.AddProduction("F", []string{"(", "E", ")"}, []string{"id"})
	return g
}

func TestGrammarBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	g := exprGrammar()
	if g.Size() != 3 {
		t.Errorf("expected 3 non-terminals, have %d", g.Size())
	}
	if g.Start() != "E" {
		t.Errorf("expected start symbol E, have %q", g.Start())
	}
	g.SetStart("T")
	if g.Start() != "T" {
		t.Errorf("expected explicit start symbol T, have %q", g.Start())
	}
	g.Dump()
}

func TestGrammarSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	assert := assert.New(t)
	p := exprGrammar().Productions()
	assert.Equal([]string{"E", "T", "F"}, p.NonTerminals())
	assert.Equal([]string{"+", "*", "(", ")", "id"}, p.Terminals())
	assert.Equal([]string{"(", ")", "*", "+", "E", "F", "T", "id"}, p.Symbols())
	assert.True(p.IsNonTerminal("F"))
	assert.False(p.IsNonTerminal("id"))
	assert.False(p.IsNonTerminal("undefined"))
}

func TestRuleNumbering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	g := exprGrammar()
	g.AddProduction("E", []string{"E", "-", "T"}) // grouped with the other E-alternatives
	rules := g.Rules()
	if len(rules) != 7 {
		t.Fatalf("expected 7 rules, have %d", len(rules))
	}
	for i, r := range rules {
		if r.Serial != i {
			t.Errorf("rule %v has serial %d, expected %d", r, r.Serial, i)
		}
		if rr := g.Rule(i); rr == nil || rr.String() != r.String() {
			t.Errorf("Rule(%d) = %v, expected %v", i, rr, r)
		}
	}
	if rules[2].String() != "E → E - T" {
		t.Errorf("expected E-alternatives grouped together, rule 2 is %v", rules[2])
	}
	p := g.Productions()
	if n := p.RuleIndex("F", []string{"id"}); n != 6 {
		t.Errorf("expected F → id to be rule 6, is %d", n)
	}
	if n := p.RuleIndex("F", []string{"x"}); n != -1 {
		t.Errorf("expected unknown rule to have index -1, is %d", n)
	}
	if g.Rule(7) != nil || g.Rule(-1) != nil {
		t.Errorf("expected out of range rules to be nil")
	}
}

func TestEpsilonAlternatives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	g := NewGrammar("G")
	g.AddProduction("A", []string{"B", "c"})
	g.AddProduction("B", []string{"b"}, []string{}, []string{Epsilon})
	alts, ok := g.Productions().Get("B")
	if !ok || len(alts) != 3 {
		t.Fatalf("expected 3 alternatives for B, have %v", alts)
	}
	if len(alts[1]) != 0 || len(alts[2]) != 0 {
		t.Errorf("expected ε-productions to be empty, have %v", alts)
	}
	if !g.Rule(3).IsEpsilon() {
		t.Errorf("expected rule 3 to be an ε-production, is %v", g.Rule(3))
	}
	if g.String() != "A -> B c\nB -> b | ε | ε\n" {
		t.Errorf("unexpected rendering %q", g.String())
	}
}

func TestProductionsCopy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	g := exprGrammar()
	p := g.Productions()
	alts, _ := p.Get("F")
	alts[1][0] = "changed"
	if a, _ := g.Productions().Get("F"); a[1][0] != "id" {
		t.Errorf("grammar modified through copy of its productions")
	}
}

func TestAugment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	g := exprGrammar()
	aug, err := Augment(g)
	if err != nil {
		t.Fatal(err)
	}
	if !aug.IsAugmented() || g.IsAugmented() {
		t.Errorf("expected only the new grammar to be augmented")
	}
	if g.IsNonTerminal(AugmentedStart) {
		t.Errorf("source grammar has been modified")
	}
	r := aug.Rule(0)
	if r.LHS != AugmentedStart || len(r.RHS) != 1 || r.RHS[0] != "E" {
		t.Errorf("expected rule 0 to be S' → E, is %v", r)
	}
	if aug.Start() != AugmentedStart || aug.OriginalStart() != "E" {
		t.Errorf("unexpected start symbols %q / %q", aug.Start(), aug.OriginalStart())
	}
	if len(aug.Rules()) != len(g.Rules())+1 {
		t.Errorf("expected exactly one rule to be added")
	}
	aug.Dump()
}

func TestAugmentErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	if _, err := Augment(NewGrammar("empty")); !errors.Is(err, ErrEmptyGrammar) {
		t.Errorf("expected ErrEmptyGrammar, have %v", err)
	}
	aug, _ := Augment(exprGrammar())
	if _, err := Augment(aug); !errors.Is(err, ErrAlreadyAugmented) {
		t.Errorf("expected ErrAlreadyAugmented, have %v", err)
	}
	if _, err := Augment(exprGrammar(), FixedStart("S")); !errors.Is(err, ErrNoStartSymbol) {
		t.Errorf("expected ErrNoStartSymbol, have %v", err)
	}
	g := exprGrammar()
	g.SetStart("T")
	aug, err := Augment(g)
	if err != nil || aug.OriginalStart() != "T" {
		t.Errorf("expected explicit start symbol T to be augmented, have %v", err)
	}
}
