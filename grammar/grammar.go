/*
Package grammar holds context-free grammars for the LR tools of clrsim.

Building a Grammar

Grammars are either built in code or read from text. Productions map a
non-terminal to an ordered list of alternatives. A symbol is a non-terminal
if and only if it has productions; every other symbol is a terminal.

    g := grammar.NewGrammar("G")
    g.AddProduction("S", []string{"A", "a"})   // S  ->  A a
    g.AddProduction("A", []string{"b"}, nil)   // A  ->  b | ε

Grammar text uses one line per non-terminal:

    S -> A a
    A -> b | ε

Rules are numbered by enumerating non-terminals in the order they were
first defined and, within a non-terminal, alternatives in order. After
augmentation the start rule S' → S is rule 0:

   g.Dump()

   0: [S'] ::= [S]
   1: [S] ::= [A a]
   2: [A] ::= [b]
   3: [A] ::= []

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The clrsim Authors

*/
package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'clrsim.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("clrsim.grammar")
}

// Reserved symbols.
const (
	Epsilon        = "ε"  // the empty string
	EndMarker      = "$"  // end of input
	AugmentedStart = "S'" // start symbol of augmented grammars
)

// Errors of grammar construction.
var (
	ErrEmptyGrammar     = errors.New("grammar has no productions")
	ErrAlreadyAugmented = errors.New("grammar is already augmented")
	ErrNoStartSymbol    = errors.New("start symbol has no productions")
)

// --- Rules -----------------------------------------------------------------

// Rule is a single production LHS → RHS. Serial is the production index,
// used as the rule number of reduce actions.
type Rule struct {
	Serial int
	LHS    string
	RHS    []string
}

// IsEpsilon is true for rules LHS → ε.
func (r *Rule) IsEpsilon() bool {
	return len(r.RHS) == 0
}

func (r *Rule) String() string {
	if r.IsEpsilon() {
		return fmt.Sprintf("%s → %s", r.LHS, Epsilon)
	}
	return fmt.Sprintf("%s → %s", r.LHS, strings.Join(r.RHS, " "))
}

// --- Productions -----------------------------------------------------------

// Productions is an ordered map from non-terminals to alternatives. Keys keep
// the order of their first insertion.
type Productions struct {
	m *linkedhashmap.Map // string → [][]string
}

func newProductions() *Productions {
	return &Productions{m: linkedhashmap.New()}
}

// add appends alternatives for lhs.
func (p *Productions) add(lhs string, alternatives ...[]string) {
	alts, _ := p.Get(lhs)
	for _, alt := range alternatives {
		alts = append(alts, normalizeRHS(alt))
	}
	p.m.Put(lhs, alts)
}

// normalizeRHS copies an alternative and drops ε symbols: ε is the unit of
// concatenation, an alternative consisting of ε only is empty.
func normalizeRHS(alt []string) []string {
	rhs := make([]string, 0, len(alt))
	for _, sym := range alt {
		if sym != Epsilon {
			rhs = append(rhs, sym)
		}
	}
	return rhs
}

// Get returns the alternatives for a non-terminal.
func (p *Productions) Get(lhs string) ([][]string, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.m.Get(lhs)
	if !ok {
		return nil, false
	}
	return v.([][]string), true
}

// IsNonTerminal is a predicate: does sym have productions?
func (p *Productions) IsNonTerminal(sym string) bool {
	_, ok := p.Get(sym)
	return ok
}

// Size returns the number of non-terminals.
func (p *Productions) Size() int {
	if p == nil {
		return 0
	}
	return p.m.Size()
}

// NonTerminals returns all non-terminals in definition order.
func (p *Productions) NonTerminals() []string {
	if p == nil {
		return nil
	}
	keys := p.m.Keys()
	nts := make([]string, len(keys))
	for i, k := range keys {
		nts[i] = k.(string)
	}
	return nts
}

// Terminals returns all terminals in order of first appearance.
func (p *Productions) Terminals() []string {
	seen := map[string]bool{}
	var terms []string
	p.Each(func(lhs string, alts [][]string) {
		for _, alt := range alts {
			for _, sym := range alt {
				if !seen[sym] && !p.IsNonTerminal(sym) {
					seen[sym] = true
					terms = append(terms, sym)
				}
			}
		}
	})
	return terms
}

// Symbols returns all grammar symbols, terminals and non-terminals, sorted
// and without duplicates.
func (p *Productions) Symbols() []string {
	set := treeset.NewWithStringComparator()
	p.Each(func(lhs string, alts [][]string) {
		set.Add(lhs)
		for _, alt := range alts {
			for _, sym := range alt {
				set.Add(sym)
			}
		}
	})
	syms := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		syms = append(syms, v.(string))
	}
	return syms
}

// Each calls f for every non-terminal in definition order.
func (p *Productions) Each(f func(lhs string, alternatives [][]string)) {
	if p == nil {
		return
	}
	it := p.m.Iterator()
	for it.Next() {
		f(it.Key().(string), it.Value().([][]string))
	}
}

// Rules enumerates all productions and numbers them.
func (p *Productions) Rules() []*Rule {
	var rules []*Rule
	p.Each(func(lhs string, alts [][]string) {
		for _, alt := range alts {
			rules = append(rules, &Rule{Serial: len(rules), LHS: lhs, RHS: alt})
		}
	})
	return rules
}

// Rule returns rule number n, or nil.
func (p *Productions) Rule(n int) *Rule {
	if n < 0 {
		return nil
	}
	serial := 0
	var rule *Rule
	p.Each(func(lhs string, alts [][]string) {
		if rule != nil {
			return
		}
		if n < serial+len(alts) {
			rule = &Rule{Serial: n, LHS: lhs, RHS: alts[n-serial]}
		}
		serial += len(alts)
	})
	return rule
}

// RuleIndex returns the production index of lhs → rhs, or -1.
func (p *Productions) RuleIndex(lhs string, rhs []string) int {
	for _, r := range p.Rules() {
		if r.LHS == lhs && equalSymbols(r.RHS, rhs) {
			return r.Serial
		}
	}
	return -1
}

// Copy returns a deep copy.
func (p *Productions) Copy() *Productions {
	c := newProductions()
	p.Each(func(lhs string, alts [][]string) {
		c.add(lhs, alts...)
	})
	return c
}

func equalSymbols(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a named set of productions with a start symbol.
type Grammar struct {
	Name      string
	prods     *Productions
	start     string
	augmented bool
}

// NewGrammar creates an empty grammar.
func NewGrammar(name string) *Grammar {
	return &Grammar{
		Name:  name,
		prods: newProductions(),
	}
}

// AddProduction appends alternatives to the productions of lhs. An empty
// alternative (or one consisting of ε only) is an ε-production. Symbol names
// are not validated.
func (g *Grammar) AddProduction(lhs string, alternatives ...[]string) {
	if len(alternatives) == 0 {
		return
	}
	g.prods.add(lhs, alternatives...)
}

// Productions returns a copy of the production map.
func (g *Grammar) Productions() *Productions {
	return g.prods.Copy()
}

// productions returns the production map without copying. Only for read
// access within this package.
func (g *Grammar) productions() *Productions {
	return g.prods
}

// SetStart sets the start symbol explicitly.
func (g *Grammar) SetStart(sym string) {
	g.start = sym
}

// Start returns the start symbol: either set explicitly, or the first
// non-terminal defined.
func (g *Grammar) Start() string {
	if g.start != "" {
		return g.start
	}
	if nts := g.prods.NonTerminals(); len(nts) > 0 {
		return nts[0]
	}
	return ""
}

// IsAugmented is true for grammars returned by Augment.
func (g *Grammar) IsAugmented() bool {
	return g.augmented
}

// IsNonTerminal is a predicate: does sym have productions?
func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.prods.IsNonTerminal(sym)
}

// Rules returns all rules, numbered.
func (g *Grammar) Rules() []*Rule {
	return g.prods.Rules()
}

// Rule returns rule number n, or nil.
func (g *Grammar) Rule(n int) *Rule {
	return g.prods.Rule(n)
}

// Size returns the number of non-terminals.
func (g *Grammar) Size() int {
	return g.prods.Size()
}

// Dump is a debugging helper.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.Rules() {
		tracer().Debugf("%3d: [%s] ::= %v", r.Serial, r.LHS, r.RHS)
	}
	tracer().Debugf("-------------------------------------------------")
}

// String renders the grammar in the format read by ReadGrammar.
func (g *Grammar) String() string {
	var b strings.Builder
	g.prods.Each(func(lhs string, alts [][]string) {
		b.WriteString(lhs)
		b.WriteString(" -> ")
		for i, alt := range alts {
			if i > 0 {
				b.WriteString(" | ")
			}
			if len(alt) == 0 {
				b.WriteString(Epsilon)
			} else {
				b.WriteString(strings.Join(alt, " "))
			}
		}
		b.WriteString("\n")
	})
	return b.String()
}
