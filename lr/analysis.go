package lr

import (
	"strings"

	"github.com/npillmayer/clrsim/grammar"
)

// LRAnalysis is an object for static grammar analysis. It holds the FIRST and
// FOLLOW sets of all non-terminals, computed eagerly by Analysis.
type LRAnalysis struct {
	g         *grammar.Grammar
	prods     *grammar.Productions
	rules     []*grammar.Rule
	ruleIndex map[string]int
	symbols   []string
	first     map[string]*SymbolSet
	follow    map[string]*SymbolSet
}

// Analysis computes FIRST and FOLLOW sets for a grammar. Usually g is an
// augmented grammar (see grammar.Augment); LR tables can only be built for
// augmented grammars.
func Analysis(g *grammar.Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:         g,
		prods:     g.Productions(),
		ruleIndex: make(map[string]int),
		first:     make(map[string]*SymbolSet),
		follow:    make(map[string]*SymbolSet),
	}
	ga.rules = ga.prods.Rules()
	for _, r := range ga.rules {
		ga.ruleIndex[ruleKey(r.LHS, r.RHS)] = r.Serial
	}
	ga.symbols = ga.prods.Symbols()
	ga.computeFirst()
	ga.computeFollow(g.Start())
	return ga
}

func ruleKey(lhs string, rhs []string) string {
	return lhs + "\x00" + strings.Join(rhs, "\x00")
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *grammar.Grammar {
	return ga.g
}

// Start returns the start symbol of the grammar.
func (ga *LRAnalysis) Start() string {
	return ga.g.Start()
}

// Rules returns the numbered rules of the grammar.
func (ga *LRAnalysis) Rules() []*grammar.Rule {
	return ga.rules
}

// RuleIndex returns the production index of lhs → rhs, or -1.
func (ga *LRAnalysis) RuleIndex(lhs string, rhs []string) int {
	if n, ok := ga.ruleIndex[ruleKey(lhs, rhs)]; ok {
		return n
	}
	return -1
}

// Symbols returns all grammar symbols, sorted.
func (ga *LRAnalysis) Symbols() []string {
	return ga.symbols
}

// IsNonTerminal is a predicate: does sym have productions?
func (ga *LRAnalysis) IsNonTerminal(sym string) bool {
	return ga.prods.IsNonTerminal(sym)
}

// First returns FIRST(A) for a non-terminal A, sorted. May contain ε.
// Returns nil for symbols which are not non-terminals.
func (ga *LRAnalysis) First(A string) []string {
	return ga.first[A].Values()
}

// Follow returns FOLLOW(A) for a non-terminal A, sorted. May contain $.
// Returns nil for symbols which are not non-terminals.
func (ga *LRAnalysis) Follow(A string) []string {
	return ga.follow[A].Values()
}

// DerivesEpsilon is a predicate: does A derive the empty string?
func (ga *LRAnalysis) DerivesEpsilon(A string) bool {
	return ga.first[A].Contains(grammar.Epsilon)
}

// FirstOfSequence returns FIRST(α) for a sequence of symbols. It contains ε
// if every symbol of α may vanish, in particular if α is empty.
func (ga *LRAnalysis) FirstOfSequence(seq []string) *SymbolSet {
	F := NewSymbolSet()
	if ga.firstInto(F, seq) {
		F.Add(grammar.Epsilon)
	}
	return F
}

// firstInto adds FIRST(seq)\{ε} to F and reports whether seq may vanish.
func (ga *LRAnalysis) firstInto(F *SymbolSet, seq []string) bool {
	for _, X := range seq {
		if !ga.prods.IsNonTerminal(X) {
			F.Add(X)
			return false
		}
		for _, a := range ga.first[X].Values() {
			if a != grammar.Epsilon {
				F.Add(a)
			}
		}
		if !ga.first[X].Contains(grammar.Epsilon) {
			return false
		}
	}
	return true
}

// lookaheads returns FIRST(βa), the lookaheads of closure items. ε is never
// part of the result.
func (ga *LRAnalysis) lookaheads(beta []string, a string) *SymbolSet {
	L := NewSymbolSet()
	if ga.firstInto(L, beta) {
		L.Add(a)
	}
	return L
}

func (ga *LRAnalysis) computeFirst() {
	for _, A := range ga.prods.NonTerminals() {
		ga.first[A] = NewSymbolSet()
	}
	iterations := 0
	for changed := true; changed; iterations++ {
		changed = false
		ga.prods.Each(func(A string, alts [][]string) {
			for _, alt := range alts {
				if ga.first[A].Union(ga.FirstOfSequence(alt)) {
					changed = true
				}
			}
		})
	}
	tracer().Infof("FIRST sets computed in %d iterations", iterations)
}

func (ga *LRAnalysis) computeFollow(start string) {
	for _, A := range ga.prods.NonTerminals() {
		ga.follow[A] = NewSymbolSet()
	}
	if f, ok := ga.follow[start]; ok {
		f.Add(grammar.EndMarker)
	}
	iterations := 0
	for changed := true; changed; iterations++ {
		changed = false
		ga.prods.Each(func(lhs string, alts [][]string) {
			for _, alt := range alts {
				for i, B := range alt {
					if !ga.prods.IsNonTerminal(B) {
						continue
					}
					F := ga.FirstOfSequence(alt[i+1:])
					if F.Contains(grammar.Epsilon) {
						F.Remove(grammar.Epsilon)
						F.Union(ga.follow[lhs])
					}
					if ga.follow[B].Union(F) {
						changed = true
					}
				}
			}
		})
	}
	tracer().Infof("FOLLOW sets computed in %d iterations", iterations)
}
