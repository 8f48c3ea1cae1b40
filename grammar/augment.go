package grammar

import "fmt"

// AugmentOption configures Augment.
type AugmentOption func(*augmentOptions)

type augmentOptions struct {
	fixedStart string
}

// FixedStart makes Augment use sym as the start symbol, regardless of
// the start symbol of the grammar.
func FixedStart(sym string) AugmentOption {
	return func(o *augmentOptions) {
		o.fixedStart = sym
	}
}

// Augment returns a new grammar with a production S' → S₀ inserted as rule 0,
// followed by copies of all productions of g. g is not modified.
//
// S₀ is the start symbol of g, either set explicitly or the first
// non-terminal defined.
func Augment(g *Grammar, opts ...AugmentOption) (*Grammar, error) {
	o := augmentOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if g == nil || g.Size() == 0 {
		return nil, ErrEmptyGrammar
	}
	if g.augmented || g.IsNonTerminal(AugmentedStart) {
		return nil, ErrAlreadyAugmented
	}
	start := g.Start()
	if o.fixedStart != "" {
		start = o.fixedStart
	}
	if !g.IsNonTerminal(start) {
		return nil, fmt.Errorf("augmenting %s with start %q: %w", g.Name, start, ErrNoStartSymbol)
	}
	aug := NewGrammar(g.Name)
	aug.prods.add(AugmentedStart, []string{start})
	g.productions().Each(func(lhs string, alts [][]string) {
		aug.prods.add(lhs, alts...)
	})
	aug.start = AugmentedStart
	aug.augmented = true
	tracer().Infof("augmented grammar %s: %s → %s", g.Name, AugmentedStart, start)
	return aug, nil
}

// OriginalStart returns S₀ of an augmented grammar, i.e. the single symbol on
// the right-hand side of the start rule.
func (g *Grammar) OriginalStart() string {
	if !g.augmented {
		return g.Start()
	}
	if alts, ok := g.prods.Get(AugmentedStart); ok && len(alts) == 1 && len(alts[0]) == 1 {
		return alts[0][0]
	}
	return ""
}
