package lr

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/clrsim/grammar"
)

// === Items =================================================================

// Item is an LR(1) item: a rule with a dot marking the position of the
// parser within the right-hand side, plus a lookahead terminal.
//
//    [A → α · β, a]
type Item struct {
	LHS       string
	RHS       []string
	Dot       int
	Lookahead string
}

// StartItem returns the initial item of an augmented grammar, S' → · S₀, $.
func StartItem(r *grammar.Rule) Item {
	return Item{LHS: r.LHS, RHS: r.RHS, Dot: 0, Lookahead: grammar.EndMarker}
}

// PeekSymbol returns the symbol after the dot, if any.
func (i Item) PeekSymbol() (string, bool) {
	if i.Dot < len(i.RHS) {
		return i.RHS[i.Dot], true
	}
	return "", false
}

// Advance moves the dot one symbol to the right. Completed items are returned
// unchanged.
func (i Item) Advance() Item {
	if i.Completed() {
		return i
	}
	i.Dot++
	return i
}

// Completed is a predicate: is the dot behind the right-hand side?
func (i Item) Completed() bool {
	return i.Dot >= len(i.RHS)
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []string {
	if i.Completed() {
		return i.RHS
	}
	return i.RHS[:i.Dot]
}

// Suffix returns the symbols after the symbol after the dot (β of A → α·Xβ).
func (i Item) Suffix() []string {
	if i.Dot+1 >= len(i.RHS) {
		return nil
	}
	return i.RHS[i.Dot+1:]
}

func (i Item) String() string {
	var b strings.Builder
	b.WriteString(i.LHS)
	b.WriteString(" →")
	for _, sym := range i.Prefix() {
		b.WriteString(" ")
		b.WriteString(sym)
	}
	b.WriteString(" ·")
	if !i.Completed() {
		for _, sym := range i.RHS[i.Dot:] {
			b.WriteString(" ")
			b.WriteString(sym)
		}
	}
	b.WriteString(", ")
	b.WriteString(i.Lookahead)
	return "[" + b.String() + "]"
}

// CompareItems defines a total order on items: by LHS, then RHS (symbol by
// symbol, shorter first), then dot position, then lookahead.
func CompareItems(a, b Item) int {
	if c := strings.Compare(a.LHS, b.LHS); c != 0 {
		return c
	}
	for k := 0; k < len(a.RHS) && k < len(b.RHS); k++ {
		if c := strings.Compare(a.RHS[k], b.RHS[k]); c != 0 {
			return c
		}
	}
	switch {
	case len(a.RHS) < len(b.RHS):
		return -1
	case len(a.RHS) > len(b.RHS):
		return 1
	case a.Dot < b.Dot:
		return -1
	case a.Dot > b.Dot:
		return 1
	}
	return strings.Compare(a.Lookahead, b.Lookahead)
}

func itemComparator(a, b interface{}) int {
	return CompareItems(a.(Item), b.(Item))
}

// === Item sets =============================================================

// ItemSet is a sorted set of items without duplicates.
type ItemSet struct {
	items *treeset.Set
}

// NewItemSet creates an item set.
func NewItemSet(items ...Item) *ItemSet {
	S := &ItemSet{items: treeset.NewWith(itemComparator)}
	S.Add(items...)
	return S
}

// Add adds items and reports whether the set has grown.
func (S *ItemSet) Add(items ...Item) bool {
	n := S.items.Size()
	for _, i := range items {
		S.items.Add(i)
	}
	return S.items.Size() > n
}

// Contains is a predicate: is i a member of S?
func (S *ItemSet) Contains(i Item) bool {
	return S.items.Contains(i)
}

// Size returns the number of items.
func (S *ItemSet) Size() int {
	return S.items.Size()
}

// Empty is a predicate.
func (S *ItemSet) Empty() bool {
	return S.items.Empty()
}

// Values returns the items in canonical order.
func (S *ItemSet) Values() []Item {
	vals := make([]Item, 0, S.items.Size())
	it := S.items.Iterator()
	for it.Next() {
		vals = append(vals, it.Value().(Item))
	}
	return vals
}

// Copy returns a shallow copy of S. Items are values, their RHS slices are
// shared and never modified.
func (S *ItemSet) Copy() *ItemSet {
	return NewItemSet(S.Values()...)
}

// Equals compares two item sets by content.
func (S *ItemSet) Equals(other *ItemSet) bool {
	if other == nil || S.Size() != other.Size() {
		return false
	}
	a, b := S.Values(), other.Values()
	for k := range a {
		if CompareItems(a[k], b[k]) != 0 {
			return false
		}
	}
	return true
}

// Digest returns a hash of the canonical item list. Equal item sets have
// equal digests; different sets may collide.
func (S *ItemSet) Digest() string {
	canonical := struct {
		Items []Item
	}{
		Items: S.Values(),
	}
	return fmt.Sprintf("%x", structhash.Md5(canonical, 1))
}

func (S *ItemSet) String() string {
	vals := S.Values()
	s := make([]string, len(vals))
	for k, i := range vals {
		s[k] = i.String()
	}
	return "{ " + strings.Join(s, ", ") + " }"
}

// Dump is a debugging helper.
func (S *ItemSet) Dump() {
	for _, i := range S.Values() {
		tracer().Debugf("    %v", i)
	}
}

// === Closure and Goto-Set Operations =======================================

// Closure computes the LR(1) closure of an item set: for every item
// [A → α · X β, a] with X a non-terminal, the items [X → · γ, b] are added for
// every alternative γ of X and every b in FIRST(βa). S is not modified.
func (ga *LRAnalysis) Closure(S *ItemSet) *ItemSet {
	C := S.Copy()
	worklist := C.Values()
	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]
		X, ok := item.PeekSymbol()
		if !ok {
			continue
		}
		alts, isNT := ga.prods.Get(X)
		if !isNT {
			continue
		}
		for _, b := range ga.lookaheads(item.Suffix(), item.Lookahead).Values() {
			for _, gamma := range alts {
				i := Item{LHS: X, RHS: gamma, Dot: 0, Lookahead: b}
				if C.Add(i) {
					worklist = append(worklist, i)
				}
			}
		}
	}
	return C
}

// Goto computes the closure of the set of items of S with the dot advanced
// over X. The result is empty if no item of S expects X.
func (ga *LRAnalysis) Goto(S *ItemSet, X string) *ItemSet {
	G := NewItemSet()
	for _, i := range S.Values() {
		if A, ok := i.PeekSymbol(); ok && A == X {
			G.Add(i.Advance())
		}
	}
	if G.Empty() {
		return G
	}
	C := ga.Closure(G)
	tracer().Debugf("goto(%s) = %d items", X, C.Size())
	return C
}
