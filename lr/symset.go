package lr

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// SymbolSet is a sorted set of grammar symbols, used for FIRST and FOLLOW
// sets and for lookaheads.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a set of symbols.
func NewSymbolSet(syms ...string) *SymbolSet {
	s := &SymbolSet{set: treeset.NewWithStringComparator()}
	s.Add(syms...)
	return s
}

// Add adds symbols and reports whether the set has grown.
func (s *SymbolSet) Add(syms ...string) bool {
	n := s.set.Size()
	for _, sym := range syms {
		s.set.Add(sym)
	}
	return s.set.Size() > n
}

// Union adds all symbols of other and reports whether the set has grown.
func (s *SymbolSet) Union(other *SymbolSet) bool {
	if other == nil {
		return false
	}
	return s.Add(other.Values()...)
}

// Remove removes a symbol.
func (s *SymbolSet) Remove(sym string) {
	s.set.Remove(sym)
}

// Contains is a predicate: is sym a member of the set?
func (s *SymbolSet) Contains(sym string) bool {
	if s == nil {
		return false
	}
	return s.set.Contains(sym)
}

// Size returns the number of symbols.
func (s *SymbolSet) Size() int {
	if s == nil {
		return 0
	}
	return s.set.Size()
}

// Values returns the symbols in sorted order.
func (s *SymbolSet) Values() []string {
	if s == nil {
		return nil
	}
	vals := make([]string, 0, s.set.Size())
	it := s.set.Iterator()
	for it.Next() {
		vals = append(vals, it.Value().(string))
	}
	return vals
}

// Copy returns a copy of the set.
func (s *SymbolSet) Copy() *SymbolSet {
	return NewSymbolSet(s.Values()...)
}

func (s *SymbolSet) String() string {
	return "{" + strings.Join(s.Values(), ", ") + "}"
}
