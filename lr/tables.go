package lr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/clrsim/grammar"
	"github.com/npillmayer/clrsim/lr/sparse"
)

// ErrNotAugmented is returned when tables are requested for a grammar
// without a start rule S' → S₀.
var ErrNotAugmented = errors.New("grammar is not augmented")

// === Actions ===============================================================

// ActionKind is the kind of an entry of the ACTION table.
type ActionKind int

// Kinds of parser actions.
const (
	NoAction ActionKind = iota
	Shift
	Reduce
	Accept
)

// Action is an entry of the ACTION table. Target is the state to shift to, or
// the number of the rule to reduce.
type Action struct {
	Kind   ActionKind
	Target int
}

// String returns the wire format of an action: s<n>, r<n> or acc.
func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return "s" + strconv.Itoa(a.Target)
	case Reduce:
		return "r" + strconv.Itoa(a.Target)
	case Accept:
		return "acc"
	}
	return ""
}

// ParseAction reads an action in wire format.
func ParseAction(s string) (Action, error) {
	if s == "acc" {
		return Action{Kind: Accept}, nil
	}
	if len(s) < 2 || (s[0] != 's' && s[0] != 'r') {
		return Action{}, fmt.Errorf("malformed action %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 {
		return Action{}, fmt.Errorf("malformed action %q", s)
	}
	if s[0] == 's' {
		return Action{Kind: Shift, Target: n}, nil
	}
	return Action{Kind: Reduce, Target: n}, nil
}

// Actions are stored in sparse matrices as int32, with the kind in the lower
// 2 bits.
func (a Action) encode() int32 {
	return int32(a.Target)<<2 | int32(a.Kind)
}

func decodeAction(v int32) Action {
	return Action{Kind: ActionKind(v & 3), Target: int(v >> 2)}
}

// Conflict records an ACTION table cell which has been overwritten with a
// different action.
type Conflict struct {
	State    int
	Symbol   string
	Previous Action
	Incoming Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d on %s: %s replaced by %s", c.State, c.Symbol, c.Previous, c.Incoming)
}

// === Tables ================================================================

// table is a parser table with states as rows and symbols as columns.
type table struct {
	matrix  *sparse.IntMatrix
	columns []string
	colinx  map[string]int
}

func newTable(rows int, columns []string) table {
	t := table{
		matrix:  sparse.NewIntMatrix(rows, len(columns), sparse.DefaultNullValue),
		columns: columns,
		colinx:  make(map[string]int, len(columns)),
	}
	for j, sym := range columns {
		t.colinx[sym] = j
	}
	return t
}

func (t *table) value(state int, sym string) (int32, bool) {
	j, ok := t.colinx[sym]
	if !ok {
		return 0, false
	}
	v := t.matrix.Value(state, j)
	return v, v != t.matrix.NullValue()
}

func (t *table) set(state int, sym string, v int32) (int32, bool) {
	j, ok := t.colinx[sym]
	if !ok {
		tracer().Errorf("no table column for symbol %s", sym)
		return 0, false
	}
	old := t.matrix.Set(state, j, v)
	return old, old != t.matrix.NullValue()
}

// Columns returns the symbols labeling the columns of the table.
func (t *table) Columns() []string {
	return t.columns
}

// Rows returns the number of rows (states).
func (t *table) Rows() int {
	return t.matrix.M()
}

// Size returns the number of entries.
func (t *table) Size() int {
	return t.matrix.ValueCount()
}

// ActionTable maps (state, terminal) to a parser action. Its columns are the
// terminals of the grammar, followed by $.
type ActionTable struct {
	table
}

// Action returns the action for a state and a lookahead terminal.
func (t *ActionTable) Action(state int, sym string) (Action, bool) {
	if t == nil {
		return Action{}, false
	}
	v, ok := t.value(state, sym)
	if !ok {
		return Action{}, false
	}
	return decodeAction(v), true
}

// GotoTable maps (state, non-terminal) to a state.
type GotoTable struct {
	table
}

// Goto returns the state to go to after a reduction to non-terminal sym.
func (t *GotoTable) Goto(state int, sym string) (int, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.value(state, sym)
	return int(v), ok
}

// === Table Generator =======================================================

// TableOption configures a TableGenerator.
type TableOption func(*TableGenerator)

// ReduceOnFollow makes the table generator place reduce actions for a
// completed item A → α · on every terminal in FOLLOW(A), instead of on the
// lookahead of the item only. Tables built this way may contain conflicts
// which the canonical LR(1) tables do not have.
func ReduceOnFollow() TableOption {
	return func(lrgen *TableGenerator) {
		lrgen.onFollow = true
	}
}

// TableGenerator is a generator object to construct canonical LR(1) parser
// tables. Clients usually create a Grammar G, augment it, create an
// LRAnalysis-object for G, and then a table generator.
// TableGenerator.CreateTables() constructs the CFSM and parser tables for an
// LR-parser recognizing grammar G.
//
// Build does all of this in one step.
type TableGenerator struct {
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *GotoTable
	actiontable  *ActionTable
	conflicts    []Conflict
	onFollow     bool
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed)
// grammar.
func NewTableGenerator(ga *LRAnalysis, opts ...TableOption) *TableGenerator {
	lrgen := &TableGenerator{ga: ga}
	for _, opt := range opts {
		opt(lrgen)
	}
	return lrgen
}

// Build augments g (if it is not yet augmented), analyses it and creates
// the parser tables.
func Build(g *grammar.Grammar, opts ...TableOption) (*TableGenerator, error) {
	if !g.IsAugmented() {
		aug, err := grammar.Augment(g)
		if err != nil {
			return nil, err
		}
		g = aug
	}
	lrgen := NewTableGenerator(Analysis(g), opts...)
	if err := lrgen.CreateTables(); err != nil {
		return nil, err
	}
	return lrgen, nil
}

// Analysis returns the grammar analysis the tables are built from.
func (lrgen *TableGenerator) Analysis() *LRAnalysis {
	return lrgen.ga
}

// Grammar returns the (augmented) grammar the tables are built for.
func (lrgen *TableGenerator) Grammar() *grammar.Grammar {
	return lrgen.ga.Grammar()
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// The CFSM will be created, if it has not been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = BuildCFSM(lrgen.ga)
	}
	return lrgen.dfa
}

// ActionTable returns the ACTION table. The tables have to be built by calling
// CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *ActionTable {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// GotoTable returns the GOTO table. The tables have to be built by calling
// CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *GotoTable {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// Conflicts returns all overwritten ACTION table cells, in order of
// occurrence.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables creates the CFSM, the GOTO table and the ACTION table.
func (lrgen *TableGenerator) CreateTables() error {
	if !lrgen.ga.Grammar().IsAugmented() {
		return fmt.Errorf("creating tables for %s: %w", lrgen.ga.Grammar().Name, ErrNotAugmented)
	}
	dfa := lrgen.CFSM()
	var terms, nonterms []string
	for _, A := range lrgen.ga.prods.NonTerminals() {
		if A != grammar.AugmentedStart {
			nonterms = append(nonterms, A)
		}
	}
	terms = append(lrgen.ga.prods.Terminals(), grammar.EndMarker)
	lrgen.gototable = &GotoTable{newTable(dfa.Size(), nonterms)}
	lrgen.actiontable = &ActionTable{newTable(dfa.Size(), terms)}
	lrgen.conflicts = nil
	lrgen.HasConflicts = false
	for _, state := range dfa.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items.Values() {
			lrgen.tableEntries(state, i)
		}
	}
	tracer().Infof("ACTION table with %d entries, GOTO table with %d entries, %d conflicts",
		lrgen.actiontable.Size(), lrgen.gototable.Size(), len(lrgen.conflicts))
	return nil
}

// tableEntries creates the table entries for an item i of state.
func (lrgen *TableGenerator) tableEntries(state *State, i Item) {
	if X, ok := i.PeekSymbol(); ok {
		target, ok := lrgen.dfa.Transition(state.ID, X)
		if !ok {
			return
		}
		if lrgen.ga.IsNonTerminal(X) {
			tracer().Debugf("    GOTO(%d, %s) = %d", state.ID, X, target)
			lrgen.gototable.set(state.ID, X, int32(target))
		} else {
			lrgen.setAction(state.ID, X, Action{Kind: Shift, Target: target})
		}
		return
	}
	if i.LHS == grammar.AugmentedStart {
		if i.Lookahead == grammar.EndMarker {
			lrgen.setAction(state.ID, grammar.EndMarker, Action{Kind: Accept})
		}
		return
	}
	inx := lrgen.ga.RuleIndex(i.LHS, i.RHS)
	if inx < 0 {
		tracer().Errorf("no rule for completed item %v", i)
		return
	}
	reduce := Action{Kind: Reduce, Target: inx}
	if lrgen.onFollow {
		for _, la := range lrgen.ga.Follow(i.LHS) {
			lrgen.setAction(state.ID, la, reduce)
		}
		return
	}
	lrgen.setAction(state.ID, i.Lookahead, reduce)
}

// setAction writes an ACTION table cell. The last writer wins; overwriting a
// different action is recorded as a conflict.
func (lrgen *TableGenerator) setAction(state int, sym string, a Action) {
	tracer().Debugf("    ACTION(%d, %s) = %s", state, sym, a)
	old, wasSet := lrgen.actiontable.set(state, sym, a.encode())
	if wasSet && old != a.encode() {
		c := Conflict{State: state, Symbol: sym, Previous: decodeAction(old), Incoming: a}
		tracer().Infof("conflict: %v", c)
		lrgen.conflicts = append(lrgen.conflicts, c)
		lrgen.HasConflicts = true
	}
}

// Rule returns rule number n of the grammar, or nil.
func (lrgen *TableGenerator) Rule(n int) *grammar.Rule {
	rules := lrgen.ga.Rules()
	if n < 0 || n >= len(rules) {
		return nil
	}
	return rules[n]
}

// ConflictSummary is a short helper to stringify the list of conflicts.
func (lrgen *TableGenerator) ConflictSummary() string {
	if len(lrgen.conflicts) == 0 {
		return "no conflicts"
	}
	s := make([]string, len(lrgen.conflicts))
	for k, c := range lrgen.conflicts {
		s[k] = c.String()
	}
	return strings.Join(s, "\n")
}
