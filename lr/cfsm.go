package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/clrsim/grammar"
)

// === CFSM Construction =====================================================

// State is a state within the CFSM for a grammar.
type State struct {
	ID     int      // serial ID of this state
	Items  *ItemSet // LR(1) items of this state
	Accept bool     // does the state contain S' → S₀ ·, $ ?
}

func (s *State) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.Items.Size())
}

// Dump is a debugging helper
func (s *State) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.Items.Dump()
	tracer().Debugf("-------------------------")
}

// Edge is a CFSM transition between two states, labeled with a grammar symbol.
type Edge struct {
	From, To int
	Label    string
}

// CFSM is the characteristic finite state machine for a LR(1) grammar, i.e.
// the canonical collection of LR(1) item sets together with their
// transitions. It is constructed by BuildCFSM, usually indirectly by a
// TableGenerator.
type CFSM struct {
	ga     *LRAnalysis
	states []*State
	arena  map[string][]int       // item set digest → state IDs
	trans  map[int]map[string]int // state → symbol → state
	edges  *arraylist.List        // all the edges between states, in order of creation
	S0     *State                 // start state
}

func emptyCFSM(ga *LRAnalysis) *CFSM {
	return &CFSM{
		ga:    ga,
		arena: make(map[string][]int),
		trans: make(map[int]map[string]int),
		edges: arraylist.New(),
	}
}

// BuildCFSM constructs the canonical collection of LR(1) item sets for an
// analysed grammar. State 0 is the closure of the start item. States are
// processed in order of their IDs, goto-sets are computed for every grammar
// symbol in sorted order; non-empty goto-sets which have not been seen before
// become new states.
func BuildCFSM(ga *LRAnalysis) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(ga)
	rules := ga.Rules()
	if len(rules) == 0 {
		tracer().Errorf("cannot build CFSM for empty grammar")
		return cfsm
	}
	cfsm.S0, _ = cfsm.addState(ga.Closure(NewItemSet(StartItem(rules[0]))))
	for id := 0; id < len(cfsm.states); id++ {
		s := cfsm.states[id]
		for _, A := range ga.Symbols() {
			gotoset := ga.Goto(s.Items, A)
			if gotoset.Empty() {
				continue
			}
			target, isNew := cfsm.addState(gotoset)
			cfsm.addEdge(s.ID, target.ID, A)
			if isNew {
				tracer().Debugf("new state %d = goto(%d, %s)", target.ID, s.ID, A)
				target.Dump()
			}
		}
	}
	tracer().Infof("CFSM has %d states and %d edges", len(cfsm.states), cfsm.edges.Size())
	return cfsm
}

// addState adds a state for an item set, if not already present.
func (c *CFSM) addState(iset *ItemSet) (*State, bool) {
	digest := iset.Digest()
	for _, id := range c.arena[digest] { // resolve digest collisions
		if c.states[id].Items.Equals(iset) {
			return c.states[id], false
		}
	}
	s := &State{ID: len(c.states), Items: iset}
	s.Accept = iset.Contains(c.acceptItem())
	c.states = append(c.states, s)
	c.arena[digest] = append(c.arena[digest], s.ID)
	return s, true
}

func (c *CFSM) acceptItem() Item {
	start := c.ga.Rules()[0]
	return Item{LHS: start.LHS, RHS: start.RHS, Dot: len(start.RHS), Lookahead: grammar.EndMarker}
}

func (c *CFSM) addEdge(from, to int, label string) {
	if c.trans[from] == nil {
		c.trans[from] = make(map[string]int)
	}
	c.trans[from][label] = to
	c.edges.Add(&Edge{From: from, To: to, Label: label})
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*State {
	return c.states
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *State {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.states)
}

// Transition returns the target of the transition from state id over sym.
func (c *CFSM) Transition(id int, sym string) (int, bool) {
	to, ok := c.trans[id][sym]
	return to, ok
}

// Edges returns all transitions in order of creation.
func (c *CFSM) Edges() []*Edge {
	edges := make([]*Edge, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		edges = append(edges, it.Value().(*Edge))
	}
	return edges
}

// Analysis returns the grammar analysis the CFSM has been built from.
func (c *CFSM) Analysis() *LRAnalysis {
	return c.ga
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.Items)))
	}
	for _, e := range c.Edges() {
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", e.From, e.To, escapeDot(e.Label)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *State) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	items := S.Values()
	lines := make([]string, len(items))
	for k, i := range items {
		lines[k] = escapeDot(i.String())
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var dotEscaper = strings.NewReplacer(
	`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}
