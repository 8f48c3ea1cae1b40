/*
Package sim provides a steppable shift-reduce simulation on top of canonical
LR(1) tables. Clients have to use the tools of package lr to prepare the
tables.

Every step of the simulation appends a snapshot of the parser configuration
(state stack, symbol stack, input position, action taken) to a history. The
history never shrinks: stepping back moves a cursor, and stepping forward
again replays the recorded snapshots.

Usage

	lrgen, err := lr.Build(g)
	...
	s := sim.NewSimulator(lrgen)
	s.Prepare("id + id * id")
	for s.HasNext() {
		s.Step()
		fmt.Println(report.Step(s))
	}
	s.Back()                      // one step back
	s.Reset()                     // back to the beginning, keeping the history

A simulation ends when the input is accepted or when there is no action for
the current state and lookahead. The simulation does not attempt error
recovery.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The clrsim Authors

*/
package sim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/npillmayer/clrsim"
	"github.com/npillmayer/clrsim/grammar"
	"github.com/npillmayer/clrsim/lr"
	"github.com/npillmayer/clrsim/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'clrsim.sim'.
func tracer() tracing.Trace {
	return tracing.Select("clrsim.sim")
}

// ErrNotPrepared is returned when stepping a simulation without input.
var ErrNotPrepared = errors.New("simulation has not been prepared with input")

// ErrNoInput is returned by PrepareFrom for a reader without an input line.
var ErrNoInput = errors.New("no input line")

// ErrEndMarkerInInput is returned by Prepare for input containing the end
// marker $, which is implicit.
var ErrEndMarkerInInput = errors.New("end marker $ is not allowed in input")

// Snapshot is a parser configuration. States has one entry more than Symbols:
// the bottom state 0 has no symbol.
type Snapshot struct {
	States   []int         // state stack, bottom first
	Symbols  []string      // symbol stack, bottom first
	Spans    []clrsim.Span // input spans of the symbols
	Pointer  int           // index of the lookahead token
	Action   lr.Action     // action which led to this snapshot
	Accepted bool
	Error    bool
	Message  string
}

// Terminal is a predicate: does the simulation end with this snapshot?
func (s *Snapshot) Terminal() bool {
	return s.Accepted || s.Error
}

// Top returns the state on top of the stack.
func (s *Snapshot) Top() (int, bool) {
	if len(s.States) == 0 {
		return 0, false
	}
	return s.States[len(s.States)-1], true
}

func (s *Snapshot) copy() *Snapshot {
	return &Snapshot{
		States:  append([]int(nil), s.States...),
		Symbols: append([]string(nil), s.Symbols...),
		Spans:   append([]clrsim.Span(nil), s.Spans...),
		Pointer: s.Pointer,
	}
}

// Equals compares two snapshots.
func (s *Snapshot) Equals(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Pointer != other.Pointer || s.Action != other.Action || s.Accepted != other.Accepted ||
		s.Error != other.Error || s.Message != other.Message ||
		len(s.States) != len(other.States) || len(s.Symbols) != len(other.Symbols) {
		return false
	}
	for i := range s.States {
		if s.States[i] != other.States[i] {
			return false
		}
	}
	for i := range s.Symbols {
		if s.Symbols[i] != other.Symbols[i] {
			return false
		}
	}
	return true
}

// Simulator drives a shift-reduce parse over canonical LR(1) tables.
// Create one with NewSimulator and start it with Prepare.
type Simulator struct {
	lrgen   *lr.TableGenerator
	runID   string
	input   string
	tokens  []clrsim.Token
	history []*Snapshot
	cursor  int
}

// NewSimulator creates a simulator for a set of parser tables.
func NewSimulator(lrgen *lr.TableGenerator) *Simulator {
	return &Simulator{lrgen: lrgen}
}

// Prepare starts a new simulation for an input line. Tokens are separated by
// whitespace, the end marker $ is implicit. Any previous history is
// discarded.
func (s *Simulator) Prepare(input string) error {
	tokens, err := scanner.InputTokens(input)
	if err != nil {
		return err
	}
	for i, t := range tokens {
		if t.Lexeme() == grammar.EndMarker {
			return fmt.Errorf("token %d at %d-%d: %w", i+1, t.Span().From(), t.Span().To(), ErrEndMarkerInInput)
		}
	}
	s.runID = uuid.New().String()
	s.input = input
	s.tokens = tokens
	s.history = []*Snapshot{{States: []int{0}}}
	s.cursor = 0
	tracer().Infof("run %s: prepared simulation for %d tokens", s.runID, len(tokens))
	return nil
}

// PrepareFrom starts a new simulation with the first line read from r.
func (s *Simulator) PrepareFrom(r io.Reader) error {
	lines := bufio.NewScanner(r)
	if !lines.Scan() {
		if err := lines.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		return ErrNoInput
	}
	return s.Prepare(lines.Text())
}

// Tables returns the parser tables of the simulation.
func (s *Simulator) Tables() *lr.TableGenerator {
	return s.lrgen
}

// RunID identifies the current simulation run.
func (s *Simulator) RunID() string {
	return s.runID
}

// Input returns the input line of the simulation.
func (s *Simulator) Input() string {
	return s.input
}

// Tokens returns the input symbols, without the end marker.
func (s *Simulator) Tokens() []string {
	syms := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		syms[i] = t.Lexeme()
	}
	return syms
}

// Remaining returns the unread input of the current snapshot, including the
// end marker.
func (s *Simulator) Remaining() []string {
	cur := s.Current()
	if cur == nil {
		return nil
	}
	syms := s.Tokens()
	if cur.Pointer < len(syms) {
		syms = syms[cur.Pointer:]
	} else {
		syms = nil
	}
	return append(syms, grammar.EndMarker)
}

// History returns all snapshots recorded so far.
func (s *Simulator) History() []*Snapshot {
	return s.history
}

// Cursor returns the index of the current snapshot within the history.
func (s *Simulator) Cursor() int {
	return s.cursor
}

// Current returns the current snapshot, or nil if the simulation has not been
// prepared.
func (s *Simulator) Current() *Snapshot {
	if len(s.history) == 0 {
		return nil
	}
	return s.history[s.cursor]
}

// HasNext is a predicate: is there a step after the current one?
func (s *Simulator) HasNext() bool {
	if len(s.history) == 0 {
		return false
	}
	return s.cursor < len(s.history)-1 || !s.history[s.cursor].Terminal()
}

// HasPrevious is a predicate: is there a step before the current one?
func (s *Simulator) HasPrevious() bool {
	return s.cursor > 0
}

// Step advances the simulation by one step and returns the new current
// snapshot. If the cursor is not at the end of the history, Step replays the
// recorded snapshot. If the simulation has ended, Step does nothing.
func (s *Simulator) Step() (*Snapshot, error) {
	if len(s.history) == 0 {
		return nil, ErrNotPrepared
	}
	if s.cursor < len(s.history)-1 {
		s.cursor++
		return s.Current(), nil
	}
	last := s.history[s.cursor]
	if last.Terminal() {
		return last, nil
	}
	next := s.transition(last)
	s.history = append(s.history, next)
	s.cursor++
	tracer().Debugf("run %s: step %d: %s", s.runID, s.cursor, describe(next))
	return next, nil
}

// Back moves the cursor one step back. It returns false if there is no
// previous step.
func (s *Simulator) Back() bool {
	if !s.HasPrevious() {
		return false
	}
	s.cursor--
	return true
}

// Reset moves the cursor to the initial snapshot. The history is kept.
func (s *Simulator) Reset() {
	s.cursor = 0
}

// Run steps until the simulation ends and returns the final snapshot.
func (s *Simulator) Run() (*Snapshot, error) {
	if len(s.history) == 0 {
		return nil, ErrNotPrepared
	}
	for s.HasNext() {
		if _, err := s.Step(); err != nil {
			return nil, err
		}
	}
	return s.Current(), nil
}

// Derivation returns the rules reduced up to the current snapshot. Read
// backwards, they form a rightmost derivation of the input read so far.
func (s *Simulator) Derivation() []*grammar.Rule {
	var rules []*grammar.Rule
	for i := 1; i <= s.cursor && i < len(s.history); i++ {
		if a := s.history[i].Action; a.Kind == lr.Reduce {
			if r := s.lrgen.Rule(a.Target); r != nil {
				rules = append(rules, r)
			}
		}
	}
	return rules
}

// lookahead returns the input symbol at the pointer position, or $.
func (s *Simulator) lookahead(pos int) (string, clrsim.Span) {
	if pos < len(s.tokens) {
		return s.tokens[pos].Lexeme(), s.tokens[pos].Span()
	}
	end := uint64(len(s.input))
	return grammar.EndMarker, clrsim.Span{end, end}
}

// transition computes the snapshot following cur.
func (s *Simulator) transition(cur *Snapshot) *Snapshot {
	next := cur.copy()
	top, ok := cur.Top()
	if !ok {
		return fail(next, "stack underflow")
	}
	la, span := s.lookahead(cur.Pointer)
	action, ok := s.lrgen.ActionTable().Action(top, la)
	if !ok {
		return fail(next, fmt.Sprintf("no action defined for state %d and symbol %s", top, la))
	}
	next.Action = action
	switch action.Kind {
	case lr.Accept:
		next.Accepted = true
	case lr.Shift:
		next.States = append(next.States, action.Target)
		next.Symbols = append(next.Symbols, la)
		next.Spans = append(next.Spans, span)
		next.Pointer++
	case lr.Reduce:
		return s.reduce(next, action.Target)
	}
	return next
}

// reduce performs a reduce action for a rule
//
//    LHS → X1 ... Xn
//
// popping n states and symbols, then pushing LHS and GOTO[top][LHS].
// If there is no GOTO entry, the stacks are left as they were.
func (s *Simulator) reduce(next *Snapshot, n int) *Snapshot {
	rule := s.lrgen.Rule(n)
	if rule == nil {
		return fail(next, fmt.Sprintf("no rule %d", n))
	}
	k := len(rule.RHS)
	if k > len(next.Symbols) || k >= len(next.States) {
		return fail(next, fmt.Sprintf("stack underflow reducing %v", rule))
	}
	below := next.States[len(next.States)-k-1]
	target, ok := s.lrgen.GotoTable().Goto(below, rule.LHS)
	if !ok {
		return fail(next, fmt.Sprintf("no GOTO entry for state %d and symbol %s", below, rule.LHS))
	}
	var handlespan clrsim.Span
	for _, sp := range next.Spans[len(next.Spans)-k:] {
		handlespan = handlespan.Extend(sp)
	}
	next.States = next.States[:len(next.States)-k]
	next.Symbols = next.Symbols[:len(next.Symbols)-k]
	next.Spans = next.Spans[:len(next.Spans)-k]
	next.States = append(next.States, target)
	next.Symbols = append(next.Symbols, rule.LHS)
	next.Spans = append(next.Spans, handlespan)
	return next
}

func fail(snap *Snapshot, msg string) *Snapshot {
	tracer().Errorf("%s", msg)
	snap.Error = true
	snap.Message = msg
	return snap
}

func describe(snap *Snapshot) string {
	switch {
	case snap.Error:
		return "error: " + snap.Message
	case snap.Accepted:
		return "accept"
	}
	return fmt.Sprintf("%s, stack %v %s", snap.Action, snap.States, strings.Join(snap.Symbols, " "))
}
