package sim

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/clrsim"
	"github.com/npillmayer/clrsim/grammar"
	"github.com/npillmayer/clrsim/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func tables(t *testing.T, text string) *lr.TableGenerator {
	g, lerrs, err := grammar.ReadGrammar("G", strings.NewReader(text))
	if err != nil || len(lerrs) > 0 {
		t.Fatalf("cannot read grammar: %v %v", err, lerrs)
	}
	lrgen, err := lr.Build(g)
	if err != nil {
		t.Fatal(err)
	}
	return lrgen
}

const exprGrammar = "E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id\n"

func TestSimulateExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.sim")
	defer teardown()
	//
	assert := assert.New(t)
	s := NewSimulator(tables(t, exprGrammar))
	if err := s.Prepare("id + id * id"); err != nil {
		t.Fatal(err)
	}
	assert.NotEmpty(s.RunID())
	assert.Equal([]string{"id", "+", "id", "*", "id", "$"}, s.Remaining())
	final, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	assert.True(final.Accepted)
	assert.False(s.HasNext())
	history := s.History()
	assert.Len(history, 15)
	var shifts, reduces, accepts int
	for _, snap := range history[1:] {
		switch snap.Action.Kind {
		case lr.Shift:
			shifts++
		case lr.Reduce:
			reduces++
		case lr.Accept:
			accepts++
		}
	}
	assert.Equal(5, shifts)
	assert.Equal(8, reduces)
	assert.Equal(1, accepts)
	var derivation []int
	for _, r := range s.Derivation() {
		derivation = append(derivation, r.Serial)
	}
	assert.Equal([]int{6, 4, 2, 6, 4, 6, 3, 1}, derivation)
	beforeAccept := history[13]
	assert.Equal([]string{"E"}, beforeAccept.Symbols)
	assert.Equal(clrsim.Span{0, 12}, beforeAccept.Spans[0])
	assert.Equal([]string{"$"}, s.Remaining())
}

func TestReplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.sim")
	defer teardown()
	//
	s := NewSimulator(tables(t, exprGrammar))
	if err := s.Prepare("( id ) * id"); err != nil {
		t.Fatal(err)
	}
	initial := s.Current()
	n := 0
	for ; n < 7 && s.HasNext(); n++ {
		if _, err := s.Step(); err != nil {
			t.Fatal(err)
		}
	}
	seventh := s.Current()
	for i := 0; i < n; i++ {
		if !s.Back() {
			t.Fatalf("cannot step back at step %d", i)
		}
	}
	if !s.Current().Equals(initial) || s.HasPrevious() {
		t.Errorf("expected stepping back to return to the initial snapshot")
	}
	for i := 0; i < n; i++ {
		s.Step()
	}
	if s.Current() != seventh {
		t.Errorf("expected stepping forward to replay recorded snapshots")
	}
	if len(s.History()) != n+1 {
		t.Errorf("expected replay not to grow the history, have %d snapshots", len(s.History()))
	}
	s.Reset()
	if s.Cursor() != 0 || len(s.History()) != n+1 {
		t.Errorf("expected reset to keep the history and move the cursor to 0")
	}
	if s.Back() {
		t.Errorf("expected no step before the initial snapshot")
	}
}

func TestSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.sim")
	defer teardown()
	//
	s := NewSimulator(tables(t, exprGrammar))
	if err := s.Prepare("id id"); err != nil {
		t.Fatal(err)
	}
	final, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !final.Error || final.Accepted {
		t.Fatalf("expected error snapshot, have %v", final)
	}
	if !strings.Contains(final.Message, "symbol id") {
		t.Errorf("unexpected error message %q", final.Message)
	}
	if s.HasNext() {
		t.Errorf("expected no next step after an error")
	}
	if len(s.History()) != 3 {
		t.Errorf("expected shift, error; history has %d snapshots", len(s.History()))
	}
	if !s.HasPrevious() {
		t.Errorf("expected to be able to step back from an error")
	}
	// stepping at the end is a no-op
	snap, _ := s.Step()
	if snap != final || len(s.History()) != 3 {
		t.Errorf("expected step after the end to do nothing")
	}
}

func TestEpsilonReduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.sim")
	defer teardown()
	//
	s := NewSimulator(tables(t, "A -> B c\nB -> b | ε\n"))
	if err := s.Prepare("c"); err != nil {
		t.Fatal(err)
	}
	final, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !final.Accepted {
		t.Fatalf("expected input 'c' to be accepted, have %q", final.Message)
	}
	actions := make([]string, 0, len(s.History()))
	for _, snap := range s.History()[1:] {
		actions = append(actions, snap.Action.String())
	}
	assert.Equal(t, "r3", actions[0])
	assert.True(t, strings.HasPrefix(actions[1], "s"))
	assert.Equal(t, "r1", actions[2])
	assert.Equal(t, "acc", actions[3])
	assert.Equal(t, clrsim.Span{0, 1}, s.History()[3].Spans[0])
}

func TestNotPrepared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.sim")
	defer teardown()
	//
	s := NewSimulator(tables(t, exprGrammar))
	if _, err := s.Step(); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("expected ErrNotPrepared, have %v", err)
	}
	if _, err := s.Run(); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("expected ErrNotPrepared, have %v", err)
	}
	if s.Current() != nil || s.HasNext() || s.HasPrevious() || s.Remaining() != nil {
		t.Errorf("expected unprepared simulator to be empty")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("unplugged")
}

func TestPrepareFrom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.sim")
	defer teardown()
	//
	s := NewSimulator(tables(t, exprGrammar))
	if err := s.PrepareFrom(strings.NewReader("id * id\nsecond line\n")); err != nil {
		t.Fatal(err)
	}
	if len(s.Tokens()) != 3 {
		t.Errorf("expected first line only, have tokens %v", s.Tokens())
	}
	if err := s.PrepareFrom(strings.NewReader("")); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, have %v", err)
	}
	if err := s.PrepareFrom(failingReader{}); err == nil || errors.Is(err, ErrNoInput) {
		t.Errorf("expected I/O error, have %v", err)
	}
	// a failed PrepareFrom leaves the previous simulation in place
	if len(s.Tokens()) != 3 {
		t.Errorf("expected previous input to survive failed preparation")
	}
}

func TestEndMarkerInInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.sim")
	defer teardown()
	//
	s := NewSimulator(tables(t, "S -> a\n"))
	if err := s.Prepare("a $ b"); !errors.Is(err, ErrEndMarkerInInput) {
		t.Fatalf("expected ErrEndMarkerInInput, have %v", err)
	}
	if s.Current() != nil {
		t.Errorf("expected rejected input not to start a simulation")
	}
	if err := s.Prepare("a"); err != nil {
		t.Fatal(err)
	}
	if final, _ := s.Run(); !final.Accepted {
		t.Errorf("expected input 'a' to be accepted")
	}
}

func TestReduceWithoutGotoKeepsStack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.sim")
	defer teardown()
	//
	assert := assert.New(t)
	lrgen := tables(t, exprGrammar)
	s := NewSimulator(lrgen)
	afterID, ok := lrgen.CFSM().Transition(0, "id")
	if !ok {
		t.Fatal("expected a transition on id from state 0")
	}
	if _, ok := lrgen.GotoTable().Goto(afterID, "F"); ok {
		t.Fatalf("expected no GOTO on F from state %d", afterID)
	}
	cur := &Snapshot{
		States:  []int{0, afterID, afterID},
		Symbols: []string{"id", "id"},
		Spans:   []clrsim.Span{{0, 2}, {3, 5}},
		Pointer: 2,
	}
	next := s.reduce(cur.copy(), 6) // F → id
	assert.True(next.Error)
	assert.Contains(next.Message, "no GOTO entry")
	assert.Equal(cur.States, next.States)
	assert.Equal(cur.Symbols, next.Symbols)
	assert.Equal(cur.Spans, next.Spans)
}
