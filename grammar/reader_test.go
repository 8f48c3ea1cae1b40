package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const exprText = `
# arithmetic expressions
E -> E + T | T
T -> T * F | F

F -> ( E ) | id
`

func TestReadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	g, lerrs, err := ReadGrammar("expr", strings.NewReader(exprText))
	if err != nil {
		t.Fatal(err)
	}
	if len(lerrs) != 0 {
		t.Errorf("expected no malformed lines, have %v", lerrs)
	}
	if g.Size() != 3 || g.Start() != "E" {
		t.Errorf("expected 3 non-terminals starting with E, have %d / %q", g.Size(), g.Start())
	}
	if len(g.Rules()) != 6 {
		t.Errorf("expected 6 rules, have %d", len(g.Rules()))
	}
	if g.String() != "E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id\n" {
		t.Errorf("unexpected grammar %q", g.String())
	}
}

func TestReadMalformedLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	assert := assert.New(t)
	text := strings.Join([]string{
		"S -> A a",     // 1 ok
		"X ->",         // 2 no alternative
		"A B -> c",     // 3 two LHS symbols
		"-> c",         // 4 missing LHS
		"A b c",        // 5 missing arrow
		"A -> b -> c",  // 6 two arrows
		"A -> b $",     // 7 reserved
		"S' -> S",      // 8 reserved
		"A -> b | | c", // 9 ok, empty alternative dropped
		"A -> ε",       // 10 ok
	}, "\n")
	g, lerrs, err := ReadGrammar("G", strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	lines := make([]int, len(lerrs))
	for i, e := range lerrs {
		lines[i] = e.Line
		t.Logf("%v", e)
	}
	assert.Equal([]int{2, 3, 4, 5, 6, 7, 8}, lines)
	assert.False(g.IsNonTerminal("X"), "X of 'X ->' must not be a non-terminal")
	alts, _ := g.Productions().Get("A")
	assert.Equal([][]string{{"b"}, {"c"}, {}}, alts)
	assert.Equal("S", g.Start())
}

func TestReadNormalizesSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	// "é" composed (U+00E9) and decomposed (e + U+0301)
	text := "S -> \u00e9 X\nX -> e\u0301 | x\n"
	g, _, err := ReadGrammar("G", strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	terms := g.Productions().Terminals()
	if len(terms) != 2 || terms[0] != "é" {
		t.Errorf("expected spellings of é to be unified, have %q", terms)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestReadIOError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clrsim.grammar")
	defer teardown()
	//
	if _, _, err := ReadGrammar("G", failingReader{}); err == nil {
		t.Errorf("expected I/O error to be reported")
	}
}
