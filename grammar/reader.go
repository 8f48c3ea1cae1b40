package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/clrsim"
	"github.com/npillmayer/clrsim/scanner"
	"golang.org/x/text/unicode/norm"
)

// LineError describes a malformed line of grammar text. Malformed lines do
// not abort reading; they are skipped.
type LineError struct {
	Line  int    // 1-based line number
	Text  string // the offending line
	Cause string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Cause, e.Text)
}

// ReadGrammar reads grammar text, one non-terminal per line:
//
//    E -> E + T | T
//    # comment
//    T -> id | ε
//
// Empty alternatives between bars are dropped. An explicit 'ε' alternative is
// an ε-production. Malformed lines are returned as a list of *LineError, the
// returned error is reserved for I/O failures.
func ReadGrammar(name string, r io.Reader) (*Grammar, []*LineError, error) {
	g := NewGrammar(name)
	var lineErrors []*LineError
	lines := bufio.NewScanner(r)
	n := 0
	for lines.Scan() {
		n++
		text := strings.TrimSpace(lines.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lhs, alts, cause, err := parseLine(text)
		if err != nil {
			return nil, lineErrors, err
		}
		if cause != "" {
			lerr := &LineError{Line: n, Text: text, Cause: cause}
			tracer().Errorf("grammar %s: %v", name, lerr)
			lineErrors = append(lineErrors, lerr)
			continue
		}
		g.AddProduction(lhs, alts...)
	}
	if err := lines.Err(); err != nil {
		return nil, lineErrors, fmt.Errorf("reading grammar %s: %w", name, err)
	}
	tracer().Infof("grammar %s: %d non-terminals, %d malformed lines", name, g.Size(), len(lineErrors))
	return g, lineErrors, nil
}

// parseLine splits a line into LHS and alternatives. A non-empty cause
// reports a malformed line.
func parseLine(text string) (lhs string, alts [][]string, cause string, err error) {
	var toks []clrsim.Token
	if toks, err = scanner.GrammarTokens(text); err != nil {
		return
	}
	arrow := -1
	for i, t := range toks {
		if t.TokType() == scanner.Arrow {
			if arrow >= 0 {
				cause = "more than one '->'"
				return
			}
			arrow = i
		}
	}
	switch {
	case arrow < 0:
		cause = "missing '->'"
		return
	case arrow == 0:
		cause = "missing left-hand side"
		return
	case arrow > 1:
		cause = "more than one symbol on left-hand side"
		return
	}
	if toks[0].TokType() != scanner.Symbol {
		cause = "missing left-hand side"
		return
	}
	lhs = symbol(toks[0])
	if isReserved(lhs) || lhs == Epsilon {
		cause = fmt.Sprintf("reserved symbol %s on left-hand side", lhs)
		return
	}
	var alt []string
	for _, t := range append(toks[arrow+1:], nil) {
		if t == nil || t.TokType() == scanner.Bar {
			if len(alt) > 0 { // drop empty alternatives between bars
				alts = append(alts, alt)
			}
			alt = nil
			continue
		}
		sym := symbol(t)
		if isReserved(sym) {
			cause = fmt.Sprintf("reserved symbol %s on right-hand side", sym)
			return
		}
		alt = append(alt, sym)
	}
	if len(alts) == 0 {
		cause = "no alternative on right-hand side"
	}
	return
}

func symbol(t clrsim.Token) string {
	return norm.NFC.String(t.Lexeme())
}

func isReserved(sym string) bool {
	return sym == EndMarker || sym == AugmentedStart
}
