/*
Package scanner provides tokenizers for the two kinds of text clrsim reads:
grammar lines and input lines.

Both are thin layers over lexmachine. Grammar lines know three token
categories (symbols, the arrow `->` and the bar `|`), input lines know only
symbols. Whitespace separates tokens and is skipped.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The clrsim Authors

*/
package scanner

import (
	"github.com/npillmayer/clrsim"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'clrsim.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("clrsim.scanner")
}

// Token categories.
const (
	EOF    clrsim.TokType = -1
	Symbol clrsim.TokType = 1
	Arrow  clrsim.TokType = 2
	Bar    clrsim.TokType = 3
)

// TokTypeString returns a readable name for a token category.
func TokTypeString(t clrsim.TokType) string {
	switch t {
	case EOF:
		return "EOF"
	case Symbol:
		return "SYMBOL"
	case Arrow:
		return "ARROW"
	case Bar:
		return "BAR"
	}
	return "?"
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() clrsim.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, produced by all the
// tokenizers of this package.
type DefaultToken struct {
	kind   clrsim.TokType
	lexeme string
	span   clrsim.Span
}

var _ clrsim.Token = DefaultToken{}

// MakeDefaultToken creates a token from its parts.
func MakeDefaultToken(typ clrsim.TokType, lexeme string, span clrsim.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() clrsim.TokType {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() clrsim.Span {
	return t.span
}

// Drain reads tokens from a tokenizer until EOF and returns them.
func Drain(tok Tokenizer) []clrsim.Token {
	var tokens []clrsim.Token
	for {
		t := tok.NextToken()
		if t.TokType() == EOF {
			break
		}
		tokens = append(tokens, t)
	}
	return tokens
}
