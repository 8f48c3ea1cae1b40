package scanner

import (
	"sync"

	"github.com/npillmayer/clrsim"
	"github.com/timtadh/lexmachine"
)

// The tokens representing literal lexemes of grammar lines
var literals = []string{"->", "|"}

var tokenIds = map[string]clrsim.TokType{
	"->": Arrow,
	"|":  Bar,
}

var grammarLexer, inputLexer *LMAdapter
var grammarErr, inputErr error
var grammarOnce, inputOnce sync.Once // monitor one-time DFA compilation

// GrammarLexer returns the (shared) lexer for grammar lines of the form
//
//    LHS -> A B | C
//
// Symbols are runs of characters other than whitespace and '|'. An arrow
// written without surrounding whitespace becomes part of a symbol.
func GrammarLexer() (*LMAdapter, error) {
	grammarOnce.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte("[^ \t\r\n\v\f\\|]+"), MakeToken(Symbol))
			lexer.Add([]byte("[ \t\r\n\v\f]+"), Skip)
		}
		grammarLexer, grammarErr = NewLMAdapter(init, literals, tokenIds)
	})
	return grammarLexer, grammarErr
}

// InputLexer returns the (shared) lexer for input lines. Every run of
// non-whitespace characters is a symbol.
func InputLexer() (*LMAdapter, error) {
	inputOnce.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte("[^ \t\r\n\v\f]+"), MakeToken(Symbol))
			lexer.Add([]byte("[ \t\r\n\v\f]+"), Skip)
		}
		inputLexer, inputErr = NewLMAdapter(init, nil, nil)
	})
	return inputLexer, inputErr
}

// GrammarTokens splits a grammar line into tokens.
func GrammarTokens(line string) ([]clrsim.Token, error) {
	lm, err := GrammarLexer()
	if err != nil {
		return nil, err
	}
	return tokens(lm, line)
}

// InputTokens splits an input line into symbol tokens.
func InputTokens(line string) ([]clrsim.Token, error) {
	lm, err := InputLexer()
	if err != nil {
		return nil, err
	}
	return tokens(lm, line)
}

func tokens(lm *LMAdapter, line string) ([]clrsim.Token, error) {
	if line == "" {
		return nil, nil
	}
	sc, err := lm.Scanner(line)
	if err != nil {
		return nil, err
	}
	var scanErr error
	sc.SetErrorHandler(func(e error) {
		logError(e)
		if scanErr == nil {
			scanErr = e
		}
	})
	toks := Drain(sc)
	return toks, scanErr
}
