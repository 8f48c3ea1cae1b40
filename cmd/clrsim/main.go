/*
Command clrsim builds canonical LR(1) tables for a grammar and simulates
shift-reduce parses step by step.

    clrsim analyze expr.grammar           # grammar, FIRST/FOLLOW, item sets
    clrsim tables expr.grammar            # ACTION/GOTO tables
    clrsim parse expr.grammar -i "id + id * id"
    clrsim step expr.grammar -f input.txt # interactive stepping

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The clrsim Authors

*/
package main

import (
	"errors"
	"os"
)

// Exit codes.
const (
	exitUsage   = 1 // usage or configuration errors
	exitGrammar = 2 // unusable grammar or input
)

// exitError carries the exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

func inputError(err error) error {
	return &exitError{code: exitGrammar, err: err}
}

func main() {
	if err := Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(exitUsage)
	}
}
