/*
Package clrsim builds canonical LR(1) parsers from context-free grammars and
simulates them step by step.

clrsim is a workbench for studying bottom-up parsing. Grammars are given as
plain text, the tool derives FIRST and FOLLOW sets, the canonical collection
of LR(1) item sets, and ACTION/GOTO tables. A shift-reduce simulator then
consumes an input line and keeps every intermediate configuration, so a parse
may be walked forward and backward. Package structure is as follows:

■ config: Package config reads settings for the command line tool from TOML
files.

■ grammar: Package grammar holds productions, reads grammar text and augments
grammars with a fresh start rule.

■ lr: Package lr implements grammar analysis (FIRST/FOLLOW), LR(1) items,
the characteristic finite state machine and the parser tables.

■ lr/sim: Package sim implements the steppable shift-reduce simulator.

■ report: Package report renders grammars, item sets, tables and simulation
steps as plain text.

■ scanner: Package scanner provides lexmachine-based tokenizers for grammar
lines and input lines.

Command clrsim (in cmd/clrsim) is a terminal front end for all of this.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The clrsim Authors

*/
package clrsim
