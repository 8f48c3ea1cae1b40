/*
Package config reads settings for the clrsim command from TOML files.

    # clrsim.toml
    trace       = "Info"       # trace level: Debug, Info, Error
    start       = "E"          # start symbol; default is the first non-terminal
    reduce      = "lookahead"  # place reduce actions on "lookahead" or on "follow"
    fixed_start = false        # use the literal start symbol S
    prompt      = "clrsim> "   # prompt of the interactive stepper

Command line flags override values from the configuration file.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The clrsim Authors

*/
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/schuko/tracing"
)

// Reduce modes.
const (
	ReduceOnLookahead = "lookahead"
	ReduceOnFollow    = "follow"
)

// FixedStartSymbol is the start symbol used with FixedStart.
const FixedStartSymbol = "S"

// Config holds the settings of the clrsim command.
type Config struct {
	Trace      string `toml:"trace"`
	Start      string `toml:"start"`
	Reduce     string `toml:"reduce"`
	FixedStart bool   `toml:"fixed_start"`
	Prompt     string `toml:"prompt"`
}

// Default returns the default settings.
func Default() Config {
	return Config{
		Trace:  "Error",
		Reduce: ReduceOnLookahead,
		Prompt: "clrsim> ",
	}
}

// Load reads settings from a TOML file. Keys not set in the file keep their
// default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading configuration: %w", err)
	}
	c, err := Parse(string(data))
	if err != nil {
		return c, fmt.Errorf("configuration %q: %w", path, err)
	}
	return c, nil
}

// Parse reads settings from TOML text.
func Parse(text string) (Config, error) {
	c := Default()
	md, err := toml.Decode(text, &c)
	if err != nil {
		return Default(), err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Default(), err
	}
	return c, nil
}

// Validate checks the settings for unknown values.
func (c Config) Validate() error {
	switch c.Reduce {
	case ReduceOnLookahead, ReduceOnFollow:
	default:
		return fmt.Errorf("unknown reduce mode %q, must be %q or %q", c.Reduce, ReduceOnLookahead, ReduceOnFollow)
	}
	if c.FixedStart && c.Start != "" && c.Start != FixedStartSymbol {
		return fmt.Errorf("start symbol %q conflicts with fixed_start", c.Start)
	}
	return nil
}

// TraceLevel returns the trace level of the settings.
func (c Config) TraceLevel() tracing.TraceLevel {
	return tracing.TraceLevelFromString(c.Trace)
}

// StartSymbol returns the start symbol to use, or "" for the first
// non-terminal of a grammar.
func (c Config) StartSymbol() string {
	if c.FixedStart {
		return FixedStartSymbol
	}
	return c.Start
}
