package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/clrsim/config"
	"github.com/npillmayer/clrsim/grammar"
	"github.com/npillmayer/clrsim/lr"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'clrsim.cli'.
func tracer() tracing.Trace {
	return tracing.Select("clrsim.cli")
}

var traceKeys = []string{"clrsim.cli", "clrsim.grammar", "clrsim.scanner", "clrsim.lr", "clrsim.sim"}

var rootFlags = struct {
	config *string
	trace  *string
	start  *string
	follow *bool
}{}

// settings are the effective settings, after flags have been applied to the
// configuration file.
var settings = config.Default()

var rootCmd = &cobra.Command{
	Use:   "clrsim",
	Short: "Build canonical LR(1) tables and simulate shift-reduce parses",
	Long: `clrsim reads a context-free grammar, one non-terminal per line:

    E -> E + T | T
    T -> T * F | F
    F -> ( E ) | id

and constructs the canonical collection of LR(1) item sets and the
ACTION/GOTO tables. Input lines are parsed step by step, forwards and
backwards.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().String("config", "", "configuration file (TOML)")
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "", "trace level [Debug|Info|Error]")
	rootFlags.start = rootCmd.PersistentFlags().String("start", "", "start symbol (default first non-terminal)")
	rootFlags.follow = rootCmd.PersistentFlags().Bool("follow", false, "place reduce actions on FOLLOW sets")
}

// Execute runs the command tree.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// setup loads the configuration, applies flags and initializes display and
// tracing.
func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	if *rootFlags.config != "" {
		c, err := config.Load(*rootFlags.config)
		if err != nil {
			return usageError(err)
		}
		settings = c
	}
	if cmd.Flags().Changed("trace") {
		settings.Trace = *rootFlags.trace
	}
	if cmd.Flags().Changed("start") {
		settings.Start = *rootFlags.start
		settings.FixedStart = false
	}
	if *rootFlags.follow {
		settings.Reduce = config.ReduceOnFollow
	}
	if err := settings.Validate(); err != nil {
		return usageError(err)
	}
	gtrace.SyntaxTracer = gologadapter.New()
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(settings.TraceLevel())
	}
	tracer().Infof("trace level is %s", settings.Trace)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadTables reads a grammar file and builds its LR(1) tables. Malformed
// grammar lines are reported as warnings.
func loadTables(path string) (*lr.TableGenerator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, inputError(fmt.Errorf("cannot open grammar: %w", err))
	}
	defer f.Close()
	g, lineErrors, err := grammar.ReadGrammar(path, f)
	if err != nil {
		return nil, inputError(err)
	}
	for _, lerr := range lineErrors {
		pterm.Warning.Println(fmt.Sprintf("%s: skipping %v", path, lerr))
	}
	start := settings.StartSymbol()
	var augopts []grammar.AugmentOption
	switch {
	case settings.FixedStart:
		augopts = append(augopts, grammar.FixedStart(start))
	case start != "":
		g.SetStart(start)
	}
	aug, err := grammar.Augment(g, augopts...)
	if err != nil {
		return nil, inputError(err)
	}
	var opts []lr.TableOption
	if settings.Reduce == config.ReduceOnFollow {
		opts = append(opts, lr.ReduceOnFollow())
	}
	lrgen, err := lr.Build(aug, opts...)
	if err != nil {
		return nil, inputError(err)
	}
	if lrgen.HasConflicts {
		pterm.Warning.Println(fmt.Sprintf("grammar has %d table conflicts", len(lrgen.Conflicts())))
	}
	return lrgen, nil
}
