package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Reduce != ReduceOnLookahead || c.StartSymbol() != "" {
		t.Errorf("unexpected defaults %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("expected defaults to be valid, have %v", err)
	}
}

func TestParse(t *testing.T) {
	assert := assert.New(t)
	c, err := Parse(`
trace = "Debug"
start = "E"
reduce = "follow"
prompt = "> "
`)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal("E", c.StartSymbol())
	assert.Equal(ReduceOnFollow, c.Reduce)
	assert.Equal("> ", c.Prompt)
	assert.Equal(tracing.LevelDebug, c.TraceLevel())
	c, err = Parse(`fixed_start = true`)
	assert.NoError(err)
	assert.Equal("S", c.StartSymbol())
	assert.Equal("clrsim> ", c.Prompt)
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{
		`reduce = "sideways"`,
		`colour = "blue"`,
		`start = "E"` + "\n" + `fixed_start = true`,
		`trace = `,
	} {
		if _, err := Parse(text); err == nil {
			t.Errorf("expected error for %q", text)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clrsim.toml")
	if err := os.WriteFile(path, []byte(`reduce = "follow"`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil || c.Reduce != ReduceOnFollow {
		t.Errorf("expected reduce mode from file, have %+v / %v", c, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
