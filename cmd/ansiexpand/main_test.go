package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsmiamoto/ansifold/internal/cli"
)

func parseArgs(t *testing.T, args ...string) *cli.Options {
	t.Helper()
	t.Setenv("ANSIFOLD_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	opts, err := cli.Parse(profile, args)
	if err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return opts
}

func TestRunExpandsByDefault(t *testing.T) {
	opts := parseArgs(t)
	var out strings.Builder
	if err := run(opts, strings.NewReader("a\tb\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := out.String(), "a       b\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunDoesNotFoldByDefault(t *testing.T) {
	line := strings.Repeat("x", 200)
	opts := parseArgs(t)
	var out strings.Builder
	if err := run(opts, strings.NewReader(line+"\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := out.String(), line+"\n"; got != want {
		t.Errorf("long line was modified:\ngot  %q\nwant %q", got, want)
	}
}

func TestRunFoldsWhenWidthGiven(t *testing.T) {
	opts := parseArgs(t, "-w", "4")
	var out strings.Builder
	if err := run(opts, strings.NewReader("a\tbcd\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	// The tab expands to columns 1 through 7, then the line folds.
	if got, want := out.String(), "a   \n    \nbcd\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
