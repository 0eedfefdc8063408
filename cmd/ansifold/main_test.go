package main

import (
	"os"
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

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunStdin(t *testing.T) {
	opts := parseArgs(t, "-w", "4")
	var out strings.Builder
	if err := run(opts, strings.NewReader("abcdef\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := out.String(), "abcd\nef\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunDefaultWidth(t *testing.T) {
	opts := parseArgs(t)
	var out strings.Builder
	if err := run(opts, strings.NewReader(strings.Repeat("a", 80)+"\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := strings.Repeat("a", 72) + "\n" + strings.Repeat("a", 8) + "\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunFiles(t *testing.T) {
	one := writeFile(t, "one.txt", "abcdef\n")
	two := writeFile(t, "two.txt", "ghi\n")
	opts := parseArgs(t, "-w", "4", one, two)
	var out strings.Builder
	if err := run(opts, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := out.String(), "abcd\nef\nghi\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunDashMeansStdin(t *testing.T) {
	opts := parseArgs(t, "-w", "4", "-")
	var out strings.Builder
	if err := run(opts, strings.NewReader("abcdef\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := out.String(), "abcd\nef\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunMissingFile(t *testing.T) {
	opts := parseArgs(t, "-w", "4", filepath.Join(t.TempDir(), "absent.txt"))
	var out strings.Builder
	if err := run(opts, strings.NewReader(""), &out); err == nil {
		t.Fatal("expected error for a missing file, got nil")
	}
}
