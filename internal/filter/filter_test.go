package filter

import (
	"strings"
	"testing"

	"github.com/fsmiamoto/ansifold/internal/fold"
	"github.com/fsmiamoto/ansifold/internal/foldplan"
)

func runFilter(t *testing.T, widths []int, opts Options, input string) string {
	t.Helper()
	folder, err := fold.New(fold.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return runWith(t, widths, folder, opts, input)
}

func runWith(t *testing.T, widths []int, folder *fold.Folder, opts Options, input string) string {
	t.Helper()
	plan := foldplan.Build(widths, 72)
	var out strings.Builder
	if err := New(plan, folder, opts).Run(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestRunFieldList(t *testing.T) {
	got := runFilter(t, []int{3, -1, 3, -1, 2}, Options{Separator: "\n"},
		"Wed Dec 19 10:55:35 JST 2018\n")
	want := "Wed\nDec\n19\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunRemainderJoined(t *testing.T) {
	// Cutting out columns 7-10 and joining with an empty separator.
	got := runFilter(t, []int{6, -4, -1}, Options{Separator: ""},
		"123456789012345678\n")
	want := "12345612345678\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunSingleWidth(t *testing.T) {
	got := runFilter(t, []int{4}, Options{Separator: "\n"}, "abcdefghij\n")
	want := "abcd\nefgh\nij\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunDefaultWidth(t *testing.T) {
	got := runFilter(t, nil, Options{Separator: "\n"}, "short line\n")
	want := "short line\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunPassthrough(t *testing.T) {
	input := "\x1b[31mstyled\x1b[0m text longer than nothing\n"
	got := runFilter(t, []int{-1}, Options{Separator: "\n"}, input)
	if got != input {
		t.Fatalf("output = %q, want input unchanged", got)
	}
}

func TestRunWidthZeroEmptiesLines(t *testing.T) {
	got := runFilter(t, []int{0}, Options{Separator: "\n"}, "abc\ndef\n")
	want := "\n\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunParagraphSpacing(t *testing.T) {
	got := runFilter(t, nil, Options{Separator: "\n", Paragraph: 1}, "a\nb\n")
	want := "a\n\nb\n\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunKeepsMissingTerminator(t *testing.T) {
	got := runFilter(t, []int{2}, Options{Separator: "\n"}, "abcd")
	want := "ab\ncd"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunCustomSeparator(t *testing.T) {
	got := runFilter(t, []int{3, -1, 3}, Options{Separator: " | "}, "Wed Dec 19\n")
	want := "Wed | Dec\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunPreservesEmptyLines(t *testing.T) {
	got := runFilter(t, []int{5}, Options{Separator: "\n"}, "\n\nx\n")
	want := "\n\nx\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunCarriageReturnIsText(t *testing.T) {
	got := runFilter(t, []int{5}, Options{Separator: "\n"}, "ab\r\n")
	want := "ab\r\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunShortLineInFieldMode(t *testing.T) {
	got := runFilter(t, []int{3, -1, 2}, Options{Separator: "\n"}, "ab\n")
	want := "ab\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunExpandingFolder(t *testing.T) {
	folder, err := fold.New(fold.Options{Expand: true, Tabstop: 8})
	if err != nil {
		t.Fatal(err)
	}
	got := runWith(t, []int{-1}, folder, Options{Separator: "\n"}, "a\tb\n")
	want := "a       b\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}
