// Package filter drives folding over a line stream.
package filter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fsmiamoto/ansifold/internal/fold"
	"github.com/fsmiamoto/ansifold/internal/foldplan"
)

// Options control how fragments are reassembled into output lines.
type Options struct {
	Separator string // joined between kept fragments
	Paragraph int    // extra newlines appended after every line
}

// Filter applies a fold plan to each line of a stream. It keeps no
// state across lines.
type Filter struct {
	plan   foldplan.Plan
	folder *fold.Folder
	opts   Options
}

// New returns a Filter executing plan with folder.
func New(plan foldplan.Plan, folder *fold.Folder, opts Options) *Filter {
	return &Filter{plan: plan, folder: folder, opts: opts}
}

// Run folds r line by line into w. Line terminators are preserved
// exactly: a final line without a newline stays without one.
func (f *Filter) Run(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading input: %w", err)
		}
		if line != "" {
			if werr := f.writeLine(bw, line); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			break
		}
	}
	return bw.Flush()
}

func (f *Filter) writeLine(w *bufio.Writer, line string) error {
	terminated := strings.HasSuffix(line, "\n")
	if terminated {
		line = line[:len(line)-1]
	}

	var frags []string
	if f.plan.Fields {
		frags = f.keep(f.folder.Chop(line, f.plan.Widths, f.plan.Remainder))
	} else {
		frags = f.folder.Fold(line, f.plan.Widths[0])
	}

	if _, err := w.WriteString(strings.Join(frags, f.opts.Separator)); err != nil {
		return err
	}
	if terminated {
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	for i := 0; i < f.opts.Paragraph; i++ {
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// keep drops the fragments the plan's mask marks as cut-and-discard.
// Fragments missing off the end of a short line stay missing.
func (f *Filter) keep(frags []string) []string {
	kept := frags[:0]
	for i, frag := range frags {
		if i < len(f.plan.Keep) && f.plan.Keep[i] {
			kept = append(kept, frag)
		}
	}
	return kept
}
