// Package foldplan turns a parsed width sequence into the plan the
// filter executes for every line.
package foldplan

// Plan describes how each input line is cut and which fragments are
// kept. With Fields set, Widths and Keep are applied positionally and
// anything past the last width is dropped; otherwise Widths holds a
// single width repeated across the line and Keep is unused.
type Plan struct {
	Widths    []int
	Keep      []bool
	Remainder bool // the final width is 0 and captures the rest of the line
	Fields    bool
}

// Build derives the plan from seq. An empty seq folds at defaultWidth.
// A one-element seq repeats that width across each line; a negative
// value there disables folding and width 0 folds everything away.
// With two or more elements each width is applied once, in order:
// negative entries mark stretches that are cut but discarded, except
// in final position, where a negative entry keeps the rest of the
// line, and a literal trailing 0 truncates instead.
func Build(seq []int, defaultWidth int) Plan {
	switch len(seq) {
	case 0:
		return Plan{Widths: []int{defaultWidth}}
	case 1:
		return Plan{Widths: []int{seq[0]}}
	}

	p := Plan{
		Widths: make([]int, len(seq)),
		Keep:   make([]bool, len(seq)),
		Fields: true,
	}
	last := len(seq) - 1
	for i, w := range seq {
		switch {
		case w >= 0:
			p.Widths[i] = w
			p.Keep[i] = true
		case i == last:
			p.Keep[i] = true
			p.Remainder = true
		default:
			p.Widths[i] = -w
		}
	}
	return p
}
