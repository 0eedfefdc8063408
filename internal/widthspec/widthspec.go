// Package widthspec parses width specification strings into signed
// column sequences.
//
// A specification is a comma-separated list of items. Each item is a
// signed integer, an empty string (counting as 0), or a range
// expression start:end:step, optionally followed by {n} to repeat the
// expansion n times. Negative values keep their sign here; what they
// mean (cut and discard, capture the remainder) is decided later when
// the fold plan is built.
package widthspec

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parse errors. Callers match with errors.Is.
var (
	ErrFormat = errors.New("invalid width format")
	ErrRange  = errors.New("invalid width range")
)

var (
	intRe   = regexp.MustCompile(`^-?\d+$`)
	rangeRe = regexp.MustCompile(`^(-?[\d:-]+)(?:\{(\d+)\})?$`)
)

// Parse expands the given specification strings, in order, into one
// sequence of signed widths. Each string is a comma-separated list; an
// empty item counts as width 0, so a trailing comma appends one. Any
// bad item rejects the whole invocation before input is read.
func Parse(specs []string) ([]int, error) {
	var widths []int
	for _, spec := range specs {
		for _, item := range strings.Split(spec, ",") {
			expanded, err := parseItem(item)
			if err != nil {
				return nil, err
			}
			widths = append(widths, expanded...)
		}
	}
	return widths, nil
}

func parseItem(item string) ([]int, error) {
	if item == "" {
		return []int{0}, nil
	}
	if intRe.MatchString(item) {
		n, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", item, ErrFormat)
		}
		return []int{n}, nil
	}
	m := rangeRe.FindStringSubmatch(item)
	if m == nil {
		return nil, fmt.Errorf("%q: %w", item, ErrFormat)
	}
	expanded, err := expandRange(item, m[1])
	if err != nil {
		return nil, err
	}
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", item, ErrRange)
		}
		expanded = repeatSeq(expanded, n)
	}
	return expanded, nil
}

// expandRange expands a start:end:step expression with inclusive
// bounds. An omitted start is 0 and an omitted step is 1; the end must
// be given. A range whose start exceeds its end expands to nothing.
func expandRange(item, body string) ([]int, error) {
	fields := strings.Split(body, ":")
	if len(fields) > 3 {
		return nil, fmt.Errorf("%q: %w: too many fields", item, ErrRange)
	}

	start := 0
	if fields[0] != "" {
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%q: %w: bad start", item, ErrRange)
		}
		start = n
	}

	end := start
	if len(fields) > 1 {
		if fields[1] == "" {
			return nil, fmt.Errorf("%q: %w: missing end", item, ErrRange)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%q: %w: bad end", item, ErrRange)
		}
		end = n
	}

	step := 1
	if len(fields) == 3 && fields[2] != "" {
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%q: %w: bad step", item, ErrRange)
		}
		step = n
	}
	if step < 1 {
		return nil, fmt.Errorf("%q: %w: step must be positive", item, ErrRange)
	}

	var out []int
	for v := start; v <= end; v += step {
		out = append(out, v)
	}
	return out, nil
}

func repeatSeq(seq []int, n int) []int {
	out := make([]int, 0, len(seq)*n)
	for i := 0; i < n; i++ {
		out = append(out, seq...)
	}
	return out
}
