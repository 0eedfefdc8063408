// Package fold cuts terminal text at visual column boundaries while
// keeping ANSI escape sequences intact. Sequences occupy no columns
// and East Asian wide characters occupy two. SGR state open at a cut
// is closed there and reopened on the following fragment, so every
// fragment renders on its own.
package fold

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Options configure a Folder. The zero value folds plain text with no
// tab expansion, no padding and narrow ambiguous characters.
type Options struct {
	Boundary  string   // "none" or "word": prefer cutting after space runs
	Linebreak string   // "none", "runin", "runout" or "all"
	Runin     int      // columns a fragment may grow pulling prohibited heads
	Runout    int      // columns a fragment may shrink pushing prohibited tails
	Padding   bool     // pad fragments to their requested width
	Padchar   string   // padding character, one cell wide
	Expand    bool     // expand tabs before folding
	Tabstop   int      // tab stop interval
	Tabhead   string   // first cell of an expanded tab
	Tabspace  string   // remaining cells of an expanded tab
	Tabstyle  string   // named tabhead/tabspace pair; explicit cells win
	Ambiguous string   // "narrow" or "wide" East Asian ambiguous width
	Discard   []string // sequence classes to drop: "EL", "OSC"
}

// Folder cuts lines into fragments of bounded visual width.
type Folder struct {
	opts       Options
	cond       *runewidth.Condition
	eastAsian  bool
	wordBreak  bool
	runin      bool
	runout     bool
	padchar    string
	tabhead    string
	tabspace   string
	discardEL  bool
	discardOSC bool
}

// New validates opts and returns a ready Folder.
func New(opts Options) (*Folder, error) {
	f := &Folder{opts: opts, padchar: " ", tabhead: " ", tabspace: " "}

	switch opts.Ambiguous {
	case "", "narrow":
	case "wide":
		f.eastAsian = true
	default:
		return nil, fmt.Errorf("unknown ambiguous width %q", opts.Ambiguous)
	}
	f.cond = runewidth.NewCondition()
	f.cond.EastAsianWidth = f.eastAsian

	switch opts.Boundary {
	case "", "none":
	case "word":
		f.wordBreak = true
	default:
		return nil, fmt.Errorf("unknown boundary %q", opts.Boundary)
	}

	switch opts.Linebreak {
	case "", "none":
	case "runin":
		f.runin = true
	case "runout":
		f.runout = true
	case "all":
		f.runin, f.runout = true, true
	default:
		return nil, fmt.Errorf("unknown linebreak mode %q", opts.Linebreak)
	}
	if opts.Runin < 0 || opts.Runout < 0 {
		return nil, fmt.Errorf("run-in and run-out widths must be non-negative")
	}

	if opts.Expand && opts.Tabstop < 1 {
		return nil, fmt.Errorf("tabstop must be positive, got %d", opts.Tabstop)
	}
	if opts.Tabstyle != "" {
		style, ok := tabStyles[opts.Tabstyle]
		if !ok {
			return nil, fmt.Errorf("unknown tab style %q", opts.Tabstyle)
		}
		f.tabhead, f.tabspace = style[0], style[1]
	}
	if opts.Tabhead != "" {
		f.tabhead = opts.Tabhead
	}
	if opts.Tabspace != "" {
		f.tabspace = opts.Tabspace
	}
	if opts.Padchar != "" {
		f.padchar = opts.Padchar
	}
	if err := f.checkCell("padchar", f.padchar); err != nil {
		return nil, err
	}
	if err := f.checkCell("tabhead", f.tabhead); err != nil {
		return nil, err
	}
	if err := f.checkCell("tabspace", f.tabspace); err != nil {
		return nil, err
	}

	for _, d := range opts.Discard {
		switch strings.ToUpper(d) {
		case "EL":
			f.discardEL = true
		case "OSC":
			f.discardOSC = true
		default:
			return nil, fmt.Errorf("unknown discard type %q", d)
		}
	}
	return f, nil
}

// checkCell rejects pad and tab fill strings that are not exactly one
// cell wide.
func (f *Folder) checkCell(name, s string) error {
	cluster, size := firstCluster(s)
	if size != len(s) || f.clusterWidth(cluster) != 1 {
		return fmt.Errorf("%s must be a single character of width 1, got %q", name, s)
	}
	return nil
}

// Fold cuts line into fragments of at most width columns, repeating
// the width until the line is exhausted. A negative width disables
// folding, width 0 folds the whole line away, and a line that already
// fits comes back untouched.
func (f *Folder) Fold(line string, width int) []string {
	line = f.prepare(line)
	if width < 0 {
		return []string{line}
	}
	if width == 0 {
		return nil
	}
	if f.Width(line) <= width {
		if f.opts.Padding {
			line = f.pad(line, width)
		}
		return []string{line}
	}

	var frags []string
	var st sgrState
	rest := line
	for rest != "" {
		frag, r := f.cut(rest, width, &st)
		frag = f.seal(frag, r, &st)
		if f.opts.Padding {
			frag = f.pad(frag, width)
		}
		frags = append(frags, frag)
		rest = r
	}
	return frags
}

// Chop cuts line into one fragment per width, in order, and stops
// when the line runs out, so trailing fragments may be missing. A zero
// width in final position takes the rest of the line when remainder is
// set and drops it otherwise; elsewhere it yields an empty fragment.
// Anything left after the last width is dropped.
func (f *Folder) Chop(line string, widths []int, remainder bool) []string {
	line = f.prepare(line)
	if line == "" {
		return []string{""}
	}

	frags := make([]string, 0, len(widths))
	var st sgrState
	rest := line
	for i, w := range widths {
		if rest == "" {
			break
		}
		last := i == len(widths)-1
		switch {
		case w == 0 && last && remainder:
			frags = append(frags, st.prefix()+rest)
			rest = ""
		case w == 0 && last:
			// A literal trailing 0 truncates the line.
			rest = ""
		case w == 0:
			frags = append(frags, "")
		default:
			frag, r := f.cut(rest, w, &st)
			frag = f.seal(frag, r, &st)
			if f.opts.Padding {
				frag = f.pad(frag, w)
			}
			frags = append(frags, frag)
			rest = r
		}
	}
	return frags
}

// prepare applies the per-line preprocessing shared by Fold and Chop.
func (f *Folder) prepare(line string) string {
	if f.discardEL || f.discardOSC {
		line = f.stripDiscard(line)
	}
	if f.opts.Expand {
		line = f.expandTabs(line)
	}
	return line
}

// stripDiscard removes the sequence classes selected with Discard.
func (f *Folder) stripDiscard(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			end := skipSequence(s, i)
			seq := s[i:end]
			if !(f.discardEL && isEraseLine(seq) || f.discardOSC && isOSC(seq)) {
				b.WriteString(seq)
			}
			i = end
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// seal closes the SGR state on a fragment that does not carry the end
// of the line. The fragment that does keeps the input bytes as they
// were.
func (f *Folder) seal(frag, rest string, st *sgrState) string {
	if rest != "" && st.active() {
		return frag + resetSeq
	}
	return frag
}

// pad fills frag with the padding character up to width columns.
// Fragments already at or over the width are left alone.
func (f *Folder) pad(frag string, width int) string {
	n := width - f.Width(frag)
	if n <= 0 {
		return frag
	}
	return frag + strings.Repeat(f.padchar, n)
}

// cutMark remembers a position the cut can be rewound to, with the
// SGR state that was in effect there.
type cutMark struct {
	ok    bool
	src   int
	body  int
	col   int
	state []string
}

func (m *cutMark) set(src, body, col int, st *sgrState) {
	m.ok = true
	m.src = src
	m.body = body
	m.col = col
	m.state = st.snapshot()
}

func (m *cutMark) rewind(body []byte, st *sgrState) (int, []byte) {
	st.restore(m.state)
	return m.src, body[:m.body]
}

// cut takes at most width columns of text off the front of s. The
// fragment opens with the SGR state accumulated so far and st is
// advanced past the sequences the fragment consumed. At least one
// cluster is consumed even when it alone is wider than width, so
// folding always makes progress.
func (f *Folder) cut(s string, width int, st *sgrState) (string, string) {
	prefix := st.prefix()
	body := make([]byte, 0, width+len(prefix))
	col := 0
	anyText := false
	pendingSpace := false
	var wordMark, runMark cutMark

	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			end := skipSequence(s, i)
			seq := s[i:end]
			body = append(body, seq...)
			st.apply(seq)
			i = end
			continue
		}
		cluster, size := firstCluster(s[i:])
		cw := f.clusterWidth(cluster)
		if col+cw > width {
			if !anyText {
				// A single cluster wider than the requested width.
				body = append(body, cluster...)
				col += cw
				i += size
			}
			break
		}
		if f.wordBreak {
			if pendingSpace && cluster != " " {
				wordMark.set(i, len(body), col, st)
			}
			pendingSpace = cluster == " "
		}
		if f.runout {
			if isNoEnd(cluster) {
				if !runMark.ok {
					runMark.set(i, len(body), col, st)
				}
			} else {
				runMark.ok = false
			}
		}
		body = append(body, cluster...)
		col += cw
		anyText = true
		i += size
	}

	if i < len(s) {
		if c, ok := nextCluster(s[i:]); ok {
			switch {
			case f.wordBreak && wordMark.ok && !pendingSpace && c != " ":
				i, body = wordMark.rewind(body, st)
			case f.runout && runMark.ok && runMark.body > 0 && col-runMark.col <= f.opts.Runout:
				i, body = runMark.rewind(body, st)
			}
		}
		if f.runin {
			i, body = f.pullRunin(s, i, body, st)
		}
	}

	return prefix + string(body), s[i:]
}
