// Package cli handles flag parsing and configuration for the folding
// filters.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/fsmiamoto/ansifold/internal/config"
	"github.com/fsmiamoto/ansifold/internal/fold"
	"github.com/fsmiamoto/ansifold/internal/widthspec"
)

// Profile fixes the defaults that differ between the installed
// commands: ansifold folds at 72 columns, ansiexpand does not fold at
// all and expands tabs instead.
type Profile struct {
	Name         string
	DefaultWidth int
	Expand       bool
}

// Options is a fully resolved invocation: profile defaults, then the
// config file, then command-line flags, later sources winning.
type Options struct {
	Widths    []int // parsed width sequence; empty means the profile default
	Separator string
	Paragraph int
	Fold      fold.Options
	Files     []string
	Version   bool
}

const usageFmt = `Usage: %[1]s [flags] [file ...]

Fold lines of ANSI terminal text at visual column boundaries. Escape
sequences take no columns and East Asian wide characters take two;
color state is carried across folds. Reads standard input when no file
is given ("-" also means standard input).

Flags:
  -w, --width <spec>       fold width(s): a comma-separated list with ranges
                           (2:10, 4:20:4) and repeats (3{5}); in a list,
                           negative widths cut and drop that stretch and a
                           trailing negative keeps the rest of the line; a
                           single negative width disables folding
                           (default: %[2]d)
      --separate <str>     fragment separator; \n and \\ are unescaped
                           (default: newline)
  -n                       no separator, same as --separate=''
  -p, --paragraph          extra newline after each line; repeat for more
  -s, --smart              same as --linebreak=all --boundary=word
      --boundary <mode>    fold at word boundaries: none, word
      --linebreak <mode>   Japanese line composition: none, runin, runout, all
      --runin <n>          run-in allowance in columns (default: 2)
      --runout <n>         run-out allowance in columns (default: 2)
  -x, --expand             expand tabs
      --tabstop <n>        tab stop interval (default: 8)
      --tabhead <c>        first cell of an expanded tab
      --tabspace <c>       remaining cells of an expanded tab
      --tabstyle <name>    tab cell pair: space, dot, symbol, shade, needle, dash
      --padding            pad each fragment to its requested width
      --padchar <c>        padding character (default: space)
      --ambiguous <mode>   East Asian ambiguous width: narrow, wide
      --discard <type>     drop sequences of a type: EL, OSC; repeatable
      --config <path>      defaults file (default: ~/.config/ansifold/config.toml)
      --version            print version
  -h, --help               show this help
`

// multiValue collects every occurrence of a repeatable string flag.
type multiValue []string

func (m *multiValue) String() string { return strings.Join(*m, ",") }

func (m *multiValue) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// countValue counts bare occurrences (-p -p) and also accepts an
// explicit value (--paragraph=2).
type countValue int

func (c *countValue) String() string { return strconv.Itoa(int(*c)) }

func (c *countValue) IsBoolFlag() bool { return true }

func (c *countValue) Set(v string) error {
	switch v {
	case "true":
		*c++
		return nil
	case "false":
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative count, got %q", v)
	}
	*c = countValue(n)
	return nil
}

// Parse parses command-line arguments for the given profile. It
// writes usage/error output to stderr and returns an error if the
// arguments are invalid. A returned error with an empty message means
// --help was requested and the caller should exit 0.
func Parse(p Profile, args []string) (*Options, error) {
	fs := flag.NewFlagSet(p.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // we handle output ourselves

	var (
		widths     multiValue
		separate   string
		noSep      bool
		paragraph  countValue
		smart      bool
		boundary   string
		linebreak  string
		runin      int
		runout     int
		expand     bool
		tabstop    int
		tabhead    string
		tabspace   string
		tabstyle   string
		padding    bool
		padchar    string
		ambiguous  string
		discard    multiValue
		configPath string
		version    bool
		help       bool
		helpShort  bool
	)

	fs.Var(&widths, "width", "")
	fs.Var(&widths, "w", "")
	fs.StringVar(&separate, "separate", "", "")
	fs.BoolVar(&noSep, "n", false, "")
	fs.Var(&paragraph, "paragraph", "")
	fs.Var(&paragraph, "p", "")
	fs.BoolVar(&smart, "smart", false, "")
	fs.BoolVar(&smart, "s", false, "")
	fs.StringVar(&boundary, "boundary", "", "")
	fs.StringVar(&linebreak, "linebreak", "", "")
	fs.IntVar(&runin, "runin", 2, "")
	fs.IntVar(&runout, "runout", 2, "")
	fs.BoolVar(&expand, "expand", false, "")
	fs.BoolVar(&expand, "x", false, "")
	fs.IntVar(&tabstop, "tabstop", 8, "")
	fs.StringVar(&tabhead, "tabhead", "", "")
	fs.StringVar(&tabspace, "tabspace", "", "")
	fs.StringVar(&tabstyle, "tabstyle", "", "")
	fs.BoolVar(&padding, "padding", false, "")
	fs.StringVar(&padchar, "padchar", "", "")
	fs.StringVar(&ambiguous, "ambiguous", "", "")
	fs.Var(&discard, "discard", "")
	fs.StringVar(&configPath, "config", "", "")
	fs.BoolVar(&version, "version", false, "")
	fs.BoolVar(&help, "help", false, "")
	fs.BoolVar(&helpShort, "h", false, "")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, usageFmt, p.Name, p.DefaultWidth)
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	if help || helpShort {
		fmt.Fprintf(os.Stderr, usageFmt, p.Name, p.DefaultWidth)
		return nil, errors.New("") // signals help-requested; caller exits 0
	}
	if version {
		return &Options{Version: true}, nil
	}

	// Which flags were given on the command line? Those beat the
	// config file; everything else may be filled in from it.
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) {
		set[longName(fl.Name)] = true
	})

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if !set["width"] && cfg.Has("width") {
		widths = multiValue{cfg.File.Width}
	}
	seq, err := widthspec.Parse(widths)
	if err != nil {
		return nil, err
	}

	separator := "\n"
	switch {
	case set["separate"]:
		separator = unescapeSeparator(separate)
	case noSep:
		separator = ""
	case cfg.Has("separate"):
		separator = cfg.File.Separate
	}

	if !set["paragraph"] && cfg.Has("paragraph") {
		paragraph = countValue(cfg.File.Paragraph)
	}
	if paragraph < 0 {
		return nil, fmt.Errorf("paragraph count must be non-negative, got %d", paragraph)
	}

	if !set["boundary"] && cfg.Has("boundary") {
		boundary = cfg.File.Boundary
	}
	if !set["linebreak"] && cfg.Has("linebreak") {
		linebreak = cfg.File.Linebreak
	}
	if !set["runin"] && cfg.Has("runin") {
		runin = cfg.File.Runin
	}
	if !set["runout"] && cfg.Has("runout") {
		runout = cfg.File.Runout
	}
	if !set["ambiguous"] && cfg.Has("ambiguous") {
		ambiguous = cfg.File.Ambiguous
	}
	if !set["tabstop"] && cfg.Has("tabstop") {
		tabstop = cfg.File.Tabstop
	}
	if !set["tabstyle"] && cfg.Has("tabstyle") {
		tabstyle = cfg.File.Tabstyle
	}
	if !set["tabhead"] && cfg.Has("tabhead") {
		tabhead = cfg.File.Tabhead
	}
	if !set["tabspace"] && cfg.Has("tabspace") {
		tabspace = cfg.File.Tabspace
	}
	if !set["padchar"] && cfg.Has("padchar") {
		padchar = cfg.File.Padchar
	}
	if !padding && cfg.Has("padding") {
		padding = cfg.File.Padding
	}
	if !expand && cfg.Has("expand") {
		expand = cfg.File.Expand
	}
	if len(discard) == 0 && cfg.Has("discard") {
		discard = cfg.File.Discard
	}

	// -s expands to two options; explicit flags still win.
	if smart {
		if !set["linebreak"] {
			linebreak = "all"
		}
		if !set["boundary"] {
			boundary = "word"
		}
	}
	expand = expand || p.Expand

	if boundary == "" {
		boundary = "none"
	}
	if linebreak == "" {
		linebreak = "none"
	}
	if ambiguous == "" {
		ambiguous = "narrow"
	}
	if err := checkEnum("boundary", boundary, []string{"none", "word"}); err != nil {
		return nil, err
	}
	if err := checkEnum("linebreak mode", linebreak, []string{"none", "runin", "runout", "all"}); err != nil {
		return nil, err
	}
	if err := checkEnum("ambiguous width", ambiguous, []string{"narrow", "wide"}); err != nil {
		return nil, err
	}
	if tabstyle != "" {
		styles := fold.TabStyles()
		sort.Strings(styles)
		if err := checkEnum("tab style", tabstyle, styles); err != nil {
			return nil, err
		}
	}
	for _, d := range discard {
		if err := checkEnum("discard type", strings.ToUpper(d), []string{"EL", "OSC"}); err != nil {
			return nil, err
		}
	}

	return &Options{
		Widths:    seq,
		Separator: separator,
		Paragraph: int(paragraph),
		Files:     fs.Args(),
		Fold: fold.Options{
			Boundary:  boundary,
			Linebreak: linebreak,
			Runin:     runin,
			Runout:    runout,
			Padding:   padding,
			Padchar:   padchar,
			Expand:    expand,
			Tabstop:   tabstop,
			Tabhead:   tabhead,
			Tabspace:  tabspace,
			Tabstyle:  tabstyle,
			Ambiguous: ambiguous,
			Discard:   discard,
		},
	}, nil
}

// longName maps a short flag to the long name it aliases.
func longName(name string) string {
	switch name {
	case "w":
		return "width"
	case "p":
		return "paragraph"
	case "s":
		return "smart"
	case "x":
		return "expand"
	}
	return name
}

// unescapeSeparator handles the two escapes --separate understands:
// \n becomes a newline and \\ a backslash. Anything else stays as it
// was typed.
func unescapeSeparator(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// checkEnum validates an enumerated option value, suggesting the
// closest name on a near miss.
func checkEnum(what, value string, valid []string) error {
	for _, v := range valid {
		if value == v {
			return nil
		}
	}
	if matches := fuzzy.Find(value, valid); len(matches) > 0 {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", what, value, matches[0].Str)
	}
	return fmt.Errorf("unknown %s %q", what, value)
}
