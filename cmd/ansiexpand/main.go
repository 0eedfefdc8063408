package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fsmiamoto/ansifold/internal/cli"
	"github.com/fsmiamoto/ansifold/internal/filter"
	"github.com/fsmiamoto/ansifold/internal/fold"
	"github.com/fsmiamoto/ansifold/internal/foldplan"
)

// ansiexpand is the expand-only sibling of ansifold: tabs are expanded
// by default and lines pass through unfolded unless -w is given.
var profile = cli.Profile{Name: "ansiexpand", DefaultWidth: -1, Expand: true}

func main() {
	opts, err := cli.Parse(profile, os.Args[1:])
	if err != nil {
		if err.Error() == "" {
			os.Exit(0) // --help
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", profile.Name, err)
		os.Exit(1)
	}
	if opts.Version {
		fmt.Printf("%s version %s\n", profile.Name, cli.Version)
		return
	}
	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", profile.Name, err)
		os.Exit(1)
	}
}

func run(opts *cli.Options, stdin io.Reader, stdout io.Writer) error {
	folder, err := fold.New(opts.Fold)
	if err != nil {
		return err
	}
	plan := foldplan.Build(opts.Widths, profile.DefaultWidth)
	f := filter.New(plan, folder, filter.Options{
		Separator: opts.Separator,
		Paragraph: opts.Paragraph,
	})

	if len(opts.Files) == 0 {
		return f.Run(stdin, stdout)
	}
	for _, name := range opts.Files {
		if name == "-" {
			if err := f.Run(stdin, stdout); err != nil {
				return err
			}
			continue
		}
		in, err := os.Open(name)
		if err != nil {
			return err
		}
		err = f.Run(in, stdout)
		in.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
