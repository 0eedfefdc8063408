// Package config loads per-user defaults for the folding filters from
// an optional TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// File mirrors the command-line option surface. The separate value is
// taken literally, without the \n escape the command line applies.
type File struct {
	Width     string   `toml:"width"`
	Separate  string   `toml:"separate"`
	Paragraph int      `toml:"paragraph"`
	Expand    bool     `toml:"expand"`
	Tabstop   int      `toml:"tabstop"`
	Tabstyle  string   `toml:"tabstyle"`
	Tabhead   string   `toml:"tabhead"`
	Tabspace  string   `toml:"tabspace"`
	Ambiguous string   `toml:"ambiguous"`
	Boundary  string   `toml:"boundary"`
	Linebreak string   `toml:"linebreak"`
	Runin     int      `toml:"runin"`
	Runout    int      `toml:"runout"`
	Padding   bool     `toml:"padding"`
	Padchar   string   `toml:"padchar"`
	Discard   []string `toml:"discard"`
}

// Config is a decoded defaults file. Has tells apart keys the file set
// from ones left at their zero value, so the command line can override
// only what the user did not write down.
type Config struct {
	File File
	md   toml.MetaData
}

// Has reports whether the file defines key.
func (c Config) Has(key string) bool {
	return c.md.IsDefined(key)
}

// DefaultPath returns the per-user config location, honoring
// $ANSIFOLD_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv("ANSIFOLD_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ansifold", "config.toml"), nil
}

// Load decodes the file at path, or the default location when path is
// empty. A missing file at the default location is not an error and
// yields an empty Config; a file named explicitly must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return Config{File: f, md: md}, nil
}
