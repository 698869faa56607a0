package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='colour diff output'"`
	Y     bool `cli:"name=y aliases=yaml desc='output yaml instead of json'"`

	Out      string
	CloseOut func() error
	outYAML  bool

	Main *cli.Command
}

// colors reports whether output to w is coloured: -color forces it, and
// without the flag a terminal is coloured.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ApplyConfig struct {
	*MainConfig

	Diff  bool `cli:"name=diff desc='print a line diff of the document before and after'"`
	Patch bool `cli:"name=patch desc='print an RFC 7386 merge patch from before to after'"`

	Apply *cli.Command
}

type ClassifyConfig struct {
	*MainConfig

	Classify *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}
