package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"
)

func fstoreMain(cfg *MainConfig, cc *cli.Context, args []string) (err error) {
	defer func() {
		if cfg.CloseOut == nil {
			return
		}
		if cerr := cfg.CloseOut(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", cfg.Out, cerr)
		}
	}()
	args, err = cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// outOpt redirects output to a file. A .yaml or .yml output file is written
// as YAML without -y.
func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	switch strings.ToLower(filepath.Ext(a)) {
	case ".yaml", ".yml":
		cfg.outYAML = true
	}
	f, err := os.OpenFile(a, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
