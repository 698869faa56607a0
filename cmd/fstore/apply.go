package main

import (
	"fmt"

	fluent "github.com/JorrenH/solid-fluent-store"
	"github.com/JorrenH/solid-fluent-store/store"
	"github.com/JorrenH/solid-fluent-store/value"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: apply requires a script and at most one document, got %v", cli.ErrUsage, args)
	}
	if cfg.Diff && cfg.Patch {
		return fmt.Errorf("%w: at most one of -diff -patch", cli.ErrUsage)
	}
	d, err := readAll(cc, args[0])
	if err != nil {
		return err
	}
	steps, err := parseScript(d)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", cli.ErrUsage, args[0], err)
	}
	docPath := docArg(args, 1)
	doc, err := getDoc(cc, docPath)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", docPath, err)
	}
	before, after, err := applyScript(doc, steps)
	if err != nil {
		return fmt.Errorf("error applying %s: %w", args[0], err)
	}
	switch {
	case cfg.Diff:
		return diffDocs(cfg.MainConfig, cc.Out, before, after)
	case cfg.Patch:
		p, err := mergePatch(before, after)
		if err != nil {
			return err
		}
		return cfg.writeDoc(cc.Out, p)
	}
	return cfg.writeDoc(cc.Out, after)
}

// applyScript runs steps against a store holding doc and returns the
// document before and after.
func applyScript(doc *value.Node, steps []*step) (*value.Node, *value.Node, error) {
	s, err := store.New(doc, store.Name("fstore"))
	if err != nil {
		return nil, nil, err
	}
	w := fluent.New(s.Snapshot(), s.Set, s)
	if err := runScript(w, steps); err != nil {
		return nil, nil, err
	}
	return doc, fluent.Unwrap(s.Snapshot()), nil
}

// mergePatch returns the RFC 7386 merge patch taking before to after.
func mergePatch(before, after *value.Node) (*value.Node, error) {
	a, err := value.MarshalJSON(before)
	if err != nil {
		return nil, err
	}
	b, err := value.MarshalJSON(after)
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("error creating merge patch: %w", err)
	}
	return value.FromJSON(p)
}
