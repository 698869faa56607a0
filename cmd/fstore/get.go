package main

import (
	"fmt"

	fluent "github.com/JorrenH/solid-fluent-store"
	"github.com/JorrenH/solid-fluent-store/store"
	"github.com/JorrenH/solid-fluent-store/value/vpath"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: get requires a path and at most one document", cli.ErrUsage)
	}
	p, err := vpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	docPath := docArg(args, 1)
	doc, err := getDoc(cc, docPath)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", docPath, err)
	}
	keys, err := pathKeys(p)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	v := store.ViewOf(doc).Get(keys...)
	if !v.Exists() {
		return fmt.Errorf("nothing at %s", p)
	}
	return cfg.writeDoc(cc.Out, fluent.Unwrap(v))
}

func pathKeys(p *vpath.Path) ([]any, error) {
	segs := p.Segments()
	res := make([]any, len(segs))
	for i, seg := range segs {
		if seg.Kind != vpath.KeyKind {
			return nil, fmt.Errorf("get path %s: %s segment selects several values", p, seg.Kind)
		}
		res[i] = seg.Key
	}
	return res, nil
}
