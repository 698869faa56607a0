package main

import (
	"fmt"

	fluent "github.com/JorrenH/solid-fluent-store"
	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"

	"github.com/scott-cotton/cli"
)

func classify(cfg *ClassifyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Classify.Parse(cc, args)
	if err != nil {
		cfg.Classify.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: classify requires a path and at most one document", cli.ErrUsage)
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
	tt, methods := fluent.Classify(doc, p)
	ms := make([]*value.Node, len(methods))
	for i, m := range methods {
		ms[i] = value.FromString(m)
	}
	res := value.FromKeyVals([]value.KeyVal{
		{Key: value.FromString("type"), Val: value.FromString(tt.String())},
		{Key: value.FromString("methods"), Val: value.FromSlice(ms)},
	})
	return cfg.writeDoc(cc.Out, res)
}
