package fluent

import (
	"fmt"
	"os"

	"github.com/JorrenH/solid-fluent-store/debug"
	"github.com/JorrenH/solid-fluent-store/store"
	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expression environment:
//
//	v     the element or previous value, as plain Go data (nil if undefined)
//	k     the element's key (Where) or the nearest traversed key (Compute)
//	keys  every traversed key, nearest first (Compute only)
//
// plus the function getenv(name).
func exprEnv(v *value.Node, k any, keys []any) map[string]any {
	var x any
	if v != nil {
		x = value.ToAny(v)
	}
	return map[string]any{"v": x, "k": k, "keys": keys}
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(exprEnv(nil, nil, nil)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// Where compiles an expr-lang boolean expression into a predicate. An
// element for which the expression fails at run time is not selected.
//
//	fluent.Where("v > 2")
//	fluent.Where("k % 2 == 0 && v.done")
func Where(src string) (vpath.Predicate, error) {
	prg, err := expr.Compile(src, append(exprOpts(), expr.AsBool())...)
	if err != nil {
		return nil, fmt.Errorf("%w: where %q: %w", ErrBadArgument, src, err)
	}
	return func(v *value.Node, k vpath.Key) bool {
		res, err := expr.Run(prg, exprEnv(v, k.Any(), nil))
		if err != nil {
			if debug.Dispatch() {
				debug.Logf("where %q on %s: %v\n", src, k, err)
			}
			return false
		}
		b, _ := res.(bool)
		return b
	}, nil
}

// Compute compiles an expr-lang expression into an updater whose result is
// the new value. A nil result deletes the target.
//
//	fluent.Compute("v * 2")
func Compute(src string) (store.Updater, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: compute %q: %w", ErrBadArgument, src, err)
	}
	return computeUpdater(src, prg), nil
}

func computeUpdater(src string, prg *vm.Program) store.Updater {
	return func(prev *value.Node, keys ...vpath.Key) (any, error) {
		ks := make([]any, len(keys))
		for i := range keys {
			ks[i] = keys[i].Any()
		}
		var k any
		if len(ks) > 0 {
			k = ks[0]
		}
		res, err := expr.Run(prg, exprEnv(prev, k, ks))
		if err != nil {
			return nil, fmt.Errorf("compute %q: %w", src, err)
		}
		return res, nil
	}
}
