package fluent

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/JorrenH/solid-fluent-store/debug"
	"github.com/JorrenH/solid-fluent-store/store"
	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"
)

// Method is a mutating container operation bound to a writer's path.
type Method struct {
	w    *Writer
	name string
}

func (m *Method) Name() string {
	return m.name
}

// Invoke applies the operation with args and returns its result.
func (m *Method) Invoke(args ...any) (any, error) {
	return m.w.dispatch(m.name, args)
}

type nativeOp func(n *value.Node, args []any) (any, error)

var nativeOps = map[value.Type]map[string]nativeOp{
	value.ArrayType: {
		"copyWithin": seqCopyWithin,
		"fill":       seqFill,
		"pop":        func(n *value.Node, _ []any) (any, error) { return n.Pop(), nil },
		"push":       seqPush,
		"reverse":    func(n *value.Node, _ []any) (any, error) { return n.Reverse(), nil },
		"shift":      func(n *value.Node, _ []any) (any, error) { return n.Shift(), nil },
		"sort":       seqSort,
		"splice":     seqSplice,
		"unshift":    seqUnshift,
	},
	value.SetType: {
		"add":    setAdd,
		"clear":  clearAll,
		"delete": setDelete,
	},
	value.MapType: {
		"clear":  clearAll,
		"delete": mapDelete,
		"set":    mapSet,
	},
}

// dispatch issues one setter call whose updater applies the named operation
// to a copy of the previous container and stores the copy. The operation's
// own result is returned.
func (w *Writer) dispatch(name string, args []any) (any, error) {
	var ret any
	up := store.Updater(func(prev *value.Node, _ ...vpath.Key) (any, error) {
		var op nativeOp
		if prev != nil {
			op = nativeOps[prev.Type][name]
		}
		if op == nil {
			return nil, fmt.Errorf("%w: %s on %s", ErrNotContainer, name, typeName(prev))
		}
		next := prev.ShallowCopy()
		res, err := op(next, args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		ret = res
		return next, nil
	})
	if debug.Dispatch() {
		debug.Logf("dispatch %s.%s (%d args)\n", w.path, name, len(args))
	}
	if err := w.Call(up); err != nil {
		return nil, err
	}
	return ret, nil
}

func typeName(n *value.Node) string {
	if n == nil {
		return "undefined"
	}
	return n.Type.String()
}

func nodeArgs(args []any) ([]*value.Node, error) {
	res := make([]*value.Node, len(args))
	for i, a := range args {
		n, err := value.FromAny(a)
		if err != nil {
			return nil, err
		}
		res[i] = n
	}
	return res, nil
}

func nodeArg(args []any, i int) (*value.Node, error) {
	if i >= len(args) {
		return nil, nil
	}
	return value.FromAny(args[i])
}

func intArg(a any) (int, error) {
	switch x := a.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint:
		return uintArg(uint64(x))
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return uintArg(uint64(x))
	case uint64:
		return uintArg(x)
	case float32:
		return floatArg(float64(x))
	case float64:
		return floatArg(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrBadArgument, x)
		}
		return floatArg(f)
	case *value.Node:
		if x != nil && x.Type == value.NumberType {
			if x.Int64 != nil {
				return int(*x.Int64), nil
			}
			if x.Float64 != nil {
				return floatArg(*x.Float64)
			}
		}
	}
	return 0, fmt.Errorf("%w: %v (%T) is not an integer", ErrBadArgument, a, a)
}

func uintArg(x uint64) (int, error) {
	if x > math.MaxInt {
		return 0, fmt.Errorf("%w: %d out of range", ErrBadArgument, x)
	}
	return int(x), nil
}

func floatArg(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrBadArgument, f)
	}
	return int(f), nil
}

func intArgs(args []any) ([]int, error) {
	res := make([]int, len(args))
	for i, a := range args {
		v, err := intArg(a)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func seqPush(n *value.Node, args []any) (any, error) {
	vs, err := nodeArgs(args)
	if err != nil {
		return nil, err
	}
	return n.Push(vs...), nil
}

func seqUnshift(n *value.Node, args []any) (any, error) {
	vs, err := nodeArgs(args)
	if err != nil {
		return nil, err
	}
	return n.Unshift(vs...), nil
}

func seqFill(n *value.Node, args []any) (any, error) {
	v, err := nodeArg(args, 0)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = value.Null()
	}
	var se []int
	if len(args) > 1 {
		if se, err = intArgs(args[1:]); err != nil {
			return nil, err
		}
	}
	return n.Fill(v, se...), nil
}

func seqCopyWithin(n *value.Node, args []any) (any, error) {
	is, err := intArgs(args)
	if err != nil {
		return nil, err
	}
	if len(is) == 0 {
		is = []int{0}
	}
	return n.CopyWithin(is[0], is[1:]...), nil
}

func seqSort(n *value.Node, args []any) (any, error) {
	if len(args) == 0 || args[0] == nil {
		return n.Sort(nil), nil
	}
	switch f := args[0].(type) {
	case func(a, b *value.Node) int:
		return n.Sort(f), nil
	}
	return nil, fmt.Errorf("%w: sort comparator %T", ErrBadArgument, args[0])
}

func seqSplice(n *value.Node, args []any) (any, error) {
	if len(args) == 0 {
		return value.FromSlice(nil), nil
	}
	start, err := intArg(args[0])
	if err != nil {
		return nil, err
	}
	deleteCount := len(n.Values)
	if len(args) > 1 {
		if deleteCount, err = intArg(args[1]); err != nil {
			return nil, err
		}
	}
	var items []*value.Node
	if len(args) > 2 {
		if items, err = nodeArgs(args[2:]); err != nil {
			return nil, err
		}
	}
	return value.FromSlice(n.Splice(start, deleteCount, items...)), nil
}

func setAdd(n *value.Node, args []any) (any, error) {
	v, err := nodeArg(args, 0)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = value.Null()
	}
	return n.SetAdd(v), nil
}

func setDelete(n *value.Node, args []any) (any, error) {
	v, err := nodeArg(args, 0)
	if err != nil || v == nil {
		return false, err
	}
	return n.SetDelete(v), nil
}

func mapSet(n *value.Node, args []any) (any, error) {
	k, err := mapKeyArg(args, 0)
	if err != nil {
		return nil, err
	}
	v, err := nodeArg(args, 1)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = value.Null()
	}
	return n.MapSet(k, v), nil
}

func mapDelete(n *value.Node, args []any) (any, error) {
	k, err := mapKeyArg(args, 0)
	if err != nil {
		return nil, err
	}
	return n.MapDelete(k), nil
}

func mapKeyArg(args []any, i int) (*value.Node, error) {
	if i >= len(args) {
		return value.Null(), nil
	}
	if k, ok := args[i].(vpath.Key); ok {
		return k.Node(), nil
	}
	return value.FromAny(args[i])
}

func clearAll(n *value.Node, _ []any) (any, error) {
	n.Clear()
	return nil, nil
}
