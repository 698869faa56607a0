package fluent

import (
	"strconv"

	"github.com/JorrenH/solid-fluent-store/debug"
	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"
)

// TargetType is the kind of container found at a writer's path.
type TargetType int

const (
	Other TargetType = iota
	Sequence
	SetLike
	MapLike
)

func (t TargetType) String() string {
	switch t {
	case Sequence:
		return "Sequence"
	case SetLike:
		return "SetLike"
	case MapLike:
		return "MapLike"
	}
	return "Other"
}

var methodSets = map[TargetType][]string{
	Sequence: {"copyWithin", "fill", "pop", "push", "reverse", "shift", "sort", "splice", "unshift"},
	SetLike:  {"add", "clear", "delete"},
	MapLike:  {"clear", "delete", "set"},
}

// Methods returns the mutating methods intercepted on targets of type t.
func (t TargetType) Methods() []string {
	return methodSets[t]
}

func targetOf(n *value.Node) TargetType {
	if n == nil {
		return Other
	}
	switch n.Type {
	case value.ArrayType:
		return Sequence
	case value.SetType:
		return SetLike
	case value.MapType:
		return MapLike
	}
	return Other
}

// Classify walks root along path and reports the type of the value found
// there with its intercepted methods. Segments selecting several targets are
// represented by one of them: a key list by its first key, a predicate or
// range by element 0 of the array it applies to. Any dead end yields Other.
func Classify(root *value.Node, path *vpath.Path) (TargetType, []string) {
	cur := root
	for _, seg := range path.Segments() {
		if cur == nil {
			break
		}
		switch seg.Kind {
		case vpath.KeyKind:
			cur = child(cur, seg.Key)
		case vpath.KeysKind:
			if len(seg.Keys) == 0 {
				cur = nil
				break
			}
			cur = child(cur, seg.Keys[0])
		case vpath.PredicateKind, vpath.RangeKind:
			cur = cur.At(0)
		default:
			cur = nil
		}
	}
	t := targetOf(cur)
	if debug.Classify() {
		debug.Logf("classify %s: %s\n", path, t)
	}
	return t, t.Methods()
}

func child(cur *value.Node, k vpath.Key) *value.Node {
	switch cur.Type {
	case value.ObjectType:
		if k.Index != nil {
			return value.Get(cur, strconv.Itoa(*k.Index))
		}
		return cur.MapGet(k.Node())
	case value.MapType:
		return cur.MapGet(k.Node())
	case value.ArrayType:
		switch {
		case k.Index != nil:
			return cur.At(*k.Index)
		case k.Field != nil:
			if i, err := strconv.Atoi(*k.Field); err == nil {
				return cur.At(i)
			}
		}
	}
	return nil
}
