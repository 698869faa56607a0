package store

import (
	"fmt"
	"strconv"

	"github.com/JorrenH/solid-fluent-store/debug"
	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"
)

// Updater computes the new value at a path from the previous one. keys holds
// the concrete keys descended through to reach the target's container,
// nearest first; the target's own key is not included. prev is nil when
// nothing is stored at the path. Returning prev itself, or a leaf equal to
// it, leaves the document unchanged; returning nil deletes the target.
type Updater func(prev *value.Node, keys ...vpath.Key) (any, error)

// Set applies one positional write. Every argument but the last is a path
// segment, normalized by vpath.SegmentOf:
//
//   - a plain key descends into an object field, array index or map key
//   - a key list applies the rest of the write to each listed key in turn
//   - a predicate or range applies it to each selected array element
//
// The last argument is an Updater, a func(*value.Node) any, or a literal
// converted with value.FromAny. A literal nil deletes an object field or map
// entry and stores null in an array. With no path the root is replaced.
//
// The write is all or nothing: on error the document is left unchanged.
func (s *Store) Set(args ...any) error {
	if len(args) == 0 {
		return ErrNoValue
	}
	segs := make([]vpath.Segment, len(args)-1)
	for i, a := range args[:len(args)-1] {
		seg, err := vpath.SegmentOf(a)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
		segs[i] = seg
	}
	root, changed, err := s.update(s.root, segs, args[len(args)-1], nil)
	if err != nil {
		return err
	}
	if debug.Store() {
		debug.Logf("store %q set %d segments changed=%t\n", s.name, len(segs), changed)
	}
	if !changed {
		return nil
	}
	s.root = root
	s.version++
	s.changed()
	return nil
}

func (s *Store) update(cur *value.Node, segs []vpath.Segment, last any, traversed []vpath.Key) (*value.Node, bool, error) {
	if len(segs) == 0 {
		nv, err := resolve(last, cur, traversed)
		if err != nil {
			return nil, false, err
		}
		if nv == nil || same(cur, nv) {
			return cur, false, nil
		}
		return nv, true, nil
	}
	seg, rest := segs[0], segs[1:]
	switch seg.Kind {
	case vpath.KeysKind:
		return s.fanOut(cur, seg.Keys, rest, last, traversed)

	case vpath.PredicateKind, vpath.RangeKind:
		if cur == nil || cur.Type != value.ArrayType {
			return nil, false, fmt.Errorf("%w: %s segment %s applied to %s", ErrNotContainer, seg.Kind, seg, typeName(cur))
		}
		var keys []vpath.Key
		if seg.Kind == vpath.RangeKind {
			for _, i := range seg.Range.Indices(len(cur.Values)) {
				keys = append(keys, vpath.Index(i))
			}
		} else {
			for i, elt := range cur.Values {
				k := vpath.Index(i)
				if seg.Pred(elt, k) {
					keys = append(keys, k)
				}
			}
		}
		return s.fanOut(cur, keys, rest, last, traversed)

	case vpath.KeyKind:
		child, err := childAt(cur, seg.Key)
		if err != nil {
			return nil, false, err
		}
		var nc *value.Node
		if len(rest) == 0 {
			nc, err = resolve(last, child, traversed)
			if err != nil {
				return nil, false, err
			}
			if same(child, nc) {
				return cur, false, nil
			}
		} else {
			var changed bool
			nc, changed, err = s.update(child, rest, last, append([]vpath.Key{seg.Key}, traversed...))
			if err != nil {
				return nil, false, err
			}
			if !changed {
				return cur, false, nil
			}
		}
		res, err := withChild(cur, seg.Key, nc)
		if err != nil {
			return nil, false, err
		}
		return res, true, nil
	}
	return nil, false, fmt.Errorf("%w: kind %s", ErrBadSegment, seg.Kind)
}

func (s *Store) fanOut(cur *value.Node, keys []vpath.Key, rest []vpath.Segment, last any, traversed []vpath.Key) (*value.Node, bool, error) {
	acc, anyChanged := cur, false
	for _, k := range keys {
		segs := append([]vpath.Segment{vpath.KeySegment(k)}, rest...)
		res, changed, err := s.update(acc, segs, last, traversed)
		if err != nil {
			return nil, false, err
		}
		acc = res
		anyChanged = anyChanged || changed
	}
	return acc, anyChanged, nil
}

func resolve(last any, prev *value.Node, traversed []vpath.Key) (*value.Node, error) {
	var (
		res any
		err error
	)
	switch f := last.(type) {
	case nil:
		return nil, nil
	case Updater:
		res, err = f(prev, traversed...)
	case func(*value.Node, ...vpath.Key) (any, error):
		res, err = f(prev, traversed...)
	case func(*value.Node) any:
		res = f(prev)
	default:
		res = last
	}
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	if n, ok := res.(*value.Node); ok && n == nil {
		return nil, nil
	}
	return value.FromAny(res)
}

// same reports whether storing next in place of prev is a no-op: next is
// prev itself, or both are equal leaves of the same representation.
func same(prev, next *value.Node) bool {
	if prev == next {
		return true
	}
	if prev == nil || next == nil || prev.Type != next.Type || !prev.Type.IsLeaf() {
		return false
	}
	if prev.Type == value.NumberType && (prev.Int64 == nil) != (next.Int64 == nil) {
		return false
	}
	return value.Equal(prev, next)
}

func objectField(k vpath.Key) (string, bool) {
	switch {
	case k.Field != nil:
		return *k.Field, true
	case k.Index != nil:
		return strconv.Itoa(*k.Index), true
	case k.Value != nil && k.Value.Type == value.StringType:
		return k.Value.String, true
	}
	return "", false
}

func arrayIndex(k vpath.Key) (int, bool) {
	switch {
	case k.Index != nil:
		return *k.Index, true
	case k.Field != nil:
		i, err := strconv.Atoi(*k.Field)
		return i, err == nil
	case k.Value != nil:
		i, ok := k.Value.Int()
		return int(i), ok
	}
	return 0, false
}

func childAt(cur *value.Node, k vpath.Key) (*value.Node, error) {
	if cur == nil {
		return nil, fmt.Errorf("%w: cannot descend by %s into undefined", ErrNotContainer, k)
	}
	switch cur.Type {
	case value.ObjectType:
		f, ok := objectField(k)
		if !ok {
			return nil, fmt.Errorf("%w: key %s on Object", ErrBadSegment, k)
		}
		return value.Get(cur, f), nil
	case value.MapType:
		return cur.MapGet(k.Node()), nil
	case value.ArrayType:
		i, ok := arrayIndex(k)
		if !ok {
			return nil, fmt.Errorf("%w: key %s on Array", ErrBadSegment, k)
		}
		return cur.At(i), nil
	}
	return nil, fmt.Errorf("%w: cannot descend by %s into %s", ErrNotContainer, k, cur.Type)
}

func withChild(cur *value.Node, k vpath.Key, v *value.Node) (*value.Node, error) {
	res := cur.ShallowCopy()
	switch cur.Type {
	case value.ObjectType:
		f, _ := objectField(k)
		if v == nil {
			res.MapDelete(value.FromString(f))
			return res, nil
		}
		res.MapSet(value.FromString(f), v)
	case value.MapType:
		if v == nil {
			res.MapDelete(k.Node())
			return res, nil
		}
		res.MapSet(k.Node(), v)
	case value.ArrayType:
		i, _ := arrayIndex(k)
		if i < 0 {
			return nil, fmt.Errorf("%w: negative index %d", ErrBadSegment, i)
		}
		if v == nil {
			if i >= len(res.Values) {
				return cur, nil
			}
			v = value.Null()
		}
		for len(res.Values) <= i {
			res.Values = append(res.Values, value.Null())
		}
		res.Values[i] = v
	}
	return res, nil
}

func typeName(n *value.Node) string {
	if n == nil {
		return "undefined"
	}
	return n.Type.String()
}
