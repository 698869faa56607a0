package vpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JorrenH/solid-fluent-store/value"
)

// Key identifies one child of a container. Exactly one of the fields is set:
//   - Field: object field name or string map key
//   - Index: array index (or integer object field / map key)
//   - Value: arbitrary map key
type Key struct {
	Field *string
	Index *int
	Value *value.Node
}

func Field(name string) Key {
	return Key{Field: &name}
}

func Index(i int) Key {
	return Key{Index: &i}
}

func ValueKey(n *value.Node) Key {
	return Key{Value: n}
}

// KeyOf normalizes a Go key (string, integer, *value.Node or Key).
func KeyOf(v any) (Key, error) {
	switch x := v.(type) {
	case Key:
		return x, nil
	case string:
		return Field(x), nil
	case int:
		return Index(x), nil
	case int8:
		return Index(int(x)), nil
	case int16:
		return Index(int(x)), nil
	case int32:
		return Index(int(x)), nil
	case int64:
		return Index(int(x)), nil
	case uint:
		return Index(int(x)), nil
	case uint8:
		return Index(int(x)), nil
	case uint16:
		return Index(int(x)), nil
	case uint32:
		return Index(int(x)), nil
	case uint64:
		return Index(int(x)), nil
	case *value.Node:
		if x == nil {
			return Key{}, fmt.Errorf("%w: nil key", ErrBadSegment)
		}
		return ValueKey(x), nil
	}
	return Key{}, fmt.Errorf("%w: %T is not a key", ErrBadSegment, v)
}

// Node returns the key as a value, suitable for comparing against map keys.
func (k Key) Node() *value.Node {
	switch {
	case k.Field != nil:
		return value.FromString(*k.Field)
	case k.Index != nil:
		return value.FromInt(int64(*k.Index))
	case k.Value != nil:
		return k.Value
	}
	return value.Null()
}

// Any returns the key as plain Go data.
func (k Key) Any() any {
	switch {
	case k.Field != nil:
		return *k.Field
	case k.Index != nil:
		return *k.Index
	case k.Value != nil:
		return value.ToAny(k.Value)
	}
	return nil
}

func (k Key) Equal(o Key) bool {
	return value.Compare(k.Node(), o.Node()) == 0
}

// String returns the key in path syntax: a, "a b", [0] or {<value>}.
func (k Key) String() string {
	switch {
	case k.Field != nil:
		if quoteField(*k.Field) {
			return strconv.Quote(*k.Field)
		}
		return *k.Field
	case k.Index != nil:
		return "[" + strconv.Itoa(*k.Index) + "]"
	case k.Value != nil:
		return "{" + k.Value.Text() + "}"
	}
	return ""
}

func quoteField(f string) bool {
	if f == "" {
		return true
	}
	return strings.ContainsAny(f, " \t\n.[]{}()\"'*?:,")
}

type Kind int

const (
	KeyKind Kind = iota
	PredicateKind
	KeysKind
	RangeKind
)

func (k Kind) String() string {
	switch k {
	case KeyKind:
		return "key"
	case PredicateKind:
		return "predicate"
	case KeysKind:
		return "keys"
	case RangeKind:
		return "range"
	}
	return "<unknown kind>"
}

// Predicate selects the elements of an array whose value and index it
// accepts.
type Predicate func(v *value.Node, k Key) bool

// Keys selects an explicit list of children.
type Keys []Key

// Range selects array indices From, From+By, ... while below To. Unset
// bounds default to From=0, By=1 and To=len.
type Range struct {
	From *int
	To   *int
	By   *int
}

func NewRange(from, to, by int) Range {
	return Range{From: &from, To: &to, By: &by}
}

// Indices returns the selected indices against an array of length n. A
// step below 1 is treated as 1.
func (r Range) Indices(n int) []int {
	from, to, by := 0, n, 1
	if r.From != nil {
		from = *r.From
	}
	if r.To != nil {
		to = *r.To
	}
	if r.By != nil && *r.By > 1 {
		by = *r.By
	}
	var res []int
	for i := max(from, 0); i < to; i += by {
		res = append(res, i)
	}
	return res
}

func (r Range) String() string {
	part := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	return "[" + part(r.From) + ":" + part(r.To) + ":" + part(r.By) + "]"
}

// Segment is one step of a path.
type Segment struct {
	Kind  Kind
	Key   Key
	Pred  Predicate
	Keys  Keys
	Range Range

	// Wild marks a predicate which accepts everything.
	Wild bool
}

func KeySegment(k Key) Segment {
	return Segment{Kind: KeyKind, Key: k}
}

func PredicateSegment(p Predicate) Segment {
	return Segment{Kind: PredicateKind, Pred: p}
}

func KeysSegment(ks Keys) Segment {
	return Segment{Kind: KeysKind, Keys: ks}
}

func RangeSegment(r Range) Segment {
	return Segment{Kind: RangeKind, Range: r}
}

// All returns the segment selecting every element of an array.
func All() Segment {
	return Segment{
		Kind: PredicateKind,
		Pred: func(*value.Node, Key) bool { return true },
		Wild: true,
	}
}

// SegmentOf normalizes a positional setter argument into a Segment.
func SegmentOf(v any) (Segment, error) {
	switch x := v.(type) {
	case Segment:
		return x, nil
	case Predicate:
		return PredicateSegment(x), nil
	case func(*value.Node, Key) bool:
		return PredicateSegment(x), nil
	case Keys:
		return KeysSegment(x), nil
	case Range:
		return RangeSegment(x), nil
	case *Range:
		return RangeSegment(*x), nil
	case []Key:
		return KeysSegment(x), nil
	case []any:
		return keysOf(x)
	case []string:
		return keysOf(x)
	case []int:
		return keysOf(x)
	}
	k, err := KeyOf(v)
	if err != nil {
		return Segment{}, err
	}
	return KeySegment(k), nil
}

func keysOf[T any](vs []T) (Segment, error) {
	ks := make(Keys, len(vs))
	for i := range vs {
		k, err := KeyOf(vs[i])
		if err != nil {
			return Segment{}, err
		}
		ks[i] = k
	}
	return KeysSegment(ks), nil
}

func (s Segment) String() string {
	switch s.Kind {
	case KeyKind:
		return s.Key.String()
	case PredicateKind:
		if s.Wild {
			return "[*]"
		}
		return "[?]"
	case KeysKind:
		parts := make([]string, len(s.Keys))
		for i, k := range s.Keys {
			parts[i] = k.String()
		}
		return "(" + strings.Join(parts, ",") + ")"
	case RangeKind:
		return s.Range.String()
	}
	return ""
}
