package value

import (
	"maps"
	"slices"
	"strconv"
)

// Node is a single value in a store document.
//
// For ObjectType and MapType, Fields[i] is the key for Values[i]. Object keys
// are always StringType; map keys may be any leaf node. For ArrayType and
// SetType only Values is populated, and a set never holds two elements that
// Compare equal.
//
// Nodes carry no parent links so that unchanged subtrees can be shared between
// successive store roots.
type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(vs))
	copy(res.Values, vs)
	return res
}

// FromSet builds a set, dropping later elements equal to earlier ones.
func FromSet(vs []*Node) *Node {
	res := &Node{Type: SetType, Values: make([]*Node, 0, len(vs))}
	for _, v := range vs {
		res.SetAdd(v)
	}
	return res
}

// FromMap builds an object with fields in sorted key order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(m))
	res.Values = make([]*Node, len(m))
	for i, key := range slices.Sorted(maps.Keys(m)) {
		res.Fields[i] = FromString(key)
		res.Values[i] = m[key]
	}
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

// FromKeyVals builds an object preserving the order of kvs.
func FromKeyVals(kvs []KeyVal) *Node {
	return fromKeyValsAt(&Node{Type: ObjectType}, kvs)
}

// FromEntries builds a map preserving the order of kvs. A later entry with
// a key equal to an earlier one replaces its value.
func FromEntries(kvs []KeyVal) *Node {
	res := &Node{Type: MapType}
	for _, kv := range kvs {
		res.MapSet(kv.Key, kv.Val)
	}
	return res
}

func fromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Fields[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

// Clone returns a deep copy of y.
func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Values = nil
	dst.Fields = nil
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	dst.Float64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	dst.Int64 = nil
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	return dst
}

// ShallowCopy returns a new node with the same scalar content and fresh
// Fields/Values slices referencing the same children.
func (y *Node) ShallowCopy() *Node {
	res := &Node{}
	*res = *y
	if y.Values != nil {
		res.Values = slices.Clone(y.Values)
	}
	if y.Fields != nil {
		res.Fields = slices.Clone(y.Fields)
	}
	return res
}

// Len returns the number of elements or entries of a container and 0 for
// leaves.
func (y *Node) Len() int {
	if y == nil || y.Type.IsLeaf() {
		return 0
	}
	return len(y.Values)
}

// Get returns the value of the object field or string map key named field.
func Get(y *Node, field string) *Node {
	if y == nil || !y.Type.IsKeyed() {
		return nil
	}
	for i, f := range y.Fields {
		if f.Type == StringType && f.String == field {
			return y.Values[i]
		}
	}
	return nil
}

// FieldIndex returns the position of key among y's fields, or -1.
func (y *Node) FieldIndex(key *Node) int {
	if y == nil || !y.Type.IsKeyed() {
		return -1
	}
	for i, f := range y.Fields {
		if Compare(f, key) == 0 {
			return i
		}
	}
	return -1
}

// At returns the i'th element of an array, or nil when out of range.
func (y *Node) At(i int) *Node {
	if y == nil || y.Type != ArrayType || i < 0 || i >= len(y.Values) {
		return nil
	}
	return y.Values[i]
}

// Int returns the integer value of a number node, truncating floats.
func (y *Node) Int() (int64, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return *y.Int64, true
	}
	if y.Float64 != nil {
		return int64(*y.Float64), true
	}
	return 0, false
}

// Float returns the floating point value of a number node.
func (y *Node) Float() (float64, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	if y.Float64 != nil {
		return *y.Float64, true
	}
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	return 0, false
}

// KeyString renders a field node as a map key.
func (y *Node) KeyString() string {
	switch y.Type {
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		if y.Float64 != nil {
			return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
		}
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NullType:
		return "null"
	}
	return "<" + y.Type.String() + ">"
}

func Truth(node *Node) bool {
	if node == nil {
		return false
	}
	switch node.Type {
	case ObjectType, ArrayType, SetType, MapType:
		return len(node.Values) != 0
	case StringType:
		return node.String != ""
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64 != 0
		}
		if node.Float64 != nil {
			return *node.Float64 != 0.0
		}
		return false
	case BoolType:
		return node.Bool
	default:
		return false
	}
}
