package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FromAny converts plain Go data to a Node. A *Node is returned as is,
// preserving its identity. Values without a direct mapping are round-tripped
// through encoding/json.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		if x == nil {
			return Null(), nil
		}
		return x, nil
	case Node:
		return &x, nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q", ErrConvert, x)
		}
		return FromFloat(f), nil
	case string:
		return FromString(x), nil
	case []*Node:
		return FromSlice(x), nil
	case []any:
		return fromSlice(x)
	case []string:
		return fromSlice(x)
	case []int:
		return fromSlice(x)
	case []float64:
		return fromSlice(x)
	case map[string]*Node:
		return FromMap(x), nil
	case map[string]any:
		return fromStringMap(x)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = v
		}
		return fromStringMap(m)
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrConvert, v, err)
	}
	return FromJSON(d)
}

func fromSlice[T any](vs []T) (*Node, error) {
	res := &Node{Type: ArrayType, Values: make([]*Node, len(vs))}
	for i := range vs {
		n, err := FromAny(vs[i])
		if err != nil {
			return nil, err
		}
		res.Values[i] = n
	}
	return res, nil
}

func fromStringMap(m map[string]any) (*Node, error) {
	nm := make(map[string]*Node, len(m))
	for k, v := range m {
		n, err := FromAny(v)
		if err != nil {
			return nil, err
		}
		nm[k] = n
	}
	return FromMap(nm), nil
}

// MustFromAny is FromAny for literals known to convert.
func MustFromAny(v any) *Node {
	n, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return n
}

// FromJSON decodes a JSON document. Integers stay integers.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConvert, err)
	}
	return FromAny(v)
}

// ToAny converts a node to plain Go data: objects and maps become
// map[string]any, arrays and sets become []any.
func ToAny(node *Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ObjectType, MapType:
		n := len(node.Fields)
		res := make(map[string]any, n)
		for i := range n {
			res[node.Fields[i].KeyString()] = ToAny(node.Values[i])
		}
		return res
	case ArrayType, SetType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return int(*node.Int64)
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return 0
	case BoolType:
		return node.Bool
	default:
		return nil
	}
}

func MarshalJSON(node *Node) ([]byte, error) {
	return json.Marshal(ToAny(node))
}

// Text renders the node as compact JSON with object keys in stored order.
func (y *Node) Text() string {
	buf := bytes.NewBuffer(nil)
	writeText(buf, y)
	return buf.String()
}

func writeText(buf *bytes.Buffer, y *Node) {
	if y == nil {
		buf.WriteString("undefined")
		return
	}
	switch y.Type {
	case ObjectType, MapType:
		if y.Type == MapType {
			buf.WriteString("Map")
		}
		buf.WriteByte('{')
		for i, f := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if f.Type == StringType {
				buf.WriteString(strconv.Quote(f.String))
			} else {
				writeText(buf, f)
			}
			buf.WriteByte(':')
			writeText(buf, y.Values[i])
		}
		buf.WriteByte('}')
	case ArrayType, SetType:
		if y.Type == SetType {
			buf.WriteString("Set")
		}
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeText(buf, v)
		}
		buf.WriteByte(']')
	case StringType:
		buf.WriteString(strconv.Quote(y.String))
	case NullType:
		buf.WriteString("null")
	default:
		buf.WriteString(y.KeyString())
	}
}
