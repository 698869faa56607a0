package store

import (
	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"
)

// Snapshot is a read-only handle on a store's current document. It always
// reads the latest root, so a Snapshot kept across writes observes them.
type Snapshot struct {
	s *Store
}

// Root returns a view of the current root.
func (sn Snapshot) Root() View {
	if sn.s == nil {
		return View{}
	}
	return View{n: sn.s.root}
}

// Get returns a view of the value reached from the root by plain keys.
func (sn Snapshot) Get(keys ...any) View {
	return sn.Root().Get(keys...)
}

// Store returns the store sn reads from.
func (sn Snapshot) Store() *Store {
	return sn.s
}

func (sn Snapshot) unwrap() *value.Node {
	if sn.s == nil {
		return nil
	}
	return sn.s.root
}

// View is a read-only view of one node. Children are returned as views.
// The zero View stands for an absent value.
type View struct {
	n *value.Node
}

// ViewOf wraps n read-only.
func ViewOf(n *value.Node) View {
	return View{n: n}
}

func (v View) Exists() bool {
	return v.n != nil
}

// Type returns the value type; absent values report NullType.
func (v View) Type() value.Type {
	if v.n == nil {
		return value.NullType
	}
	return v.n.Type
}

func (v View) Len() int {
	return v.n.Len()
}

// Get descends by plain keys. Any miss yields the zero View.
func (v View) Get(keys ...any) View {
	cur := v.n
	for _, key := range keys {
		k, err := vpath.KeyOf(key)
		if err != nil || cur == nil {
			return View{}
		}
		cur, err = childAt(cur, k)
		if err != nil {
			return View{}
		}
	}
	return View{n: cur}
}

// Index returns the i'th element of an array or set.
func (v View) Index(i int) View {
	if v.n == nil || (v.n.Type != value.ArrayType && v.n.Type != value.SetType) {
		return View{}
	}
	if i < 0 || i >= len(v.n.Values) {
		return View{}
	}
	return View{n: v.n.Values[i]}
}

// Keys returns the keys of an object or map.
func (v View) Keys() []View {
	if v.n == nil || !v.n.Type.IsKeyed() {
		return nil
	}
	res := make([]View, len(v.n.Fields))
	for i, f := range v.n.Fields {
		res[i] = View{n: f}
	}
	return res
}

// Has reports whether a set contains an element equal to x.
func (v View) Has(x any) bool {
	if v.n == nil || v.n.Type != value.SetType {
		return false
	}
	n, err := value.FromAny(x)
	if err != nil {
		return false
	}
	return v.n.SetHas(n)
}

func (v View) Int() (int64, bool) {
	return v.n.Int()
}

func (v View) Float() (float64, bool) {
	return v.n.Float()
}

func (v View) Str() (string, bool) {
	if v.n == nil || v.n.Type != value.StringType {
		return "", false
	}
	return v.n.String, true
}

func (v View) Bool() (bool, bool) {
	if v.n == nil || v.n.Type != value.BoolType {
		return false, false
	}
	return v.n.Bool, true
}

// Any returns a plain Go copy of the value.
func (v View) Any() any {
	return value.ToAny(v.n)
}

func (v View) String() string {
	return v.n.Text()
}

func (v View) unwrap() *value.Node {
	return v.n
}

// Wrapped is implemented by Snapshot and View.
type Wrapped interface {
	unwrap() *value.Node
}

// Unwrap returns the node underneath a Snapshot or View. The node is shared
// with the store and must not be modified.
func Unwrap(w Wrapped) *value.Node {
	if w == nil {
		return nil
	}
	return w.unwrap()
}
