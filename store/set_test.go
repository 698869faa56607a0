package store

import (
	"errors"
	"testing"

	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"
	"github.com/google/go-cmp/cmp"
)

func newStore(t *testing.T, initial any) *Store {
	t.Helper()
	s, err := New(initial, Name(t.Name()))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func doc(t *testing.T, js string) *value.Node {
	t.Helper()
	n, err := value.FromJSON([]byte(js))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestSet(t *testing.T) {
	double := func(prev *value.Node) any {
		i, _ := prev.Int()
		return i * 2
	}
	even := vpath.Predicate(func(v *value.Node, _ vpath.Key) bool {
		i, _ := v.Int()
		return i%2 == 0
	})
	tests := []struct {
		name string
		init string
		args []any
		want string
	}{
		{"new field", `{}`, []any{"a", 1}, `{"a":1}`},
		{"replace field", `{"a":1,"b":2}`, []any{"a", "x"}, `{"a":"x","b":2}`},
		{"nested", `{"a":{"b":{"c":1}}}`, []any{"a", "b", "c", 2}, `{"a":{"b":{"c":2}}}`},
		{"array index", `[1,2,3]`, []any{1, 9}, `[1,9,3]`},
		{"array append", `[1]`, []any{1, 2}, `[1,2]`},
		{"array pad", `[1]`, []any{3, 4}, `[1,null,null,4]`},
		{"numeric field on array", `{"l":[0,0]}`, []any{"l", "1", 5}, `{"l":[0,5]}`},
		{"delete field", `{"a":1,"b":2}`, []any{"a", nil}, `{"b":2}`},
		{"delete missing field", `{"a":1}`, []any{"z", nil}, `{"a":1}`},
		{"nil in array", `[1,2]`, []any{0, nil}, `[null,2]`},
		{"store null", `{"a":1}`, []any{"a", value.Null()}, `{"a":null}`},
		{"root replace", `{"a":1}`, []any{[]any{1}}, `[1]`},
		{"root nil", `{"a":1}`, []any{nil}, `{"a":1}`},
		{"func updater", `{"n":4}`, []any{"n", double}, `{"n":8}`},
		{"keys", `{"a":1,"b":2,"c":3}`, []any{[]string{"a", "c"}, 0}, `{"a":0,"b":2,"c":0}`},
		{"keys then path", `{"a":{"x":1},"b":{"x":2}}`, []any{[]string{"a", "b"}, "x", 0}, `{"a":{"x":0},"b":{"x":0}}`},
		{"predicate", `[1,2,3,4]`, []any{even, double}, `[1,4,3,8]`},
		{"all then field", `[{"d":false},{"d":false}]`, []any{vpath.All(), "d", true}, `[{"d":true},{"d":true}]`},
		{"range", `[1,2,3,4,5]`, []any{vpath.NewRange(1, 5, 2), 6}, `[1,6,3,6,5]`},
		{"empty range", `[1,2]`, []any{vpath.NewRange(2, 2, 1), 6}, `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, doc(t, tt.init))
			if err := s.Set(tt.args...); err != nil {
				t.Fatal(err)
			}
			if got := s.Snapshot().Root().String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSetErrors(t *testing.T) {
	tests := []struct {
		name string
		init string
		args []any
		want error
	}{
		{"no args", `{}`, nil, ErrNoValue},
		{"through scalar", `{"a":1}`, []any{"a", "b", 2}, ErrNotContainer},
		{"through undefined", `{}`, []any{"a", "b", 2}, ErrNotContainer},
		{"predicate on object", `{"a":1}`, []any{vpath.All(), 2}, ErrNotContainer},
		{"range on string", `"s"`, []any{vpath.NewRange(0, 1, 1), 2}, ErrNotContainer},
		{"field key on array", `[1]`, []any{"x", 2}, ErrBadSegment},
		{"negative index", `[1]`, []any{-1, 2}, ErrBadSegment},
		{"bad segment", `{}`, []any{1.5, 2}, ErrBadSegment},
		{"partial fan out", `{"a":{"x":1},"b":2}`, []any{[]string{"a", "b"}, "x", 5}, ErrNotContainer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, doc(t, tt.init))
			before := s.Snapshot().Root().String()
			err := s.Set(tt.args...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if got := s.Snapshot().Root().String(); got != before {
				t.Errorf("document changed to %s on error", got)
			}
			if s.Version() != 0 {
				t.Errorf("version %d after failed write", s.Version())
			}
		})
	}
}

func TestSetUpdaterError(t *testing.T) {
	boom := errors.New("boom")
	s := newStore(t, doc(t, `{"a":1}`))
	err := s.Set("a", Updater(func(*value.Node, ...vpath.Key) (any, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want boom", err)
	}
}

func TestUpdaterKeys(t *testing.T) {
	s := newStore(t, doc(t, `{"a":{"list":[{"n":1},{"n":2}]}}`))
	var got [][]any
	up := Updater(func(prev *value.Node, keys ...vpath.Key) (any, error) {
		var ks []any
		for _, k := range keys {
			ks = append(ks, k.Any())
		}
		got = append(got, ks)
		return prev, nil
	})
	if err := s.Set("a", "list", vpath.All(), "n", up); err != nil {
		t.Fatal(err)
	}
	want := [][]any{{0, "list", "a"}, {1, "list", "a"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if s.Version() != 0 {
		t.Errorf("identity updater bumped version to %d", s.Version())
	}
}

func TestUpdaterPrev(t *testing.T) {
	s := newStore(t, doc(t, `{"a":1}`))
	var prevs []*value.Node
	up := func(prev *value.Node, _ ...vpath.Key) (any, error) {
		prevs = append(prevs, prev)
		return 1, nil
	}
	if err := s.Set("missing", up); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("a", up); err != nil {
		t.Fatal(err)
	}
	if prevs[0] != nil {
		t.Errorf("prev of missing field is %s", prevs[0].Text())
	}
	if i, ok := prevs[1].Int(); !ok || i != 1 {
		t.Errorf("prev of a is %s", prevs[1].Text())
	}
}

func TestPersistence(t *testing.T) {
	s := newStore(t, doc(t, `{"a":{"x":1},"b":{"y":2}}`))
	old := Unwrap(s.Snapshot())
	oldB := value.Get(old, "b")
	if err := s.Set("a", "x", 9); err != nil {
		t.Fatal(err)
	}
	cur := Unwrap(s.Snapshot())
	if got, want := old.Text(), `{"a":{"x":1},"b":{"y":2}}`; got != want {
		t.Errorf("old root changed to %s", got)
	}
	if cur == old {
		t.Error("root identity unchanged after write")
	}
	if value.Get(cur, "b") != oldB {
		t.Error("untouched subtree was copied")
	}
	if value.Get(cur, "a") == value.Get(old, "a") {
		t.Error("written subtree shares identity with old one")
	}
}

func TestMapKeys(t *testing.T) {
	m := value.FromEntries([]value.KeyVal{
		{Key: value.FromInt(1), Val: value.FromString("one")},
	})
	s := newStore(t, map[string]any{"m": m})
	if err := s.Set("m", vpath.ValueKey(value.FromInt(2)), "two"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("m", 1, nil); err != nil {
		t.Fatal(err)
	}
	if got, want := s.Snapshot().Get("m").String(), `Map{2:"two"}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
