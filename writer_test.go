package fluent

import (
	"errors"
	"testing"

	"github.com/JorrenH/solid-fluent-store/store"
	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/JorrenH/solid-fluent-store/value/vpath"
	"github.com/google/go-cmp/cmp"
)

func fromJSON(t *testing.T, js string) *value.Node {
	t.Helper()
	n, err := value.FromJSON([]byte(js))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func newWriter(t *testing.T, js string) (store.Snapshot, *Writer) {
	t.Helper()
	snap, w, err := CreateStore(fromJSON(t, js), store.Name(t.Name()))
	if err != nil {
		t.Fatal(err)
	}
	return snap, w
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// recorder is a host whose setter records its calls.
type recorder struct {
	snap  store.Snapshot
	calls [][]any
}

func (r *recorder) set(args ...any) error {
	r.calls = append(r.calls, args)
	return nil
}

func TestPathRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func(w *Writer) *Writer
		keys  []any
		v     any
	}{
		{"root field", func(w *Writer) *Writer { return w.At("a") }, []any{"a"}, 5},
		{"nested", func(w *Writer) *Writer { return w.At("todos").Index(1).At("done") }, []any{"todos", 1, "done"}, true},
		{"prop path", func(w *Writer) *Writer { return w.Prop("todos").(*Writer).Prop("0").(*Writer) }, []any{"todos", "0"}, "x"},
		{"path string", func(w *Writer) *Writer { return w.Path(`todos[0]."title"`) }, []any{"todos", 0, "title"}, "t"},
	}
	const init = `{"a":1,"todos":[{"title":"a","done":false},{"title":"b","done":false}]}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, w := newWriter(t, init)
			direct, err := store.New(fromJSON(t, init))
			if err != nil {
				t.Fatal(err)
			}
			must(t, tt.build(w).Call(tt.v))
			must(t, direct.Set(append(tt.keys, tt.v)...))
			if got, want := snap.Root().String(), direct.Snapshot().Root().String(); got != want {
				t.Errorf("writer produced %s, setter %s", got, want)
			}
		})
	}
}

func TestSingleSetterCall(t *testing.T) {
	s, err := store.New(fromJSON(t, `{"a":{"b":[1]}}`))
	if err != nil {
		t.Fatal(err)
	}
	r := &recorder{snap: s.Snapshot()}
	w := New(r.snap, r.set, nil)
	must(t, w.At("a").At("b").Call(0, "extra"))
	if len(r.calls) != 1 {
		t.Fatalf("%d setter calls, want 1", len(r.calls))
	}
	var got []any
	for _, a := range r.calls[0] {
		if seg, ok := a.(vpath.Segment); ok {
			got = append(got, seg.Key.Any())
			continue
		}
		got = append(got, a)
	}
	if diff := cmp.Diff([]any{"a", "b", 0, "extra"}, got); diff != "" {
		t.Errorf("setter args (-want +got):\n%s", diff)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	snap, w := newWriter(t, `{"todos":[{"n":1},{"n":2}]}`)
	var prevs []any
	var keys [][]any
	up := func(prev *value.Node, ks ...vpath.Key) (any, error) {
		prevs = append(prevs, value.ToAny(prev))
		var kk []any
		for _, k := range ks {
			kk = append(kk, k.Any())
		}
		keys = append(keys, kk)
		i, _ := prev.Int()
		return i + 10, nil
	}
	must(t, w.At("todos").Index(1).At("n").Update(up))
	if diff := cmp.Diff([]any{2}, prevs); diff != "" {
		t.Errorf("prev (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]any{{1, "todos"}}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if got := snap.Get("todos", 1, "n").String(); got != "12" {
		t.Errorf("n = %s", got)
	}
}

func TestWriterReuse(t *testing.T) {
	snap, w := newWriter(t, `{"a":{}}`)
	base := w.At("a")
	x := base.At("x")
	y := base.At("y")
	must(t, x.Set(1))
	must(t, y.Set(2))
	must(t, x.Set(3))
	if got := base.String(); got != "a" {
		t.Errorf("base path changed to %s", got)
	}
	if got := x.Location().String(); got != "a.x" {
		t.Errorf("x path %s", got)
	}
	if got := snap.Root().String(); got != `{"a":{"x":3,"y":2}}` {
		t.Errorf("got %s", got)
	}
	if w.Location().Len() != 0 {
		t.Error("root writer extended")
	}
}

func TestWriterErrors(t *testing.T) {
	_, w := newWriter(t, `{"a":1}`)
	bad := w.At(1.5)
	if !errors.Is(bad.Err(), vpath.ErrBadSegment) {
		t.Errorf("Err() = %v", bad.Err())
	}
	if err := bad.At("x").Set(1); !errors.Is(err, vpath.ErrBadSegment) {
		t.Errorf("extended bad writer: %v", err)
	}
	if err := w.Path("a..b").Set(1); !errors.Is(err, vpath.ErrParse) {
		t.Errorf("bad path string: %v", err)
	}
	if err := w.At("a").At("b").Set(1); !errors.Is(err, ErrNotContainer) {
		t.Errorf("write through scalar: %v", err)
	}
	if err := w.Call(); !errors.Is(err, store.ErrNoValue) {
		t.Errorf("empty call: %v", err)
	}
}

func TestProp(t *testing.T) {
	set := value.FromSet(nil)
	m := value.FromEntries(nil)
	_, w, err := CreateStore(map[string]any{
		"list": []any{1},
		"obj":  map[string]any{},
		"set":  set,
		"map":  m,
	})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path, name string
		want       string
	}{
		{"list", "push", "method"},
		{"list", "splice", "method"},
		{"list", "add", "writer"},
		{"list", "length", "writer"},
		{"obj", "push", "writer"},
		{"set", "add", "method"},
		{"set", "set", "writer"},
		{"map", "set", "method"},
		{"map", "delete", "method"},
		{"map", "push", "writer"},
		{"missing", "push", "writer"},
		{"list", "$all", "stream"},
		{"obj", "$in", "stream"},
		{"obj", "$batch", "stream"},
		{"obj", "$other", "writer"},
	}
	for _, tt := range tests {
		t.Run(tt.path+"."+tt.name, func(t *testing.T) {
			var got string
			switch m := w.At(tt.path).Prop(tt.name).(type) {
			case *Method:
				got = "method"
				if m.Name() != tt.name {
					t.Errorf("method name %s", m.Name())
				}
			case *Stream:
				got = "stream"
				if m.Name() != tt.name {
					t.Errorf("stream name %s", m.Name())
				}
			case *Writer:
				got = "writer"
				if want := tt.path + "." + tt.name; m.String() != want && m.String() != tt.path+`."`+tt.name+`"` {
					t.Errorf("writer path %s, want %s", m, want)
				}
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPropInvokeWriter(t *testing.T) {
	snap, w := newWriter(t, `{"a":{}}`)
	res, err := w.Prop("a").Invoke("b", 1)
	must(t, err)
	if res != nil {
		t.Errorf("writer invoke returned %v", res)
	}
	if got := snap.Root().String(); got != `{"a":{"b":1}}` {
		t.Errorf("got %s", got)
	}
}
