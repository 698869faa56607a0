package store

import (
	"testing"

	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/google/go-cmp/cmp"
)

func TestView(t *testing.T) {
	set := value.FromSet([]*value.Node{value.FromString("x"), value.FromInt(2)})
	s := newStore(t, map[string]any{
		"name": "n",
		"ok":   true,
		"list": []any{1, 2.5},
		"tags": set,
	})
	root := s.Snapshot().Root()

	if got, ok := root.Get("name").Str(); !ok || got != "n" {
		t.Errorf("name = %q, %t", got, ok)
	}
	if got, ok := root.Get("ok").Bool(); !ok || !got {
		t.Errorf("ok = %t, %t", got, ok)
	}
	if got, ok := root.Get("list", 0).Int(); !ok || got != 1 {
		t.Errorf("list[0] = %d, %t", got, ok)
	}
	if got, ok := root.Get("list").Index(1).Float(); !ok || got != 2.5 {
		t.Errorf("list[1] = %v, %t", got, ok)
	}
	if root.Get("list").Len() != 2 {
		t.Errorf("list len %d", root.Get("list").Len())
	}
	if !root.Get("tags").Has("x") || root.Get("tags").Has("y") {
		t.Error("set membership")
	}
	if root.Get("missing", "deeper").Exists() {
		t.Error("missing path exists")
	}
	if root.Get("name", 0).Exists() {
		t.Error("descended into a string")
	}
	if root.Get("missing").Type() != value.NullType {
		t.Error("absent value type")
	}

	var keys []any
	for _, k := range root.Keys() {
		keys = append(keys, k.Any())
	}
	if diff := cmp.Diff([]any{"list", "name", "ok", "tags"}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	want := map[string]any{
		"name": "n",
		"ok":   true,
		"list": []any{1, 2.5},
		"tags": []any{"x", 2},
	}
	if diff := cmp.Diff(want, root.Any()); diff != "" {
		t.Errorf("Any (-want +got):\n%s", diff)
	}
}

func TestUnwrap(t *testing.T) {
	s := newStore(t, []any{1})
	if Unwrap(s.Snapshot()) != Unwrap(s.Snapshot().Root()) {
		t.Error("snapshot and root view unwrap differently")
	}
	if Unwrap(nil) != nil {
		t.Error("Unwrap(nil)")
	}
	var zero Snapshot
	if Unwrap(zero) != nil || zero.Root().Exists() {
		t.Error("zero snapshot")
	}
}
