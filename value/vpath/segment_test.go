package vpath

import (
	"errors"
	"testing"

	"github.com/JorrenH/solid-fluent-store/value"
	"github.com/google/go-cmp/cmp"
)

func TestRangeIndices(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		n    int
		want []int
	}{
		{"defaults", Range{}, 3, []int{0, 1, 2}},
		{"step", NewRange(1, 5, 2), 5, []int{1, 3}},
		{"to is exclusive", NewRange(0, 6, 3), 10, []int{0, 3}},
		{"zero step is one", NewRange(0, 2, 0), 5, []int{0, 1}},
		{"negative from clamps", NewRange(-2, 2, 1), 5, []int{0, 1}},
		{"empty", NewRange(3, 3, 1), 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.r.Indices(tt.n)); diff != "" {
				t.Errorf("Indices (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentOf(t *testing.T) {
	pred := Predicate(func(v *value.Node, k Key) bool { return true })
	tests := []struct {
		name string
		in   any
		kind Kind
		str  string
	}{
		{"field", "a", KeyKind, "a"},
		{"index", 3, KeyKind, "[3]"},
		{"uint64 index", uint64(3), KeyKind, "[3]"},
		{"node key", value.FromInt(5), KeyKind, "{5}"},
		{"keys", []any{"a", 1}, KeysKind, "(a,[1])"},
		{"string keys", []string{"x", "y"}, KeysKind, "(x,y)"},
		{"predicate", pred, PredicateKind, "[?]"},
		{"func", func(*value.Node, Key) bool { return false }, PredicateKind, "[?]"},
		{"all", All(), PredicateKind, "[*]"},
		{"range", NewRange(1, 5, 2), RangeKind, "[1:5:2]"},
		{"range pointer", &Range{}, RangeKind, "[::]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, err := SegmentOf(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if seg.Kind != tt.kind {
				t.Errorf("kind %s, want %s", seg.Kind, tt.kind)
			}
			if got := seg.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestSegmentOfError(t *testing.T) {
	for _, in := range []any{3.5, struct{}{}, []any{"a", 1.5}, (*value.Node)(nil)} {
		if _, err := SegmentOf(in); !errors.Is(err, ErrBadSegment) {
			t.Errorf("SegmentOf(%#v) = %v, want ErrBadSegment", in, err)
		}
	}
}

func TestKeyEqual(t *testing.T) {
	if !Index(1).Equal(ValueKey(value.FromFloat(1))) {
		t.Error("index 1 != value key 1.0")
	}
	if Field("1").Equal(Index(1)) {
		t.Error("field \"1\" == index 1")
	}
}
