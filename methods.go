package fluent

import (
	"github.com/JorrenH/solid-fluent-store/value"
)

// The methods below call the mutating operations directly, without
// consulting Classify. Each is one write; when the value at the path is not
// the required container, ErrNotContainer is returned and nothing changes.
// When the path selects no targets the updater never runs and the zero
// result is returned. Under a selection of several targets the result is
// that of the last one.

// Push appends vs to the array and returns its new length.
func (w *Writer) Push(vs ...any) (int, error) {
	res, err := w.dispatch("push", vs)
	if err != nil {
		return 0, err
	}
	n, _ := res.(int)
	return n, nil
}

// Pop removes the last element of the array and returns it, or nil when the
// array was empty.
func (w *Writer) Pop() (*value.Node, error) {
	res, err := w.dispatch("pop", nil)
	if err != nil {
		return nil, err
	}
	n, _ := res.(*value.Node)
	return n, nil
}

// Shift removes the first element of the array and returns it.
func (w *Writer) Shift() (*value.Node, error) {
	res, err := w.dispatch("shift", nil)
	if err != nil {
		return nil, err
	}
	n, _ := res.(*value.Node)
	return n, nil
}

// Unshift prepends vs to the array and returns its new length.
func (w *Writer) Unshift(vs ...any) (int, error) {
	res, err := w.dispatch("unshift", vs)
	if err != nil {
		return 0, err
	}
	n, _ := res.(int)
	return n, nil
}

// Splice removes deleteCount elements from start, inserts items there and
// returns the removed elements as an array.
func (w *Writer) Splice(start, deleteCount int, items ...any) (*value.Node, error) {
	res, err := w.dispatch("splice", append([]any{start, deleteCount}, items...))
	if err != nil {
		return nil, err
	}
	n, _ := res.(*value.Node)
	return n, nil
}

func (w *Writer) Reverse() error {
	_, err := w.dispatch("reverse", nil)
	return err
}

// Sort sorts the array stably by cmp, or by value.Compare when cmp is nil.
func (w *Writer) Sort(cmp func(a, b *value.Node) int) error {
	var args []any
	if cmp != nil {
		args = []any{cmp}
	}
	_, err := w.dispatch("sort", args)
	return err
}

// Fill sets the elements in [start, end) to v; start and end are optional.
func (w *Writer) Fill(v any, startEnd ...int) error {
	args := []any{v}
	for _, i := range startEnd {
		args = append(args, i)
	}
	_, err := w.dispatch("fill", args)
	return err
}

// CopyWithin copies the elements in [start, end) to target.
func (w *Writer) CopyWithin(target int, startEnd ...int) error {
	args := []any{target}
	for _, i := range startEnd {
		args = append(args, i)
	}
	_, err := w.dispatch("copyWithin", args)
	return err
}

// Add adds v to the set.
func (w *Writer) Add(v any) error {
	_, err := w.dispatch("add", []any{v})
	return err
}

// Put stores v under key in the map.
func (w *Writer) Put(key, v any) error {
	_, err := w.dispatch("set", []any{key, v})
	return err
}

// Delete removes key from the map, or the element key from the set, and
// reports whether it was present.
func (w *Writer) Delete(key any) (bool, error) {
	res, err := w.dispatch("delete", []any{key})
	if err != nil {
		return false, err
	}
	ok, _ := res.(bool)
	return ok, nil
}

// Clear empties the set or map.
func (w *Writer) Clear() error {
	_, err := w.dispatch("clear", nil)
	return err
}
