// Package fluent provides path-accumulating writers over a reactive
// document store.
//
// A Writer records a path into the document and, when invoked, issues one
// call of the host's positional setter with that path followed by the
// invocation's arguments:
//
//	snap, w, _ := fluent.CreateStore(map[string]any{"todos": []any{}})
//	w.At("todos").Call(0, map[string]any{"title": "a"})
//	// same as set("todos", 0, {"title": "a"})
//
// Property access goes through Prop. When the value currently at the path
// is an array, set or map, the names of its mutating methods yield a
// *Method which applies the operation to a copy and stores the copy:
//
//	n, _ := w.At("todos").Prop("push").Invoke(map[string]any{"title": "b"})
//
// The names $all, $filter, $in, $range and $batch yield a *Stream:
//
//	first, _ := w.At("todos").Prop("$filter").Invoke("k < 2")
//	first.(*fluent.Writer).At("done").Set(true)
//
//	inc, _ := fluent.Compute("v + 1")
//	w.At("counts").In("a", "c").Update(inc)
//
// Writers are values: extending one returns a new writer and the original
// can be reused.
//
// # Debugging
//
// Setting FLUENT_DEBUG_WRITE, FLUENT_DEBUG_CLASSIFY or
// FLUENT_DEBUG_DISPATCH to a true value in the environment logs writes,
// classifications and method dispatch to stderr.
package fluent
