// Package vpath provides the path segments a store setter descends by.
//
// A segment is one of:
//   - a plain key (object field, array index or map key)
//   - a predicate over (value, key), selecting array elements
//   - an explicit key list
//   - an index range {From, To, By}
//
// A Path is an immutable list of segments. Appending to a path returns a new
// path sharing the old one, so a path can be saved and extended in several
// directions without copying.
//
// # Path Strings
//
//	"users[0].name"   // field, index, field
//	"items[*].done"   // every element of items
//	"\"a b\".c"       // quoted field
//
// Predicates, key lists and ranges render as [?], (k1,k2) and [from:to:by]
// but only fields, indices and [*] can be parsed back.
package vpath
