// Package store is an in-process document store with a positional setter.
//
// A store pairs a read-only Snapshot of its document with a Setter taking a
// path of segments followed by a value or Updater:
//
//	snap, set, err := store.Create(map[string]any{"list": []any{1, 2, 3}})
//	err = set("list", 0, 10)                           // list[0] = 10
//	err = set("list", vpath.All(), func(prev *value.Node) any {
//	    i, _ := prev.Int()
//	    return i * 2
//	})                                                 // double every element
//	n, _ := snap.Get("list", 1).Int()
//
// Writes replace nodes along the path instead of modifying them, so earlier
// roots and every node handed out stay unchanged. Observers registered with
// Observe run after each changing write; Batch defers them until the
// outermost batch returns.
package store
