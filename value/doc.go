// Package value provides the document model held by a store.
//
// # Overview
//
// A document is a tree of *Node. The Node is a recursive tagged union: the
// Type field says which of the other fields carry content.
//
//   - Leaves: NullType, BoolType, NumberType, StringType
//   - Sequence: ArrayType (ordered Values)
//   - SetLike: SetType (ordered Values, no two equal under Compare)
//   - MapLike: MapType (Fields[i] is the key of Values[i]; any leaf key)
//   - Record: ObjectType (Fields[i] is the StringType key of Values[i])
//
// # Creating Nodes
//
//	node := value.FromString("hello")
//	obj := value.FromMap(map[string]*value.Node{
//	    "key": value.FromInt(1),
//	})
//	set := value.FromSet([]*value.Node{value.FromInt(1), value.FromInt(2)})
//	n, err := value.FromAny(map[string]any{"list": []any{1, 2, 3}})
//
// # Sharing
//
// Nodes have no parent links. A store shares every unchanged subtree between
// its successive roots, so a node reachable from a store must never be
// modified; the in-place container operations (Push, SetAdd, MapSet, ...)
// are meant for copies made with ShallowCopy.
//
// # Thread Safety
//
// Node structures are not thread-safe.
package value
