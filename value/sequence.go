package value

import (
	"slices"
)

// The operations in this file modify an ArrayType node in place with the
// semantics of the familiar mutable sequence methods: negative positions
// count back from the end and out of range positions are clamped.
// Callers holding a node shared with a store must operate on a
// ShallowCopy.

func relIndex(i, n int) int {
	if i < 0 {
		return max(n+i, 0)
	}
	return min(i, n)
}

// bounds resolves optional start and end arguments against length n.
func bounds(n int, se []int) (int, int) {
	start, end := 0, n
	if len(se) > 0 {
		start = relIndex(se[0], n)
	}
	if len(se) > 1 {
		end = relIndex(se[1], n)
	}
	return start, end
}

// Push appends vs and returns the new length.
func (y *Node) Push(vs ...*Node) int {
	y.Values = append(y.Values, vs...)
	return len(y.Values)
}

// Pop removes and returns the last element, or nil when empty.
func (y *Node) Pop() *Node {
	n := len(y.Values)
	if n == 0 {
		return nil
	}
	res := y.Values[n-1]
	y.Values = y.Values[:n-1]
	return res
}

// Shift removes and returns the first element, or nil when empty.
func (y *Node) Shift() *Node {
	if len(y.Values) == 0 {
		return nil
	}
	res := y.Values[0]
	y.Values = slices.Delete(y.Values, 0, 1)
	return res
}

// Unshift prepends vs and returns the new length.
func (y *Node) Unshift(vs ...*Node) int {
	y.Values = slices.Insert(y.Values, 0, vs...)
	return len(y.Values)
}

func (y *Node) Reverse() *Node {
	slices.Reverse(y.Values)
	return y
}

// Sort sorts stably by cmpFn, or by Compare when cmpFn is nil.
func (y *Node) Sort(cmpFn func(a, b *Node) int) *Node {
	if cmpFn == nil {
		cmpFn = Compare
	}
	slices.SortStableFunc(y.Values, cmpFn)
	return y
}

// Fill sets every position in [start, end) to v. start and end are
// optional.
func (y *Node) Fill(v *Node, se ...int) *Node {
	start, end := bounds(len(y.Values), se)
	for i := start; i < end; i++ {
		y.Values[i] = v
	}
	return y
}

// CopyWithin copies the elements in [start, end) to position target,
// without changing the length.
func (y *Node) CopyWithin(target int, se ...int) *Node {
	n := len(y.Values)
	to := relIndex(target, n)
	start, end := bounds(n, se)
	count := min(end-start, n-to)
	if count > 0 {
		copy(y.Values[to:to+count], y.Values[start:start+count])
	}
	return y
}

// Splice removes deleteCount elements from start, inserts items in their
// place and returns the removed elements.
func (y *Node) Splice(start, deleteCount int, items ...*Node) []*Node {
	n := len(y.Values)
	start = relIndex(start, n)
	deleteCount = min(max(deleteCount, 0), n-start)
	removed := slices.Clone(y.Values[start : start+deleteCount])
	y.Values = slices.Replace(y.Values, start, start+deleteCount, items...)
	return removed
}
