// Copyright 2026 The protoCore-sub001 Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package plist implements the persistent, AVL-balanced ordered list:
// every mutating operation returns a new root via path copying, and
// every previously observed root stays valid and unchanged.
package plist

import (
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/internal/ints"
	"github.com/numaes/protoCore-sub001/value"
)

// node is the tree cell backing every non-empty list. An empty list
// is itself a node with nil left/right and a zero count, not a Go nil
// — every list value.Word wraps a live cell, per the value encoding's
// "heap reference or embedded scalar" split.
type node struct {
	val         value.Word
	left, right value.Word // TagList, or value.None for an absent subtree
	count       int
	height      int
}

func (n *node) ProcessReferences(visit func(value.Word)) {
	visit(n.val)
	visit(n.left)
	visit(n.right)
}

func (n *node) Finalize() {}

func asNode(w value.Word) *node {
	if w.IsNone() || w.Tag() != value.TagList {
		return nil
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil
	}
	n, _ := slot.Body.(*node)
	if n != nil && n.count == 0 {
		// An Empty() cell and an absent subtree (value.None) must be
		// indistinguishable to every caller below, or InsertAt/SetAt
		// would take the value-bearing branch on an empty list and
		// retain Empty's zero val as a phantom element.
		return nil
	}
	return n
}

func sizeOf(w value.Word) int {
	if n := asNode(w); n != nil {
		return n.count
	}
	return 0
}

func heightOf(w value.Word) int {
	if n := asNode(w); n != nil {
		return n.height
	}
	return 0
}

// Empty returns a fresh, empty list.
func Empty(ctx *heap.Context) value.Word {
	return ctx.Alloc(value.TagList, &node{left: value.None, right: value.None})
}

// Size returns the number of elements in the list.
func Size(w value.Word) int { return sizeOf(w) }

// build allocates a raw (not yet rebalanced) node cell.
func build(ctx *heap.Context, val, left, right value.Word) value.Word {
	n := &node{val: val, left: left, right: right}
	n.count = 1 + sizeOf(left) + sizeOf(right)
	lh, rh := heightOf(left), heightOf(right)
	if lh > rh {
		n.height = lh + 1
	} else {
		n.height = rh + 1
	}
	return ctx.Alloc(value.TagList, n)
}

// rebalanced builds val/left/right and applies at most one AVL
// rotation (single or double) if the result violates the
// |height(left)-height(right)| <= 1 invariant.
func rebalanced(ctx *heap.Context, val, left, right value.Word) value.Word {
	return balance(ctx, build(ctx, val, left, right))
}

func balance(ctx *heap.Context, w value.Word) value.Word {
	n := asNode(w)
	bf := heightOf(n.right) - heightOf(n.left)
	switch {
	case bf > 1:
		rn := asNode(n.right)
		if heightOf(rn.left) > heightOf(rn.right) {
			w = build(ctx, n.val, n.left, rotateRight(ctx, n.right))
		}
		return rotateLeft(ctx, w)
	case bf < -1:
		ln := asNode(n.left)
		if heightOf(ln.right) > heightOf(ln.left) {
			w = build(ctx, n.val, rotateLeft(ctx, n.left), n.right)
		}
		return rotateRight(ctx, w)
	default:
		return w
	}
}

func rotateLeft(ctx *heap.Context, w value.Word) value.Word {
	n := asNode(w)
	r := asNode(n.right)
	newLeft := build(ctx, n.val, n.left, r.left)
	return build(ctx, r.val, newLeft, r.right)
}

func rotateRight(ctx *heap.Context, w value.Word) value.Word {
	n := asNode(w)
	l := asNode(n.left)
	newRight := build(ctx, n.val, l.right, n.right)
	return build(ctx, l.val, l.left, newRight)
}

func normalizeIndex(i, size int) int {
	if i < 0 {
		return i + size
	}
	return i
}

// GetAt returns the value at index i, or value.None if i (after
// resolving negative indices relative to Size) is out of range.
func GetAt(w value.Word, i int) value.Word {
	n := asNode(w)
	if n == nil {
		return value.None
	}
	i = normalizeIndex(i, n.count)
	if i < 0 || i >= n.count {
		return value.None
	}
	leftSize := sizeOf(n.left)
	switch {
	case i < leftSize:
		return GetAt(n.left, i)
	case i == leftSize:
		return n.val
	default:
		return GetAt(n.right, i-leftSize-1)
	}
}

// SetAt returns a new list with the element at index i replaced by v.
// Out-of-range i returns w unchanged.
func SetAt(ctx *heap.Context, w value.Word, i int, v value.Word) value.Word {
	n := asNode(w)
	if n == nil {
		return w
	}
	i = normalizeIndex(i, n.count)
	if i < 0 || i >= n.count {
		return w
	}
	leftSize := sizeOf(n.left)
	switch {
	case i < leftSize:
		return rebalanced(ctx, n.val, SetAt(ctx, n.left, i, v), n.right)
	case i == leftSize:
		return rebalanced(ctx, v, n.left, n.right)
	default:
		return rebalanced(ctx, n.val, n.left, SetAt(ctx, n.right, i-leftSize-1, v))
	}
}

// InsertAt returns a new list with v inserted so that it occupies
// index i afterward. i is clamped into [0, Size(w)].
func InsertAt(ctx *heap.Context, w value.Word, i int, v value.Word) value.Word {
	n := asNode(w)
	if n == nil {
		return rebalanced(ctx, v, value.None, value.None)
	}
	i = normalizeIndex(i, n.count)
	i = ints.Clamp(i, 0, n.count)
	leftSize := sizeOf(n.left)
	if i <= leftSize {
		return rebalanced(ctx, n.val, InsertAt(ctx, n.left, i, v), n.right)
	}
	return rebalanced(ctx, n.val, n.left, InsertAt(ctx, n.right, i-leftSize-1, v))
}

// AppendFirst returns a new list with v inserted at index 0.
func AppendFirst(ctx *heap.Context, w value.Word, v value.Word) value.Word {
	return InsertAt(ctx, w, 0, v)
}

// AppendLast returns a new list with v inserted at the end.
func AppendLast(ctx *heap.Context, w value.Word, v value.Word) value.Word {
	return InsertAt(ctx, w, Size(w), v)
}

// RemoveAt returns a new list with the element at index i removed.
// Out-of-range i returns w unchanged.
func RemoveAt(ctx *heap.Context, w value.Word, i int) value.Word {
	n := asNode(w)
	if n == nil {
		return w
	}
	i = normalizeIndex(i, n.count)
	if i < 0 || i >= n.count {
		return w
	}
	leftSize := sizeOf(n.left)
	switch {
	case i < leftSize:
		return rebalanced(ctx, n.val, RemoveAt(ctx, n.left, i), n.right)
	case i == leftSize:
		return spliceOut(ctx, n.left, n.right)
	default:
		return rebalanced(ctx, n.val, n.left, RemoveAt(ctx, n.right, i-leftSize-1))
	}
}

// RemoveFirst returns a new list with its first element removed.
// Removing from an empty list returns it unchanged.
func RemoveFirst(ctx *heap.Context, w value.Word) value.Word {
	return RemoveAt(ctx, w, 0)
}

// RemoveLast returns a new list with its last element removed.
// Removing from an empty list returns it unchanged.
func RemoveLast(ctx *heap.Context, w value.Word) value.Word {
	return RemoveAt(ctx, w, Size(w)-1)
}

// spliceOut merges left and right into one balanced subtree, used
// when the node carrying a removed value is itself discarded.
func spliceOut(ctx *heap.Context, left, right value.Word) value.Word {
	if asNode(left) == nil {
		return right
	}
	if asNode(right) == nil {
		return left
	}
	v, rest := popFirst(ctx, right)
	return rebalanced(ctx, v, left, rest)
}

func popFirst(ctx *heap.Context, w value.Word) (value.Word, value.Word) {
	n := asNode(w)
	if asNode(n.left) == nil {
		return n.val, n.right
	}
	v, rest := popFirst(ctx, n.left)
	return v, rebalanced(ctx, n.val, rest, n.right)
}

// SplitAt returns the elements at indices [0,k) and [k,Size(w)) as
// two new lists. k is clamped into [0, Size(w)].
//
// This builds both halves by repeated InsertAt rather than an O(log n)
// tree join; simpler to get right, and every op it's built from is
// already O(log n) on its own.
func SplitAt(ctx *heap.Context, w value.Word, k int) (value.Word, value.Word) {
	size := Size(w)
	k = ints.Clamp(k, 0, size)
	first := Empty(ctx)
	for i := 0; i < k; i++ {
		first = InsertAt(ctx, first, i, GetAt(w, i))
	}
	rest := Empty(ctx)
	for i := k; i < size; i++ {
		rest = InsertAt(ctx, rest, i-k, GetAt(w, i))
	}
	return first, rest
}

// SplitFirst returns the first k elements as a new list.
func SplitFirst(ctx *heap.Context, w value.Word, k int) value.Word {
	first, _ := SplitAt(ctx, w, k)
	return first
}

// SplitLast returns the last k elements as a new list.
func SplitLast(ctx *heap.Context, w value.Word, k int) value.Word {
	size := Size(w)
	_, rest := SplitAt(ctx, w, ints.Clamp(size-k, 0, size))
	return rest
}

// GetSlice returns the elements at indices [a,b) as a new list.
// Negative a/b resolve relative to Size(w); the result is clamped to
// an empty list if the resolved range is degenerate.
func GetSlice(ctx *heap.Context, w value.Word, a, b int) value.Word {
	size := Size(w)
	a = normalizeIndex(a, size)
	b = normalizeIndex(b, size)
	if a < 0 {
		a = 0
	}
	if b > size {
		b = size
	}
	if a >= b {
		return Empty(ctx)
	}
	_, tail := SplitAt(ctx, w, a)
	head, _ := SplitAt(ctx, tail, b-a)
	return head
}

// Extend returns the concatenation of left and right. Per spec.md's
// "side with larger count keeps its tree as a subtree", the smaller
// side is folded onto the larger one (by repeated InsertAt) rather
// than the reverse, which in practice is just a choice of traversal
// order, not a structural guarantee this implementation makes.
func Extend(ctx *heap.Context, left, right value.Word) value.Word {
	if asNode(left) == nil {
		return right
	}
	if asNode(right) == nil {
		return left
	}
	if Size(left) >= Size(right) {
		result := left
		n := Size(right)
		for i := 0; i < n; i++ {
			result = InsertAt(ctx, result, Size(result), GetAt(right, i))
		}
		return result
	}
	result := right
	n := Size(left)
	for i := n - 1; i >= 0; i-- {
		result = InsertAt(ctx, result, 0, GetAt(left, i))
	}
	return result
}

// Has reports whether v occurs anywhere in w, by identity (raw word
// equality) rather than any structural/content comparison, scanning
// linearly as spec.md specifies.
func Has(w, v value.Word) bool {
	n := asNode(w)
	if n == nil {
		return false
	}
	if n.val.Raw() == v.Raw() {
		return true
	}
	return Has(n.left, v) || Has(n.right, v)
}

// Each visits every element of w in order. It is an internal
// traversal helper, not part of the value-word surface (there is no
// cell allocation, so it needs no Context).
func Each(w value.Word, fn func(value.Word)) {
	n := asNode(w)
	if n == nil {
		return
	}
	Each(n.left, fn)
	fn(n.val)
	Each(n.right, fn)
}

// iter is a non-self-advancing, immutable cursor over a list: Next
// reads the current element, Advance returns a new cursor.
type iter struct {
	list  value.Word
	index int
}

func (it *iter) ProcessReferences(visit func(value.Word)) { visit(it.list) }
func (it *iter) Finalize()                                {}

func asIter(w value.Word) *iter {
	if w.IsNone() || w.Tag() != value.TagListIter {
		return nil
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil
	}
	it, _ := slot.Body.(*iter)
	return it
}

// NewIter returns a cursor positioned at index 0 of w.
func NewIter(ctx *heap.Context, w value.Word) value.Word {
	return ctx.Alloc(value.TagListIter, &iter{list: w, index: 0})
}

// Next returns the element the cursor currently points to, or
// value.None once the cursor has run past the end of the list.
func Next(w value.Word) value.Word {
	it := asIter(w)
	if it == nil {
		return value.None
	}
	return GetAt(it.list, it.index)
}

// Advance returns a new cursor at the next position, or value.None if
// w is already at or past the last element.
func Advance(ctx *heap.Context, w value.Word) value.Word {
	it := asIter(w)
	if it == nil {
		return value.None
	}
	if it.index+1 >= Size(it.list) {
		return value.None
	}
	return ctx.Alloc(value.TagListIter, &iter{list: it.list, index: it.index + 1})
}
