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

// Package pmap implements the persistent, AVL-balanced sparse map
// keyed by a 64-bit index (normally a content hash minted by attrhash
// or a similar scheme). Every mutating operation path-copies to a new
// root; iteration visits keys in ascending order.
package pmap

import (
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/value"
)

type node struct {
	key         uint64
	val         value.Word
	left, right value.Word // TagSparseMap, or value.None
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
	if w.IsNone() || w.Tag() != value.TagSparseMap {
		return nil
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil
	}
	n, _ := slot.Body.(*node)
	if n != nil && n.count == 0 {
		// An Empty() cell and an absent subtree (value.None) must be
		// indistinguishable to every caller below, or the first SetAt
		// into an empty map would take the value-bearing branch and
		// retain Empty's zero (key, val) as a phantom entry.
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

// Empty returns a fresh, empty map.
func Empty(ctx *heap.Context) value.Word {
	return ctx.Alloc(value.TagSparseMap, &node{left: value.None, right: value.None})
}

// Size returns the number of entries in the map.
func Size(w value.Word) int { return sizeOf(w) }

func build(ctx *heap.Context, key uint64, val, left, right value.Word) value.Word {
	n := &node{key: key, val: val, left: left, right: right}
	n.count = 1 + sizeOf(left) + sizeOf(right)
	lh, rh := heightOf(left), heightOf(right)
	if lh > rh {
		n.height = lh + 1
	} else {
		n.height = rh + 1
	}
	return ctx.Alloc(value.TagSparseMap, n)
}

func rebalanced(ctx *heap.Context, key uint64, val, left, right value.Word) value.Word {
	return balance(ctx, build(ctx, key, val, left, right))
}

func balance(ctx *heap.Context, w value.Word) value.Word {
	n := asNode(w)
	bf := heightOf(n.right) - heightOf(n.left)
	switch {
	case bf > 1:
		rn := asNode(n.right)
		if heightOf(rn.left) > heightOf(rn.right) {
			w = build(ctx, n.key, n.val, n.left, rotateRight(ctx, n.right))
		}
		return rotateLeft(ctx, w)
	case bf < -1:
		ln := asNode(n.left)
		if heightOf(ln.right) > heightOf(ln.left) {
			w = build(ctx, n.key, n.val, rotateLeft(ctx, n.left), n.right)
		}
		return rotateRight(ctx, w)
	default:
		return w
	}
}

func rotateLeft(ctx *heap.Context, w value.Word) value.Word {
	n := asNode(w)
	r := asNode(n.right)
	newLeft := build(ctx, n.key, n.val, n.left, r.left)
	return build(ctx, r.key, r.val, newLeft, r.right)
}

func rotateRight(ctx *heap.Context, w value.Word) value.Word {
	n := asNode(w)
	l := asNode(n.left)
	newRight := build(ctx, n.key, n.val, l.right, n.right)
	return build(ctx, l.key, l.val, l.left, newRight)
}

// Has reports whether key is present in w.
func Has(w value.Word, key uint64) bool {
	n := asNode(w)
	if n == nil {
		return false
	}
	switch {
	case key < n.key:
		return Has(n.left, key)
	case key > n.key:
		return Has(n.right, key)
	default:
		return true
	}
}

// GetAt returns the value stored under key, or value.None if key is
// not present.
func GetAt(w value.Word, key uint64) value.Word {
	n := asNode(w)
	if n == nil {
		return value.None
	}
	switch {
	case key < n.key:
		return GetAt(n.left, key)
	case key > n.key:
		return GetAt(n.right, key)
	default:
		return n.val
	}
}

// TryGetAt returns the value stored under key and whether key is
// present, distinguishing a key explicitly bound to value.None from a
// key that is simply absent (GetAt collapses both to value.None).
func TryGetAt(w value.Word, key uint64) (value.Word, bool) {
	n := asNode(w)
	if n == nil {
		return value.None, false
	}
	switch {
	case key < n.key:
		return TryGetAt(n.left, key)
	case key > n.key:
		return TryGetAt(n.right, key)
	default:
		return n.val, true
	}
}

// SetAt returns a new map with key bound to val, inserting or
// replacing as needed.
func SetAt(ctx *heap.Context, w value.Word, key uint64, val value.Word) value.Word {
	n := asNode(w)
	if n == nil {
		return rebalanced(ctx, key, val, value.None, value.None)
	}
	switch {
	case key < n.key:
		return rebalanced(ctx, n.key, n.val, SetAt(ctx, n.left, key, val), n.right)
	case key > n.key:
		return rebalanced(ctx, n.key, n.val, n.left, SetAt(ctx, n.right, key, val))
	default:
		return rebalanced(ctx, key, val, n.left, n.right)
	}
}

// RemoveAt returns a new map with key removed. A missing key returns
// w unchanged.
func RemoveAt(ctx *heap.Context, w value.Word, key uint64) value.Word {
	n := asNode(w)
	if n == nil || !Has(w, key) {
		return w
	}
	switch {
	case key < n.key:
		return rebalanced(ctx, n.key, n.val, RemoveAt(ctx, n.left, key), n.right)
	case key > n.key:
		return rebalanced(ctx, n.key, n.val, n.left, RemoveAt(ctx, n.right, key))
	default:
		return spliceOut(ctx, n.left, n.right)
	}
}

// spliceOut merges left and right, used when the node carrying the
// removed key/value is itself discarded: the in-order successor (the
// leftmost entry of right) becomes the new root.
func spliceOut(ctx *heap.Context, left, right value.Word) value.Word {
	if asNode(left) == nil {
		return right
	}
	if asNode(right) == nil {
		return left
	}
	k, v, rest := popFirst(ctx, right)
	return rebalanced(ctx, k, v, left, rest)
}

func popFirst(ctx *heap.Context, w value.Word) (uint64, value.Word, value.Word) {
	n := asNode(w)
	if asNode(n.left) == nil {
		return n.key, n.val, n.right
	}
	k, v, rest := popFirst(ctx, n.left)
	return k, v, rebalanced(ctx, n.key, n.val, rest, n.right)
}

// ProcessElements visits every (key, value) pair in ascending key
// order.
func ProcessElements(w value.Word, cb func(key uint64, val value.Word)) {
	n := asNode(w)
	if n == nil {
		return
	}
	ProcessElements(n.left, cb)
	cb(n.key, n.val)
	ProcessElements(n.right, cb)
}

// ProcessValues visits every value in ascending key order.
func ProcessValues(w value.Word, cb func(val value.Word)) {
	ProcessElements(w, func(_ uint64, v value.Word) { cb(v) })
}

// iter is a zipper-style cursor: the current (key, value) plus the
// stack of ancestor nodes whose right subtree still needs visiting.
// Unlike the reference runtime's linked list of iterator cells, the
// stack here is a plain Go slice held inside one iterator cell — the
// idiomatic Go shape for "this cell holds a small bounded number of
// other cell references" — and Advance copies that stack into the new
// cursor on every step, so one step costs O(log n).
type iter struct {
	key     uint64
	val     value.Word
	pending []value.Word
}

func (it *iter) ProcessReferences(visit func(value.Word)) {
	visit(it.val)
	for _, w := range it.pending {
		visit(w)
	}
}

func (it *iter) Finalize() {}

func asIter(w value.Word) *iter {
	if w.IsNone() || w.Tag() != value.TagSparseMapIter {
		return nil
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil
	}
	it, _ := slot.Body.(*iter)
	return it
}

func descendLeftmost(pending []value.Word, w value.Word) []value.Word {
	cur := w
	for {
		n := asNode(cur)
		if n == nil {
			return pending
		}
		pending = append(pending, cur)
		cur = n.left
	}
}

func advanceFrom(ctx *heap.Context, pending []value.Word) value.Word {
	if len(pending) == 0 {
		return value.None
	}
	top := pending[len(pending)-1]
	rest := append([]value.Word{}, pending[:len(pending)-1]...)
	n := asNode(top)
	rest = descendLeftmost(rest, n.right)
	return ctx.Alloc(value.TagSparseMapIter, &iter{key: n.key, val: n.val, pending: rest})
}

// NewIter returns a cursor positioned at the smallest key in w, or
// value.None if w is empty.
func NewIter(ctx *heap.Context, w value.Word) value.Word {
	return advanceFrom(ctx, descendLeftmost(nil, w))
}

// Next returns the (key, value) pair the cursor currently points to.
func Next(w value.Word) (uint64, value.Word) {
	it := asIter(w)
	if it == nil {
		return 0, value.None
	}
	return it.key, it.val
}

// Advance returns a new cursor at the next key in ascending order, or
// value.None once the traversal is exhausted.
func Advance(ctx *heap.Context, w value.Word) value.Word {
	it := asIter(w)
	if it == nil {
		return value.None
	}
	return advanceFrom(ctx, it.pending)
}
