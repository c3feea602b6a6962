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

package tuple

import (
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/value"
)

// dictNode is one entry of the space-wide TupleDictionary: a
// persistent AVL tree keyed by Compare over its own tuple keys. It is
// allocated under the same TagTuple as the tuples it indexes (the
// dictionary is pure bookkeeping private to this package; nothing
// outside ever observes a TupleRoot-rooted word and mistakes it for a
// data tuple), but its concrete Go type keeps it distinct from node
// wherever the two could otherwise collide.
type dictNode struct {
	key         value.Word // TagTuple, the canonical tuple this entry holds
	left, right value.Word // TagTuple-tagged dictNode cells, or value.None
	height      int
}

func (d *dictNode) ProcessReferences(visit func(value.Word)) {
	visit(d.key)
	visit(d.left)
	visit(d.right)
}

func (d *dictNode) Finalize() {}

func asDictNode(w value.Word) *dictNode {
	if w.IsNone() || w.Tag() != value.TagTuple {
		return nil
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil
	}
	d, _ := slot.Body.(*dictNode)
	return d
}

func dictHeight(w value.Word) int {
	if d := asDictNode(w); d != nil {
		return d.height
	}
	return 0
}

func dictBuild(ctx *heap.Context, key, left, right value.Word) value.Word {
	d := &dictNode{key: key, left: left, right: right}
	lh, rh := dictHeight(left), dictHeight(right)
	if lh > rh {
		d.height = lh + 1
	} else {
		d.height = rh + 1
	}
	return ctx.Alloc(value.TagTuple, d)
}

func dictRebalanced(ctx *heap.Context, key, left, right value.Word) value.Word {
	return dictBalance(ctx, dictBuild(ctx, key, left, right))
}

func dictBalance(ctx *heap.Context, w value.Word) value.Word {
	d := asDictNode(w)
	bf := dictHeight(d.right) - dictHeight(d.left)
	switch {
	case bf > 1:
		rd := asDictNode(d.right)
		if dictHeight(rd.left) > dictHeight(rd.right) {
			w = dictBuild(ctx, d.key, d.left, dictRotateRight(ctx, d.right))
			d = asDictNode(w)
		}
		return dictRotateLeft(ctx, w)
	case bf < -1:
		ld := asDictNode(d.left)
		if dictHeight(ld.right) > dictHeight(ld.left) {
			w = dictBuild(ctx, d.key, dictRotateLeft(ctx, d.left), d.right)
		}
		return dictRotateRight(ctx, w)
	default:
		return w
	}
}

func dictRotateLeft(ctx *heap.Context, w value.Word) value.Word {
	d := asDictNode(w)
	r := asDictNode(d.right)
	newLeft := dictBuild(ctx, d.key, d.left, r.left)
	return dictBuild(ctx, r.key, newLeft, r.right)
}

func dictRotateRight(ctx *heap.Context, w value.Word) value.Word {
	d := asDictNode(w)
	l := asDictNode(d.left)
	newRight := dictBuild(ctx, d.key, l.right, d.right)
	return dictBuild(ctx, l.key, l.left, newRight)
}

func dictLookup(root, candidate value.Word) (value.Word, bool) {
	d := asDictNode(root)
	if d == nil {
		return value.Word{}, false
	}
	switch c := Compare(candidate, d.key); {
	case c < 0:
		return dictLookup(d.left, candidate)
	case c > 0:
		return dictLookup(d.right, candidate)
	default:
		return d.key, true
	}
}

func dictInsert(ctx *heap.Context, root, candidate value.Word) value.Word {
	d := asDictNode(root)
	if d == nil {
		return dictRebalanced(ctx, candidate, value.None, value.None)
	}
	switch c := Compare(candidate, d.key); {
	case c < 0:
		return dictRebalanced(ctx, d.key, dictInsert(ctx, d.left, candidate), d.right)
	case c > 0:
		return dictRebalanced(ctx, d.key, d.left, dictInsert(ctx, d.right, candidate))
	default:
		return root
	}
}

// intern returns the canonical tuple equal to candidate, publishing
// candidate itself as the canonical form the first time its content
// is seen. It retries the CAS loop on contention, per the
// construct-fully-then-CAS discipline every Space-wide root in this
// module follows.
func intern(ctx *heap.Context, candidate value.Word) value.Word {
	space := ctx.Space()
	for {
		root := space.TupleRoot.Load()
		if existing, found := dictLookup(root, candidate); found {
			return existing
		}
		newRoot := dictInsert(ctx, root, candidate)
		if space.TupleRoot.CAS(root, newRoot) {
			return candidate
		}
	}
}

// FromWords builds the minimum-height tuple spanning elems and
// returns its canonical (interned) form.
func FromWords(ctx *heap.Context, elems []value.Word) value.Word {
	return intern(ctx, build(ctx, elems))
}

// Empty returns the canonical empty tuple.
func Empty(ctx *heap.Context) value.Word {
	return FromWords(ctx, nil)
}
