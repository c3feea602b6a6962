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

// Package object implements the prototype object model: an object
// cell carrying a parent chain, an optional mutable identity, and its
// own attribute map. Immutable objects publish a brand new cell on
// every write; mutable objects keep one stable identity (a 64-bit id)
// whose current state is resolved through heap.Space.MutableRoot and
// swapped in by compare-and-swap.
//
// Every operation here except IsMutable takes a *heap.Context, even
// the read-only ones: resolving a mutable object's current state means consulting
// the space-wide mutable_root, which only the context's Space can
// reach, so there is no cheaper word-only read path the way there is
// for plist or pmap.
package object

import (
	"math/rand"

	"github.com/numaes/protoCore-sub001/attrhash"
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/plist"
	"github.com/numaes/protoCore-sub001/pmap"
	"github.com/numaes/protoCore-sub001/value"
)

// cell is the object cell: { parent_link, mutable_ref, own_attrs }.
// mutableRef is a plain 64-bit id, not a heap reference — it never
// appears in ProcessReferences.
type cell struct {
	parentLink value.Word // TagObject parentLinkNode, or value.None
	mutableRef uint64     // 0 means immutable identity
	ownAttrs   value.Word // TagSparseMap
}

func (c *cell) ProcessReferences(visit func(value.Word)) {
	visit(c.parentLink)
	visit(c.ownAttrs)
}

func (c *cell) Finalize() {}

// parentLinkNode is one link of the parent chain: { tail, prototype }.
// It shares TagObject with the object cell it links (the same way
// tuple's dictionary nodes share TagTuple with data tuples): nothing
// outside this package ever receives a parentLinkNode word directly,
// so the two Go types never need to be told apart by tag, only by
// type assertion on Slot.Body.
type parentLinkNode struct {
	tail  value.Word // TagObject parentLinkNode, or value.None
	proto value.Word // TagObject, the prototype object
}

func (l *parentLinkNode) ProcessReferences(visit func(value.Word)) {
	visit(l.tail)
	visit(l.proto)
}

func (l *parentLinkNode) Finalize() {}

func asCell(w value.Word) *cell {
	if w.IsNone() || w.Tag() != value.TagObject {
		return nil
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil
	}
	c, _ := slot.Body.(*cell)
	return c
}

func asParentLink(w value.Word) *parentLinkNode {
	if w.IsNone() || w.Tag() != value.TagObject {
		return nil
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil
	}
	l, _ := slot.Body.(*parentLinkNode)
	return l
}

func allocCell(ctx *heap.Context, parentLink value.Word, mutableRef uint64, ownAttrs value.Word) value.Word {
	return ctx.Alloc(value.TagObject, &cell{parentLink: parentLink, mutableRef: mutableRef, ownAttrs: ownAttrs})
}

func newParentLinkNode(ctx *heap.Context, proto, tail value.Word) value.Word {
	return ctx.Alloc(value.TagObject, &parentLinkNode{tail: tail, proto: proto})
}

// IsMutable reports whether w is a mutable object handle.
func IsMutable(w value.Word) bool {
	c := asCell(w)
	return c != nil && c.mutableRef != 0
}

// resolve returns the effective cell to read attributes and the
// parent chain from: self, for an immutable object, or the cell
// currently published under self's id in mutable_root.
func resolve(ctx *heap.Context, w value.Word) *cell {
	c := asCell(w)
	if c == nil {
		return nil
	}
	if c.mutableRef == 0 {
		return c
	}
	snapshotWord, ok := pmap.TryGetAt(ctx.Space().MutableRoot.Load(), c.mutableRef)
	if !ok {
		return c
	}
	if snapshot := asCell(snapshotWord); snapshot != nil {
		return snapshot
	}
	return c
}

// publishMutable draws a fresh 64-bit id that is not currently bound
// in mutable_root, builds the initial cell via build, and CAS-publishes
// it. The id is redrawn against the live root on every CAS retry, not
// just once, per spec's "repeatedly drawing ... until the id is free
// in the current mutable_root."
func publishMutable(ctx *heap.Context, rng *rand.Rand, build func(id uint64) value.Word) value.Word {
	space := ctx.Space()
	for {
		root := space.MutableRoot.Load()
		var id uint64
		for {
			id = rng.Uint64()
			if id != 0 && !pmap.Has(root, id) {
				break
			}
		}
		handle := build(id)
		newRoot := pmap.SetAt(ctx, root, id, handle)
		if space.MutableRoot.CAS(root, newRoot) {
			return handle
		}
	}
}

// New returns a fresh immutable object with no parents and no
// attributes.
func New(ctx *heap.Context) value.Word {
	return allocCell(ctx, value.None, 0, pmap.Empty(ctx))
}

// NewChild returns a fresh immutable object whose sole parent is
// proto.
func NewChild(ctx *heap.Context, proto value.Word) value.Word {
	return allocCell(ctx, newParentLinkNode(ctx, proto, value.None), 0, pmap.Empty(ctx))
}

// NewMutable returns a fresh mutable object with no parents and no
// attributes, identified by a freshly drawn id.
func NewMutable(ctx *heap.Context, rng *rand.Rand) value.Word {
	return publishMutable(ctx, rng, func(id uint64) value.Word {
		return allocCell(ctx, value.None, id, pmap.Empty(ctx))
	})
}

// NewMutableChild returns a fresh mutable object whose sole parent is
// proto, identified by a freshly drawn id.
func NewMutableChild(ctx *heap.Context, proto value.Word, rng *rand.Rand) value.Word {
	return publishMutable(ctx, rng, func(id uint64) value.Word {
		return allocCell(ctx, newParentLinkNode(ctx, proto, value.None), id, pmap.Empty(ctx))
	})
}

// getAttribute implements spec's resolution algorithm: check the
// resolved object's own attributes, then recurse head-first through
// its direct parents (each of which may in turn delegate to its own
// parents). This is a plain depth-first, left-to-right walk with no
// C3 linearization, matching "Method Resolution Order is linear
// head-first through the chain as stored."
func getAttribute(ctx *heap.Context, self value.Word, h uint64) (value.Word, bool) {
	c := resolve(ctx, self)
	if c == nil {
		return value.None, false
	}
	if v, ok := pmap.TryGetAt(c.ownAttrs, h); ok {
		return v, true
	}
	for link := c.parentLink; ; {
		ln := asParentLink(link)
		if ln == nil {
			return value.None, false
		}
		if v, ok := getAttribute(ctx, ln.proto, h); ok {
			return v, true
		}
		link = ln.tail
	}
}

// GetAttribute resolves name through self's own attributes and then
// its parent chain, returning value.None on exhaustion.
func GetAttribute(ctx *heap.Context, self value.Word, name string) value.Word {
	v, _ := getAttribute(ctx, self, attrhash.Hash(name))
	return v
}

// HasAttribute reports whether GetAttribute would find name.
func HasAttribute(ctx *heap.Context, self value.Word, name string) bool {
	_, ok := getAttribute(ctx, self, attrhash.Hash(name))
	return ok
}

// HasOwnAttribute reports whether self itself (not any parent) carries
// name.
func HasOwnAttribute(ctx *heap.Context, self value.Word, name string) bool {
	c := resolve(ctx, self)
	if c == nil {
		return false
	}
	_, ok := pmap.TryGetAt(c.ownAttrs, attrhash.Hash(name))
	return ok
}

// GetAttributes flattens self's entire resolution chain into a single
// sparse map. A name visited closer to self shadows the same name
// found further up the chain, because the nearer write is seen first
// and later (farther) writes only fill in names not already present.
func GetAttributes(ctx *heap.Context, self value.Word) value.Word {
	result := pmap.Empty(ctx)
	seen := make(map[uint64]bool)
	var walk func(value.Word)
	walk = func(w value.Word) {
		c := resolve(ctx, w)
		if c == nil {
			return
		}
		pmap.ProcessElements(c.ownAttrs, func(h uint64, v value.Word) {
			if !seen[h] {
				seen[h] = true
				result = pmap.SetAt(ctx, result, h, v)
			}
		})
		for link := c.parentLink; ; {
			ln := asParentLink(link)
			if ln == nil {
				return
			}
			walk(ln.proto)
			link = ln.tail
		}
	}
	walk(self)
	return result
}

// GetParents returns self's direct parents, head-first, as a plist.
func GetParents(ctx *heap.Context, self value.Word) value.Word {
	c := resolve(ctx, self)
	out := plist.Empty(ctx)
	if c == nil {
		return out
	}
	var protos []value.Word
	for link := c.parentLink; ; {
		ln := asParentLink(link)
		if ln == nil {
			break
		}
		protos = append(protos, ln.proto)
		link = ln.tail
	}
	for _, p := range protos {
		out = plist.AppendLast(ctx, out, p)
	}
	return out
}

func sameObject(a, b value.Word) bool { return a.Raw() == b.Raw() }

// IsInstanceOf walks self's parent chain, and each parent's own chain
// in turn, looking for proto by identity.
func IsInstanceOf(ctx *heap.Context, self, proto value.Word) bool {
	c := resolve(ctx, self)
	if c == nil {
		return false
	}
	for link := c.parentLink; ; {
		ln := asParentLink(link)
		if ln == nil {
			return false
		}
		if sameObject(ln.proto, proto) || IsInstanceOf(ctx, ln.proto, proto) {
			return true
		}
		link = ln.tail
	}
}

// mutate applies edit to self's current state and publishes the
// result. For an immutable object this is a plain path-copy producing
// a new cell; for a mutable object it retries a CAS loop against
// mutable_root, re-reading the live snapshot on every attempt so a
// concurrent writer's update is never silently lost, and returns the
// same stable handle self's caller already holds.
func mutate(ctx *heap.Context, self value.Word, edit func(cur *cell) *cell) value.Word {
	c := asCell(self)
	if c == nil {
		return self
	}
	if c.mutableRef == 0 {
		nc := edit(c)
		return allocCell(ctx, nc.parentLink, 0, nc.ownAttrs)
	}
	space := ctx.Space()
	id := c.mutableRef
	for {
		root := space.MutableRoot.Load()
		cur := &cell{parentLink: value.None, mutableRef: id, ownAttrs: pmap.Empty(ctx)}
		if snapshotWord, ok := pmap.TryGetAt(root, id); ok {
			if snapshot := asCell(snapshotWord); snapshot != nil {
				cur = snapshot
			}
		}
		nc := edit(cur)
		newSnapshot := allocCell(ctx, nc.parentLink, id, nc.ownAttrs)
		newRoot := pmap.SetAt(ctx, root, id, newSnapshot)
		if space.MutableRoot.CAS(root, newRoot) {
			return self
		}
	}
}

// SetAttribute returns the object with name bound to val. For an
// immutable object this is a new cell (old references keep observing
// the old value); for a mutable object, self's identity is unchanged
// and mutable_root atomically publishes the new state.
func SetAttribute(ctx *heap.Context, self value.Word, name string, val value.Word) value.Word {
	h := attrhash.Hash(name)
	return mutate(ctx, self, func(cur *cell) *cell {
		return &cell{parentLink: cur.parentLink, ownAttrs: pmap.SetAt(ctx, cur.ownAttrs, h, val)}
	})
}

// AddParent returns the object with proto prepended to its parent
// chain, ahead of whatever parents it already had.
func AddParent(ctx *heap.Context, self, proto value.Word) value.Word {
	return mutate(ctx, self, func(cur *cell) *cell {
		return &cell{parentLink: newParentLinkNode(ctx, proto, cur.parentLink), ownAttrs: cur.ownAttrs}
	})
}
