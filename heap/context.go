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

package heap

import "github.com/numaes/protoCore-sub001/value"

// Context is one call frame's allocation scope. Every cell a thread
// mints while executing inside a method activation is chained here,
// in allocation order — the reference runtime's dirty segment. When
// the frame returns, Close hands the segment to the enclosing frame,
// so by the time a thread's outermost Context closes it holds, in
// order, every cell the thread minted and never handed off to an
// object the collector can already reach some other way.
//
// A Context is not safe for concurrent use; each live call frame on a
// single goroutine owns exactly one.
type Context struct {
	space  *Space
	pool   *Pool
	parent *Context

	head, tail *Slot
	count      int
}

// NewContext opens a new allocation scope. parent is nil for a
// thread's outermost frame.
func NewContext(space *Space, pool *Pool, parent *Context) *Context {
	return &Context{space: space, pool: pool, parent: parent}
}

// Alloc mints a cell wrapping body, tagged t, and appends it to this
// frame's dirty segment. Crossing Config.MaxAllocatedCellsPerContext
// requests a collection in the background; it never blocks the
// allocating thread by itself (only true heap exhaustion under
// Config.BlockOnNoMemory does that, inside Space.refill).
func (c *Context) Alloc(t value.Tag, body Referencer) value.Word {
	slot := c.pool.Take()
	slot.Body = body
	slot.Tag = t
	slot.next = nil

	if c.head == nil {
		c.head = slot
	} else {
		c.tail.next = slot
	}
	c.tail = slot
	c.count++

	if limit := c.space.cfg.MaxAllocatedCellsPerContext; limit > 0 && c.count > limit {
		c.space.requestGC()
	}
	return slot.AsWord()
}

// Count reports how many cells this frame has allocated and not yet
// handed off via Close.
func (c *Context) Count() int { return c.count }

// Space returns the Space this Context allocates from. Packages built
// on top of heap (tuple's interning dictionary, object's mutable
// publication) need this to reach Space-wide CAS roots without every
// such package threading its own *Space parameter alongside a
// *Context everywhere.
func (c *Context) Space() *Space { return c.space }

// Close hands this frame's dirty segment to the parent Context. A
// thread's outermost Context is never closed this way; its contents
// stay reachable for the life of the thread via Thread.ScanRoots
// instead, so it stays open. Close is a no-op on a Context with no
// parent.
func (c *Context) Close() {
	if c.head == nil || c.parent == nil {
		return
	}
	c.parent.adopt(c.head, c.tail, c.count)
	c.head, c.tail, c.count = nil, nil, 0
}

func (c *Context) adopt(head, tail *Slot, n int) {
	if c.head == nil {
		c.head = head
	} else {
		c.tail.next = head
	}
	c.tail = tail
	c.count += n
}

// ScanRoots visits every live Word this frame currently anchors.
// Thread.ScanRoots calls this for its outermost Context to satisfy
// RootProvider.
func (c *Context) ScanRoots(visit func(value.Word)) {
	for s := c.head; s != nil; s = s.next {
		if s.Body != nil {
			visit(s.AsWord())
		}
	}
}
