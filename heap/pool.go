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

// Pool is a thread-private cache of ready-to-reuse Slots, refilled in
// Config.BlocksPerAllocation-sized batches from the Space's shared free list so
// that the hot allocation path — one Slot per cell — never touches the
// free list's spinlock. Every Thread owns exactly one Pool, allocated
// at thread creation and drained on exit.
type Pool struct {
	space *Space
	depth int

	head  *Slot
	count int
}

// NewPool allocates a Pool drawing from space in batches sized by
// Config.BlocksPerAllocation, matching the reference runtime's
// per-thread free chain refill depth.
func NewPool(space *Space) *Pool {
	depth := space.cfg.BlocksPerAllocation
	if depth <= 0 {
		depth = BlocksPerAllocation
	}
	return &Pool{space: space, depth: depth}
}

// Take removes and returns one Slot ready for reuse, transparently
// refilling from the Space if the pool has run dry.
func (p *Pool) Take() *Slot {
	if p.head == nil {
		p.head, p.count = p.space.refill(p.depth)
	}
	s := p.head
	p.head = s.next
	s.next = nil
	p.count--
	return s
}

// Return gives a chain of n already-Reset slots back to this pool
// without round-tripping through the Space's shared free list.
func (p *Pool) Return(head, tail *Slot, n int) {
	if head == nil {
		return
	}
	tail.next = p.head
	p.head = head
	p.count += n
}

// Len reports how many Slots this pool currently holds without
// needing to touch the Space.
func (p *Pool) Len() int { return p.count }

// Drain flushes every cached Slot back to the Space's shared free
// list. Threads call this once, on exit.
func (p *Pool) Drain() {
	if p.head == nil {
		return
	}
	tail := p.head
	for tail.next != nil {
		tail = tail.next
	}
	p.space.returnFree(p.head, tail, int64(p.count))
	p.head, p.count = nil, 0
}
