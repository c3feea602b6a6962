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

import (
	"sync/atomic"

	"github.com/numaes/protoCore-sub001/internal/atomicext"
)

// spinlock is a bounded-wait yield loop, the same flavor of lock the
// reference runtime uses for gc_lock, the dirty-segment list, and the
// thread registry: contention is expected to be brief (a free-list
// splice, an append to a linked list), so a full mutex's syscall-level
// blocking would be overkill.
type spinlock struct {
	held int32
}

func (s *spinlock) Lock() {
	for !atomic.CompareAndSwapInt32(&s.held, 0, 1) {
		atomicext.Pause()
	}
}

func (s *spinlock) Unlock() {
	atomic.StoreInt32(&s.held, 0)
}

// freeList is the space-wide list of zeroed cells ready for reuse,
// guarded by the gc_lock spinlock described in the concurrency model.
type freeList struct {
	lock  spinlock
	head  *Slot
	count int64
}

// push prepends a chain of already-reset slots (head..tail inclusive)
// to the free list. n is the number of slots in the chain, supplied
// by the caller so this doesn't have to walk the chain to count it.
func (f *freeList) push(head, tail *Slot, n int64) {
	f.lock.Lock()
	tail.next = f.head
	f.head = head
	f.lock.Unlock()
	atomic.AddInt64(&f.count, n)
}

// popAll atomically detaches and returns the entire current free
// list, leaving it empty. Nothing in this package calls it: Space
// refills thread pools in bounded batches through popUpTo.
func (f *freeList) popAll() (*Slot, int64) {
	f.lock.Lock()
	head := f.head
	f.head = nil
	f.lock.Unlock()
	if head == nil {
		return nil, 0
	}
	n := int64(0)
	for s := head; s != nil; s = s.next {
		n++
	}
	atomic.AddInt64(&f.count, -n)
	return head, n
}

// popUpTo detaches at most n slots from the head of the free list and
// returns them as a chain, along with how many were actually taken.
func (f *freeList) popUpTo(n int) (*Slot, int) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.head == nil || n <= 0 {
		return nil, 0
	}
	head := f.head
	cur := head
	taken := 1
	for taken < n && cur.next != nil {
		cur = cur.next
		taken++
	}
	f.head = cur.next
	cur.next = nil
	atomic.AddInt64(&f.count, -int64(taken))
	return head, taken
}

// Len returns the approximate current size of the free list. It is
// racy by nature (the same caveat the reference runtime's telemetry
// counters carry) and intended for diagnostics, not correctness.
func (f *freeList) Len() int64 {
	return atomic.LoadInt64(&f.count)
}
