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

// Sweep reclaims every minted cell whose Marked bit is clear, running
// its Finalize hook and returning it to the free list, then clears the
// mark bit on every cell that survives so the bit is ready for the
// next cycle. It must only be called by the collector between
// WaitAllStopped and EndSafepoint: the Slot.next manipulation here is
// not safe to race against a mutator.
func (s *Space) Sweep() int64 {
	var head, tail *Slot
	var freed int64

	s.ForEachSlot(func(slot *Slot) {
		if slot.Body == nil {
			// Already on the free list; nothing to collect.
			return
		}
		if slot.Marked {
			slot.Marked = false
			return
		}
		slot.Body.Finalize()
		slot.Reset()
		if head == nil {
			head = slot
		} else {
			tail.next = slot
		}
		tail = slot
		freed++
	})

	if head != nil {
		s.returnFree(head, tail, freed)
	}
	return freed
}
