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

package thread

import (
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/value"
)

// handleCell is a native pointer back to a *Thread, letting other
// code address a thread as an ordinary value.Word (what the thread
// registry stores, what a future "current thread" built-in would
// return). It forwards no references: the Thread it points to is a
// control structure, not something the collector traces into.
type handleCell struct {
	t *Thread
}

func (h *handleCell) ProcessReferences(func(value.Word)) {}
func (h *handleCell) Finalize()                          {}

// Handle returns a value.Word that resolves back to t via FromHandle.
func (t *Thread) Handle(ctx *heap.Context) value.Word {
	return ctx.Alloc(value.TagExternalPointer, &handleCell{t: t})
}

// FromHandle recovers the Thread a Handle word was built from.
func FromHandle(w value.Word) (*Thread, bool) {
	if w.IsNone() || w.Tag() != value.TagExternalPointer {
		return nil, false
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil, false
	}
	h, ok := slot.Body.(*handleCell)
	if !ok {
		return nil, false
	}
	return h.t, true
}
