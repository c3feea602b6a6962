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

// iter is a non-self-advancing index cursor over a tuple, the same
// shape plist uses for its list iterator: Next reads the current
// position, Advance returns a new cursor one position further on.
type iter struct {
	tuple value.Word
	index int
}

func (it *iter) ProcessReferences(visit func(value.Word)) { visit(it.tuple) }
func (it *iter) Finalize()                                {}

func asIter(w value.Word) *iter {
	if w.IsNone() || w.Tag() != value.TagTupleIter {
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
	return ctx.Alloc(value.TagTupleIter, &iter{tuple: w, index: 0})
}

// Next returns the element the cursor currently points to, or
// value.None once the cursor has run past the end of the tuple.
func Next(w value.Word) value.Word {
	it := asIter(w)
	if it == nil {
		return value.None
	}
	return GetAt(it.tuple, it.index)
}

// Advance returns a new cursor at the next position, or value.None if
// w is already at or past the last element.
func Advance(ctx *heap.Context, w value.Word) value.Word {
	it := asIter(w)
	if it == nil {
		return value.None
	}
	if it.index+1 >= SizeOf(it.tuple) {
		return value.None
	}
	return ctx.Alloc(value.TagTupleIter, &iter{tuple: it.tuple, index: it.index + 1})
}
