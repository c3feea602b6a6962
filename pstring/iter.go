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

package pstring

import (
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/value"
)

// iter is a non-self-advancing character cursor, the same shape as
// plist's and tuple's iterators.
type iter struct {
	str   value.Word
	index int
}

func (it *iter) ProcessReferences(visit func(value.Word)) { visit(it.str) }
func (it *iter) Finalize()                                {}

func asIter(w value.Word) *iter {
	if w.IsNone() || w.Tag() != value.TagStringIter {
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
	return ctx.Alloc(value.TagStringIter, &iter{str: w, index: 0})
}

// Next returns the character the cursor currently points to, or
// value.None once the cursor has run past the end of the string.
func Next(w value.Word) value.Word {
	it := asIter(w)
	if it == nil {
		return value.None
	}
	return GetAt(it.str, it.index)
}

// Advance returns a new cursor at the next position, or value.None if
// w is already at or past the last character.
func Advance(ctx *heap.Context, w value.Word) value.Word {
	it := asIter(w)
	if it == nil {
		return value.None
	}
	if it.index+1 >= GetSize(it.str) {
		return value.None
	}
	return ctx.Alloc(value.TagStringIter, &iter{str: it.str, index: it.index + 1})
}
