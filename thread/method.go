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

// methodCell wraps a NativeFunc so it can be stored as an ordinary
// object attribute via object.SetAttribute and later resolved by
// Call. It forwards no references: a NativeFunc must not capture
// managed cells in its closure.
type methodCell struct {
	fn NativeFunc
}

func (m *methodCell) ProcessReferences(func(value.Word)) {}
func (m *methodCell) Finalize()                          {}

// NewMethod wraps fn as a callable attribute value.
func NewMethod(ctx *heap.Context, fn NativeFunc) value.Word {
	return ctx.Alloc(value.TagMethod, &methodCell{fn: fn})
}

func asMethod(w value.Word) (NativeFunc, bool) {
	if w.IsNone() || w.Tag() != value.TagMethod {
		return nil, false
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil, false
	}
	m, ok := slot.Body.(*methodCell)
	if !ok {
		return nil, false
	}
	return m.fn, true
}
