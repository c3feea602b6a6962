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
	"github.com/numaes/protoCore-sub001/internal/ints"
	"github.com/numaes/protoCore-sub001/value"
)

// SetAt returns a new canonical tuple with index i replaced by v.
// i out of range returns w unchanged.
func SetAt(ctx *heap.Context, w value.Word, i int, v value.Word) value.Word {
	elems := Flatten(w)
	i = normalizeIndex(i, len(elems))
	if i < 0 || i >= len(elems) {
		return w
	}
	elems[i] = v
	return FromWords(ctx, elems)
}

// InsertAt returns a new canonical tuple with v inserted before index
// i. i is clamped into [0, len(w)].
func InsertAt(ctx *heap.Context, w value.Word, i int, v value.Word) value.Word {
	elems := Flatten(w)
	i = normalizeIndex(i, len(elems))
	i = ints.Clamp(i, 0, len(elems))
	out := make([]value.Word, 0, len(elems)+1)
	out = append(out, elems[:i]...)
	out = append(out, v)
	out = append(out, elems[i:]...)
	return FromWords(ctx, out)
}

// AppendFirst returns a new canonical tuple with v prepended.
func AppendFirst(ctx *heap.Context, w value.Word, v value.Word) value.Word {
	return InsertAt(ctx, w, 0, v)
}

// AppendLast returns a new canonical tuple with v appended.
func AppendLast(ctx *heap.Context, w value.Word, v value.Word) value.Word {
	return InsertAt(ctx, w, SizeOf(w), v)
}

// RemoveAt returns a new canonical tuple with index i removed. i out
// of range returns w unchanged.
func RemoveAt(ctx *heap.Context, w value.Word, i int) value.Word {
	elems := Flatten(w)
	i = normalizeIndex(i, len(elems))
	if i < 0 || i >= len(elems) {
		return w
	}
	out := make([]value.Word, 0, len(elems)-1)
	out = append(out, elems[:i]...)
	out = append(out, elems[i+1:]...)
	return FromWords(ctx, out)
}

// RemoveFirst returns a new canonical tuple with its first element
// removed. An empty tuple is returned unchanged.
func RemoveFirst(ctx *heap.Context, w value.Word) value.Word {
	return RemoveAt(ctx, w, 0)
}

// RemoveLast returns a new canonical tuple with its last element
// removed. An empty tuple is returned unchanged.
func RemoveLast(ctx *heap.Context, w value.Word) value.Word {
	return RemoveAt(ctx, w, SizeOf(w)-1)
}

// SplitFirst returns the canonical tuple of w's first k elements. k
// is clamped into [0, len(w)].
func SplitFirst(ctx *heap.Context, w value.Word, k int) value.Word {
	elems := Flatten(w)
	k = ints.Clamp(k, 0, len(elems))
	return FromWords(ctx, elems[:k])
}

// SplitLast returns the canonical tuple of w's last k elements. k is
// clamped into [0, len(w)].
func SplitLast(ctx *heap.Context, w value.Word, k int) value.Word {
	elems := Flatten(w)
	k = ints.Clamp(k, 0, len(elems))
	return FromWords(ctx, elems[len(elems)-k:])
}

// GetSlice returns the canonical tuple of w's elements in [a, b). Both
// bounds are clamped into [0, len(w)]; a >= b yields the empty tuple.
func GetSlice(ctx *heap.Context, w value.Word, a, b int) value.Word {
	elems := Flatten(w)
	a = ints.Clamp(a, 0, len(elems))
	b = ints.Clamp(b, 0, len(elems))
	if a >= b {
		return Empty(ctx)
	}
	return FromWords(ctx, elems[a:b])
}
