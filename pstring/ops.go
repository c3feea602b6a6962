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
	"github.com/numaes/protoCore-sub001/tuple"
	"github.com/numaes/protoCore-sub001/value"
)

// Compare orders two strings the same way their backing tuples order:
// lexicographically by character, shorter-prefix-first. This is the
// "list analogue applied to the underlying character tuple" the
// reference runtime's string stubs call for.
func Compare(a, b value.Word) int {
	ca, cb := asCell(a), asCell(b)
	if ca == nil || cb == nil {
		if ca == cb {
			return 0
		}
		if ca == nil {
			return -1
		}
		return 1
	}
	return tuple.Compare(ca.base, cb.base)
}

// SetAt returns a new string with the character at index i replaced.
// i out of range returns w unchanged.
func SetAt(ctx *heap.Context, w value.Word, i int, r rune) value.Word {
	c := asCell(w)
	if c == nil {
		return w
	}
	return wrap(ctx, tuple.SetAt(ctx, c.base, i, value.FromChar(r)))
}

// InsertAt returns a new string with r inserted before index i. i is
// clamped into [0, GetSize(w)].
func InsertAt(ctx *heap.Context, w value.Word, i int, r rune) value.Word {
	c := asCell(w)
	if c == nil {
		return w
	}
	return wrap(ctx, tuple.InsertAt(ctx, c.base, i, value.FromChar(r)))
}

// AppendFirst returns a new string with r prepended.
func AppendFirst(ctx *heap.Context, w value.Word, r rune) value.Word {
	return InsertAt(ctx, w, 0, r)
}

// AppendLast returns a new string with r appended.
func AppendLast(ctx *heap.Context, w value.Word, r rune) value.Word {
	return InsertAt(ctx, w, GetSize(w), r)
}

// RemoveAt returns a new string with the character at index i
// removed. i out of range returns w unchanged — the list analogue of
// removal, applied to the character tuple.
func RemoveAt(ctx *heap.Context, w value.Word, i int) value.Word {
	c := asCell(w)
	if c == nil {
		return w
	}
	return wrap(ctx, tuple.RemoveAt(ctx, c.base, i))
}

// RemoveFirst returns a new string with its first character removed.
func RemoveFirst(ctx *heap.Context, w value.Word) value.Word {
	return RemoveAt(ctx, w, 0)
}

// RemoveLast returns a new string with its last character removed.
func RemoveLast(ctx *heap.Context, w value.Word) value.Word {
	return RemoveAt(ctx, w, GetSize(w)-1)
}

// Split returns the two strings obtained by cutting w at index k: the
// first k characters, and the rest. Both the split point and, by
// extension, the two result bounds are clamped into [0, GetSize(w)]
// exactly as plist.SplitAt clamps its index — the list analogue split
// is literal here, not just similar in spirit.
func Split(ctx *heap.Context, w value.Word, k int) (value.Word, value.Word) {
	c := asCell(w)
	if c == nil {
		return w, w
	}
	size := tuple.SizeOf(c.base)
	return wrap(ctx, tuple.SplitFirst(ctx, c.base, k)), wrap(ctx, tuple.SplitLast(ctx, c.base, size-k))
}

// GetSlice returns the substring spanning [a, b).
func GetSlice(ctx *heap.Context, w value.Word, a, b int) value.Word {
	c := asCell(w)
	if c == nil {
		return w
	}
	return wrap(ctx, tuple.GetSlice(ctx, c.base, a, b))
}
