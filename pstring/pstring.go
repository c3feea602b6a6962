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

// Package pstring implements the Proto string: a thin cell wrapping a
// tuple of UNICODE_CHAR embedded values. Size, indexing, and hashing
// delegate to the backing tuple, so two strings with the same
// characters are the same cell by the same interning the tuple
// dictionary already provides.
package pstring

import (
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/tuple"
	"github.com/numaes/protoCore-sub001/value"
)

// cell is the string wrapper: { base_tuple }.
type cell struct {
	base value.Word // TagTuple, of EMBEDDED/UNICODE_CHAR words
}

func (c *cell) ProcessReferences(visit func(value.Word)) { visit(c.base) }
func (c *cell) Finalize()                                {}

func asCell(w value.Word) *cell {
	if w.IsNone() || w.Tag() != value.TagString {
		return nil
	}
	slot, ok := value.CellOf(w).(*heap.Slot)
	if !ok || slot == nil {
		return nil
	}
	c, _ := slot.Body.(*cell)
	return c
}

func wrap(ctx *heap.Context, base value.Word) value.Word {
	return ctx.Alloc(value.TagString, &cell{base: base})
}

// Empty returns the canonical empty string.
func Empty(ctx *heap.Context) value.Word {
	return wrap(ctx, tuple.Empty(ctx))
}

// FromRunes builds a string from a sequence of Unicode code points.
func FromRunes(ctx *heap.Context, rs []rune) value.Word {
	elems := make([]value.Word, len(rs))
	for i, r := range rs {
		elems[i] = value.FromChar(r)
	}
	return wrap(ctx, tuple.FromWords(ctx, elems))
}

// FromString builds a string from a Go string, decoding it as UTF-8.
func FromString(ctx *heap.Context, s string) value.Word {
	return FromRunes(ctx, DecodeUTF8([]byte(s)))
}

// GetSize returns the number of characters in w, delegating to the
// backing tuple's element count.
func GetSize(w value.Word) int {
	c := asCell(w)
	if c == nil {
		return 0
	}
	return tuple.SizeOf(c.base)
}

// GetAt returns the character at index i (negative indices count from
// the end), or value.None if i is out of range.
func GetAt(w value.Word, i int) value.Word {
	c := asCell(w)
	if c == nil {
		return value.None
	}
	return tuple.GetAt(c.base, i)
}

// GetHash returns the content hash of w, delegating to the backing
// tuple's cell identity: because tuples intern, equal strings share a
// cell and therefore share a hash, matching spec's "equality and hash
// are defined to equal those of the underlying tuple."
func GetHash(w value.Word) uint64 {
	c := asCell(w)
	if c == nil {
		return 0
	}
	return value.Hash(c.base)
}

// ToRunes materializes w's characters as a Go []rune.
func ToRunes(w value.Word) []rune {
	c := asCell(w)
	if c == nil {
		return nil
	}
	elems := tuple.Flatten(c.base)
	out := make([]rune, len(elems))
	for i, e := range elems {
		out[i], _ = value.Char(e)
	}
	return out
}

// ToGoString renders w as a Go string.
func ToGoString(w value.Word) string {
	return string(ToRunes(w))
}
