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
	"testing"

	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/value"
)

func newCtx() *heap.Context {
	space := heap.NewSpace(heap.DefaultConfig(), nil)
	pool := heap.NewPool(space)
	return heap.NewContext(space, pool, nil)
}

func TestEmptyString(t *testing.T) {
	ctx := newCtx()
	w := Empty(ctx)
	if GetSize(w) != 0 {
		t.Fatal("Empty() should have size 0")
	}
	if !GetAt(w, 0).IsNone() {
		t.Fatal("GetAt on empty string should return None")
	}
}

func TestFromStringRoundTrip(t *testing.T) {
	ctx := newCtx()
	w := FromString(ctx, "hello")
	if GetSize(w) != 5 {
		t.Fatalf("GetSize() = %d, want 5", GetSize(w))
	}
	if ToGoString(w) != "hello" {
		t.Fatalf("ToGoString() = %q, want %q", ToGoString(w), "hello")
	}
	if r, _ := value.Char(GetAt(w, 1)); r != 'e' {
		t.Fatalf("GetAt(1) = %q, want 'e'", r)
	}
}

func TestFromStringHandlesMultiByteUTF8(t *testing.T) {
	ctx := newCtx()
	w := FromString(ctx, "héllo 世界")
	if ToGoString(w) != "héllo 世界" {
		t.Fatalf("ToGoString() = %q, want round trip", ToGoString(w))
	}
}

func TestDecodeUTF8InvalidLeadByteSkipsOneByte(t *testing.T) {
	// 0xFF is not a valid lead byte under any of the four patterns.
	rs := DecodeUTF8([]byte{'a', 0xFF, 'b'})
	if string(rs) != "ab" {
		t.Fatalf("DecodeUTF8 = %q, want %q (invalid byte skipped)", string(rs), "ab")
	}
}

func TestDecodeUTF8TruncatedSequenceSkipsOneByte(t *testing.T) {
	// 0xE4 introduces a 3-byte sequence that is never completed.
	rs := DecodeUTF8([]byte{'x', 0xE4, 0xB8})
	if string(rs) != "x" {
		t.Fatalf("DecodeUTF8 = %q, want %q (truncated sequence dropped)", string(rs), "x")
	}
}

func TestInterningEqualStringsShareCell(t *testing.T) {
	ctx := newCtx()
	a := FromString(ctx, "same")
	b := FromString(ctx, "same")
	if a.Raw() != b.Raw() {
		t.Fatal("two strings with equal characters must be the same cell")
	}
	if GetHash(a) != GetHash(b) {
		t.Fatal("equal strings must have equal hashes")
	}
}

func TestSetAtInsertAtRemoveAt(t *testing.T) {
	ctx := newCtx()
	w := FromString(ctx, "cat")
	w2 := SetAt(ctx, w, 0, 'b')
	if ToGoString(w2) != "bat" {
		t.Fatalf("SetAt = %q, want %q", ToGoString(w2), "bat")
	}
	w3 := InsertAt(ctx, w, 3, 's')
	if ToGoString(w3) != "cats" {
		t.Fatalf("InsertAt = %q, want %q", ToGoString(w3), "cats")
	}
	w4 := RemoveAt(ctx, w, 1)
	if ToGoString(w4) != "ct" {
		t.Fatalf("RemoveAt = %q, want %q", ToGoString(w4), "ct")
	}
	if ToGoString(w) != "cat" {
		t.Fatal("original string must be unchanged")
	}
}

func TestAppendFirstLast(t *testing.T) {
	ctx := newCtx()
	w := FromString(ctx, "at")
	w = AppendFirst(ctx, w, 'c')
	w = AppendLast(ctx, w, 's')
	if ToGoString(w) != "cats" {
		t.Fatalf("result = %q, want %q", ToGoString(w), "cats")
	}
}

func TestSplit(t *testing.T) {
	ctx := newCtx()
	w := FromString(ctx, "protocol")
	head, tail := Split(ctx, w, 5)
	if ToGoString(head) != "proto" || ToGoString(tail) != "col" {
		t.Fatalf("Split = (%q, %q), want (%q, %q)", ToGoString(head), ToGoString(tail), "proto", "col")
	}
}

func TestGetSlice(t *testing.T) {
	ctx := newCtx()
	w := FromString(ctx, "abcdef")
	if ToGoString(GetSlice(ctx, w, 1, 4)) != "bcd" {
		t.Fatalf("GetSlice = %q, want %q", ToGoString(GetSlice(ctx, w, 1, 4)), "bcd")
	}
}

func TestCompareLexicographic(t *testing.T) {
	ctx := newCtx()
	a := FromString(ctx, "cat")
	b := FromString(ctx, "dog")
	c := FromString(ctx, "ca")
	if Compare(a, b) >= 0 {
		t.Fatal("\"cat\" should sort before \"dog\"")
	}
	if Compare(c, a) >= 0 {
		t.Fatal("a proper prefix should sort before the longer string")
	}
	if Compare(a, a) != 0 {
		t.Fatal("a string must compare equal to itself")
	}
}

func TestIteratorIsNotSelfAdvancing(t *testing.T) {
	ctx := newCtx()
	w := FromString(ctx, "abc")
	it := NewIter(ctx, w)
	if r, _ := value.Char(Next(it)); r != 'a' {
		t.Fatalf("Next() = %q, want 'a'", r)
	}
	it2 := Advance(ctx, it)
	if r, _ := value.Char(Next(it2)); r != 'b' {
		t.Fatalf("Next() after Advance = %q, want 'b'", r)
	}
	if r, _ := value.Char(Next(it)); r != 'a' {
		t.Fatal("Advance should not mutate the original iterator")
	}
	if !Advance(ctx, Advance(ctx, Advance(ctx, it2))).IsNone() {
		t.Fatal("Advance past the last character should return None")
	}
}
