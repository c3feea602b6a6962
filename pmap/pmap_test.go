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

package pmap

import (
	"testing"

	"github.com/numaes/protoCore-sub001/attrhash"
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/value"
)

func newCtx() *heap.Context {
	space := heap.NewSpace(heap.DefaultConfig(), nil)
	pool := heap.NewPool(space)
	return heap.NewContext(space, pool, nil)
}

func TestEmptyMap(t *testing.T) {
	ctx := newCtx()
	w := Empty(ctx)
	if Size(w) != 0 {
		t.Fatal("Empty() should have size 0")
	}
	if Has(w, 42) {
		t.Fatal("Has on empty map should be false")
	}
	if !GetAt(w, 42).IsNone() {
		t.Fatal("GetAt on empty map should be None")
	}
}

func TestSetAtGetAtRoundTrip(t *testing.T) {
	ctx := newCtx()
	w := Empty(ctx)
	nameHash := attrhash.Hash("name")
	ageHash := attrhash.Hash("age")

	w = SetAt(ctx, w, nameHash, value.FromSmallInt(1))
	w = SetAt(ctx, w, ageHash, value.FromSmallInt(30))

	if v, _ := value.SmallInt(GetAt(w, nameHash)); v != 1 {
		t.Fatalf("GetAt(name) = %d, want 1", v)
	}
	if v, _ := value.SmallInt(GetAt(w, ageHash)); v != 30 {
		t.Fatalf("GetAt(age) = %d, want 30", v)
	}
	if Size(w) != 2 {
		t.Fatalf("Size() = %d, want 2", Size(w))
	}
}

func TestSetAtReplacesExistingKey(t *testing.T) {
	ctx := newCtx()
	w := SetAt(ctx, Empty(ctx), 7, value.FromSmallInt(1))
	w2 := SetAt(ctx, w, 7, value.FromSmallInt(2))
	if Size(w2) != 1 {
		t.Fatalf("Size() = %d, want 1 (replace, not grow)", Size(w2))
	}
	if v, _ := value.SmallInt(GetAt(w2, 7)); v != 2 {
		t.Fatalf("GetAt(7) = %d, want 2", v)
	}
	if v, _ := value.SmallInt(GetAt(w, 7)); v != 1 {
		t.Fatal("original map must be unchanged")
	}
}

func TestRemoveAtSparseMapScenario(t *testing.T) {
	ctx := newCtx()
	nameHash := attrhash.Hash("name")
	ageHash := attrhash.Hash("age")
	w := Empty(ctx)
	w = SetAt(ctx, w, nameHash, value.FromSmallInt(1))
	w = SetAt(ctx, w, ageHash, value.FromSmallInt(2))

	w2 := RemoveAt(ctx, w, nameHash)
	if Size(w2) != 1 {
		t.Fatalf("Size() = %d, want 1", Size(w2))
	}
	if !Has(w2, ageHash) {
		t.Fatal("age should still be present after removing name")
	}
	if Has(w2, nameHash) {
		t.Fatal("name should be gone")
	}
	if Size(w) != 2 {
		t.Fatal("original map must be unchanged")
	}
}

func TestRemoveAtMissingKeyIsNoop(t *testing.T) {
	ctx := newCtx()
	w := SetAt(ctx, Empty(ctx), 1, value.FromSmallInt(10))
	w2 := RemoveAt(ctx, w, 999)
	if w2.Raw() != w.Raw() {
		t.Fatal("RemoveAt of a missing key should return the same map")
	}
}

func TestRemoveAtTwoChildNodeSplicesSuccessor(t *testing.T) {
	ctx := newCtx()
	w := Empty(ctx)
	for _, k := range []uint64{50, 25, 75, 10, 30, 60, 80} {
		w = SetAt(ctx, w, k, value.FromSmallInt(int64(k)))
	}
	w2 := RemoveAt(ctx, w, 50)
	if Has(w2, 50) {
		t.Fatal("50 should be removed")
	}
	for _, k := range []uint64{25, 75, 10, 30, 60, 80} {
		if !Has(w2, k) {
			t.Fatalf("key %d should survive removal of 50", k)
		}
	}
	if Size(w2) != 6 {
		t.Fatalf("Size() = %d, want 6", Size(w2))
	}
}

func TestProcessElementsAscendingOrder(t *testing.T) {
	ctx := newCtx()
	w := Empty(ctx)
	keys := []uint64{50, 10, 90, 30, 70}
	for _, k := range keys {
		w = SetAt(ctx, w, k, value.FromSmallInt(int64(k)))
	}
	var seen []uint64
	ProcessElements(w, func(k uint64, v value.Word) {
		seen = append(seen, k)
		got, _ := value.SmallInt(v)
		if got != int64(k) {
			t.Fatalf("value for key %d = %d, want %d", k, got, k)
		}
	})
	want := []uint64{10, 30, 50, 70, 90}
	if len(seen) != len(want) {
		t.Fatalf("visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("visited %v, want %v", seen, want)
		}
	}
}

func TestIteratorAscendingOrder(t *testing.T) {
	ctx := newCtx()
	w := Empty(ctx)
	keys := []uint64{50, 10, 90, 30, 70}
	for _, k := range keys {
		w = SetAt(ctx, w, k, value.FromSmallInt(int64(k)))
	}
	var seen []uint64
	for it := NewIter(ctx, w); !it.IsNone(); it = Advance(ctx, it) {
		k, _ := Next(it)
		seen = append(seen, k)
	}
	want := []uint64{10, 30, 50, 70, 90}
	if len(seen) != len(want) {
		t.Fatalf("visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("visited %v, want %v", seen, want)
		}
	}
}

func TestLargeMapRandomAccess(t *testing.T) {
	ctx := newCtx()
	w := Empty(ctx)
	const n = 500
	for i := 0; i < n; i++ {
		w = SetAt(ctx, w, uint64(i*7919%100003), value.FromSmallInt(int64(i)))
	}
	for i := 0; i < n; i++ {
		key := uint64(i * 7919 % 100003)
		if got, ok := value.SmallInt(GetAt(w, key)); !ok || got != int64(i) {
			t.Fatalf("GetAt(%d) = %d, want %d", key, got, i)
		}
	}
	count := 0
	ProcessValues(w, func(v value.Word) { count++ })
	if count != Size(w) {
		t.Fatalf("ProcessValues visited %d, Size() = %d", count, Size(w))
	}
}
