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

package debug

import (
	"bytes"
	"testing"

	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/object"
)

func newSpace(t *testing.T) (*heap.Space, *heap.Context) {
	t.Helper()
	space := heap.NewSpace(heap.DefaultConfig(), nil)
	pool := heap.NewPool(space)
	ctx := heap.NewContext(space, pool, nil)
	return space, ctx
}

func TestSnapshotCountsLiveObjectCells(t *testing.T) {
	space, ctx := newSpace(t)

	before := Snapshot(space)

	o := object.New(ctx)
	o = object.SetAttribute(ctx, o, "x", object.New(ctx))
	_ = o

	after := Snapshot(space)
	if after.LiveCells <= before.LiveCells {
		t.Fatalf("LiveCells did not grow: before=%d after=%d", before.LiveCells, after.LiveCells)
	}
	if after.TotalSlots < after.LiveCells {
		t.Fatal("TotalSlots must be at least LiveCells")
	}
}

func TestWriteSnapshotRoundTrip(t *testing.T) {
	space, ctx := newSpace(t)
	object.SetAttribute(ctx, object.New(ctx), "y", object.New(ctx))

	rep := Snapshot(space)

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, rep); err != nil {
		t.Fatalf("WriteSnapshot error: %v", err)
	}

	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot error: %v", err)
	}
	if got.LiveCells != rep.LiveCells || got.TotalSlots != rep.TotalSlots {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, rep)
	}
	if got.ByTag["OBJECT"] != rep.ByTag["OBJECT"] {
		t.Fatalf("ByTag[OBJECT] mismatch: got %d, want %d", got.ByTag["OBJECT"], rep.ByTag["OBJECT"])
	}
}

func TestTagCountsSortedDescendingByCount(t *testing.T) {
	space, ctx := newSpace(t)
	for i := 0; i < 3; i++ {
		object.SetAttribute(ctx, object.New(ctx), "k", object.New(ctx))
	}

	rep := Snapshot(space)
	if len(rep.TagCounts) == 0 {
		t.Fatal("expected at least one tag in TagCounts")
	}
	for i := 1; i < len(rep.TagCounts); i++ {
		if rep.TagCounts[i-1].Count < rep.TagCounts[i].Count {
			t.Fatalf("TagCounts not sorted descending: %+v", rep.TagCounts)
		}
	}
	var total int64
	for _, tc := range rep.TagCounts {
		total += tc.Count
	}
	if total != rep.LiveCells {
		t.Fatalf("TagCounts total %d != LiveCells %d", total, rep.LiveCells)
	}
}

func TestReadSnapshotRejectsCorruptPayload(t *testing.T) {
	space, _ := newSpace(t)
	rep := Snapshot(space)

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, rep); err != nil {
		t.Fatalf("WriteSnapshot error: %v", err)
	}
	corrupt := buf.Bytes()
	corrupt[0] ^= 0xff

	if _, err := ReadSnapshot(bytes.NewReader(corrupt)); err == nil {
		t.Fatal("ReadSnapshot should reject a payload with a flipped byte")
	}
}
