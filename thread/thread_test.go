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
	"testing"

	"github.com/numaes/protoCore-sub001/attrhash"
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/object"
	"github.com/numaes/protoCore-sub001/value"
)

func newSpace() *heap.Space {
	return heap.NewSpace(heap.DefaultConfig(), nil)
}

func TestNewRegistersAsManagedRoot(t *testing.T) {
	space := newSpace()
	th := New(space, "worker-1")
	if space.RegisteredThreads() != 1 {
		t.Fatalf("RegisteredThreads() = %d, want 1", space.RegisteredThreads())
	}
	if th.State() != Managed {
		t.Fatalf("State() = %v, want MANAGED", th.State())
	}
	if _, ok := space.Threads().Lookup(th.NameHash()); !ok {
		t.Fatal("thread should be registered under hash(name)")
	}
	th.Exit()
	th.Join()
	if space.RegisteredThreads() != 0 {
		t.Fatalf("RegisteredThreads() after Exit = %d, want 0", space.RegisteredThreads())
	}
	if _, ok := space.Threads().Lookup(th.NameHash()); ok {
		t.Fatal("thread should be deregistered after Exit")
	}
}

func TestDeclareUnmanagedNestingOnlyOutermostChangesState(t *testing.T) {
	space := newSpace()
	th := New(space, "io-thread")

	th.DeclareUnmanaged()
	th.DeclareUnmanaged()
	if th.State() != Unmanaged {
		t.Fatal("thread should be UNMANAGED after the first declaration")
	}
	if space.RegisteredThreads() != 0 {
		t.Fatal("an UNMANAGED thread must not be in the collector's wait set")
	}

	th.DeclareManaged()
	if th.State() != Unmanaged {
		t.Fatal("inner DeclareManaged must not yet restore MANAGED state")
	}
	th.DeclareManaged()
	if th.State() != Managed {
		t.Fatal("outermost DeclareManaged must restore MANAGED state")
	}
	if space.RegisteredThreads() != 1 {
		t.Fatal("thread should rejoin the collector's wait set once MANAGED again")
	}
	th.Exit()
	th.Join()
}

func TestHandleRoundTrip(t *testing.T) {
	space := newSpace()
	th := New(space, "handled")
	w, ok := space.Threads().Lookup(th.NameHash())
	if !ok {
		t.Fatal("expected a registered handle")
	}
	got, ok := FromHandle(w)
	if !ok || got != th {
		t.Fatal("FromHandle should recover the same *Thread that was registered")
	}
	th.Exit()
	th.Join()
}

func TestCallInvokesResolvedMethodAndCachesIt(t *testing.T) {
	space := newSpace()
	th := New(space, "caller")
	ctx := th.Context()

	calls := 0
	greet := NewMethod(ctx, func(ctx *heap.Context, self, args, kwargs value.Word) value.Word {
		calls++
		return value.FromSmallInt(int64(calls))
	})

	o := object.New(ctx)
	o = object.SetAttribute(ctx, o, "greet", greet)

	v1, err := th.Call(o, "greet", value.None, value.None)
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if n, ok := value.SmallInt(v1); !ok || n != 1 {
		t.Fatalf("first call result = %v, want 1", v1)
	}

	v2, err := th.Call(o, "greet", value.None, value.None)
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if n, ok := value.SmallInt(v2); !ok || n != 2 {
		t.Fatalf("second call result = %v, want 2 (native func invoked again on cache hit)", v2)
	}
	if calls != 2 {
		t.Fatalf("native func invoked %d times, want 2", calls)
	}

	h := cacheIndex(value.Hash(o), attrhash.Hash("greet"))
	if !th.cache[h].valid || th.cache[h].object.Raw() != o.Raw() {
		t.Fatal("cache slot should hold the resolved method for o")
	}
}

func TestCallOnNonCallableAttributeReturnsError(t *testing.T) {
	space := newSpace()
	th := New(space, "caller2")
	ctx := th.Context()

	o := object.New(ctx)
	o = object.SetAttribute(ctx, o, "count", value.FromSmallInt(5))

	if _, err := th.Call(o, "count", value.None, value.None); err == nil {
		t.Fatal("Call on a non-callable attribute should return an error")
	}
}

func TestScanRootsVisitsNameAndCacheEntries(t *testing.T) {
	space := newSpace()
	th := New(space, "scanned")
	ctx := th.Context()

	o := object.New(ctx)
	o = object.SetAttribute(ctx, o, "m", NewMethod(ctx, func(ctx *heap.Context, self, args, kwargs value.Word) value.Word {
		return value.None
	}))
	if _, err := th.Call(o, "m", value.None, value.None); err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	var seen []value.Word
	th.ScanRoots(func(w value.Word) { seen = append(seen, w) })

	foundName, foundObject := false, false
	for _, w := range seen {
		if w.Raw() == th.name.Raw() {
			foundName = true
		}
		if w.Raw() == o.Raw() {
			foundObject = true
		}
	}
	if !foundName {
		t.Fatal("ScanRoots should visit the thread's own name")
	}
	if !foundObject {
		t.Fatal("ScanRoots should visit cached method-cache objects")
	}
}

