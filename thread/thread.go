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

// Package thread models one OS-backed worker: its private allocation
// pool and Context, its cooperative safepoint state, and a fixed-depth
// method cache that memoizes attribute resolution for call.
//
// A Thread is a control structure, not a heap cell — the same
// treatment heap.Context and heap.Pool already get in this codebase.
// Its state (mutex, goroutine-done channel, cache slots) cannot be
// packed into a 64-byte Slot body and has no business being visible to
// managed code directly; code that needs to pass "this thread" around
// as a value.Word uses Handle, a thin TagExternalPointer cell.
package thread

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/numaes/protoCore-sub001/attrhash"
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/object"
	"github.com/numaes/protoCore-sub001/pstring"
	"github.com/numaes/protoCore-sub001/value"
)

// State is one of the five states a Thread moves through.
type State int

const (
	Managed State = iota
	Unmanaged
	Stopping
	Stopped
	Ended
)

func (s State) String() string {
	switch s {
	case Managed:
		return "MANAGED"
	case Unmanaged:
		return "UNMANAGED"
	case Stopping:
		return "STOPPING"
	case Stopped:
		return "STOPPED"
	case Ended:
		return "ENDED"
	default:
		return "INVALID_STATE"
	}
}

// CacheDepth is THREAD_CACHE_DEPTH: the fixed number of slots in every
// thread's method cache.
const CacheDepth = 1024

// NativeFunc is a host-provided callable bound to an attribute.
// Native functions must not close over managed heap cells — they
// receive self, args, and kwargs fresh on every call — which is why a
// cached method_ptr (see cacheEntry) is not itself treated as a GC
// root, matching spec's own root list for the method cache.
type NativeFunc func(ctx *heap.Context, self, args, kwargs value.Word) value.Word

type cacheEntry struct {
	valid      bool
	object     value.Word
	nameHash   uint64
	methodName value.Word
	fn         NativeFunc
}

// Thread is one managed worker.
type Thread struct {
	space *heap.Space
	pool  *heap.Pool
	ctx   *heap.Context

	name     value.Word
	nameHash uint64

	// Rand is this thread's own 64-bit id generator, seeded once at
	// creation, passed to object.NewMutable/NewMutableChild so two
	// threads never share PRNG state.
	Rand *rand.Rand

	mu             sync.Mutex
	state          State
	unmanagedDepth int

	cache [CacheDepth]cacheEntry

	done chan struct{}
}

// New creates a Thread attached to space, starts it MANAGED, and
// registers it in the thread registry under hash(name) and as a GC
// root provider.
func New(space *heap.Space, name string) *Thread {
	pool := heap.NewPool(space)
	ctx := heap.NewContext(space, pool, nil)
	nameHash := attrhash.Hash(name)

	t := &Thread{
		space:    space,
		pool:     pool,
		ctx:      ctx,
		nameHash: nameHash,
		state:    Managed,
		Rand:     rand.New(rand.NewSource(int64(nameHash))),
		done:     make(chan struct{}),
	}
	t.name = pstring.FromString(ctx, name)

	space.RegisterRootProvider(t)
	space.RegisterThread()
	space.Threads().Register(nameHash, t.Handle(ctx))

	return t
}

// Context returns the thread's outermost allocation scope.
func (t *Thread) Context() *heap.Context { return t.ctx }

// Space returns the Space this thread belongs to.
func (t *Thread) Space() *heap.Space { return t.space }

// State reports the thread's current lifecycle state.
func (t *Thread) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// NameHash returns hash(name), the key threads are registered under.
func (t *Thread) NameHash() uint64 { return t.nameHash }

// Safepoint is the thread's half of the stop-the-world handshake. It
// must only be called when the thread holds no references the
// collector would not otherwise find via ScanRoots — at a method
// dispatch boundary, a loop back-edge, or an allocation request, per
// spec's suspension-point list. It is a no-op while UNMANAGED: an
// unmanaged thread must not touch managed memory anyway.
func (t *Thread) Safepoint() {
	t.mu.Lock()
	managed := t.unmanagedDepth == 0
	t.mu.Unlock()
	if managed {
		t.space.SyncToGC()
	}
}

// DeclareUnmanaged marks the thread UNMANAGED, pinning its roots and
// excusing it from the next safepoint wait. Nestable: only the
// outermost declaration actually changes state, matching "an explicit
// nestable declaration used when blocking on I/O."
func (t *Thread) DeclareUnmanaged() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unmanagedDepth++
	if t.unmanagedDepth == 1 {
		t.state = Unmanaged
		t.space.UnregisterRootProvider(t)
		t.space.UnregisterThread()
	}
}

// DeclareManaged reverses one DeclareUnmanaged nesting level. Once the
// nesting count returns to zero the thread resumes MANAGED and
// immediately safepoints, so a collection already in progress is
// honored right away instead of waiting for the thread's next natural
// suspension point.
func (t *Thread) DeclareManaged() {
	t.mu.Lock()
	if t.unmanagedDepth == 0 {
		t.mu.Unlock()
		return
	}
	t.unmanagedDepth--
	backToManaged := t.unmanagedDepth == 0
	if backToManaged {
		t.state = Managed
		t.space.RegisterRootProvider(t)
		t.space.RegisterThread()
	}
	t.mu.Unlock()
	if backToManaged {
		t.space.SyncToGC()
	}
}

// Join blocks until the thread has called Exit.
func (t *Thread) Join() {
	<-t.done
}

// Exit deregisters the thread from the registry and, if it is still
// MANAGED, from the collector's wait set, then drains its private
// pool back to the Space's shared free list. Valid only for the
// calling thread, per spec.
func (t *Thread) Exit() {
	t.mu.Lock()
	if t.state == Ended {
		t.mu.Unlock()
		return
	}
	wasManaged := t.unmanagedDepth == 0 && t.state == Managed
	t.state = Ended
	t.mu.Unlock()

	if wasManaged {
		t.space.UnregisterRootProvider(t)
		t.space.UnregisterThread()
	}
	t.space.Threads().Deregister(t.nameHash)
	t.pool.Drain()
	close(t.done)
}

// ScanRoots implements heap.RootProvider. It is only ever invoked by
// the collector while the world is stopped, so it needs no locking of
// its own: every managed thread that could otherwise be racing against
// it is itself parked inside Safepoint.
func (t *Thread) ScanRoots(visit func(value.Word)) {
	if t.ctx != nil {
		t.ctx.ScanRoots(visit)
	}
	if !t.name.IsNone() {
		visit(t.name)
	}
	for i := range t.cache {
		e := &t.cache[i]
		if !e.valid {
			continue
		}
		visit(e.object)
		visit(e.methodName)
	}
}

func cacheIndex(objHash, nameHash uint64) int {
	return int(((objHash ^ nameHash) >> 4) & (CacheDepth - 1))
}

// Call resolves name on self and invokes it with args and kwargs,
// probing the method cache first and falling back to full attribute
// lookup on a miss. It returns an error if the resolved attribute is
// not a callable (a thread.Method value) — call is for dispatch, not
// general attribute access; use object.GetAttribute for that.
func (t *Thread) Call(self value.Word, name string, args, kwargs value.Word) (value.Word, error) {
	t.Safepoint()

	nameHash := attrhash.Hash(name)
	objHash := value.Hash(self)
	idx := cacheIndex(objHash, nameHash)

	if e := &t.cache[idx]; e.valid && e.object.Raw() == self.Raw() && e.nameHash == nameHash {
		return e.fn(t.ctx, self, args, kwargs), nil
	}

	resolved := object.GetAttribute(t.ctx, self, name)
	fn, ok := asMethod(resolved)
	if !ok {
		return value.None, fmt.Errorf("thread: attribute %q is not callable", name)
	}

	t.cache[idx] = cacheEntry{
		valid:      true,
		object:     self,
		nameHash:   nameHash,
		methodName: pstring.FromString(t.ctx, name),
		fn:         fn,
	}
	return fn(t.ctx, self, args, kwargs), nil
}
