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

package heap

import (
	"sync/atomic"
	"unsafe"

	"github.com/numaes/protoCore-sub001/value"
)

// RootSlot is a CAS-published space-wide root: mutable_root and
// tuple_root are both one of these. Readers that observe an updated
// pointer see a fully constructed replacement value, because the
// replacement is always built completely before the CAS — the same
// ordering guarantee the reference runtime's mutable-object
// publication relies on.
type RootSlot struct {
	p unsafe.Pointer // *value.Word
}

// Load returns the currently published word, or the zero Word if
// nothing has been published yet.
func (r *RootSlot) Load() value.Word {
	p := (*value.Word)(atomic.LoadPointer(&r.p))
	if p == nil {
		return value.Word{}
	}
	return *p
}

// CAS publishes next if the slot currently holds old. It reports
// whether the swap happened.
func (r *RootSlot) CAS(old, next value.Word) bool {
	oldPtr := (*value.Word)(atomic.LoadPointer(&r.p))
	var oldVal value.Word
	if oldPtr != nil {
		oldVal = *oldPtr
	}
	if oldVal.Raw() != old.Raw() {
		return false
	}
	np := next
	return atomic.CompareAndSwapPointer(&r.p, unsafe.Pointer(oldPtr), unsafe.Pointer(&np))
}

// Store unconditionally publishes v. Only safe for one-time
// initialization (e.g. seeding tuple_root with the empty dictionary);
// concurrent mutation must go through CAS.
func (r *RootSlot) Store(v value.Word) {
	nv := v
	atomic.StorePointer(&r.p, unsafe.Pointer(&nv))
}

// RootProvider is implemented by anything the collector must treat as
// a source of GC roots during the synchronous WORLD_STOPPED scan: in
// practice, every live Thread. Space holds a registry of these so
// package gc can drive root scanning without importing package
// thread (which itself depends on heap).
type RootProvider interface {
	// ScanRoots invokes visit once for every Word the provider holds
	// live: for thread.Thread, its context allocation chain, its name
	// and its method-cache entries. Free slots in a private pool carry
	// no Body and need no visit.
	ScanRoots(visit func(value.Word))
}

// RegisterRootProvider adds p to the set the collector scans. Callers
// (package thread, on thread creation) must call
// UnregisterRootProvider on teardown.
func (s *Space) RegisterRootProvider(p RootProvider) {
	s.providersLock.Lock()
	s.providers = append(s.providers, p)
	s.providersLock.Unlock()
}

// UnregisterRootProvider removes p from the registry.
func (s *Space) UnregisterRootProvider(p RootProvider) {
	s.providersLock.Lock()
	defer s.providersLock.Unlock()
	for i, q := range s.providers {
		if q == p {
			s.providers = append(s.providers[:i], s.providers[i+1:]...)
			return
		}
	}
}

// ForEachRootProvider invokes fn once per currently registered
// provider. It must only be called from the collector while the world
// is stopped.
func (s *Space) ForEachRootProvider(fn func(RootProvider)) {
	s.providersLock.Lock()
	snapshot := make([]RootProvider, len(s.providers))
	copy(snapshot, s.providers)
	s.providersLock.Unlock()
	for _, p := range snapshot {
		fn(p)
	}
}

// ThreadRegistry maps hash(thread name) to the thread's current
// value.Word, guarded by a spinlock, matching the reference runtime's
// "threads" spinlock-protected registry.
type ThreadRegistry struct {
	lock spinlock
	m    map[uint64]value.Word
}

func (t *ThreadRegistry) Register(nameHash uint64, w value.Word) {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.m == nil {
		t.m = make(map[uint64]value.Word)
	}
	t.m[nameHash] = w
}

func (t *ThreadRegistry) Deregister(nameHash uint64) {
	t.lock.Lock()
	defer t.lock.Unlock()
	delete(t.m, nameHash)
}

func (t *ThreadRegistry) Lookup(nameHash uint64) (value.Word, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	w, ok := t.m[nameHash]
	return w, ok
}

// Threads exposes the thread registry to package thread.
func (s *Space) Threads() *ThreadRegistry { return &s.threads }
