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
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/numaes/protoCore-sub001/internal/atomicext"
	"github.com/numaes/protoCore-sub001/value"
)

// Logger is the interface Space uses to report allocator and
// collector diagnostics. It is deliberately narrow — satisfied by
// *log.Logger and by testing.T-backed adapters alike — the same shape
// the reference runtime's dcache.Logger uses.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Space is the process-wide runtime instance: it owns the cell arena,
// the free list, the thread registry, the interning and
// mutable-reference roots, and the safepoint state machine the
// collector in package gc drives.
type Space struct {
	cfg    Config
	Logger Logger

	free freeList

	residentBytes int64 // atomic: bytes acquired from the OS so far
	peakCells     int64 // atomic: high-watermark of outstanding cells
	nextCellID    uint64

	blocksLock spinlock
	blocks     []*region

	// allSlots is the master allocation table: every Slot this Space
	// has ever minted, live or free, in minting order. It is read only
	// through ForEachSlot, by the collector's sweep phase and by
	// debug.Snapshot.
	allSlots []*Slot

	// mutable_root and tuple_root: space-wide persistent roots,
	// published by CAS. The concrete value kept inside is opaque to
	// this package (it's always a SPARSE_MAP or TUPLE cell reference
	// minted by the pmap/tuple packages); Space just gives it a home
	// with atomic publish/read semantics.
	MutableRoot RootSlot
	TupleRoot   RootSlot

	threads ThreadRegistry

	providersLock spinlock
	providers     []RootProvider

	// safepoint protocol state; see safepoint.go.
	mu                 sync.Mutex
	stopTheWorld       sync.Cond
	restartTheWorld    sync.Cond
	state              spaceState
	registeredThreads  int64
	stoppingOrStopped  int64
	gcRequestedPending bool

	// wake nudges the collector's idle sleep (see gc.Collector's loop)
	// when a thread calls requestGC under allocation back-pressure.
	// Buffered by one: a pending nudge that hasn't been consumed yet
	// doesn't need a second one stacked behind it.
	wake chan struct{}
}

type spaceState int32

const (
	stateRunning spaceState = iota
	stateStoppingWorld
	stateWorldToStop
	stateWorldStopped
)

// NewSpace constructs a Space using cfg. A zero Config is not valid;
// callers that don't have host-supplied tunables should start from
// DefaultConfig().
func NewSpace(cfg Config, logger Logger) *Space {
	s := &Space{cfg: cfg, Logger: logger, wake: make(chan struct{}, 1)}
	s.stopTheWorld.L = &s.mu
	s.restartTheWorld.L = &s.mu
	return s
}

// Config returns the Space's tunables.
func (s *Space) Config() Config { return s.cfg }

func (s *Space) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

// acquireBlock requests BlocksPerMallocRequest more cells from the OS,
// zeroes them (mmap's anonymous mappings already come back zeroed),
// and chains them onto the free list. It enforces MaxHeapSize.
func (s *Space) acquireBlock() error {
	n := BlocksPerMallocRequest
	want := regionBytes(n)
	if s.cfg.MaxHeapSize > 0 {
		cur := atomic.LoadInt64(&s.residentBytes)
		if cur+int64(want) > s.cfg.MaxHeapSize {
			return fmt.Errorf("heap: acquiring %d bytes would exceed max heap size %d", want, s.cfg.MaxHeapSize)
		}
	}
	r, err := acquireRegion(want)
	if err != nil {
		return fmt.Errorf("heap: acquiring OS block: %w", err)
	}
	s.blocksLock.Lock()
	s.blocks = append(s.blocks, r)
	s.blocksLock.Unlock()
	atomic.AddInt64(&s.residentBytes, int64(want))

	var head, tail *Slot
	minted := make([]*Slot, 0, n)
	for i := 0; i < n; i++ {
		id := atomic.AddUint64(&s.nextCellID, 1)
		slot := &Slot{id: id}
		slot.next = head
		head = slot
		if tail == nil {
			tail = slot
		}
		minted = append(minted, slot)
	}
	s.blocksLock.Lock()
	s.allSlots = append(s.allSlots, minted...)
	s.blocksLock.Unlock()
	s.free.push(head, tail, int64(n))
	return nil
}

// ForEachSlot invokes fn once for every cell this Space has ever
// minted, live or free, over the table as it stood when the call
// began. The collector calls this during the sweep phase, while the
// world is stopped: no mutator is running, so no new slots can be
// minted concurrently and the snapshot is exact. debug.Snapshot also
// calls it without stopping the world; slots minted after the call
// began are then not visited.
func (s *Space) ForEachSlot(fn func(*Slot)) {
	s.blocksLock.Lock()
	snapshot := s.allSlots
	s.blocksLock.Unlock()
	for _, slot := range snapshot {
		fn(slot)
	}
}

// refill hands up to want cells to a thread pool, acquiring more OS
// blocks as needed. It implements the "abort vs. block on GC" policy
// from the error handling design for allocation failures under the
// heap cap.
func (s *Space) refill(want int) (*Slot, int) {
	head, got := s.free.popUpTo(want)
	for got < want {
		if err := s.acquireBlock(); err != nil {
			if s.cfg.BlockOnNoMemory {
				s.requestGC()
				s.waitForGC()
				continue
			}
			s.logf("fatal: %s", err)
			os.Exit(1)
		}
		more, n := s.free.popUpTo(want - got)
		if n == 0 {
			continue
		}
		if head == nil {
			head = more
		} else {
			// splice more onto the end of head
			tail := head
			for tail.next != nil {
				tail = tail.next
			}
			tail.next = more
		}
		got += n
	}
	outstanding := int64(atomic.LoadUint64(&s.nextCellID)) - s.free.Len()
	atomicext.MaxInt64(&s.peakCells, outstanding)
	return head, got
}

// PeakCells reports the high-watermark number of cells that were
// outstanding (minted but not on the free list) at any point so far.
func (s *Space) PeakCells() int64 {
	return atomic.LoadInt64(&s.peakCells)
}

// returnFree gives a chain of n already-Reset slots back to the free
// list. Used by the collector's sweep phase.
func (s *Space) returnFree(head, tail *Slot, n int64) {
	if head == nil {
		return
	}
	s.free.push(head, tail, n)
}

// FreeCellsCount reports the current size of the free list
// (free_cells_count in the reference runtime's terms).
func (s *Space) FreeCellsCount() int64 {
	return s.free.Len()
}

// ResidentBytes reports the total bytes acquired from the OS so far
// across all blocks.
func (s *Space) ResidentBytes() int64 {
	return atomic.LoadInt64(&s.residentBytes)
}

// value.Cell is satisfied transitively via Slot; Space itself never
// needs to implement it, but this blank assignment keeps that
// relationship honest if Slot's shape ever drifts.
var _ value.Cell = (*Slot)(nil)
