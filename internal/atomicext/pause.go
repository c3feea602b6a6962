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

// Package atomicext provides extensions complementing the built-in
// sync/atomic package: CAS-based helpers for types atomic does not
// cover directly, and a spin-wait hint used by the allocator and
// collector's spinlocks.
package atomicext

import "runtime"

// Pause yields the current goroutine's time slice. It is meant to be
// called from the body of a bounded spin-wait loop (the heap's free
// list, block table, root-provider and thread registry spinlocks) so
// that a contended spinner does not starve the goroutine that is
// about to release the lock.
//
// The reference runtime pins this to a PAUSE/YIELD CPU instruction;
// we do not have a verified assembly encoding for every architecture
// this module might run on, so we fall back to cooperative scheduling,
// which gives the same correctness guarantee (the loop condition is
// re-checked after the call) at the cost of a coarser-grained yield.
func Pause() {
	runtime.Gosched()
}
