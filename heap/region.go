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

import "github.com/numaes/protoCore-sub001/internal/ints"

// region is a page-aligned, zero-filled block of OS memory sized to
// hold nCells cells. Space requests one of these per malloc request
// and accounts its length against Config.MaxHeapSize; the Slot
// objects chained onto the free list for that request are ordinary
// Go-allocated structs (see cell.go), not pointers into mem, but mem
// is what makes the acquisition "real" OS-backed, page-granular
// memory the way the reference allocator's block requests are.
type region struct {
	mem []byte
}

// regionBytes returns the page-aligned byte size of a block of nCells
// cells.
func regionBytes(nCells int) uint64 {
	raw := uint64(nCells) * CellSize
	return ints.AlignUp64(raw, osPageSize)
}
