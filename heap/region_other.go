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

//go:build !linux && !darwin && !windows

package heap

const osPageSize = 1 << 12

// acquireRegion falls back to an ordinary Go allocation on platforms
// we don't have a direct mmap/VirtualAlloc binding for. Go zero-fills
// all new memory, so the "zeroed block" guarantee still holds; we
// just lose the "this is a real OS page mapping" property.
func acquireRegion(n uint64) (*region, error) {
	return &region{mem: make([]byte, n)}, nil
}

func releaseRegion(r *region) error {
	return nil
}
