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

//go:build linux

package heap

import "syscall"

const osPageSize = 1 << 12

// acquireRegion mmaps an anonymous, zero-filled block of n bytes.
// Anonymous mappings come back zero-filled by the kernel, so there is
// no separate zeroing pass needed before the cells in it are chained
// onto the free list.
func acquireRegion(n uint64) (*region, error) {
	mem, err := syscall.Mmap(-1, 0, int(n), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return &region{mem: mem}, nil
}

func releaseRegion(r *region) error {
	return syscall.Munmap(r.mem)
}
