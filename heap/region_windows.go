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

//go:build windows

package heap

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const osPageSize = 1 << 12

func acquireRegion(n uint64) (*region, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(n), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
	return &region{mem: mem}, nil
}

func releaseRegion(r *region) error {
	addr := uintptr(unsafe.Pointer(&r.mem[0]))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
