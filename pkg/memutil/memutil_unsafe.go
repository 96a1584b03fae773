// Copyright 2025 The armv7 Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package memutil provides aligned backing storage for translation tables on
// a host system.
//
// Hardware-walked tables carry alignment requirements stricter than anything
// the Go allocator guarantees (a first-level table must sit on a 16KB
// boundary). The helpers here obtain anonymous mappings and trim them to the
// requested alignment, so tools and tests can build bit-exact table images.
package memutil

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MapFile returns a memory mapping configured by the given options as per
// mmap(2).
func MapFile(addr, size, prot, flags, fd, offset uintptr) (uintptr, error) {
	m, _, e := unix.RawSyscall6(unix.SYS_MMAP, addr, size, prot, flags, fd, offset)
	if e != 0 {
		return 0, e
	}
	return m, nil
}

// MapSlice is like MapFile, but returns a slice instead of a uintptr.
func MapSlice(addr, size, prot, flags, fd, offset uintptr) ([]byte, error) {
	addr, err := MapFile(addr, size, prot, flags, fd, offset)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size)), nil
}

// UnmapSlice unmaps a mapping returned by MapSlice.
func UnmapSlice(slice []byte) error {
	ptr := unsafe.SliceData(slice)
	_, _, err := unix.RawSyscall6(unix.SYS_MUNMAP, uintptr(unsafe.Pointer(ptr)), uintptr(cap(slice)), 0, 0, 0, 0)
	if err != 0 {
		return err
	}
	return nil
}

// AlignedBlock returns a zeroed, anonymous private mapping of the given size
// whose base address is a multiple of align.
//
// Precondition: align is a power of two.
func AlignedBlock(size, align uintptr) ([]byte, error) {
	if align&(align-1) != 0 {
		return nil, fmt.Errorf("alignment %#x is not a power of two", align)
	}

	// Over-allocate so that an aligned base of the requested size always
	// fits, then trim to it. The slack pages stay mapped; the mapping is
	// released as a whole by AlignedBlockFree.
	total := size + align
	m, err := MapFile(0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS, ^uintptr(0), 0)
	if err != nil {
		return nil, fmt.Errorf("mmap of %d bytes failed: %w", total, err)
	}

	base := (m + align - 1) &^ (align - 1)
	block := unsafe.Slice((*byte)(unsafe.Pointer(base)), int(size))

	// Remember the original mapping so the block can be released.
	alignedMu.Lock()
	alignedOrigins[base] = mapping{addr: m, size: total}
	alignedMu.Unlock()
	return block, nil
}

// AlignedBlockFree releases a block returned by AlignedBlock.
func AlignedBlockFree(block []byte) error {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(block)))

	alignedMu.Lock()
	origin, ok := alignedOrigins[base]
	delete(alignedOrigins, base)
	alignedMu.Unlock()
	if !ok {
		return fmt.Errorf("block at %#x was not returned by AlignedBlock", base)
	}

	_, _, e := unix.RawSyscall6(unix.SYS_MUNMAP, origin.addr, origin.size, 0, 0, 0, 0)
	if e != 0 {
		return e
	}
	return nil
}
