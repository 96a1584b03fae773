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

package paging

import (
	"fmt"

	"github.com/mcdoll/armv7/pkg/armaddr"
)

// OffsetMapping is a contiguous linear window between the virtual and the
// physical address space: every address in [virtStart, virtStart+size) maps
// to the physical address at the same offset from physStart.
//
// Both windows are half-open. The address one past the end is not part of
// the mapping.
type OffsetMapping struct {
	virtStart armaddr.VirtualAddress
	physStart armaddr.PhysicalAddress
	size      uint32
}

// NewOffsetMapping builds the window. size must be positive and neither
// range may wrap the 32-bit space.
func NewOffsetMapping(virtStart armaddr.VirtualAddress, physStart armaddr.PhysicalAddress, size uint32) (OffsetMapping, error) {
	if size == 0 {
		return OffsetMapping{}, fmt.Errorf("offset mapping of size 0")
	}
	if _, ok := virtStart.Add(size - 1); !ok {
		return OffsetMapping{}, fmt.Errorf("virtual window %v+%#x exceeds the 32-bit space", virtStart, size)
	}
	if _, ok := physStart.Add(size - 1); !ok {
		return OffsetMapping{}, fmt.Errorf("physical window %v+%#x exceeds the 32-bit space", physStart, size)
	}
	return OffsetMapping{
		virtStart: virtStart,
		physStart: physStart,
		size:      size,
	}, nil
}

// VirtInRange returns true if va falls inside the virtual window.
func (m OffsetMapping) VirtInRange(va armaddr.VirtualAddress) bool {
	return va >= m.virtStart && va.Diff(m.virtStart) < m.size
}

// PhysInRange returns true if pa falls inside the physical window.
func (m OffsetMapping) PhysInRange(pa armaddr.PhysicalAddress) bool {
	return pa >= m.physStart && pa.Diff(m.physStart) < m.size
}

// ConvertVirt translates a virtual address inside the window to its physical
// counterpart; ErrNotInRange outside it.
func (m OffsetMapping) ConvertVirt(va armaddr.VirtualAddress) (armaddr.PhysicalAddress, error) {
	if !m.VirtInRange(va) {
		return 0, fmt.Errorf("%v in window [%v, +%#x): %w", va, m.virtStart, m.size, ErrNotInRange)
	}
	pa, _ := m.physStart.Add(va.Diff(m.virtStart))
	return pa, nil
}

// ConvertPhys translates a physical address inside the window to its virtual
// counterpart; ErrNotInRange outside it.
func (m OffsetMapping) ConvertPhys(pa armaddr.PhysicalAddress) (armaddr.VirtualAddress, error) {
	if !m.PhysInRange(pa) {
		return 0, fmt.Errorf("%v in window [%v, +%#x): %w", pa, m.physStart, m.size, ErrNotInRange)
	}
	va, _ := m.virtStart.Add(pa.Diff(m.physStart))
	return va, nil
}
