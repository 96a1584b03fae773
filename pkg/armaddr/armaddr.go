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

// Package armaddr provides typed 32-bit virtual and physical addresses for
// the ARMv7-A address space.
//
// VirtualAddress and PhysicalAddress are distinct types so that translation
// code cannot accidentally mix the two address spaces. Both cover the full
// 32-bit range; alignment is checked per-operation against a caller-supplied
// mask of low bits (e.g. 0x3fff for 16KB alignment).
//
// Arithmetic is checked, not saturating: operations that could wrap the
// 32-bit space report ok=false instead of wrapping silently, since hardware
// addresses legitimately approach the 4GB boundary.
package armaddr

const (
	// PageShift is the binary log of the small page size.
	PageShift = 12

	// PageSize is the small page size, the granularity of second-level
	// translation.
	PageSize = 1 << PageShift

	// SectionShift is the binary log of the section size.
	SectionShift = 20

	// SectionSize is the section size, the granularity of first-level
	// translation.
	SectionSize = 1 << SectionShift

	// SuperSectionShift is the binary log of the supersection size.
	SuperSectionShift = 24

	// SuperSectionSize is the supersection size.
	SuperSectionSize = 1 << SuperSectionShift
)

const (
	// TranslationTableEntries is the number of first-level descriptors: the
	// 4GB space at 1MB granularity.
	TranslationTableEntries = 1 << (32 - SectionShift)

	// PageTableEntries is the number of second-level descriptors: a 1MB
	// section at 4KB granularity.
	PageTableEntries = 1 << (SectionShift - PageShift)
)

// FromIndices composes a virtual address from a first-level table index, a
// second-level table index and a page offset. ok is false if any component is
// out of range.
func FromIndices(translationIndex, pageIndex int, offset uint32) (VirtualAddress, bool) {
	if translationIndex < 0 || translationIndex >= TranslationTableEntries {
		return 0, false
	}
	if pageIndex < 0 || pageIndex >= PageTableEntries {
		return 0, false
	}
	if offset >= PageSize {
		return 0, false
	}
	va := VirtualAddress(translationIndex) << SectionShift
	va |= VirtualAddress(pageIndex) << PageShift
	va |= VirtualAddress(offset)
	return va, true
}
