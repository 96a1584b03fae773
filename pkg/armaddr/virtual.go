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

package armaddr

import (
	"fmt"
	"unsafe"
)

// VirtualAddress is an address in the 32-bit virtual address space.
type VirtualAddress uint32

// Add returns v+length. ok is false if the sum would wrap the 32-bit space.
func (v VirtualAddress) Add(length uint32) (VirtualAddress, bool) {
	end := v + VirtualAddress(length)
	return end, end >= v
}

// Sub returns v-length. ok is false if length exceeds v.
func (v VirtualAddress) Sub(length uint32) (VirtualAddress, bool) {
	return v - VirtualAddress(length), VirtualAddress(length) <= v
}

// Diff returns the distance v-other.
//
// Diff panics if other exceeds v: addresses never underflow in a correctly
// constructed call, so this is a programming error rather than a recoverable
// condition.
func (v VirtualAddress) Diff(other VirtualAddress) uint32 {
	if other > v {
		panic(fmt.Sprintf("virtual address underflow: %#x - %#x", uint32(v), uint32(other)))
	}
	return uint32(v - other)
}

// Or returns v with the given tag bits set.
func (v VirtualAddress) Or(bits uint32) VirtualAddress {
	return v | VirtualAddress(bits)
}

// IsAligned returns true if none of the mask bits are set in v. The mask is
// the set of low bits that must be clear, e.g. 0x3fff for 16KB alignment.
func (v VirtualAddress) IsAligned(mask uint32) bool {
	return uint32(v)&mask == 0
}

// RoundDown returns v rounded down to a multiple of align.
//
// Precondition: align is a power of two.
func (v VirtualAddress) RoundDown(align uint32) VirtualAddress {
	return v &^ VirtualAddress(align-1)
}

// RoundUp returns v rounded up to a multiple of align. ok is false iff
// rounding up wrapped around.
//
// Precondition: align is a power of two.
func (v VirtualAddress) RoundUp(align uint32) (VirtualAddress, bool) {
	end, ok := v.Add(align - 1)
	if !ok {
		return 0, false
	}
	return end.RoundDown(align), true
}

// TranslationIndex returns the index of the first-level descriptor covering v.
func (v VirtualAddress) TranslationIndex() int {
	return int(v >> SectionShift)
}

// PageIndex returns the index of the second-level descriptor covering v
// within its 1MB section.
func (v VirtualAddress) PageIndex() int {
	return int(uint32(v)&(SectionSize-1)) >> PageShift
}

// PageOffset returns the offset of v within its 4KB page.
func (v VirtualAddress) PageOffset() uint32 {
	return uint32(v) & (PageSize - 1)
}

// Pointer reinterprets v as a raw pointer.
//
// Only meaningful when the address space this package describes is the one
// the program runs in, i.e. on a 32-bit target with the MMU mapping in
// effect.
func (v VirtualAddress) Pointer() unsafe.Pointer {
	return unsafe.Pointer(uintptr(v))
}

// VirtualAddressOf returns the virtual address of p.
func VirtualAddressOf(p unsafe.Pointer) VirtualAddress {
	return VirtualAddress(uintptr(p))
}

// String implements fmt.Stringer.String.
func (v VirtualAddress) String() string {
	return fmt.Sprintf("%#010x", uint32(v))
}
