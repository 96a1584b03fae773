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

// PhysicalAddress is an address in the 32-bit physical address space.
type PhysicalAddress uint32

// Add returns p+length. ok is false if the sum would wrap the 32-bit space.
func (p PhysicalAddress) Add(length uint32) (PhysicalAddress, bool) {
	end := p + PhysicalAddress(length)
	return end, end >= p
}

// Sub returns p-length. ok is false if length exceeds p.
func (p PhysicalAddress) Sub(length uint32) (PhysicalAddress, bool) {
	return p - PhysicalAddress(length), PhysicalAddress(length) <= p
}

// Diff returns the distance p-other.
//
// Diff panics if other exceeds p; see VirtualAddress.Diff.
func (p PhysicalAddress) Diff(other PhysicalAddress) uint32 {
	if other > p {
		panic(fmt.Sprintf("physical address underflow: %#x - %#x", uint32(p), uint32(other)))
	}
	return uint32(p - other)
}

// Or returns p with the given tag bits set.
func (p PhysicalAddress) Or(bits uint32) PhysicalAddress {
	return p | PhysicalAddress(bits)
}

// IsAligned returns true if none of the mask bits are set in p.
func (p PhysicalAddress) IsAligned(mask uint32) bool {
	return uint32(p)&mask == 0
}

// RoundDown returns p rounded down to a multiple of align.
//
// Precondition: align is a power of two.
func (p PhysicalAddress) RoundDown(align uint32) PhysicalAddress {
	return p &^ PhysicalAddress(align-1)
}

// RoundUp returns p rounded up to a multiple of align. ok is false iff
// rounding up wrapped around.
//
// Precondition: align is a power of two.
func (p PhysicalAddress) RoundUp(align uint32) (PhysicalAddress, bool) {
	end, ok := p.Add(align - 1)
	if !ok {
		return 0, false
	}
	return end.RoundDown(align), true
}

// SuperSectionFrame returns the index of the 16MB frame containing p.
func (p PhysicalAddress) SuperSectionFrame() uint8 {
	return uint8(p >> SuperSectionShift)
}

// Pointer reinterprets p as a raw pointer. Only meaningful on a 32-bit
// target with an identity mapping covering p.
func (p PhysicalAddress) Pointer() unsafe.Pointer {
	return unsafe.Pointer(uintptr(p))
}

// PhysicalAddressOf returns the physical address of ptr under an identity
// mapping.
func PhysicalAddressOf(ptr unsafe.Pointer) PhysicalAddress {
	return PhysicalAddress(uintptr(ptr))
}

// String implements fmt.Stringer.String.
func (p PhysicalAddress) String() string {
	return fmt.Sprintf("%#010x", uint32(p))
}
