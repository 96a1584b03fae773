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

	"github.com/mcdoll/armv7/pkg/bits"
)

// MemoryAttributes captures the access-control and cacheability attributes of
// a mapping in one canonical bit layout, independent of which descriptor type
// will carry them.
//
// The canonical layout is:
//
//	bit 0      PXN   privileged execute never
//	bit 2      B     bufferable
//	bit 3      C     cacheable
//	bit 4      XN    execute never
//	bits 5-8   DOMAIN
//	bits 10-11 AP    access permissions
//	bits 12-14 TEX   type extension
//	bit 15     AP2   access permissions extension (read only)
//	bit 16     S     shareable
//	bit 17     nG    not global
//	bit 19     NS    non-secure
//
// All other bits are reserved and zero. The canonical positions coincide with
// the hardware layout of a Section descriptor; every other descriptor type
// needs the field moves implemented below.
type MemoryAttributes uint32

// Single-bit attribute values. Combine with bitwise or.
const (
	// AttrPXN marks the region privileged-execute-never.
	AttrPXN MemoryAttributes = 1 << 0

	// AttrB marks the region bufferable.
	AttrB MemoryAttributes = 1 << 2

	// AttrC marks the region cacheable.
	AttrC MemoryAttributes = 1 << 3

	// AttrXN marks the region execute-never.
	AttrXN MemoryAttributes = 1 << 4

	// AttrAP2 is the access-permissions extension bit; together with
	// APPrivAccess it yields privileged read-only.
	AttrAP2 MemoryAttributes = 1 << 15

	// AttrS marks the region shareable.
	AttrS MemoryAttributes = 1 << 16

	// AttrNG marks the region not-global (ASID-tagged).
	AttrNG MemoryAttributes = 1 << 17

	// AttrNS marks the region non-secure.
	AttrNS MemoryAttributes = 1 << 19
)

// Access permission (AP) field values.
const (
	// APNoAccess forbids all access.
	APNoAccess MemoryAttributes = 0b00 << apShift

	// APPrivAccess allows privileged access only.
	APPrivAccess MemoryAttributes = 0b01 << apShift

	// APUnprivReadOnly allows unprivileged reads.
	APUnprivReadOnly MemoryAttributes = 0b10 << apShift

	// APFullAccess allows all access.
	APFullAccess MemoryAttributes = 0b11 << apShift
)

const (
	domainShift = 5
	apShift     = 10
	texShift    = 12
)

// AttrDomain returns the attribute value carrying the given 4-bit domain tag.
func AttrDomain(domain uint8) MemoryAttributes {
	return MemoryAttributes(domain&0xf) << domainShift
}

// AttrTEX returns the attribute value carrying the given 3-bit TEX field.
func AttrTEX(tex uint8) MemoryAttributes {
	return MemoryAttributes(tex&0x7) << texShift
}

// Domain extracts the domain tag.
func (a MemoryAttributes) Domain() uint8 {
	return uint8(a>>domainShift) & 0xf
}

// String implements fmt.Stringer.String.
func (a MemoryAttributes) String() string {
	return fmt.Sprintf("MemoryAttributes(%#x)", uint32(a))
}

// AttributesFromTableDescriptor recovers the canonical attributes carried by
// a first-level descriptor. ok is false for an Invalid descriptor, which
// carries none.
func AttributesFromTableDescriptor(d TranslationTableDescriptor) (MemoryAttributes, bool) {
	val := uint32(d)
	switch d.Type() {
	case TranslationTableInvalid:
		return 0, false
	case TranslationTablePage:
		// Domain bits sit at the canonical position already.
		out := val & 0x01e0
		// PXN moves from bit 2 to bit 0.
		out |= bits.MoveField32(val, 1<<2, 2, 0)
		// NS moves from bit 3 to bit 19.
		out |= bits.MoveField32(val, 1<<3, 3, 19)
		return MemoryAttributes(out), true
	case TranslationTableSection:
		// The canonical layout is the section layout.
		return MemoryAttributes(val & 0x000bfdfd), true
	default: // TranslationTableSupersection
		// As for a section, except that the architecture repurposes the
		// domain field, so those bits must read as zero.
		return MemoryAttributes(val & 0x000dfa1d), true
	}
}

// AttributesFromPageDescriptor recovers the canonical attributes carried by a
// second-level descriptor. An Invalid descriptor carries none and decodes to
// zero.
func AttributesFromPageDescriptor(d PageTableDescriptor) MemoryAttributes {
	val := uint32(d)
	switch d.Type() {
	case PageTableInvalid:
		return 0
	case PageTableLargePage:
		// C, B and TEX sit at the canonical positions.
		out := val & 0x700c
		// AP moves from bits 4-5 up to 10-11.
		out |= bits.MoveField32(val, 0x0030, 4, 10)
		// AP2, S and nG move from bits 9-11 up to 15-17.
		out |= bits.MoveField32(val, 0x0e00, 9, 15)
		// XN moves from bit 15 down to bit 4.
		out |= bits.MoveField32(val, 1<<15, 15, 4)
		return MemoryAttributes(out)
	default: // PageTableSmallPage
		// C and B sit at the canonical positions.
		out := val & 0b1100
		// XN moves from bit 0 up to bit 4.
		out |= bits.MoveField32(val, 1<<0, 0, 4)
		// AP, TEX, AP2, S and nG move from bits 4-11 up to 10-17.
		out |= bits.MoveField32(val, 0xff0, 4, 10)
		return MemoryAttributes(out)
	}
}

// toTableDescriptor encodes the attributes into the hardware layout of the
// given first-level descriptor type and stamps the type tag. Only the
// descriptor constructors call this; the descriptors stay ignorant of the
// canonical layout.
func (a MemoryAttributes) toTableDescriptor(tabletype TranslationTableType) TranslationTableDescriptor {
	v := uint32(a)
	switch tabletype {
	case TranslationTableInvalid:
		return 0
	case TranslationTablePage:
		out := uint32(0b01) | v&0x01e0
		// PXN moves from bit 0 to bit 2.
		out |= bits.MoveField32(v, 1<<0, 0, 2)
		// NS moves from bit 19 to bit 3.
		out |= bits.MoveField32(v, 1<<19, 19, 3)
		return TranslationTableDescriptor(out)
	case TranslationTableSection:
		return TranslationTableDescriptor(v | 0b10)
	default: // TranslationTableSupersection
		// Bit 18 distinguishes the supersection; the domain field is
		// architecturally reserved here and encodes as zero, so domain
		// bits are lost (the documented lossy case).
		return TranslationTableDescriptor(0x40002 | v&0xffc1f)
	}
}

// toPageDescriptor is the second-level counterpart of toTableDescriptor.
func (a MemoryAttributes) toPageDescriptor(pagetype PageTableType) PageTableDescriptor {
	v := uint32(a)
	switch pagetype {
	case PageTableInvalid:
		return 0
	case PageTableSmallPage:
		out := uint32(0b10) | v&0b1100
		// XN moves from bit 4 to bit 0.
		out |= bits.MoveField32(v, 1<<4, 4, 0)
		// AP, TEX, AP2, S and nG move from bits 10-17 down to 4-11.
		out |= bits.MoveField32(v, 0x3fc00, 10, 4)
		return PageTableDescriptor(out)
	default: // PageTableLargePage
		// C, B and TEX stay at the canonical positions.
		out := uint32(0b01) | v&0x700c
		// AP moves from bits 10-11 down to 4-5.
		out |= bits.MoveField32(v, 0xc00, 10, 4)
		// AP2, S and nG move from bits 15-17 down to 9-11.
		out |= bits.MoveField32(v, 0x38000, 15, 9)
		// XN moves from bit 4 up to bit 15.
		out |= bits.MoveField32(v, 1<<4, 4, 15)
		return PageTableDescriptor(out)
	}
}
