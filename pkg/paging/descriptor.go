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

// TranslationTableType is the type of a first-level descriptor.
type TranslationTableType uint8

const (
	// TranslationTableInvalid marks an unmapped 1MB region; any access
	// faults.
	TranslationTableInvalid TranslationTableType = iota

	// TranslationTablePage points to a second-level page table.
	TranslationTablePage

	// TranslationTableSection maps 1MB directly.
	TranslationTableSection

	// TranslationTableSupersection maps 16MB directly, as 16 repeated
	// entries.
	TranslationTableSupersection
)

// alignMask returns the low bits that must be clear in a physical address
// carried by a descriptor of this type.
//
// A supersection base is additionally a multiple of 16MB; the 1MB mask here
// is what a single (repeated) entry requires, the 16MB rule binds the
// initiating entry and is the caller's responsibility.
func (t TranslationTableType) alignMask() uint32 {
	switch t {
	case TranslationTablePage:
		return PageTableAlignMask
	case TranslationTableSection, TranslationTableSupersection:
		return armaddr.SectionSize - 1
	default:
		return 0
	}
}

// String implements fmt.Stringer.String.
func (t TranslationTableType) String() string {
	switch t {
	case TranslationTableInvalid:
		return "Invalid"
	case TranslationTablePage:
		return "Page"
	case TranslationTableSection:
		return "Section"
	case TranslationTableSupersection:
		return "Supersection"
	default:
		return fmt.Sprintf("TranslationTableType(%d)", uint8(t))
	}
}

// TranslationTableDescriptor is a first-level descriptor: the 32-bit hardware
// word composed of a physical base address, encoded attribute bits and the
// type tag. The zero value is the canonical invalid descriptor.
type TranslationTableDescriptor uint32

// NewTranslationTableDescriptor composes a first-level descriptor. For the
// Invalid type the address is ignored and the all-zero word returned; for any
// other type addr must satisfy the type's alignment or ErrAlign is returned.
func NewTranslationTableDescriptor(tabletype TranslationTableType, addr armaddr.PhysicalAddress, attributes MemoryAttributes) (TranslationTableDescriptor, error) {
	if tabletype == TranslationTableInvalid {
		return 0, nil
	}
	if !addr.IsAligned(tabletype.alignMask()) {
		return 0, fmt.Errorf("%v descriptor at %v: %w", tabletype, addr, ErrAlign)
	}
	return attributes.toTableDescriptor(tabletype) | TranslationTableDescriptor(addr), nil
}

// Type decodes the descriptor type tag.
func (d TranslationTableDescriptor) Type() TranslationTableType {
	// Bits [1:0] encode
	//	0b00 invalid
	//	0b01 page
	//	0b1x section or supersection,
	// with bit 18 distinguishing the supersection.
	switch uint32(d) & 0b11 {
	case 0b00:
		return TranslationTableInvalid
	case 0b01:
		return TranslationTablePage
	default:
		if uint32(d)&0x40000 != 0 {
			return TranslationTableSupersection
		}
		return TranslationTableSection
	}
}

// Addr recovers the clean physical base address, stripping the attribute and
// tag bits. It fails with ErrInvalidMemory on an Invalid descriptor.
func (d TranslationTableDescriptor) Addr() (armaddr.PhysicalAddress, error) {
	t := d.Type()
	if t == TranslationTableInvalid {
		return 0, fmt.Errorf("first-level descriptor %#08x: %w", uint32(d), ErrInvalidMemory)
	}
	return armaddr.PhysicalAddress(uint32(d) &^ t.alignMask()), nil
}

// String implements fmt.Stringer.String.
func (d TranslationTableDescriptor) String() string {
	return fmt.Sprintf("%v(%#08x)", d.Type(), uint32(d))
}

// PageTableType is the type of a second-level descriptor.
type PageTableType uint8

const (
	// PageTableInvalid marks an unmapped 4KB region; any access faults.
	PageTableInvalid PageTableType = iota

	// PageTableSmallPage maps 4KB.
	PageTableSmallPage

	// PageTableLargePage maps 64KB, as 16 repeated entries.
	PageTableLargePage
)

// alignMask returns the low bits that must be clear in a physical address
// carried by a descriptor of this type.
func (t PageTableType) alignMask() uint32 {
	switch t {
	case PageTableSmallPage:
		return armaddr.PageSize - 1
	case PageTableLargePage:
		return 0xffff
	default:
		return 0
	}
}

// String implements fmt.Stringer.String.
func (t PageTableType) String() string {
	switch t {
	case PageTableInvalid:
		return "Invalid"
	case PageTableSmallPage:
		return "SmallPage"
	case PageTableLargePage:
		return "LargePage"
	default:
		return fmt.Sprintf("PageTableType(%d)", uint8(t))
	}
}

// PageTableDescriptor is a second-level descriptor. The zero value is the
// canonical invalid descriptor.
type PageTableDescriptor uint32

// NewPageTableDescriptor composes a second-level descriptor, following the
// same contract as NewTranslationTableDescriptor.
func NewPageTableDescriptor(pagetype PageTableType, addr armaddr.PhysicalAddress, attributes MemoryAttributes) (PageTableDescriptor, error) {
	if pagetype == PageTableInvalid {
		return 0, nil
	}
	if !addr.IsAligned(pagetype.alignMask()) {
		return 0, fmt.Errorf("%v descriptor at %v: %w", pagetype, addr, ErrAlign)
	}
	return attributes.toPageDescriptor(pagetype) | PageTableDescriptor(addr), nil
}

// Type decodes the descriptor type tag.
func (d PageTableDescriptor) Type() PageTableType {
	// The tag scheme is the mirror of the first level: the hardware
	// defines the two levels independently, and here
	//	0b00 invalid
	//	0b01 large page
	//	0b1x small page.
	switch uint32(d) & 0b11 {
	case 0b00:
		return PageTableInvalid
	case 0b01:
		return PageTableLargePage
	default:
		return PageTableSmallPage
	}
}

// Addr recovers the clean physical base address. It fails with
// ErrInvalidMemory on an Invalid descriptor.
func (d PageTableDescriptor) Addr() (armaddr.PhysicalAddress, error) {
	t := d.Type()
	if t == PageTableInvalid {
		return 0, fmt.Errorf("second-level descriptor %#08x: %w", uint32(d), ErrInvalidMemory)
	}
	return armaddr.PhysicalAddress(uint32(d) &^ t.alignMask()), nil
}

// String implements fmt.Stringer.String.
func (d PageTableDescriptor) String() string {
	return fmt.Sprintf("%v(%#08x)", d.Type(), uint32(d))
}
