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
	"errors"
	"testing"

	"github.com/mcdoll/armv7/pkg/armaddr"
)

func TestSectionDescriptor(t *testing.T) {
	d, err := NewTranslationTableDescriptor(TranslationTableSection, 0x80200000, APPrivAccess)
	if err != nil {
		t.Fatalf("NewTranslationTableDescriptor: %v", err)
	}
	if got, want := d.Type(), TranslationTableSection; got != want {
		t.Errorf("Type: got %v, wanted %v", got, want)
	}
	addr, err := d.Addr()
	if err != nil {
		t.Fatalf("Addr: %v", err)
	}
	if got, want := addr, armaddr.PhysicalAddress(0x80200000); got != want {
		t.Errorf("Addr: got %v, wanted %v", got, want)
	}
}

func TestTableDescriptorMisaligned(t *testing.T) {
	tcs := []struct {
		tabletype TranslationTableType
		addr      armaddr.PhysicalAddress
	}{
		{TranslationTableSection, 0x80200001},
		{TranslationTableSection, 0x80210000},
		{TranslationTableSupersection, 0x3f080000},
		{TranslationTablePage, 0x80004401},
		{TranslationTablePage, 0x80004200},
	}
	for _, tc := range tcs {
		d, err := NewTranslationTableDescriptor(tc.tabletype, tc.addr, APPrivAccess)
		if !errors.Is(err, ErrAlign) {
			t.Errorf("%v at %v: got (%v, %v), wanted ErrAlign", tc.tabletype, tc.addr, d, err)
		}
	}
}

func TestPageDescriptorMisaligned(t *testing.T) {
	tcs := []struct {
		pagetype PageTableType
		addr     armaddr.PhysicalAddress
	}{
		{PageTableSmallPage, 0x80201001},
		{PageTableSmallPage, 0x80200800},
		{PageTableLargePage, 0x80211000},
	}
	for _, tc := range tcs {
		d, err := NewPageTableDescriptor(tc.pagetype, tc.addr, APPrivAccess)
		if !errors.Is(err, ErrAlign) {
			t.Errorf("%v at %v: got (%v, %v), wanted ErrAlign", tc.pagetype, tc.addr, d, err)
		}
	}
}

func TestInvalidDescriptor(t *testing.T) {
	// The address and attributes are ignored; the all-zero word results.
	d, err := NewTranslationTableDescriptor(TranslationTableInvalid, 0xdeadbeef, APFullAccess)
	if err != nil || d != 0 {
		t.Fatalf("invalid descriptor: got (%#x, %v), wanted (0, nil)", uint32(d), err)
	}
	if got, want := d.Type(), TranslationTableInvalid; got != want {
		t.Errorf("Type: got %v, wanted %v", got, want)
	}
	if _, err := d.Addr(); !errors.Is(err, ErrInvalidMemory) {
		t.Errorf("Addr on invalid: got %v, wanted ErrInvalidMemory", err)
	}

	p, err := NewPageTableDescriptor(PageTableInvalid, 0xdeadbeef, APFullAccess)
	if err != nil || p != 0 {
		t.Fatalf("invalid page descriptor: got (%#x, %v), wanted (0, nil)", uint32(p), err)
	}
	if _, err := p.Addr(); !errors.Is(err, ErrInvalidMemory) {
		t.Errorf("Addr on invalid: got %v, wanted ErrInvalidMemory", err)
	}
}

// The type tag schemes of the two levels are mirrored: 0b01 selects the
// table-pointer/large variant at the first level but the large page at the
// second, and 0b1x the directly-mapping variant at both.
func TestTypeTags(t *testing.T) {
	tcs := []struct {
		raw  uint32
		want TranslationTableType
	}{
		{0x00000000, TranslationTableInvalid},
		{0x80004401, TranslationTablePage},
		{0x80200402, TranslationTableSection},
		{0x80200403, TranslationTableSection},
		{0x3f040402, TranslationTableSupersection},
	}
	for _, tc := range tcs {
		if got := TranslationTableDescriptor(tc.raw).Type(); got != tc.want {
			t.Errorf("Type(%#08x): got %v, wanted %v", tc.raw, got, tc.want)
		}
	}

	ptcs := []struct {
		raw  uint32
		want PageTableType
	}{
		{0x00000000, PageTableInvalid},
		{0x80210031, PageTableLargePage},
		{0x80201032, PageTableSmallPage},
		{0x80201033, PageTableSmallPage},
	}
	for _, tc := range ptcs {
		if got := PageTableDescriptor(tc.raw).Type(); got != tc.want {
			t.Errorf("Type(%#08x): got %v, wanted %v", tc.raw, got, tc.want)
		}
	}
}

// Addr strips the attribute and tag bits of the descriptor, whatever they
// are.
func TestDescriptorAddrStripsAttributes(t *testing.T) {
	d, err := NewTranslationTableDescriptor(TranslationTableSection, 0x80200000, APFullAccess|AttrXN|AttrC|AttrB|AttrDomain(9)|AttrNS)
	if err != nil {
		t.Fatalf("NewTranslationTableDescriptor: %v", err)
	}
	addr, err := d.Addr()
	if err != nil {
		t.Fatalf("Addr: %v", err)
	}
	if got, want := addr, armaddr.PhysicalAddress(0x80200000); got != want {
		t.Errorf("Addr: got %v, wanted %v", got, want)
	}

	p, err := NewPageTableDescriptor(PageTableSmallPage, 0x80201000, APFullAccess|AttrXN|AttrTEX(7)|AttrS|AttrNG)
	if err != nil {
		t.Fatalf("NewPageTableDescriptor: %v", err)
	}
	paddr, err := p.Addr()
	if err != nil {
		t.Fatalf("Addr: %v", err)
	}
	if got, want := paddr, armaddr.PhysicalAddress(0x80201000); got != want {
		t.Errorf("Addr: got %v, wanted %v", got, want)
	}
}

func TestDescriptorString(t *testing.T) {
	d, err := NewTranslationTableDescriptor(TranslationTableSection, 0x80200000, APPrivAccess)
	if err != nil {
		t.Fatalf("NewTranslationTableDescriptor: %v", err)
	}
	if got, want := d.String(), "Section(0x80200402)"; got != want {
		t.Errorf("String: got %q, wanted %q", got, want)
	}
}
