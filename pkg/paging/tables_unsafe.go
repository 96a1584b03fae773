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
	"unsafe"

	"github.com/mcdoll/armv7/pkg/armaddr"
)

// TranslationTableAt returns a view over the first-level table residing at
// va in the running address space.
//
// The caller must guarantee that va maps 16KB of valid table memory; the
// view aliases it directly. Only meaningful on a 32-bit target.
func TranslationTableAt(va armaddr.VirtualAddress) (*TranslationTable, error) {
	if !va.IsAligned(TranslationTableAlignMask) {
		return nil, fmt.Errorf("translation table at %v: %w", va, ErrAlign)
	}
	return &TranslationTable{
		mem:  (*translationTableMemory)(va.Pointer()),
		base: va,
	}, nil
}

// NewTranslationTable returns a view over a caller-supplied buffer, for
// building table images on a host. The buffer must be at least 16KB and its
// base 16KB-aligned (see memutil.AlignedBlock); anything less is ErrAlign.
//
// The table's virtual address is the buffer's own address, so translations
// for it must be installed in whatever cp15.CPU the image is built against.
func NewTranslationTable(mem []byte) (*TranslationTable, error) {
	if len(mem) < TranslationTableBytes {
		return nil, fmt.Errorf("translation table buffer of %d bytes: %w", len(mem), ErrAlign)
	}
	ptr := unsafe.Pointer(unsafe.SliceData(mem))
	if uintptr(ptr)&TranslationTableAlignMask != 0 {
		return nil, fmt.Errorf("translation table buffer at %#x: %w", uintptr(ptr), ErrAlign)
	}
	return &TranslationTable{
		mem:  (*translationTableMemory)(ptr),
		base: armaddr.VirtualAddressOf(ptr),
	}, nil
}

// PageTableAt returns a view over the second-level table residing at va in
// the running address space, under the same caller contract as
// TranslationTableAt.
func PageTableAt(va armaddr.VirtualAddress) (*PageTable, error) {
	if !va.IsAligned(PageTableAlignMask) {
		return nil, fmt.Errorf("page table at %v: %w", va, ErrAlign)
	}
	return &PageTable{
		mem:  (*pageTableMemory)(va.Pointer()),
		base: va,
	}, nil
}

// NewPageTable returns a view over a caller-supplied buffer of at least 1KB
// with a 1KB-aligned base, for building table images on a host.
func NewPageTable(mem []byte) (*PageTable, error) {
	if len(mem) < PageTableBytes {
		return nil, fmt.Errorf("page table buffer of %d bytes: %w", len(mem), ErrAlign)
	}
	ptr := unsafe.Pointer(unsafe.SliceData(mem))
	if uintptr(ptr)&PageTableAlignMask != 0 {
		return nil, fmt.Errorf("page table buffer at %#x: %w", uintptr(ptr), ErrAlign)
	}
	return &PageTable{
		mem:  (*pageTableMemory)(ptr),
		base: armaddr.VirtualAddressOf(ptr),
	}, nil
}
