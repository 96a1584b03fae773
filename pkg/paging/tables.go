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
	"github.com/mcdoll/armv7/pkg/cp15"
	"github.com/mcdoll/armv7/pkg/log"
)

// translationTableMemory is the backing layout the MMU walks: 4096
// consecutive first-level descriptors.
type translationTableMemory struct {
	entries [armaddr.TranslationTableEntries]TranslationTableDescriptor
}

// TranslationTable is a view over a first-level table.
//
// The view does not own the backing memory's lifetime: the storage is
// supplied by the caller, 16KB-aligned and at least 16KB, typically a
// statically placed block on a target or a memutil.AlignedBlock on a host.
// Two views aliasing the same memory mutating concurrently is undefined.
type TranslationTable struct {
	mem *translationTableMemory

	// base is the table's own virtual address, the address hardware
	// translation must resolve when the table is installed.
	base armaddr.VirtualAddress
}

// Base returns the table's own virtual address.
func (t *TranslationTable) Base() armaddr.VirtualAddress {
	return t.base
}

// Entry returns the descriptor at index. Reading is always safe; index
// must be in [0, 4096).
func (t *TranslationTable) Entry(index int) TranslationTableDescriptor {
	return t.mem.entries[index]
}

// Writer returns the mutation capability for the table.
//
// The caller attests that every descriptor it installs keeps the table
// internally consistent and does not remap memory the running program relies
// on: the hardware walks this memory directly, so a bad entry is not an API
// error but a crash or silent corruption at the next dependent access.
func (t *TranslationTable) Writer() TranslationTableWriter {
	return TranslationTableWriter{t}
}

// TranslationTableWriter mutates a TranslationTable under the contract
// stated on Writer.
type TranslationTableWriter struct {
	t *TranslationTable
}

// Set installs d at index. Index must be in [0, 4096).
func (w TranslationTableWriter) Set(index int, d TranslationTableDescriptor) {
	w.t.mem.entries[index] = d
}

// SetAsTTBR0 installs the table as the active first-level table.
//
// The table's own virtual address is resolved to a physical address in
// hardware, checked for 16KB alignment and written to TTBR0. The three
// no-ops afterwards are the architecturally mandated pipeline
// synchronization: without them an access could be issued against the old
// table. They are a hard ordering rule, not an optimization.
func (t *TranslationTable) SetAsTTBR0(c cp15.CPU) error {
	pa, err := TranslatePriv(c, t.base)
	if err != nil {
		return fmt.Errorf("locating table %v: %w", t.base, err)
	}
	if !pa.IsAligned(TranslationTableAlignMask) {
		return fmt.Errorf("table base %v: %w", pa, ErrAlign)
	}
	log.Debugf("installing translation table %v (phys %v) as TTBR0", t.base, pa)
	c.SetTTBR0(uint32(pa))
	c.Nop()
	c.Nop()
	c.Nop()
	return nil
}

// pageTableMemory is the backing layout of a second-level table: 256
// consecutive descriptors.
type pageTableMemory struct {
	entries [armaddr.PageTableEntries]PageTableDescriptor
}

// PageTable is a view over a second-level table covering 1MB at 4KB
// granularity. To be reachable by hardware it must be referenced by exactly
// one valid Page-type entry in a first-level table; Link establishes that
// reference.
type PageTable struct {
	mem  *pageTableMemory
	base armaddr.VirtualAddress

	// descriptor is the first-level entry installed by Link, zero before.
	descriptor TranslationTableDescriptor
}

// Base returns the table's own virtual address.
func (p *PageTable) Base() armaddr.VirtualAddress {
	return p.base
}

// Descriptor returns the first-level entry referencing this table, or the
// invalid descriptor if the table has not been linked.
func (p *PageTable) Descriptor() TranslationTableDescriptor {
	return p.descriptor
}

// Entry returns the descriptor at index. Index must be in [0, 256).
func (p *PageTable) Entry(index int) PageTableDescriptor {
	return p.mem.entries[index]
}

// Writer returns the mutation capability for the table, under the same
// caller contract as TranslationTable.Writer.
func (p *PageTable) Writer() PageTableWriter {
	return PageTableWriter{p}
}

// PageTableWriter mutates a PageTable.
type PageTableWriter struct {
	p *PageTable
}

// Set installs d at index. Index must be in [0, 256).
func (w PageTableWriter) Set(index int, d PageTableDescriptor) {
	w.p.mem.entries[index] = d
}

// Link resolves the table's physical address in hardware, builds the
// Page-type first-level descriptor carrying attributes and installs it into
// parent at index. The table becomes reachable by the MMU once parent is
// active.
func (p *PageTable) Link(c cp15.CPU, attributes MemoryAttributes, parent *TranslationTable, index int) (TranslationTableDescriptor, error) {
	pa, err := TranslatePriv(c, p.base)
	if err != nil {
		return 0, fmt.Errorf("locating page table %v: %w", p.base, err)
	}
	d, err := NewTranslationTableDescriptor(TranslationTablePage, pa, attributes)
	if err != nil {
		return 0, err
	}
	parent.Writer().Set(index, d)
	p.descriptor = d
	return d, nil
}
