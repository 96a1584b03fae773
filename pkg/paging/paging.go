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

// Package paging implements the ARMv7-A short-descriptor translation scheme:
// first- and second-level descriptors, the memory-attribute encodings each
// descriptor type mandates, and views over the hardware-walked tables.
//
// The usual flow is to build a MemoryAttributes value, construct a descriptor
// from (type, physical address, attributes), install it into a
// TranslationTable or PageTable at the index covering the virtual region, and
// finally hand the table to the CPU with SetAsTTBR0.
//
// The table layouts here are the wire format the MMU hardware walks: 32-bit
// little-endian words at architecture-mandated bit positions. Nothing in this
// package may change an encoding without breaking real hardware.
package paging

import "github.com/mcdoll/armv7/pkg/armaddr"

const (
	// TranslationTableBytes is the size of a first-level table: 4096
	// 32-bit descriptors, covering 4GB at 1MB granularity.
	TranslationTableBytes = armaddr.TranslationTableEntries * 4

	// TranslationTableAlignMask is the set of low bits that must be clear
	// in a first-level table base (16KB alignment).
	TranslationTableAlignMask = 0x3fff

	// PageTableBytes is the size of a second-level table: 256 32-bit
	// descriptors, covering 1MB at 4KB granularity.
	PageTableBytes = armaddr.PageTableEntries * 4

	// PageTableAlignMask is the set of low bits that must be clear in a
	// second-level table base (1KB alignment).
	PageTableAlignMask = 0x3ff
)
