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
)

// TranslatePriv translates a virtual address to a physical address using the
// privileged-read stage 1 address translation operation.
//
// This is not pure computation: the request register write and the PAR read
// is a real instruction pair, and the result reflects whatever tables the
// MMU is walking at that moment. A fault reported in PAR surfaces as
// ErrTranslation.
func TranslatePriv(c cp15.CPU, va armaddr.VirtualAddress) (armaddr.PhysicalAddress, error) {
	c.TranslateStage1(uint32(va), cp15.TranslatePrivRead)
	par := c.PAR()
	if par&cp15.PARFault != 0 {
		return 0, fmt.Errorf("stage 1 translation of %v (PAR %#08x): %w", va, par, ErrTranslation)
	}
	return armaddr.PhysicalAddress(par&cp15.PARFrameMask | va.PageOffset()), nil
}

// CurrentTTBR0 returns the physical base address of the first-level table
// the CPU is currently walking.
func CurrentTTBR0(c cp15.CPU) armaddr.PhysicalAddress {
	return armaddr.PhysicalAddress(c.TTBR0() & cp15.TTBRBaseMask)
}
