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

package cp15

// Fake implements CPU with plain process memory instead of coprocessor
// registers. It exposes the same two-register address-translation protocol as
// the hardware: a TranslateStage1 request latches a result that the next PAR
// read returns.
//
// Fake is used by tests and by host tools that build table images without a
// target attached. It is not safe for concurrent use.
type Fake struct {
	ttbr0 uint32
	sctlr uint32
	par   uint32

	// pages maps 4KB-aligned virtual pages to 4KB-aligned physical
	// frames for the translation operations.
	pages map[uint32]uint32

	// TTBR0Writes records every value written to TTBR0, in order.
	TTBR0Writes []uint32

	// NopCount, ISBCount and DSBCount count executed barriers and no-ops.
	NopCount int
	ISBCount int
	DSBCount int

	// LastTranslateVA and LastTranslateOp record the most recent
	// translation request.
	LastTranslateVA uint32
	LastTranslateOp TranslateOp
}

// NewFake returns a Fake with no translations installed; every lookup
// faults until MapPage is called.
func NewFake() *Fake {
	return &Fake{pages: make(map[uint32]uint32)}
}

// MapPage installs a translation for the 4KB page containing va.
func (f *Fake) MapPage(va, pa uint32) {
	f.pages[va&PARFrameMask] = pa & PARFrameMask
}

// MapIdentity installs identity translations for size bytes starting at the
// page containing start. The range may touch the top of the 32-bit space.
func (f *Fake) MapIdentity(start, size uint32) {
	first := start & PARFrameMask
	count := (uint64(start-first) + uint64(size) + 0xfff) >> 12
	for i := uint64(0); i < count; i++ {
		page := first + uint32(i)<<12
		f.pages[page] = page
	}
}

// UnmapPage removes the translation for the page containing va.
func (f *Fake) UnmapPage(va uint32) {
	delete(f.pages, va&PARFrameMask)
}

// TTBR0 implements CPU.TTBR0.
func (f *Fake) TTBR0() uint32 {
	return f.ttbr0
}

// SetTTBR0 implements CPU.SetTTBR0.
func (f *Fake) SetTTBR0(value uint32) {
	f.ttbr0 = value
	f.TTBR0Writes = append(f.TTBR0Writes, value)
}

// SCTLR implements CPU.SCTLR.
func (f *Fake) SCTLR() uint32 {
	return f.sctlr
}

// SetSCTLR implements CPU.SetSCTLR.
func (f *Fake) SetSCTLR(value uint32) {
	f.sctlr = value
}

// TranslateStage1 implements CPU.TranslateStage1.
func (f *Fake) TranslateStage1(va uint32, op TranslateOp) {
	f.LastTranslateVA = va
	f.LastTranslateOp = op
	if frame, ok := f.pages[va&PARFrameMask]; ok {
		f.par = frame
		return
	}
	// Translation abort: fault bit plus a fault status code in the way
	// the hardware reports a first-level translation fault.
	f.par = PARFault | 0x5<<1
}

// PAR implements CPU.PAR.
func (f *Fake) PAR() uint32 {
	return f.par
}

// Nop implements CPU.Nop.
func (f *Fake) Nop() {
	f.NopCount++
}

// ISB implements CPU.ISB.
func (f *Fake) ISB() {
	f.ISBCount++
}

// DSB implements CPU.DSB.
func (f *Fake) DSB() {
	f.DSBCount++
}
