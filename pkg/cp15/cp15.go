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

// Package cp15 describes the system control coprocessor operations consumed
// by the paging code.
//
// The actual MCR/MRC instruction wrappers are trivial, fixed-instruction
// primitives supplied by the runtime environment; this package only defines
// the contract and a Fake for host-side use. Modeling the registers behind an
// interface also keeps the single piece of global hardware state, the active
// translation table base, an explicit value rather than ambient mutation.
package cp15

// TranslateOp selects one of the four stage 1 address translation operations.
type TranslateOp uint8

const (
	// TranslatePrivRead is ATS1CPR: stage 1, current state, PL1 read.
	TranslatePrivRead TranslateOp = iota

	// TranslatePrivWrite is ATS1CPW.
	TranslatePrivWrite

	// TranslateUnprivRead is ATS1CUR.
	TranslateUnprivRead

	// TranslateUnprivWrite is ATS1CUW.
	TranslateUnprivWrite
)

// SCTLR bit assignments.
const (
	// SCTLRMMUEnable enables the MMU.
	SCTLRMMUEnable = 1 << 0

	// SCTLRCacheEnable enables the data cache.
	SCTLRCacheEnable = 1 << 2

	// SCTLRInstrEnable enables the instruction cache.
	SCTLRInstrEnable = 1 << 12

	// SCTLRVectorHigh places the exception vectors at 0xffff0000 instead
	// of 0x00000000.
	SCTLRVectorHigh = 1 << 13

	// SCTLRAlignCheck enables alignment fault checking.
	SCTLRAlignCheck = 1 << 22
)

// PAR bit assignments.
const (
	// PARFault indicates that the last translation operation aborted. The
	// remaining bits then hold fault status rather than a frame.
	PARFault = 1 << 0

	// PARFrameMask selects the 4KB physical frame from a successful
	// translation result.
	PARFrameMask = 0xfffff000
)

// TTBRBaseMask selects the table base address held in TTBR0/TTBR1; the low
// bits hold walk attributes.
const TTBRBaseMask = 0xffffc000

// CPU provides access to the coprocessor registers the paging code reads and
// writes. Implementations are register handles in the sense of the ARM
// system control coprocessor: every method maps onto a single MCR or MRC.
type CPU interface {
	// TTBR0 reads the translation table base register 0.
	TTBR0() uint32

	// SetTTBR0 writes the translation table base register 0. It performs
	// only the register write; the architecturally required pipeline
	// synchronization afterwards is the caller's responsibility.
	SetTTBR0(value uint32)

	// SCTLR reads the system control register.
	SCTLR() uint32

	// SetSCTLR writes the system control register.
	SetSCTLR(value uint32)

	// TranslateStage1 writes va to the translation-request register of
	// the given stage 1 operation. The result, a frame or a fault status,
	// becomes readable through PAR.
	TranslateStage1(va uint32, op TranslateOp)

	// PAR reads the physical address register holding the result of the
	// last TranslateStage1.
	PAR() uint32

	// Nop executes a pipeline no-op.
	Nop()

	// ISB executes an instruction synchronization barrier.
	ISB()

	// DSB executes a data synchronization barrier.
	DSB()
}

// VectorsHigh returns true if the exception vector table is mapped at the
// high address.
func VectorsHigh(c CPU) bool {
	return c.SCTLR()&SCTLRVectorHigh != 0
}
