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

//go:build arm

package cp15

// Hardware implements CPU on a real ARMv7-A processor, one MCR or MRC per
// method. All methods require PL1; executing them at PL0 is an undefined
// instruction trap.
type Hardware struct{}

// TTBR0 implements CPU.TTBR0.
func (Hardware) TTBR0() uint32 {
	return readTTBR0()
}

// SetTTBR0 implements CPU.SetTTBR0.
func (Hardware) SetTTBR0(value uint32) {
	writeTTBR0(value)
}

// SCTLR implements CPU.SCTLR.
func (Hardware) SCTLR() uint32 {
	return readSCTLR()
}

// SetSCTLR implements CPU.SetSCTLR.
func (Hardware) SetSCTLR(value uint32) {
	writeSCTLR(value)
}

// TranslateStage1 implements CPU.TranslateStage1.
func (Hardware) TranslateStage1(va uint32, op TranslateOp) {
	switch op {
	case TranslatePrivRead:
		ats1cpr(va)
	case TranslatePrivWrite:
		ats1cpw(va)
	case TranslateUnprivRead:
		ats1cur(va)
	case TranslateUnprivWrite:
		ats1cuw(va)
	}
}

// PAR implements CPU.PAR.
func (Hardware) PAR() uint32 {
	return readPAR()
}

// Nop implements CPU.Nop.
func (Hardware) Nop() {
	nop()
}

// ISB implements CPU.ISB.
func (Hardware) ISB() {
	isb()
}

// DSB implements CPU.DSB.
func (Hardware) DSB() {
	dsb()
}

func readTTBR0() uint32
func writeTTBR0(value uint32)
func readSCTLR() uint32
func writeSCTLR(value uint32)
func ats1cpr(va uint32)
func ats1cpw(va uint32)
func ats1cur(va uint32)
func ats1cuw(va uint32)
func readPAR() uint32
func nop()
func isb()
func dsb()
