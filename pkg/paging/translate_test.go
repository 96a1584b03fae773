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
	"github.com/mcdoll/armv7/pkg/cp15"
)

func TestTranslatePriv(t *testing.T) {
	f := cp15.NewFake()
	f.MapPage(0x00080000, 0x80200000)

	pa, err := TranslatePriv(f, 0x00080abc)
	if err != nil {
		t.Fatalf("TranslatePriv: %v", err)
	}
	// The frame comes from PAR, the page offset from the input address.
	if got, want := pa, armaddr.PhysicalAddress(0x80200abc); got != want {
		t.Errorf("TranslatePriv: got %v, wanted %v", got, want)
	}
	if got, want := f.LastTranslateVA, uint32(0x00080abc); got != want {
		t.Errorf("translated address: got %#x, wanted %#x", got, want)
	}
	if got, want := f.LastTranslateOp, cp15.TranslatePrivRead; got != want {
		t.Errorf("translate op: got %v, wanted %v", got, want)
	}
}

func TestTranslatePrivFault(t *testing.T) {
	f := cp15.NewFake()

	_, err := TranslatePriv(f, 0x00080000)
	if !errors.Is(err, ErrTranslation) {
		t.Fatalf("TranslatePriv on an unmapped address: got %v, wanted ErrTranslation", err)
	}
}

func TestCurrentTTBR0MasksControlBits(t *testing.T) {
	f := cp15.NewFake()
	// Low TTBR0 bits hold walk attributes, not address bits.
	f.SetTTBR0(0x4000004a)
	if got, want := CurrentTTBR0(f), armaddr.PhysicalAddress(0x40000000); got != want {
		t.Errorf("CurrentTTBR0: got %v, wanted %v", got, want)
	}
}
