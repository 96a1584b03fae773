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

func TestOffsetMappingConvert(t *testing.T) {
	m, err := NewOffsetMapping(0x80000000, 0x0, 0x10000000)
	if err != nil {
		t.Fatalf("NewOffsetMapping: %v", err)
	}
	pa, err := m.ConvertVirt(0x80001000)
	if err != nil {
		t.Fatalf("ConvertVirt: %v", err)
	}
	if got, want := pa, armaddr.PhysicalAddress(0x1000); got != want {
		t.Errorf("ConvertVirt: got %v, wanted %v", got, want)
	}
	va, err := m.ConvertPhys(0x1000)
	if err != nil {
		t.Fatalf("ConvertPhys: %v", err)
	}
	if got, want := va, armaddr.VirtualAddress(0x80001000); got != want {
		t.Errorf("ConvertPhys: got %v, wanted %v", got, want)
	}
}

// Both windows are half-open: the start is in range, the address one past
// the end is not.
func TestOffsetMappingBounds(t *testing.T) {
	m, err := NewOffsetMapping(0x80000000, 0x40000000, 0x10000000)
	if err != nil {
		t.Fatalf("NewOffsetMapping: %v", err)
	}
	tcs := []struct {
		va   armaddr.VirtualAddress
		want bool
	}{
		{0x80000000, true},
		{0x8fffffff, true},
		{0x90000000, false},
		{0x7fffffff, false},
		{0, false},
	}
	for _, tc := range tcs {
		if got := m.VirtInRange(tc.va); got != tc.want {
			t.Errorf("VirtInRange(%v): got %t, wanted %t", tc.va, got, tc.want)
		}
	}

	ptcs := []struct {
		pa   armaddr.PhysicalAddress
		want bool
	}{
		{0x40000000, true},
		{0x4fffffff, true},
		{0x50000000, false},
		{0x3fffffff, false},
	}
	for _, tc := range ptcs {
		if got := m.PhysInRange(tc.pa); got != tc.want {
			t.Errorf("PhysInRange(%v): got %t, wanted %t", tc.pa, got, tc.want)
		}
	}
}

func TestOffsetMappingOutOfRange(t *testing.T) {
	m, err := NewOffsetMapping(0x80000000, 0x40000000, 0x10000000)
	if err != nil {
		t.Fatalf("NewOffsetMapping: %v", err)
	}
	if _, err := m.ConvertVirt(0x90000000); !errors.Is(err, ErrNotInRange) {
		t.Errorf("ConvertVirt past the end: got %v, wanted ErrNotInRange", err)
	}
	if _, err := m.ConvertVirt(0x7ff00000); !errors.Is(err, ErrNotInRange) {
		t.Errorf("ConvertVirt below the start: got %v, wanted ErrNotInRange", err)
	}
	if _, err := m.ConvertPhys(0x50000000); !errors.Is(err, ErrNotInRange) {
		t.Errorf("ConvertPhys past the end: got %v, wanted ErrNotInRange", err)
	}
}

// Converting there and back is the identity on every address in the window.
func TestOffsetMappingRoundTrip(t *testing.T) {
	m, err := NewOffsetMapping(0xc0000000, 0x20000000, 0x01000000)
	if err != nil {
		t.Fatalf("NewOffsetMapping: %v", err)
	}
	vas := []armaddr.VirtualAddress{0xc0000000, 0xc0000001, 0xc0123456, 0xc0ffffff}
	for _, va := range vas {
		pa, err := m.ConvertVirt(va)
		if err != nil {
			t.Fatalf("ConvertVirt(%v): %v", va, err)
		}
		back, err := m.ConvertPhys(pa)
		if err != nil {
			t.Fatalf("ConvertPhys(%v): %v", pa, err)
		}
		if back != va {
			t.Errorf("round trip of %v: got %v via %v", va, back, pa)
		}
	}
}

// The window may reach the very top of the 32-bit space, but not wrap it.
func TestOffsetMappingValidation(t *testing.T) {
	if _, err := NewOffsetMapping(0x80000000, 0, 0); err == nil {
		t.Errorf("size 0: got nil error")
	}
	if _, err := NewOffsetMapping(0xfffff000, 0, 0x2000); err == nil {
		t.Errorf("wrapping virtual window: got nil error")
	}
	if _, err := NewOffsetMapping(0, 0xfffff000, 0x2000); err == nil {
		t.Errorf("wrapping physical window: got nil error")
	}
	if _, err := NewOffsetMapping(0xfffff000, 0xfffff000, 0x1000); err != nil {
		t.Errorf("window ending at 4GB: got %v", err)
	}
}
