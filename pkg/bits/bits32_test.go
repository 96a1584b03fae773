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

package bits

import "testing"

func TestMask32(t *testing.T) {
	if got, want := Mask32(0, 2, 31), uint32(1|1<<2|1<<31); got != want {
		t.Errorf("Mask32(0, 2, 31): got %#x, wanted %#x", got, want)
	}
	if got, want := Mask32(), uint32(0); got != want {
		t.Errorf("Mask32(): got %#x, wanted %#x", got, want)
	}
}

func TestMaskOf32(t *testing.T) {
	for i := 0; i < 32; i++ {
		if got, want := MaskOf32(i), uint32(1)<<uint(i); got != want {
			t.Errorf("MaskOf32(%d): got %#x, wanted %#x", i, got, want)
		}
	}
}

func TestIsOn32(t *testing.T) {
	tcs := []struct {
		mask uint32
		bits uint32
		want bool
	}{
		{0xf0, 0xf0, true},
		{0xff0, 0xf0, true},
		{0x70, 0xf0, false},
		{0xf0, 0, true},
	}
	for _, tc := range tcs {
		if got := IsOn32(tc.mask, tc.bits); got != tc.want {
			t.Errorf("IsOn32(%#x, %#x): got %t, wanted %t", tc.mask, tc.bits, got, tc.want)
		}
	}
}

func TestIsAnyOn32(t *testing.T) {
	tcs := []struct {
		mask uint32
		bits uint32
		want bool
	}{
		{0xf0, 0x10, true},
		{0xf0, 0xf, false},
		{0xf0, 0, false},
	}
	for _, tc := range tcs {
		if got := IsAnyOn32(tc.mask, tc.bits); got != tc.want {
			t.Errorf("IsAnyOn32(%#x, %#x): got %t, wanted %t", tc.mask, tc.bits, got, tc.want)
		}
	}
}

func TestFieldRange32(t *testing.T) {
	if got, want := FieldRange32(4, 2), uint32(0x30); got != want {
		t.Errorf("FieldRange32(4, 2): got %#x, wanted %#x", got, want)
	}
	if got, want := FieldRange32(0, 32), uint32(0xffffffff); got != want {
		t.Errorf("FieldRange32(0, 32): got %#x, wanted %#x", got, want)
	}
}

func TestMoveField32(t *testing.T) {
	tcs := []struct {
		v    uint32
		mask uint32
		from int
		to   int
		want uint32
	}{
		// Two-bit field moved up.
		{0x30, 0x30, 4, 10, 0xc00},
		// Single bit moved down.
		{1 << 15, 1 << 15, 15, 4, 1 << 4},
		// Field in place.
		{0xc, 0xc, 2, 2, 0xc},
		// Bits outside the mask do not leak.
		{0xffffffff, 0x30, 4, 10, 0xc00},
		// A clear field moves to a clear field.
		{0xf, 0x30, 4, 10, 0},
	}
	for _, tc := range tcs {
		if got := MoveField32(tc.v, tc.mask, tc.from, tc.to); got != tc.want {
			t.Errorf("MoveField32(%#x, %#x, %d, %d): got %#x, wanted %#x", tc.v, tc.mask, tc.from, tc.to, got, tc.want)
		}
	}
}
