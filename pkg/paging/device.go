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
	"github.com/mcdoll/armv7/pkg/log"
)

// DefaultSectionsPerWindow is the number of 1MB sections DoMapping writes
// into each 16MB device window.
//
// Note the value is 15, not the 16 a full window needs: the top 1MB of each
// window stays unmapped. This reproduces the reference behavior some call
// sites may depend on; use SetSectionsPerWindow(16) to cover whole windows.
const DefaultSectionsPerWindow = 15

// DeviceVmemMapper maps a sparse set of 16MB physical device frames into one
// contiguous virtual region, one 16MB window per frame, in list order. The
// windows are populated with repeated 1MB sections approximating a
// supersection, tagged privileged-access-only and execute-never as device
// MMIO demands.
type DeviceVmemMapper struct {
	base     armaddr.VirtualAddress
	frames   []uint8
	sections int
}

// NewDeviceVmemMapper builds a mapper with its virtual base, which must be
// 16MB-aligned (ErrAlign otherwise), and the physical 16MB frame indices of
// the devices, in the order their windows are laid out.
func NewDeviceVmemMapper(base armaddr.VirtualAddress, frames []uint8) (*DeviceVmemMapper, error) {
	if !base.IsAligned(armaddr.SuperSectionSize - 1) {
		return nil, fmt.Errorf("device region base %v: %w", base, ErrAlign)
	}
	m := &DeviceVmemMapper{
		base:     base,
		frames:   make([]uint8, len(frames)),
		sections: DefaultSectionsPerWindow,
	}
	copy(m.frames, frames)
	return m, nil
}

// SetSectionsPerWindow overrides how many 1MB sections DoMapping writes per
// window, between 1 and 16. See DefaultSectionsPerWindow.
func (m *DeviceVmemMapper) SetSectionsPerWindow(n int) error {
	if n < 1 || n > armaddr.SuperSectionSize/armaddr.SectionSize {
		return fmt.Errorf("%d sections per 16MB window: %w", n, ErrIndex)
	}
	m.sections = n
	return nil
}

// DoMapping populates the first-level table with the device windows. The
// caller is responsible for the barrier sequence before the new mappings are
// first used.
func (m *DeviceVmemMapper) DoMapping(t *TranslationTable) error {
	attrs := APPrivAccess | AttrXN
	w := t.Writer()
	for i, frame := range m.frames {
		window, ok := m.base.Add(uint32(i) << armaddr.SuperSectionShift)
		if !ok {
			return fmt.Errorf("device window %d of %v exceeds the 32-bit space", i, m.base)
		}
		index := window.TranslationIndex()
		for j := 0; j < m.sections; j++ {
			pa := armaddr.PhysicalAddress(uint32(frame)<<armaddr.SuperSectionShift | uint32(j)<<armaddr.SectionShift)
			d, err := NewTranslationTableDescriptor(TranslationTableSection, pa, attrs)
			if err != nil {
				return err
			}
			w.Set(index+j, d)
		}
		log.Debugf("device frame %#02x mapped at %v (%d sections)", frame, window, m.sections)
	}
	return nil
}

// Lookup reverse-maps a physical device address to its virtual address by
// locating its 16MB frame in the mapper's list. ok is false if the frame is
// not mapped by this mapper.
func (m *DeviceVmemMapper) Lookup(pa armaddr.PhysicalAddress) (armaddr.VirtualAddress, bool) {
	frame := pa.SuperSectionFrame()
	for i, f := range m.frames {
		if f == frame {
			va, _ := m.base.Add(uint32(i) << armaddr.SuperSectionShift)
			return va.Or(uint32(pa) & (armaddr.SuperSectionSize - 1)), true
		}
	}
	return 0, false
}
