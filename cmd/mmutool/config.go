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

package main

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/mcdoll/armv7/pkg/armaddr"
	"github.com/mcdoll/armv7/pkg/paging"
)

// config describes a memory map to assemble into a table image.
type config struct {
	// Region lists linear section mappings.
	Region []regionConfig `toml:"region"`

	// Devices optionally describes MMIO windows.
	Devices *devicesConfig `toml:"devices"`
}

// regionConfig is one linear window of 1MB sections. Addresses and sizes are
// strings so the usual hex notation works in the file.
type regionConfig struct {
	Virtual  string `toml:"virtual"`
	Physical string `toml:"physical"`
	Size     string `toml:"size"`
	Access   string `toml:"access"`
	Execute  bool   `toml:"execute"`
	Cache    bool   `toml:"cache"`
	Buffer   bool   `toml:"buffer"`
	Domain   uint8  `toml:"domain"`
}

// devicesConfig describes the sparse MMIO windows.
type devicesConfig struct {
	Base              string  `toml:"base"`
	Frames            []uint8 `toml:"frames"`
	SectionsPerWindow int     `toml:"sections_per_window"`
}

// loadConfig loads a memory map from the config file.
func loadConfig(path string) (*config, error) {
	var c config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &c, nil
}

func parseAddr(s, what string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", what, s, err)
	}
	return uint32(v), nil
}

// attributes converts the named fields of a region into the canonical
// attribute value.
func (r *regionConfig) attributes() (paging.MemoryAttributes, error) {
	var attrs paging.MemoryAttributes
	switch r.Access {
	case "", "priv":
		attrs |= paging.APPrivAccess
	case "none":
		attrs |= paging.APNoAccess
	case "priv-ro":
		attrs |= paging.APPrivAccess | paging.AttrAP2
	case "user-ro":
		attrs |= paging.APUnprivReadOnly
	case "full":
		attrs |= paging.APFullAccess
	default:
		return 0, fmt.Errorf("unknown access mode %q", r.Access)
	}
	if !r.Execute {
		attrs |= paging.AttrXN
	}
	if r.Cache {
		attrs |= paging.AttrC
	}
	if r.Buffer {
		attrs |= paging.AttrB
	}
	attrs |= paging.AttrDomain(r.Domain)
	return attrs, nil
}

// sections expands the region into (virtual, physical) section pairs.
func (r *regionConfig) sections() (virt armaddr.VirtualAddress, phys armaddr.PhysicalAddress, count int, err error) {
	v, err := parseAddr(r.Virtual, "virtual address")
	if err != nil {
		return 0, 0, 0, err
	}
	p, err := parseAddr(r.Physical, "physical address")
	if err != nil {
		return 0, 0, 0, err
	}
	size, err := parseAddr(r.Size, "size")
	if err != nil {
		return 0, 0, 0, err
	}
	const sectionMask = armaddr.SectionSize - 1
	if v&sectionMask != 0 || p&sectionMask != 0 || size&sectionMask != 0 || size == 0 {
		return 0, 0, 0, fmt.Errorf("region %s+%s is not 1MB granular", r.Virtual, r.Size)
	}
	return armaddr.VirtualAddress(v), armaddr.PhysicalAddress(p), int(size >> armaddr.SectionShift), nil
}
