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
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mcdoll/armv7/pkg/armaddr"
	"github.com/mcdoll/armv7/pkg/memutil"
	"github.com/mcdoll/armv7/pkg/paging"
	"github.com/sirupsen/logrus"
)

// buildCmd implements subcommands.Command for the "build" command.
type buildCmd struct {
	configPath string
	output     string
}

// Name implements subcommands.Command.
func (*buildCmd) Name() string {
	return "build"
}

// Synopsis implements subcommands.Command.
func (*buildCmd) Synopsis() string {
	return "builds a first-level table image from a memory map config"
}

// Usage implements subcommands.Command.
func (*buildCmd) Usage() string {
	return `build -config <memmap.toml> -output <table.img>`
}

// SetFlags implements subcommands.Command.
func (b *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&b.configPath, "config", "", "memory map config file.")
	f.StringVar(&b.output, "output", "", "target to write the table image.")
}

// Execute implements subcommands.Command.Execute.
func (b *buildCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if b.configPath == "" || b.output == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(b.configPath)
	if err != nil {
		logrus.WithError(err).Error("loading config")
		return subcommands.ExitFailure
	}

	image, err := buildImage(cfg)
	if err != nil {
		logrus.WithError(err).Error("building table image")
		return subcommands.ExitFailure
	}

	if err := os.WriteFile(b.output, image, 0644); err != nil {
		logrus.WithError(err).Error("writing table image")
		return subcommands.ExitFailure
	}
	logrus.Infof("wrote %d byte table image to %s", len(image), b.output)
	return subcommands.ExitSuccess
}

// buildImage assembles the little-endian first-level table image described
// by cfg.
func buildImage(cfg *config) ([]byte, error) {
	block, err := memutil.AlignedBlock(paging.TranslationTableBytes, paging.TranslationTableBytes)
	if err != nil {
		return nil, fmt.Errorf("allocating table storage: %w", err)
	}
	defer memutil.AlignedBlockFree(block)

	table, err := paging.NewTranslationTable(block)
	if err != nil {
		return nil, err
	}

	w := table.Writer()
	for i, region := range cfg.Region {
		virt, phys, count, err := region.sections()
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		attrs, err := region.attributes()
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		for s := 0; s < count; s++ {
			off := uint32(s) << armaddr.SectionShift
			pa, ok := phys.Add(off)
			if !ok {
				return nil, fmt.Errorf("region %d wraps the physical space", i)
			}
			d, err := paging.NewTranslationTableDescriptor(paging.TranslationTableSection, pa, attrs)
			if err != nil {
				return nil, fmt.Errorf("region %d: %w", i, err)
			}
			va, ok := virt.Add(off)
			if !ok {
				return nil, fmt.Errorf("region %d wraps the virtual space", i)
			}
			w.Set(va.TranslationIndex(), d)
		}
		logrus.Debugf("region %d: %d sections at %v", i, count, virt)
	}

	if cfg.Devices != nil {
		base, err := parseAddr(cfg.Devices.Base, "device base")
		if err != nil {
			return nil, err
		}
		mapper, err := paging.NewDeviceVmemMapper(armaddr.VirtualAddress(base), cfg.Devices.Frames)
		if err != nil {
			return nil, err
		}
		if n := cfg.Devices.SectionsPerWindow; n != 0 {
			if err := mapper.SetSectionsPerWindow(n); err != nil {
				return nil, err
			}
		}
		if err := mapper.DoMapping(table); err != nil {
			return nil, err
		}
		logrus.Debugf("mapped %d device windows at %s", len(cfg.Devices.Frames), cfg.Devices.Base)
	}

	image := make([]byte, paging.TranslationTableBytes)
	for i := 0; i < armaddr.TranslationTableEntries; i++ {
		binary.LittleEndian.PutUint32(image[i*4:], uint32(table.Entry(i)))
	}
	return image, nil
}
