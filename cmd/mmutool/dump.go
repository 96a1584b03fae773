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
	"github.com/mcdoll/armv7/pkg/paging"
	"github.com/sirupsen/logrus"
)

// dumpCmd implements subcommands.Command for the "dump" command.
type dumpCmd struct {
	all bool
}

// Name implements subcommands.Command.
func (*dumpCmd) Name() string {
	return "dump"
}

// Synopsis implements subcommands.Command.
func (*dumpCmd) Synopsis() string {
	return "lists the entries of a table image"
}

// Usage implements subcommands.Command.
func (*dumpCmd) Usage() string {
	return `dump [-all] <table.img>`
}

// SetFlags implements subcommands.Command.
func (d *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&d.all, "all", false, "also list invalid entries.")
}

// Execute implements subcommands.Command.Execute.
func (d *dumpCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	image, err := os.ReadFile(f.Arg(0))
	if err != nil {
		logrus.WithError(err).Error("reading table image")
		return subcommands.ExitFailure
	}
	if len(image) != paging.TranslationTableBytes {
		logrus.Errorf("image is %d bytes, want %d", len(image), paging.TranslationTableBytes)
		return subcommands.ExitFailure
	}

	for i := 0; i < armaddr.TranslationTableEntries; i++ {
		desc := paging.TranslationTableDescriptor(binary.LittleEndian.Uint32(image[i*4:]))
		if desc.Type() == paging.TranslationTableInvalid && !d.all {
			continue
		}
		va, _ := armaddr.FromIndices(i, 0, 0)
		fmt.Printf("%4d %v %v\n", i, va, desc)
	}
	return subcommands.ExitSuccess
}
