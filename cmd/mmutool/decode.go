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
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/mcdoll/armv7/pkg/paging"
)

// decodeCmd implements subcommands.Command for the "decode" command.
type decodeCmd struct {
	level int
}

// Name implements subcommands.Command.
func (*decodeCmd) Name() string {
	return "decode"
}

// Synopsis implements subcommands.Command.
func (*decodeCmd) Synopsis() string {
	return "decodes a 32-bit descriptor word"
}

// Usage implements subcommands.Command.
func (*decodeCmd) Usage() string {
	return `decode [-level 1|2] <word>`
}

// SetFlags implements subcommands.Command.
func (d *decodeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&d.level, "level", 1, "translation level of the descriptor (1 or 2).")
}

// Execute implements subcommands.Command.Execute.
func (d *decodeCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	word, err := strconv.ParseUint(f.Arg(0), 0, 32)
	if err != nil {
		fmt.Printf("bad descriptor word %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}

	switch d.level {
	case 1:
		fmt.Print(describeTableDescriptor(paging.TranslationTableDescriptor(word)))
	case 2:
		fmt.Print(describePageDescriptor(paging.PageTableDescriptor(word)))
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}

func describeTableDescriptor(d paging.TranslationTableDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type: %v\n", d.Type())
	if addr, err := d.Addr(); err == nil {
		fmt.Fprintf(&b, "base: %v\n", addr)
	}
	if attrs, ok := paging.AttributesFromTableDescriptor(d); ok {
		b.WriteString(describeAttributes(attrs))
	}
	return b.String()
}

func describePageDescriptor(d paging.PageTableDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type: %v\n", d.Type())
	if addr, err := d.Addr(); err == nil {
		fmt.Fprintf(&b, "base: %v\n", addr)
	}
	if d.Type() != paging.PageTableInvalid {
		b.WriteString(describeAttributes(paging.AttributesFromPageDescriptor(d)))
	}
	return b.String()
}

func describeAttributes(attrs paging.MemoryAttributes) string {
	var b strings.Builder
	fmt.Fprintf(&b, "access: %s\n", accessName(attrs))
	var flags []string
	for _, f := range []struct {
		bit  paging.MemoryAttributes
		name string
	}{
		{paging.AttrPXN, "PXN"},
		{paging.AttrB, "B"},
		{paging.AttrC, "C"},
		{paging.AttrXN, "XN"},
		{paging.AttrS, "S"},
		{paging.AttrNG, "nG"},
		{paging.AttrNS, "NS"},
	} {
		if attrs&f.bit != 0 {
			flags = append(flags, f.name)
		}
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, "flags: %s\n", strings.Join(flags, " "))
	}
	if d := attrs.Domain(); d != 0 {
		fmt.Fprintf(&b, "domain: %d\n", d)
	}
	return b.String()
}

func accessName(attrs paging.MemoryAttributes) string {
	ap := attrs & paging.APFullAccess
	ro := attrs&paging.AttrAP2 != 0
	switch {
	case ap == paging.APNoAccess:
		return "none"
	case ap == paging.APPrivAccess && ro:
		return "priv-ro"
	case ap == paging.APPrivAccess:
		return "priv"
	case ap == paging.APUnprivReadOnly:
		return "user-ro"
	default:
		return "full"
	}
}
