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

import "errors"

// The error kinds surfaced by this package. All fallible constructors and
// lookups return one of these, possibly wrapped with context; callers match
// with errors.Is. There is no local recovery: every error propagates.
var (
	// ErrAlign indicates an address or size violating the alignment the
	// requested structure requires.
	ErrAlign = errors.New("address violates required alignment")

	// ErrTranslation indicates that the hardware address translation
	// reported a fault.
	ErrTranslation = errors.New("address translation fault")

	// ErrDomain is reserved for future fault decoding; never raised.
	ErrDomain = errors.New("domain fault")

	// ErrPermission is reserved for future fault decoding; never raised.
	ErrPermission = errors.New("permission fault")

	// ErrInvalidMemory indicates an operation on an Invalid-typed
	// descriptor.
	ErrInvalidMemory = errors.New("descriptor is invalid")

	// ErrNotInRange indicates an address outside an offset mapping's
	// window.
	ErrNotInRange = errors.New("address not in mapping range")

	// ErrIndex indicates a count or index outside its configured range.
	// Out-of-range table indices are programming errors and panic
	// instead.
	ErrIndex = errors.New("index out of range")
)
