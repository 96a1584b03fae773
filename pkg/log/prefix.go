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

package log

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

// PrefixEmitter emits lines prefixed with the level letter, timestamp and the
// caller's file and line, in the style of package github.com/golang/glog.
type PrefixEmitter struct {
	*Writer
}

// pid is used for the emitted prefix.
var pid = os.Getpid()

// Emit implements Emitter.Emit.
func (e PrefixEmitter) Emit(depth int, level Level, timestamp time.Time, format string, v ...any) {
	// Log level.
	prefix := byte('?')
	switch level {
	case Warning:
		prefix = byte('W')
	case Info:
		prefix = byte('I')
	case Debug:
		prefix = byte('D')
	}

	// Timestamp.
	_, month, day := timestamp.Date()
	hour, minute, second := timestamp.Clock()
	microsecond := int(timestamp.Nanosecond() / 1000)

	// The caller, trimmed of the directory path.
	file := "???"
	line := 0
	if _, f, l, ok := runtime.Caller(depth + 1); ok {
		if slash := strings.LastIndexByte(f, byte('/')); slash >= 0 {
			f = f[slash+1:]
		}
		file, line = f, l
	}

	// Format is loosely: L0102 15:04:05.000000 pid file:line] msg
	fmt.Fprintf(e.Writer, "%c%02d%02d %02d:%02d:%02d.%06d %7d %s:%d] %s",
		prefix, int(month), day, hour, minute, second, microsecond, pid, file, line,
		fmt.Sprintf(format, v...))
}
