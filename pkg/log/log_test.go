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
	"strings"
	"testing"
)

type testWriter struct {
	lines []string
	fail  bool
}

func (w *testWriter) Write(bytes []byte) (int, error) {
	if w.fail {
		return 0, fmt.Errorf("simulated failure")
	}
	w.lines = append(w.lines, string(bytes))
	return len(bytes), nil
}

func TestDropMessages(t *testing.T) {
	tw := &testWriter{}
	w := Writer{Next: tw}
	if _, err := w.Write([]byte("line 1\n")); err != nil {
		t.Fatalf("Write failed, err: %v", err)
	}

	tw.fail = true
	if _, err := w.Write([]byte("error\n")); err == nil {
		t.Fatalf("Write should have failed")
	}
	if _, err := w.Write([]byte("error\n")); err == nil {
		t.Fatalf("Write should have failed")
	}

	tw.fail = false
	if _, err := w.Write([]byte("line 2\n")); err != nil {
		t.Fatalf("Write failed, err: %v", err)
	}

	if len(tw.lines) != 3 {
		t.Fatalf("Writer should have logged 3 lines, got: %v", tw.lines)
	}
	// The notice is emitted on the first write after the failures clear.
	if !strings.Contains(tw.lines[2], "Dropped 2 log messages") {
		t.Errorf("dropped-message notice missing, got: %q", tw.lines[2])
	}
}

// messages returns the logged payloads, dropping the newline writes the
// Writer appends separately.
func (w *testWriter) messages() []string {
	var out []string
	for _, l := range w.lines {
		if l != "\n" {
			out = append(out, l)
		}
	}
	return out
}

func TestLevelGating(t *testing.T) {
	tw := &testWriter{}
	l := &BasicLogger{Level: Info, Emitter: &Writer{Next: tw}}

	l.Debugf("suppressed")
	l.Infof("emitted")
	if msgs := tw.messages(); len(msgs) != 1 || !strings.Contains(msgs[0], "emitted") {
		t.Fatalf("Info-level logger emitted the wrong lines: %v", msgs)
	}

	l.SetLevel(Debug)
	if !l.IsLogging(Debug) {
		t.Fatalf("IsLogging(Debug) after SetLevel(Debug): got false")
	}
	l.Debugf("now emitted")
	if msgs := tw.messages(); len(msgs) != 2 {
		t.Fatalf("Debug-level logger missed a line: %v", msgs)
	}
}
