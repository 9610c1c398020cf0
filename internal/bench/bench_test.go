/*
Copyright 2024 The rzc Authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bench

import (
	"bytes"
	"testing"
)

func TestCompareReturnsOneResultPerRegisteredComparator(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog\n"), 100)
	results := Compare(data)

	if len(results) != len(Names()) {
		t.Fatalf("got %d results, want %d (one per registered comparator)", len(results), len(Names()))
	}

	seen := make(map[string]bool)
	for _, r := range results {
		seen[r.Name] = true
		if r.Err != nil {
			t.Fatalf("comparator %s failed: %v", r.Name, r.Err)
		}
		if r.InputSize != len(data) {
			t.Fatalf("comparator %s: InputSize = %d, want %d", r.Name, r.InputSize, len(data))
		}
		if r.OutputSize == 0 {
			t.Fatalf("comparator %s: OutputSize = 0 for non-empty input", r.Name)
		}
	}

	for _, name := range Names() {
		if !seen[name] {
			t.Fatalf("registered comparator %s missing from results", name)
		}
	}
}

func TestResultRatio(t *testing.T) {
	r := Result{InputSize: 100, OutputSize: 40}
	if r.Ratio() != 0.4 {
		t.Fatalf("Ratio() = %v, want 0.4", r.Ratio())
	}

	empty := Result{InputSize: 0, OutputSize: 0}
	if empty.Ratio() != 0 {
		t.Fatalf("Ratio() on empty input = %v, want 0", empty.Ratio())
	}
}
