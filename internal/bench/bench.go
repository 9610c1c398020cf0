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

// Package bench is an informational comparator harness: it registers a
// handful of third-party compressors under a common name and reports
// ratio/timing for a given input, the way dsnet-compress's
// internal/tool/bench registers codecs by name and benchmarks across
// them. It never touches the wire container formats in package codec;
// it exists purely so the CLI's --check flag can print "how does rzc's
// output compare to lz4/flate/zstd on this file" next to a compression
// run.
package bench

import (
	"sort"
	"time"
)

// Comparator is a single competing compressor, registered by name.
type Comparator struct {
	Name     string
	Compress func(data []byte) ([]byte, error)
}

var registry = map[string]Comparator{}

// Register adds c to the set of comparators Compare runs. Called from
// package init functions, mirroring dsnet-compress's
// RegisterEncoder/RegisterDecoder pattern.
func Register(c Comparator) {
	registry[c.Name] = c
}

// Names returns the registered comparator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Result holds one comparator's outcome against a given input.
type Result struct {
	Name       string
	InputSize  int
	OutputSize int
	Elapsed    time.Duration
	Err        error
}

// Ratio returns OutputSize/InputSize, or 0 if InputSize is 0.
func (r Result) Ratio() float64 {
	if r.InputSize == 0 {
		return 0
	}
	return float64(r.OutputSize) / float64(r.InputSize)
}

// Compare runs every registered comparator against data and returns one
// Result per comparator, sorted by name. A comparator's own failure is
// recorded in Err rather than aborting the others.
func Compare(data []byte) []Result {
	names := Names()
	results := make([]Result, 0, len(names))

	for _, name := range names {
		c := registry[name]
		start := time.Now()
		out, err := c.Compress(data)
		elapsed := time.Since(start)

		r := Result{Name: name, InputSize: len(data), Elapsed: elapsed, Err: err}
		if err == nil {
			r.OutputSize = len(out)
		}
		results = append(results, r)
	}

	return results
}
