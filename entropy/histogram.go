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

// Package entropy implements the tANS table-based entropy coder, the
// 32-bit binary range coder, and the DMC probability model that backs
// the adaptive-arithmetic fallback pipeline.
package entropy

import "fmt"

// BuildHistogram counts byte frequencies over data into a 256-entry
// histogram.
func BuildHistogram(data []byte) [256]int {
	var h [256]int
	for _, b := range data {
		h[b]++
	}
	return h
}

// Normalize rescales counts (which must sum to some S>0) to a new total
// of exactly target, preserving every originally non-zero bin as >=1.
// target must exceed the number of non-zero bins. The leftover mass
// after the initial proportional scaling (which can land short of
// target due to integer rounding) is assigned to the bin with the
// largest original count; see spec.md §4.3/§9 for why this is safe.
func Normalize(counts []int, target int) ([]int, error) {
	n := len(counts)

	sum := 0
	nonZero := 0
	argmax := -1
	maxCount := -1

	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("entropy: negative count at %d", i)
		}
		sum += c
		if c > 0 {
			nonZero++
		}
		if c > maxCount {
			maxCount = c
			argmax = i
		}
	}

	if sum == 0 {
		return nil, fmt.Errorf("entropy: cannot normalize an all-zero histogram")
	}

	if target <= nonZero {
		return nil, fmt.Errorf("entropy: target %d must exceed non-zero bin count %d", target, nonZero)
	}

	out := make([]int, n)
	total := 0

	for i, c := range counts {
		if c == 0 {
			continue
		}

		v := c * (target - nonZero) / sum
		if v == 0 {
			v = 1
		}
		out[i] = v
		total += v
	}

	// Bump any originally non-zero bin that rounded down to zero before
	// the loop above already guards this (v==0 -> v=1), so `total` can
	// only ever be short of or equal to target from rounding, never
	// over it; hand the shortfall to argmax.
	if total > target {
		// Defensive: should not happen given the floor-division above,
		// but keep the invariant airtight rather than emit a bad table.
		out[argmax] -= total - target
		total = target
	}

	if total < target {
		out[argmax] += target - total
	}

	return out, nil
}
