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

package lz

// matchCost approximates the cost (in the same unit as "one literal
// byte") of emitting a match packet: a token, an offset, and a length,
// amortized. spec.md §4.6 gives match_cost ~= 3.
const matchCost = 3

// OptimalMatch precomputes the best match at every position (no
// lookahead) and runs a right-to-left dynamic program choosing, for
// each position, the cheapest of "emit one literal and recurse" or
// "emit a match of some valid length and recurse past it". Grounded on
// the general "precompute once, then a second deterministic pass"
// shape of the teacher's transform/BWT.go suffix-array-assisted
// passes; the DP itself has no direct teacher analogue since the
// teacher never runs a parsing-cost optimizer.
func OptimalMatch(src []byte, p Params) []Packet {
	n := len(src)
	if n == 0 {
		return nil
	}

	dict := NewDictionary(p.BankBits, p.Banks, p.MaxOffset, p.MaxMatch)
	best := make([]Match, n)
	ok := make([]bool, n)

	limit := n - minMatch
	for i := 0; i <= limit; i++ {
		if m, found := dict.GetMatch(src, i, 0); found {
			best[i] = m
			ok[i] = true
		}
		dict.SaveMatch(src, i)
	}

	// D[i] = minimum cost to encode src[i:n]; choice[i] records what was
	// chosen at i (0 = literal, otherwise = chosen match length).
	cost := make([]int, n+1)
	choice := make([]int, n)

	for i := n - 1; i >= 0; i-- {
		// Literal.
		bestCost := cost[i+1] + 1
		bestChoice := 0

		if ok[i] {
			maxLen := best[i].Length
			for l := minMatch; l <= maxLen; l++ {
				c := cost[i+l] + matchCost
				if c < bestCost {
					bestCost = c
					bestChoice = l
				}
			}
		}

		cost[i] = bestCost
		choice[i] = bestChoice
	}

	var packets []Packet
	anchor := 0
	i := 0

	for i < n {
		if choice[i] == 0 {
			i++
			continue
		}

		matLen := choice[i]
		matOffset := best[i].Offset
		matStart := i - matOffset
		litEnd := i

		grown := GrowMatchBackwards(src, anchor, litEnd, matStart, matLen)
		litEnd -= grown
		matStart -= grown
		matLen += grown

		packets = append(packets, Packet{
			LitStart:  anchor,
			LitEnd:    litEnd,
			MatStart:  matStart,
			MatLen:    matLen,
			MatOffset: matOffset,
		})

		anchor = i + choice[i]
		i = anchor
	}

	packets = append(packets, Packet{LitStart: anchor, LitEnd: n})
	return packets
}
