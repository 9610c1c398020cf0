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

const minMatch = 4

// Packet is one emitted (literal run, match) pair. Lit is
// src[LitStart:LitEnd]; Mat is empty when MatLen == 0, otherwise it
// references src[MatStart : MatStart+MatLen] reconstructed from
// MatOffset bytes back in the *output* stream.
type Packet struct {
	LitStart, LitEnd int
	MatStart         int
	MatLen           int
	MatOffset        int
}

// Params configures a matcher run, selected by SelectMatcher per
// spec.md §4.6.
type Params struct {
	BankBits    uint
	Banks       int
	MaxOffset   int
	MaxMatch    int
	ParseSearch int
}

type candidate struct {
	litStart  int
	matStart  int
	matLen    int
	matOffset int
	cursor    int // position the candidate was found at (== initial lit.end)
	after     int // cursor + matLen: where scanning resumes if accepted
}

// GreedyMatch runs the greedy+lookahead matcher over src and returns
// the emitted packet sequence: it keeps a "current candidate" spanning
// a PARSE_SEARCH-wide lookahead window and picks the best match found
// in that window (ties broken by smaller offset) once the window
// closes. Grounded directly on original_source/src/lz/matcher.rs's
// Matcher::get_next_match_region, the reference this spec's §4.6 was
// distilled from; restructured into the teacher's Go idiom (explicit
// loops and structs instead of Rust ranges/Options).
func GreedyMatch(src []byte, p Params) []Packet {
	n := len(src)
	var packets []Packet

	search := p.ParseSearch
	if search < 1 {
		search = 1
	}

	dict := NewDictionary(p.BankBits, p.Banks, p.MaxOffset, p.MaxMatch)
	cursor := 0

	for cursor < n {
		litStart := cursor
		var cand *candidate

		for cursor+minMatch < n {
			if cand != nil && cursor >= cand.cursor+search {
				break
			}

			prevBest := 0
			if cand != nil {
				prevBest = cand.matLen
			}

			m, ok := dict.GetMatch(src, cursor, prevBest)
			dict.SaveMatch(src, cursor)

			if !ok {
				cursor++
				continue
			}

			matStart := cursor - m.Offset

			if cand == nil {
				cand = &candidate{
					litStart:  litStart,
					matStart:  matStart,
					matLen:    m.Length,
					matOffset: m.Offset,
					cursor:    cursor,
					after:     cursor + m.Length,
				}
				cursor++
				continue
			}

			litLen := cursor - cand.cursor
			better := m.Length > cand.matLen+litLen
			tie := m.Length == cand.matLen+litLen && m.Offset < cand.matOffset
			if better || tie {
				cand = &candidate{
					litStart:  litStart,
					matStart:  matStart,
					matLen:    m.Length,
					matOffset: m.Offset,
					cursor:    cursor,
					after:     cursor + m.Length,
				}
			}
			cursor++
		}

		if cand != nil {
			// Hash every interior position of the consumed match to
			// keep the dictionary current.
			for i := cursor; i < cand.after && i+minMatch <= n; i++ {
				dict.SaveMatch(src, i)
			}
			cursor = cand.after

			litEnd := cand.cursor
			matStart := cand.matStart
			matLen := cand.matLen
			grown := GrowMatchBackwards(src, cand.litStart, litEnd, matStart, matLen)
			litEnd -= grown
			matStart -= grown
			matLen += grown

			packets = append(packets, Packet{
				LitStart:  cand.litStart,
				LitEnd:    litEnd,
				MatStart:  matStart,
				MatLen:    matLen,
				MatOffset: cand.matOffset,
			})
			continue
		}

		// No candidate found before running out of room: the remaining
		// bytes (including the final minMatch-sized tail) are literals.
		cursor = n
		packets = append(packets, Packet{LitStart: litStart, LitEnd: n})
	}

	if len(packets) == 0 {
		return nil
	}
	return packets
}
