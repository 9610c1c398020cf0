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

import "fmt"

// levelParams maps level 1..10 to a concrete greedy+lookahead
// parameterization of increasing search effort. spec.md §9 treats this
// table as a tunable, not a wire commitment: only the round-trip
// correctness of whatever level is selected is load-bearing.
var levelParams = [11]Params{
	1:  {BankBits: 14, Banks: 1, MaxOffset: 1 << 16, MaxMatch: 1 << 16, ParseSearch: 1},
	2:  {BankBits: 15, Banks: 1, MaxOffset: 1 << 16, MaxMatch: 1 << 16, ParseSearch: 1},
	3:  {BankBits: 16, Banks: 2, MaxOffset: 1 << 17, MaxMatch: 1 << 17, ParseSearch: 1},
	4:  {BankBits: 16, Banks: 2, MaxOffset: 1 << 18, MaxMatch: 1 << 18, ParseSearch: 2},
	5:  {BankBits: 17, Banks: 4, MaxOffset: 1 << 18, MaxMatch: 1 << 18, ParseSearch: 2},
	6:  {BankBits: 17, Banks: 4, MaxOffset: 1 << 19, MaxMatch: 1 << 19, ParseSearch: 4},
	7:  {BankBits: 18, Banks: 4, MaxOffset: 1 << 20, MaxMatch: 1 << 20, ParseSearch: 4},
	8:  {BankBits: 18, Banks: 8, MaxOffset: 1 << 21, MaxMatch: 1 << 21, ParseSearch: 8},
	9:  {BankBits: 18, Banks: 8, MaxOffset: 1 << 22, MaxMatch: 1 << 22, ParseSearch: 16},
	10: {BankBits: 19, Banks: 8, MaxOffset: 1 << 23, MaxMatch: 1 << 23, ParseSearch: 32},
}

// optimalParams backs levels 11-12 (OptimalMatcher), differing only in
// dictionary width.
var optimalParams = [3]Params{
	0: {},
	1: {BankBits: 18, Banks: 8, MaxOffset: 1 << 22, MaxMatch: 1 << 22},
	2: {BankBits: 19, Banks: 16, MaxOffset: 1 << 23, MaxMatch: 1 << 23},
}

// SelectMatcher maps level (1..12) to a concrete matcher function.
// Levels outside [1,12] are a programming error, per spec.md §4.6/§7.
func SelectMatcher(level uint8) func(src []byte) []Packet {
	switch {
	case level >= 1 && level <= 10:
		p := levelParams[level]
		return func(src []byte) []Packet { return GreedyMatch(src, p) }
	case level == 11:
		p := optimalParams[1]
		return func(src []byte) []Packet { return OptimalMatch(src, p) }
	case level == 12:
		p := optimalParams[2]
		return func(src []byte) []Packet { return OptimalMatch(src, p) }
	default:
		panic(fmt.Sprintf("lz: level %d outside supported range [1,12]", level))
	}
}
