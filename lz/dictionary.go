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

// Package lz implements the hashed multi-way LRU dictionary and the
// greedy+lookahead / optimal matcher family used by the full-pipeline
// codec's LZ77 factorization stage.
package lz

import "encoding/binary"

const hashMul = 0x797124E5

const emptyCell = -1

// Dictionary is a hashed multi-way LRU match finder: each hash bucket
// holds Banks candidate positions, most-recently-inserted first.
// Grounded on original_source/src/lz/matcher.go's LzDictionary (the
// reference implementation this spec was distilled from), and on the
// teacher's transform/LZCodec.go LZXCodec hash-chain search for the
// surrounding Go idiom (explicit bucket slices, int32 cells).
type Dictionary struct {
	bankBits  uint
	banks     int
	maxOffset int
	maxMatch  int
	table     []int32 // bankBits-bucketed, banks-wide, row-major
}

// NewDictionary creates a dictionary with 2^bankBits buckets of width
// banks, each position capped to maxOffset bytes back and matches
// capped to maxMatch bytes long.
func NewDictionary(bankBits uint, banks, maxOffset, maxMatch int) *Dictionary {
	d := &Dictionary{
		bankBits:  bankBits,
		banks:     banks,
		maxOffset: maxOffset,
		maxMatch:  maxMatch,
	}
	d.table = make([]int32, (1<<bankBits)*banks)
	for i := range d.table {
		d.table[i] = emptyCell
	}
	return d
}

// hash reads the little-endian u32 at p[0:4] and multiplies-and-shifts
// it into a bankBits-wide bucket index, per spec.md §4.6.
func (d *Dictionary) hash(p []byte) uint32 {
	x := binary.LittleEndian.Uint32(p)
	return (x * hashMul) >> (32 - d.bankBits)
}

// Match is an accepted back-reference: Length bytes starting Offset
// bytes before the current position.
type Match struct {
	Offset int
	Length int
}

func (d *Dictionary) earlyDisqualify(src []byte, a, b, bestSize int) bool {
	return b+bestSize < len(src) && src[a+bestSize] != src[b+bestSize]
}

func (d *Dictionary) matchLength(src []byte, a, b int) int {
	n := len(src)
	length := 0

	if a+4 <= n && b+4 <= n &&
		src[a] == src[b] && src[a+1] == src[b+1] &&
		src[a+2] == src[b+2] && src[a+3] == src[b+3] {
		a += 4
		b += 4
		length = 4
	}

	end := n
	if b+d.maxMatch-4 < end {
		end = b + d.maxMatch - 4
	}
	for b < end && src[a] == src[b] {
		a++
		b++
		length++
	}
	return length
}

// GetMatch scans the W ways of the bucket hashing src[i:], applying the
// early-disqualification and length-extension rules of spec.md §4.6,
// and returns the longest qualifying match (length >= 4), or ok=false.
// prevBest lets a caller holding an existing candidate skip matches
// that cannot beat it.
func (d *Dictionary) GetMatch(src []byte, i int, prevBest int) (m Match, ok bool) {
	if i+4 > len(src) {
		return Match{}, false
	}

	h := d.hash(src[i:])
	row := d.table[int(h)*d.banks : int(h)*d.banks+d.banks]

	best := Match{}

	for _, loc32 := range row {
		loc := int(loc32)
		if loc == emptyCell {
			break
		}

		offset := i - loc
		if offset <= 0 {
			// Position i (or a later one) was already saved; only
			// earlier positions are valid back-references.
			continue
		}
		if offset >= d.maxOffset {
			break
		}

		if d.earlyDisqualify(src, loc, i, prevBest) {
			continue
		}

		l := d.matchLength(src, loc, i)
		if l > best.Length {
			best = Match{Offset: offset, Length: l}
			if l > prevBest {
				prevBest = l
			}
		}
	}

	if best.Length < minMatch {
		return Match{}, false
	}
	return best, true
}

// SaveMatch LRU-shifts the W ways of i's bucket and writes i into way 0.
func (d *Dictionary) SaveMatch(src []byte, i int) {
	if i+4 > len(src) {
		return
	}
	h := d.hash(src[i:])
	row := d.table[int(h)*d.banks : int(h)*d.banks+d.banks]
	for k := d.banks - 1; k > 0; k-- {
		row[k] = row[k-1]
	}
	row[0] = int32(i)
}

// GrowMatchBackwards extends a (lit, mat) packet backward while the
// bytes immediately preceding mat.start equal the tail of lit,
// shrinking lit by the same amount, bounded by lit's own length.
// Returns the number of bytes moved from lit into mat.
func GrowMatchBackwards(src []byte, litStart, litEnd, matStart, matLen int) int {
	litLen := litEnd - litStart
	if litLen == 0 || matLen == 0 || matStart <= 0 {
		return 0
	}

	matPtr := matStart - 1
	litPtr := litEnd - 1
	i := 0

	for i < litLen && matPtr >= 0 && src[matPtr] == src[litPtr] {
		matPtr--
		litPtr--
		i++
	}
	return i
}
