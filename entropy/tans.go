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

package entropy

import (
	"fmt"

	"github.com/nadavrot/rzc/bitvector"
	"github.com/nadavrot/rzc/varint"
)

// Alphabet is fixed at 256 symbols (one byte value per symbol), matching
// the teacher's ANSRangeCodec byte-oriented alphabet.
const Alphabet = 256

// DefaultTableSize is the tANS state-table size used unless a caller
// overrides it. It must be a power of two greater than the alphabet
// size (spec.md §4.4/§9 treats the table size as tunable).
const DefaultTableSize = 1 << 12

// tansSpreadStride is the prime step used to spread symbols across the
// table; gcd(stride, T) = 1 for every power-of-two T in use here since
// the stride itself is odd, so the spread is a permutation of [0,T).
const tansSpreadStride = 118081

// decEntry is one row of the tANS decode table.
type decEntry struct {
	src uint32
	sym byte
}

// Table is a built tANS encode/decode table for one normalized
// histogram.
type Table struct {
	tableSize int
	logT      uint
	norm      [Alphabet]int
	// encode[s] holds the next-state mapping for symbol s, indexed by
	// (srcState - norm[s]); encode[s][i] = the destination state for
	// the i-th slot of symbol s's source-state interval.
	encode [Alphabet][]uint32
	// decode is indexed by state-T for states in [T, 2T).
	decode []decEntry
}

// BuildTable constructs encode/decode tables from a normalized
// histogram summing to a power-of-two tableSize.
func BuildTable(norm [Alphabet]int, tableSize int) (*Table, error) {
	if tableSize <= 0 || tableSize&(tableSize-1) != 0 {
		return nil, fmt.Errorf("entropy: table size %d is not a power of two", tableSize)
	}

	sum := 0
	for _, c := range norm {
		sum += c
	}
	if sum != tableSize {
		return nil, fmt.Errorf("entropy: normalized histogram sums to %d, want %d", sum, tableSize)
	}

	logT := uint(0)
	for (1 << logT) < tableSize {
		logT++
	}

	t := &Table{tableSize: tableSize, logT: logT, norm: norm}
	t.decode = make([]decEntry, tableSize)

	for s := 0; s < Alphabet; s++ {
		if norm[s] > 0 {
			t.encode[s] = make([]uint32, norm[s])
		}
	}

	spread := make([]byte, tableSize)
	pos := 0
	for s := 0; s < Alphabet; s++ {
		for k := 0; k < norm[s]; k++ {
			spread[pos] = byte(s)
			pos = (pos + tansSpreadStride) % tableSize
		}
	}

	next := make([]uint32, Alphabet)
	for s := 0; s < Alphabet; s++ {
		next[s] = uint32(norm[s])
	}

	for x := 0; x < tableSize; x++ {
		s := spread[x]
		src := next[s]
		next[s]++
		t.encode[s][src-uint32(norm[s])] = uint32(x + tableSize)
		t.decode[x] = decEntry{src: src, sym: s}
	}

	return t, nil
}

// MaxState returns the exclusive upper bound of encodable source states
// for s: 2*norm[s]-1 when norm[s]>0 (per spec.md §3), or 0 otherwise.
func (t *Table) MaxState(s byte) uint32 {
	if t.norm[s] == 0 {
		return 0
	}
	return uint32(2*t.norm[s] - 1)
}

// EncodeBytes tANS-encodes data (most recent symbol first) into bv,
// appending the final state bits last so that a LIFO decode naturally
// pops the state first, then symbols in forward order.
func (t *Table) EncodeBytes(data []byte, bv *bitvector.Bitvector) error {
	state := uint32(2*t.tableSize - 1)

	for i := len(data) - 1; i >= 0; i-- {
		s := data[i]
		if t.norm[s] == 0 {
			return fmt.Errorf("entropy: symbol %d has zero frequency in table", s)
		}

		bound := uint32(2 * t.norm[s])
		for state >= bound {
			bv.PushWord(uint64(state&1), 1)
			state >>= 1
		}

		idx := state - uint32(t.norm[s])
		if int(idx) >= len(t.encode[s]) {
			return fmt.Errorf("entropy: encode table index out of range for symbol %d", s)
		}
		state = t.encode[s][idx]
	}

	bv.PushWord(uint64(state-uint32(t.tableSize)), t.logT)
	return nil
}

// DecodeBytes tANS-decodes exactly count symbols from bv (popping from
// the end, in forward order) and returns them.
func (t *Table) DecodeBytes(bv *bitvector.Bitvector, count int) ([]byte, error) {
	if bv.Len() < uint64(t.logT) {
		return nil, fmt.Errorf("entropy: bitvector underrun reading initial state")
	}

	state := uint32(t.tableSize) + uint32(bv.PopWord(t.logT))
	out := make([]byte, count)

	for i := 0; i < count; i++ {
		if state < uint32(t.tableSize) || int(state-uint32(t.tableSize)) >= len(t.decode) {
			return nil, fmt.Errorf("entropy: decode state %d out of range", state)
		}

		e := t.decode[state-uint32(t.tableSize)]
		out[i] = e.sym
		state = e.src

		for state < uint32(t.tableSize) {
			if bv.Len() == 0 {
				return nil, fmt.Errorf("entropy: bitvector underrun mid-stream")
			}
			state = (state << 1) | uint32(bv.PopWord(1))
		}
	}

	return out, nil
}

// SerializeHistogram writes the normalized histogram as one varint per
// alphabet slot.
func SerializeHistogram(norm [Alphabet]int, dst []byte) []byte {
	for _, c := range norm {
		dst = varint.WriteVarInt(dst, uint32(c))
	}
	return dst
}

// DeserializeHistogram reads a histogram written by SerializeHistogram
// and validates that it sums to tableSize.
func DeserializeHistogram(src []byte, tableSize int) (norm [Alphabet]int, consumed int, ok bool) {
	off := 0
	sum := 0
	for i := 0; i < Alphabet; i++ {
		v, n, readOk := varint.ReadVarInt(src[off:])
		if !readOk {
			return norm, 0, false
		}
		norm[i] = int(v)
		sum += int(v)
		off += n
	}

	if sum != tableSize {
		return norm, 0, false
	}

	return norm, off, true
}

// EncodeStream builds a normalized table for data, encodes it, and
// returns the serialized (histogram, bitvector) pair. ok is false if
// data is empty (callers should use the Nop fallback for empty input).
func EncodeStream(data []byte, tableSize int) (out []byte, ok bool) {
	if len(data) == 0 {
		return nil, false
	}

	counts := BuildHistogram(data)
	countsSlice := make([]int, Alphabet)
	for i, c := range counts {
		countsSlice[i] = c
	}

	norm, err := Normalize(countsSlice, tableSize)
	if err != nil {
		return nil, false
	}

	var normArr [Alphabet]int
	copy(normArr[:], norm)

	table, err := BuildTable(normArr, tableSize)
	if err != nil {
		return nil, false
	}

	bv := bitvector.New()
	if err := table.EncodeBytes(data, bv); err != nil {
		return nil, false
	}

	out = SerializeHistogram(normArr, nil)
	out = bv.Serialize(out)
	return out, true
}

// DecodeStream reverses EncodeStream, reading exactly count symbols.
func DecodeStream(src []byte, count int, tableSize int) (data []byte, consumed int, ok bool) {
	norm, n, histOk := DeserializeHistogram(src, tableSize)
	if !histOk {
		return nil, 0, false
	}

	table, err := BuildTable(norm, tableSize)
	if err != nil {
		return nil, 0, false
	}

	bv, bn, bvOk := bitvector.Deserialize(src[n:])
	if !bvOk {
		return nil, 0, false
	}

	data, err = table.DecodeBytes(bv, count)
	if err != nil {
		return nil, 0, false
	}

	return data, n + bn, true
}
