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
	"bytes"
	"math/rand"
	"testing"
)

func TestTANSRoundTripSkewed(t *testing.T) {
	data := make([]byte, 0, 20000)
	for i := 0; i < 20000; i++ {
		if i%10 == 0 {
			data = append(data, 7)
		} else {
			data = append(data, byte(i%5))
		}
	}

	out, ok := EncodeStream(data, DefaultTableSize)
	if !ok {
		t.Fatalf("EncodeStream failed")
	}

	if len(out) >= len(data) {
		t.Errorf("compressed size %d not smaller than input %d on skewed data", len(out), len(data))
	}

	got, consumed, ok := DecodeStream(out, len(data), DefaultTableSize)
	if !ok {
		t.Fatalf("DecodeStream failed")
	}
	if consumed != len(out) {
		t.Fatalf("consumed %d, want %d", consumed, len(out))
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch")
	}
}

func TestTANSRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 10; trial++ {
		n := 1 + rng.Intn(5000)
		data := make([]byte, n)
		rng.Read(data)

		out, ok := EncodeStream(data, DefaultTableSize)
		if !ok {
			t.Fatalf("trial %d: EncodeStream failed", trial)
		}

		got, _, ok := DecodeStream(out, n, DefaultTableSize)
		if !ok {
			t.Fatalf("trial %d: DecodeStream failed", trial)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("trial %d: round trip mismatch", trial)
		}
	}
}

func TestTANSSingleSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{42}, 1000)

	out, ok := EncodeStream(data, DefaultTableSize)
	if !ok {
		t.Fatalf("EncodeStream failed")
	}

	got, _, ok := DecodeStream(out, len(data), DefaultTableSize)
	if !ok {
		t.Fatalf("DecodeStream failed")
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch")
	}
}

func TestTANSEmptyInputRejected(t *testing.T) {
	if _, ok := EncodeStream(nil, DefaultTableSize); ok {
		t.Fatalf("expected EncodeStream to reject empty input")
	}
}

func TestTANSTableInvariant(t *testing.T) {
	counts := make([]int, Alphabet)
	for i := 0; i < 4; i++ {
		counts[i] = 1
	}
	counts[0] = 100

	norm, err := Normalize(counts, DefaultTableSize)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	var normArr [Alphabet]int
	copy(normArr[:], norm)

	table, err := BuildTable(normArr, DefaultTableSize)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}

	// Every state in [norm[s], 2*norm[s)) must encode to a unique
	// destination state, and decoding that destination must recover
	// (src, s) exactly, per spec.md §3's tANS coder-state invariant.
	for s := 0; s < Alphabet; s++ {
		if normArr[s] == 0 {
			continue
		}
		for src := uint32(normArr[s]); src < uint32(2*normArr[s]); src++ {
			dst := table.encode[s][src-uint32(normArr[s])]
			if dst < uint32(table.tableSize) || dst >= uint32(2*table.tableSize) {
				t.Fatalf("symbol %d src %d: dst %d out of [T,2T)", s, src, dst)
			}
			entry := table.decode[dst-uint32(table.tableSize)]
			if entry.sym != byte(s) || entry.src != src {
				t.Fatalf("symbol %d src %d: decode mismatch got (%d,%d)", s, src, entry.src, entry.sym)
			}
		}
	}
}
