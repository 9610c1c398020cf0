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
	"math/rand"
	"testing"
)

func TestBitonicRoundTripFixedProb(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	bits := make([]int, 2000)
	for i := range bits {
		if rng.Intn(10) == 0 {
			bits[i] = 1
		}
	}

	enc := NewBitonicEncoder(nil)
	for _, b := range bits {
		enc.EncodeBit(b, 6554) // p(1) ~= 0.1
	}
	buf := enc.Finish()

	dec, err := NewBitonicDecoder(buf)
	if err != nil {
		t.Fatalf("NewBitonicDecoder: %v", err)
	}

	for i, want := range bits {
		got, err := dec.DecodeBit(6554)
		if err != nil {
			t.Fatalf("bit %d: DecodeBit: %v", i, err)
		}
		if got != want {
			t.Fatalf("bit %d: got %d, want %d", i, got, want)
		}
	}
}

func TestBitonicRoundTripAdaptive(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	bits := make([]int, 5000)
	for i := range bits {
		if rng.Intn(4) != 0 {
			bits[i] = 1
		}
	}

	probs := make([]uint32, len(bits))
	p := uint32(1 << 15)
	enc := NewBitonicEncoder(nil)
	for i, b := range bits {
		probs[i] = p
		enc.EncodeBit(b, p)
		if b == 1 {
			p += (65536 - p) >> 5
		} else {
			p -= p >> 5
		}
		if p < 1 {
			p = 1
		}
		if p > 65535 {
			p = 65535
		}
	}
	buf := enc.Finish()

	dec, err := NewBitonicDecoder(buf)
	if err != nil {
		t.Fatalf("NewBitonicDecoder: %v", err)
	}

	for i, want := range bits {
		got, err := dec.DecodeBit(probs[i])
		if err != nil {
			t.Fatalf("bit %d: DecodeBit: %v", i, err)
		}
		if got != want {
			t.Fatalf("bit %d: got %d, want %d", i, got, want)
		}
	}
}

func TestBitonicDecoderUnderrun(t *testing.T) {
	if _, err := NewBitonicDecoder([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short buffer")
	}
}
