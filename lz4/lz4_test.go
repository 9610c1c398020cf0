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

package lz4

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/nadavrot/rzc"
)

func roundTrip(t *testing.T, input []byte) {
	t.Helper()
	encoded := Encode(input, nil)
	decoded, n, ok := Decode(encoded, nil)
	if !ok {
		t.Fatalf("decode failed for input of length %d", len(input))
	}
	if n != len(encoded) {
		t.Fatalf("decode consumed %d of %d encoded bytes", n, len(encoded))
	}
	if !bytes.Equal(decoded, input) {
		t.Fatalf("round trip mismatch: got %v want %v", decoded, input)
	}
}

func TestLZ4RoundTripVarious(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	inputs := [][]byte{
		nil,
		{},
		{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 2, 2, 2, 2, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
		{1, 1, 1, 1, 0, 0, 0, 0, 2, 2, 2, 2, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 5, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		canonicalPlain,
		bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 50),
	}

	random := make([]byte, 8192)
	rng.Read(random)
	inputs = append(inputs, random)

	for _, in := range inputs {
		roundTrip(t, in)
	}
}

func TestLZ4EncoderConstInputs(t *testing.T) {
	got := Encode(canonicalPlain, nil)
	if !bytes.Equal(got, canonicalCompressed) {
		t.Fatalf("canonical encode mismatch:\n got  %v\n want %v", got, canonicalCompressed)
	}
}

func TestLZ4DecoderConstInputs(t *testing.T) {
	decoded, n, ok := Decode(canonicalCompressed, nil)
	if !ok {
		t.Fatalf("decode of canonical compressed vector failed")
	}
	if n != len(canonicalCompressed) {
		t.Fatalf("decode consumed %d of %d bytes", n, len(canonicalCompressed))
	}
	if !bytes.Equal(decoded, canonicalPlain) {
		t.Fatalf("canonical decode mismatch:\n got  %v\n want %v", decoded, canonicalPlain)
	}
}

func TestLZ4DecoderNoCrashOnMalformedInput(t *testing.T) {
	malformed := [][]byte{
		{},
		{46, 12},
		{10, 10, 15},
	}

	for _, m := range malformed {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("decode panicked on malformed input %v: %v", m, r)
				}
			}()
			Decode(m, nil)
		}()
	}
}

func TestCodecRoundTrip(t *testing.T) {
	var c Codec
	inputs := [][]byte{
		nil,
		[]byte("x"),
		canonicalPlain,
		bytes.Repeat([]byte("abcabcabcabc"), 300),
	}

	for _, in := range inputs {
		var encoded []byte
		n := c.Encode(in, &encoded)
		if n != len(encoded) {
			t.Fatalf("Encode returned %d, appended %d bytes", n, len(encoded))
		}
		if !rzc.HasPrefix(encoded, rzc.LZ4Sig) {
			t.Fatalf("encoded container missing LZ4Sig prefix")
		}

		var decoded []byte
		consumed, written, ok := c.Decode(encoded, &decoded)
		if !ok {
			t.Fatalf("Decode failed for input of length %d", len(in))
		}
		if consumed != len(encoded) {
			t.Fatalf("Decode consumed %d of %d bytes", consumed, len(encoded))
		}
		if written != len(decoded) {
			t.Fatalf("Decode reported written=%d but appended %d bytes", written, len(decoded))
		}
		if !bytes.Equal(decoded, in) {
			t.Fatalf("container round trip mismatch: got %v want %v", decoded, in)
		}
	}
}

func TestCodecDecodeRejectsWrongSignature(t *testing.T) {
	var c Codec
	var out []byte
	_, _, ok := c.Decode([]byte{0, 0, 0, 0, 0, 0, 0, 0}, &out)
	if ok {
		t.Fatalf("expected rejection of input with wrong signature")
	}
}
