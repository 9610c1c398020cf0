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

package codec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/nadavrot/rzc"
)

func testInputs(rng *rand.Rand) [][]byte {
	random := make([]byte, 6000)
	rng.Read(random)

	return [][]byte{
		nil,
		[]byte("x"),
		[]byte("abcabcabcabcabcabcabc"),
		bytes.Repeat([]byte("hello world, this is a test. "), 400),
		random,
	}
}

func TestNopCodecRoundTrip(t *testing.T) {
	var c NopCodec
	for _, in := range testInputs(rand.New(rand.NewSource(1))) {
		var encoded []byte
		n := c.Encode(in, &encoded)
		if n != len(encoded) {
			t.Fatalf("Encode returned %d, appended %d", n, len(encoded))
		}

		var decoded []byte
		consumed, written, ok := c.Decode(encoded, &decoded)
		if !ok || consumed != len(encoded) || written != len(decoded) || !bytes.Equal(decoded, in) {
			t.Fatalf("NopCodec round trip failed for input of length %d", len(in))
		}
	}
}

func TestArithCodecRoundTrip(t *testing.T) {
	for _, kind := range []ModelKind{ModelDMC, ModelBitwise} {
		c := ArithCodec{Model: kind}
		for _, in := range testInputs(rand.New(rand.NewSource(2))) {
			var encoded []byte
			c.Encode(in, &encoded)

			var decoded []byte
			consumed, written, ok := c.Decode(encoded, &decoded)
			if !ok {
				t.Fatalf("model %d: ArithCodec decode failed for input of length %d", kind, len(in))
			}
			if consumed != len(encoded) {
				t.Fatalf("model %d: ArithCodec consumed %d of %d bytes", kind, consumed, len(encoded))
			}
			if written != len(decoded) || !bytes.Equal(decoded, in) {
				t.Fatalf("model %d: ArithCodec round trip mismatch for input of length %d", kind, len(in))
			}
		}
	}
}

// TestArithCodecCrossModelMismatchFails confirms the wire-encoded model
// byte actually governs which predictor Decode reconstructs: rewriting a
// ModelBitwise stream's model byte to ModelDMC must not reproduce the
// original input.
func TestArithCodecCrossModelMismatchFails(t *testing.T) {
	c := ArithCodec{Model: ModelBitwise}
	in := bytes.Repeat([]byte("hello world, this is a test. "), 400)

	var encoded []byte
	c.Encode(in, &encoded)

	corrupted := append([]byte(nil), encoded...)
	corrupted[len(rzc.ArithSig)] = byte(ModelDMC)

	var decoded []byte
	_, _, ok := ArithCodec{}.Decode(corrupted, &decoded)
	if ok && bytes.Equal(decoded, in) {
		t.Fatalf("decode with mismatched model byte should not reproduce the original input")
	}
}

func TestFullCodecRoundTripFastLevels(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, level := range []uint8{1, 4, 9} {
		c := FullCodec{Ctx: rzc.Context{Level: level, BlockSize: 256}}
		for _, in := range testInputs(rng) {
			var encoded []byte
			c.Encode(in, &encoded)

			var decoded []byte
			consumed, written, ok := c.Decode(encoded, &decoded)
			if !ok {
				t.Fatalf("level %d: decode failed for input of length %d", level, len(in))
			}
			if consumed != len(encoded) {
				t.Fatalf("level %d: consumed %d of %d bytes", level, consumed, len(encoded))
			}
			if written != len(decoded) || !bytes.Equal(decoded, in) {
				t.Fatalf("level %d: round trip mismatch for input of length %d", level, len(in))
			}
		}
	}
}

func TestFullCodecRoundTripSlowLevel(t *testing.T) {
	c := FullCodec{Ctx: rzc.Context{Level: SlowLevel, BlockSize: 1 << 16}}
	for _, in := range testInputs(rand.New(rand.NewSource(6))) {
		var encoded []byte
		c.Encode(in, &encoded)

		var decoded []byte
		consumed, written, ok := c.Decode(encoded, &decoded)
		if !ok {
			t.Fatalf("slow level: decode failed for input of length %d", len(in))
		}
		if consumed != len(encoded) || written != len(decoded) || !bytes.Equal(decoded, in) {
			t.Fatalf("slow level: round trip mismatch for input of length %d", len(in))
		}
	}
}

func TestFullCodecRejectsBadSignature(t *testing.T) {
	c := FullCodec{Ctx: rzc.DefaultContext()}
	var out []byte
	_, _, ok := c.Decode([]byte{1, 2, 3, 4}, &out)
	if ok {
		t.Fatalf("expected rejection of input with wrong signature")
	}
}

func TestFullCodecMultiPageRoundTrip(t *testing.T) {
	c := FullCodec{Ctx: rzc.Context{Level: 3, BlockSize: 512}}
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog\n"), 200)

	var encoded []byte
	c.Encode(data, &encoded)

	var decoded []byte
	consumed, written, ok := c.Decode(encoded, &decoded)
	if !ok || consumed != len(encoded) || written != len(data) || !bytes.Equal(decoded, data) {
		t.Fatalf("multi-page round trip failed")
	}
}
