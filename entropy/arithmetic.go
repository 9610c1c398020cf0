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

import "fmt"

// BitonicEncoder is a 32-bit binary range coder: it narrows a [low,high]
// interval according to an externally supplied probability for each
// bit, the way the teacher's BinaryEntropyEncoder narrows a 56-bit
// interval around an external Predictor. The interval here is
// deliberately the narrower 32-bit form spec.md §4.5 calls for.
type BitonicEncoder struct {
	low  uint32
	high uint32
	out  []byte
}

// NewBitonicEncoder creates an encoder that appends emitted bytes to buf.
func NewBitonicEncoder(buf []byte) *BitonicEncoder {
	return &BitonicEncoder{low: 0, high: 0xFFFFFFFF, out: buf}
}

// EncodeBit encodes bit (0 or 1) given p, the probability (scaled to
// [0,65536)) that the bit is 1.
func (e *BitonicEncoder) EncodeBit(bit int, p uint32) {
	mid := e.low + uint32((uint64(e.high-e.low)*uint64(p))>>16)

	if bit != 0 {
		e.high = mid
	} else {
		e.low = mid + 1
	}

	for (e.low^e.high)&0xFF000000 == 0 {
		e.out = append(e.out, byte(e.low>>24))
		e.low <<= 8
		e.high = (e.high << 8) | 0xFF
	}
}

// Finish flushes the final state by encoding a bit with probability 0,
// then writes all four bytes of low, and returns the encoded bytes. The
// stream is therefore always at least 4 bytes long, and the decoder
// (which seeds its state from 4 bytes and reads one more per
// renormalization) never needs bytes past its end.
func (e *BitonicEncoder) Finish() []byte {
	e.EncodeBit(0, 0)
	for i := 0; i < 4; i++ {
		e.out = append(e.out, byte(e.low>>24))
		e.low <<= 8
	}
	return e.out
}

// BitonicDecoder mirrors BitonicEncoder.
type BitonicDecoder struct {
	low   uint32
	high  uint32
	state uint32
	in    []byte
	pos   int
}

// NewBitonicDecoder creates a decoder reading from the front of buf. It
// fails if buf holds fewer than 4 bytes, since that many are required
// to seed state.
func NewBitonicDecoder(buf []byte) (*BitonicDecoder, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("entropy: arithmetic decoder needs at least 4 bytes, got %d", len(buf))
	}

	d := &BitonicDecoder{low: 0, high: 0xFFFFFFFF, in: buf}
	for i := 0; i < 4; i++ {
		d.state = (d.state << 8) | uint32(d.in[d.pos])
		d.pos++
	}
	return d, nil
}

// DecodeBit decodes one bit given the same probability p the encoder
// used for the matching EncodeBit call.
func (d *BitonicDecoder) DecodeBit(p uint32) (int, error) {
	mid := d.low + uint32((uint64(d.high-d.low)*uint64(p))>>16)

	var bit int
	if d.state <= mid {
		bit = 1
		d.high = mid
	} else {
		bit = 0
		d.low = mid + 1
	}

	for (d.low^d.high)&0xFF000000 == 0 {
		d.low <<= 8
		d.high = (d.high << 8) | 0xFF
		d.state <<= 8

		if d.pos < len(d.in) {
			d.state |= uint32(d.in[d.pos])
			d.pos++
		} else if d.pos == len(d.in) {
			// Padding beyond the real stream is allowed (the encoder
			// is not required to emit trailing zero bytes), but
			// tracking pos lets us distinguish genuine underrun below.
			d.pos++
		} else {
			return 0, fmt.Errorf("entropy: arithmetic decoder underrun")
		}
	}

	return bit, nil
}
