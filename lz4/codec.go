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

import "github.com/nadavrot/rzc"

// Codec frames a single LZ4 block behind rzc.LZ4Sig, an original-size
// header and a block-length header, satisfying rzc.Encoder/rzc.Decoder.
// The container layout is
//
//	sig(4) | originalSize(u32 BE) | blockLen(u32 BE) | block bytes
//
// matching spec.md §6; the explicit blockLen lets a decoder pull exactly
// one block out of a larger buffer (the decode side never needs the
// encoder's Context).
type Codec struct{}

// Encode implements rzc.Encoder.
func (Codec) Encode(input []byte, output *[]byte) int {
	start := len(*output)

	block := Encode(input, nil)

	*output = append(*output, rzc.LZ4Sig...)
	*output = append(*output, 0, 0, 0, 0, 0, 0, 0, 0)
	binaryPutU32(*output, len(*output)-8, uint32(len(input)))
	binaryPutU32(*output, len(*output)-4, uint32(len(block)))
	*output = append(*output, block...)

	return len(*output) - start
}

// Decode implements rzc.Decoder.
func (Codec) Decode(input []byte, output *[]byte) (consumed int, written int, ok bool) {
	if !rzc.HasPrefix(input, rzc.LZ4Sig) {
		return 0, 0, false
	}
	rest := input[len(rzc.LZ4Sig):]
	if len(rest) < 8 {
		return 0, 0, false
	}
	originalSize := binaryGetU32(rest)
	blockLen := binaryGetU32(rest[4:])
	rest = rest[8:]

	if uint32(len(rest)) < blockLen {
		return 0, 0, false
	}
	block := rest[:blockLen]

	start := len(*output)
	out, n, decOk := Decode(block, *output)
	if !decOk || uint32(n) != blockLen {
		return 0, 0, false
	}
	*output = out
	if uint32(len(*output)-start) != originalSize {
		*output = (*output)[:start]
		return 0, 0, false
	}
	return len(rzc.LZ4Sig) + 8 + int(blockLen), len(*output) - start, true
}

func binaryPutU32(b []byte, at int, v uint32) {
	b[at] = byte(v >> 24)
	b[at+1] = byte(v >> 16)
	b[at+2] = byte(v >> 8)
	b[at+3] = byte(v)
}

func binaryGetU32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
