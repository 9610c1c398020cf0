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

// Package codec implements the top-level orchestrators: NopCodec (the
// identity fallback), ArithCodec (adaptive arithmetic coding driven by a
// DMC or bitwise context model), and FullCodec (the pager+block / arithmetic dispatcher).
// Grounded on the teacher's entropy/NullEntropyCodec.go for the
// identity/Nop shape.
package codec

import (
	"github.com/nadavrot/rzc"
	"github.com/nadavrot/rzc/varint"
)

// NopCodec frames input unchanged behind rzc.NopSig, used whenever a
// downstream coder fails to shrink its input.
type NopCodec struct{}

// Encode implements rzc.Encoder.
func (NopCodec) Encode(input []byte, output *[]byte) int {
	start := len(*output)
	*output = append(*output, rzc.NopSig...)
	*output = varint.PutArray(*output, input)
	return len(*output) - start
}

// Decode implements rzc.Decoder.
func (NopCodec) Decode(input []byte, output *[]byte) (consumed int, written int, ok bool) {
	if !rzc.HasPrefix(input, rzc.NopSig) {
		return 0, 0, false
	}
	rest := input[len(rzc.NopSig):]
	payload, n, arrOk := varint.GetArray(rest)
	if !arrOk {
		return 0, 0, false
	}
	*output = append(*output, payload...)
	return len(rzc.NopSig) + n, len(payload), true
}
