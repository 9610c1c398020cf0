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
	"github.com/nadavrot/rzc"
	"github.com/nadavrot/rzc/block"
	"github.com/nadavrot/rzc/lz"
	"github.com/nadavrot/rzc/pager"
)

// SlowLevel is the designated "slow/strong" level that selects the
// adaptive arithmetic/DMC pipeline instead of pager+block, per spec.md
// §4.11.
const SlowLevel = 13

// FullCodec is the top-level orchestrator: it writes rzc.FullSig, then
// either delegates to the pager with a Nop-wrapped block encoder, or (at
// SlowLevel) to ArithCodec.
type FullCodec struct {
	Ctx rzc.Context
}

// Encode implements rzc.Encoder.
func (c FullCodec) Encode(input []byte, output *[]byte) int {
	start := len(*output)
	*output = append(*output, rzc.FullSig...)

	if c.Ctx.Level == SlowLevel {
		var arith ArithCodec
		arith.Encode(input, output)
		return len(*output) - start
	}

	matcher := lz.SelectMatcher(c.Ctx.Level)
	paged := pager.Encode(input, c.Ctx.BlockSize, func(page []byte) []byte {
		return encodePageWithNopFallback(page, matcher)
	})
	*output = append(*output, paged...)
	return len(*output) - start
}

// Decode implements rzc.Decoder.
func (c FullCodec) Decode(input []byte, output *[]byte) (consumed int, written int, ok bool) {
	if !rzc.HasPrefix(input, rzc.FullSig) {
		return 0, 0, false
	}
	rest := input[len(rzc.FullSig):]

	if rzc.HasPrefix(rest, rzc.ArithSig) {
		var arith ArithCodec
		n, w, decOk := arith.Decode(rest, output)
		if !decOk {
			return 0, 0, false
		}
		return len(rzc.FullSig) + n, w, true
	}

	out, n, decOk := pager.Decode(rest, decodePageWithNopFallback)
	if !decOk {
		return 0, 0, false
	}
	*output = append(*output, out...)
	return len(rzc.FullSig) + n, len(out), true
}

// encodePageWithNopFallback block-encodes a page, falling back to the
// Nop codec when the block encoding does not shrink the page.
func encodePageWithNopFallback(page []byte, matcher func([]byte) []lz.Packet) []byte {
	encoded := block.Encode(page, matcher)
	if len(encoded) < len(page) {
		return encoded
	}

	var nopOut []byte
	var nop NopCodec
	nop.Encode(page, &nopOut)
	return nopOut
}

// decodePageWithNopFallback reverses encodePageWithNopFallback: it tries
// the block decoder, then the Nop decoder, per spec.md §4.8 ("on any
// tANS failure for a stream it retries with the Nop decoder" extended
// here to the whole-page fallback choice made at encode time).
func decodePageWithNopFallback(src []byte) ([]byte, int, bool) {
	if rzc.HasPrefix(src, rzc.BlockSig) {
		return block.Decode(src)
	}

	var nop NopCodec
	var out []byte
	n, w, ok := nop.Decode(src, &out)
	if !ok {
		return nil, 0, false
	}
	return out[:w], n, true
}
