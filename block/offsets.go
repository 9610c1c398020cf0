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

package block

import (
	"math/bits"

	"github.com/nadavrot/rzc/bitvector"
)

// offsetHistory is the 3-slot most-recently-used offset cache of spec.md
// §4.8 step 3: p1 is the most recent raw value, p3 the oldest.
type offsetHistory struct {
	p1, p2, p3 uint32
}

// substitute returns the value to emit for raw (a token 0/1/2 on a
// recency hit, otherwise raw itself unmodified) and then slides raw into
// the history regardless of whether it hit.
func (h *offsetHistory) substitute(raw uint32) uint32 {
	var emit uint32
	switch raw {
	case h.p1:
		emit = 0
	case h.p2:
		emit = 1
	case h.p3:
		emit = 2
	default:
		emit = raw
	}
	h.p3, h.p2, h.p1 = h.p2, h.p1, raw
	return emit
}

// resolve reverses substitute: given the stream value, look up the
// actual raw value (itself, unless it is a 0/1/2 recency token) and
// slide it into the history the same way the encoder did.
func (h *offsetHistory) resolve(v uint32) uint32 {
	var raw uint32
	switch v {
	case 0:
		raw = h.p1
	case 1:
		raw = h.p2
	case 2:
		raw = h.p3
	default:
		raw = v
	}
	h.p3, h.p2, h.p1 = h.p2, h.p1, raw
	return raw
}

// twoStreamCode returns floor(log2(v+1)), the code-length token of
// spec.md §4.9.
func twoStreamCode(v uint32) byte {
	return byte(bits.Len32(v + 1)) - 1
}

// encodeTwoStream splits vals into a per-value code-length byte array
// and a bitvector of extra bits, per spec.md §4.9. Values are pushed in
// forward order; since the bitvector is LIFO, decodeTwoStream must pop
// them in reverse order and reverse the result.
func encodeTwoStream(vals []uint32) (codes []byte, bv *bitvector.Bitvector) {
	codes = make([]byte, len(vals))
	bv = bitvector.New()

	for i, v := range vals {
		code := twoStreamCode(v)
		codes[i] = code
		extra := v + 1
		bv.PushWord(uint64(extra), uint(code))
	}

	return codes, bv
}

// decodeTwoStream reverses encodeTwoStream given the already-decoded
// per-value codes and the bitvector of extra bits.
func decodeTwoStream(codes []byte, bv *bitvector.Bitvector) []uint32 {
	n := len(codes)
	vals := make([]uint32, n)

	for i := n - 1; i >= 0; i-- {
		code := uint(codes[i])
		extra := bv.PopWord(code)
		vals[i] = uint32((uint64(1)<<code)+extra) - 1
	}

	return vals
}
