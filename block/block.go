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
	"github.com/nadavrot/rzc"
	"github.com/nadavrot/rzc/bitvector"
	"github.com/nadavrot/rzc/lz"
	"github.com/nadavrot/rzc/varint"
)

// TableSize is the tANS table size used for every stream coded by this
// package (spec.md §4.4/§9 treats it as a tunable, not a wire
// commitment, but it must agree between encode and decode).
const TableSize = 1 << 12

// Encode runs matcher over page, splits the resulting packets into the
// four streams of spec.md §4.8, entropy-codes each (tANS with Nop
// fallback), and frames the page behind rzc.BlockSig.
func Encode(page []byte, matcher func([]byte) []lz.Packet) []byte {
	packets := matcher(page)

	var literals []byte
	litLens := make([]uint32, 0, len(packets))
	matLens := make([]uint32, 0, len(packets))
	offsetEmits := make([]uint32, 0, len(packets))

	var hist offsetHistory

	for _, p := range packets {
		literals = append(literals, page[p.LitStart:p.LitEnd]...)
		litLens = append(litLens, uint32(p.LitEnd-p.LitStart))
		matLens = append(matLens, uint32(p.MatLen))

		var raw uint32
		if p.MatLen != 0 {
			raw = uint32(p.MatOffset) + 3
		}
		offsetEmits = append(offsetEmits, hist.substitute(raw))
	}

	litLensBuf := varintEncodeAll(litLens)
	matLensBuf := varintEncodeAll(matLens)

	codes, bv := encodeTwoStream(offsetEmits)
	offsetsPayload := encodeStream(codes, TableSize)
	offsetsPayload = bv.Serialize(offsetsPayload)

	var out []byte
	out = append(out, rzc.BlockSig...)
	out = varint.PutArray(out, encodeStream(literals, TableSize))
	out = varint.PutArray(out, encodeStream(litLensBuf, TableSize))
	out = varint.PutArray(out, offsetsPayload)
	out = varint.PutArray(out, encodeStream(matLensBuf, TableSize))
	return out
}

// Decode reverses Encode, reconstructing the page from a byte sequence
// beginning with rzc.BlockSig.
func Decode(src []byte) (page []byte, consumed int, ok bool) {
	if !rzc.HasPrefix(src, rzc.BlockSig) {
		return nil, 0, false
	}
	rest := src[len(rzc.BlockSig):]
	total := len(rzc.BlockSig)

	literalsArr, n, arrOk := varint.GetArray(rest)
	if !arrOk {
		return nil, 0, false
	}
	rest = rest[n:]
	total += n

	litLensArr, n, arrOk := varint.GetArray(rest)
	if !arrOk {
		return nil, 0, false
	}
	rest = rest[n:]
	total += n

	offsetsArr, n, arrOk := varint.GetArray(rest)
	if !arrOk {
		return nil, 0, false
	}
	rest = rest[n:]
	total += n

	matLensArr, n, arrOk := varint.GetArray(rest)
	if !arrOk {
		return nil, 0, false
	}
	total += n

	literals, _, decOk := decodeStream(literalsArr, TableSize)
	if !decOk {
		return nil, 0, false
	}

	litLensBuf, _, decOk := decodeStream(litLensArr, TableSize)
	if !decOk {
		return nil, 0, false
	}
	litLens, litOk := varintDecodeAll(litLensBuf)
	if !litOk {
		return nil, 0, false
	}

	matLensBuf, _, decOk := decodeStream(matLensArr, TableSize)
	if !decOk {
		return nil, 0, false
	}
	matLens, matOk := varintDecodeAll(matLensBuf)
	if !matOk {
		return nil, 0, false
	}

	if len(litLens) != len(matLens) {
		return nil, 0, false
	}
	count := len(litLens)

	codes, cn, decOk := decodeStream(offsetsArr, TableSize)
	if !decOk || len(codes) != count {
		return nil, 0, false
	}
	bv, _, bvOk := bitvector.Deserialize(offsetsArr[cn:])
	if !bvOk {
		return nil, 0, false
	}
	offsetEmits := decodeTwoStream(codes, bv)

	var hist offsetHistory
	litCursor := 0
	var out []byte

	for i := 0; i < count; i++ {
		ll := int(litLens[i])
		if litCursor+ll > len(literals) {
			return nil, 0, false
		}
		out = append(out, literals[litCursor:litCursor+ll]...)
		litCursor += ll

		raw := hist.resolve(offsetEmits[i])
		ml := int(matLens[i])
		if ml == 0 {
			continue
		}
		if raw < 3 {
			return nil, 0, false
		}
		matOffset := int(raw - 3)
		if matOffset <= 0 || matOffset > len(out) {
			return nil, 0, false
		}
		base := len(out) - matOffset
		for k := 0; k < ml; k++ {
			out = append(out, out[base+k])
		}
	}

	return out, total, true
}

func varintEncodeAll(vals []uint32) []byte {
	var buf []byte
	for _, v := range vals {
		buf = varint.WriteVarInt(buf, v)
	}
	return buf
}

func varintDecodeAll(buf []byte) ([]uint32, bool) {
	var vals []uint32
	for len(buf) > 0 {
		v, n, ok := varint.ReadVarInt(buf)
		if !ok {
			return nil, false
		}
		vals = append(vals, v)
		buf = buf[n:]
	}
	return vals, true
}
