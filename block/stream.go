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

// Package block implements the full-pipeline per-page codec: LZ packets
// are split into parallel streams (literals, lengths, offsets), each
// entropy-coded with a tANS/Nop choice, and framed behind BLOCK_SIG.
package block

import (
	"github.com/nadavrot/rzc"
	"github.com/nadavrot/rzc/entropy"
	"github.com/nadavrot/rzc/varint"
)

// encodeStream entropy-codes data with tANS, falling back to Nop framing
// when data is empty, tANS fails to produce a usable table, or the tANS
// payload is not smaller than data (spec.md §4.8 step 5). Frame:
// sig(2) | count:u32 | payload.
func encodeStream(data []byte, tableSize int) []byte {
	var out []byte

	if payload, ok := entropy.EncodeStream(data, tableSize); ok && len(payload) < len(data) {
		out = append(out, rzc.SimpleSig...)
		out = varint.PutU32(out, uint32(len(data)))
		out = append(out, payload...)
		return out
	}

	out = append(out, rzc.NopSig...)
	out = varint.PutU32(out, uint32(len(data)))
	out = append(out, data...)
	return out
}

// decodeStream reverses encodeStream.
func decodeStream(src []byte, tableSize int) (data []byte, consumed int, ok bool) {
	switch {
	case rzc.HasPrefix(src, rzc.SimpleSig):
		rest := src[len(rzc.SimpleSig):]
		count, n, okU := varint.GetU32(rest)
		if !okU {
			return nil, 0, false
		}
		rest = rest[n:]
		data, dn, decOk := entropy.DecodeStream(rest, int(count), tableSize)
		if !decOk {
			return nil, 0, false
		}
		return data, len(rzc.SimpleSig) + n + dn, true

	case rzc.HasPrefix(src, rzc.NopSig):
		rest := src[len(rzc.NopSig):]
		count, n, okU := varint.GetU32(rest)
		if !okU {
			return nil, 0, false
		}
		rest = rest[n:]
		if uint32(len(rest)) < count {
			return nil, 0, false
		}
		return rest[:count], len(rzc.NopSig) + n + int(count), true

	default:
		return nil, 0, false
	}
}
