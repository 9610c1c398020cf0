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

// Package varint implements the small fixed- and variable-width integer
// primitives shared by the entropy and block codecs: a 0xFF-continuation
// varint, fixed big-endian u16/u32, length-prefixed byte arrays, RLE,
// and a reciprocal lookup table for fast division by small divisors.
package varint

import "encoding/binary"

// PutU16 appends a big-endian uint16 to dst.
func PutU16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

// GetU16 reads a big-endian uint16 from the front of src.
func GetU16(src []byte) (uint16, int, bool) {
	if len(src) < 2 {
		return 0, 0, false
	}
	return binary.BigEndian.Uint16(src), 2, true
}

// PutU32 appends a big-endian uint32 to dst.
func PutU32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

// GetU32 reads a big-endian uint32 from the front of src.
func GetU32(src []byte) (uint32, int, bool) {
	if len(src) < 4 {
		return 0, 0, false
	}
	return binary.BigEndian.Uint32(src), 4, true
}

// WriteVarInt appends v to dst as a sequence of 0xFF continuation bytes
// (each worth 255) followed by a final byte strictly less than 255.
func WriteVarInt(dst []byte, v uint32) []byte {
	for v >= 255 {
		dst = append(dst, 0xFF)
		v -= 255
	}
	return append(dst, byte(v))
}

// ReadVarInt decodes a varint from the front of src. It fails (ok=false)
// on buffer underrun, i.e. if a terminating byte (<0xFF) is never found
// before src is exhausted.
func ReadVarInt(src []byte) (value uint32, consumed int, ok bool) {
	var v uint32
	i := 0
	for {
		if i >= len(src) {
			return 0, 0, false
		}
		b := src[i]
		i++
		if b == 0xFF {
			v += 255
			continue
		}
		v += uint32(b)
		return v, i, true
	}
}

// PutArray appends a u32 length prefix followed by the raw bytes of buf.
func PutArray(dst []byte, buf []byte) []byte {
	dst = PutU32(dst, uint32(len(buf)))
	return append(dst, buf...)
}

// GetArray reads a length-prefixed byte array from the front of src. It
// fails if src is truncated before the declared length is reached.
func GetArray(src []byte) (buf []byte, consumed int, ok bool) {
	n, c, ok := GetU32(src)
	if !ok {
		return nil, 0, false
	}
	src = src[c:]
	if uint32(len(src)) < n {
		return nil, 0, false
	}
	return src[:n], c + int(n), true
}

// PutRLE run-length encodes values as a u32 logical length followed by
// (run, value) byte pairs. Runs longer than 255 are split into several
// pairs.
func PutRLE(dst []byte, values []byte) []byte {
	dst = PutU32(dst, uint32(len(values)))

	i := 0
	for i < len(values) {
		v := values[i]
		j := i + 1
		for j < len(values) && values[j] == v && j-i < 255 {
			j++
		}
		dst = append(dst, byte(j-i), v)
		i = j
	}

	return dst
}

// GetRLE decodes a buffer written by PutRLE.
func GetRLE(src []byte) (values []byte, consumed int, ok bool) {
	n, c, ok := GetU32(src)
	if !ok {
		return nil, 0, false
	}
	src = src[c:]
	consumed = c

	out := make([]byte, 0, n)
	for uint32(len(out)) < n {
		if len(src) < 2 {
			return nil, 0, false
		}
		run := src[0]
		v := src[1]
		src = src[2:]
		consumed += 2
		for k := byte(0); k < run; k++ {
			out = append(out, v)
		}
	}

	if uint32(len(out)) != n {
		return nil, 0, false
	}

	return out, consumed, true
}

// reciprocalMax bounds the divisors ReciprocalDiv can serve directly out
// of the precomputed table. It covers every divisor entropy.BitwiseModel
// can produce (a bucket's total+1, capped by the model's renormalization
// limit), not just the [1,256) range a byte-sized divisor would need.
const reciprocalMax = 1 << 12

// reciprocal holds, for each divisor d in [1,reciprocalMax), a
// fixed-point reciprocal approximation of 1/d scaled by 1<<32, so that
// x/d can be approximated as (x * reciprocal[d]) >> 32. entropy.BitwiseModel
// drives this with its per-bucket total, which climbs well past 255
// before renormalization, hence the wider table than a byte divisor needs.
var reciprocal [reciprocalMax]uint64

func init() {
	reciprocal[0] = 0
	for d := 1; d < reciprocalMax; d++ {
		reciprocal[d] = (uint64(1) << 32) / uint64(d)
	}
}

// ReciprocalDiv divides x by d (1 <= d < reciprocalMax) using a
// precomputed reciprocal instead of a hardware division, and corrects
// the rare off-by-one from the fixed-point approximation.
func ReciprocalDiv(x uint32, d uint32) uint32 {
	if d == 0 || d >= reciprocalMax {
		panic("varint: ReciprocalDiv divisor out of range")
	}
	q := uint32((uint64(x) * reciprocal[d]) >> 32)
	for (q+1)*d <= x {
		q++
	}
	for q > 0 && q*d > x {
		q--
	}
	return q
}
