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

// Package lz4 implements the standard LZ4 block format: a single-way
// hashed greedy matcher and the exact token/continuation-byte layout
// described in the LZ4 block specification. Grounded on the teacher's
// (root, non-v2) function/LZ4Codec.go, which documents itself as
// bit-for-bit compatible with LZ4_compress_generic /
// LZ4_decompress_generic from the reference C implementation. The
// encoder here differs from that port in one respect (see Encode), so
// its output can differ from the reference encoder's while remaining a
// valid LZ4 block.
package lz4

import "encoding/binary"

const (
	hashSeed     = 0x9E3779B1
	hashLog      = 12
	hashLog64K   = 13
	maxDistance  = (1 << 16) - 1
	skipStrength = 6
	lastLiterals = 5
	minMatch     = 4
	mfLimit      = 12
	limit64K     = maxDistance + mfLimit
	mlBits       = 4
	mlMask       = (1 << mlBits) - 1
	runBits      = 8 - mlBits
	runMask      = (1 << runBits) - 1
	minLength    = 14
	maxLength    = (32 * 1024 * 1024) - 4 - minMatch
	searchMatchNbInit = 1 << skipStrength
)

// writeLength appends the 0xFF-continuation encoding of length (spec.md
// §4.7) to buf and returns the number of bytes written.
func writeLength(buf []byte, length int) int {
	idx := 0
	for length >= 0x1FE {
		buf[idx] = 0xFF
		buf[idx+1] = 0xFF
		idx += 2
		length -= 0x1FE
	}
	if length >= 0xFF {
		buf[idx] = 0xFF
		idx++
		length -= 0xFF
	}
	buf[idx] = byte(length)
	return idx + 1
}

func writeLastLiterals(src, dst []byte) int {
	dstIdx := 1
	runLength := len(src)

	if runLength >= runMask {
		dst[0] = byte(runMask << mlBits)
		dstIdx += writeLength(dst[1:], runLength-runMask)
	} else {
		dst[0] = byte(runLength << mlBits)
	}

	copy(dst[dstIdx:], src)
	return dstIdx + runLength
}

// MaxEncodedLen returns a safe upper bound on the encoded size for an
// input of srcLen bytes.
func MaxEncodedLen(srcLen int) int {
	return srcLen + (srcLen / 255) + 16
}

func differentInts(a, b []byte) bool {
	return binary.LittleEndian.Uint32(a) != binary.LittleEndian.Uint32(b)
}

// Encode appends the LZ4 block-format encoding of src to dst and
// returns the extended slice. Ported from the teacher's
// LZ4Codec.Forward (single hash table, skip-acceleration search),
// adapted from a fixed-capacity destination buffer to an appending
// slice. Unlike the teacher, every position covered by an emitted match
// is also inserted into the hash table, so a later search picks the
// most recent earlier occurrence (the smallest offset) of a sequence
// that recurs inside a match.
func Encode(src []byte, dst []byte) []byte {
	count := len(src)
	buf := make([]byte, MaxEncodedLen(count))

	if count <= minLength {
		n := writeLastLiterals(src, buf)
		return append(dst, buf[:n]...)
	}

	var hlog uint
	if count < limit64K {
		hlog = hashLog64K
	} else {
		hlog = hashLog
	}
	hashShift := 32 - hlog

	table := make([]int32, 1<<hlog)
	for i := range table {
		table[i] = -1
	}

	srcEnd := count
	matchLimit := srcEnd - lastLiterals
	mfLim := srcEnd - mfLimit
	srcIdx := 0
	dstIdx := 0
	anchor := 0

	hashAt := func(i int) uint32 {
		return (binary.LittleEndian.Uint32(src[i:]) * hashSeed) >> hashShift
	}

	h32 := hashAt(srcIdx)
	table[h32] = int32(srcIdx)
	srcIdx++
	h32 = hashAt(srcIdx)

	for {
		fwdIdx := srcIdx
		step := 1
		searchMatchNb := searchMatchNbInit
		var match int

		for {
			srcIdx = fwdIdx
			fwdIdx += step

			if fwdIdx > mfLim {
				dstIdx += writeLastLiterals(src[anchor:srcEnd], buf[dstIdx:])
				return append(dst, buf[:dstIdx]...)
			}

			step = searchMatchNb >> skipStrength
			searchMatchNb++
			match = int(table[h32])
			table[h32] = int32(srcIdx)
			h32 = hashAt(fwdIdx)

			if match >= 0 && !differentInts(src[srcIdx:], src[match:]) && match > srcIdx-maxDistance {
				break
			}
		}

		for match > 0 && srcIdx > anchor && src[match-1] == src[srcIdx-1] {
			match--
			srcIdx--
		}

		litLength := srcIdx - anchor
		token := dstIdx
		dstIdx++

		if litLength >= runMask {
			buf[token] = byte(runMask << mlBits)
			dstIdx += writeLength(buf[dstIdx:], litLength-runMask)
		} else {
			buf[token] = byte(litLength << mlBits)
		}

		copy(buf[dstIdx:], src[anchor:anchor+litLength])
		dstIdx += litLength

		for {
			buf[dstIdx] = byte(srcIdx - match)
			buf[dstIdx+1] = byte((srcIdx - match) >> 8)
			dstIdx += 2

			matchStart := srcIdx
			srcIdx += minMatch
			match += minMatch
			anchor = srcIdx

			for srcIdx < matchLimit && src[srcIdx] == src[match] {
				srcIdx++
				match++
			}

			// Hash every position the match covers so later searches
			// find the most recent occurrence of a sequence.
			for i := matchStart; i < srcIdx; i++ {
				table[hashAt(i)] = int32(i)
			}

			matchLength := srcIdx - anchor

			if matchLength >= mlMask {
				buf[token] += byte(mlMask)
				dstIdx += writeLength(buf[dstIdx:], matchLength-mlMask)
			} else {
				buf[token] += byte(matchLength)
			}

			anchor = srcIdx

			if srcIdx > mfLim {
				dstIdx += writeLastLiterals(src[anchor:srcEnd], buf[dstIdx:])
				return append(dst, buf[:dstIdx]...)
			}

			h32 = hashAt(srcIdx - 2)
			table[h32] = int32(srcIdx - 2)

			h32 = hashAt(srcIdx)
			match = int(table[h32])
			table[h32] = int32(srcIdx)

			if match < 0 || differentInts(src[srcIdx:], src[match:]) || match <= srcIdx-maxDistance {
				break
			}

			token = dstIdx
			dstIdx++
			buf[token] = 0
		}

		srcIdx++
		h32 = hashAt(srcIdx)
	}
}

// Decode reads one LZ4 block from the front of src, appends the
// reconstructed bytes to dst, and returns (extended dst, bytes
// consumed, ok). Ported from the teacher's LZ4Codec.Inverse, adapted
// to an appending destination and a (consumed, ok) result shape.
func Decode(src []byte, dst []byte) (out []byte, consumed int, ok bool) {
	count := len(src)
	if count == 0 {
		return dst, 0, true
	}

	srcIdx := 0
	start := len(dst)
	out = dst

	grow := func(n int) {
		for len(out) < start+n {
			out = append(out, 0)
		}
	}

	dstIdx := start

	for {
		if srcIdx >= count {
			return dst, 0, false
		}
		token := int(src[srcIdx])
		srcIdx++
		length := token >> mlBits

		if length == runMask {
			for {
				if srcIdx >= count {
					return dst, 0, false
				}
				b := src[srcIdx]
				srcIdx++
				length += int(b)
				if b != 0xFF {
					break
				}
			}
			if length > maxLength {
				return dst, 0, false
			}
		}

		if srcIdx+length > count {
			return dst, 0, false
		}

		grow(dstIdx - start + length)
		copy(out[dstIdx:], src[srcIdx:srcIdx+length])
		srcIdx += length
		dstIdx += length

		if srcIdx >= count {
			return out[:dstIdx], srcIdx, true
		}

		if srcIdx+1 >= count {
			return dst, 0, false
		}

		delta := int(src[srcIdx]) | (int(src[srcIdx+1]) << 8)
		srcIdx += 2
		matchPos := dstIdx - delta
		if matchPos < start {
			return dst, 0, false
		}

		length = token & mlMask
		if length == mlMask {
			for {
				if srcIdx >= count {
					return dst, 0, false
				}
				b := src[srcIdx]
				srcIdx++
				length += int(b)
				if b != 0xFF {
					break
				}
			}
			if length > maxLength {
				return dst, 0, false
			}
		}
		length += minMatch

		grow(dstIdx - start + length)
		for i := 0; i < length; i++ {
			out[dstIdx+i] = out[matchPos+i]
		}
		dstIdx += length

		if srcIdx >= count {
			return out[:dstIdx], srcIdx, true
		}
	}
}
