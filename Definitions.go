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

// Package rzc defines the top level interfaces implemented by the rzc
// lossless data compressor.
//
// The sub-packages (bitvector, entropy, lz, lz4, block, pager, codec)
// make up the compressor; the codec types and lz4.Codec implement these
// interfaces. Callers of the library normally only need the codec
// package and the Context type defined here.
package rzc

// ProgrammingError panics instead of returning an error: it signals API
// misuse (an out-of-range level, n>64 passed to a bit primitive) rather
// than an untrusted-input failure.
type ProgrammingError struct {
	Msg string
}

func (e ProgrammingError) Error() string { return "rzc: programming error: " + e.Msg }

// Context is a small immutable record threaded through encoders. It is
// never required on the decode side: every container this package
// produces is self-describing.
type Context struct {
	// Level selects the matcher/entropy tradeoff, in [1..13]. 13 is
	// reserved for the adaptive-arithmetic/DMC pipeline.
	Level uint8
	// BlockSize is the page size in bytes used by the pager.
	BlockSize int
}

// DefaultContext returns the context used when the caller does not
// specify one explicitly: level 4, 1 MiB pages.
func DefaultContext() Context {
	return Context{Level: 4, BlockSize: 1 << 20}
}

// Encoder writes an encoded form of input into output, appending to
// whatever output already holds, and reports the number of bytes it
// appended.
type Encoder interface {
	// Encode appends the encoded form of input to *output and returns
	// the number of bytes appended.
	Encode(input []byte, output *[]byte) int
}

// Decoder reads an encoded form from the front of input and appends the
// reconstructed bytes to *output. It reports the number of input bytes
// consumed and output bytes written, or ok=false if input is not a
// valid encoding this decoder understands; a caller must discard
// *output on ok=false since it may hold partial data.
//
// ok=false covers every decode-side failure uniformly: signature
// mismatches, truncated length-prefixed fields, impossible varints,
// implausible declared lengths, invalid serialized histograms, entropy
// table reconstruction mismatches, and range decoder underrun all
// collapse to the same boolean rather than a typed error, since no
// caller in this tree distinguishes them beyond "retry is pointless".
type Decoder interface {
	Decode(input []byte, output *[]byte) (consumed int, written int, ok bool)
}
