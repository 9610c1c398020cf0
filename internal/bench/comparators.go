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

package bench

import (
	"bytes"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func init() {
	Register(Comparator{Name: "lz4", Compress: compressLZ4})
	Register(Comparator{Name: "flate", Compress: compressFlate})
	Register(Comparator{Name: "zstd-pure", Compress: compressZstdPure})
}

// compressLZ4 wraps pierrec/lz4's streaming writer, an established LZ4
// implementation used here only as a ratio/timing baseline.
func compressLZ4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// compressFlate wraps klauspost/compress/flate at its default level, a
// general baseline for how a conventional Huffman+LZ77 codec fares
// against rzc's tANS+LZ full pipeline on the same input.
func compressFlate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// compressZstdPure uses klauspost/compress's pure-Go zstd encoder. It is
// registered unconditionally (unlike the cgo-bound valyala/gozstd
// comparator in cgo_zstd.go) so the bench set always has one modern
// dictionary-based entropy coder to compare against even in cgo-free
// builds.
func compressZstdPure(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
