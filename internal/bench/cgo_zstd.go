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

//go:build cgo

package bench

import "github.com/valyala/gozstd"

func init() {
	Register(Comparator{Name: "zstd-cgo", Compress: compressZstdCgo})
}

// compressZstdCgo wraps the cgo-bound valyala/gozstd at its default
// level, exactly the role dsnet-compress/internal/tool/bench/cgo_zlib.go
// plays for zlib: a build-tag-gated comparator that only links when cgo
// is available.
func compressZstdCgo(data []byte) ([]byte, error) {
	return gozstd.Compress(nil, data), nil
}
