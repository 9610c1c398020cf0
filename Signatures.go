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

package rzc

// Wire signatures: fixed byte strings identifying each sub-format. Every
// container produced by this module starts with one of these, so a
// decoder can always tell which sub-codec to dispatch to without
// external context.
var (
	LZ4Sig        = []byte{0x17, 0x41, 0x74, 0x17}
	NopSig        = []byte{0x90, 0x90}
	SimpleSig     = []byte{0x12, 0x22}
	BlockSig      = []byte{0x13, 0x2D}
	ArithSig      = []byte{0x01, 0x0A}
	PagerSig      = []byte{0x9A, 0x93, 0x9A, 0x93}
	StartPageSig  = []byte{0x71, 0x4B}
	FullSig       = []byte{0x10, 0x14, 0x82, 0x35}
)

// FileExtension is the canonical extension for containers produced by
// this module.
const FileExtension = ".rz"

// HasPrefix reports whether buf starts with sig without allocating.
func HasPrefix(buf, sig []byte) bool {
	if len(buf) < len(sig) {
		return false
	}
	for i := range sig {
		if buf[i] != sig[i] {
			return false
		}
	}
	return true
}
