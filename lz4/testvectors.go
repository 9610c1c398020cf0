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

package lz4

// canonicalPlain and canonicalCompressed are a known-good LZ4 block
// encode/decode pair used to pin the token layout exactly: three
// repeats of a short sentence, the last one truncated.
var canonicalPlain = []byte{
	0x74, 0x68, 0x69, 0x73, 0x20, 0x69, 0x73, 0x20, 0x61, 0x20, 0x74, 0x65,
	0x73, 0x74, 0x20, 0xa, 0x74, 0x68, 0x69, 0x73, 0x20, 0x69, 0x73, 0x20,
	0x61, 0x20, 0x74, 0x65, 0x73, 0x74, 0x20, 0xa, 0x74, 0x68, 0x69, 0x73,
	0x20, 0x69, 0x73, 0x20, 0x61, 0x20, 0x73, 0x69, 0x6d, 0x70, 0x6c, 0x65,
	0x20, 0x74, 0x65, 0x73, 0x74, 0x20, 0x66, 0x6f, 0x72, 0x20, 0x6c, 0x7a,
	0x34, 0x20, 0xa,
}

var canonicalCompressed = []byte{
	0xff, 0x1, 0x74, 0x68, 0x69, 0x73, 0x20, 0x69, 0x73, 0x20, 0x61, 0x20,
	0x74, 0x65, 0x73, 0x74, 0x20, 0xa, 0x10, 0x0, 0x7, 0x62, 0x73, 0x69, 0x6d,
	0x70, 0x6c, 0x65, 0x17, 0x0, 0x90, 0x66, 0x6f, 0x72, 0x20, 0x6c, 0x7a,
	0x34, 0x20, 0xa,
}
