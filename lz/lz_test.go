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

package lz

import (
	"bytes"
	"math/rand"
	"testing"
)

func checkPackets(t *testing.T, src []byte, packets []Packet) {
	t.Helper()

	if len(packets) == 0 {
		if len(src) != 0 {
			t.Fatalf("no packets emitted for non-empty input of length %d", len(src))
		}
		return
	}

	var out bytes.Buffer
	for i, pk := range packets {
		out.Write(src[pk.LitStart:pk.LitEnd])

		if pk.MatLen == 0 {
			if i != len(packets)-1 {
				t.Fatalf("packet %d has empty match but is not last", i)
			}
			continue
		}

		if pk.MatLen < 4 {
			t.Fatalf("packet %d: match length %d < MIN_MATCH", i, pk.MatLen)
		}

		for k := 0; k < pk.MatLen; k++ {
			pos := out.Len()
			ref := pos - pk.MatOffset
			if ref < 0 {
				t.Fatalf("packet %d: match references before start of output", i)
			}
			b := out.Bytes()[ref]
			out.WriteByte(b)
		}
	}

	if !bytes.Equal(out.Bytes(), src) {
		t.Fatalf("reconstructed output does not match input (len %d vs %d)", out.Len(), len(src))
	}
}

func TestGreedyMatchRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := levelParams[4]

	inputs := [][]byte{
		nil,
		[]byte("a"),
		[]byte("abc"),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		bytes.Repeat([]byte("abcabcabcabc"), 200),
		[]byte("this is a test \nthis is a test \nthis is a simple test for lz4 \n"),
	}

	randomInput := make([]byte, 5000)
	rng.Read(randomInput)
	inputs = append(inputs, randomInput)

	for idx, in := range inputs {
		packets := GreedyMatch(in, p)
		checkPackets(t, in, packets)
		_ = idx
	}
}

func TestOptimalMatchRoundTrip(t *testing.T) {
	p := optimalParams[1]

	inputs := [][]byte{
		nil,
		[]byte("a"),
		bytes.Repeat([]byte("xyz123"), 500),
	}

	for _, in := range inputs {
		packets := OptimalMatch(in, p)
		checkPackets(t, in, packets)
	}
}

func TestSelectMatcherRejectsOutOfRangeLevel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-range level")
		}
	}()
	SelectMatcher(13)
}

func TestSelectMatcherAllLevelsRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("hello world, hello lz world"), 100)

	for level := uint8(1); level <= 12; level++ {
		m := SelectMatcher(level)
		packets := m(data)
		checkPackets(t, data, packets)
	}
}
