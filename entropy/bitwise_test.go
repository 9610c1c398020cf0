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

package entropy

import "testing"

func TestBitwiseModelInitialPredictionIsNeutral(t *testing.T) {
	m := NewDefaultBitwiseModel()
	if p := m.Predict(); p != 32768 {
		t.Fatalf("Predict() = %d, want 32768 for an untrained (1,1) bucket", p)
	}
}

func TestBitwiseModelConvergesHighAfterRepeatedOnes(t *testing.T) {
	m := NewBitwiseModel(7, 256)
	for i := 0; i < 10000; i++ {
		m.Update(1)
	}
	if p := m.Predict(); p < 65000 {
		t.Fatalf("Predict() = %d, want > 65000 after training on all 1 bits", p)
	}
}

func TestBitwiseModelConvergesLowAfterRepeatedZeros(t *testing.T) {
	m := NewBitwiseModel(7, 256)
	for i := 0; i < 10000; i++ {
		m.Update(0)
	}
	if p := m.Predict(); p > 1000 {
		t.Fatalf("Predict() = %d, want < 1000 after training on all 0 bits", p)
	}
}

// TestBitwiseModelTracksDistinctContexts confirms each context key owns
// an independent bucket: training context 0000 to predict 1 must not
// move the prediction for the unrelated context 1111, or vice versa.
func TestBitwiseModelTracksDistinctContexts(t *testing.T) {
	m := NewBitwiseModel(4, 256)

	for i := 0; i < 500; i++ {
		m.ctx = 0
		m.Update(1)
	}
	m.ctx = 0
	highPred := m.Predict()
	if highPred < 65000 {
		t.Fatalf("context 0000: Predict() = %d, want > 65000", highPred)
	}

	for i := 0; i < 500; i++ {
		m.ctx = 0xF
		m.Update(0)
	}
	m.ctx = 0xF
	lowPred := m.Predict()
	if lowPred > 1000 {
		t.Fatalf("context 1111: Predict() = %d, want < 1000", lowPred)
	}

	m.ctx = 0
	stillHigh := m.Predict()
	if stillHigh < 65000 {
		t.Fatalf("context 0000 bucket changed after training context 1111: Predict() = %d", stillHigh)
	}
}

func TestBitwiseModelRenormalizesAtLimit(t *testing.T) {
	m := NewBitwiseModel(1, 8)
	for i := 0; i < 100; i++ {
		m.Update(1)
	}
	k := m.key()
	if m.total[k] >= 8 {
		t.Fatalf("total = %d, want < limit (8) after renormalization", m.total[k])
	}
}
