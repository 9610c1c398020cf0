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

func TestDMCLearnsPeriodicPattern(t *testing.T) {
	pattern := []byte{0, 1, 1, 0}
	m := NewDMCModel()

	var lastPredicted [4]uint32

	for rep := 0; rep < 2000; rep++ {
		for i, bit := range pattern {
			lastPredicted[i] = m.Predict()
			m.Update(bit)
		}
	}

	// lastPredicted[i] is P(bit=1) observed right before the Update
	// call that consumed pattern[i] on the final repetition.
	if lastPredicted[0] >= 40 {
		t.Errorf("phase 0 (expect bit 0): predicted P(1)=%d, want <40", lastPredicted[0])
	}
	if lastPredicted[1] <= 65000 {
		t.Errorf("phase 1 (expect bit 1): predicted P(1)=%d, want >65000", lastPredicted[1])
	}
	if lastPredicted[2] <= 65000 {
		t.Errorf("phase 2 (expect bit 1): predicted P(1)=%d, want >65000", lastPredicted[2])
	}
	if lastPredicted[3] >= 40 {
		t.Errorf("phase 3 (expect bit 0): predicted P(1)=%d, want <40", lastPredicted[3])
	}
}

func TestDMCNeutralOnFreshModel(t *testing.T) {
	m := NewDMCModel()
	if p := m.Predict(); p != 1<<15 {
		t.Fatalf("fresh model predicted %d, want neutral %d", p, 1<<15)
	}
}

func TestDMCResetsOnNodeCap(t *testing.T) {
	m := NewDMCModel()

	// Force repeated clones by alternating bits enough times to exceed
	// the node cap; the model must not grow without bound.
	for i := 0; i < 4*dmcMaxNodes; i++ {
		m.Update(byte(i % 2))
		if len(m.nodes) > dmcMaxNodes {
			t.Fatalf("node arena grew past cap: %d > %d", len(m.nodes), dmcMaxNodes)
		}
	}
}
