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

import "github.com/nadavrot/rzc/varint"

// bitwiseContextBits and bitwiseLimit are the settings
// NewDefaultBitwiseModel uses: a 2^7-entry context cache
// renormalized every 400 samples (spec.md §4.5 leaves the context size
// and renormalization limit as tunables, not a wire commitment, the same
// way it treats DMC's topology).
const (
	bitwiseContextBits = 7
	bitwiseLimit       = 400
)

// BitwiseModel is a context-register bit predictor: it keeps the last
// contextBits bits of history as a key into a table of (hits, total)
// counters, one pair per possible context, each initialized (1,1).
// Predict divides through varint.ReciprocalDiv's precomputed table
// instead of a runtime divide. Exposes the same Predict()/Update(bit)
// shape as DMCModel so codec.ArithCodec can use either interchangeably.
type BitwiseModel struct {
	contextBits uint
	limit       uint16
	ctx         uint64
	hits        []uint16
	total       []uint16
}

// NewBitwiseModel creates a model with a 2^contextBits-entry cache,
// each bucket renormalized (halved) once its total reaches limit.
func NewBitwiseModel(contextBits uint, limit uint16) *BitwiseModel {
	size := uint64(1) << contextBits
	m := &BitwiseModel{
		contextBits: contextBits,
		limit:       limit,
		hits:        make([]uint16, size),
		total:       make([]uint16, size),
	}
	for i := range m.hits {
		m.hits[i] = 1
		m.total[i] = 1
	}
	return m
}

// NewDefaultBitwiseModel builds a BitwiseModel using bitwiseContextBits/
// bitwiseLimit, the configuration codec.ArithCodec selects.
func NewDefaultBitwiseModel() *BitwiseModel {
	return NewBitwiseModel(bitwiseContextBits, bitwiseLimit)
}

func (m *BitwiseModel) key() uint64 {
	return m.ctx & ((uint64(1) << m.contextBits) - 1)
}

// Predict returns (hits * 2^16) / (total+1), scaled to the same
// [0,65536) probability-of-1 range entropy.DMCModel.Predict uses.
func (m *BitwiseModel) Predict() uint32 {
	k := m.key()
	hits := uint32(m.hits[k])
	total := uint32(m.total[k]) + 1
	return varint.ReciprocalDiv(hits<<16, total)
}

// Update increments the current bucket's total, increments hits when
// bit is 1, halves both counters once total reaches limit so recent
// history dominates, then shifts bit into the context register.
func (m *BitwiseModel) Update(bit byte) {
	k := m.key()
	m.total[k]++
	m.hits[k] += uint16(bit & 1)

	if m.total[k] >= m.limit {
		m.hits[k] /= 2
		m.total[k] /= 2
	}

	m.ctx = (m.ctx << 1) | uint64(bit&1)
}
