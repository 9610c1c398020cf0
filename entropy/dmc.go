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

// dmcLevels is the node count of the initial cycle topology. spec.md §9
// notes the source oscillates between a tree-of-depth-3-4 and a
// cycle-of-16 initial topology and recommends the cycle form; this
// implementation always uses a cycle, sized within the spec's allowed
// [3,16] range.
const dmcLevels = 8

// dmcCloneThreshold is the minimum edge-use count before a transition is
// eligible for cloning.
const dmcCloneThreshold = 16

// dmcMaxNodes bounds the arena; exceeding it triggers a full reset to
// the initial topology (spec.md §3/§5: "hard cap on node count triggers
// a full reset").
const dmcMaxNodes = 1 << 16

// dmcNode is one vertex of the DMC bit-history graph: two outgoing
// transitions (indexed by the next bit) and per-edge observation
// counts. Represented as an arena entry (no pointers/reference
// counting) per DESIGN.md's note on cyclic structures.
type dmcNode struct {
	next   [2]uint32
	counts [2]uint16
}

// DMCModel is an adaptive bit-probability Predictor backed by a growable
// Dynamic Markov Compression state graph.
type DMCModel struct {
	nodes   []dmcNode
	current uint32
}

// NewDMCModel builds a DMC model in its initial cycle topology.
func NewDMCModel() *DMCModel {
	m := &DMCModel{}
	m.reset()
	return m
}

func (m *DMCModel) reset() {
	m.nodes = make([]dmcNode, dmcLevels)
	for i := range m.nodes {
		next := uint32((i + 1) % dmcLevels)
		m.nodes[i] = dmcNode{next: [2]uint32{next, next}}
	}
	m.current = 0
}

// Predict returns the probability (scaled to [0,65536)) that the next
// bit is 1, from the current node's observation counts. A node with no
// observations yet returns the neutral midpoint.
func (m *DMCModel) Predict() uint32 {
	n := &m.nodes[m.current]
	c0 := uint32(n.counts[0])
	c1 := uint32(n.counts[1])

	if c0 == 0 && c1 == 0 {
		return 1 << 15
	}

	return (c1 * 65535) / (c0 + c1)
}

// Get implements the teacher-style Predictor interface (Get()/Update()).
func (m *DMCModel) Get() int {
	return int(m.Predict())
}

// Update advances the model with the observed bit: it may clone the
// current transition, increments the edge count, then follows the
// transition to the next node.
func (m *DMCModel) Update(bit byte) {
	b := int(bit & 1)
	m.tryClone(b)

	n := &m.nodes[m.current]
	if n.counts[b] < 0xFFFF {
		n.counts[b]++
	}
	m.current = n.next[b]
}

// tryClone implements DMC's edge-cloning (state-splitting) rule: when a
// heavily used transition's destination is shared with another heavily
// used path, split off a private copy so the two paths can diverge
// statistically.
func (m *DMCModel) tryClone(bit int) {
	src := m.current
	dstIdx := m.nodes[src].next[bit]
	ec := uint32(m.nodes[src].counts[bit])

	if ec < dmcCloneThreshold {
		return
	}

	dst := &m.nodes[dstIdx]
	sum := uint32(dst.counts[0]) + uint32(dst.counts[1])

	if sum < 2*ec {
		return
	}

	if len(m.nodes) >= dmcMaxNodes {
		m.reset()
		return
	}

	clone := dmcNode{next: dst.next}
	c0 := uint32(dst.counts[0]) * ec / sum
	c1 := uint32(dst.counts[1]) * ec / sum
	clone.counts[0] = uint16(c0)
	clone.counts[1] = uint16(c1)

	dst.counts[0] -= uint16(c0)
	dst.counts[1] -= uint16(c1)

	newIdx := uint32(len(m.nodes))
	m.nodes = append(m.nodes, clone)
	m.nodes[src].next[bit] = newIdx
}
