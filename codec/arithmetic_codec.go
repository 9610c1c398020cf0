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

package codec

import (
	"github.com/nadavrot/rzc"
	"github.com/nadavrot/rzc/entropy"
	"github.com/nadavrot/rzc/varint"
)

// bitModel is the shape both entropy.DMCModel and entropy.BitwiseModel
// expose, letting ArithCodec pick either one as its predictor.
type bitModel interface {
	Predict() uint32
	Update(bit byte)
}

// ModelKind selects which bitModel ArithCodec drives the range coder
// with. It is written as a single byte ahead of the length prefix so
// Decode can restore the same model type Encode used, per spec.md
// §4.5's "decoding ... restores the same model type with identical
// initialization".
type ModelKind byte

const (
	// ModelDMC drives the range coder with entropy.DMCModel, the default.
	ModelDMC ModelKind = iota
	// ModelBitwise drives the range coder with entropy.BitwiseModel.
	ModelBitwise
)

func newBitModel(kind ModelKind) bitModel {
	if kind == ModelBitwise {
		return entropy.NewDefaultBitwiseModel()
	}
	return entropy.NewDMCModel()
}

// ArithCodec is the adaptive arithmetic codec of spec.md §4.5/§4.11: it
// frames a model-kind byte, a u32 input length, and a length-prefixed
// compressed payload behind rzc.ArithSig, range-coding every input bit
// MSB-first through a fresh model of the selected kind. The payload is
// explicitly length-prefixed (rather than "whatever is left in the
// buffer") because the range coder's flush step can leave trailing
// bytes the decoder never needs to read, which would otherwise make
// the reported consumed count ambiguous.
type ArithCodec struct {
	Model ModelKind
}

// Encode implements rzc.Encoder.
func (c ArithCodec) Encode(input []byte, output *[]byte) int {
	start := len(*output)

	enc := entropy.NewBitonicEncoder(nil)
	model := newBitModel(c.Model)

	for _, b := range input {
		for bitIdx := 7; bitIdx >= 0; bitIdx-- {
			bit := int((b >> uint(bitIdx)) & 1)
			enc.EncodeBit(bit, model.Predict())
			model.Update(byte(bit))
		}
	}
	payload := enc.Finish()

	*output = append(*output, rzc.ArithSig...)
	*output = append(*output, byte(c.Model))
	*output = varint.PutU32(*output, uint32(len(input)))
	*output = varint.PutArray(*output, payload)
	return len(*output) - start
}

// Decode implements rzc.Decoder.
func (ArithCodec) Decode(input []byte, output *[]byte) (consumed int, written int, ok bool) {
	if !rzc.HasPrefix(input, rzc.ArithSig) {
		return 0, 0, false
	}
	rest := input[len(rzc.ArithSig):]

	if len(rest) < 1 {
		return 0, 0, false
	}
	kind := ModelKind(rest[0])
	rest = rest[1:]
	total := len(rzc.ArithSig) + 1

	length, n, okU := varint.GetU32(rest)
	if !okU {
		return 0, 0, false
	}
	rest = rest[n:]
	total += n

	payload, n, arrOk := varint.GetArray(rest)
	if !arrOk {
		return 0, 0, false
	}
	total += n

	dec, err := entropy.NewBitonicDecoder(payload)
	if err != nil {
		return 0, 0, false
	}

	model := newBitModel(kind)
	out := make([]byte, length)

	for i := uint32(0); i < length; i++ {
		var b byte
		for bitIdx := 7; bitIdx >= 0; bitIdx-- {
			bit, decErr := dec.DecodeBit(model.Predict())
			if decErr != nil {
				return 0, 0, false
			}
			model.Update(byte(bit))
			b = (b << 1) | byte(bit)
		}
		out[i] = b
	}

	*output = append(*output, out...)
	return total, len(out), true
}
