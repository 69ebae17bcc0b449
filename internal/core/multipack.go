// multipack.go - The "packed public inputs" half of the transaction
// gadget's allocation order (spec §4.11, step 1): verifiers only ever see
// a handful of field elements, not a sea of boolean wires. The unpacked
// bit buffer (rt_i, sn_i, cm_j, vpub_old, vpub_new, g, Gpk, G_data, laid
// out in that exact order) is chunked into FieldCapacityBits-bit pieces
// and each piece packed into one field element; the last chunk is
// zero-padded on its low (trailing) side. This is the multipacking_gadget
// pattern referenced in spec §9.
package core

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
)

// FieldCapacityBits is one less than the scalar field's bit length, the
// conventional "safe" chunk width that guarantees every chunk value is
// representable without reduction.
const FieldCapacityBits = 253

// ceilDiv returns ceil(a/b) for positive a, b.
func ceilDiv(a, b int) int { return (a + b - 1) / b }

// PackedChunkCount returns how many field elements totalBits of unpacked
// bits pack into.
func PackedChunkCount(totalBits int) int { return ceilDiv(totalBits, FieldCapacityBits) }

// PackBitsNative chunks bits (MSB-first) into FieldCapacityBits-wide
// pieces, zero-padding the final chunk, and packs each into a field
// element.
func PackBitsNative(bits []bool) []fr.Element {
	n := PackedChunkCount(len(bits))
	padded := make([]bool, n*FieldCapacityBits)
	copy(padded, bits)

	out := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		chunk := padded[i*FieldCapacityBits : (i+1)*FieldCapacityBits]
		v := bitsToBigMSB(chunk)
		out[i].SetBigInt(v)
	}
	return out
}

// UnpackFieldElementsNative is the inverse of PackBitsNative, truncated
// back down to totalBits.
func UnpackFieldElementsNative(elems []fr.Element, totalBits int) []bool {
	out := make([]bool, 0, len(elems)*FieldCapacityBits)
	for _, e := range elems {
		v := new(big.Int)
		e.BigInt(v)
		out = append(out, bigToBitsMSB(v, FieldCapacityBits)...)
	}
	return out[:totalBits]
}

// PackBitsCircuit is the in-circuit twin of PackBitsNative.
func PackBitsCircuit(api frontend.API, bits []frontend.Variable) []frontend.Variable {
	n := PackedChunkCount(len(bits))
	padded := make([]frontend.Variable, n*FieldCapacityBits)
	copy(padded, bits)
	for i := len(bits); i < len(padded); i++ {
		padded[i] = 0
	}

	out := make([]frontend.Variable, n)
	for i := 0; i < n; i++ {
		out[i] = packMSB(api, padded[i*FieldCapacityBits:(i+1)*FieldCapacityBits])
	}
	return out
}

// UnpackFieldElementsCircuit is the in-circuit twin of
// UnpackFieldElementsNative.
func UnpackFieldElementsCircuit(api frontend.API, elems []frontend.Variable, totalBits int) []frontend.Variable {
	out := make([]frontend.Variable, 0, len(elems)*FieldCapacityBits)
	for _, e := range elems {
		out = append(out, unpackMSB(api, e, FieldCapacityBits)...)
	}
	return out[:totalBits]
}

// assertBitsEqual constrains two equal-length bit slices to be identical,
// bit by bit.
func assertBitsEqual(api frontend.API, a, b []frontend.Variable) {
	if len(a) != len(b) {
		panic("core: bit slices of different length compared")
	}
	for i := range a {
		api.AssertIsEqual(a[i], b[i])
	}
}
