// binary.go - Binary (packing) gadget (spec component C4).
//
// Exposes the bidirectional relationship between a bit array and a scalar
// variable: NewBinaryFromBits packs a witnessed bit array into a scalar;
// NewBinaryFromPacked goes the other way (used by the exponentiation gadget
// to decompose a scalar exponent into its constituent bits, and by the
// ElGamal gadget to serialize c1 and each c2 box). Both directions enforce the same linear relation
// packed = Σ 2^i·bit[i], bits ordered MSB-first to match the rest of the
// package's convention.
//
// Open question resolved: the reference implementation's binary gadget
// carried an unused FieldT field; there is no constraint or witness path
// that needs it here, so it is not reproduced (see DESIGN.md).
package core

import "github.com/consensys/gnark/frontend"

// BinaryGadget holds both representations of the same value once built.
type BinaryGadget struct {
	Bits   []frontend.Variable // MSB-first
	Packed frontend.Variable
}

// NewBinaryFromBits constrains each entry of bits to be boolean and packs
// them (MSB-first) into a single scalar.
func NewBinaryFromBits(api frontend.API, bits []frontend.Variable) *BinaryGadget {
	for _, b := range bits {
		api.AssertIsBoolean(b)
	}
	return &BinaryGadget{Bits: bits, Packed: packMSB(api, bits)}
}

// NewBinaryFromPacked decomposes packed into n boolean MSB-first bits. The
// decomposition itself re-packs to packed as a single linear constraint
// (api.ToBinary under the hood), so the two directions are equivalent.
func NewBinaryFromPacked(api frontend.API, packed frontend.Variable, n int) *BinaryGadget {
	return &BinaryGadget{Bits: unpackMSB(api, packed, n), Packed: packed}
}
