// commitment.go - Two-step SHA-256 commitment gadget (spec component C7).
//
// cm = H( H(apk‖v‖v‖v‖v) ‖ r ), built from two chained calls to the
// compression gadget (sha256.go). The native twin lives in primitives.go
// (CommitmentIntermediate / Commitment) and must agree with this gadget
// bit-for-bit.
//
// Open question resolved: the reference implementation's commitment gadget
// overwrote its witnessed result bits with the out-of-circuit calculator's
// output after the hash gadget had already filled them — a holdover from a
// two-phase constrain/witness API. gnark's R1CS builder derives every
// intermediate wire from the constraint graph during proving; there is no
// separate witness-fill step to overwrite, so that defensive double-write
// has no equivalent here and is not reproduced (see DESIGN.md).
package core

import "github.com/consensys/gnark/frontend"

// valueBitsCircuit repeats the 64-bit U64ToBits representation of v
// (little-endian bytes, MSB-first within each byte) four times, matching
// valueBlock's native four-repeat encoding.
func valueBitsCircuit(vBits []frontend.Variable) []frontend.Variable {
	out := make([]frontend.Variable, 0, 256)
	for i := 0; i < 4; i++ {
		out = append(out, vBits...)
	}
	return out
}

// CommitmentCircuit constrains and returns the 256-bit commitment, given
// apk (256 bits) and r (256 bits), both MSB-first, and v (64 bits, in
// U64ToBits order).
func CommitmentCircuit(api frontend.API, apkBits, vBits, rBits []frontend.Variable) []frontend.Variable {
	block1 := make([]frontend.Variable, 0, 512)
	block1 = append(block1, apkBits...)
	block1 = append(block1, valueBitsCircuit(vBits)...)
	intermediate := CompressCircuit(api, block1)

	block2 := make([]frontend.Variable, 0, 512)
	block2 = append(block2, intermediate...)
	block2 = append(block2, rBits...)
	return CompressCircuit(api, block2)
}
