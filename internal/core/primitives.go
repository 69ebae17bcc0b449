// primitives.go - Out-of-circuit PRF / serial-number / commitment
// calculators (spec component C3). Every function here is a pure,
// deterministic SHA-256-compression chain over concatenated byte pieces,
// matching the order given in spec §3 exactly. These are the "twins" the
// in-circuit gadgets (commitment.go) must reproduce bit-for-bit.

package core

import (
	"encoding/binary"

	"github.com/consensys/gnark/frontend"
)

// Apk derives an address public key from a secret key: apk = H(ask‖ask).
func Apk(ask Bytes32) Bytes32 {
	var block [64]byte
	copy(block[:32], ask[:])
	copy(block[32:], ask[:])
	return Compress(block)
}

// SerialNumber computes sn = H(ask‖r), the value that marks a note as spent.
func SerialNumber(ask, r Bytes32) Bytes32 {
	var block [64]byte
	copy(block[:32], ask[:])
	copy(block[32:], r[:])
	return Compress(block)
}

// valueBlock encodes v as 8 little-endian bytes, repeated four times to
// fill a 32-byte block (spec §3: "v is the 8-byte little-endian encoding
// repeated four times").
func valueBlock(v uint64) [32]byte {
	var le [8]byte
	binary.LittleEndian.PutUint64(le[:], v)
	var out [32]byte
	for i := 0; i < 4; i++ {
		copy(out[8*i:8*(i+1)], le[:])
	}
	return out
}

// CommitmentIntermediate computes H(apk‖v‖v‖v‖v), the first of the two
// compression blocks that make up a note commitment.
func CommitmentIntermediate(apk Bytes32, v uint64) Bytes32 {
	var block [64]byte
	copy(block[:32], apk[:])
	copy(block[32:], valueBlock(v)[:])
	return Compress(block)
}

// Commitment computes cm = H(H(apk‖v‖v‖v‖v)‖r), the full two-step note
// commitment (spec §3, §4.7).
func Commitment(apk Bytes32, v uint64, r Bytes32) Bytes32 {
	intermediate := CommitmentIntermediate(apk, v)
	var block [64]byte
	copy(block[:32], intermediate[:])
	copy(block[32:], r[:])
	return Compress(block)
}

// ApkCircuit is the in-circuit twin of Apk: apk = H(ask‖ask).
func ApkCircuit(api frontend.API, askBits []frontend.Variable) []frontend.Variable {
	block := make([]frontend.Variable, 0, 512)
	block = append(block, askBits...)
	block = append(block, askBits...)
	return CompressCircuit(api, block)
}

// SerialNumberCircuit is the in-circuit twin of SerialNumber: sn = H(ask‖r).
func SerialNumberCircuit(api frontend.API, askBits, rBits []frontend.Variable) []frontend.Variable {
	block := make([]frontend.Variable, 0, 512)
	block = append(block, askBits...)
	block = append(block, rBits...)
	return CompressCircuit(api, block)
}
