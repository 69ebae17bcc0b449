// note_out.go - Output-note gadget (spec component C9): a new note is
// simpler than a spent one — there is no membership to prove, just a fresh
// commitment over a public key supplied by the enclosing context and a
// freshly sampled randomness.
package core

import "github.com/consensys/gnark/frontend"

// OutputNoteWitness carries the fields witness generation fills for one
// created note.
type OutputNoteWitness struct {
	Apk Bytes32
	V   uint64
	R   Bytes32
	Cm  Bytes32
}

// BuildOutputNoteWitness samples a fresh randomness r and computes the
// note's commitment.
func BuildOutputNoteWitness(apk Bytes32, v uint64) *OutputNoteWitness {
	r := RandomBytes32()
	return &OutputNoteWitness{Apk: apk, V: v, R: r, Cm: Commitment(apk, v, r)}
}

// OutputNoteCircuit constrains one created note: apkBits and rBits are
// 256-bit digests (MSB-first, both supplied — apk from the outer context,
// r a private witness), vBits its 64-bit value. Returns the commitment
// bits.
func OutputNoteCircuit(api frontend.API, apkBits, vBits, rBits []frontend.Variable) []frontend.Variable {
	for _, b := range vBits {
		api.AssertIsBoolean(b)
	}
	for _, b := range apkBits {
		api.AssertIsBoolean(b)
	}
	for _, b := range rBits {
		api.AssertIsBoolean(b)
	}
	return CommitmentCircuit(api, apkBits, vBits, rBits)
}
