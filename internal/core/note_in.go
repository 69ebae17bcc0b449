// note_in.go - Input-note gadget (spec component C8): proves that a spent
// note is a member of the commitment pool (or is a zero-value placeholder
// that skips membership entirely) and derives its public key and serial
// number.
package core

import "github.com/consensys/gnark/frontend"

// InputNoteWitness carries everything witness generation for one spent
// note needs to fill into the transaction circuit: the note's own fields
// plus the windowed Merkle path proving its commitment is in the pool.
type InputNoteWitness struct {
	Ask    Bytes32
	R      Bytes32
	V      uint64
	Apk    Bytes32
	Cm     Bytes32
	Sn     Bytes32
	Root   Bytes32
	Path   [IncrementalMerkleTreeDepth]Bytes32
	Dirs   [IncrementalMerkleTreeDepth]bool
	Window struct{ From, To int }
	// Enforce is false only for a zero-value placeholder input, in which
	// case membership is not checked and Root/Path/Dirs/Window are zero.
	Enforce bool
}

// BuildInputNoteWitness assembles the witness for a real (non-placeholder)
// spent note: it looks up the note's commitment in pool, samples a random
// window around it, and builds the authentication path relative to that
// window's root (spec §4.8).
func BuildInputNoteWitness(pool *Pool, ask, r Bytes32, v uint64) (*InputNoteWitness, error) {
	apk := Apk(ask)
	cm := Commitment(apk, v, r)

	idx, err := pool.GetIndex(FormatHex256(cm))
	if err != nil {
		return nil, err
	}

	from, to := SampleWindow(pool.Size(), idx)
	leaves := WindowLeaves(pool, from, to)
	layers := BuildWindowTree(leaves)
	localIdx := idx - from
	siblings, dirs := AuthPath(layers, localIdx)
	root := layers[IncrementalMerkleTreeDepth][0]

	w := &InputNoteWitness{
		Ask: ask, R: r, V: v,
		Apk: apk, Cm: cm, Sn: SerialNumber(ask, r),
		Root: root, Path: siblings, Dirs: dirs,
		Enforce: true,
	}
	w.Window.From, w.Window.To = from, to
	return w, nil
}

// ZeroInputNoteWitness builds the witness for a zero-value placeholder
// input: ask = 0, v = 0, r = 0, no pool membership required, sn fixed to
// ZeroSN and root fixed to ZeroCMRootDepth4 so the façade's public-input
// packing stays well-defined even though membership is not enforced.
func ZeroInputNoteWitness() *InputNoteWitness {
	var zero Bytes32
	return &InputNoteWitness{
		Ask: zero, R: zero, V: 0,
		Apk:     Apk(zero),
		Cm:      hexToBytes32(ZeroCM),
		Sn:      hexToBytes32(ZeroSN),
		Root:    hexToBytes32(ZeroCMRootDepth4),
		Enforce: false,
	}
}

// InputNoteCircuit constrains one spent note. askBits and rBits are the
// note's 256-bit private digests (MSB-first); vBits is its 64-bit value;
// enforce is the zero-value-escape scalar (1 for a real note, 0 for a
// placeholder); pathBits/dirBits are the Merkle authentication path;
// rtBits is the (public) window root. It returns the note's apk, cm and sn
// bit slices for use by the enclosing transaction gadget.
func InputNoteCircuit(
	api frontend.API,
	askBits, rBits, vBits []frontend.Variable,
	enforce frontend.Variable,
	pathBits [IncrementalMerkleTreeDepth][]frontend.Variable,
	dirBits [IncrementalMerkleTreeDepth]frontend.Variable,
	rtBits []frontend.Variable,
) (apkBits, cmBits, snBits []frontend.Variable) {
	for _, b := range vBits {
		api.AssertIsBoolean(b)
	}
	for _, b := range askBits {
		api.AssertIsBoolean(b)
	}
	for _, b := range rBits {
		api.AssertIsBoolean(b)
	}
	api.AssertIsBoolean(enforce)

	apkBits = ApkCircuit(api, askBits)
	cmBits = CommitmentCircuit(api, apkBits, vBits, rBits)
	snBits = SerialNumberCircuit(api, askBits, rBits)

	packedV := packMSB(api, vBits)
	api.AssertIsEqual(api.Mul(packedV, api.Sub(1, enforce)), 0)

	MerkleMembershipCircuit(api, cmBits, pathBits, dirBits, rtBits, enforce)
	return apkBits, cmBits, snBits
}
