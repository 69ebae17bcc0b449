// circuit.go - Transaction gadget (spec component C11), generic in the
// number of spent notes (N_in) and created notes (N_out). Field sizes are
// fixed at construction time via NewTxCircuit, matching the teacher's
// pattern of a vectorized, arity-specialized circuit (see CircuitTx /
// CircuitTx10 in the example pack) but parametrized instead of copy-pasted
// per arity.
package core

import "github.com/consensys/gnark/frontend"

// TxCircuit is the R1CS definition of a shielded transfer with len(VInBits)
// spent notes and len(VOutBits) created notes.
type TxCircuit struct {
	// PackedPublic holds the only values the verifier actually consumes:
	// the unpacked bit buffer below, chunked into field elements (spec
	// §4.11 step 1). Its length is fixed by NIn/NOut at construction time.
	PackedPublic []frontend.Variable `gnark:",public"`

	// NIn and NOut record the arity this instance was built for; plain
	// ints carry no constraints and are ignored by the R1CS compiler.
	NIn, NOut int

	// Per-input-note private witnesses.
	AskBits  [][]frontend.Variable   // NIn x 256
	RInBits  [][]frontend.Variable   // NIn x 256
	VInBits  [][]frontend.Variable   // NIn x 64
	Enforce  []frontend.Variable     // NIn
	PathBits [][][]frontend.Variable // NIn x depth x 256
	DirBits  [][]frontend.Variable   // NIn x depth

	// Per-output-note private witnesses.
	ApkOutBits [][]frontend.Variable // NOut x 256
	VOutBits   [][]frontend.Variable // NOut x 64
	ROutBits   [][]frontend.Variable // NOut x 256

	TotalUint64Bits []frontend.Variable // 64, overflow-guard witness
	Y               frontend.Variable   // ElGamal ephemeral randomness
}

// NewTxCircuit allocates a TxCircuit shaped for nIn spent notes and nOut
// created notes, every slice pre-sized so frontend.Compile can infer the
// R1CS layout. Callers fill it either with a concrete witness (proving) or
// leave it zero-valued (setup).
func NewTxCircuit(nIn, nOut int) *TxCircuit {
	c := &TxCircuit{
		NIn: nIn, NOut: nOut,
		AskBits: make([][]frontend.Variable, nIn),
		RInBits: make([][]frontend.Variable, nIn),
		VInBits: make([][]frontend.Variable, nIn),
		Enforce: make([]frontend.Variable, nIn),
		PathBits: make([][][]frontend.Variable, nIn),
		DirBits:  make([][]frontend.Variable, nIn),

		ApkOutBits: make([][]frontend.Variable, nOut),
		VOutBits:   make([][]frontend.Variable, nOut),
		ROutBits:   make([][]frontend.Variable, nOut),

		TotalUint64Bits: make([]frontend.Variable, 64),
	}
	for i := 0; i < nIn; i++ {
		c.AskBits[i] = make([]frontend.Variable, 256)
		c.RInBits[i] = make([]frontend.Variable, 256)
		c.VInBits[i] = make([]frontend.Variable, 64)
		c.PathBits[i] = make([][]frontend.Variable, IncrementalMerkleTreeDepth)
		for d := 0; d < IncrementalMerkleTreeDepth; d++ {
			c.PathBits[i][d] = make([]frontend.Variable, 256)
		}
		c.DirBits[i] = make([]frontend.Variable, IncrementalMerkleTreeDepth)
	}
	for j := 0; j < nOut; j++ {
		c.ApkOutBits[j] = make([]frontend.Variable, 256)
		c.VOutBits[j] = make([]frontend.Variable, 64)
		c.ROutBits[j] = make([]frontend.Variable, 256)
	}

	total := UnpackedPublicBitSize(nIn, nOut)
	c.PackedPublic = make([]frontend.Variable, PackedChunkCount(total))
	return c
}

// UnpackedPublicBitSize returns the width of the flat, bit-level public
// buffer before multipacking: rt_i+sn_i per input, cm_j per output,
// vpub_old, vpub_new, g, Gpk, then G_data.
func UnpackedPublicBitSize(nIn, nOut int) int {
	return nIn*512 + nOut*256 + 64 + 64 + 256 + 256 + GovDataBitSize(nIn, nOut)
}

// Define implements frontend.Circuit.
func (c *TxCircuit) Define(api frontend.API) error {
	nIn, nOut := len(c.AskBits), len(c.ApkOutBits)
	govBits := GovDataBitSize(nIn, nOut)

	flat := UnpackFieldElementsCircuit(api, c.PackedPublic, UnpackedPublicBitSize(nIn, nOut))
	pos := 0
	take := func(n int) []frontend.Variable {
		b := flat[pos : pos+n]
		pos += n
		return b
	}

	rtClaim := make([][]frontend.Variable, nIn)
	snClaim := make([][]frontend.Variable, nIn)
	for i := 0; i < nIn; i++ {
		rtClaim[i] = take(256)
		snClaim[i] = take(256)
	}
	cmClaim := make([][]frontend.Variable, nOut)
	for j := 0; j < nOut; j++ {
		cmClaim[j] = take(256)
	}
	vpubOldBits := take(64)
	vpubNewBits := take(64)
	gBits := take(256)
	gpkBits := take(256)
	govDataClaim := take(govBits)

	gScalar := packMSB(api, gBits)
	gpkScalar := packMSB(api, gpkBits)

	inApkBits := make([][]frontend.Variable, nIn)
	for i := 0; i < nIn; i++ {
		var path [IncrementalMerkleTreeDepth][]frontend.Variable
		copy(path[:], c.PathBits[i])
		var dirs [IncrementalMerkleTreeDepth]frontend.Variable
		copy(dirs[:], c.DirBits[i])

		apk, _, sn := InputNoteCircuit(api, c.AskBits[i], c.RInBits[i], c.VInBits[i], c.Enforce[i], path, dirs, rtClaim[i])
		assertBitsEqual(api, sn, snClaim[i])
		inApkBits[i] = apk
	}

	for j := 0; j < nOut; j++ {
		cm := OutputNoteCircuit(api, c.ApkOutBits[j], c.VOutBits[j], c.ROutBits[j])
		assertBitsEqual(api, cm, cmClaim[j])
	}

	// Value bits are in U64ToBits order (little-endian bytes); reading the
	// bytes back to front packs the integer value itself.
	packValue := func(bits []frontend.Variable) frontend.Variable {
		be := make([]frontend.Variable, 0, 64)
		for b := 7; b >= 0; b-- {
			be = append(be, bits[8*b:8*b+8]...)
		}
		return packMSB(api, be)
	}

	vpubOldScalar := packValue(vpubOldBits)
	vpubNewScalar := packValue(vpubNewBits)

	sumIn := frontend.Variable(0)
	for i := 0; i < nIn; i++ {
		sumIn = api.Add(sumIn, packValue(c.VInBits[i]))
	}
	sumOut := frontend.Variable(0)
	for j := 0; j < nOut; j++ {
		sumOut = api.Add(sumOut, packValue(c.VOutBits[j]))
	}

	lhs := api.Add(vpubOldScalar, sumIn)
	rhs := api.Add(vpubNewScalar, sumOut)
	api.AssertIsEqual(lhs, rhs)

	for _, b := range c.TotalUint64Bits {
		api.AssertIsBoolean(b)
	}
	totalScalar := packValue(c.TotalUint64Bits)
	api.AssertIsEqual(lhs, totalScalar)

	govComputed := GovernanceCircuit(api, vpubOldBits, inApkBits, c.VInBits, vpubNewBits, c.ApkOutBits, c.VOutBits, gScalar, gpkScalar, c.Y)
	assertBitsEqual(api, govComputed, govDataClaim)

	return nil
}
