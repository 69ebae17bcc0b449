// facade.go - Transaction façade (spec component C12): the only entry
// point most callers need. Mirrors the teacher's SetupOrLoadKeys / CreateTx
// / VerifyTx split (internal/zerocash/tx.go) but generalized to the
// (N_in, N_out) transaction gadget and the SHA-256/ElGamal primitives
// built up across the rest of this package.
package core

import (
	"bytes"
	"encoding/base64"
	"io"
	"math/big"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Facade is a process-local proving/verifying instance for a fixed
// (NIn, NOut) shielded-transfer circuit. Setup is a one-time, idempotent
// step; Generate builds the circuit and keys once; Prove/Verify reuse the
// cached constraint system and keys thereafter (spec §5: "keys are
// expensive to load; the façade caches them per-instance on first use").
type Facade struct {
	NIn, NOut int

	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey

	isPkLoaded bool
	isVkLoaded bool
}

// NewFacade creates a façade for an (nIn, nOut) shielded transfer. The
// spec's worked examples all target the (2,2) circuit, and Prove is
// written specifically for that arity.
func NewFacade(nIn, nOut int) *Facade {
	return &Facade{NIn: nIn, NOut: nOut}
}

// IsReady reports whether both the proving and verifying key are loaded,
// i.e. Prove and Verify are safe to call.
func (f *Facade) IsReady() bool { return f.isPkLoaded && f.isVkLoaded }

// Setup initializes curve parameters. It is idempotent and, on BN254,
// has nothing left to do beyond what gnark-crypto's package
// initialization already performs — kept as an explicit call so the
// façade's lifecycle matches spec §4.12 ("setup() — initialize curve
// parameters (idempotent)").
func (f *Facade) Setup() error { return nil }

func (f *Facade) compile() (constraint.ConstraintSystem, error) {
	if f.ccs != nil {
		return f.ccs, nil
	}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, NewTxCircuit(f.NIn, f.NOut))
	if err != nil {
		return nil, wrapErr(ErrProveNotSatisfied, err, "circuit compilation failed")
	}
	f.ccs = ccs
	return ccs, nil
}

func writeTo(path string, w io.WriterTo) error {
	fh, err := os.Create(path)
	if err != nil {
		return wrapErr(ErrFileNotFound, err, "cannot create %s", path)
	}
	defer fh.Close()
	_, err = w.WriteTo(fh)
	return err
}

// Generate builds the circuit once, runs the proof system's key
// generator, and persists both keys to pkPath/vkPath.
func (f *Facade) Generate(pkPath, vkPath string) error {
	ccs, err := f.compile()
	if err != nil {
		return err
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return wrapErr(ErrProveNotSatisfied, err, "key generation failed")
	}
	if err := writeTo(pkPath, pk); err != nil {
		return err
	}
	if err := writeTo(vkPath, vk); err != nil {
		return err
	}
	f.pk, f.vk = pk, vk
	f.isPkLoaded, f.isVkLoaded = true, true
	return nil
}

// LoadKeys loads previously generated keys from disk for a façade that did
// not itself call Generate.
func (f *Facade) LoadKeys(pkPath, vkPath string) error {
	if !f.isPkLoaded {
		fh, err := os.Open(pkPath)
		if err != nil {
			return newErr(ErrFileNotFound, "proving key %s not found", pkPath)
		}
		defer fh.Close()
		pk := groth16.NewProvingKey(ecc.BN254)
		if _, err := pk.ReadFrom(fh); err != nil {
			return wrapErr(ErrFileNotFound, err, "cannot read proving key %s", pkPath)
		}
		f.pk, f.isPkLoaded = pk, true
	}
	if !f.isVkLoaded {
		fh, err := os.Open(vkPath)
		if err != nil {
			return newErr(ErrFileNotFound, "verifying key %s not found", vkPath)
		}
		defer fh.Close()
		vk := groth16.NewVerifyingKey(ecc.BN254)
		if _, err := vk.ReadFrom(fh); err != nil {
			return wrapErr(ErrFileNotFound, err, "cannot read verifying key %s", vkPath)
		}
		f.vk, f.isVkLoaded = vk, true
	}
	return nil
}

// TxData is the wire-transport form of a proved shielded transfer
// (spec §6).
type TxData struct {
	Proof string // base64-encoded Groth16 proof
	GData string // base64-encoded ElGamal ciphertext

	Rt []string // hex, len NIn
	Sn []string // hex, len NIn
	Cm []string // hex, len NOut

	VpubOld  uint64
	VpubNew  uint64
	VToPayee uint64
	VChange  uint64

	G   string
	Gpk string

	ErrorCode   int
	Description string
}

func errTxData(kind ErrKind, format string, args ...any) *TxData {
	e := newErr(kind, format, args...)
	return &TxData{ErrorCode: 1, Description: e.Error()}
}

// Prove builds a shielded transfer spending up to two notes owned by ask
// (zero[i] marks input i as an unused zero-value placeholder, exempt from
// pool membership) and creates two outputs: one paying peerApkHex the
// amount rV, and a change output paying the spender's own apk the
// remainder vpub_old + Σv_in − vpub_new − r_v. Parameter validation
// failures and constraint violations are reported through TxData's
// ErrorCode/Description, never a Go error (spec §4.12, §7).
func (f *Facade) Prove(
	pool *Pool,
	askHex string,
	vpubOld uint64,
	v [2]uint64,
	rHex [2]string,
	zero [2]bool,
	peerApkHex string,
	vpubNew uint64,
	rV uint64,
	gHex, gpkHex string,
) *TxData {
	if f.NIn != 2 || f.NOut != 2 {
		return errTxData(ErrProveParamsLen, "Prove targets the (2,2) circuit, façade is (%d,%d)", f.NIn, f.NOut)
	}

	ask, err := ParseHex256(askHex)
	if err != nil {
		return errTxData(ErrNotUint256, "ask: %v", err)
	}
	var r [2]Bytes32
	for i := range rHex {
		r[i], err = ParseHex256(rHex[i])
		if err != nil {
			return errTxData(ErrNotUint256, "r[%d]: %v", i, err)
		}
	}
	peerApk, err := ParseHex256(peerApkHex)
	if err != nil {
		return errTxData(ErrNotUint256, "peer_apk: %v", err)
	}
	if err := ValidateGenerator(gHex); err != nil {
		return errTxData(ErrGovGenerator, "%v", err)
	}
	g, err := ParseHex256(gHex)
	if err != nil {
		return errTxData(ErrNotUint256, "g: %v", err)
	}
	gpk, err := ParseHex256(gpkHex)
	if err != nil {
		return errTxData(ErrNotUint256, "Gpk: %v", err)
	}

	vIn := v
	for i := range vIn {
		if zero[i] {
			vIn[i] = 0
		}
	}

	total := new(big.Int).SetUint64(vpubOld)
	total.Add(total, new(big.Int).SetUint64(vIn[0]))
	total.Add(total, new(big.Int).SetUint64(vIn[1]))
	need := new(big.Int).SetUint64(vpubNew)
	need.Add(need, new(big.Int).SetUint64(rV))
	if total.Cmp(need) < 0 {
		return errTxData(ErrProveValue, "vpub_old + sum(v_in) < vpub_new + r_v")
	}
	if total.BitLen() > 64 {
		return errTxData(ErrProveNotSatisfied, "value sum overflows 64 bits")
	}
	totalSum := total.Uint64()
	change := new(big.Int).Sub(total, need).Uint64()

	var inWit [2]*InputNoteWitness
	for i := 0; i < 2; i++ {
		if zero[i] {
			inWit[i] = ZeroInputNoteWitness()
			continue
		}
		w, err := BuildInputNoteWitness(pool, ask, r[i], v[i])
		if err != nil {
			kind, ok := KindOf(err)
			if !ok {
				kind = ErrCmNotFound
			}
			return errTxData(kind, "input %d: %v", i, err)
		}
		inWit[i] = w
	}

	payerApk := Apk(ask)
	outWit := [2]*OutputNoteWitness{
		BuildOutputNoteWitness(peerApk, rV),
		BuildOutputNoteWitness(payerApk, change),
	}

	y := RandomFieldElement()
	inApks := []Bytes32{inWit[0].Apk, inWit[1].Apk}
	inValues := []uint64{inWit[0].V, inWit[1].V}
	outApks := []Bytes32{outWit[0].Apk, outWit[1].Apk}
	outValues := []uint64{outWit[0].V, outWit[1].V}
	gData := EncryptGovernanceInfo(vpubOld, inApks, inValues, vpubNew, outApks, outValues, g, gpk, y)

	circuit := NewTxCircuit(2, 2)
	for i := 0; i < 2; i++ {
		setBits256(circuit.AskBits[i], inWit[i].Ask)
		setBits256(circuit.RInBits[i], inWit[i].R)
		setBitsN(circuit.VInBits[i], U64ToBits(inWit[i].V))
		circuit.Enforce[i] = boolVar(inWit[i].Enforce)
		for d := 0; d < IncrementalMerkleTreeDepth; d++ {
			setBits256(circuit.PathBits[i][d], inWit[i].Path[d])
			circuit.DirBits[i][d] = boolVar(inWit[i].Dirs[d])
		}
	}
	for j := 0; j < 2; j++ {
		setBits256(circuit.ApkOutBits[j], outWit[j].Apk)
		setBitsN(circuit.VOutBits[j], U64ToBits(outWit[j].V))
		setBits256(circuit.ROutBits[j], outWit[j].R)
	}
	setBitsN(circuit.TotalUint64Bits, U64ToBits(totalSum))
	circuit.Y = fieldVarFromBytes32(y)

	flat := assembleFlatPublicBits(inWit[0].Root, inWit[0].Sn, inWit[1].Root, inWit[1].Sn,
		outWit[0].Cm, outWit[1].Cm, vpubOld, vpubNew, g, gpk, gData)

	packed := PackBitsNative(flat)
	circuit.PackedPublic = make([]frontend.Variable, len(packed))
	for i, e := range packed {
		circuit.PackedPublic[i] = fieldVarFromElement(e)
	}

	ccs, err := f.compile()
	if err != nil {
		return errTxData(ErrProveNotSatisfied, "%v", err)
	}
	if !f.isPkLoaded {
		return errTxData(ErrFileNotFound, "proving key not loaded, call Generate or LoadKeys first")
	}

	fullWitness, err := frontend.NewWitness(circuit, ecc.BN254.ScalarField())
	if err != nil {
		return errTxData(ErrProveParamsLen, "witness construction failed: %v", err)
	}
	proof, err := groth16.Prove(ccs, f.pk, fullWitness)
	if err != nil {
		return errTxData(ErrProveNotSatisfied, "%v", err)
	}

	var proofBuf bytes.Buffer
	if _, err := proof.WriteTo(&proofBuf); err != nil {
		return errTxData(ErrProveNotSatisfied, "proof serialization failed: %v", err)
	}

	return &TxData{
		Proof:    base64.StdEncoding.EncodeToString(proofBuf.Bytes()),
		GData:    base64.StdEncoding.EncodeToString(BitsToBytes(gData)),
		Rt:       []string{FormatHex256(inWit[0].Root), FormatHex256(inWit[1].Root)},
		Sn:       []string{FormatHex256(inWit[0].Sn), FormatHex256(inWit[1].Sn)},
		Cm:       []string{FormatHex256(outWit[0].Cm), FormatHex256(outWit[1].Cm)},
		VpubOld:  vpubOld,
		VpubNew:  vpubNew,
		VToPayee: rV,
		VChange:  change,
		G:        gHex,
		Gpk:      gpkHex,
	}
}

// assembleFlatPublicBits builds the unpacked public-input bit buffer in
// the exact order spec §4.11 fixes: rt_i‖sn_i per input, cm_j per output,
// vpub_old, vpub_new, g, Gpk, then G_data. g and Gpk are byte-swapped
// before bit-expansion so that packing them back into a scalar (packMSB
// in-circuit) reproduces the same value BytesToField computes for them
// natively — see field.go's little-endian-limb convention.
func assembleFlatPublicBits(rt0, sn0, rt1, sn1, cm0, cm1 Bytes32, vpubOld, vpubNew uint64, g, gpk Bytes32, gData []bool) []bool {
	flat := make([]bool, 0, 2*512+2*256+128+512+len(gData))
	flat = append(flat, BytesToBits(rt0[:])...)
	flat = append(flat, BytesToBits(sn0[:])...)
	flat = append(flat, BytesToBits(rt1[:])...)
	flat = append(flat, BytesToBits(sn1[:])...)
	flat = append(flat, BytesToBits(cm0[:])...)
	flat = append(flat, BytesToBits(cm1[:])...)
	flat = append(flat, U64ToBits(vpubOld)...)
	flat = append(flat, U64ToBits(vpubNew)...)
	flat = append(flat, BytesToBits(SwapEndianness8(g[:]))...)
	flat = append(flat, BytesToBits(SwapEndianness8(gpk[:]))...)
	flat = append(flat, gData...)
	return flat
}

// checkVerifyParams validates tx's shape and transport encoding before any
// circuit work is attempted, classifying the rejection reason the way the
// reference implementation's check_verify_params does (FISCO-BCOS/libzkg's
// zkgexception.hpp: VerifyParamsLengthException for arity mismatches,
// VerifyParamsValueException for malformed hex/base64 fields), and returns
// the parsed fields verifyInner needs.
func (f *Facade) checkVerifyParams(tx *TxData) (rt, sn, cm []Bytes32, g, gpk Bytes32, proofBytes, gDataBits []byte, err error) {
	if tx == nil {
		return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, newErr(ErrVerifyParamsValue, "nil transaction")
	}
	if tx.ErrorCode != 0 {
		return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, newErr(ErrVerifyParamsValue, "transaction carries error code %d", tx.ErrorCode)
	}
	if len(tx.Rt) != f.NIn || len(tx.Sn) != f.NIn || len(tx.Cm) != f.NOut {
		return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, newErr(ErrVerifyParamsLen,
			"expected %d roots/sns and %d commitments, got %d/%d/%d", f.NIn, f.NOut, len(tx.Rt), len(tx.Sn), len(tx.Cm))
	}
	if !f.isVkLoaded {
		return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, newErr(ErrVerifyParamsValue, "verifying key not loaded")
	}

	proofBytes, errDecode := base64.StdEncoding.DecodeString(tx.Proof)
	if errDecode != nil {
		return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, wrapErr(ErrVerifyParamsValue, errDecode, "proof is not valid base64")
	}
	gDataBytes, errDecode := base64.StdEncoding.DecodeString(tx.GData)
	if errDecode != nil {
		return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, wrapErr(ErrVerifyParamsValue, errDecode, "g_data is not valid base64")
	}

	rt = make([]Bytes32, f.NIn)
	sn = make([]Bytes32, f.NIn)
	for i := 0; i < f.NIn; i++ {
		var perr error
		if rt[i], perr = ParseHex256(tx.Rt[i]); perr != nil {
			return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, wrapErr(ErrVerifyParamsValue, perr, "rt[%d] is not uint256 hex", i)
		}
		if sn[i], perr = ParseHex256(tx.Sn[i]); perr != nil {
			return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, wrapErr(ErrVerifyParamsValue, perr, "sn[%d] is not uint256 hex", i)
		}
	}
	cm = make([]Bytes32, f.NOut)
	for j := 0; j < f.NOut; j++ {
		var perr error
		if cm[j], perr = ParseHex256(tx.Cm[j]); perr != nil {
			return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, wrapErr(ErrVerifyParamsValue, perr, "cm[%d] is not uint256 hex", j)
		}
	}
	var perr error
	if g, perr = ParseHex256(tx.G); perr != nil {
		return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, wrapErr(ErrVerifyParamsValue, perr, "g is not uint256 hex")
	}
	if gpk, perr = ParseHex256(tx.Gpk); perr != nil {
		return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, wrapErr(ErrVerifyParamsValue, perr, "gpk is not uint256 hex")
	}

	govBits := GovDataBitSize(f.NIn, f.NOut)
	bits := BytesToBits(gDataBytes)
	if len(bits) < govBits {
		return nil, nil, nil, Bytes32{}, Bytes32{}, nil, nil, newErr(ErrVerifyParamsLen, "g_data too short for (%d,%d) shape: got %d bits, need %d", f.NIn, f.NOut, len(bits), govBits)
	}

	return rt, sn, cm, g, gpk, proofBytes, boolsToBytes(bits[:govBits]), nil
}

// boolsToBytes packs a boolean slice one-bit-per-byte, matching the rest of
// this package's convention of threading BytesToBits-shaped []bool around
// rather than a packed bitset.
func boolsToBytes(bits []bool) []byte {
	out := make([]byte, len(bits))
	for i, b := range bits {
		if b {
			out[i] = 1
		}
	}
	return out
}

// Verify rebuilds the public-input vector from tx and delegates to the
// proof system's verifier. Any length/format mismatch or malformed
// transport encoding yields false, never a panic (spec §4.12, §7). Use
// VerifyWithReason to recover the classified rejection reason.
func (f *Facade) Verify(tx *TxData) bool {
	ok, _ := f.VerifyWithReason(tx)
	return ok
}

// VerifyWithReason is Verify plus the classified failure reason (ErrKind
// ErrVerifyParamsLen/ErrVerifyParamsValue for a malformed tx, or a nil
// reason when the proof itself does not verify).
func (f *Facade) VerifyWithReason(tx *TxData) (ok bool, reason error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			reason = newErr(ErrVerifyParamsValue, "panic during verification: %v", r)
		}
	}()

	rt, sn, cm, g, gpk, proofBytes, gDataBits, err := f.checkVerifyParams(tx)
	if err != nil {
		return false, err
	}

	boolBits := make([]bool, len(gDataBits))
	for i, b := range gDataBits {
		boolBits[i] = b != 0
	}

	flat := make([]bool, 0, UnpackedPublicBitSize(f.NIn, f.NOut))
	for i := 0; i < f.NIn; i++ {
		flat = append(flat, BytesToBits(rt[i][:])...)
		flat = append(flat, BytesToBits(sn[i][:])...)
	}
	for j := 0; j < f.NOut; j++ {
		flat = append(flat, BytesToBits(cm[j][:])...)
	}
	flat = append(flat, U64ToBits(tx.VpubOld)...)
	flat = append(flat, U64ToBits(tx.VpubNew)...)
	flat = append(flat, BytesToBits(SwapEndianness8(g[:]))...)
	flat = append(flat, BytesToBits(SwapEndianness8(gpk[:]))...)
	flat = append(flat, boolBits...)

	packed := PackBitsNative(flat)

	circuit := NewTxCircuit(f.NIn, f.NOut)
	circuit.PackedPublic = make([]frontend.Variable, len(packed))
	for i, e := range packed {
		circuit.PackedPublic[i] = fieldVarFromElement(e)
	}

	publicWitness, err := frontend.NewWitness(circuit, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, wrapErr(ErrVerifyParamsValue, err, "building public witness")
	}

	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return false, wrapErr(ErrVerifyParamsValue, err, "proof is not a valid groth16 proof encoding")
	}

	if groth16.Verify(proof, f.vk, publicWitness) != nil {
		return false, nil
	}
	return true, nil
}

// DecryptTxInfo decrypts a transaction's governance ciphertext with the
// recipient's secret key and recovers the values used at prove time. A
// malformed secret key or ciphertext yields a zero-value TxGovInfo rather
// than propagating an error (spec §8 scenario 6).
func (f *Facade) DecryptTxInfo(gskHex, gDataBase64 string) TxGovInfo {
	gsk, err := ParseHex256(gskHex)
	if err != nil {
		return TxGovInfo{}
	}
	gDataBytes, err := base64.StdEncoding.DecodeString(gDataBase64)
	if err != nil {
		return TxGovInfo{}
	}
	govBits := GovDataBitSize(f.NIn, f.NOut)
	bits := BytesToBits(gDataBytes)
	if len(bits) < govBits {
		return TxGovInfo{}
	}
	return DecryptGovernanceInfo(gsk, bits[:govBits], f.NIn, f.NOut)
}

func setBits256(dst []frontend.Variable, src Bytes32) {
	setBitsN(dst, BytesToBits(src[:]))
}

func setBitsN(dst []frontend.Variable, bits []bool) {
	for i, b := range bits {
		dst[i] = boolVar(b)
	}
}

func boolVar(b bool) frontend.Variable {
	if b {
		return 1
	}
	return 0
}

func fieldVarFromElement(e fr.Element) frontend.Variable {
	v := new(big.Int)
	e.BigInt(v)
	return v
}

func fieldVarFromBytes32(b Bytes32) frontend.Variable {
	return fieldVarFromElement(BytesToField(b))
}
