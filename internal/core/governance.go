// governance.go - Governance gadget (spec component C10). Assembles the
// canonical plaintext bit buffer (spec §6, "governance plaintext layout")
// out of the transaction's public value fields and every note's apk/value,
// then delegates to the ElGamal gadget (C6) to encrypt it under the
// transaction's ephemeral randomness y and the recipient's public key Gpk.
package core

import "github.com/consensys/gnark/frontend"

// GovDataBitSize returns the bit width of G_data (the ciphertext) for a
// transaction with nIn inputs and nOut outputs, after the plaintext has
// been zero-padded to a multiple of MsgBoxBits.
func GovDataBitSize(nIn, nOut int) int {
	return CiphertextBits(GovPlaintextBitSize(nIn, nOut))
}

// GovPlaintextBitSize returns the (unpadded) plaintext bit width: 64-bit
// vpub_old, (256+64) bits per input, 64-bit vpub_new, (256+64) bits per
// output.
func GovPlaintextBitSize(nIn, nOut int) int {
	return 64 + nIn*(256+64) + 64 + nOut*(256+64)
}

// padToMsgBox zero-pads bits up to the next multiple of MsgBoxBits.
func padToMsgBox(bits []bool) []bool {
	rem := len(bits) % MsgBoxBits
	if rem == 0 {
		return bits
	}
	return append(bits, make([]bool, MsgBoxBits-rem)...)
}

// AssembleGovernancePlaintext builds the native plaintext bit buffer.
func AssembleGovernancePlaintext(vpubOld uint64, inApks []Bytes32, inValues []uint64, vpubNew uint64, outApks []Bytes32, outValues []uint64) []bool {
	out := make([]bool, 0, GovPlaintextBitSize(len(inApks), len(outApks)))
	out = append(out, U64ToBits(vpubOld)...)
	for i := range inApks {
		out = append(out, BytesToBits(inApks[i][:])...)
		out = append(out, U64ToBits(inValues[i])...)
	}
	out = append(out, U64ToBits(vpubNew)...)
	for j := range outApks {
		out = append(out, BytesToBits(outApks[j][:])...)
		out = append(out, U64ToBits(outValues[j])...)
	}
	return padToMsgBox(out)
}

// EncryptGovernanceInfo is the native twin of the governance gadget: it
// assembles the plaintext and ElGamal-encrypts it.
func EncryptGovernanceInfo(vpubOld uint64, inApks []Bytes32, inValues []uint64, vpubNew uint64, outApks []Bytes32, outValues []uint64, g, gpk, y Bytes32) []bool {
	plain := AssembleGovernancePlaintext(vpubOld, inApks, inValues, vpubNew, outApks, outValues)
	return Encrypt(BytesToField(g), BytesToField(gpk), BytesToField(y), plain)
}

// TxGovInfo is the decrypted, parsed form of a transaction's governance
// payload.
type TxGovInfo struct {
	VpubOld   uint64
	InApks    []Bytes32
	InValues  []uint64
	VpubNew   uint64
	OutApks   []Bytes32
	OutValues []uint64
}

// DecryptGovernanceInfo decrypts G_data with the recipient's secret key and
// parses it back into a TxGovInfo, given the number of inputs/outputs the
// transaction was built with.
func DecryptGovernanceInfo(gsk Bytes32, gData []bool, nIn, nOut int) TxGovInfo {
	plain := Decrypt(BytesToField(gsk), gData)

	pos := 0
	take := func(n int) []bool {
		b := plain[pos : pos+n]
		pos += n
		return b
	}

	info := TxGovInfo{
		InApks:    make([]Bytes32, nIn),
		InValues:  make([]uint64, nIn),
		OutApks:   make([]Bytes32, nOut),
		OutValues: make([]uint64, nOut),
	}
	info.VpubOld = BitsToU64(take(64))
	for i := 0; i < nIn; i++ {
		copy(info.InApks[i][:], BitsToBytes(take(256)))
		info.InValues[i] = BitsToU64(take(64))
	}
	info.VpubNew = BitsToU64(take(64))
	for j := 0; j < nOut; j++ {
		copy(info.OutApks[j][:], BitsToBytes(take(256)))
		info.OutValues[j] = BitsToU64(take(64))
	}
	return info
}

// GovernanceCircuit assembles the plaintext bit buffer in-circuit (each
// piece already an allocated public-input or note-gadget output) and
// returns the ElGamal ciphertext bits. g, gpk and y are scalar field
// variables (not 256-bit digests); vpubOldBits/vpubNewBits are 64-bit,
// inApkBits/outApkBits are 256-bit, inValueBits/outValueBits are 64-bit.
func GovernanceCircuit(
	api frontend.API,
	vpubOldBits []frontend.Variable,
	inApkBits [][]frontend.Variable, inValueBits [][]frontend.Variable,
	vpubNewBits []frontend.Variable,
	outApkBits [][]frontend.Variable, outValueBits [][]frontend.Variable,
	g, gpk, y frontend.Variable,
) []frontend.Variable {
	plain := make([]frontend.Variable, 0, GovPlaintextBitSize(len(inApkBits), len(outApkBits)))
	plain = append(plain, vpubOldBits...)
	for i := range inApkBits {
		plain = append(plain, inApkBits[i]...)
		plain = append(plain, inValueBits[i]...)
	}
	plain = append(plain, vpubNewBits...)
	for j := range outApkBits {
		plain = append(plain, outApkBits[j]...)
		plain = append(plain, outValueBits[j]...)
	}

	if rem := len(plain) % MsgBoxBits; rem != 0 {
		zero := frontend.Variable(0)
		for i := 0; i < MsgBoxBits-rem; i++ {
			api.AssertIsBoolean(zero)
			plain = append(plain, zero)
		}
	}

	return EncryptCircuit(api, g, gpk, y, plain)
}
