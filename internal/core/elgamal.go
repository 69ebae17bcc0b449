// elgamal.go - Chunked ElGamal gadget over the scalar field's multiplicative
// group (spec component C6). There is no elliptic-curve group here: g,
// Gpk = g^gsk and the per-transaction randomness y are all plain scalar
// field elements, and "multiplication" in the ElGamal sense is ordinary
// field multiplication. Encryption is proved in-circuit (the prover knows
// y and the plaintext); decryption only ever runs natively, since it needs
// the recipient's secret key which never appears as a circuit witness.
//
// Plaintext is split into MsgBoxBits-bit message boxes (248 bits, leaving
// headroom below the ~254-bit field modulus so every packed chunk is a
// valid field element with no reduction). Ciphertext layout is one 256-bit
// c1 box (c1 = g^y) followed by one 256-bit c2 box per message box
// (c2_k = m_k * Gpk^y).
package core

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
)

// MsgBoxBits is the number of plaintext bits packed per ciphertext chunk.
const MsgBoxBits = 248

// CipherBoxBits is the width of every box (c1 and each c2_k) in the
// ciphertext.
const CipherBoxBits = 256

// ChunkCount returns the number of MsgBoxBits-sized chunks needed to hold
// plainBits bits, rounding up.
func ChunkCount(plainBits int) int {
	return (plainBits + MsgBoxBits - 1) / MsgBoxBits
}

// CiphertextBits returns the total ciphertext width (in bits) for a
// plaintext of plainBits bits: one c1 box plus one c2 box per chunk.
func CiphertextBits(plainBits int) int {
	return CipherBoxBits * (1 + ChunkCount(plainBits))
}

// EncryptCircuit constrains and returns the ciphertext bits for plainBits
// (MSB-first, zero-padded by the caller to a multiple of MsgBoxBits),
// under generator g, recipient public key gpk and fresh randomness y.
func EncryptCircuit(api frontend.API, g, gpk, y frontend.Variable, plainBits []frontend.Variable) []frontend.Variable {
	if len(plainBits)%MsgBoxBits != 0 {
		panic("core: elgamal plaintext must be zero-padded to a multiple of MsgBoxBits")
	}

	c1 := ExponentiateCircuit(api, g, y)
	s := ExponentiateCircuit(api, gpk, y)

	out := make([]frontend.Variable, 0, CiphertextBits(len(plainBits)))
	out = append(out, NewBinaryFromPacked(api, c1, CipherBoxBits).Bits...)

	chunks := len(plainBits) / MsgBoxBits
	for k := 0; k < chunks; k++ {
		block := plainBits[k*MsgBoxBits : (k+1)*MsgBoxBits]
		m := packMSB(api, block)
		c2 := api.Mul(m, s)
		out = append(out, NewBinaryFromPacked(api, c2, CipherBoxBits).Bits...)
	}
	return out
}

// bitsToBigMSB folds a MSB-first boolean slice into a big.Int.
func bitsToBigMSB(bits []bool) *big.Int {
	v := new(big.Int)
	for _, b := range bits {
		v.Lsh(v, 1)
		if b {
			v.SetBit(v, 0, 1)
		}
	}
	return v
}

// bigToBitsMSB expands v into an n-bit MSB-first boolean slice.
func bigToBitsMSB(v *big.Int, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = v.Bit(i) == 1
	}
	return out
}

// Encrypt is the native twin of EncryptCircuit.
func Encrypt(g, gpk, y fr.Element, plainBits []bool) []bool {
	if len(plainBits)%MsgBoxBits != 0 {
		panic("core: elgamal plaintext must be zero-padded to a multiple of MsgBoxBits")
	}

	yInt := new(big.Int)
	y.BigInt(yInt)

	c1 := Exponentiate(g, yInt)
	s := Exponentiate(gpk, yInt)

	out := make([]bool, 0, CiphertextBits(len(plainBits)))
	c1Int := new(big.Int)
	c1.BigInt(c1Int)
	out = append(out, bigToBitsMSB(c1Int, CipherBoxBits)...)

	chunks := len(plainBits) / MsgBoxBits
	for k := 0; k < chunks; k++ {
		block := plainBits[k*MsgBoxBits : (k+1)*MsgBoxBits]
		var m fr.Element
		m.SetBigInt(bitsToBigMSB(block))

		var c2 fr.Element
		c2.Mul(&m, &s)

		c2Int := new(big.Int)
		c2.BigInt(c2Int)
		out = append(out, bigToBitsMSB(c2Int, CipherBoxBits)...)
	}
	return out
}

// Decrypt recovers the zero-padded plaintext bits from cipherBits using
// the recipient's secret key sk (gsk, where Gpk = g^gsk).
func Decrypt(sk fr.Element, cipherBits []bool) []bool {
	if len(cipherBits) < CipherBoxBits || (len(cipherBits)-CipherBoxBits)%CipherBoxBits != 0 {
		panic("core: malformed elgamal ciphertext length")
	}

	c1Int := bitsToBigMSB(cipherBits[:CipherBoxBits])
	var c1 fr.Element
	c1.SetBigInt(c1Int)

	skInt := new(big.Int)
	sk.BigInt(skInt)
	s := Exponentiate(c1, skInt)
	var sInv fr.Element
	sInv.Inverse(&s)

	chunks := (len(cipherBits) - CipherBoxBits) / CipherBoxBits
	out := make([]bool, 0, chunks*MsgBoxBits)
	for k := 0; k < chunks; k++ {
		box := cipherBits[CipherBoxBits+k*CipherBoxBits : CipherBoxBits+(k+1)*CipherBoxBits]
		c2Int := bitsToBigMSB(box)
		var c2 fr.Element
		c2.SetBigInt(c2Int)

		var m fr.Element
		m.Mul(&c2, &sInv)

		mInt := new(big.Int)
		m.BigInt(mInt)
		out = append(out, bigToBitsMSB(mInt, MsgBoxBits)...)
	}
	return out
}
