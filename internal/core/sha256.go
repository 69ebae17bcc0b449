// sha256.go - SHA-256 compression function, used as a fixed-input-size
// block compressor rather than a general-purpose hash (spec §1, §9,
// GLOSSARY). Every call processes exactly one 512-bit block from the
// standard SHA-256 initial hash value; there is no Merkle-Damgård padding
// or length suffix, matching the "compression without padding" convention
// the rest of the protocol relies on for commitments, PRFs and serial
// numbers.
//
// Two implementations live here: Compress (native, used by the PRF/SN/CM
// calculators and by witness generation) and CompressCircuit (the in-circuit
// gadget, built directly from 32-bit-word XOR/AND/rotate/add primitives over
// frontend.Variable, the same bit-sliced style the RIPEMD160 circuit in the
// qbtc pack uses for non-algebraic hash functions — see DESIGN.md's stdlib
// justification for why this does not go through gnark's own std/hash/sha2
// or std/math/uints packages. The two must agree bit-for-bit; any drift
// silently breaks soundness (spec §1).
//
// xor32/and32/or32 (below) compute Xor/And/Or as raw R1CS polynomial
// identities, which only match boolean truth tables when every input is
// constrained to {0,1}. Every bit slice that reaches this file from outside
// — note secrets, Merkle siblings — is range-checked with AssertIsBoolean
// at its point of origin (note_in.go, note_out.go, merkle.go) before it
// ever reaches CompressCircuit; bits produced by CompressCircuit itself are
// already boolean because unpackMSB decomposes through api.ToBinary.

package core

import "github.com/consensys/gnark/frontend"

var sha256IV = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func rotr(x uint32, n uint) uint32 { return (x >> n) | (x << (32 - n)) }
func shr(x uint32, n uint) uint32  { return x >> n }

// Compress runs the SHA-256 compression function over a single 512-bit
// (64-byte) block starting from the standard initial hash value, returning
// the raw 256-bit (32-byte) result with no padding or finalization applied.
func Compress(block [64]byte) [32]byte {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = uint32(block[4*i])<<24 | uint32(block[4*i+1])<<16 | uint32(block[4*i+2])<<8 | uint32(block[4*i+3])
	}
	for i := 16; i < 64; i++ {
		s0 := rotr(w[i-15], 7) ^ rotr(w[i-15], 18) ^ shr(w[i-15], 3)
		s1 := rotr(w[i-2], 17) ^ rotr(w[i-2], 19) ^ shr(w[i-2], 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := sha256IV[0], sha256IV[1], sha256IV[2], sha256IV[3], sha256IV[4], sha256IV[5], sha256IV[6], sha256IV[7]
	for i := 0; i < 64; i++ {
		s1 := rotr(e, 6) ^ rotr(e, 11) ^ rotr(e, 25)
		ch := (e & f) ^ (^e & g)
		temp1 := h + s1 + ch + sha256K[i] + w[i]
		s0 := rotr(a, 2) ^ rotr(a, 13) ^ rotr(a, 22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		temp2 := s0 + maj

		h = g
		g = f
		f = e
		e = d + temp1
		d = c
		c = b
		b = a
		a = temp1 + temp2
	}

	h0 := sha256IV[0] + a
	h1 := sha256IV[1] + b
	h2 := sha256IV[2] + c
	h3 := sha256IV[3] + d
	h4 := sha256IV[4] + e
	h5 := sha256IV[5] + f
	h6 := sha256IV[6] + g
	h7 := sha256IV[7] + h

	var out [32]byte
	words := [8]uint32{h0, h1, h2, h3, h4, h5, h6, h7}
	for i, wv := range words {
		out[4*i] = byte(wv >> 24)
		out[4*i+1] = byte(wv >> 16)
		out[4*i+2] = byte(wv >> 8)
		out[4*i+3] = byte(wv)
	}
	return out
}

// CompressBits is the bit-slice convenience wrapper over Compress: it takes
// and returns MSB-first boolean slices (matching BytesToBits/BitsToBytes)
// instead of byte arrays.
func CompressBits(blockBits []bool) []bool {
	if len(blockBits) != 512 {
		panic("core: sha256 block must be exactly 512 bits")
	}
	var block [64]byte
	copy(block[:], BitsToBytes(blockBits))
	out := Compress(block)
	return BytesToBits(out[:])
}

// bitWord is a 32-bit word represented MSB-first as boolean R1CS variables.
type bitWord [32]frontend.Variable

// packMSB folds a MSB-first bit slice into a single field element.
func packMSB(api frontend.API, bits []frontend.Variable) frontend.Variable {
	acc := frontend.Variable(0)
	for _, b := range bits {
		acc = api.Add(api.Mul(acc, 2), b)
	}
	return acc
}

// unpackMSB decomposes v into an n-bit MSB-first boolean slice.
func unpackMSB(api frontend.API, v frontend.Variable, n int) []frontend.Variable {
	lsb := api.ToBinary(v, n) // gnark convention: lsb[0] is the least significant bit
	out := make([]frontend.Variable, n)
	for i := 0; i < n; i++ {
		out[i] = lsb[n-1-i]
	}
	return out
}

func xor32(api frontend.API, a, b bitWord) bitWord {
	var out bitWord
	for i := range a {
		out[i] = api.Xor(a[i], b[i])
	}
	return out
}

func and32(api frontend.API, a, b bitWord) bitWord {
	var out bitWord
	for i := range a {
		out[i] = api.And(a[i], b[i])
	}
	return out
}

func or32(api frontend.API, a, b bitWord) bitWord {
	var out bitWord
	for i := range a {
		out[i] = api.Or(a[i], b[i])
	}
	return out
}

func not32(api frontend.API, a bitWord) bitWord {
	var out bitWord
	for i := range a {
		out[i] = api.Sub(1, a[i])
	}
	return out
}

// rotr32 rotates a right by n bits; purely a re-indexing, no constraints.
func rotr32(a bitWord, n int) bitWord {
	var out bitWord
	for i := 0; i < 32; i++ {
		out[i] = a[(i-n+32)%32]
	}
	return out
}

// shr32 shifts a right by n bits, filling the vacated high bits with 0.
func shr32(a bitWord, n int) bitWord {
	var out bitWord
	zero := frontend.Variable(0)
	for i := 0; i < 32; i++ {
		if i < n {
			out[i] = zero
		} else {
			out[i] = a[i-n]
		}
	}
	return out
}

// add32mod adds 2-5 32-bit words modulo 2^32. The sum is computed as a
// single field addition (the field is far larger than 5*2^32) and then
// re-decomposed, discarding the carry bits above bit 31 — the standard
// trick for word addition inside an arithmetic circuit.
func add32mod(api frontend.API, words ...bitWord) bitWord {
	sum := frontend.Variable(0)
	for _, w := range words {
		sum = api.Add(sum, packMSB(api, w[:]))
	}
	const extraBits = 8 // covers up to 256 summed 32-bit words
	full := unpackMSB(api, sum, 32+extraBits)
	var out bitWord
	copy(out[:], full[extraBits:])
	return out
}

func bytesToWord(api frontend.API, bits []frontend.Variable) bitWord {
	var out bitWord
	copy(out[:], bits)
	return out
}

// CompressCircuit is the in-circuit twin of Compress. blockBits must be
// exactly 512 boolean R1CS variables, MSB-first; the result is 256 boolean
// variables, MSB-first.
func CompressCircuit(api frontend.API, blockBits []frontend.Variable) []frontend.Variable {
	if len(blockBits) != 512 {
		panic("core: sha256 circuit block must be exactly 512 bits")
	}

	var w [64]bitWord
	for i := 0; i < 16; i++ {
		w[i] = bytesToWord(api, blockBits[32*i:32*(i+1)])
	}
	for i := 16; i < 64; i++ {
		s0 := xor32(api, xor32(api, rotr32(w[i-15], 7), rotr32(w[i-15], 18)), shr32(w[i-15], 3))
		s1 := xor32(api, xor32(api, rotr32(w[i-2], 17), rotr32(w[i-2], 19)), shr32(w[i-2], 10))
		w[i] = add32mod(api, w[i-16], s0, w[i-7], s1)
	}

	var ivWords [8]bitWord
	for i, v := range sha256IV {
		bits := make([]frontend.Variable, 32)
		for j := 0; j < 32; j++ {
			bits[j] = (v >> uint(31-j)) & 1
		}
		copy(ivWords[i][:], bits)
	}

	a, b, c, d, e, f, g, h := ivWords[0], ivWords[1], ivWords[2], ivWords[3], ivWords[4], ivWords[5], ivWords[6], ivWords[7]
	for i := 0; i < 64; i++ {
		s1 := xor32(api, xor32(api, rotr32(e, 6), rotr32(e, 11)), rotr32(e, 25))
		ch := xor32(api, and32(api, e, f), and32(api, not32(api, e), g))

		var kBits bitWord
		for j := 0; j < 32; j++ {
			kBits[j] = (sha256K[i] >> uint(31-j)) & 1
		}
		temp1 := add32mod(api, h, s1, ch, kBits, w[i])

		s0 := xor32(api, xor32(api, rotr32(a, 2), rotr32(a, 13)), rotr32(a, 22))
		maj := xor32(api, xor32(api, and32(api, a, b), and32(api, a, c)), and32(api, b, c))
		temp2 := add32mod(api, s0, maj)

		h = g
		g = f
		f = e
		e = add32mod(api, d, temp1)
		d = c
		c = b
		b = a
		a = add32mod(api, temp1, temp2)
	}

	finalWords := [8]bitWord{
		add32mod(api, ivWords[0], a), add32mod(api, ivWords[1], b),
		add32mod(api, ivWords[2], c), add32mod(api, ivWords[3], d),
		add32mod(api, ivWords[4], e), add32mod(api, ivWords[5], f),
		add32mod(api, ivWords[6], g), add32mod(api, ivWords[7], h),
	}

	out := make([]frontend.Variable, 256)
	for i, word := range finalWords {
		copy(out[32*i:32*(i+1)], word[:])
	}
	return out
}
