// field.go - Field/curve bridge (spec component C1).
//
// U256ToField and ParseHex256 fail with ErrInvalidEncoding / ErrNotUint256
// on out-of-range or malformed input rather than dropping bits; BytesToField
// reduces its input modulo the field order. The rest of the package works exclusively through these
// helpers so that the bit-endianness convention stays in one place.

package core

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Bytes32 is an opaque 256-bit value, big-endian when hex-serialized.
type Bytes32 [32]byte

// U256ToField converts an unsigned 256-bit big.Int into a field element.
// Fails with ErrInvalidEncoding if v does not fit the scalar field.
func U256ToField(v *big.Int) (fr.Element, error) {
	var f fr.Element
	if v.Sign() < 0 {
		return f, newErr(ErrInvalidEncoding, "negative value cannot be a field element")
	}
	if v.Cmp(fr.Modulus()) >= 0 {
		return f, newErr(ErrInvalidEncoding, "value %s exceeds field modulus", v.String())
	}
	f.SetBigInt(v)
	return f, nil
}

// FieldToU256 converts a field element back into its canonical unsigned
// big.Int representative.
func FieldToU256(f fr.Element) *big.Int {
	out := new(big.Int)
	f.BigInt(out)
	return out
}

// BytesToField interprets 32 bytes as little-endian limbs and reduces them
// into the scalar field. This is the convention used for witnessing raw
// digest bytes (apk, cm, sn, r) as field elements.
func BytesToField(b Bytes32) fr.Element {
	le := make([]byte, 32)
	for i := 0; i < 32; i++ {
		le[i] = b[31-i]
	}
	v := new(big.Int).SetBytes(le)
	v.Mod(v, fr.Modulus())
	var f fr.Element
	f.SetBigInt(v)
	return f
}

// FieldToBytes serializes a field element into 32 little-endian-limb bytes,
// the inverse of BytesToField.
func FieldToBytes(f fr.Element) Bytes32 {
	v := FieldToU256(f)
	be := v.FillBytes(make([]byte, 32))
	var out Bytes32
	for i := 0; i < 32; i++ {
		out[i] = be[31-i]
	}
	return out
}

// BitsToBytes packs a MSB-first bit slice into bytes, MSB-first within each
// byte. A short trailing byte is zero-padded on its low bits.
func BitsToBytes(bits []bool) []byte {
	n := (len(bits) + 7) / 8
	out := make([]byte, n)
	for i, b := range bits {
		if !b {
			continue
		}
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		out[byteIdx] |= 1 << uint(bitIdx)
	}
	return out
}

// BytesToBits unpacks bytes into a MSB-first bit slice, 8 bits per byte.
func BytesToBits(data []byte) []bool {
	out := make([]bool, len(data)*8)
	for i, b := range data {
		for j := 0; j < 8; j++ {
			out[i*8+j] = (b>>(7-uint(j)))&1 == 1
		}
	}
	return out
}

// U64ToBits encodes v in little-endian byte order, then MSB-first bit order
// within each byte — the convention the governance plaintext layout and the
// value-packing gadgets share (spec §4.1, §6).
func U64ToBits(v uint64) []bool {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return BytesToBits(b)
}

// BitsToU64 is the inverse of U64ToBits.
func BitsToU64(bits []bool) uint64 {
	b := BitsToBytes(bits)
	var v uint64
	for i := 0; i < 8 && i < len(b); i++ {
		v |= uint64(b[i]) << (8 * uint(i))
	}
	return v
}

// SwapEndianness64 reverses the byte order of a 64-bit word. This is the
// load-bearing transform noted in spec §9: value bit-order must be flipped
// to big-endian before packing into a field element while bit order within
// each byte is preserved.
func SwapEndianness64(v uint64) uint64 {
	var out uint64
	for i := 0; i < 8; i++ {
		out |= ((v >> (8 * uint(i))) & 0xff) << (8 * uint(7-i))
	}
	return out
}

// SwapEndianness8 reverses byte order across an arbitrary-length buffer,
// treating it as a sequence of 8-bit units (used to lay out g and Gpk in the
// public-input bits, and by RandomFieldElement, so that MSB-first packing
// matches BytesToField's little-endian-limb convention).
func SwapEndianness8(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// ParseHex256 parses a case-insensitive hex string (no 0x prefix, at most 64
// characters) into a Bytes32, zero-extending short inputs on the high side.
func ParseHex256(s string) (Bytes32, error) {
	var out Bytes32
	if len(s) > 64 {
		return out, newErr(ErrNotUint256, "hex string %q exceeds 64 characters", s)
	}
	if len(s)%2 != 0 {
		s = "0" + s
	}
	padded := strings.Repeat("0", 64-len(s)) + s
	raw, err := hex.DecodeString(padded)
	if err != nil {
		return out, wrapErr(ErrNotUint256, err, "invalid hex string %q", s)
	}
	copy(out[:], raw)
	return out, nil
}

// FormatHex256 renders a Bytes32 as a lower-case 64-character hex string.
func FormatHex256(b Bytes32) string {
	return hex.EncodeToString(b[:])
}

// ValidateGenerator checks that g is exactly 64 hex characters whose first
// nibble is 3, i.e. g ∈ [2^253 + 2^252, 2^254) read big-endian (spec §4.12, §6).
func ValidateGenerator(g string) error {
	if len(g) != 64 {
		return newErr(ErrGovGenerator, "generator must be 64 hex characters, got %d", len(g))
	}
	if _, err := hex.DecodeString(g); err != nil {
		return wrapErr(ErrGovGenerator, err, "generator is not valid hex")
	}
	if strings.ToLower(g)[0] != '3' {
		return newErr(ErrGovGenerator, "generator's leading nibble must be 3, got %q", g[0:1])
	}
	return nil
}
