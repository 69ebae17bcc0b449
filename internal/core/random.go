// random.go - The two distinct randomness sources spec §5/§9 call for: a
// process-wide CSPRNG for anything security-relevant (r, y) and a
// separately-seeded, non-cryptographic source for Merkle-window selection,
// where unpredictability only matters for obfuscation, not soundness. The
// window source is seeded once from the CSPRNG at package init rather than
// from wall-clock time, so fast successive calls don't leak a deterministic
// window (spec §9, "randomness").
package core

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mrand "math/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var windowRNG *mrand.Rand

func init() {
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(err)
	}
	windowRNG = mrand.New(mrand.NewSource(int64(binary.BigEndian.Uint64(seed[:]))))
}

// RandomBytes32 returns a CSPRNG-sourced 256-bit value, used for note
// randomness r and ElGamal randomness y.
func RandomBytes32() Bytes32 {
	var b Bytes32
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return b
}

// RandomFieldElement returns a uniformly random element of the scalar
// field (little-endian-limb convention, see BytesToField), rejecting draws
// that would otherwise bias the distribution near the modulus.
func RandomFieldElement() Bytes32 {
	for {
		b := RandomBytes32()
		be := SwapEndianness8(b[:])
		v := new(big.Int).SetBytes(be)
		if v.Cmp(fr.Modulus()) < 0 {
			return b
		}
	}
}
