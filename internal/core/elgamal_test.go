package core

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func genKeyPair() (g, gsk, gpk fr.Element) {
	g.SetUint64(5)
	gsk.SetUint64(777)
	gpk.Exp(g, big.NewInt(777))
	return
}

func TestEncryptDecryptRoundTripAtSeveralLengths(t *testing.T) {
	g, gsk, gpk := genKeyPair()

	for _, n := range []int{0, 1, 247, 248, 249, 500, 4096} {
		plain := make([]bool, n)
		for i := range plain {
			plain[i] = i%3 == 0
		}
		padded := padToMsgBox(plain)

		y := RandomFieldElement()
		cipher := Encrypt(g, gpk, BytesToField(y), padded)
		require.Len(t, cipher, CiphertextBits(len(padded)))

		recovered := Decrypt(gsk, cipher)
		require.Equal(t, padded, recovered, "round trip mismatch for plaintext length %d", n)
	}
}

func TestCiphertextBitsFormula(t *testing.T) {
	require.Equal(t, CipherBoxBits, CiphertextBits(0))
	require.Equal(t, 2*CipherBoxBits, CiphertextBits(1))
	require.Equal(t, 2*CipherBoxBits, CiphertextBits(MsgBoxBits))
	require.Equal(t, 3*CipherBoxBits, CiphertextBits(MsgBoxBits+1))
}

func TestDecryptWithWrongKeyProducesDifferentPlaintext(t *testing.T) {
	g, gsk, gpk := genKeyPair()
	padded := padToMsgBox([]bool{true, false, true})

	y := RandomFieldElement()
	cipher := Encrypt(g, gpk, BytesToField(y), padded)

	var wrongSk fr.Element
	wrongSk.SetUint64(778)
	require.NotEqual(t, gsk, wrongSk)

	require.NotEqual(t, padded, Decrypt(wrongSk, cipher))
}
