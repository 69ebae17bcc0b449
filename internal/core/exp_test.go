package core

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestExponentiateMatchesRepeatedMultiplication(t *testing.T) {
	var a fr.Element
	a.SetUint64(3)

	got := Exponentiate(a, big.NewInt(5))

	var want fr.Element
	want.SetUint64(1)
	for i := 0; i < 5; i++ {
		want.Mul(&want, &a)
	}
	require.Equal(t, want, got)
}

func TestExponentiateZeroExponentIsOne(t *testing.T) {
	var a fr.Element
	a.SetUint64(123)
	got := Exponentiate(a, big.NewInt(0))

	var one fr.Element
	one.SetUint64(1)
	require.Equal(t, one, got)
}
