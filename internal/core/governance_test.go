package core

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGovernanceEncryptDecryptRoundTrip(t *testing.T) {
	var gBytes, gpkBytes, gskBytes Bytes32
	gBytes[31] = 5
	gskBytes[31] = 13
	gsk := BytesToField(gskBytes)

	g := BytesToField(gBytes)
	gskInt := new(big.Int)
	gsk.BigInt(gskInt)
	gpk := Exponentiate(g, gskInt)
	gpkBytes = FieldToBytes(gpk)

	inApks := []Bytes32{{0: 1}, {0: 2}}
	inValues := []uint64{100, 200}
	outApks := []Bytes32{{0: 3}, {0: 4}}
	outValues := []uint64{150, 140}

	gData := EncryptGovernanceInfo(50, inApks, inValues, 10, outApks, outValues, gBytes, gpkBytes, RandomBytes32())

	info := DecryptGovernanceInfo(gskBytes, gData, 2, 2)
	require.Equal(t, uint64(50), info.VpubOld)
	require.Equal(t, uint64(10), info.VpubNew)
	require.Equal(t, inApks, info.InApks)
	require.Equal(t, inValues, info.InValues)
	require.Equal(t, outApks, info.OutApks)
	require.Equal(t, outValues, info.OutValues)
}

func TestGovDataBitSizeMatchesCiphertextFormula(t *testing.T) {
	nIn, nOut := 2, 2
	plainBits := GovPlaintextBitSize(nIn, nOut)
	require.Equal(t, CiphertextBits(plainBits), GovDataBitSize(nIn, nOut))
}
