package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressIsDeterministic(t *testing.T) {
	var block [64]byte
	for i := range block {
		block[i] = byte(i)
	}
	require.Equal(t, Compress(block), Compress(block))
}

func TestCompressBitsMatchesCompress(t *testing.T) {
	var block [64]byte
	for i := range block {
		block[i] = byte(i * 3)
	}
	bits := BytesToBits(block[:])
	out := Compress(block)
	require.Equal(t, BytesToBits(out[:]), CompressBits(bits))
}

func TestApkDeterministic(t *testing.T) {
	var ask Bytes32
	ask[0] = 0x42
	require.Equal(t, Apk(ask), Apk(ask))
	require.NotEqual(t, Apk(ask), ask)
}

func TestSerialNumberDiffersByRandomness(t *testing.T) {
	var ask, r1, r2 Bytes32
	ask[0] = 1
	r1[0] = 1
	r2[0] = 2
	require.NotEqual(t, SerialNumber(ask, r1), SerialNumber(ask, r2))
}

func TestCommitmentDeterministicAndSensitiveToValue(t *testing.T) {
	var apk, r Bytes32
	apk[0] = 7
	r[0] = 9
	c1 := Commitment(apk, 100, r)
	c2 := Commitment(apk, 100, r)
	c3 := Commitment(apk, 101, r)
	require.Equal(t, c1, c2)
	require.NotEqual(t, c1, c3)
}
