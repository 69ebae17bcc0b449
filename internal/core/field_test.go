package core

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitsBytesRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xff, 0x3c, 0x81}
	bits := BytesToBits(data)
	require.Len(t, bits, 32)
	require.Equal(t, data, BitsToBytes(bits))
}

func TestU64BitsRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 1 << 40, ^uint64(0)} {
		bits := U64ToBits(v)
		require.Len(t, bits, 64)
		require.Equal(t, v, BitsToU64(bits))
	}
}

func TestBytesToFieldLittleEndianLimbConvention(t *testing.T) {
	var b Bytes32
	b[31] = 1 // last byte is the most significant under the little-endian convention
	f := BytesToField(b)
	require.Equal(t, new(big.Int).Lsh(big.NewInt(1), 248), FieldToU256(f))
}

func TestFieldBytesRoundTrip(t *testing.T) {
	var b Bytes32
	for i := range b {
		b[i] = byte(i)
	}
	f := BytesToField(b)
	require.Equal(t, b, FieldToBytes(f))
}

func TestParseHex256RoundTrip(t *testing.T) {
	b, err := ParseHex256("deadbeef")
	require.NoError(t, err)
	require.Equal(t, "00000000000000000000000000000000000000000000000000000000deadbeef", FormatHex256(b))
}

func TestParseHex256RejectsOverlongString(t *testing.T) {
	s := ""
	for i := 0; i < 65; i++ {
		s += "a"
	}
	_, err := ParseHex256(s)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, ErrNotUint256, kind)
}

func TestValidateGeneratorAcceptsLeadingNibbleThree(t *testing.T) {
	g := "3000000000000000000000000000000000000000000000000000000000000000"[:64]
	require.NoError(t, ValidateGenerator(g))
}

func TestValidateGeneratorRejectsWrongNibble(t *testing.T) {
	g := "4000000000000000000000000000000000000000000000000000000000000000"[:64]
	err := ValidateGenerator(g)
	require.Error(t, err)
	kind, _ := KindOf(err)
	require.Equal(t, ErrGovGenerator, kind)
}

func TestValidateGeneratorRejectsWrongLength(t *testing.T) {
	err := ValidateGenerator("30")
	require.Error(t, err)
}

func TestSwapEndianness8Involution(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	require.Equal(t, b, SwapEndianness8(SwapEndianness8(b)))
}
