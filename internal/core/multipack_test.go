package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackBitsRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 252, 253, 254, 1000} {
		bits := make([]bool, n)
		for i := range bits {
			bits[i] = i%5 == 0
		}
		packed := PackBitsNative(bits)
		require.Equal(t, PackedChunkCount(n), len(packed))
		require.Equal(t, bits, UnpackFieldElementsNative(packed, n))
	}
}

func TestPackedChunkCountBoundary(t *testing.T) {
	require.Equal(t, 1, PackedChunkCount(FieldCapacityBits))
	require.Equal(t, 2, PackedChunkCount(FieldCapacityBits+1))
	require.Equal(t, 0, PackedChunkCount(0))
}
