package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fakePool(n int) *Pool {
	p := NewPool()
	for i := 0; i < n; i++ {
		var b Bytes32
		b[31] = byte(i)
		b[30] = byte(i >> 8)
		p.Append(FormatHex256(b))
	}
	return p
}

func TestAuthPathReconstructsRoot(t *testing.T) {
	pool := fakePool(WindowSize)
	leaves := WindowLeaves(pool, 0, WindowSize-1)
	layers := BuildWindowTree(leaves)
	root := layers[IncrementalMerkleTreeDepth][0]

	for idx := 0; idx < WindowSize; idx++ {
		siblings, dirs := AuthPath(layers, idx)
		got := MerkleRoot(leaves[idx], siblings, dirs)
		require.Equal(t, root, got, "leaf %d failed to reconstruct root", idx)
	}
}

func TestWindowLeavesZeroPadsPastPoolAndPastTo(t *testing.T) {
	pool := fakePool(3)
	leaves := WindowLeaves(pool, 0, 1)
	zero := hexToBytes32(ZeroCM)

	require.NotEqual(t, zero, leaves[0])
	require.NotEqual(t, zero, leaves[1])
	// leaves[2] is within the pool but past `to`: must look unfilled.
	require.Equal(t, zero, leaves[2])
	for i := 3; i < WindowSize; i++ {
		require.Equal(t, zero, leaves[i])
	}
}

func TestSampleWindowCoversIndexAndVariesOffset(t *testing.T) {
	poolSize := 1000
	idx := 500

	offsets := make(map[int]bool)
	for i := 0; i < 50; i++ {
		from, to := SampleWindow(poolSize, idx)
		require.LessOrEqual(t, from, idx)
		require.GreaterOrEqual(t, to, idx)
		require.LessOrEqual(t, to-from+1, WindowSize)
		require.Less(t, to, poolSize)
		offsets[idx-from] = true
	}
	require.Greater(t, len(offsets), 1, "window offset never varies across repeated samples")
}

func TestSampleWindowNearPoolBoundary(t *testing.T) {
	from, to := SampleWindow(10, 9)
	require.Equal(t, 9, to)
	require.LessOrEqual(t, from, 9)
}
