package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInputNoteWitnessMatchesAuthPath(t *testing.T) {
	pool := NewPool()
	var ask, r Bytes32
	ask[0] = 11
	r[0] = 22
	v := uint64(1000)

	apk := Apk(ask)
	cm := Commitment(apk, v, r)
	for i := 0; i < 5; i++ {
		var filler Bytes32
		filler[31] = byte(i + 1)
		pool.Append(FormatHex256(filler))
	}
	pool.Append(FormatHex256(cm))

	w, err := BuildInputNoteWitness(pool, ask, r, v)
	require.NoError(t, err)
	require.True(t, w.Enforce)
	require.Equal(t, apk, w.Apk)
	require.Equal(t, cm, w.Cm)
	require.Equal(t, SerialNumber(ask, r), w.Sn)
	require.Equal(t, MerkleRoot(w.Cm, w.Path, w.Dirs), w.Root)
}

func TestBuildInputNoteWitnessUnknownCommitment(t *testing.T) {
	pool := NewPool()
	var ask, r Bytes32
	_, err := BuildInputNoteWitness(pool, ask, r, 1)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, ErrCmNotFound, kind)
}

func TestZeroInputNoteWitnessIsExempt(t *testing.T) {
	w := ZeroInputNoteWitness()
	require.False(t, w.Enforce)
	require.Equal(t, uint64(0), w.V)
	require.Equal(t, hexToBytes32(ZeroSN), w.Sn)
	require.Equal(t, hexToBytes32(ZeroCMRootDepth4), w.Root)
}

func TestZeroCMRootDepth4MatchesOneLeafTree(t *testing.T) {
	zero := hexToBytes32(ZeroCM)
	var leaves [WindowSize]Bytes32
	for i := range leaves {
		leaves[i] = zero
	}
	require.Equal(t, hexToBytes32(ZeroCMRootDepth4), WindowRoot(leaves))
}
