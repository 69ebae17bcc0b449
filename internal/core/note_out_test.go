package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildOutputNoteWitnessCommitmentMatches(t *testing.T) {
	var apk Bytes32
	apk[0] = 5
	w := BuildOutputNoteWitness(apk, 42)
	require.Equal(t, Commitment(apk, 42, w.R), w.Cm)
}

func TestBuildOutputNoteWitnessSamplesFreshRandomness(t *testing.T) {
	var apk Bytes32
	w1 := BuildOutputNoteWitness(apk, 1)
	w2 := BuildOutputNoteWitness(apk, 1)
	require.NotEqual(t, w1.R, w2.R)
	require.NotEqual(t, w1.Cm, w2.Cm)
}
