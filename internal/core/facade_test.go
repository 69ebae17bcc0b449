package core

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setUpFacade builds and wires a fresh (2,2) façade with keys persisted to
// a scratch directory, returning it ready for Prove/Verify.
func setUpFacade(t *testing.T) *Facade {
	t.Helper()
	f := NewFacade(2, 2)
	require.NoError(t, f.Setup())

	dir := t.TempDir()
	require.NoError(t, f.Generate(filepath.Join(dir, "pk.key"), filepath.Join(dir, "vk.key")))
	return f
}

func TestProveVerifyRoundTrip(t *testing.T) {
	f := setUpFacade(t)

	pool := NewPool()
	var filler Bytes32
	filler[31] = 1
	pool.Append(FormatHex256(filler))

	var ask, r0 Bytes32
	ask[0] = 0xAA
	r0[0] = 0xBB
	apk := Apk(ask)
	cm := Commitment(apk, 1000, r0)
	pool.Append(FormatHex256(cm))

	var peerApk, gskBytes Bytes32
	peerApk[0] = 0x01
	gskBytes[31] = 42

	g, err := ParseHex256(DefaultG)
	require.NoError(t, err)
	gsk := BytesToField(gskBytes)
	gskInt := new(big.Int)
	gsk.BigInt(gskInt)
	gpk := Exponentiate(BytesToField(g), gskInt)
	gpkBytes := FieldToBytes(gpk)

	tx := f.Prove(pool, FormatHex256(ask), 0, [2]uint64{1000, 0}, [2]string{FormatHex256(r0), FormatHex256(Bytes32{})},
		[2]bool{false, true}, FormatHex256(peerApk), 0, 400, DefaultG, FormatHex256(gpkBytes))

	require.Equal(t, 0, tx.ErrorCode, tx.Description)
	require.Equal(t, uint64(400), tx.VToPayee)
	require.Equal(t, uint64(600), tx.VChange)

	require.True(t, f.Verify(tx))

	info := f.DecryptTxInfo(FormatHex256(gskBytes), tx.GData)
	require.Equal(t, uint64(400), info.OutValues[0])
	require.Equal(t, peerApk, info.OutApks[0])
}

func TestProveInsufficientValueFails(t *testing.T) {
	f := setUpFacade(t)
	pool := NewPool()

	var ask Bytes32
	tx := f.Prove(pool, FormatHex256(ask), 0, [2]uint64{0, 0}, [2]string{FormatHex256(Bytes32{}), FormatHex256(Bytes32{})},
		[2]bool{true, true}, FormatHex256(Bytes32{}), 0, 10, DefaultG, DefaultG)

	require.Equal(t, 1, tx.ErrorCode)
	require.Contains(t, tx.Description, string(ErrProveValue))
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	f := setUpFacade(t)
	pool := NewPool()
	var ask, r0 Bytes32
	ask[0] = 1
	r0[0] = 2
	apk := Apk(ask)
	cm := Commitment(apk, 500, r0)
	pool.Append(FormatHex256(cm))

	tx := f.Prove(pool, FormatHex256(ask), 0, [2]uint64{500, 0}, [2]string{FormatHex256(r0), FormatHex256(Bytes32{})},
		[2]bool{false, true}, FormatHex256(Bytes32{}), 0, 100, DefaultG, DefaultG)
	require.Equal(t, 0, tx.ErrorCode)

	tx.Proof = tx.Proof[:len(tx.Proof)-4] + "AAAA"
	require.False(t, f.Verify(tx))
}

func TestDecryptTxInfoRejectsMalformedKey(t *testing.T) {
	f := NewFacade(2, 2)
	info := f.DecryptTxInfo("not-hex-zzzz", "irrelevant")
	require.Equal(t, TxGovInfo{}, info)
}
