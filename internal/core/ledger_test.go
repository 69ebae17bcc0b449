package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLedgerAppendDetectsDoubleSpend(t *testing.T) {
	l := NewLedger()
	tx := &TxData{Sn: []string{"sn0", "sn1"}, Cm: []string{"cm0", "cm1"}}

	require.NoError(t, l.AppendTx(tx))
	require.True(t, l.HasSerialNumber("sn0"))
	require.Equal(t, 2, l.Pool.Size())

	err := l.AppendTx(tx)
	require.Error(t, err)
}

func TestLedgerSaveLoadRoundTrip(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.AppendTx(&TxData{Sn: []string{"sn0"}, Cm: []string{"cm0"}, VpubOld: 5}))

	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, l.SaveToFile(path))

	loaded, err := LoadLedgerFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.TxList, 1)
	require.True(t, loaded.HasSerialNumber("sn0"))
	require.Equal(t, 1, loaded.Pool.Size())
}

func TestLoadLedgerFromFileMissing(t *testing.T) {
	_, err := LoadLedgerFromFile(filepath.Join(os.TempDir(), "does-not-exist-ledger.json"))
	require.Error(t, err)
}
