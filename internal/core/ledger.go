// ledger.go - Append-only transaction ledger, adapted from the teacher's
// Ledger (internal/zerocash/ledger.go). Tracks spent serial numbers for
// double-spend detection and appends each accepted transaction's output
// commitments to the pool that input-note proofs are built against.
//
// Ledger is not thread-safe by itself; callers sharing one across
// goroutines must hold their own mutex (same contract as Pool).
package core

import (
	"encoding/json"
	"os"
)

// Ledger is the append-only record of every accepted shielded transfer.
type Ledger struct {
	Pool   *Pool
	SnSeen map[string]bool
	TxList []*TxData
}

// NewLedger creates an empty ledger backed by a fresh commitment pool.
func NewLedger() *Ledger {
	return &Ledger{Pool: NewPool(), SnSeen: make(map[string]bool)}
}

// HasSerialNumber reports whether sn has already been spent.
func (l *Ledger) HasSerialNumber(sn string) bool { return l.SnSeen[sn] }

// AppendTx records an already-verified transaction: it rejects a repeat of
// any serial number in tx.Sn, then marks them spent and appends tx.Cm to
// the pool.
func (l *Ledger) AppendTx(tx *TxData) error {
	for _, sn := range tx.Sn {
		if l.HasSerialNumber(sn) {
			return newErr(ErrCmNotFound, "double-spend: serial number %s already in ledger", sn)
		}
	}
	for _, sn := range tx.Sn {
		l.SnSeen[sn] = true
	}
	for _, cm := range tx.Cm {
		l.Pool.Append(cm)
	}
	l.TxList = append(l.TxList, tx)
	return nil
}

// ledgerFile is the on-disk shape of a Ledger, since Pool's index map and
// SnSeen's bool-set are reconstructible from the ordered lists alone.
type ledgerFile struct {
	Commitments []string
	SpentSn     []string
	TxList      []*TxData
}

// SaveToFile persists the ledger as indented JSON, overwriting path if it
// exists.
func (l *Ledger) SaveToFile(path string) error {
	lf := ledgerFile{TxList: l.TxList}
	for i := 0; i < l.Pool.Size(); i++ {
		cm, _ := l.Pool.Get(i)
		lf.Commitments = append(lf.Commitments, cm)
	}
	for sn := range l.SnSeen {
		lf.SpentSn = append(lf.SpentSn, sn)
	}

	f, err := os.Create(path)
	if err != nil {
		return wrapErr(ErrFileNotFound, err, "cannot create ledger file %s", path)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(lf)
}

// LoadLedgerFromFile reconstructs a Ledger previously written by
// SaveToFile.
func LoadLedgerFromFile(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(ErrFileNotFound, err, "cannot open ledger file %s", path)
	}
	defer f.Close()

	var lf ledgerFile
	if err := json.NewDecoder(f).Decode(&lf); err != nil {
		return nil, wrapErr(ErrInvalidEncoding, err, "cannot decode ledger file %s", path)
	}

	l := NewLedger()
	for _, cm := range lf.Commitments {
		l.Pool.Append(cm)
	}
	for _, sn := range lf.SpentSn {
		l.SnSeen[sn] = true
	}
	l.TxList = lf.TxList
	return l, nil
}
