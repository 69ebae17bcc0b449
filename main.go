// main.go - a self-contained demonstration of a single shielded transfer.
//
// This walks through the full lifecycle a client of this library goes
// through: mint a note into an empty pool, prove a (2,2) transfer that
// spends it and pays a recipient while returning change, verify the
// resulting proof, and have the governance authority recover the
// transfer's plaintext details from the attached ciphertext.
//
// Usage:
//
//	go run .
package main

import (
	"fmt"
	"log"
	"math/big"

	"shieldedtx/internal/core"
)

func main() {
	pool := core.NewPool()
	ledger := core.NewLedger()

	var filler core.Bytes32
	filler[31] = 1
	pool.Append(core.FormatHex256(filler))

	var ask, r0 core.Bytes32
	fillRandom(&ask)
	fillRandom(&r0)

	apk := core.Apk(ask)
	const noteValue = 1_000
	cm := core.Commitment(apk, noteValue, r0)
	pool.Append(core.FormatHex256(cm))

	log.Printf("minted a %d-value note, apk=%s, pool size=%d", noteValue, core.FormatHex256(apk), pool.Size())

	var peerApk, gskBytes core.Bytes32
	fillRandom(&peerApk)
	fillRandom(&gskBytes)

	g, err := core.ParseHex256(core.DefaultG)
	if err != nil {
		log.Fatalf("parsing default generator: %v", err)
	}
	gsk := core.BytesToField(gskBytes)
	gskInt := new(big.Int)
	gsk.BigInt(gskInt)
	gpk := core.Exponentiate(core.BytesToField(g), gskInt)
	gpkBytes := core.FieldToBytes(gpk)

	f := core.NewFacade(2, 2)
	if err := f.Setup(); err != nil {
		log.Fatalf("facade setup: %v", err)
	}

	pkPath, vkPath := "demo-proving.key", "demo-verifying.key"
	log.Println("running trusted setup (this compiles the circuit and takes a moment)...")
	if err := f.Generate(pkPath, vkPath); err != nil {
		log.Fatalf("trusted setup: %v", err)
	}

	const payment = 400
	tx := f.Prove(pool, core.FormatHex256(ask), 0,
		[2]uint64{noteValue, 0}, [2]string{core.FormatHex256(r0), core.FormatHex256(core.Bytes32{})},
		[2]bool{false, true},
		core.FormatHex256(peerApk), 0, payment,
		core.DefaultG, core.FormatHex256(gpkBytes))

	if tx.ErrorCode != 0 {
		log.Fatalf("prove failed: %s", tx.Description)
	}
	fmt.Printf("proved a transfer of %d to %s, %d returned as change\n", tx.VToPayee, core.FormatHex256(peerApk), tx.VChange)

	if err := ledger.AppendTx(tx); err != nil {
		log.Fatalf("appending to ledger: %v", err)
	}

	if !f.Verify(tx) {
		log.Fatal("verification failed")
	}
	fmt.Println("proof verified")

	info := f.DecryptTxInfo(core.FormatHex256(gskBytes), tx.GData)
	fmt.Printf("governance authority recovered: vpub_old=%d vpub_new=%d out[0].value=%d out[1].value=%d\n",
		info.VpubOld, info.VpubNew, info.OutValues[0], info.OutValues[1])
}

func fillRandom(b *core.Bytes32) {
	r := core.RandomBytes32()
	copy(b[:], r[:])
}
