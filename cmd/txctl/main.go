// txctl - a local command-line client for the shielded-transfer proof
// façade: trusted setup, proof generation, verification, governance
// decryption, and pool inspection, all without a running daemon.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"shieldedtx/internal/core"
)

var (
	pkPath   string
	vkPath   string
	poolPath string
	nIn      int
	nOut     int
)

func main() {
	root := &cobra.Command{Use: "txctl", Short: "Shielded-transfer proof CLI"}
	root.PersistentFlags().StringVar(&pkPath, "pk", "proving.key", "proving key path")
	root.PersistentFlags().StringVar(&vkPath, "vk", "verifying.key", "verifying key path")
	root.PersistentFlags().StringVar(&poolPath, "pool", "pool.json", "commitment pool path")
	root.PersistentFlags().IntVar(&nIn, "n-in", 2, "number of spent inputs")
	root.PersistentFlags().IntVar(&nOut, "n-out", 2, "number of created outputs")

	root.AddCommand(generateCmd(), proveCmd(), verifyCmd(), decryptCmd(), listPoolCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Run the trusted setup and write the proving/verifying keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := core.NewFacade(nIn, nOut)
			if err := f.Setup(); err != nil {
				return err
			}
			if err := f.Generate(pkPath, vkPath); err != nil {
				return err
			}
			fmt.Println(color.GreenString("keys written to %s, %s", pkPath, vkPath))
			return nil
		},
	}
}

func proveCmd() *cobra.Command {
	var (
		ask, r0, r1, peerApk, g, gpk string
		vpubOld, v0, v1, vpubNew, rV uint64
		zero0, zero1                 bool
	)
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Prove a (2,2) shielded transfer and print its TxData as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := core.NewFacade(nIn, nOut)
			if err := f.LoadKeys(pkPath, vkPath); err != nil {
				return err
			}

			pool, err := core.LoadPoolFromFile(poolPath)
			if err != nil {
				pool = core.NewPool()
			}

			tx := f.Prove(pool, ask, vpubOld, [2]uint64{v0, v1}, [2]string{r0, r1}, [2]bool{zero0, zero1},
				peerApk, vpubNew, rV, g, gpk)
			if tx.ErrorCode != 0 {
				return fmt.Errorf("%s", tx.Description)
			}

			if err := pool.SaveToFile(poolPath); err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tx)
		},
	}
	cmd.Flags().StringVar(&ask, "ask", "", "spend authority key (hex)")
	cmd.Flags().Uint64Var(&vpubOld, "vpub-old", 0, "public value entering the pool")
	cmd.Flags().Uint64Var(&v0, "v0", 0, "value of input note 0")
	cmd.Flags().Uint64Var(&v1, "v1", 0, "value of input note 1")
	cmd.Flags().StringVar(&r0, "r0", "", "randomness of input note 0 (hex)")
	cmd.Flags().StringVar(&r1, "r1", "", "randomness of input note 1 (hex)")
	cmd.Flags().BoolVar(&zero0, "zero0", false, "treat input 0 as an unused zero-value placeholder")
	cmd.Flags().BoolVar(&zero1, "zero1", true, "treat input 1 as an unused zero-value placeholder")
	cmd.Flags().StringVar(&peerApk, "peer-apk", "", "recipient address public key (hex)")
	cmd.Flags().Uint64Var(&vpubNew, "vpub-new", 0, "public value leaving the pool")
	cmd.Flags().Uint64Var(&rV, "value", 0, "amount paid to the recipient")
	cmd.Flags().StringVar(&g, "g", core.DefaultG, "ElGamal generator (hex)")
	cmd.Flags().StringVar(&gpk, "gpk", "", "governance authority public key (hex)")
	return cmd
}

func verifyCmd() *cobra.Command {
	var txPath string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a TxData JSON file against the loaded verifying key",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(txPath)
			if err != nil {
				return err
			}
			var tx core.TxData
			if err := json.Unmarshal(data, &tx); err != nil {
				return err
			}

			f := core.NewFacade(nIn, nOut)
			if err := f.LoadKeys(pkPath, vkPath); err != nil {
				return err
			}

			ok, reason := f.VerifyWithReason(&tx)
			if ok {
				fmt.Println(color.GreenString("valid"))
				return nil
			}
			if reason != nil {
				fmt.Println(color.RedString("invalid: %s", reason))
			} else {
				fmt.Println(color.RedString("invalid"))
			}
			os.Exit(1)
			return nil
		},
	}
	cmd.Flags().StringVar(&txPath, "tx", "tx.json", "path to a TxData JSON file")
	return cmd
}

func decryptCmd() *cobra.Command {
	var gsk, txPath string
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt the governance payload attached to a proved transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(txPath)
			if err != nil {
				return err
			}
			var tx core.TxData
			if err := json.Unmarshal(data, &tx); err != nil {
				return err
			}

			f := core.NewFacade(nIn, nOut)
			info := f.DecryptTxInfo(gsk, tx.GData)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
	cmd.Flags().StringVar(&gsk, "gsk", "", "governance authority secret key (hex)")
	cmd.Flags().StringVar(&txPath, "tx", "tx.json", "path to a TxData JSON file")
	return cmd
}

func listPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-pool",
		Short: "Render the commitment pool as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := core.LoadPoolFromFile(poolPath)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("index", "commitment")
			for i := 0; i < pool.Size(); i++ {
				cm, err := pool.Get(i)
				if err != nil {
					return err
				}
				if err := table.Append([]string{strconv.Itoa(i), cm}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
