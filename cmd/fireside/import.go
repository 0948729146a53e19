package main

import (
	"context"
	"fmt"
	"os"

	"github.com/firesidecapital/fireside-go/internal/statement"
	"github.com/firesidecapital/fireside-go/internal/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <statement.csv>",
	Short: "Import a bank-statement CSV into the local snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "opening statement")
	}
	defer f.Close()

	transactions, invalid, err := statement.Parse(f)
	if err != nil {
		return err
	}

	snap, err := store.Open(flagDB)
	if err != nil {
		return errors.Wrap(err, "opening snapshot database")
	}
	defer snap.Close()

	if err := snap.AddTransactions(context.Background(), transactions); err != nil {
		return err
	}

	fmt.Printf("  Imported %d transactions.\n", len(transactions))
	for _, v := range invalid {
		fmt.Fprintf(os.Stderr, "  Skipped row: %s (%v)\n", v.Message, v.Value)
	}

	return nil
}
