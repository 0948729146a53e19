package main

import (
	"context"
	"fmt"
	"time"

	"github.com/firesidecapital/fireside-go/internal/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Pull bills, income, debts, and transactions from the backend into the local snapshot",
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	source, err := remoteSource(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	bills, err := source.Bills(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching bills")
	}
	incomes, err := source.Incomes(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching income")
	}
	debts, err := source.Debts(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching debts")
	}

	// Keep a year of transaction history locally.
	now := time.Now()
	transactions, err := source.Transactions(ctx, now.AddDate(-1, 0, 0), now)
	if err != nil {
		return errors.Wrap(err, "fetching transactions")
	}
	settings, err := source.Settings(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching settings")
	}

	snap, err := store.Open(flagDB)
	if err != nil {
		return errors.Wrap(err, "opening snapshot database")
	}
	defer snap.Close()

	if err := snap.Replace(ctx, bills, incomes, debts, transactions, settings); err != nil {
		return err
	}

	fmt.Printf("  Refreshed snapshot: %d bills, %d income sources, %d debts, %d transactions.\n",
		len(bills), len(incomes), len(debts), len(transactions))

	return nil
}
