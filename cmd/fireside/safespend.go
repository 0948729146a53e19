package main

import (
	"context"
	"fmt"

	"github.com/firesidecapital/fireside-go/internal/cli"
	"github.com/spf13/cobra"
)

var safespendCmd = &cobra.Command{
	Use:   "safespend",
	Short: "How much is safe to spend over the next two weeks",
	RunE:  runSafespend,
}

func init() {
	rootCmd.AddCommand(safespendCmd)
}

func runSafespend(_ *cobra.Command, _ []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()
	defer client.Close()

	summary, err := client.Projection.SafeToSpend(context.Background())
	if err != nil {
		return err
	}

	status := "Comfortable"
	switch {
	case summary.Danger:
		status = "Danger"
	case summary.Tight:
		status = "Tight"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SAFE TO SPEND"))
	fmt.Println()
	fmt.Printf("  Safe to spend:  %s  (%s)\n", cli.FormatMoney(summary.SafeToSpend), cli.RenderStatus(status))
	fmt.Printf("  Lowest balance: %s on %s\n", cli.FormatMoney(summary.LowestBalance), summary.LowestDate)
	fmt.Printf("  Safety buffer:  %s\n", cli.FormatMoney(summary.Buffer))
	fmt.Println()

	return nil
}
