package main

import (
	"context"
	"fmt"

	"github.com/firesidecapital/fireside-go/internal/cli"
	"github.com/spf13/cobra"
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Recurring items with monthly equivalents",
	RunE:  runRecurring,
}

func init() {
	rootCmd.AddCommand(recurringCmd)
}

func runRecurring(_ *cobra.Command, _ []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()
	defer client.Close()

	ctx := context.Background()
	items, err := client.Recurring.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("\n  No recurring items.")
		return nil
	}

	summary, err := client.Recurring.Summary(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RECURRING ITEMS"))
	fmt.Println()

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Name,
			string(item.Kind),
			string(item.Frequency),
			cli.FormatMoney(item.Amount),
			cli.FormatMoney(item.MonthlyEquivalent),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Kind", "Frequency", "Amount", "Monthly"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Printf("  Monthly inflow:  %s\n", cli.FormatMoney(summary.MonthlyInflow))
	fmt.Printf("  Monthly outflow: %s\n", cli.FormatMoney(summary.MonthlyOutflow))
	fmt.Printf("  Monthly net:     %s\n", cli.FormatMoney(summary.MonthlyNet))
	fmt.Println()

	return nil
}
