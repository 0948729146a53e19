package main

import (
	"context"
	"fmt"

	"github.com/firesidecapital/fireside-go/internal/cli"
	"github.com/firesidecapital/fireside-go/pkg/fireside"
	"github.com/spf13/cobra"
)

var flagMonth string

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget vs. actual spending by category",
	RunE:  runBudget,
}

func init() {
	budgetCmd.Flags().StringVarP(&flagMonth, "month", "m", "", "Month to evaluate in YYYY-MM form (default current month)")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()
	defer client.Close()

	ctx := context.Background()
	var report *fireside.BudgetReport
	if flagMonth != "" {
		report, err = client.Budgets.Evaluate(ctx, flagMonth)
	} else {
		report, err = client.Budgets.CurrentMonth(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET  %s", report.Month)))
	fmt.Println()

	rows := make([][]string, 0, len(report.Categories))
	for _, cat := range report.Categories {
		progress := "-"
		if cat.ProgressPct != nil {
			progress = cli.FormatPercent(*cat.ProgressPct)
		}
		rows = append(rows, []string{
			cat.Category,
			cli.FormatMoney(cat.Budget),
			cli.FormatMoney(cat.Actual),
			cli.FormatMoney(cat.Variance),
			progress,
			cli.RenderStatus(string(cat.Status)),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Budget", "Actual", "Variance", "Progress", "Status"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Printf("  Total: %s budgeted, %s spent (%s)\n",
		cli.FormatMoney(report.Totals.Budget),
		cli.FormatMoney(report.Totals.Actual),
		cli.RenderStatus(string(report.Totals.Status)),
	)
	fmt.Println()

	return nil
}
