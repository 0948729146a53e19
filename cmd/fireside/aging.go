package main

import (
	"context"
	"fmt"

	"github.com/firesidecapital/fireside-go/internal/cli"
	"github.com/firesidecapital/fireside-go/pkg/fireside"
	"github.com/spf13/cobra"
)

var agingCmd = &cobra.Command{
	Use:   "aging",
	Short: "Upcoming bills bucketed by urgency",
	RunE:  runAging,
}

func init() {
	rootCmd.AddCommand(agingCmd)
}

func runAging(_ *cobra.Command, _ []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()
	defer client.Close()

	report, err := client.Projection.Aging(context.Background())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BILL AGING"))

	printBucket("Due within 7 days", report.Critical)
	printBucket("Due in 8-30 days", report.Upcoming)
	printBucket("Due in 31-60 days", report.Planned)

	return nil
}

func printBucket(title string, bucket fireside.AgingBucket) {
	fmt.Println()
	if len(bucket.Items) == 0 {
		fmt.Printf("  %s: nothing due\n", title)
		return
	}

	rows := make([][]string, 0, len(bucket.Items))
	for _, item := range bucket.Items {
		rows = append(rows, []string{
			item.Date.String(),
			item.Source,
			cli.FormatMoney(item.Amount),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s  (%s)", title, cli.FormatMoney(bucket.Total)),
		Headers: []string{"Date", "Bill", "Amount"},
		Rows:    rows,
	}))
}
