package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/firesidecapital/fireside-go/internal/cli"
	"github.com/spf13/cobra"
)

var flagDays int

var projectionCmd = &cobra.Command{
	Use:   "projection",
	Short: "Day-by-day cash-flow ledger",
	RunE:  runProjection,
}

func init() {
	projectionCmd.Flags().IntVarP(&flagDays, "days", "n", 0, "Projection horizon in days (default from config)")
	rootCmd.AddCommand(projectionCmd)
}

func runProjection(_ *cobra.Command, _ []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()
	defer client.Close()

	ledger, err := client.Projection.Project(context.Background(), flagDays)
	if err != nil {
		return err
	}
	if len(ledger) == 0 {
		fmt.Println("\n  Nothing due in the projection window.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CASH-FLOW PROJECTION"))
	fmt.Println()

	rows := make([][]string, 0, len(ledger))
	for _, day := range ledger {
		names := make([]string, 0, len(day.Inflows)+len(day.Outflows))
		for _, occ := range day.Inflows {
			names = append(names, occ.Source)
		}
		for _, occ := range day.Outflows {
			names = append(names, occ.Source)
		}
		rows = append(rows, []string{
			day.Date.String(),
			cli.FormatMoney(day.InflowTotal()),
			cli.FormatMoney(-day.OutflowTotal()),
			cli.FormatMoney(day.Balance),
			strings.Join(names, ", "),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "In", "Out", "Balance", "Events"},
		Rows:    rows,
	}))

	return nil
}
