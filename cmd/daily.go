package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/vuzo-ai/vzdash/internal/cli"
	"github.com/vuzo-ai/vzdash/internal/usage"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily usage rollup",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	client, _ := newClient()

	filter, err := currentFilter()
	if err != nil {
		return err
	}

	progress("Fetching daily rollup...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	view, err := usage.NewLoader(client).Load(ctx, filter)
	if err != nil {
		return err
	}

	if len(view.Daily) == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY USAGE  %s", flagRange)))
	fmt.Println()

	rows := make([][]string, 0, len(view.Daily))
	for _, b := range view.Daily {
		rows = append(rows, []string{
			b.Date,
			b.Model,
			b.Provider,
			cli.FormatNumber(b.TotalRequests),
			cli.FormatTokens(b.InputTokens + b.OutputTokens),
			cli.FormatCost(b.TotalCost),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Model", "Provider", "Requests", "Tokens", "Cost"},
		Rows:    rows,
	}))

	for _, a := range usage.Verify(view) {
		fmt.Println("  " + cli.Warn("⚠ "+a.Error()))
	}

	return nil
}
