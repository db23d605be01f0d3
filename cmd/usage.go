package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/vuzo-ai/vzdash/internal/cli"
	"github.com/vuzo-ai/vzdash/internal/usage"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Raw request log",
	RunE:  runUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)
}

func runUsage(_ *cobra.Command, _ []string) error {
	client, _ := newClient()

	filter, err := currentFilter()
	if err != nil {
		return err
	}

	progress("Fetching request log...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	view, err := usage.NewLoader(client).Load(ctx, filter)
	if err != nil {
		return err
	}

	if len(view.Records) == 0 {
		fmt.Println("\n  No usage in this window. Make some API calls to see them here.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REQUEST LOG  %s", flagRange)))
	fmt.Println()

	rows := make([][]string, 0, len(view.Records))
	for _, r := range view.Records {
		rows = append(rows, []string{
			r.Model,
			r.Provider,
			cli.FormatNumber(r.InputTokens),
			cli.FormatNumber(r.OutputTokens),
			cli.FormatCost(r.VuzoCost),
			cli.FormatLatency(r.ResponseTimeMs),
			cli.FormatTime(r.CreatedAt),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Provider", "Input", "Output", "Cost", "Latency", "Time"},
		Rows:    rows,
	}))

	for _, a := range usage.Verify(view) {
		fmt.Println("  " + cli.Warn("⚠ "+a.Error()))
	}

	return nil
}
