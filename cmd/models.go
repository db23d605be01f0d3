package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/vuzo-ai/vzdash/internal/cli"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Model catalog with gateway pricing",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	client, _ := newClient()

	progress("Fetching model catalog...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := client.ListModels(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MODEL CATALOG"))
	fmt.Println()

	table := make([][]string, 0, len(rows))
	for _, m := range rows {
		table = append(table, []string{
			m.ModelName,
			m.Provider,
			fmt.Sprintf("$%.2f", m.VuzoInputPerMillion),
			fmt.Sprintf("$%.2f", m.VuzoOutputPerMillion),
			fmt.Sprintf("%.0f%%", m.MarkupPercent),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Provider", "In $/MTok", "Out $/MTok", "Markup"},
		Rows:    table,
	}))
	return nil
}
