package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/vuzo-ai/vzdash/internal/billing"
	"github.com/vuzo-ai/vzdash/internal/cli"

	"github.com/spf13/cobra"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Credit balance and transaction history",
	RunE:  runBilling,
}

func init() {
	rootCmd.AddCommand(billingCmd)
}

func runBilling(_ *cobra.Command, _ []string) error {
	client, _ := newClient()

	progress("Fetching billing data...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	balances := billing.NewBalanceStore()
	bal, err := balances.Refresh(ctx, client)
	if err != nil {
		return err
	}

	ledger, err := billing.LoadLedger(ctx, client)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BILLING"))
	fmt.Println()
	fmt.Println(cli.RenderStat("Credit balance", cli.FormatBalance(bal)))
	fmt.Println()

	if len(ledger.Transactions) == 0 {
		fmt.Println("  No transactions yet.")
		return nil
	}

	rows := make([][]string, 0, len(ledger.Transactions))
	for _, tx := range ledger.Transactions {
		rows = append(rows, []string{
			tx.Type,
			cli.FormatSignedCost(tx.Amount),
			tx.Description,
			cli.FormatTime(tx.CreatedAt),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Type", "Amount", "Description", "Date"},
		Rows:    rows,
	}))

	for _, a := range ledger.Anomalies {
		fmt.Println("  " + cli.Warn("⚠ "+a.Error()))
	}

	return nil
}
