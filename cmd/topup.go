package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vuzo-ai/vzdash/internal/billing"
	"github.com/vuzo-ai/vzdash/internal/cli"
	"github.com/vuzo-ai/vzdash/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagNoWait bool

var topupCmd = &cobra.Command{
	Use:   "topup <amount-usd>",
	Short: "Buy credits via the payment processor",
	Long: `Starts a checkout session for the given USD amount and prints the payment
URL. The payment itself completes out of band; vzdash re-reads the balance
on a short schedule afterwards so the cached value converges with the
server's ledger.`,
	Args: cobra.ExactArgs(1),
	RunE: runTopUp,
}

func init() {
	topupCmd.Flags().BoolVar(&flagNoWait, "no-wait", false, "Don't wait for the balance re-reads")
	rootCmd.AddCommand(topupCmd)
}

func runTopUp(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("amount %q is not a number", args[0])
	}

	client, cfg := newClient()
	first, second := config.RefreshDelays(cfg)

	var confirmed bool
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("Start a $%.2f top-up?", amount)).
		Description("You'll get a checkout link to complete payment.").
		Value(&confirmed)
	if err := confirm.Run(); err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("  Cancelled.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), second+30*time.Second)
	defer cancel()

	balances := billing.NewBalanceStore()
	if before, err := balances.Refresh(ctx, client); err == nil {
		fmt.Println(cli.RenderStat("Balance before", cli.FormatBalance(before)))
	}

	rec := billing.NewReconciler(client, balances, first, second)
	checkoutURL, err := rec.InitiateTopUp(ctx, amount)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  Complete your payment here:")
	fmt.Println("  " + cli.Good(checkoutURL))
	fmt.Println()

	if flagNoWait {
		return nil
	}

	// Watch the scheduled re-reads land. They fire whether or not payment
	// finished; a balance that hasn't moved yet just means the processor's
	// webhook hasn't reached the gateway.
	updates, unsubscribe := balances.Subscribe()
	defer unsubscribe()

	progress(fmt.Sprintf("Waiting for balance refresh (%s, then %s)...", first, second))

	deadline := time.After(second + 10*time.Second)
	for i := 0; i < 2; i++ {
		select {
		case bal := <-updates:
			fmt.Println(cli.RenderStat("Balance now", cli.FormatBalance(bal)))
		case <-deadline:
			fmt.Println("  " + cli.Muted("Balance unchanged so far — check `vzdash billing` later."))
			return nil
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}
