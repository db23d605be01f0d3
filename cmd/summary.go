package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vuzo-ai/vzdash/internal/billing"
	"github.com/vuzo-ai/vzdash/internal/cli"
	"github.com/vuzo-ai/vzdash/internal/config"
	"github.com/vuzo-ai/vzdash/internal/gateway"
	"github.com/vuzo-ai/vzdash/internal/store"
	"github.com/vuzo-ai/vzdash/internal/usage"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Account overview: balance and usage totals",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	client, _ := newClient()

	filter, err := currentFilter()
	if err != nil {
		return err
	}

	progress("Fetching usage summary...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	view, err := usage.NewLoader(client).Load(ctx, filter)
	if err != nil {
		// The initial dashboard load is best-effort: fall back to the last
		// cached snapshot rather than erroring out of the whole view.
		if snap := cachedSnapshot(); snap != nil {
			printCachedSummary(snap, err)
			return nil
		}
		return err
	}

	balances := billing.NewBalanceStore()
	bal, balErr := balances.Refresh(ctx, client)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("VUZO ACCOUNT  %s", flagRange)))
	fmt.Println()
	if balErr == nil {
		fmt.Println(cli.RenderStat("Credit balance", cli.FormatBalance(bal)))
	} else if errors.Is(balErr, gateway.ErrUnauthorized) || isStatus(balErr, 401) {
		fmt.Println(cli.RenderStat("Credit balance", cli.Muted("sign in with `vzdash login`")))
	} else {
		fmt.Println(cli.RenderStat("Credit balance", cli.Muted("unavailable")))
	}
	s := view.Summary
	fmt.Println(cli.RenderStat("Requests", cli.FormatNumber(s.TotalRequests)))
	fmt.Println(cli.RenderStat("Input tokens", cli.FormatTokens(s.TotalInputTokens)))
	fmt.Println(cli.RenderStat("Output tokens", cli.FormatTokens(s.TotalOutputTokens)))
	fmt.Println(cli.RenderStat("Total tokens", cli.FormatTokens(s.TotalTokens)))
	fmt.Println(cli.RenderStat("Provider cost", cli.FormatCost(s.TotalProviderCost)))
	fmt.Println(cli.RenderStat("Your cost", cli.FormatCost(s.TotalVuzoCost)))

	for _, a := range usage.Verify(view) {
		fmt.Println("  " + cli.Warn("⚠ "+a.Error()))
	}

	saveSnapshot(view, bal, balErr == nil)
	return nil
}

func isStatus(err error, status int) bool {
	var reqErr *gateway.RequestError
	return errors.As(err, &reqErr) && reqErr.Status == status
}

// cachedSnapshot loads the most recent local snapshot, or nil.
func cachedSnapshot() *store.Snapshot {
	cache, err := store.Open(config.CachePath())
	if err != nil {
		return nil
	}
	defer cache.Close()
	snap, err := cache.LatestSnapshot()
	if err != nil {
		return nil
	}
	return snap
}

func printCachedSummary(snap *store.Snapshot, cause error) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("VUZO ACCOUNT  (cached)"))
	fmt.Println()
	fmt.Println("  " + cli.Warn(fmt.Sprintf("Gateway unreachable (%v)", cause)))
	fmt.Println("  " + cli.Muted("Showing snapshot from "+cli.FormatTime(snap.TakenAt)))
	fmt.Println()
	if snap.HasBalance {
		fmt.Println(cli.RenderStat("Credit balance", cli.FormatBalance(snap.Balance)))
	}
	fmt.Println(cli.RenderStat("Requests", cli.FormatNumber(snap.Summary.TotalRequests)))
	fmt.Println(cli.RenderStat("Total tokens", cli.FormatTokens(snap.Summary.TotalTokens)))
	fmt.Println(cli.RenderStat("Your cost", cli.FormatCost(snap.Summary.TotalVuzoCost)))
}

// saveSnapshot persists the fresh view so later runs can degrade gracefully.
// Cache failures are invisible: the live data was already printed.
func saveSnapshot(view *usage.View, balance float64, hasBalance bool) {
	cache, err := store.Open(config.CachePath())
	if err != nil {
		return
	}
	defer cache.Close()

	_ = cache.SaveSnapshot(store.Snapshot{
		TakenAt:    time.Now(),
		Balance:    balance,
		HasBalance: hasBalance,
		Summary:    view.Summary,
	})
	_ = cache.ReplaceDaily(view.Daily, time.Now())
	_ = cache.PruneSnapshots(50)
}
