package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vuzo-ai/vzdash/internal/billing"
	"github.com/vuzo-ai/vzdash/internal/cli"
	"github.com/vuzo-ai/vzdash/internal/config"
	"github.com/vuzo-ai/vzdash/internal/store"
	"github.com/vuzo-ai/vzdash/internal/watch"

	"github.com/spf13/cobra"
)

var flagInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the gateway and print usage deltas as they happen",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVarP(&flagInterval, "interval", "i", 0, "Poll interval (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	client, cfg := newClient()

	interval := flagInterval
	if interval == 0 {
		interval = time.Duration(cfg.Watch.IntervalSec) * time.Second
	}

	cache, err := store.Open(config.CachePath())
	if err != nil {
		// Watch still works without persistence, it just won't leave
		// snapshots behind for the offline fallback.
		progress(fmt.Sprintf("Snapshot cache unavailable: %v", err))
		cache = nil
	} else {
		defer cache.Close()
	}

	watcher := watch.New(watch.Config{
		Interval: interval,
		Cache:    cache,
	}, client, billing.NewBalanceStore())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	progress(fmt.Sprintf("Watching (every %s, Ctrl-C to stop)...", watcher.Interval()))

	events := make(chan watch.Event, 8)
	go func() {
		_ = watcher.Run(ctx, events)
		close(events)
	}()

	for ev := range events {
		at := ev.At.Format("15:04:05")
		s := ev.Snapshot.Summary
		if ev.Initial {
			line := fmt.Sprintf("%s  %s requests, %s tokens, %s spent",
				at,
				cli.FormatNumber(s.TotalRequests),
				cli.FormatTokens(s.TotalTokens),
				cli.FormatCost(s.TotalVuzoCost))
			if ev.Snapshot.HasBalance {
				line += ", balance " + cli.FormatBalance(ev.Snapshot.Balance)
			}
			fmt.Println("  " + line)
			continue
		}

		line := fmt.Sprintf("%s  +%s requests, +%s tokens, +%s",
			at,
			cli.FormatNumber(ev.Delta.Requests),
			cli.FormatTokens(ev.Delta.Tokens),
			cli.FormatCost(ev.Delta.VuzoCost))
		if ev.Delta.Balance != 0 {
			line += ", balance " + cli.FormatSignedCost(ev.Delta.Balance)
		}
		fmt.Println("  " + cli.Good(line))
	}

	return nil
}
