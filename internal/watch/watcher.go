// Package watch polls the gateway at a fixed interval and emits snapshot
// deltas. Polling is the only transport here — there is no push channel to
// the gateway, so convergence is always "ask again later".
package watch

import (
	"context"
	"log"
	"time"

	"github.com/vuzo-ai/vzdash/internal/billing"
	"github.com/vuzo-ai/vzdash/internal/gateway"
	"github.com/vuzo-ai/vzdash/internal/store"
)

// Config controls the watcher runtime behavior.
type Config struct {
	Interval time.Duration
	Cache    *store.Cache // optional: snapshots are persisted when set
}

// Event is emitted after each poll that observed a change (and once for the
// initial snapshot).
type Event struct {
	At       time.Time
	Snapshot store.Snapshot
	Delta    Delta
	Initial  bool
}

// Delta captures what moved between two polls.
type Delta struct {
	Requests int64
	Tokens   int64
	VuzoCost float64
	Balance  float64
}

func (d Delta) IsZero() bool {
	return d.Requests == 0 && d.Tokens == 0 && d.VuzoCost == 0 && d.Balance == 0
}

// Watcher owns the poll loop.
type Watcher struct {
	cfg     Config
	client  *gateway.Client
	balance *billing.BalanceStore

	hasPrev bool
	prev    store.Snapshot
}

// New returns a watcher with the provided config. Intervals under two
// seconds are bumped to the 30s default to avoid hammering the gateway.
func New(cfg Config, client *gateway.Client, balance *billing.BalanceStore) *Watcher {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	return &Watcher{cfg: cfg, client: client, balance: balance}
}

// Interval returns the effective poll interval.
func (w *Watcher) Interval() time.Duration { return w.cfg.Interval }

// Run polls until ctx is canceled, sending events to out. The first poll
// fires immediately so the consumer has a snapshot right away. Poll failures
// are logged and swallowed: a background refresh that fails just leaves the
// previous data standing.
func (w *Watcher) Run(ctx context.Context, out chan<- Event) error {
	w.pollOnce(ctx, out)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.pollOnce(ctx, out)
		}
	}
}

func (w *Watcher) pollOnce(ctx context.Context, out chan<- Event) {
	snap, err := w.fetchSnapshot(ctx)
	if err != nil {
		log.Printf("vzdash watch poll error: %v", err)
		return
	}

	if w.cfg.Cache != nil {
		if err := w.cfg.Cache.SaveSnapshot(snap); err != nil {
			log.Printf("vzdash watch cache write error: %v", err)
		}
	}

	ev := Event{At: snap.TakenAt, Snapshot: snap}
	if !w.hasPrev {
		ev.Initial = true
	} else {
		ev.Delta = diff(w.prev, snap)
		if ev.Delta.IsZero() {
			w.prev = snap
			return
		}
	}
	w.hasPrev = true
	w.prev = snap

	select {
	case out <- ev:
	case <-ctx.Done():
	}
}

func (w *Watcher) fetchSnapshot(ctx context.Context) (store.Snapshot, error) {
	summary, err := w.client.UsageSummary(ctx, gateway.UsageQuery{})
	if err != nil {
		return store.Snapshot{}, err
	}

	snap := store.Snapshot{
		TakenAt: time.Now(),
		Summary: summary,
	}

	// Balance is best-effort on top of the summary poll.
	if bal, err := w.balance.Refresh(ctx, w.client); err == nil {
		snap.Balance = bal
		snap.HasBalance = true
	}

	return snap, nil
}

func diff(prev, curr store.Snapshot) Delta {
	d := Delta{
		Requests: curr.Summary.TotalRequests - prev.Summary.TotalRequests,
		Tokens:   curr.Summary.TotalTokens - prev.Summary.TotalTokens,
		VuzoCost: curr.Summary.TotalVuzoCost - prev.Summary.TotalVuzoCost,
	}
	if prev.HasBalance && curr.HasBalance {
		d.Balance = curr.Balance - prev.Balance
	}
	return d
}
