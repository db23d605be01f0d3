package billing

import (
	"context"
	"time"

	"github.com/vuzo-ai/vzdash/internal/gateway"
)

// Reconciler starts checkout sessions and converges the cached balance with
// the server's ledger afterwards. The payment processor completes out of
// band (its webhook lands on the server, not here), so the client's only
// move is a fixed schedule of re-reads: two deferred refreshes that fire
// whether or not the user ever finished paying.
type Reconciler struct {
	client  *gateway.Client
	balance *BalanceStore

	// Delays after initiation for the two balance re-reads.
	firstRefresh  time.Duration
	secondRefresh time.Duration
}

// NewReconciler wires a reconciler to a gateway client and the shared
// balance store. Non-positive delays fall back to the 5s/15s schedule used
// by the hosted dashboard.
func NewReconciler(client *gateway.Client, balance *BalanceStore, first, second time.Duration) *Reconciler {
	if first <= 0 {
		first = 5 * time.Second
	}
	if second <= 0 {
		second = 15 * time.Second
	}
	return &Reconciler{
		client:        client,
		balance:       balance,
		firstRefresh:  first,
		secondRefresh: second,
	}
}

// RefreshDelays returns the configured re-read schedule.
func (r *Reconciler) RefreshDelays() (time.Duration, time.Duration) {
	return r.firstRefresh, r.secondRefresh
}

// InitiateTopUp starts a checkout for the given USD amount and returns the
// processor redirect URL. Surfacing the URL (opening a browser) is the
// caller's job.
//
// A non-positive amount is rejected before any network call. On success the
// two deferred balance re-reads are scheduled against ctx: if ctx ends
// before a re-read fires, that re-read is dropped, and a re-read that fails
// is swallowed - it is a best-effort refresh, the cached balance just stays
// as it was for that round.
func (r *Reconciler) InitiateTopUp(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", &gateway.ValidationError{
			Field:  "amount",
			Reason: "top-up amount must be positive",
		}
	}

	checkoutURL, err := r.client.CreateCheckout(ctx, amount)
	if err != nil {
		return "", err
	}

	r.scheduleRefresh(ctx, r.firstRefresh)
	r.scheduleRefresh(ctx, r.secondRefresh)

	return checkoutURL, nil
}

func (r *Reconciler) scheduleRefresh(ctx context.Context, delay time.Duration) {
	timer := time.NewTimer(delay)
	go func() {
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		_, _ = r.balance.Refresh(ctx, r.client)
	}()
}
