package usage

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vuzo-ai/vzdash/internal/gateway"
	"github.com/vuzo-ai/vzdash/internal/model"
)

// ErrSuperseded marks a load whose filter was replaced by a newer Load call
// before this one finished. The result is already stale: discard it silently.
var ErrSuperseded = errors.New("usage: load superseded by a newer filter")

// View is one consistent snapshot: all three result sets were requested with
// the same filter, and the load failed as a whole if any of them did.
type View struct {
	Filter  Filter
	Records []model.UsageRecord
	Daily   []model.DailyBucket
	Summary model.Summary
}

// Loader fetches usage views. A single Loader serves a single consumer; the
// sequence counter guarantees that consumer only ever observes the most
// recently issued filter, regardless of completion order.
type Loader struct {
	client *gateway.Client
	seq    atomic.Uint64
}

// NewLoader creates a loader over the given gateway client.
func NewLoader(client *gateway.Client) *Loader {
	return &Loader{client: client}
}

// Load fetches the raw log, daily rollups, and summary for the filter in
// parallel. It returns ErrSuperseded if another Load was issued while this
// one was in flight — the abandoned requests complete server-side, their
// results are just never surfaced.
func (l *Loader) Load(ctx context.Context, f Filter) (*View, error) {
	seq := l.seq.Add(1)
	q := f.Query()

	view := &View{Filter: f}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := l.client.ListUsage(ctx, q)
		if err != nil {
			return err
		}
		view.Records = records
		return nil
	})
	g.Go(func() error {
		daily, err := l.client.DailyUsage(ctx, q)
		if err != nil {
			return err
		}
		view.Daily = daily
		return nil
	})
	g.Go(func() error {
		summary, err := l.client.UsageSummary(ctx, q)
		if err != nil {
			return err
		}
		view.Summary = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if l.seq.Load() != seq {
		return nil, ErrSuperseded
	}
	return view, nil
}
