package watch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vuzo-ai/vzdash/internal/billing"
	"github.com/vuzo-ai/vzdash/internal/gateway"
	"github.com/vuzo-ai/vzdash/internal/store"
)

func TestDiff(t *testing.T) {
	prev := store.Snapshot{
		Balance:    10,
		HasBalance: true,
	}
	prev.Summary.TotalRequests = 5
	prev.Summary.TotalTokens = 1000
	prev.Summary.TotalVuzoCost = 0.01

	curr := store.Snapshot{
		Balance:    9.5,
		HasBalance: true,
	}
	curr.Summary.TotalRequests = 7
	curr.Summary.TotalTokens = 1600
	curr.Summary.TotalVuzoCost = 0.016

	d := diff(prev, curr)
	if d.Requests != 2 || d.Tokens != 600 {
		t.Errorf("delta = %+v", d)
	}
	if d.Balance != -0.5 {
		t.Errorf("balance delta = %v, want -0.5", d.Balance)
	}
	if d.IsZero() {
		t.Error("non-empty delta reported zero")
	}
}

func TestDiffIgnoresBalanceWhenMissing(t *testing.T) {
	prev := store.Snapshot{Balance: 10, HasBalance: true}
	curr := store.Snapshot{} // balance read failed this poll

	if d := diff(prev, curr); d.Balance != 0 {
		t.Errorf("balance delta = %v, want 0 when a side is missing", d.Balance)
	}
}

func TestDeltaIsZero(t *testing.T) {
	if !(Delta{}).IsZero() {
		t.Error("zero delta reported non-zero")
	}
	if (Delta{Tokens: 1}).IsZero() {
		t.Error("token movement reported zero")
	}
}

func TestIntervalFloor(t *testing.T) {
	w := New(Config{Interval: time.Second}, nil, nil)
	if w.Interval() != 30*time.Second {
		t.Errorf("interval = %v, want 30s floor", w.Interval())
	}
	w = New(Config{Interval: 5 * time.Second}, nil, nil)
	if w.Interval() != 5*time.Second {
		t.Errorf("interval = %v", w.Interval())
	}
}

func TestPollEmitsInitialThenDeltas(t *testing.T) {
	var polls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/usage/summary":
			if polls.Add(1) == 1 {
				w.Write([]byte(`{"total_requests":5,"total_tokens":1000,"total_vuzo_cost":0.01}`))
			} else {
				w.Write([]byte(`{"total_requests":6,"total_tokens":1200,"total_vuzo_cost":0.012}`))
			}
		case "/billing/balance":
			w.Write([]byte(`{"balance": 10.00}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	w := New(Config{Interval: 5 * time.Second},
		gateway.NewClient(srv.URL, nil), billing.NewBalanceStore())

	out := make(chan Event, 4)
	ctx := context.Background()

	w.pollOnce(ctx, out)
	ev := <-out
	if !ev.Initial {
		t.Error("first event not marked initial")
	}
	if ev.Snapshot.Summary.TotalRequests != 5 {
		t.Errorf("initial requests = %d", ev.Snapshot.Summary.TotalRequests)
	}
	if !ev.Snapshot.HasBalance || ev.Snapshot.Balance != 10.00 {
		t.Errorf("initial balance = %v (has=%v)", ev.Snapshot.Balance, ev.Snapshot.HasBalance)
	}

	w.pollOnce(ctx, out)
	ev = <-out
	if ev.Initial {
		t.Error("second event marked initial")
	}
	if ev.Delta.Requests != 1 || ev.Delta.Tokens != 200 {
		t.Errorf("delta = %+v", ev.Delta)
	}
}

func TestQuietPollEmitsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/usage/summary":
			w.Write([]byte(`{"total_requests":5,"total_tokens":1000}`))
		case "/billing/balance":
			w.Write([]byte(`{"balance": 10.00}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	w := New(Config{Interval: 5 * time.Second},
		gateway.NewClient(srv.URL, nil), billing.NewBalanceStore())

	out := make(chan Event, 4)
	w.pollOnce(context.Background(), out)
	<-out // initial

	w.pollOnce(context.Background(), out)
	select {
	case ev := <-out:
		t.Errorf("unchanged poll emitted %+v", ev)
	default:
	}
}

func TestFailedPollLeavesStateStanding(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		switch r.URL.Path {
		case "/usage/summary":
			w.Write([]byte(`{"total_requests":5,"total_tokens":1000}`))
		case "/billing/balance":
			w.Write([]byte(`{"balance": 10.00}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	w := New(Config{Interval: 5 * time.Second},
		gateway.NewClient(srv.URL, nil), billing.NewBalanceStore())

	out := make(chan Event, 4)
	w.pollOnce(context.Background(), out)
	<-out

	fail.Store(true)
	w.pollOnce(context.Background(), out)
	select {
	case ev := <-out:
		t.Errorf("failed poll emitted %+v", ev)
	default:
	}
	if !w.hasPrev || w.prev.Summary.TotalRequests != 5 {
		t.Errorf("previous snapshot lost after failed poll: %+v", w.prev)
	}
}

func TestPollPersistsSnapshots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/usage/summary":
			w.Write([]byte(`{"total_requests":5,"total_tokens":1000}`))
		case "/billing/balance":
			w.Write([]byte(`{"balance": 10.00}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cache, err := store.Open(t.TempDir() + "/snapshots.db")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	w := New(Config{Interval: 5 * time.Second, Cache: cache},
		gateway.NewClient(srv.URL, nil), billing.NewBalanceStore())

	out := make(chan Event, 4)
	w.pollOnce(context.Background(), out)
	<-out

	snap, err := cache.LatestSnapshot()
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if snap == nil || snap.Summary.TotalRequests != 5 {
		t.Errorf("persisted snapshot = %+v", snap)
	}
}
