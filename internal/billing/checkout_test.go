package billing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vuzo-ai/vzdash/internal/gateway"
)

func TestInitiateTopUpRejectsNonPositiveAmount(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	rec := NewReconciler(gateway.NewClient(srv.URL, nil), NewBalanceStore(), 0, 0)

	for _, amount := range []float64{0, -5} {
		_, err := rec.InitiateTopUp(context.Background(), amount)
		var verr *gateway.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("amount %v: error = %v, want ValidationError", amount, err)
		}
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("rejected amounts reached the server %d times", n)
	}
}

func TestInitiateTopUpReturnsCheckoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/billing/checkout" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Amount float64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if body.Amount != 25 {
			t.Errorf("amount = %v, want 25", body.Amount)
		}
		w.Write([]byte(`{"checkout_url": "https://pay.example.com/cs_123"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := NewReconciler(gateway.NewClient(srv.URL, nil), NewBalanceStore(), time.Hour, time.Hour)
	url, err := rec.InitiateTopUp(ctx, 25)
	if err != nil {
		t.Fatalf("InitiateTopUp: %v", err)
	}
	if url != "https://pay.example.com/cs_123" {
		t.Errorf("url = %q", url)
	}
}

func TestDeferredRefreshesOverwriteInOrder(t *testing.T) {
	// The server reports a different balance on each read; after both
	// scheduled re-reads fire, the cache must hold the later answer.
	var reads atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/billing/checkout":
			w.Write([]byte(`{"checkout_url": "https://pay.example.com/cs_123"}`))
		case "/billing/balance":
			n := reads.Add(1)
			if n == 1 {
				w.Write([]byte(`{"balance": 10.00}`))
			} else {
				w.Write([]byte(`{"balance": 35.00}`))
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := NewBalanceStore()
	updates, unsubscribe := store.Subscribe()
	defer unsubscribe()

	rec := NewReconciler(gateway.NewClient(srv.URL, nil), store, 10*time.Millisecond, 150*time.Millisecond)
	if _, err := rec.InitiateTopUp(context.Background(), 25); err != nil {
		t.Fatalf("InitiateTopUp: %v", err)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-updates:
		case <-time.After(2 * time.Second):
			t.Fatalf("re-read %d never fired", i+1)
		}
	}

	got, ok := store.Get()
	if !ok || got != 35.00 {
		t.Errorf("cached balance = %v (loaded=%v), want 35.00", got, ok)
	}
}

func TestCancelledContextDropsRefreshes(t *testing.T) {
	var balanceReads atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/billing/checkout":
			w.Write([]byte(`{"checkout_url": "https://pay.example.com/cs_123"}`))
		case "/billing/balance":
			balanceReads.Add(1)
			w.Write([]byte(`{"balance": 10.00}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	rec := NewReconciler(gateway.NewClient(srv.URL, nil), NewBalanceStore(), 20*time.Millisecond, 40*time.Millisecond)
	if _, err := rec.InitiateTopUp(ctx, 25); err != nil {
		t.Fatalf("InitiateTopUp: %v", err)
	}
	cancel()

	time.Sleep(100 * time.Millisecond)
	if n := balanceReads.Load(); n != 0 {
		t.Errorf("cancelled schedule still issued %d balance reads", n)
	}
}

func TestRefreshDelayDefaults(t *testing.T) {
	rec := NewReconciler(nil, nil, 0, 0)
	first, second := rec.RefreshDelays()
	if first != 5*time.Second || second != 15*time.Second {
		t.Errorf("defaults = %v/%v, want 5s/15s", first, second)
	}
}
