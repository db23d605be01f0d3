package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vuzo-ai/vzdash/internal/gateway"
)

func TestBalanceStoreEmptyUntilRefreshed(t *testing.T) {
	store := NewBalanceStore()
	if v, ok := store.Get(); ok {
		t.Errorf("empty store reported loaded value %v", v)
	}
}

func TestRefreshOverwritesCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/billing/balance" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"balance": 42.50}`))
	}))
	defer srv.Close()

	store := NewBalanceStore()
	got, err := store.Refresh(context.Background(), gateway.NewClient(srv.URL, nil))
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got != 42.50 {
		t.Errorf("Refresh returned %v, want 42.50", got)
	}
	if v, ok := store.Get(); !ok || v != 42.50 {
		t.Errorf("Get = %v (loaded=%v)", v, ok)
	}
}

func TestFailedRefreshLeavesCacheUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	store := NewBalanceStore()
	store.set(10.00)
	if _, err := store.Refresh(context.Background(), gateway.NewClient(srv.URL, nil)); err == nil {
		t.Fatal("expected error from 502")
	}
	if v, ok := store.Get(); !ok || v != 10.00 {
		t.Errorf("cache after failed refresh = %v (loaded=%v), want 10.00", v, ok)
	}
}

func TestSubscribersSeeUpdates(t *testing.T) {
	store := NewBalanceStore()
	updates, unsubscribe := store.Subscribe()

	store.set(5.00)
	select {
	case v := <-updates:
		if v != 5.00 {
			t.Errorf("update = %v, want 5.00", v)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber never notified")
	}

	unsubscribe()
	store.set(6.00)
	select {
	case v := <-updates:
		t.Errorf("unsubscribed channel received %v", v)
	default:
	}
}

func TestSlowSubscriberDoesNotBlockWrites(t *testing.T) {
	store := NewBalanceStore()
	_, unsubscribe := store.Subscribe()
	defer unsubscribe()

	// Overflow the subscriber buffer; writes must keep landing in the cache.
	for i := 0; i < 20; i++ {
		store.set(float64(i))
	}
	if v, ok := store.Get(); !ok || v != 19 {
		t.Errorf("cache = %v (loaded=%v), want 19", v, ok)
	}
}
