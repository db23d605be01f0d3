// Package billing drives the balance/ledger side of the dashboard: the
// shared balance cache, the checkout top-up flow, and transaction history.
package billing

import (
	"context"
	"sync"

	"github.com/vuzo-ai/vzdash/internal/gateway"
)

// BalanceStore is the one piece of mutable state shared across views. Every
// write is a value the server reported; nothing in the client ever computes
// a balance locally, so there is no write-write conflict to resolve - last
// server answer wins.
type BalanceStore struct {
	mu     sync.RWMutex
	value  float64
	loaded bool

	nextSubID int
	subs      map[int]chan float64
}

// NewBalanceStore returns an empty store. Get reports ok=false until the
// first successful refresh populates it.
func NewBalanceStore() *BalanceStore {
	return &BalanceStore{subs: make(map[int]chan float64)}
}

// Get returns the cached balance and whether one has been loaded yet.
func (b *BalanceStore) Get() (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value, b.loaded
}

// set overwrites the cache with a server-reported value and notifies
// subscribers. Slow subscribers miss intermediate values rather than block.
func (b *BalanceStore) set(value float64) {
	b.mu.Lock()
	b.value = value
	b.loaded = true
	for _, ch := range b.subs {
		select {
		case ch <- value:
		default:
		}
	}
	b.mu.Unlock()
}

// Subscribe registers a channel that receives every balance update. The
// returned func unsubscribes.
func (b *BalanceStore) Subscribe() (<-chan float64, func()) {
	ch := make(chan float64, 8)

	b.mu.Lock()
	b.nextSubID++
	id := b.nextSubID
	b.subs[id] = ch
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Refresh re-reads the balance from the gateway and overwrites the cache
// with whatever the server currently reports. Stale answers before an
// in-flight top-up settles are expected, not errors.
func (b *BalanceStore) Refresh(ctx context.Context, client *gateway.Client) (float64, error) {
	value, err := client.Balance(ctx)
	if err != nil {
		return 0, err
	}
	b.set(value)
	return value, nil
}
