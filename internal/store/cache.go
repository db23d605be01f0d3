// Package store is the local SQLite snapshot cache. It keeps the last-seen
// balance and usage totals so the dashboard can show something when the
// gateway is unreachable — stale beats blank. It is a disposable cache of
// server answers, never a system of record, and never holds secret material.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vuzo-ai/vzdash/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed snapshot storage.
type Cache struct {
	db *sql.DB
}

// Snapshot is one recorded view of the account at a point in time.
type Snapshot struct {
	TakenAt    time.Time
	Balance    float64
	HasBalance bool
	Summary    model.Summary
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveSnapshot records a snapshot, replacing any other taken in the same
// instant.
func (c *Cache) SaveSnapshot(s Snapshot) error {
	hasBalance := 0
	if s.HasBalance {
		hasBalance = 1
	}
	_, err := c.db.Exec(`INSERT OR REPLACE INTO snapshots
		(taken_at, balance, has_balance, total_requests, input_tokens,
		 output_tokens, total_tokens, provider_cost, vuzo_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.TakenAt.UTC().Format(time.RFC3339), s.Balance, hasBalance,
		s.Summary.TotalRequests, s.Summary.TotalInputTokens,
		s.Summary.TotalOutputTokens, s.Summary.TotalTokens,
		s.Summary.TotalProviderCost, s.Summary.TotalVuzoCost,
	)
	return err
}

// LatestSnapshot returns the most recent snapshot, or nil if none exists.
func (c *Cache) LatestSnapshot() (*Snapshot, error) {
	row := c.db.QueryRow(`SELECT taken_at, balance, has_balance, total_requests,
		input_tokens, output_tokens, total_tokens, provider_cost, vuzo_cost
		FROM snapshots ORDER BY taken_at DESC LIMIT 1`)

	var s Snapshot
	var takenAt string
	var hasBalance int
	err := row.Scan(&takenAt, &s.Balance, &hasBalance,
		&s.Summary.TotalRequests, &s.Summary.TotalInputTokens,
		&s.Summary.TotalOutputTokens, &s.Summary.TotalTokens,
		&s.Summary.TotalProviderCost, &s.Summary.TotalVuzoCost)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.HasBalance = hasBalance != 0
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

// PruneSnapshots keeps only the newest keep snapshots.
func (c *Cache) PruneSnapshots(keep int) error {
	if keep < 1 {
		keep = 1
	}
	_, err := c.db.Exec(`DELETE FROM snapshots WHERE taken_at NOT IN
		(SELECT taken_at FROM snapshots ORDER BY taken_at DESC LIMIT ?)`, keep)
	return err
}

// ReplaceDaily swaps the cached daily rollup for a freshly fetched one.
func (c *Cache) ReplaceDaily(buckets []model.DailyBucket, fetchedAt time.Time) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM daily_usage"); err != nil {
		return err
	}

	at := fetchedAt.UTC().Format(time.RFC3339)
	for _, b := range buckets {
		_, err := tx.Exec(`INSERT OR REPLACE INTO daily_usage
			(date, model, provider, total_requests, input_tokens,
			 output_tokens, total_cost, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			b.Date, b.Model, b.Provider, b.TotalRequests,
			b.InputTokens, b.OutputTokens, b.TotalCost, at,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadDaily returns the cached daily rollup and when it was fetched.
func (c *Cache) LoadDaily() ([]model.DailyBucket, time.Time, error) {
	rows, err := c.db.Query(`SELECT date, model, provider, total_requests,
		input_tokens, output_tokens, total_cost, fetched_at
		FROM daily_usage ORDER BY date DESC`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = rows.Close() }()

	var buckets []model.DailyBucket
	var fetchedAt time.Time
	for rows.Next() {
		var b model.DailyBucket
		var at string
		if err := rows.Scan(&b.Date, &b.Model, &b.Provider, &b.TotalRequests,
			&b.InputTokens, &b.OutputTokens, &b.TotalCost, &at); err != nil {
			return nil, time.Time{}, err
		}
		if fetchedAt.IsZero() {
			fetchedAt, _ = time.Parse(time.RFC3339, at)
		}
		buckets = append(buckets, b)
	}
	return buckets, fetchedAt, rows.Err()
}
