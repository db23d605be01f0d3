package gateway

import (
	"context"
	"net/url"

	"github.com/vuzo-ai/vzdash/internal/model"
)

// UsageQuery is the optional filter set accepted by the usage endpoints.
// Zero-valued fields are omitted from the query string entirely.
type UsageQuery struct {
	Model     string
	Provider  string
	StartDate string // RFC 3339
	EndDate   string // RFC 3339
}

func (q UsageQuery) values() url.Values {
	v := url.Values{}
	if q.Model != "" {
		v.Set("model", q.Model)
	}
	if q.Provider != "" {
		v.Set("provider", q.Provider)
	}
	if q.StartDate != "" {
		v.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("end_date", q.EndDate)
	}
	return v
}

// ListUsage returns the raw request log, reverse-chronological as paginated
// by the server.
func (c *Client) ListUsage(ctx context.Context, q UsageQuery) ([]model.UsageRecord, error) {
	var records []model.UsageRecord
	if err := c.Get(ctx, "/usage", q.values(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DailyUsage returns per-(date, model, provider) rollups for the filter.
func (c *Client) DailyUsage(ctx context.Context, q UsageQuery) ([]model.DailyBucket, error) {
	var buckets []model.DailyBucket
	if err := c.Get(ctx, "/usage/daily", q.values(), &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// UsageSummary returns the single aggregate row for the filter window.
func (c *Client) UsageSummary(ctx context.Context, q UsageQuery) (model.Summary, error) {
	var s model.Summary
	if err := c.Get(ctx, "/usage/summary", q.values(), &s); err != nil {
		return model.Summary{}, err
	}
	return s, nil
}

// Balance returns the current spendable credit in USD.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	var resp struct {
		Balance float64 `json:"balance"`
	}
	if err := c.Get(ctx, "/billing/balance", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// Transactions returns the ledger history, most recent first.
func (c *Client) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := c.Get(ctx, "/billing/transactions", nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// CreateCheckout starts a payment-processor checkout session for a top-up
// and returns the redirect URL.
func (c *Client) CreateCheckout(ctx context.Context, amount float64) (string, error) {
	body := struct {
		Amount float64 `json:"amount"`
	}{Amount: amount}
	var resp struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := c.Post(ctx, "/billing/checkout", body, &resp); err != nil {
		return "", err
	}
	return resp.CheckoutURL, nil
}

// ListKeys returns all API keys for the account, active and revoked.
func (c *Client) ListKeys(ctx context.Context) ([]model.APIKey, error) {
	var keys []model.APIKey
	if err := c.Get(ctx, "/api-keys", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// CreateKey mints a new API key. The response carries the full secret — the
// only time it is ever obtainable.
func (c *Client) CreateKey(ctx context.Context, name string) (*model.CreatedKey, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	var created model.CreatedKey
	if err := c.Post(ctx, "/api-keys", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RevokeKey deactivates a key. The server keeps the record for audit; the
// delete-shaped call is a logical revoke, not a physical delete.
func (c *Client) RevokeKey(ctx context.Context, id string) error {
	return c.Delete(ctx, "/api-keys/"+url.PathEscape(id))
}

// ListModels returns the public model catalog with markup pricing.
func (c *Client) ListModels(ctx context.Context) ([]model.ModelPrice, error) {
	var rows []model.ModelPrice
	if err := c.Get(ctx, "/models", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
