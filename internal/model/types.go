// Package model holds the domain types shared across the vzdash data layer.
package model

import "time"

// UsageRecord is one metered gateway call. Records are immutable on the
// server; the client only ever reads them.
type UsageRecord struct {
	ID             string    `json:"id"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model"`
	InputTokens    int64     `json:"input_tokens"`
	OutputTokens   int64     `json:"output_tokens"`
	TotalTokens    int64     `json:"total_tokens"`
	ProviderCost   float64   `json:"provider_cost"`
	VuzoCost       float64   `json:"vuzo_cost"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// DailyBucket is the per-(date, model, provider) rollup returned by
// /usage/daily. It is recomputed server-side on every fetch.
type DailyBucket struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Model         string  `json:"model"`
	Provider      string  `json:"provider"`
	TotalRequests int64   `json:"total_requests"`
	InputTokens   int64   `json:"input_tokens"`
	OutputTokens  int64   `json:"output_tokens"`
	TotalCost     float64 `json:"total_cost"`
}

// Summary is the single-row aggregate over a filter window.
type Summary struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalInputTokens  int64   `json:"total_input_tokens"`
	TotalOutputTokens int64   `json:"total_output_tokens"`
	TotalTokens       int64   `json:"total_tokens"`
	TotalProviderCost float64 `json:"total_provider_cost"`
	TotalVuzoCost     float64 `json:"total_vuzo_cost"`
}

// Transaction kinds. Sign convention: topup and refund are non-negative,
// usage is negative.
const (
	TxTopUp  = "topup"
	TxUsage  = "usage"
	TxRefund = "refund"
)

// Transaction is one immutable ledger entry.
type Transaction struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// APIKey is the durable credential record as listed by the gateway. The
// full secret never appears here — only its display-safe prefix.
type APIKey struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	KeyPrefix    string     `json:"key_prefix"`
	IsActive     bool       `json:"is_active"`
	RateLimitRPM int        `json:"rate_limit_rpm"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUsedAt   *time.Time `json:"last_used_at"`
}

// CreatedKey carries the one-time full secret returned by key creation.
// It exists only as the direct return value of that call: never cache it,
// never log it, never write it anywhere.
type CreatedKey struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	KeyPrefix string    `json:"key_prefix"`
	CreatedAt time.Time `json:"created_at"`
}

// ModelPrice is one row of the public model catalog, with both the raw
// provider price and the marked-up price charged by the gateway.
type ModelPrice struct {
	Provider              string  `json:"provider"`
	ModelName             string  `json:"model_name"`
	InputPerMillion       float64 `json:"input_price_per_million"`
	OutputPerMillion      float64 `json:"output_price_per_million"`
	VuzoInputPerMillion   float64 `json:"vuzo_input_price_per_million"`
	VuzoOutputPerMillion  float64 `json:"vuzo_output_price_per_million"`
	MarkupPercent         float64 `json:"vuzo_markup_percent"`
}
