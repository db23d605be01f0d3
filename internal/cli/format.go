// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTokens formats a token count with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M", 1234567890 -> "1.2B"
func FormatTokens(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatBalance formats a credit balance the way the dashboard shows it,
// with four decimal places.
func FormatBalance(usd float64) string {
	return fmt.Sprintf("$%.4f", usd)
}

// FormatCost formats a per-request or ledger cost. Gateway margins live in
// fractions of a cent, so small values keep six decimal places.
func FormatCost(usd float64) string {
	abs := usd
	if abs < 0 {
		abs = -abs
	}
	if abs >= 1 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.6f", usd)
}

// FormatSignedCost formats a ledger amount with an explicit sign for
// credits, e.g. "+$10.000000".
func FormatSignedCost(usd float64) string {
	if usd >= 0 {
		return "+" + FormatCost(usd)
	}
	return "-" + FormatCost(-usd)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatLatency formats a response time in milliseconds.
func FormatLatency(ms int64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	}
	return fmt.Sprintf("%dms", ms)
}

// FormatTime formats a server timestamp for table display in local time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FormatDate formats a timestamp as a local calendar date, with a dash for
// never-set values (e.g. a key that was never used).
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02")
}
