package cli

import (
	"testing"
	"time"
)

func TestFormatTokens(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1.2K"},
		{1_234_567, "1.2M"},
		{1_234_567_890, "1.2B"},
		{-1500, "-1.5K"},
	}
	for _, tt := range tests {
		if got := FormatTokens(tt.n); got != tt.want {
			t.Errorf("FormatTokens(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatBalance(t *testing.T) {
	if got := FormatBalance(42.5); got != "$42.5000" {
		t.Errorf("FormatBalance = %q", got)
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{2.5, "$2.5000"},
		{0.0048, "$0.004800"},
		{0, "$0.000000"},
	}
	for _, tt := range tests {
		if got := FormatCost(tt.usd); got != tt.want {
			t.Errorf("FormatCost(%v) = %q, want %q", tt.usd, got, tt.want)
		}
	}
}

func TestFormatSignedCost(t *testing.T) {
	if got := FormatSignedCost(10); got != "+$10.0000" {
		t.Errorf("credit = %q", got)
	}
	if got := FormatSignedCost(-0.0048); got != "-$0.004800" {
		t.Errorf("debit = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatLatency(t *testing.T) {
	if got := FormatLatency(420); got != "420ms" {
		t.Errorf("FormatLatency(420) = %q", got)
	}
	if got := FormatLatency(1500); got != "1.5s" {
		t.Errorf("FormatLatency(1500) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(nil); got != "never" {
		t.Errorf("FormatDate(nil) = %q", got)
	}
	ts := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	if got := FormatDate(&ts); got == "never" || got == "" {
		t.Errorf("FormatDate = %q", got)
	}
}
