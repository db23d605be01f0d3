// Package usage turns a filter into a consistent three-view
// snapshot of the gateway's usage data: raw log, daily rollups, and summary.
package usage

import (
	"fmt"
	"time"

	"github.com/vuzo-ai/vzdash/internal/gateway"
)

// Preset is a relative date-range shortcut. Presets resolve to concrete
// instants at call time against the local calendar, so "today" computed at
// 23:59 and again a minute later give different windows.
type Preset string

const (
	PresetToday   Preset = "today"
	PresetWeek    Preset = "7d"
	PresetMonth   Preset = "30d"
	PresetAllTime Preset = "all"
)

// ParsePreset validates a preset name from user input.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case PresetToday, PresetWeek, PresetMonth, PresetAllTime:
		return Preset(s), nil
	}
	return "", fmt.Errorf("unknown range %q (want today, 7d, 30d or all)", s)
}

// Resolve computes the [start, end] window for the preset at the given
// instant. Bounds are local-day aligned: midnight to 23:59:59. All-time
// resolves to zero bounds, meaning both query parameters are omitted.
func (p Preset) Resolve(now time.Time) (start, end time.Time) {
	if p == PresetAllTime {
		return time.Time{}, time.Time{}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end = dayStart.Add(24*time.Hour - time.Second)

	switch p {
	case PresetToday:
		start = dayStart
	case PresetWeek:
		start = dayStart.AddDate(0, 0, -6)
	case PresetMonth:
		start = dayStart.AddDate(0, 0, -29)
	}
	return start, end
}

// Filter selects the usage window. Zero-valued fields are unbounded.
type Filter struct {
	Model    string
	Provider string
	Start    time.Time
	End      time.Time
}

// WithPreset returns a copy of the filter with the preset's window applied
// as of now.
func (f Filter) WithPreset(p Preset, now time.Time) Filter {
	f.Start, f.End = p.Resolve(now)
	return f
}

// Query converts the filter into the gateway's query-parameter form.
// Unbounded instants are omitted rather than sent as sentinel dates.
func (f Filter) Query() gateway.UsageQuery {
	q := gateway.UsageQuery{
		Model:    f.Model,
		Provider: f.Provider,
	}
	if !f.Start.IsZero() {
		q.StartDate = f.Start.Format(time.RFC3339)
	}
	if !f.End.IsZero() {
		q.EndDate = f.End.Format(time.RFC3339)
	}
	return q
}
