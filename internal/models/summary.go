// ABOUTME: WeeklySummary and trend comparison types.
// ABOUTME: Derived cache of one athlete's week, keyed by (athlete, weekStart).
package models

import "time"

// TrendDirection classifies a week-over-week change in a metric average.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendUnchanged  TrendDirection = "unchanged"
)

// TrendComparison pairs this week's average for a metric with its direction
// relative to the previous week. Value is nil when no reading for the metric
// exists in the current week.
type TrendComparison struct {
	Value     *float64       `json:"value,omitempty"`
	Direction TrendDirection `json:"direction"`
}

// WeeklySummary aggregates one athlete's measurements for one week.
// It is a derived cache of Measurement data, never the source of truth:
// recomputing for the same (AthleteID, WeekStart) overwrites the stored
// value in place.
type WeeklySummary struct {
	AthleteID     string
	WeekStart     time.Time // Monday, midnight UTC
	TotalDistance float64
	Trends        map[Metric]TrendComparison
	Days          []*Measurement // current week's records, ascending by day
	ComputedAt    time.Time
}
