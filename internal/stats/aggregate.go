// ABOUTME: Null-aware aggregation of a week's daily measurements.
// ABOUTME: Averages count only present readings; distance totals treat absence as zero.
package stats

import "github.com/mediulus/train-together/internal/models"

// WeekStats holds per-metric averages and the distance total for one week
// of measurements. An average is nil when no record in the week carried a
// reading for that metric; it is never coerced to zero.
type WeekStats struct {
	Averages      map[models.Metric]*float64
	TotalDistance float64
}

// Average returns the computed average for a metric, or nil.
func (s WeekStats) Average(metric models.Metric) *float64 {
	return s.Averages[metric]
}

// Aggregate computes WeekStats over one athlete's measurements for a single
// week. For each metric the denominator is the count of records that carry
// a reading, not the record count: an unlogged stress entry must not drag
// the stress average toward zero. Distance is the exception and is also
// summed as a plain total, where an unlogged day genuinely contributes
// nothing to the week's training volume.
func Aggregate(ms []*models.Measurement) WeekStats {
	stats := WeekStats{Averages: make(map[models.Metric]*float64, len(models.AllMetrics))}

	for _, metric := range models.AllMetrics {
		var sum float64
		var n int
		for _, m := range ms {
			if v := m.Value(metric); v != nil {
				sum += *v
				n++
			}
		}
		if n > 0 {
			avg := sum / float64(n)
			stats.Averages[metric] = &avg
		}
		if metric == models.VolumeMetric {
			stats.TotalDistance = sum
		}
	}

	return stats
}
