// ABOUTME: Week-over-week trend classification for metric averages.
// ABOUTME: Tolerance band prevents float noise from flipping the direction.
package stats

import (
	"math"

	"github.com/mediulus/train-together/internal/models"
)

// DefaultTolerance is the minimum absolute difference between two averages
// required to report anything other than "unchanged", in the metric's
// native unit.
const DefaultTolerance = 0.01

// Compare classifies the change from previous to current average:
//
//   - both absent: unchanged, no value.
//   - current present, previous absent: increasing. New data where none
//     existed reads as new activity.
//   - current absent, previous present: decreasing. Loss of data is
//     deliberately reported as decline even though it may only mean the
//     athlete stopped logging.
//   - both present: direction of the difference, with |diff| < tolerance
//     reported as unchanged.
func Compare(current, previous *float64, tolerance float64) models.TrendComparison {
	switch {
	case current == nil && previous == nil:
		return models.TrendComparison{Direction: models.TrendUnchanged}
	case current != nil && previous == nil:
		return models.TrendComparison{Value: current, Direction: models.TrendIncreasing}
	case current == nil:
		return models.TrendComparison{Direction: models.TrendDecreasing}
	}

	diff := *current - *previous
	direction := models.TrendUnchanged
	if math.Abs(diff) >= tolerance {
		if diff > 0 {
			direction = models.TrendIncreasing
		} else {
			direction = models.TrendDecreasing
		}
	}
	return models.TrendComparison{Value: current, Direction: direction}
}

// CompareAll runs Compare for every tracked metric.
func CompareAll(current, previous WeekStats, tolerance float64) map[models.Metric]models.TrendComparison {
	trends := make(map[models.Metric]models.TrendComparison, len(models.AllMetrics))
	for _, metric := range models.AllMetrics {
		trends[metric] = Compare(current.Average(metric), previous.Average(metric), tolerance)
	}
	return trends
}
