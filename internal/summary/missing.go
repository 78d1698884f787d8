// ABOUTME: Missing-data detection across a training week.
// ABOUTME: Lists days lacking athlete measurements or coach plans.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mediulus/train-together/internal/storage"
	"github.com/mediulus/train-together/internal/week"
)

// Missing lists the window's dates that lack input, in ascending order.
type Missing struct {
	AthleteDays []time.Time // no measurement recorded
	CoachDays   []time.Time // no coach plan
}

// DetectMissing scans the window's seven days against the measurement and
// plan stores. Read-only; never mutates state.
func DetectMissing(ctx context.Context, measurements storage.MeasurementStore, plans storage.PlanStore, athleteID string, window week.Window) (Missing, error) {
	var missing Missing
	for _, day := range window.Days() {
		_, err := measurements.GetMeasurement(ctx, athleteID, day)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			missing.AthleteDays = append(missing.AthleteDays, day)
		case err != nil:
			return Missing{}, fmt.Errorf("check measurement for %s: %w", day.Format("2006-01-02"), err)
		}

		hasPlan, err := plans.HasPlan(ctx, athleteID, day)
		if err != nil {
			return Missing{}, fmt.Errorf("check plan for %s: %w", day.Format("2006-01-02"), err)
		}
		if !hasPlan {
			missing.CoachDays = append(missing.CoachDays, day)
		}
	}
	return missing, nil
}
