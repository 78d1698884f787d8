// ABOUTME: Tests for week aggregation.
// ABOUTME: Verifies null-aware averaging and the distance total asymmetry.
package stats

import (
	"testing"
	"time"

	"github.com/mediulus/train-together/internal/models"
)

func measurementOn(day int, set func(*models.Measurement)) *models.Measurement {
	m := models.NewMeasurement("ath1", time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC))
	if set != nil {
		set(m)
	}
	return m
}

func TestAggregateAveragesOnlyPresentValues(t *testing.T) {
	ms := []*models.Measurement{
		measurementOn(2, func(m *models.Measurement) {
			m.SetValue(models.MetricStress, 4)
			m.SetValue(models.MetricDistance, 5)
		}),
		measurementOn(3, func(m *models.Measurement) {
			m.SetValue(models.MetricStress, 6)
		}),
		// Day with no stress reading must not pull the average down.
		measurementOn(4, func(m *models.Measurement) {
			m.SetValue(models.MetricDistance, 7)
		}),
	}

	stats := Aggregate(ms)

	avg := stats.Average(models.MetricStress)
	if avg == nil {
		t.Fatal("stress average should be defined")
	}
	if *avg != 5 {
		t.Errorf("stress average = %v, want 5 (denominator is present readings only)", *avg)
	}
}

func TestAggregateUndefinedWhenNoReadings(t *testing.T) {
	ms := []*models.Measurement{
		measurementOn(2, func(m *models.Measurement) {
			m.SetValue(models.MetricDistance, 5)
		}),
	}

	stats := Aggregate(ms)

	if got := stats.Average(models.MetricSleepHours); got != nil {
		t.Errorf("sleep average = %v, want nil (undefined, not zero)", *got)
	}
}

func TestAggregateDistanceTotalTreatsAbsenceAsZero(t *testing.T) {
	ms := []*models.Measurement{
		measurementOn(2, func(m *models.Measurement) { m.SetValue(models.MetricDistance, 5) }),
		measurementOn(3, func(m *models.Measurement) { m.SetValue(models.MetricDistance, 7) }),
		measurementOn(4, func(m *models.Measurement) { m.SetValue(models.MetricDistance, 3) }),
		measurementOn(5, func(m *models.Measurement) { m.SetValue(models.MetricStress, 8) }),
	}

	stats := Aggregate(ms)

	if stats.TotalDistance != 15 {
		t.Errorf("TotalDistance = %v, want 15", stats.TotalDistance)
	}
	// The average still uses only logged days.
	avg := stats.Average(models.MetricDistance)
	if avg == nil || *avg != 5 {
		t.Errorf("distance average = %v, want 5", avg)
	}
}

func TestAggregateEmptyWeek(t *testing.T) {
	stats := Aggregate(nil)
	if stats.TotalDistance != 0 {
		t.Errorf("TotalDistance = %v, want 0", stats.TotalDistance)
	}
	for _, metric := range models.AllMetrics {
		if stats.Average(metric) != nil {
			t.Errorf("average for %s should be nil in empty week", metric)
		}
	}
}
