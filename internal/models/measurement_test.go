// ABOUTME: Tests for the Measurement model.
// ABOUTME: Covers day normalization, merge semantics, and empty detection.
package models

import (
	"testing"
	"time"
)

func TestDayOfNormalizesToMidnightUTC(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 10pm Chicago on June 3 is already June 4 in UTC.
	local := time.Date(2025, 6, 3, 22, 0, 0, 0, chicago)
	got := DayOf(local)
	want := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DayOf = %v, want %v", got, want)
	}
}

func TestMergeOverwritesOnlyPresentFields(t *testing.T) {
	existing := NewMeasurement("ath1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	existing.SetValue(MetricDistance, 5.0)
	existing.SetValue(MetricStress, 4)
	existing.WithNote("easy run")

	incoming := NewMeasurement("ath1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	incoming.SetValue(MetricStress, 7)
	incoming.SetValue(MetricSleepHours, 8)

	existing.Merge(incoming)

	if existing.Distance == nil || *existing.Distance != 5.0 {
		t.Errorf("Distance should survive merge, got %v", existing.Distance)
	}
	if existing.Stress == nil || *existing.Stress != 7 {
		t.Errorf("Stress should be overwritten to 7, got %v", existing.Stress)
	}
	if existing.SleepHours == nil || *existing.SleepHours != 8 {
		t.Errorf("SleepHours should be set to 8, got %v", existing.SleepHours)
	}
	if existing.Note == nil || *existing.Note != "easy run" {
		t.Errorf("Note should survive merge, got %v", existing.Note)
	}
}

func TestValueRoundTrip(t *testing.T) {
	m := NewMeasurement("ath1", time.Now())
	for i, metric := range AllMetrics {
		m.SetValue(metric, float64(i)+1)
	}
	for i, metric := range AllMetrics {
		v := m.Value(metric)
		if v == nil || *v != float64(i)+1 {
			t.Errorf("Value(%s) = %v, want %v", metric, v, float64(i)+1)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	m := NewMeasurement("ath1", time.Now())
	if !m.IsEmpty() {
		t.Error("new measurement should be empty")
	}
	m.WithNote("felt tired")
	if !m.IsEmpty() {
		t.Error("a note alone should not count as a reading")
	}
	m.SetValue(MetricSleepHours, 7.5)
	if m.IsEmpty() {
		t.Error("measurement with a reading should not be empty")
	}
}

func TestIsValidMetric(t *testing.T) {
	for _, metric := range AllMetrics {
		if !IsValidMetric(string(metric)) {
			t.Errorf("IsValidMetric(%s) = false, want true", metric)
		}
	}
	if IsValidMetric("vo2max") {
		t.Error("IsValidMetric should reject unknown metrics")
	}
}
