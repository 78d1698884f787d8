// ABOUTME: Measurement model and Metric enum for daily training data.
// ABOUTME: Defines the closed set of tracked metrics and merge semantics.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Metric identifies one of the tracked training metrics.
type Metric string

const (
	MetricDistance          Metric = "distance"
	MetricStress            Metric = "stress"
	MetricSleepHours        Metric = "sleep_hours"
	MetricRestingHeartRate  Metric = "resting_heart_rate"
	MetricExerciseHeartRate Metric = "exercise_heart_rate"
	MetricPerceivedExertion Metric = "perceived_exertion"
)

// AllMetrics lists every tracked metric in display order. Aggregation,
// trend comparison, and prompt rendering all iterate this list so their
// output ordering stays consistent.
var AllMetrics = []Metric{
	MetricDistance,
	MetricStress,
	MetricSleepHours,
	MetricRestingHeartRate,
	MetricExerciseHeartRate,
	MetricPerceivedExertion,
}

// VolumeMetric is the metric that is totaled for the week rather than
// averaged. A day without a distance entry contributes zero to the total.
const VolumeMetric = MetricDistance

// MetricUnits maps metrics to their display units.
var MetricUnits = map[Metric]string{
	MetricDistance:          "km",
	MetricStress:            "scale 1-10",
	MetricSleepHours:        "hours",
	MetricRestingHeartRate:  "bpm",
	MetricExerciseHeartRate: "bpm",
	MetricPerceivedExertion: "scale 1-10",
}

// IsValidMetric checks if a string names a tracked metric.
func IsValidMetric(s string) bool {
	for _, m := range AllMetrics {
		if string(m) == s {
			return true
		}
	}
	return false
}

// Measurement is one athlete's training data for a single calendar day.
// At most one Measurement exists per (athlete, day); later writes for the
// same day merge into the existing record rather than replacing it.
// Metric fields are pointers so an absent reading is distinguishable from
// a recorded zero.
type Measurement struct {
	ID        uuid.UUID
	AthleteID string
	Day       time.Time // midnight UTC

	Distance          *float64
	Stress            *float64
	SleepHours        *float64
	RestingHeartRate  *float64
	ExerciseHeartRate *float64
	PerceivedExertion *float64

	Note           *string
	Recommendation *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMeasurement creates an empty Measurement for an athlete and day.
// The day is normalized to midnight UTC.
func NewMeasurement(athleteID string, day time.Time) *Measurement {
	now := time.Now().UTC()
	return &Measurement{
		ID:        uuid.New(),
		AthleteID: athleteID,
		Day:       DayOf(day),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DayOf normalizes a time to midnight UTC, the canonical day key.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Value returns the reading for a metric, or nil if it was not recorded.
func (m *Measurement) Value(metric Metric) *float64 {
	switch metric {
	case MetricDistance:
		return m.Distance
	case MetricStress:
		return m.Stress
	case MetricSleepHours:
		return m.SleepHours
	case MetricRestingHeartRate:
		return m.RestingHeartRate
	case MetricExerciseHeartRate:
		return m.ExerciseHeartRate
	case MetricPerceivedExertion:
		return m.PerceivedExertion
	}
	return nil
}

// SetValue records a reading for a metric.
func (m *Measurement) SetValue(metric Metric, v float64) {
	switch metric {
	case MetricDistance:
		m.Distance = &v
	case MetricStress:
		m.Stress = &v
	case MetricSleepHours:
		m.SleepHours = &v
	case MetricRestingHeartRate:
		m.RestingHeartRate = &v
	case MetricExerciseHeartRate:
		m.ExerciseHeartRate = &v
	case MetricPerceivedExertion:
		m.PerceivedExertion = &v
	}
}

// Merge folds incoming readings into the receiver. Fields set on incoming
// overwrite the receiver's; absent fields leave the existing values alone.
// The receiver's identity (ID, AthleteID, Day, CreatedAt) is preserved.
func (m *Measurement) Merge(incoming *Measurement) {
	for _, metric := range AllMetrics {
		if v := incoming.Value(metric); v != nil {
			m.SetValue(metric, *v)
		}
	}
	if incoming.Note != nil {
		m.Note = incoming.Note
	}
	if incoming.Recommendation != nil {
		m.Recommendation = incoming.Recommendation
	}
	m.UpdatedAt = time.Now().UTC()
}

// IsEmpty reports whether the measurement has no metric readings at all.
// Days like this count as fully missing for the insufficient-data rule.
func (m *Measurement) IsEmpty() bool {
	for _, metric := range AllMetrics {
		if m.Value(metric) != nil {
			return false
		}
	}
	return true
}

// WithNote sets the free-text note.
func (m *Measurement) WithNote(note string) *Measurement {
	m.Note = &note
	return m
}
