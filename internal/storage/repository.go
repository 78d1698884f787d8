// ABOUTME: Repository interface for training data storage.
// ABOUTME: Defines the contract for measurements, summaries, and coach plans.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mediulus/train-together/internal/models"
)

// ErrNotFound signals a point lookup that matched no record.
var ErrNotFound = errors.New("not found")

// MeasurementStore is the daily record store: one record per (athlete, day),
// merge-on-write. List returns records with from <= day < to, ascending.
type MeasurementStore interface {
	// UpsertMeasurement merges m into the record for (m.AthleteID, m.Day),
	// creating it if absent, and returns the stored record.
	UpsertMeasurement(ctx context.Context, m *models.Measurement) (*models.Measurement, error)
	GetMeasurement(ctx context.Context, athleteID string, day time.Time) (*models.Measurement, error)
	ListMeasurements(ctx context.Context, athleteID string, from, to time.Time) ([]*models.Measurement, error)

	// SetRecommendation writes note onto every measurement for athleteID
	// with from <= day < to and returns the number updated. The write is a
	// single logical batch but is not guaranteed atomic across records.
	SetRecommendation(ctx context.Context, athleteID string, from, to time.Time, note string) (int, error)
}

// SummaryStore holds the derived weekly summaries, keyed by
// (athlete, weekStart). Upsert by key must be atomic.
type SummaryStore interface {
	UpsertSummary(ctx context.Context, s *models.WeeklySummary) error
	GetSummary(ctx context.Context, athleteID string, weekStart time.Time) (*models.WeeklySummary, error)
}

// PlanStore tracks which days have a coach plan. Only presence matters to
// this pipeline; plan content lives with the coaching CRUD layer.
type PlanStore interface {
	SetPlan(ctx context.Context, athleteID string, day time.Time) error
	HasPlan(ctx context.Context, athleteID string, day time.Time) (bool, error)
}

// Repository is the full storage contract implemented by each backend.
// Consumers should depend on the narrow interfaces above; this union exists
// for backend construction and the CLI.
type Repository interface {
	MeasurementStore
	SummaryStore
	PlanStore

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}
