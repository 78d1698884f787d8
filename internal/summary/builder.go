// ABOUTME: Weekly summary assembly over the daily record store.
// ABOUTME: Buckets a date into its week, aggregates, classifies trends, upserts.
package summary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mediulus/train-together/internal/models"
	"github.com/mediulus/train-together/internal/stats"
	"github.com/mediulus/train-together/internal/storage"
	"github.com/mediulus/train-together/internal/week"
)

// ErrNoData signals a summary request for a week with zero measurements.
// There is nothing to summarize; callers should surface this, not retry.
var ErrNoData = errors.New("no measurements in week")

// Builder assembles weekly summaries. Safe for concurrent use; correctness
// for concurrent builds of the same (athlete, weekStart) rests on the
// store's atomic upsert-by-key, and the last writer wins.
type Builder struct {
	measurements storage.MeasurementStore
	summaries    storage.SummaryStore
	tolerance    float64
	log          *zap.Logger
}

// NewBuilder creates a Builder with the default trend tolerance.
func NewBuilder(measurements storage.MeasurementStore, summaries storage.SummaryStore, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		measurements: measurements,
		summaries:    summaries,
		tolerance:    stats.DefaultTolerance,
		log:          log,
	}
}

// WithTolerance overrides the trend tolerance. Used by tests.
func (b *Builder) WithTolerance(t float64) *Builder {
	b.tolerance = t
	return b
}

// Build computes and stores the weekly summary for the week owning asOf.
// The summary is assembled fully in memory; the single upsert is the only
// write, so repeated calls for the same key leave exactly one stored row.
func (b *Builder) Build(ctx context.Context, athleteID string, asOf time.Time) (*models.WeeklySummary, error) {
	window, err := week.WindowOf(asOf)
	if err != nil {
		return nil, err
	}
	prevWindow := window.Previous()

	current, err := b.measurements.ListMeasurements(ctx, athleteID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("load current week: %w", err)
	}
	if len(current) == 0 {
		return nil, fmt.Errorf("athlete %s week %s: %w", athleteID, window, ErrNoData)
	}

	previous, err := b.measurements.ListMeasurements(ctx, athleteID, prevWindow.Start, prevWindow.End)
	if err != nil {
		return nil, fmt.Errorf("load previous week: %w", err)
	}

	currentStats := stats.Aggregate(current)
	previousStats := stats.Aggregate(previous)

	sort.Slice(current, func(i, j int) bool {
		return current[i].Day.Before(current[j].Day)
	})

	s := &models.WeeklySummary{
		AthleteID:     athleteID,
		WeekStart:     window.Start,
		TotalDistance: currentStats.TotalDistance,
		Trends:        stats.CompareAll(currentStats, previousStats, b.tolerance),
		Days:          current,
		ComputedAt:    time.Now().UTC(),
	}

	if err := b.summaries.UpsertSummary(ctx, s); err != nil {
		return nil, fmt.Errorf("store summary: %w", err)
	}

	b.log.Info("built weekly summary",
		zap.String("athlete_id", athleteID),
		zap.Time("week_start", window.Start),
		zap.Int("days", len(current)),
		zap.Float64("total_distance", s.TotalDistance))

	return s, nil
}
