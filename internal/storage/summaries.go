// ABOUTME: Weekly summary operations for SQLite storage.
// ABOUTME: Atomic upsert keyed by (athlete, weekStart); summaries stored as JSON.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mediulus/train-together/internal/models"
)

// storedSummary is the JSON shape persisted in the data column. The key
// columns stay relational so upsert-by-key works; everything else rides
// along as a document, matching the summary's role as a derived cache.
type storedSummary struct {
	TotalDistance float64                                  `json:"total_distance"`
	Trends        map[models.Metric]models.TrendComparison `json:"trends"`
	Days          []*models.Measurement                    `json:"days"`
}

// UpsertSummary writes s, replacing any prior summary for the same
// (AthleteID, WeekStart). Safe to call repeatedly; exactly one row exists
// per key afterward.
func (d *DB) UpsertSummary(ctx context.Context, s *models.WeeklySummary) error {
	data, err := json.Marshal(storedSummary{
		TotalDistance: s.TotalDistance,
		Trends:        s.Trends,
		Days:          s.Days,
	})
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO weekly_summaries (athlete_id, week_start, data, computed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (athlete_id, week_start) DO UPDATE SET
			data = excluded.data,
			computed_at = excluded.computed_at`,
		s.AthleteID, s.WeekStart.Format(dayLayout), string(data),
		s.ComputedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}
	return nil
}

// GetSummary retrieves the summary for (athleteID, weekStart).
func (d *DB) GetSummary(ctx context.Context, athleteID string, weekStart time.Time) (*models.WeeklySummary, error) {
	key := models.DayOf(weekStart).Format(dayLayout)
	var data, computedAt string
	err := d.db.QueryRowContext(ctx, `
		SELECT data, computed_at FROM weekly_summaries
		WHERE athlete_id = ? AND week_start = ?`, athleteID, key).Scan(&data, &computedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("summary %s/%s: %w", athleteID, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}

	var stored storedSummary
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}

	s := &models.WeeklySummary{
		AthleteID:     athleteID,
		WeekStart:     models.DayOf(weekStart),
		TotalDistance: stored.TotalDistance,
		Trends:        stored.Trends,
		Days:          stored.Days,
	}
	s.ComputedAt, err = time.Parse(time.RFC3339, computedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid computed_at timestamp: %w", err)
	}
	return s, nil
}
