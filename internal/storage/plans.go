// ABOUTME: Coach plan presence tracking for SQLite storage.
// ABOUTME: Point lookups by (athlete, day); content lives elsewhere.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/mediulus/train-together/internal/models"
)

// SetPlan records that a coach plan exists for (athleteID, day).
func (d *DB) SetPlan(ctx context.Context, athleteID string, day time.Time) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO coach_plans (athlete_id, day, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (athlete_id, day) DO NOTHING`,
		athleteID, models.DayOf(day).Format(dayLayout), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set plan: %w", err)
	}
	return nil
}

// HasPlan reports whether a coach plan exists for (athleteID, day).
func (d *DB) HasPlan(ctx context.Context, athleteID string, day time.Time) (bool, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM coach_plans WHERE athlete_id = ? AND day = ?`,
		athleteID, models.DayOf(day).Format(dayLayout)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("has plan: %w", err)
	}
	return n > 0, nil
}
