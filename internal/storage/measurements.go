// ABOUTME: Measurement operations for SQLite storage.
// ABOUTME: Merge-on-write upserts keyed by (athlete, day), range queries, batch note writes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mediulus/train-together/internal/models"
)

const dayLayout = "2006-01-02"

// UpsertMeasurement merges m into the stored record for (m.AthleteID, m.Day).
// The read-merge-write runs in one transaction so concurrent writers for the
// same key cannot interleave partial merges.
func (d *DB) UpsertMeasurement(ctx context.Context, m *models.Measurement) (*models.Measurement, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stored, err := scanMeasurementRow(tx.QueryRowContext(ctx, selectMeasurement+`
		WHERE athlete_id = ? AND day = ?`, m.AthleteID, m.Day.Format(dayLayout)))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		stored = m
		stored.Day = models.DayOf(m.Day)
	case err != nil:
		return nil, fmt.Errorf("read existing measurement: %w", err)
	default:
		stored.Merge(m)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO measurements (id, athlete_id, day, distance, stress, sleep_hours,
			resting_heart_rate, exercise_heart_rate, perceived_exertion,
			note, recommendation, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (athlete_id, day) DO UPDATE SET
			distance = excluded.distance,
			stress = excluded.stress,
			sleep_hours = excluded.sleep_hours,
			resting_heart_rate = excluded.resting_heart_rate,
			exercise_heart_rate = excluded.exercise_heart_rate,
			perceived_exertion = excluded.perceived_exertion,
			note = excluded.note,
			recommendation = excluded.recommendation,
			updated_at = excluded.updated_at`,
		stored.ID.String(), stored.AthleteID, stored.Day.Format(dayLayout),
		stored.Distance, stored.Stress, stored.SleepHours,
		stored.RestingHeartRate, stored.ExerciseHeartRate, stored.PerceivedExertion,
		stored.Note, stored.Recommendation,
		stored.CreatedAt.Format(time.RFC3339), stored.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("upsert measurement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit upsert: %w", err)
	}
	return stored, nil
}

// GetMeasurement retrieves the record for (athleteID, day).
func (d *DB) GetMeasurement(ctx context.Context, athleteID string, day time.Time) (*models.Measurement, error) {
	m, err := scanMeasurementRow(d.db.QueryRowContext(ctx, selectMeasurement+`
		WHERE athlete_id = ? AND day = ?`, athleteID, models.DayOf(day).Format(dayLayout)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("measurement %s/%s: %w", athleteID, models.DayOf(day).Format(dayLayout), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get measurement: %w", err)
	}
	return m, nil
}

// ListMeasurements retrieves records with from <= day < to, ascending by day.
func (d *DB) ListMeasurements(ctx context.Context, athleteID string, from, to time.Time) ([]*models.Measurement, error) {
	rows, err := d.db.QueryContext(ctx, selectMeasurement+`
		WHERE athlete_id = ? AND day >= ? AND day < ?
		ORDER BY day ASC`,
		athleteID, models.DayOf(from).Format(dayLayout), models.DayOf(to).Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer rows.Close()

	var ms []*models.Measurement
	for rows.Next() {
		m, err := scanMeasurementRows(rows)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

// SetRecommendation writes note onto every measurement in [from, to) and
// returns the number of records updated. A single UPDATE keeps the batch
// atomic on this backend.
func (d *DB) SetRecommendation(ctx context.Context, athleteID string, from, to time.Time, note string) (int, error) {
	result, err := d.db.ExecContext(ctx, `
		UPDATE measurements SET recommendation = ?, updated_at = ?
		WHERE athlete_id = ? AND day >= ? AND day < ?`,
		note, time.Now().UTC().Format(time.RFC3339),
		athleteID, models.DayOf(from).Format(dayLayout), models.DayOf(to).Format(dayLayout))
	if err != nil {
		return 0, fmt.Errorf("set recommendation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set recommendation: %w", err)
	}
	return int(affected), nil
}

const selectMeasurement = `
	SELECT id, athlete_id, day, distance, stress, sleep_hours,
		resting_heart_rate, exercise_heart_rate, perceived_exertion,
		note, recommendation, created_at, updated_at
	FROM measurements`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeasurementRow(row rowScanner) (*models.Measurement, error) {
	var m models.Measurement
	var idStr, dayStr, createdAt, updatedAt string

	err := row.Scan(&idStr, &m.AthleteID, &dayStr,
		&m.Distance, &m.Stress, &m.SleepHours,
		&m.RestingHeartRate, &m.ExerciseHeartRate, &m.PerceivedExertion,
		&m.Note, &m.Recommendation, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	m.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid measurement ID in database: %w", err)
	}
	m.Day, err = time.ParseInLocation(dayLayout, dayStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid day in database: %w", err)
	}
	m.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at timestamp: %w", err)
	}
	m.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at timestamp: %w", err)
	}
	return &m, nil
}

func scanMeasurementRows(rows *sql.Rows) (*models.Measurement, error) {
	m, err := scanMeasurementRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan measurement: %w", err)
	}
	return m, nil
}
