// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for measurements, weekly summaries, and coach plans.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS measurements (
		id TEXT NOT NULL,
		athlete_id TEXT NOT NULL,
		day TEXT NOT NULL,
		distance REAL,
		stress REAL,
		sleep_hours REAL,
		resting_heart_rate REAL,
		exercise_heart_rate REAL,
		perceived_exertion REAL,
		note TEXT,
		recommendation TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (athlete_id, day)
	);

	CREATE TABLE IF NOT EXISTS weekly_summaries (
		athlete_id TEXT NOT NULL,
		week_start TEXT NOT NULL,
		data TEXT NOT NULL,
		computed_at DATETIME NOT NULL,
		PRIMARY KEY (athlete_id, week_start)
	);

	CREATE TABLE IF NOT EXISTS coach_plans (
		athlete_id TEXT NOT NULL,
		day TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (athlete_id, day)
	);

	CREATE INDEX IF NOT EXISTS idx_measurements_athlete_day ON measurements(athlete_id, day);
	`

	_, err := d.db.Exec(schema)
	return err
}
