// ABOUTME: Export and import functionality for training data.
// ABOUTME: Supports JSON and YAML export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mediulus/train-together/internal/models"
)

// PlanMarker is the exportable form of a coach plan presence row.
type PlanMarker struct {
	AthleteID string    `json:"athlete_id" yaml:"athlete_id"`
	Day       time.Time `json:"day" yaml:"day"`
}

// ExportData represents the full export format for training data.
// Weekly summaries are derived and deliberately excluded: they are
// recomputed from measurements after import.
type ExportData struct {
	Version      string                `json:"version" yaml:"version"`
	ExportedAt   time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool         string                `json:"tool" yaml:"tool"`
	Measurements []*models.Measurement `json:"measurements" yaml:"measurements"`
	Plans        []PlanMarker          `json:"plans" yaml:"plans"`
}

// GetAllData retrieves all measurements and plan markers for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	rows, err := d.db.QueryContext(ctx, selectMeasurement+` ORDER BY athlete_id, day ASC`)
	if err != nil {
		return nil, fmt.Errorf("export measurements: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("export measurements: %w", err)
	}

	planRows, err := d.db.QueryContext(ctx, `SELECT athlete_id, day FROM coach_plans ORDER BY athlete_id, day ASC`)
	if err != nil {
		return nil, fmt.Errorf("export plans: %w", err)
	}
	defer planRows.Close()

	var plans []PlanMarker
	for planRows.Next() {
		var p PlanMarker
		var dayStr string
		if err := planRows.Scan(&p.AthleteID, &dayStr); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p.Day, err = time.ParseInLocation(dayLayout, dayStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid plan day in database: %w", err)
		}
		plans = append(plans, p)
	}
	if err := planRows.Err(); err != nil {
		return nil, fmt.Errorf("export plans: %w", err)
	}

	return &ExportData{
		Version:      "1.0",
		ExportedAt:   time.Now().UTC(),
		Tool:         "trainweek",
		Measurements: ms,
		Plans:        plans,
	}, nil
}

// ImportData imports measurements and plan markers from an export file.
// Measurements merge into existing records per the usual upsert semantics.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	for _, m := range data.Measurements {
		if _, err := d.UpsertMeasurement(ctx, m); err != nil {
			return fmt.Errorf("import measurement %s/%s: %w", m.AthleteID, m.Day.Format(dayLayout), err)
		}
	}
	for _, p := range data.Plans {
		if err := d.SetPlan(ctx, p.AthleteID, p.Day); err != nil {
			return fmt.Errorf("import plan %s/%s: %w", p.AthleteID, p.Day.Format(dayLayout), err)
		}
	}
	return nil
}

// MarshalExport serializes an export in the requested format: "json" or "yaml".
func MarshalExport(data *ExportData, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(data, "", "  ")
	case "yaml":
		return yaml.Marshal(data)
	default:
		return nil, fmt.Errorf("unknown export format: %q", format)
	}
}

// UnmarshalExport parses an export written by MarshalExport.
func UnmarshalExport(raw []byte, format string) (*ExportData, error) {
	var data ExportData
	switch format {
	case "json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse json export: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse yaml export: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown export format: %q", format)
	}
	return &data, nil
}
