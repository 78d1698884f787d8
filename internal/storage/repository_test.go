// ABOUTME: Tests for Repository implementations.
// ABOUTME: Runs the same contract suite against the SQLite and Badger backends.
package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mediulus/train-together/internal/models"
)

func backends(t *testing.T) map[string]Repository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	kv, err := OpenKV(t.TempDir())
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	return map[string]Repository{"sqlite": db, "badger": kv}
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestUpsertMeasurementMerges(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first := models.NewMeasurement("ath1", day(2))
			first.SetValue(models.MetricDistance, 5)
			if _, err := repo.UpsertMeasurement(ctx, first); err != nil {
				t.Fatalf("first upsert: %v", err)
			}

			second := models.NewMeasurement("ath1", day(2))
			second.SetValue(models.MetricStress, 6)
			if _, err := repo.UpsertMeasurement(ctx, second); err != nil {
				t.Fatalf("second upsert: %v", err)
			}

			got, err := repo.GetMeasurement(ctx, "ath1", day(2))
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Distance == nil || *got.Distance != 5 {
				t.Errorf("Distance = %v, want 5 (merge must keep earlier fields)", got.Distance)
			}
			if got.Stress == nil || *got.Stress != 6 {
				t.Errorf("Stress = %v, want 6", got.Stress)
			}

			// Still exactly one record for the day.
			ms, err := repo.ListMeasurements(ctx, "ath1", day(2), day(3))
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(ms) != 1 {
				t.Errorf("got %d records for one day, want 1", len(ms))
			}
		})
	}
}

func TestGetMeasurementNotFound(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetMeasurement(context.Background(), "ath1", day(2))
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestListMeasurementsRangeAndOrder(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// Insert out of order, plus records outside the range and for
			// another athlete.
			for _, d := range []int{5, 2, 9, 4} {
				m := models.NewMeasurement("ath1", day(d))
				m.SetValue(models.MetricDistance, float64(d))
				if _, err := repo.UpsertMeasurement(ctx, m); err != nil {
					t.Fatalf("upsert day %d: %v", d, err)
				}
			}
			other := models.NewMeasurement("ath2", day(3))
			if _, err := repo.UpsertMeasurement(ctx, other); err != nil {
				t.Fatalf("upsert other athlete: %v", err)
			}

			ms, err := repo.ListMeasurements(ctx, "ath1", day(2), day(9))
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(ms) != 3 {
				t.Fatalf("got %d records, want 3 (range end is exclusive)", len(ms))
			}
			for i, want := range []int{2, 4, 5} {
				if !ms[i].Day.Equal(day(want)) {
					t.Errorf("record %d day = %v, want %v", i, ms[i].Day, day(want))
				}
			}
		})
	}
}

func TestListMeasurementsColonInAthleteID(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// An ID whose tail mimics a day stamp sorts between athlete
			// "x"'s in-window keys on the KV backend.
			mine := models.NewMeasurement("x", day(2))
			mine.SetValue(models.MetricDistance, 5)
			if _, err := repo.UpsertMeasurement(ctx, mine); err != nil {
				t.Fatalf("upsert: %v", err)
			}
			intruder := models.NewMeasurement("x:2025-06-05x", day(10))
			intruder.SetValue(models.MetricDistance, 99)
			if _, err := repo.UpsertMeasurement(ctx, intruder); err != nil {
				t.Fatalf("upsert intruder: %v", err)
			}

			ms, err := repo.ListMeasurements(ctx, "x", day(2), day(9))
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(ms) != 1 {
				t.Fatalf("got %d records, want 1 (other athlete leaked in)", len(ms))
			}
			if ms[0].AthleteID != "x" {
				t.Errorf("AthleteID = %q, want %q", ms[0].AthleteID, "x")
			}

			// Publishing must not touch the other athlete's record either.
			if _, err := repo.SetRecommendation(ctx, "x", day(2), day(9), "easy week"); err != nil {
				t.Fatalf("set recommendation: %v", err)
			}
			got, err := repo.GetMeasurement(ctx, "x:2025-06-05x", day(10))
			if err != nil {
				t.Fatalf("get intruder: %v", err)
			}
			if got.Recommendation != nil {
				t.Errorf("other athlete's record got a recommendation: %v", *got.Recommendation)
			}
		})
	}
}

func TestSetRecommendationBatch(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, d := range []int{2, 3, 4} {
				m := models.NewMeasurement("ath1", day(d))
				m.SetValue(models.MetricDistance, 5)
				if _, err := repo.UpsertMeasurement(ctx, m); err != nil {
					t.Fatalf("upsert: %v", err)
				}
			}
			outside := models.NewMeasurement("ath1", day(10))
			if _, err := repo.UpsertMeasurement(ctx, outside); err != nil {
				t.Fatalf("upsert: %v", err)
			}

			n, err := repo.SetRecommendation(ctx, "ath1", day(2), day(9), "keep the easy days easy")
			if err != nil {
				t.Fatalf("set recommendation: %v", err)
			}
			if n != 3 {
				t.Errorf("updated %d records, want 3", n)
			}

			got, err := repo.GetMeasurement(ctx, "ath1", day(3))
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Recommendation == nil || *got.Recommendation != "keep the easy days easy" {
				t.Errorf("Recommendation = %v, want the published note", got.Recommendation)
			}

			after, err := repo.GetMeasurement(ctx, "ath1", day(10))
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if after.Recommendation != nil {
				t.Errorf("record outside window got a recommendation: %v", *after.Recommendation)
			}
		})
	}
}

func TestSummaryUpsertReplacesInPlace(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			weekStart := day(2)

			first := &models.WeeklySummary{
				AthleteID:     "ath1",
				WeekStart:     weekStart,
				TotalDistance: 10,
				Trends:        map[models.Metric]models.TrendComparison{},
				ComputedAt:    time.Now().UTC(),
			}
			if err := repo.UpsertSummary(ctx, first); err != nil {
				t.Fatalf("first upsert: %v", err)
			}

			second := &models.WeeklySummary{
				AthleteID:     "ath1",
				WeekStart:     weekStart,
				TotalDistance: 15,
				Trends:        map[models.Metric]models.TrendComparison{},
				ComputedAt:    time.Now().UTC(),
			}
			if err := repo.UpsertSummary(ctx, second); err != nil {
				t.Fatalf("second upsert: %v", err)
			}

			got, err := repo.GetSummary(ctx, "ath1", weekStart)
			if err != nil {
				t.Fatalf("get summary: %v", err)
			}
			if got.TotalDistance != 15 {
				t.Errorf("TotalDistance = %v, want 15 (second upsert must win)", got.TotalDistance)
			}
		})
	}
}

func TestGetSummaryNotFound(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetSummary(context.Background(), "ath1", day(2))
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestPlans(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			ok, err := repo.HasPlan(ctx, "ath1", day(2))
			if err != nil {
				t.Fatalf("has plan: %v", err)
			}
			if ok {
				t.Error("HasPlan should be false before SetPlan")
			}

			if err := repo.SetPlan(ctx, "ath1", day(2)); err != nil {
				t.Fatalf("set plan: %v", err)
			}
			// Setting twice is fine.
			if err := repo.SetPlan(ctx, "ath1", day(2)); err != nil {
				t.Fatalf("set plan again: %v", err)
			}

			ok, err = repo.HasPlan(ctx, "ath1", day(2))
			if err != nil {
				t.Fatalf("has plan: %v", err)
			}
			if !ok {
				t.Error("HasPlan should be true after SetPlan")
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			m := models.NewMeasurement("ath1", day(2))
			m.SetValue(models.MetricDistance, 5)
			m.WithNote("tempo")
			if _, err := repo.UpsertMeasurement(ctx, m); err != nil {
				t.Fatalf("upsert: %v", err)
			}
			if err := repo.SetPlan(ctx, "ath1", day(3)); err != nil {
				t.Fatalf("set plan: %v", err)
			}

			data, err := repo.GetAllData(ctx)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if len(data.Measurements) != 1 || len(data.Plans) != 1 {
				t.Fatalf("export has %d measurements, %d plans; want 1 and 1",
					len(data.Measurements), len(data.Plans))
			}

			for _, format := range []string{"json", "yaml"} {
				raw, err := MarshalExport(data, format)
				if err != nil {
					t.Fatalf("marshal %s: %v", format, err)
				}
				parsed, err := UnmarshalExport(raw, format)
				if err != nil {
					t.Fatalf("unmarshal %s: %v", format, err)
				}
				if len(parsed.Measurements) != 1 {
					t.Errorf("%s round trip lost measurements", format)
				}
			}

			// Import into a fresh sqlite store.
			fresh, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
			if err != nil {
				t.Fatalf("open fresh: %v", err)
			}
			defer fresh.Close()

			if err := fresh.ImportData(ctx, data); err != nil {
				t.Fatalf("import: %v", err)
			}
			got, err := fresh.GetMeasurement(ctx, "ath1", day(2))
			if err != nil {
				t.Fatalf("get imported: %v", err)
			}
			if got.Distance == nil || *got.Distance != 5 {
				t.Errorf("imported Distance = %v, want 5", got.Distance)
			}
		})
	}
}
