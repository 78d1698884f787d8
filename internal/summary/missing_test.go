// ABOUTME: Tests for missing-data detection.
// ABOUTME: Verifies both lists are complete, ordered, and independent.
package summary

import (
	"context"
	"testing"
	"time"

	"github.com/mediulus/train-together/internal/models"
	"github.com/mediulus/train-together/internal/week"
)

func TestDetectMissing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Week of Mon 2025-06-02. Measurements on Mon and Thu; plans on Mon,
	// Tue, Wed.
	logDistance(t, db, "ath1", date(2025, 6, 2), 5)
	logDistance(t, db, "ath1", date(2025, 6, 5), 3)
	for d := 2; d <= 4; d++ {
		if err := db.SetPlan(ctx, "ath1", date(2025, 6, d)); err != nil {
			t.Fatalf("set plan: %v", err)
		}
	}

	window, err := week.WindowOf(date(2025, 6, 2))
	if err != nil {
		t.Fatalf("window: %v", err)
	}

	missing, err := DetectMissing(ctx, db, db, "ath1", window)
	if err != nil {
		t.Fatalf("DetectMissing: %v", err)
	}

	wantAthlete := []time.Time{date(2025, 6, 3), date(2025, 6, 4), date(2025, 6, 6), date(2025, 6, 7), date(2025, 6, 8)}
	if len(missing.AthleteDays) != len(wantAthlete) {
		t.Fatalf("AthleteDays = %d entries, want %d", len(missing.AthleteDays), len(wantAthlete))
	}
	for i, want := range wantAthlete {
		if !missing.AthleteDays[i].Equal(want) {
			t.Errorf("AthleteDays[%d] = %v, want %v", i, missing.AthleteDays[i], want)
		}
	}

	wantCoach := []time.Time{date(2025, 6, 5), date(2025, 6, 6), date(2025, 6, 7), date(2025, 6, 8)}
	if len(missing.CoachDays) != len(wantCoach) {
		t.Fatalf("CoachDays = %d entries, want %d", len(missing.CoachDays), len(wantCoach))
	}
	for i, want := range wantCoach {
		if !missing.CoachDays[i].Equal(want) {
			t.Errorf("CoachDays[%d] = %v, want %v", i, missing.CoachDays[i], want)
		}
	}
}

func TestDetectMissingFullWeek(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Every day logged and planned: nothing missing.
	for d := 2; d <= 8; d++ {
		logDistance(t, db, "ath1", date(2025, 6, d), 5)
		if err := db.SetPlan(ctx, "ath1", date(2025, 6, d)); err != nil {
			t.Fatalf("set plan: %v", err)
		}
	}

	window, err := week.WindowOf(date(2025, 6, 2))
	if err != nil {
		t.Fatalf("window: %v", err)
	}

	missing, err := DetectMissing(ctx, db, db, "ath1", window)
	if err != nil {
		t.Fatalf("DetectMissing: %v", err)
	}
	if len(missing.AthleteDays) != 0 || len(missing.CoachDays) != 0 {
		t.Errorf("missing = %+v, want empty lists", missing)
	}
}

// A day holding only a note still counts as athlete input present: the
// record exists even though it carries no metric readings.
func TestDetectMissingCountsEmptyRecordAsPresent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	m := models.NewMeasurement("ath1", date(2025, 6, 2))
	m.WithNote("rest day")
	if _, err := db.UpsertMeasurement(ctx, m); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	window, err := week.WindowOf(date(2025, 6, 2))
	if err != nil {
		t.Fatalf("window: %v", err)
	}

	missing, err := DetectMissing(ctx, db, db, "ath1", window)
	if err != nil {
		t.Fatalf("DetectMissing: %v", err)
	}
	for _, d := range missing.AthleteDays {
		if d.Equal(date(2025, 6, 2)) {
			t.Error("day with a note-only record reported as missing")
		}
	}
}
