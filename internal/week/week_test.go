// ABOUTME: Tests for calendar week bucketing.
// ABOUTME: Verifies Monday anchoring, window arithmetic, and invalid dates.
package week

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfAnchorsToMonday(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2025, 6, 2), date(2025, 6, 2)},
		{"tuesday", date(2025, 6, 3), date(2025, 6, 2)},
		{"sunday maps to prior monday", date(2025, 6, 8), date(2025, 6, 2)},
		{"saturday", date(2025, 6, 7), date(2025, 6, 2)},
		{"year boundary", date(2025, 1, 1), date(2024, 12, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StartOf(tt.day)
			if err != nil {
				t.Fatalf("StartOf(%v) error: %v", tt.day, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("StartOf(%v) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestStartOfNormalizesTimeOfDay(t *testing.T) {
	got, err := StartOf(time.Date(2025, 6, 4, 23, 59, 59, 0, time.UTC))
	if err != nil {
		t.Fatalf("StartOf error: %v", err)
	}
	if !got.Equal(date(2025, 6, 2)) {
		t.Errorf("StartOf = %v, want %v", got, date(2025, 6, 2))
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("week start not at midnight: %v", got)
	}
}

func TestAllDaysOfWeekShareWindow(t *testing.T) {
	base, err := WindowOf(date(2025, 6, 2))
	if err != nil {
		t.Fatalf("WindowOf error: %v", err)
	}
	for i := 0; i < 7; i++ {
		w, err := WindowOf(date(2025, 6, 2+i))
		if err != nil {
			t.Fatalf("WindowOf error: %v", err)
		}
		if !w.Start.Equal(base.Start) || !w.End.Equal(base.End) {
			t.Errorf("day %d window %v, want %v", i, w, base)
		}
	}

	// First day of the next week gets a fresh window.
	next, err := WindowOf(date(2025, 6, 9))
	if err != nil {
		t.Fatalf("WindowOf error: %v", err)
	}
	if !next.Start.Equal(base.End) {
		t.Errorf("next window start %v, want %v", next.Start, base.End)
	}
}

func TestWindowSpansExactlySevenDays(t *testing.T) {
	w, err := WindowOf(date(2025, 6, 5))
	if err != nil {
		t.Fatalf("WindowOf error: %v", err)
	}
	if !w.End.Equal(w.Start.AddDate(0, 0, 7)) {
		t.Errorf("End = %v, want Start+7d = %v", w.End, w.Start.AddDate(0, 0, 7))
	}

	days := w.Days()
	if len(days) != 7 {
		t.Fatalf("Days() returned %d days, want 7", len(days))
	}
	for i, d := range days {
		if !d.Equal(w.Start.AddDate(0, 0, i)) {
			t.Errorf("day %d = %v, want %v", i, d, w.Start.AddDate(0, 0, i))
		}
		if !w.Contains(d) {
			t.Errorf("window should contain its own day %v", d)
		}
	}
	if w.Contains(w.End) {
		t.Error("window must not contain its exclusive end")
	}
}

func TestPrevious(t *testing.T) {
	w, err := WindowOf(date(2025, 6, 5))
	if err != nil {
		t.Fatalf("WindowOf error: %v", err)
	}
	prev := w.Previous()
	if !prev.End.Equal(w.Start) {
		t.Errorf("previous window end %v, want %v", prev.End, w.Start)
	}
	if !prev.Start.Equal(w.Start.AddDate(0, 0, -7)) {
		t.Errorf("previous window start %v, want %v", prev.Start, w.Start.AddDate(0, 0, -7))
	}
}

func TestInvalidDates(t *testing.T) {
	for _, day := range []time.Time{{}, date(1, 1, 1), date(9999, 1, 1)} {
		if _, err := StartOf(day); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("StartOf(%v) error = %v, want ErrInvalidDate", day, err)
		}
		if _, err := WindowOf(day); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("WindowOf(%v) error = %v, want ErrInvalidDate", day, err)
		}
	}
}
