// ABOUTME: Calendar bucketing for weekly training windows.
// ABOUTME: Maps any date to its Monday-anchored [start, start+7d) window in UTC.
package week

import (
	"errors"
	"fmt"
	"time"

	"github.com/mediulus/train-together/internal/models"
)

// ErrInvalidDate signals a malformed calendar input.
var ErrInvalidDate = errors.New("invalid date")

// Window is the half-open [Start, End) week bucket owning a date.
// End is always exactly Start + 7 days, so adjacent windows never overlap
// and every date belongs to exactly one window.
type Window struct {
	Start time.Time // Monday, midnight UTC
	End   time.Time // following Monday, midnight UTC (exclusive)
}

// minYear/maxYear bound the dates we accept. Zero times and wildly
// out-of-range years are caller bugs, not real training days.
const (
	minYear = 1900
	maxYear = 3000
)

func validate(day time.Time) error {
	if day.IsZero() {
		return fmt.Errorf("%w: zero time", ErrInvalidDate)
	}
	if y := day.Year(); y < minYear || y > maxYear {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidDate, y)
	}
	return nil
}

// StartOf returns the Monday on or before day, normalized to midnight UTC.
// All callers share this single reference zone so results are comparable
// regardless of the caller's local zone.
func StartOf(day time.Time) (time.Time, error) {
	if err := validate(day); err != nil {
		return time.Time{}, err
	}
	d := models.DayOf(day)
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset), nil
}

// WindowOf returns the week window owning day.
func WindowOf(day time.Time) (Window, error) {
	start, err := StartOf(day)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: start.AddDate(0, 0, 7)}, nil
}

// Previous returns the window immediately before w.
func (w Window) Previous() Window {
	return Window{Start: w.Start.AddDate(0, 0, -7), End: w.Start}
}

// Days lists the seven dates of the window in ascending order.
func (w Window) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Contains reports whether day falls inside the window.
func (w Window) Contains(day time.Time) bool {
	d := models.DayOf(day)
	return !d.Before(w.Start) && d.Before(w.End)
}

// String renders the window as "2006-01-02..2006-01-02" (end exclusive).
func (w Window) String() string {
	return w.Start.Format("2006-01-02") + ".." + w.End.Format("2006-01-02")
}
