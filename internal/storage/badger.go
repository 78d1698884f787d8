// ABOUTME: Badger KV backend implementing the Repository interface.
// ABOUTME: Uses type-prefixed keys with day-stamped suffixes for range scans.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/mediulus/train-together/internal/models"
)

const (
	measurementPrefix = "measurement:"
	summaryPrefix     = "summary:"
	planPrefix        = "plan:"
)

// KV is the Badger-backed Repository implementation. Keys are
// "<type>:<athleteID>:<YYYY-MM-DD>", so lexicographic key order matches
// day order and range queries become prefix scans.
type KV struct {
	db *badger.DB
}

// OpenKV opens or creates a Badger database rooted at dir.
func OpenKV(dir string) (*KV, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &KV{db: db}, nil
}

// Close closes the underlying Badger database.
func (k *KV) Close() error {
	if k.db != nil {
		return k.db.Close()
	}
	return nil
}

func measurementKey(athleteID string, day time.Time) []byte {
	return []byte(measurementPrefix + athleteID + ":" + models.DayOf(day).Format(dayLayout))
}

func summaryKey(athleteID string, weekStart time.Time) []byte {
	return []byte(summaryPrefix + athleteID + ":" + models.DayOf(weekStart).Format(dayLayout))
}

func planKey(athleteID string, day time.Time) []byte {
	return []byte(planPrefix + athleteID + ":" + models.DayOf(day).Format(dayLayout))
}

// UpsertMeasurement merges m into the record for (m.AthleteID, m.Day) in a
// single transaction.
func (k *KV) UpsertMeasurement(_ context.Context, m *models.Measurement) (*models.Measurement, error) {
	key := measurementKey(m.AthleteID, m.Day)
	var stored *models.Measurement

	err := k.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			stored = m
			stored.Day = models.DayOf(m.Day)
		case err != nil:
			return fmt.Errorf("read existing measurement: %w", err)
		default:
			existing, err := decodeItem[models.Measurement](item)
			if err != nil {
				return err
			}
			existing.Merge(m)
			stored = existing
		}

		data, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("marshal measurement: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, fmt.Errorf("upsert measurement: %w", err)
	}
	return stored, nil
}

// GetMeasurement retrieves the record for (athleteID, day).
func (k *KV) GetMeasurement(_ context.Context, athleteID string, day time.Time) (*models.Measurement, error) {
	var m *models.Measurement
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(measurementKey(athleteID, day))
		if err != nil {
			return err
		}
		m, err = decodeItem[models.Measurement](item)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("measurement %s/%s: %w", athleteID, models.DayOf(day).Format(dayLayout), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get measurement: %w", err)
	}
	return m, nil
}

// ListMeasurements retrieves records with from <= day < to, ascending by day.
func (k *KV) ListMeasurements(_ context.Context, athleteID string, from, to time.Time) ([]*models.Measurement, error) {
	prefix := []byte(measurementPrefix + athleteID + ":")
	start := measurementKey(athleteID, from)
	end := string(measurementKey(athleteID, to))

	var ms []*models.Measurement
	err := k.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(start); it.Valid(); it.Next() {
			if string(it.Item().Key()) >= end {
				break
			}
			m, err := decodeItem[models.Measurement](it.Item())
			if err != nil {
				return err
			}
			// A colon in another athlete's ID can land their keys inside
			// this byte range; the stored record knows its real owner.
			if m.AthleteID != athleteID {
				continue
			}
			ms = append(ms, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	return ms, nil
}

// SetRecommendation writes note onto every measurement in [from, to).
// All updates share one transaction, so on this backend the batch is atomic.
func (k *KV) SetRecommendation(ctx context.Context, athleteID string, from, to time.Time, note string) (int, error) {
	ms, err := k.ListMeasurements(ctx, athleteID, from, to)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	err = k.db.Update(func(txn *badger.Txn) error {
		for _, m := range ms {
			m.Recommendation = &note
			m.UpdatedAt = now
			data, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("marshal measurement: %w", err)
			}
			if err := txn.Set(measurementKey(m.AthleteID, m.Day), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("set recommendation: %w", err)
	}
	return len(ms), nil
}

// UpsertSummary replaces any prior summary for (s.AthleteID, s.WeekStart).
func (k *KV) UpsertSummary(_ context.Context, s *models.WeeklySummary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	err = k.db.Update(func(txn *badger.Txn) error {
		return txn.Set(summaryKey(s.AthleteID, s.WeekStart), data)
	})
	if err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}
	return nil
}

// GetSummary retrieves the summary for (athleteID, weekStart).
func (k *KV) GetSummary(_ context.Context, athleteID string, weekStart time.Time) (*models.WeeklySummary, error) {
	var s *models.WeeklySummary
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(summaryKey(athleteID, weekStart))
		if err != nil {
			return err
		}
		s, err = decodeItem[models.WeeklySummary](item)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("summary %s/%s: %w", athleteID, models.DayOf(weekStart).Format(dayLayout), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return s, nil
}

// SetPlan records that a coach plan exists for (athleteID, day).
func (k *KV) SetPlan(_ context.Context, athleteID string, day time.Time) error {
	err := k.db.Update(func(txn *badger.Txn) error {
		return txn.Set(planKey(athleteID, day), []byte("1"))
	})
	if err != nil {
		return fmt.Errorf("set plan: %w", err)
	}
	return nil
}

// HasPlan reports whether a coach plan exists for (athleteID, day).
func (k *KV) HasPlan(_ context.Context, athleteID string, day time.Time) (bool, error) {
	err := k.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(planKey(athleteID, day))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has plan: %w", err)
	}
	return true, nil
}

// GetAllData retrieves all measurements and plan markers for export.
func (k *KV) GetAllData(_ context.Context) (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC(),
		Tool:       "trainweek",
	}

	err := k.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(measurementPrefix)
		it := txn.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			m, err := decodeItem[models.Measurement](it.Item())
			if err != nil {
				it.Close()
				return err
			}
			data.Measurements = append(data.Measurements, m)
		}
		it.Close()

		planOpts := badger.DefaultIteratorOptions
		planOpts.Prefix = []byte(planPrefix)
		planOpts.PrefetchValues = false
		pit := txn.NewIterator(planOpts)
		defer pit.Close()
		for pit.Rewind(); pit.Valid(); pit.Next() {
			athleteID, day, err := splitDayKey(string(pit.Item().Key()), planPrefix)
			if err != nil {
				return err
			}
			data.Plans = append(data.Plans, PlanMarker{AthleteID: athleteID, Day: day})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export data: %w", err)
	}
	return data, nil
}

// ImportData imports measurements and plan markers from an export file.
func (k *KV) ImportData(ctx context.Context, data *ExportData) error {
	for _, m := range data.Measurements {
		if _, err := k.UpsertMeasurement(ctx, m); err != nil {
			return fmt.Errorf("import measurement %s/%s: %w", m.AthleteID, m.Day.Format(dayLayout), err)
		}
	}
	for _, p := range data.Plans {
		if err := k.SetPlan(ctx, p.AthleteID, p.Day); err != nil {
			return fmt.Errorf("import plan %s/%s: %w", p.AthleteID, p.Day.Format(dayLayout), err)
		}
	}
	return nil
}

func decodeItem[T any](item *badger.Item) (*T, error) {
	var out T
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &out)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", item.Key(), err)
	}
	return &out, nil
}

// splitDayKey parses "<prefix><athleteID>:<YYYY-MM-DD>" keys. Athlete IDs
// are opaque but may themselves contain colons, so the day is taken from
// the fixed-width tail.
func splitDayKey(key, prefix string) (string, time.Time, error) {
	rest := key[len(prefix):]
	if len(rest) < len(dayLayout)+1 {
		return "", time.Time{}, fmt.Errorf("malformed key: %s", key)
	}
	sep := len(rest) - len(dayLayout) - 1
	if rest[sep] != ':' {
		return "", time.Time{}, fmt.Errorf("malformed key: %s", key)
	}
	day, err := time.ParseInLocation(dayLayout, rest[sep+1:], time.UTC)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed key %s: %w", key, err)
	}
	return rest[:sep], day, nil
}
