// Package calendar computes recurrence dates for templates. All functions are
// pure so the generator's backfill loop stays deterministic and resumable.
package calendar

import (
	"fmt"
	"time"

	"github.com/tillerhq/farmops/internal/domain"
)

// NextOccurrence returns the occurrence strictly after date for the given
// frequency. Biweekly advances interval weeks (interval < 1 falls back to the
// default). Monthly follows time.AddDate month-end normalization, so Jan 31
// advances into early March.
func NextOccurrence(date time.Time, freq domain.Frequency, interval int) (time.Time, error) {
	switch freq {
	case domain.FrequencyWeekly:
		return date.AddDate(0, 0, 7), nil
	case domain.FrequencyBiweekly:
		if interval < 1 {
			interval = domain.DefaultBiweeklyInterval
		}
		return date.AddDate(0, 0, 7*interval), nil
	case domain.FrequencyMonthly:
		return date.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidFrequency, freq)
	}
}

// Truncate normalizes a timestamp to midnight UTC. Occurrence arithmetic is
// date-based; keeping everything at UTC midnight makes equality checks safe.
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
