package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tillerhq/farmops/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		freq     domain.Frequency
		interval int
		want     time.Time
	}{
		{"weekly", date(2024, 1, 1), domain.FrequencyWeekly, 0, date(2024, 1, 8)},
		{"weekly year boundary", date(2023, 12, 28), domain.FrequencyWeekly, 0, date(2024, 1, 4)},
		{"biweekly default interval", date(2024, 1, 1), domain.FrequencyBiweekly, 0, date(2024, 1, 15)},
		{"biweekly interval 3", date(2024, 1, 1), domain.FrequencyBiweekly, 3, date(2024, 1, 22)},
		{"monthly", date(2024, 2, 15), domain.FrequencyMonthly, 0, date(2024, 3, 15)},
		{"monthly rollover jan 31", date(2024, 1, 31), domain.FrequencyMonthly, 0, date(2024, 3, 2)},
		{"monthly rollover non-leap", date(2023, 1, 31), domain.FrequencyMonthly, 0, date(2023, 3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(tt.in, tt.freq, tt.interval)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextOccurrenceIsPure(t *testing.T) {
	in := date(2024, 5, 6)
	a, err := NextOccurrence(in, domain.FrequencyWeekly, 0)
	assert.NoError(t, err)
	b, err := NextOccurrence(in, domain.FrequencyWeekly, 0)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNextOccurrenceInvalidFrequency(t *testing.T) {
	_, err := NextOccurrence(date(2024, 1, 1), domain.Frequency("fortnightly"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)
}

func TestTruncate(t *testing.T) {
	in := time.Date(2024, 3, 17, 15, 42, 9, 120, time.FixedZone("UTC+7", 7*3600))
	got := Truncate(in)
	assert.Equal(t, date(2024, 3, 17), got)
}
