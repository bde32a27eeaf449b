// Package billing assigns billing periods to orders. Periods are later used
// as idempotency/grouping keys for invoice consolidation, so assignment must
// be deterministic: the same (order type, date) always yields the same period.
package billing

import (
	"fmt"
	"time"
)

// Period is a canonical billing period: a label usable as a grouping key plus
// explicit bounds. Bounds are dates at UTC midnight, End inclusive.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

// PeriodAssigner computes the billing period containing a reference date.
type PeriodAssigner interface {
	AssignPeriod(ref time.Time) Period
}

// MonthlyAssigner bills by calendar month, label YYYY-MM.
type MonthlyAssigner struct{}

func (MonthlyAssigner) AssignPeriod(ref time.Time) Period {
	ref = ref.UTC()
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Period{
		Label: start.Format("2006-01"),
		Start: start,
		End:   end,
	}
}

// ISOWeekAssigner bills by ISO week (Monday through Sunday), label YYYY-Www.
type ISOWeekAssigner struct{}

func (ISOWeekAssigner) AssignPeriod(ref time.Time) Period {
	ref = ref.UTC()
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	// Monday of the ISO week containing ref
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)

	isoYear, isoWeek := day.ISOWeek()
	return Period{
		Label: fmt.Sprintf("%d-W%02d", isoYear, isoWeek),
		Start: start,
		End:   end,
	}
}

// QuarterlyAssigner bills by calendar quarter, label YYYY-Qn.
type QuarterlyAssigner struct{}

func (QuarterlyAssigner) AssignPeriod(ref time.Time) Period {
	ref = ref.UTC()
	quarter := (int(ref.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	start := time.Date(ref.Year(), startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return Period{
		Label: fmt.Sprintf("%d-Q%d", ref.Year(), quarter),
		Start: start,
		End:   end,
	}
}
