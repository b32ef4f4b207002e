package date

import (
	"iter"
	"time"
)

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return New(year, month+1, 0).Day()
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date { return New(d.y, d.m, 1) }

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date { return New(d.y, d.m+1, 0) }

// StartOfWeek returns the Sunday on or before d.
func (d Date) StartOfWeek() Date { return d.Add(-int(d.Weekday())) }

// AddMonths adds months keeping the day of month, clamped to the target
// month's length: 2025-01-31 plus one month is 2025-02-28.
func (d Date) AddMonths(months int) Date {
	first := New(d.y, d.m+time.Month(months), 1)
	day := min(d.d, DaysIn(first.y, first.m))
	return New(first.y, first.m, day)
}

// SameMonth reports whether d falls in the given year and month.
func (d Date) SameMonth(year int, month time.Month) bool {
	return d.y == year && d.m == month
}

// MonthDays yields every day of the month in order.
func MonthDays(year int, month time.Month) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		n := DaysIn(year, month)
		for day := 1; day <= n; day++ {
			if !yield(New(year, month, day)) {
				return
			}
		}
	}
}
