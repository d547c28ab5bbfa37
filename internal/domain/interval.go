package domain

import (
	"fmt"
	"time"
)

// Interval is the single trailing time window used to decide which merged
// pull requests are recent enough to report. Both ends are inclusive.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval computes the window [now - months, now] using calendar-month
// subtraction: the day of month is clamped to the last valid day of the
// target month, so one month before March 31 is the last day of February.
// time.AddDate is deliberately not used here because it normalizes day
// overflow forward into the next month.
func NewInterval(now time.Time, months int) Interval {
	return Interval{Start: minusMonths(now, months), End: now}
}

// Contains reports whether t falls within the interval, inclusive on both ends.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}

// String renders the interval as "YYYY-MM-DD to YYYY-MM-DD".
func (i Interval) String() string {
	return fmt.Sprintf("%s to %s", i.Start.Format("2006-01-02"), i.End.Format("2006-01-02"))
}

func minusMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	total := year*12 + int(month) - 1 - months
	y, m := total/12, time.Month(total%12+1)
	if last := daysIn(y, m); day > last {
		day = last
	}
	return time.Date(y, m, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month; day 0 of the next
// month is the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
