package payperiod

import (
	"errors"
	"fmt"
	"time"
)

// StorageLayout is the canonical form for civil dates. Keys in this form
// zero-pad month and day so they compare and sort lexicographically.
const StorageLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid calendar date")

// Period is one semi-monthly pay window: day 1-15 or day 16 through the
// last day of a calendar month. Start and End are civil dates.
type Period struct {
	Start time.Time
	End   time.Time
}

// Date builds a civil date anchored at UTC midnight. All date math in
// this package runs on civil dates so a timezone conversion can never
// shift a day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD string as a civil date. Inputs that do not
// name a real calendar day (2023-02-29, 2026-04-31) are rejected.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(StorageLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Format renders a civil date in storage form.
func Format(t time.Time) string {
	return t.Format(StorageLayout)
}

// Today returns the current civil date in the employer's location,
// re-anchored at UTC midnight. This is the only sanctioned bridge from
// wall-clock time into period math.
func Today(loc *time.Location) time.Time {
	year, month, day := time.Now().In(loc).Date()
	return Date(year, month, day)
}

// Containing returns the period enclosing the given civil date.
func Containing(date time.Time) Period {
	year, month, day := date.Date()
	if day <= 15 {
		return Period{Start: Date(year, month, 1), End: Date(year, month, 15)}
	}
	// Day zero of the next month normalizes to the last day of this one.
	return Period{Start: Date(year, month, 16), End: Date(year, month+1, 0)}
}

// ByOffset walks whole periods relative to the one containing the
// reference date: 0 is the containing period, -1 the one before it, and
// so on. Each step crosses exactly one period boundary, so the walk is
// correct even though periods are not a fixed number of days.
func ByOffset(offset int, reference time.Time) Period {
	p := Containing(reference)
	for i := 0; i < offset; i++ {
		p = Containing(p.End.AddDate(0, 0, 1))
	}
	for i := 0; i > offset; i-- {
		p = Containing(p.Start.AddDate(0, 0, -1))
	}
	return p
}

// Contains reports whether the civil date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.Start) && !date.After(p.End)
}

// ClampEnd returns a copy of the period with End pulled back to the
// given date when that date falls before End. Used for preview
// summaries that only cover the elapsed part of the current period.
func (p Period) ClampEnd(date time.Time) Period {
	if date.Before(p.End) {
		return Period{Start: p.Start, End: date}
	}
	return p
}

// Label renders the period for humans, e.g. "Feb 1–15, 2026".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d–%d, %d",
		p.Start.Format("Jan"), p.Start.Day(), p.End.Day(), p.Start.Year())
}
