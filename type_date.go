package folio

import (
	"fmt"
	"time"
)

// DateFormat is the calendar date format used in the Purchase Date column.
const DateFormat = "2006-01-02"

// Date represents a calendar date with day granularity. The zero value means
// "no date".
type Date struct {
	t time.Time
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date.
func Today() Date {
	return NewDate(time.Now().Date())
}

// ParseDate parses a Date in the canonical "2006-01-02" format.
func ParseDate(str string) (Date, error) {
	on, err := time.Parse(DateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String formats the date in its canonical format, or "" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateFormat)
}

// YearsUntil returns the age of the date in years at 'now', counting a year
// as 365 days.
func (d Date) YearsUntil(now Date) float64 {
	return now.t.Sub(d.t).Hours() / 24 / 365
}
