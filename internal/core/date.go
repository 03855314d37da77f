package core

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// Date is a calendar date with no meaningful time-of-day component.
// All dates are anchored to UTC midnight.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// Year returns the calendar year.
func (d Date) Year() int { return d.Time.Year() }

// Month returns the 1-12 month number.
func (d Date) Month() int { return int(d.Time.Month()) }

// Day returns the day of the month.
func (d Date) Day() int { return d.Time.Day() }

// After reports whether d falls after o.
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

// CheckYearMonth validates a year/month pair. A month outside 1-12 or a
// non-positive year is a caller bug, surfaced as a usage error distinct
// from empty-data outcomes.
func CheckYearMonth(year, month int) error {
	if year < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	return nil
}

// MonthRange returns the inclusive [first day, last day] bounds of a month.
func MonthRange(year, month int) (Date, Date, error) {
	if err := CheckYearMonth(year, month); err != nil {
		return Date{}, Date{}, err
	}
	first := NewDate(year, month, 1)
	// Day zero of the next month is the last day of this one.
	last := Date{Time: time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)}
	return first, last, nil
}

// PreviousMonth returns the year/month immediately before the given one.
func PreviousMonth(year, month int) (int, int) {
	month--
	if month < 1 {
		month = 12
		year--
	}
	return year, month
}
