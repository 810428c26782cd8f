// Package period handles the inclusive calendar-date ranges used by payslips and reports.
package period

import (
	"errors"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

var (
	ErrMissingBound = errors.New("date_from and date_to are required")
	ErrInvalidDate  = errors.New("dates must use YYYY-MM-DD")
)

// Range is an inclusive span of calendar dates. From and To are midnight UTC.
type Range struct {
	From time.Time
	To   time.Time
}

// Parse builds a Range from two YYYY-MM-DD strings. An inverted range is not an error.
func Parse(from, to string) (Range, error) {
	if from == "" || to == "" {
		return Range{}, ErrMissingBound
	}
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		return Range{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		return Range{}, ErrInvalidDate
	}
	return Range{From: f, To: t}, nil
}

// New truncates from and to to their calendar dates.
func New(from, to time.Time) Range {
	return Range{From: Date(from), To: Date(to)}
}

// Date drops the clock part of t, keeping its calendar date in t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LocalDate is the calendar date of instant t as seen in loc.
func LocalDate(t time.Time, loc *time.Location) time.Time {
	return Date(t.In(loc))
}

func (r Range) Inverted() bool {
	return r.To.Before(r.From)
}

// Days counts the dates in the range, both ends included; zero when inverted.
func (r Range) Days() int {
	if r.Inverted() {
		return 0
	}
	// Unix seconds do not saturate the way time.Duration does past ~292 years
	return int((r.To.Unix()-r.From.Unix())/secondsPerDay) + 1
}

// Contains reports whether calendar date d falls inside the range.
func (r Range) Contains(d time.Time) bool {
	d = Date(d)
	return !d.Before(r.From) && !d.After(r.To)
}

// ContainsInstant reports whether the local date of t falls inside the range.
func (r Range) ContainsInstant(t time.Time, loc *time.Location) bool {
	return r.Contains(LocalDate(t, loc))
}

// Within reports whether other lies entirely inside r.
func (r Range) Within(other Range) bool {
	return !other.From.Before(r.From) && !other.To.After(r.To)
}

// Overlaps reports whether two inclusive ranges share at least one date.
func (r Range) Overlaps(other Range) bool {
	return !r.From.After(other.To) && !r.To.Before(other.From)
}

// Bounds returns the half-open instant interval [start, end) covering the
// range in loc, suitable for timestamp comparisons in SQL.
func (r Range) Bounds(loc *time.Location) (start, end time.Time) {
	start = time.Date(r.From.Year(), r.From.Month(), r.From.Day(), 0, 0, 0, 0, loc)
	end = time.Date(r.To.Year(), r.To.Month(), r.To.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return start, end
}

func (r Range) String() string {
	return r.From.Format(DateLayout) + ".." + r.To.Format(DateLayout)
}
