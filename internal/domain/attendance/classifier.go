package attendance

import "time"

const (
	StandardStartHour = 9
	GracePeriod       = 15 * time.Minute
	HalfDayThreshold  = 4.0
	StandardWorkHours = 8.0
)

// Classification holds the fields derived from one attendance record.
type Classification struct {
	Status        Status
	LateMinutes   int
	OvertimeHours float64
}

// Classify derives status, lateness and overtime. The 09:00 start is taken on
// the check-in's own calendar day in loc. Late minutes count from 09:00 even
// inside the grace window, so a 09:05 arrival can be present with 5 late minutes.
func Classify(checkIn *time.Time, workedHours float64, loc *time.Location) Classification {
	if checkIn == nil {
		return Classification{Status: StatusAbsent}
	}
	if loc == nil {
		loc = time.UTC
	}

	local := checkIn.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), StandardStartHour, 0, 0, 0, loc)

	var c Classification
	switch {
	case local.After(start.Add(GracePeriod)):
		c.Status = StatusLate
	case workedHours < HalfDayThreshold:
		c.Status = StatusHalfDay
	default:
		c.Status = StatusPresent
	}

	if local.After(start) {
		c.LateMinutes = int(local.Sub(start) / time.Minute)
	}

	if workedHours > StandardWorkHours {
		c.OvertimeHours = workedHours - StandardWorkHours
	}

	return c
}

// WorkedHours is the elapsed time between check-in and check-out in hours,
// zero while the record is open.
func WorkedHours(checkIn time.Time, checkOut *time.Time) float64 {
	if checkOut == nil || checkOut.Before(checkIn) {
		return 0
	}
	return checkOut.Sub(checkIn).Hours()
}

// DayWeight is how much a record counts toward attendance days.
func DayWeight(s Status) float64 {
	switch s {
	case StatusPresent, StatusLate:
		return 1
	case StatusHalfDay:
		return 0.5
	default:
		return 0
	}
}
