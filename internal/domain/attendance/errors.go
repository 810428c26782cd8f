package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn      = errors.New("an open attendance record already exists for this employee")
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrCheckOutBeforeCheckIn = errors.New("check_out must not be before check_in")

	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
