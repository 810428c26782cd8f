package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens a record for the caller (or, for managers, the given employee)
	CheckIn(ctx context.Context, req CheckInRequest) (Attendance, error)

	// CheckOut closes the open record
	CheckOut(ctx context.Context, req CheckOutRequest) (Attendance, error)

	// CreateAttendance records a manual entry (manager+)
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (Attendance, error)

	// UpdateAttendance corrects timestamps or notes (manager+); derived fields are recomputed
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (Attendance, error)

	GetAttendance(ctx context.Context, id string) (Attendance, error)

	// ListAttendance lists records; employees only see their own
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
