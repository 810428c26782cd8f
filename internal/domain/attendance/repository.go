package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	Update(ctx context.Context, attendance Attendance) error
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetOpenByEmployee returns the record without check_out, or ErrNotCheckedIn.
	GetOpenByEmployee(ctx context.Context, employeeID string) (Attendance, error)

	// ListByEmployeeBetween returns records whose check_in lies in [start, end).
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}

// PayslipRecomputer refreshes payslips whose period covers a changed record.
type PayslipRecomputer interface {
	RecomputeCovering(ctx context.Context, employeeID string, day time.Time) error
}
