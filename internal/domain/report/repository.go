package report

import (
	"context"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
)

// Source loads the rows an aggregation needs. Implementations apply the
// employee or department scope; the Summarize functions apply the date rules.
type Source interface {
	// AttendanceRecords returns records with check_in in [start, end).
	AttendanceRecords(ctx context.Context, f Filter, start, end time.Time) ([]attendance.Attendance, error)
	LeaveRequests(ctx context.Context, f Filter) ([]leave.LeaveRequest, error)
	Payslips(ctx context.Context, f Filter) ([]payroll.Payslip, error)
	Reviews(ctx context.Context, f Filter) ([]performance.Review, error)
}

// ReportRepository stores saved reports.
type ReportRepository interface {
	Create(ctx context.Context, report Report) (Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
	Update(ctx context.Context, report Report) error
	List(ctx context.Context, filter ReportFilter) ([]Report, int64, error)
}
