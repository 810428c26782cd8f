package report

import "context"

// ReportService computes on-demand figures and manages saved reports
type ReportService interface {
	Attendance(ctx context.Context, req FilterRequest) (AttendanceSnapshot, error)
	Leave(ctx context.Context, req FilterRequest) (LeaveSnapshot, error)
	Payroll(ctx context.Context, req FilterRequest) (PayrollSnapshot, error)
	Performance(ctx context.Context, req FilterRequest) (PerformanceSnapshot, error)

	// Dashboard computes the four snapshots concurrently
	Dashboard(ctx context.Context, req FilterRequest) (Dashboard, error)

	CreateReport(ctx context.Context, req CreateReportRequest) (Report, error)
	// UpdateReport changes name or filter and recomputes the snapshot
	UpdateReport(ctx context.Context, req UpdateReportRequest) (Report, error)
	GetReport(ctx context.Context, id string) (Report, error)
	ListReports(ctx context.Context, filter ReportFilter) (ListReportResponse, error)
	RefreshReport(ctx context.Context, id string) (Report, error)
}
